// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package balance - free and reserved balances of accounts
//
// every operation joins the caller's open transaction, if any, so a
// failure further on in an auction step also undoes the balance change
package balance

import (
	"github.com/bitmark-inc/logger"

	"github.com/dotmog/mogwaid/account"
	"github.com/dotmog/mogwaid/fault"
	"github.com/dotmog/mogwaid/storage"
)

// Accounts - balance store
type Accounts struct {
	db  *storage.DB
	log *logger.L
}

// New - create the balance store
func New(db *storage.DB, log *logger.L) *Accounts {
	return &Accounts{
		db:  db,
		log: log,
	}
}

// Free - spendable balance
func (a *Accounts) Free(who account.Account) uint64 {
	n, _ := a.db.Pool.FreeBalances.GetN(who.Bytes())
	return n
}

// Reserved - balance held against open bids
func (a *Accounts) Reserved(who account.Account) uint64 {
	n, _ := a.db.Pool.ReservedBalances.GetN(who.Bytes())
	return n
}

// Deposit - add to the free balance
func (a *Accounts) Deposit(who account.Account, amount uint64) error {
	if 0 == amount {
		return fault.ErrZeroAmount
	}
	return a.db.Update(func(trx storage.Transaction) error {
		return credit(trx, a.db.Pool.FreeBalances, who, amount)
	})
}

// Reserve - move an amount from free to reserved
func (a *Accounts) Reserve(who account.Account, amount uint64) error {
	if 0 == amount {
		return fault.ErrZeroAmount
	}
	return a.db.Update(func(trx storage.Transaction) error {
		pool := a.db.Pool
		if err := debit(trx, pool.FreeBalances, who, amount, fault.ErrInsufficientFunds); nil != err {
			return err
		}
		if err := credit(trx, pool.ReservedBalances, who, amount); nil != err {
			return err
		}
		a.log.Debugf("reserve: %v  amount: %d", who, amount)
		return nil
	})
}

// Unreserve - move up to amount from reserved back to free
func (a *Accounts) Unreserve(who account.Account, amount uint64) error {
	return a.db.Update(func(trx storage.Transaction) error {
		pool := a.db.Pool

		reserved, _ := trx.GetN(pool.ReservedBalances, who.Bytes())
		if amount > reserved {
			a.log.Warnf("unreserve: %v  amount: %d exceeds reserved: %d", who, amount, reserved)
			amount = reserved
		}
		if 0 == amount {
			return nil
		}

		put(trx, pool.ReservedBalances, who, reserved-amount)
		if err := credit(trx, pool.FreeBalances, who, amount); nil != err {
			return err
		}
		a.log.Debugf("unreserve: %v  amount: %d", who, amount)
		return nil
	})
}

// TransferReserved - move part of one account's reservation to another's free balance
func (a *Accounts) TransferReserved(from account.Account, to account.Account, amount uint64) error {
	if 0 == amount {
		return nil
	}
	return a.db.Update(func(trx storage.Transaction) error {
		pool := a.db.Pool
		if err := debit(trx, pool.ReservedBalances, from, amount, fault.ErrInsufficientReserved); nil != err {
			return err
		}
		if err := credit(trx, pool.FreeBalances, to, amount); nil != err {
			return err
		}
		a.log.Debugf("transfer reserved: %v  to: %v  amount: %d", from, to, amount)
		return nil
	})
}

// SlashReserved - remove up to amount from a reservation, returning the amount removed
func (a *Accounts) SlashReserved(who account.Account, amount uint64) (uint64, error) {
	slashed := uint64(0)
	err := a.db.Update(func(trx storage.Transaction) error {
		pool := a.db.Pool

		reserved, _ := trx.GetN(pool.ReservedBalances, who.Bytes())
		slashed = amount
		if slashed > reserved {
			slashed = reserved
		}
		put(trx, pool.ReservedBalances, who, reserved-slashed)
		return nil
	})
	if nil != err {
		return 0, err
	}
	return slashed, nil
}

func credit(trx storage.Transaction, pool *storage.PoolHandle, who account.Account, amount uint64) error {
	n, _ := trx.GetN(pool, who.Bytes())
	if n+amount < n {
		return fault.ErrBalanceOverflow
	}
	put(trx, pool, who, n+amount)
	return nil
}

func debit(trx storage.Transaction, pool *storage.PoolHandle, who account.Account, amount uint64, shortfall error) error {
	n, _ := trx.GetN(pool, who.Bytes())
	if amount > n {
		return shortfall
	}
	put(trx, pool, who, n-amount)
	return nil
}

// zero balances are not stored
func put(trx storage.Transaction, pool *storage.PoolHandle, who account.Account, n uint64) {
	if 0 == n {
		trx.Delete(pool, who.Bytes())
	} else {
		trx.PutN(pool, who.Bytes(), n)
	}
}
