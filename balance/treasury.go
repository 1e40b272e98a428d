// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package balance

import (
	"github.com/dotmog/mogwaid/account"
)

// Treasury - receives settlement fees on behalf of the founder
type Treasury struct {
	accounts *Accounts
	founder  account.Account
}

// NewTreasury - fees are credited to the free balance of founder
func NewTreasury(accounts *Accounts, founder account.Account) *Treasury {
	return &Treasury{
		accounts: accounts,
		founder:  founder,
	}
}

// OnPayment - credit a fee
func (t *Treasury) OnPayment(amount uint64) error {
	if 0 == amount {
		return nil
	}
	t.accounts.log.Infof("treasury: %v  fee: %d", t.founder, amount)
	return t.accounts.Deposit(t.founder, amount)
}

// Founder - the account receiving fees
func (t *Treasury) Founder() account.Account {
	return t.founder
}
