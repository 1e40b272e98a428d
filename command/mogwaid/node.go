// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/dotmog/mogwaid/auction"
	"github.com/dotmog/mogwaid/balance"
	"github.com/dotmog/mogwaid/clock"
	"github.com/dotmog/mogwaid/gameevent"
	"github.com/dotmog/mogwaid/ledger"
	"github.com/dotmog/mogwaid/storage"
)

// all components sharing one database
type node struct {
	ledger   *ledger.Ledger
	accounts *balance.Accounts
	treasury *balance.Treasury
	book     *auction.Book
	events   *gameevent.Events
	driver   *clock.Driver
}

func newNode(db *storage.DB, options *Configuration) *node {
	l := ledger.New(db, logger.New("ledger"))
	accounts := balance.New(db, logger.New("balance"))
	treasury := balance.NewTreasury(accounts, options.founder)
	book := auction.New(db, logger.New("auction"), l, accounts, treasury, options.Auction)
	events := gameevent.New(db, logger.New("gameevent"), l, options.Events)
	driver := clock.New(db, logger.New("clock"), book, book.Configuration().SettlePerBlock, events)

	return &node{
		ledger:   l,
		accounts: accounts,
		treasury: treasury,
		book:     book,
		events:   events,
		driver:   driver,
	}
}

// requests apply to the block after the last processed one
func (n *node) currentHeight() uint64 {
	return n.driver.Height() + 1
}
