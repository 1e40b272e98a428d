// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auction_test

import (
	"errors"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotmog/mogwaid/auction"
	"github.com/dotmog/mogwaid/digest"
	"github.com/dotmog/mogwaid/fault"
	"github.com/dotmog/mogwaid/fixtures"
	"github.com/dotmog/mogwaid/ledger"
	"github.com/dotmog/mogwaid/mocks"
	"github.com/dotmog/mogwaid/storage"
)

func setupMockBook(t *testing.T, ctl *gomock.Controller, config auction.Configuration) (*storage.DB, *ledger.Ledger, *mocks.MockCurrency, *mocks.MockPricePayment, *auction.Book) {
	db, err := storage.OpenMemory()
	require.Nil(t, err, "open memory database")

	log := logger.New(fixtures.LogCategory)
	l := ledger.New(db, log)
	currency := mocks.NewMockCurrency(ctl)
	payment := mocks.NewMockPricePayment(ctl)

	return db, l, currency, payment, auction.New(db, log, l, currency, payment, config)
}

func listCreature(t *testing.T, l *ledger.Ledger, book *auction.Book) digest.Digest {
	id, err := l.Create(fixtures.Alice, fixtures.Dna("c1"), 0, ledger.Normal, 0, 10)
	require.Nil(t, err, "create creature")
	_, err = book.Create(id, fixtures.Alice, 100, 5, 10)
	require.Nil(t, err, "create auction")
	return id
}

func TestFeeRouting(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	db, l, currency, payment, book := setupMockBook(t, ctl, auction.Configuration{FeeRate: 500})
	defer db.Close()

	id := listCreature(t, l, book)

	gomock.InOrder(
		currency.EXPECT().Reserve(fixtures.Bob, uint64(150)).Return(nil).Times(1),
		currency.EXPECT().Reserve(fixtures.Carol, uint64(200)).Return(nil).Times(1),
		currency.EXPECT().Unreserve(fixtures.Bob, uint64(150)).Return(nil).Times(1),
		currency.EXPECT().TransferReserved(fixtures.Carol, fixtures.Alice, uint64(190)).Return(nil).Times(1),
		currency.EXPECT().SlashReserved(fixtures.Carol, uint64(10)).Return(uint64(10), nil).Times(1),
		payment.EXPECT().OnPayment(uint64(10)).Return(nil).Times(1),
	)

	require.Nil(t, book.Bid(id, fixtures.Bob, 150), "bob")
	require.Nil(t, book.Bid(id, fixtures.Carol, 200), "carol")

	outcome, err := book.Settle(id)
	require.Nil(t, err, "settle")
	assert.Equal(t, auction.OutcomeSold, outcome, "outcome")
}

func TestReserveFailureLeavesAuction(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	db, l, currency, _, book := setupMockBook(t, ctl, auction.Configuration{})
	defer db.Close()

	id := listCreature(t, l, book)

	currency.EXPECT().Reserve(fixtures.Bob, uint64(150)).Return(fault.ErrInsufficientFunds).Times(1)

	err := book.Bid(id, fixtures.Bob, 150)
	assert.Equal(t, fault.ErrInsufficientFunds, err, "wrong error")

	a, err := book.Get(id)
	require.Nil(t, err, "get")
	assert.Nil(t, a.HighBidder, "bidder recorded")
	assert.Equal(t, uint64(0), book.BidOf(id, fixtures.Bob), "bid ledger written")
}

func TestSettleFailureRollsBack(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	db, l, currency, payment, book := setupMockBook(t, ctl, auction.Configuration{FeeRate: 500})
	defer db.Close()

	id := listCreature(t, l, book)

	failure := errors.New("payment sink unavailable")
	gomock.InOrder(
		currency.EXPECT().Reserve(fixtures.Bob, uint64(150)).Return(nil).Times(1),
		currency.EXPECT().TransferReserved(fixtures.Bob, fixtures.Alice, uint64(143)).Return(nil).Times(1),
		currency.EXPECT().SlashReserved(fixtures.Bob, uint64(7)).Return(uint64(7), nil).Times(1),
		payment.EXPECT().OnPayment(uint64(7)).Return(failure).Times(1),
	)

	require.Nil(t, book.Bid(id, fixtures.Bob, 150), "bob")

	_, err := book.Settle(id)
	assert.Equal(t, failure, err, "wrong error")

	a, err := book.Get(id)
	require.Nil(t, err, "auction removed by failed settle")
	assert.Equal(t, fixtures.Bob, *a.HighBidder, "high bidder")

	owner, err := l.OwnerOf(id)
	require.Nil(t, err, "owner")
	assert.Equal(t, fixtures.Alice, owner, "creature moved by failed settle")

	bio, err := l.Bio(id)
	require.Nil(t, err, "bio")
	assert.True(t, bio.State.Has(ledger.StateListed), "listed flag cleared by failed settle")
}
