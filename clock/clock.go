// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package clock - per block processing of expiring auctions
//
// the host calls OnBlock once for each new height after all requests
// for that height have been applied.  Auctions in the expiry bucket
// are settled in insertion order up to a per block limit, the rest
// move to the next block.  A settlement that fails is rolled back on
// its own and retried at the next block.
package clock

import (
	"github.com/bitmark-inc/logger"

	"github.com/dotmog/mogwaid/auction"
	"github.com/dotmog/mogwaid/counter"
	"github.com/dotmog/mogwaid/digest"
	"github.com/dotmog/mogwaid/storage"
)

var heightKey = []byte("height")

// Book - the auction operations the driver needs
type Book interface {
	ExpiringAt(height uint64) ([]digest.Digest, error)
	Settle(id digest.Digest) (auction.Outcome, error)
	Postpone(id digest.Digest, height uint64) error
	DiscardBlock(height uint64) error
}

// Discarder - a component keeping per block admission counters
type Discarder interface {
	DiscardBlock(height uint64) error
}

// Report - what happened in one block
type Report struct {
	Height    uint64 `json:"height"`
	Sold      int    `json:"sold"`
	Lapsed    int    `json:"lapsed"`
	Voided    int    `json:"voided"`
	Failed    int    `json:"failed"`
	Postponed int    `json:"postponed"`
}

// Statistics - totals since start
type Statistics struct {
	Blocks    uint64 `json:"blocks"`
	Sold      uint64 `json:"sold"`
	Lapsed    uint64 `json:"lapsed"`
	Voided    uint64 `json:"voided"`
	Failed    uint64 `json:"failed"`
	Postponed uint64 `json:"postponed"`
}

// Driver - the block clock
type Driver struct {
	db         *storage.DB
	log        *logger.L
	book       Book
	discarders []Discarder
	maximum    int

	blocks    counter.Counter
	sold      counter.Counter
	lapsed    counter.Counter
	voided    counter.Counter
	failed    counter.Counter
	postponed counter.Counter
}

// New - create a driver settling at most maximum auctions per block
func New(db *storage.DB, log *logger.L, book Book, maximum int, discarders ...Discarder) *Driver {
	if maximum <= 0 {
		maximum = auction.DefaultMaximumPerBlock
	}
	return &Driver{
		db:         db,
		log:        log,
		book:       book,
		discarders: discarders,
		maximum:    maximum,
	}
}

// Height - the highest block processed so far
func (d *Driver) Height() uint64 {
	n, _ := d.db.Pool.Settings.GetN(heightKey)
	return n
}

// OnBlock - process the end of a block
func (d *Driver) OnBlock(height uint64) (*Report, error) {
	report := &Report{
		Height: height,
	}

	err := d.db.Update(func(trx storage.Transaction) error {
		ids, err := d.book.ExpiringAt(height)
		if nil != err {
			d.log.Criticalf("block: %d  expiry bucket error: %s", height, err)
			return err
		}

		for i, id := range ids {
			if i >= d.maximum {
				if err := d.book.Postpone(id, height+1); nil != err {
					return err
				}
				report.Postponed += 1
				continue
			}

			outcome, err := d.book.Settle(id)
			if nil != err {
				d.log.Errorf("block: %d  settle: %v  error: %s", height, id, err)
				report.Failed += 1
				if err := d.book.Postpone(id, height+1); nil != err {
					return err
				}
				continue
			}

			switch outcome {
			case auction.OutcomeSold:
				report.Sold += 1
			case auction.OutcomeLapsed:
				report.Lapsed += 1
			case auction.OutcomeVoided:
				report.Voided += 1
			}
		}

		if err := d.book.DiscardBlock(height); nil != err {
			return err
		}
		for _, discarder := range d.discarders {
			if err := discarder.DiscardBlock(height); nil != err {
				return err
			}
		}

		processed, _ := trx.GetN(d.db.Pool.Settings, heightKey)
		if height > processed {
			trx.PutN(d.db.Pool.Settings, heightKey, height)
		}
		return nil
	})
	if nil != err {
		return nil, err
	}

	d.blocks.Increment()
	d.sold.Add(uint64(report.Sold))
	d.lapsed.Add(uint64(report.Lapsed))
	d.voided.Add(uint64(report.Voided))
	d.failed.Add(uint64(report.Failed))
	d.postponed.Add(uint64(report.Postponed))

	if report.Postponed > 0 {
		d.log.Warnf("block: %d  postponed: %d auctions", height, report.Postponed)
	}
	if report.Sold+report.Lapsed+report.Voided+report.Failed > 0 {
		d.log.Infof("block: %d  sold: %d  lapsed: %d  voided: %d  failed: %d", height, report.Sold, report.Lapsed, report.Voided, report.Failed)
	}
	return report, nil
}

// Statistics - totals since the driver was created
func (d *Driver) Statistics() Statistics {
	return Statistics{
		Blocks:    d.blocks.Uint64(),
		Sold:      d.sold.Uint64(),
		Lapsed:    d.lapsed.Uint64(),
		Voided:    d.voided.Uint64(),
		Failed:    d.failed.Uint64(),
		Postponed: d.postponed.Uint64(),
	}
}
