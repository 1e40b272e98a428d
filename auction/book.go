// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auction

import (
	"bytes"

	"github.com/bitmark-inc/logger"

	"github.com/dotmog/mogwaid/account"
	"github.com/dotmog/mogwaid/digest"
	"github.com/dotmog/mogwaid/fault"
	"github.com/dotmog/mogwaid/storage"
)

// defaults for Configuration
const (
	DefaultMaximumPerBlock = 2
	DefaultMaximumPeriod   = 1000
	DefaultFeeRate         = 100

	// fee rate is in basis points
	feeRateDivisor = 10000
)

// Currency - reservation of bid funds
type Currency interface {
	Reserve(who account.Account, amount uint64) error
	Unreserve(who account.Account, amount uint64) error
	TransferReserved(from account.Account, to account.Account, amount uint64) error
	SlashReserved(who account.Account, amount uint64) (uint64, error)
}

// PricePayment - sink for settlement fees
type PricePayment interface {
	OnPayment(amount uint64) error
}

// Creatures - the parts of the creature ledger used by auctions
type Creatures interface {
	OwnerOf(id digest.Digest) (account.Account, error)
	Transfer(id digest.Digest, from account.Account, to account.Account) error
	SetPrice(id digest.Digest, price uint64) error
	SetListed(id digest.Digest, listed bool) error
}

// Configuration - auction limits
type Configuration struct {
	MaximumPerBlock int    `gluamapper:"maximum_per_block" json:"maximum_per_block"`
	MaximumPeriod   uint64 `gluamapper:"maximum_period" json:"maximum_period"`
	FeeRate         uint64 `gluamapper:"fee_rate" json:"fee_rate"`
	SettlePerBlock  int    `gluamapper:"settle_per_block" json:"settle_per_block"`
}

// Outcome - result of settling an auction
type Outcome int

// the outcomes
const (
	OutcomeAbsent Outcome = iota // no live auction
	OutcomeLapsed                // expired without a bid
	OutcomeSold                  // creature sold to the high bidder
	OutcomeVoided                // seller no longer owns the creature, all bids refunded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAbsent:
		return "absent"
	case OutcomeLapsed:
		return "lapsed"
	case OutcomeSold:
		return "sold"
	case OutcomeVoided:
		return "voided"
	default:
		return "*unknown*"
	}
}

// Book - the set of live auctions
type Book struct {
	db        *storage.DB
	log       *logger.L
	creatures Creatures
	currency  Currency
	payment   PricePayment
	config    Configuration
}

// New - create an auction book
//
// zero configuration values are replaced by the defaults
func New(db *storage.DB, log *logger.L, creatures Creatures, currency Currency, payment PricePayment, config Configuration) *Book {
	if config.MaximumPerBlock <= 0 {
		config.MaximumPerBlock = DefaultMaximumPerBlock
	}
	if 0 == config.MaximumPeriod {
		config.MaximumPeriod = DefaultMaximumPeriod
	}
	if config.FeeRate > feeRateDivisor {
		config.FeeRate = feeRateDivisor
	}
	if config.SettlePerBlock <= 0 {
		config.SettlePerBlock = config.MaximumPerBlock
	}
	return &Book{
		db:        db,
		log:       log,
		creatures: creatures,
		currency:  currency,
		payment:   payment,
		config:    config,
	}
}

// Configuration - the limits in force
func (b *Book) Configuration() Configuration {
	return b.config
}

// Create - list a creature for auction at block now
func (b *Book) Create(id digest.Digest, owner account.Account, minBid uint64, duration uint64, now uint64) (*Auction, error) {
	if 0 == duration || duration > b.config.MaximumPeriod || now+duration < now {
		return nil, fault.ErrInvalidDuration
	}
	expiry := now + duration

	auction := &Auction{
		CreatureId: id,
		Seller:     owner,
		Expiry:     expiry,
		MinBid:     minBid,
		HighBid:    minBid,
	}

	err := b.db.Update(func(trx storage.Transaction) error {
		pool := b.db.Pool

		current, err := b.creatures.OwnerOf(id)
		if nil != err {
			return err
		}
		if current != owner {
			return fault.ErrNotOwner
		}
		if trx.Has(pool.Auctions, id[:]) {
			return fault.ErrAuctionExists
		}

		created, _ := trx.GetN(pool.AuctionCreated, blockKey(now))
		if created >= uint64(b.config.MaximumPerBlock) {
			return fault.ErrTooManyAuctions
		}

		bucket := trx.Get(pool.AuctionBuckets, blockKey(expiry))
		if len(bucket)/digest.Length >= b.config.MaximumPerBlock {
			return fault.ErrExpiryBucketFull
		}

		if err := b.creatures.SetListed(id, true); nil != err {
			return err
		}

		trx.Put(pool.Auctions, id[:], auction.pack())
		trx.Put(pool.AuctionBuckets, blockKey(expiry), append(bucket, id[:]...))
		trx.PutN(pool.AuctionCreated, blockKey(now), created+1)
		return nil
	})
	if nil != err {
		return nil, err
	}

	b.log.Debugf("create: %v  seller: %v  min bid: %d  expiry: %d", id, owner, minBid, expiry)
	return auction, nil
}

// Bid - offer more than the current high bid
//
// bids are accepted until the auction is settled, so an auction the
// block driver postponed stays open until its new expiry
func (b *Book) Bid(id digest.Digest, bidder account.Account, amount uint64) error {
	return b.db.Update(func(trx storage.Transaction) error {
		pool := b.db.Pool

		auction, err := b.get(trx, id)
		if nil != err {
			return err
		}
		if bidder == auction.Seller {
			return fault.ErrSellerCannotBid
		}
		if auction.Contested() && bidder == *auction.HighBidder {
			return fault.ErrAlreadyHighBidder
		}
		if amount <= auction.HighBid {
			return fault.ErrBidTooLow
		}

		if err := b.currency.Reserve(bidder, amount); nil != err {
			return err
		}

		// release the beaten bid
		if auction.Contested() {
			previous := *auction.HighBidder
			if err := b.release(trx, id, previous); nil != err {
				return err
			}
		}

		trx.PutN(pool.Bids, bidKey(id, bidder), amount)
		if err := b.addBidder(trx, id, bidder); nil != err {
			return err
		}

		auction.HighBid = amount
		auction.HighBidder = &bidder
		trx.Put(pool.Auctions, id[:], auction.pack())

		b.log.Debugf("bid: %v  bidder: %v  amount: %d", id, bidder, amount)
		return nil
	})
}

// Cancel - withdraw an auction that has no bids
func (b *Book) Cancel(id digest.Digest, requester account.Account) error {
	return b.db.Update(func(trx storage.Transaction) error {
		auction, err := b.get(trx, id)
		if nil != err {
			return err
		}
		owner, err := b.creatures.OwnerOf(id)
		if nil != err {
			return err
		}
		if requester != owner || requester != auction.Seller {
			return fault.ErrNotOwner
		}
		if auction.Contested() {
			return fault.ErrAuctionContested
		}

		if err := b.remove(trx, auction); nil != err {
			return err
		}
		if _, err := b.refund(trx, id, nil); nil != err {
			return err
		}

		b.log.Debugf("cancel: %v  seller: %v", id, requester)
		return nil
	})
}

// Settle - close an auction
//
// settling a creature without a live auction does nothing
func (b *Book) Settle(id digest.Digest) (Outcome, error) {
	outcome := OutcomeAbsent

	err := b.db.Update(func(trx storage.Transaction) error {
		if !trx.Has(b.db.Pool.Auctions, id[:]) {
			outcome = OutcomeAbsent
			return nil
		}
		auction, err := b.get(trx, id)
		if nil != err {
			return err
		}
		if err := b.remove(trx, auction); nil != err {
			return err
		}

		if !auction.Contested() {
			outcome = OutcomeLapsed
			_, err := b.refund(trx, id, nil)
			return err
		}

		owner, err := b.creatures.OwnerOf(id)
		if nil != err || owner != auction.Seller {
			b.log.Warnf("settle: %v  seller: %v no longer owns the creature", id, auction.Seller)
			outcome = OutcomeVoided
			_, err := b.refund(trx, id, nil)
			return err
		}

		winner := *auction.HighBidder
		if _, err := b.refund(trx, id, &winner); nil != err {
			return err
		}
		if err := b.pay(trx, auction); nil != err {
			return err
		}

		if err := b.creatures.Transfer(id, auction.Seller, winner); nil != err {
			return err
		}
		if err := b.creatures.SetPrice(id, auction.HighBid); nil != err {
			return err
		}
		outcome = OutcomeSold
		return nil
	})
	if nil != err {
		return OutcomeAbsent, err
	}

	if OutcomeAbsent != outcome {
		b.log.Infof("settle: %v  outcome: %s", id, outcome)
	}
	return outcome, nil
}

// Postpone - move an auction to the bucket of a later block
func (b *Book) Postpone(id digest.Digest, height uint64) error {
	return b.db.Update(func(trx storage.Transaction) error {
		pool := b.db.Pool

		auction, err := b.get(trx, id)
		if nil != err {
			return err
		}
		if height <= auction.Expiry {
			return fault.ErrInvalidDuration
		}
		if err := b.unbucket(trx, auction); nil != err {
			return err
		}

		auction.Expiry = height
		bucket := trx.Get(pool.AuctionBuckets, blockKey(height))
		trx.Put(pool.AuctionBuckets, blockKey(height), append(bucket, id[:]...))
		trx.Put(pool.Auctions, id[:], auction.pack())

		b.log.Warnf("postpone: %v  to block: %d", id, height)
		return nil
	})
}

// DiscardBlock - drop the per block records of a processed block
func (b *Book) DiscardBlock(height uint64) error {
	return b.db.Update(func(trx storage.Transaction) error {
		pool := b.db.Pool
		if trx.Has(pool.AuctionBuckets, blockKey(height)) {
			b.log.Warnf("discard: block: %d  bucket not empty", height)
		}
		trx.Delete(pool.AuctionBuckets, blockKey(height))
		trx.Delete(pool.AuctionCreated, blockKey(height))
		return nil
	})
}

// Get - read a live auction
func (b *Book) Get(id digest.Digest) (*Auction, error) {
	return b.get(nil, id)
}

// ExpiringAt - the auctions in the bucket of a block, in insertion order
func (b *Book) ExpiringAt(height uint64) ([]digest.Digest, error) {
	items, err := split(b.db.Pool.AuctionBuckets.Get(blockKey(height)), digest.Length)
	if nil != err {
		return nil, err
	}
	ids := make([]digest.Digest, len(items))
	for i, item := range items {
		copy(ids[i][:], item)
	}
	return ids, nil
}

// CreatedAt - number of auctions created during a block
func (b *Book) CreatedAt(height uint64) uint64 {
	n, _ := b.db.Pool.AuctionCreated.GetN(blockKey(height))
	return n
}

// BidOf - the amount reserved by a bidder
func (b *Book) BidOf(id digest.Digest, bidder account.Account) uint64 {
	n, _ := b.db.Pool.Bids.GetN(bidKey(id, bidder))
	return n
}

// Bidders - the accounts holding a reservation for an auction
func (b *Book) Bidders(id digest.Digest) ([]account.Account, error) {
	return b.bidders(nil, id)
}

func (b *Book) get(trx storage.Transaction, id digest.Digest) (*Auction, error) {
	var buffer []byte
	if nil == trx {
		buffer = b.db.Pool.Auctions.Get(id[:])
	} else {
		buffer = trx.Get(b.db.Pool.Auctions, id[:])
	}
	if nil == buffer {
		return nil, fault.ErrAuctionNotFound
	}
	auction, err := unpackAuction(id, buffer)
	if nil != err {
		b.log.Criticalf("auction: %v  record: %x  error: %s", id, buffer, err)
		return nil, err
	}
	return auction, nil
}

// take an auction out of both indices and clear the listing flag
func (b *Book) remove(trx storage.Transaction, auction *Auction) error {
	id := auction.CreatureId
	if err := b.unbucket(trx, auction); nil != err {
		return err
	}
	trx.Delete(b.db.Pool.Auctions, id[:])

	err := b.creatures.SetListed(id, false)
	if nil != err && !fault.IsErrNotFound(err) {
		return err
	}
	return nil
}

func (b *Book) unbucket(trx storage.Transaction, auction *Auction) error {
	pool := b.db.Pool
	id := auction.CreatureId
	key := blockKey(auction.Expiry)

	items, err := split(trx.Get(pool.AuctionBuckets, key), digest.Length)
	if nil != err {
		return err
	}
	remaining := make([]byte, 0, len(items)*digest.Length)
	found := false
	for _, item := range items {
		if !found && bytes.Equal(item, id[:]) {
			found = true
			continue
		}
		remaining = append(remaining, item...)
	}
	if !found {
		b.log.Criticalf("auction: %v  missing from bucket: %d", id, auction.Expiry)
		return fault.ErrIndexCorrupt
	}

	if 0 == len(remaining) {
		trx.Delete(pool.AuctionBuckets, key)
	} else {
		trx.Put(pool.AuctionBuckets, key, remaining)
	}
	return nil
}

// winning reservation: seller gets high bid less fee, fee goes to payment
func (b *Book) pay(trx storage.Transaction, auction *Auction) error {
	pool := b.db.Pool
	id := auction.CreatureId
	winner := *auction.HighBidder

	reserved, _ := trx.GetN(pool.Bids, bidKey(id, winner))
	if reserved != auction.HighBid {
		b.log.Criticalf("settle: %v  winner: %v  reserved: %d  high bid: %d", id, winner, reserved, auction.HighBid)
		return fault.ErrInsufficientReserved
	}

	fee := feeOf(auction.HighBid, b.config.FeeRate)
	if err := b.currency.TransferReserved(winner, auction.Seller, auction.HighBid-fee); nil != err {
		return err
	}
	if fee > 0 {
		slashed, err := b.currency.SlashReserved(winner, fee)
		if nil != err {
			return err
		}
		if err := b.payment.OnPayment(slashed); nil != err {
			return err
		}
	}

	trx.Delete(pool.Bids, bidKey(id, winner))
	trx.Delete(pool.Bidders, id[:])

	b.log.Infof("sold: %v  seller: %v  buyer: %v  price: %d  fee: %d", id, auction.Seller, winner, auction.HighBid, fee)
	return nil
}

// release every reservation except that of keep, returning the total released
func (b *Book) refund(trx storage.Transaction, id digest.Digest, keep *account.Account) (uint64, error) {
	bidders, err := b.bidders(trx, id)
	if nil != err {
		return 0, err
	}
	total := uint64(0)
	for _, bidder := range bidders {
		if nil != keep && bidder == *keep {
			continue
		}
		amount, _ := trx.GetN(b.db.Pool.Bids, bidKey(id, bidder))
		if err := b.release(trx, id, bidder); nil != err {
			return 0, err
		}
		total += amount
	}
	return total, nil
}

// unreserve one bidder and drop them from the bid ledger
func (b *Book) release(trx storage.Transaction, id digest.Digest, bidder account.Account) error {
	pool := b.db.Pool
	key := bidKey(id, bidder)

	amount, found := trx.GetN(pool.Bids, key)
	if !found {
		b.log.Criticalf("release: %v  bidder: %v  has no reservation", id, bidder)
		return fault.ErrIndexCorrupt
	}
	if err := b.currency.Unreserve(bidder, amount); nil != err {
		return err
	}
	trx.Delete(pool.Bids, key)
	return b.removeBidder(trx, id, bidder)
}

func (b *Book) bidders(trx storage.Transaction, id digest.Digest) ([]account.Account, error) {
	var buffer []byte
	if nil == trx {
		buffer = b.db.Pool.Bidders.Get(id[:])
	} else {
		buffer = trx.Get(b.db.Pool.Bidders, id[:])
	}
	items, err := split(buffer, account.PublicKeyLength)
	if nil != err {
		return nil, err
	}
	accounts := make([]account.Account, len(items))
	for i, item := range items {
		copy(accounts[i][:], item)
	}
	return accounts, nil
}

func (b *Book) addBidder(trx storage.Transaction, id digest.Digest, bidder account.Account) error {
	bidders, err := b.bidders(trx, id)
	if nil != err {
		return err
	}
	for _, a := range bidders {
		if a == bidder {
			return nil
		}
	}
	buffer := trx.Get(b.db.Pool.Bidders, id[:])
	trx.Put(b.db.Pool.Bidders, id[:], append(buffer, bidder.Bytes()...))
	return nil
}

func (b *Book) removeBidder(trx storage.Transaction, id digest.Digest, bidder account.Account) error {
	bidders, err := b.bidders(trx, id)
	if nil != err {
		return err
	}
	buffer := make([]byte, 0, len(bidders)*account.PublicKeyLength)
	for _, a := range bidders {
		if a != bidder {
			buffer = append(buffer, a.Bytes()...)
		}
	}
	if 0 == len(buffer) {
		trx.Delete(b.db.Pool.Bidders, id[:])
	} else {
		trx.Put(b.db.Pool.Bidders, id[:], buffer)
	}
	return nil
}

// amount * rate / 10000 without intermediate overflow
func feeOf(amount uint64, rate uint64) uint64 {
	return amount/feeRateDivisor*rate + amount%feeRateDivisor*rate/feeRateDivisor
}
