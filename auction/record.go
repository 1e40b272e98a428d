// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auction

import (
	"encoding/binary"

	"github.com/dotmog/mogwaid/account"
	"github.com/dotmog/mogwaid/digest"
	"github.com/dotmog/mogwaid/fault"
	"github.com/dotmog/mogwaid/util"
)

// Auction - a live auction
//
// HighBidder is nil until the first bid is accepted
type Auction struct {
	CreatureId digest.Digest    `json:"creatureId"`
	Seller     account.Account  `json:"seller"`
	Expiry     uint64           `json:"expiry"`
	MinBid     uint64           `json:"minBid"`
	HighBid    uint64           `json:"highBid"`
	HighBidder *account.Account `json:"highBidder"`
}

// Contested - true once a bid has been accepted
func (a *Auction) Contested() bool {
	return nil != a.HighBidder
}

func (a *Auction) pack() []byte {
	p := util.Packer{}
	p.Fixed(a.Seller.Bytes())
	p.Varint(a.Expiry)
	p.Varint(a.MinBid)
	p.Varint(a.HighBid)
	if nil == a.HighBidder {
		p.Byte(0)
	} else {
		p.Byte(1)
		p.Fixed(a.HighBidder.Bytes())
	}
	return p
}

func unpackAuction(id digest.Digest, buffer []byte) (*Auction, error) {
	u := util.NewUnpacker(buffer)

	a := &Auction{
		CreatureId: id,
	}
	seller, err := account.FromBytes(u.Fixed(account.PublicKeyLength))
	if nil != err {
		return nil, fault.ErrRecordCorrupt
	}
	a.Seller = seller
	a.Expiry = u.Varint()
	a.MinBid = u.Varint()
	a.HighBid = u.Varint()

	switch u.Byte() {
	case 0:
	case 1:
		bidder, err := account.FromBytes(u.Fixed(account.PublicKeyLength))
		if nil != err {
			return nil, fault.ErrRecordCorrupt
		}
		a.HighBidder = &bidder
	default:
		return nil, fault.ErrRecordCorrupt
	}

	if err := u.Done(); nil != err {
		return nil, err
	}
	return a, nil
}

// block number key for buckets and counters
func blockKey(height uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, height)
	return key
}

// bid ledger key: id ⧺ bidder
func bidKey(id digest.Digest, bidder account.Account) []byte {
	key := make([]byte, 0, digest.Length+account.PublicKeyLength)
	key = append(key, id[:]...)
	return append(key, bidder.Bytes()...)
}

// split a concatenated list of fixed size items
func split(buffer []byte, size int) ([][]byte, error) {
	if 0 != len(buffer)%size {
		return nil, fault.ErrRecordCorrupt
	}
	items := make([][]byte, 0, len(buffer)/size)
	for i := 0; i < len(buffer); i += size {
		items = append(items, buffer[i:i+size])
	}
	return items, nil
}
