// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/dotmog/mogwaid/account"
	"github.com/dotmog/mogwaid/digest"
	"github.com/dotmog/mogwaid/enumerable"
	"github.com/dotmog/mogwaid/fault"
	"github.com/dotmog/mogwaid/storage"
)

// settings key of the creature id nonce
var nonceKey = []byte("creature-nonce")

// Ledger - creatures, their bios and their owners
type Ledger struct {
	db  *storage.DB
	log *logger.L
	all *enumerable.Domain
}

// New - create a ledger on an open database
func New(db *storage.DB, log *logger.L) *Ledger {
	return &Ledger{
		db:  db,
		log: log,
		all: enumerable.New(db.Pool.AllArray, db.Pool.AllIndex, db.Pool.AllCount, nil),
	}
}

func (l *Ledger) owned(owner account.Account) *enumerable.Domain {
	p := l.db.Pool
	return enumerable.New(p.OwnedArray, p.OwnedIndex, p.OwnedCount, owner.Bytes())
}

// Create - add a new creature for an owner
//
// the id is derived from the owner, dna and block height plus a
// stored nonce, so repeated calls with the same arguments differ
func (l *Ledger) Create(owner account.Account, dna digest.Digest, generation uint32, rarity Rarity, price uint64, now uint64) (digest.Digest, error) {
	id := digest.Digest{}

	if owner.IsZero() {
		return id, fault.ErrInvalidAccount
	}
	if !rarity.Valid() {
		return id, fault.ErrInvalidRarity
	}

	err := l.db.Update(func(trx storage.Transaction) error {
		pool := l.db.Pool

		nonce, _ := trx.GetN(pool.Settings, nonceKey)

		seed := make([]byte, 0, len(owner)+len(dna)+16)
		seed = append(seed, owner.Bytes()...)
		seed = append(seed, dna[:]...)
		seed = appendUint64(seed, now)
		seed = appendUint64(seed, nonce)
		id = digest.New(seed)

		if trx.Has(pool.Creatures, id[:]) {
			l.log.Criticalf("create: id collision: %v  nonce: %d", id, nonce)
			return fault.ErrCreatureExists
		}

		creature := Creature{
			Id:         id,
			Dna:        dna,
			Genesis:    now,
			Price:      price,
			Generation: generation,
			Rarity:     rarity,
		}
		bio := Bio{
			Id: id,
		}

		trx.PutN(pool.Settings, nonceKey, nonce+1)
		trx.Put(pool.Creatures, id[:], creature.pack())
		trx.Put(pool.Bios, id[:], bio.pack())
		trx.Put(pool.Owners, id[:], owner.Bytes())

		if _, err := l.all.Append(trx, id); nil != err {
			l.log.Criticalf("create: id: %v  global index error: %s", id, err)
			return err
		}
		if _, err := l.owned(owner).Append(trx, id); nil != err {
			l.log.Criticalf("create: id: %v  owner: %v  owner index error: %s", id, owner, err)
			return err
		}
		return nil
	})
	if nil != err {
		return digest.Digest{}, err
	}

	l.log.Debugf("created: %v  owner: %v  rarity: %s", id, owner, rarity)
	return id, nil
}

// Transfer - move a creature from one owner to another
func (l *Ledger) Transfer(id digest.Digest, from account.Account, to account.Account) error {
	return l.db.Update(func(trx storage.Transaction) error {
		pool := l.db.Pool

		owner, err := l.ownerOf(trx, id)
		if nil != err {
			return err
		}
		if owner != from {
			return fault.ErrNotOwner
		}
		if to.IsZero() {
			return fault.ErrInvalidAccount
		}
		if from == to {
			return fault.ErrSameOwner
		}
		bio, err := l.bio(trx, id)
		if nil != err {
			return err
		}
		if bio.State.Has(StateListed) {
			return fault.ErrCreatureListed
		}

		if err := l.owned(from).SwapRemove(trx, id); nil != err {
			l.log.Criticalf("transfer: id: %v  from: %v  owner index error: %s", id, from, err)
			return fault.ErrIndexCorrupt
		}
		if _, err := l.owned(to).Append(trx, id); nil != err {
			l.log.Criticalf("transfer: id: %v  to: %v  owner index error: %s", id, to, err)
			return err
		}
		trx.Put(pool.Owners, id[:], to.Bytes())

		l.log.Debugf("transfer: %v  from: %v  to: %v", id, from, to)
		return nil
	})
}

// Burn - remove a creature permanently
func (l *Ledger) Burn(id digest.Digest) error {
	return l.db.Update(func(trx storage.Transaction) error {
		pool := l.db.Pool

		owner, err := l.ownerOf(trx, id)
		if nil != err {
			return err
		}
		bio, err := l.bio(trx, id)
		if nil != err {
			return err
		}
		if bio.State.Has(StateListed) {
			return fault.ErrCreatureListed
		}

		if err := l.all.SwapRemove(trx, id); nil != err {
			l.log.Criticalf("burn: id: %v  global index error: %s", id, err)
			return fault.ErrIndexCorrupt
		}
		if err := l.owned(owner).SwapRemove(trx, id); nil != err {
			l.log.Criticalf("burn: id: %v  owner: %v  owner index error: %s", id, owner, err)
			return fault.ErrIndexCorrupt
		}
		trx.Delete(pool.Owners, id[:])
		trx.Delete(pool.Bios, id[:])
		trx.Delete(pool.Creatures, id[:])

		l.log.Debugf("burn: %v  owner: %v", id, owner)
		return nil
	})
}

// SetPrice - record the last sale price
func (l *Ledger) SetPrice(id digest.Digest, price uint64) error {
	return l.db.Update(func(trx storage.Transaction) error {
		creature, err := l.creature(trx, id)
		if nil != err {
			return err
		}
		creature.Price = price
		trx.Put(l.db.Pool.Creatures, id[:], creature.pack())
		return nil
	})
}

// UpdateBio - apply a change to the bio of a creature
//
// f receives a copy, nothing is stored if it returns an error;
// the listed flag is kept as stored, only SetListed changes it
func (l *Ledger) UpdateBio(id digest.Digest, f func(bio *Bio) error) error {
	return l.db.Update(func(trx storage.Transaction) error {
		bio, err := l.bio(trx, id)
		if nil != err {
			return err
		}
		listed := bio.State & StateListed
		if err := f(bio); nil != err {
			return err
		}
		if bio.Level > MaximumLevel {
			return fault.ErrInvalidLevel
		}
		bio.State = bio.State.Clear(StateListed) | listed
		bio.Id = id
		trx.Put(l.db.Pool.Bios, id[:], bio.pack())
		return nil
	})
}

// SetListed - raise or lower the auction lock of a creature
func (l *Ledger) SetListed(id digest.Digest, listed bool) error {
	return l.db.Update(func(trx storage.Transaction) error {
		bio, err := l.bio(trx, id)
		if nil != err {
			return err
		}
		if listed {
			bio.State = bio.State.Set(StateListed)
		} else {
			bio.State = bio.State.Clear(StateListed)
		}
		bio.Id = id
		trx.Put(l.db.Pool.Bios, id[:], bio.pack())
		return nil
	})
}

// Exists - true if the creature is live
func (l *Ledger) Exists(id digest.Digest) bool {
	return l.db.Pool.Creatures.Has(id[:])
}

// Creature - read a creature
func (l *Ledger) Creature(id digest.Digest) (*Creature, error) {
	return l.creature(nil, id)
}

// Bio - read the bio of a creature
func (l *Ledger) Bio(id digest.Digest) (*Bio, error) {
	return l.bio(nil, id)
}

// OwnerOf - the current owner of a creature
func (l *Ledger) OwnerOf(id digest.Digest) (account.Account, error) {
	return l.ownerOf(nil, id)
}

// Count - number of live creatures
func (l *Ledger) Count() uint64 {
	return l.all.Count()
}

// CreatureByIndex - the creature at a position of the global enumeration
func (l *Ledger) CreatureByIndex(index uint64) (digest.Digest, error) {
	return l.all.At(index)
}

// OwnedCount - number of creatures held by an owner
func (l *Ledger) OwnedCount(owner account.Account) uint64 {
	return l.owned(owner).Count()
}

// OwnedByIndex - the creature at a position of an owner's enumeration
func (l *Ledger) OwnedByIndex(owner account.Account, index uint64) (digest.Digest, error) {
	return l.owned(owner).At(index)
}

// ListOwned - a page of an owner's creatures
func (l *Ledger) ListOwned(owner account.Account, start uint64, count int) ([]digest.Digest, error) {
	return l.owned(owner).List(start, count)
}

// read through the transaction if one is given
func get(trx storage.Transaction, pool *storage.PoolHandle, key []byte) []byte {
	if nil == trx {
		return pool.Get(key)
	}
	return trx.Get(pool, key)
}

func (l *Ledger) creature(trx storage.Transaction, id digest.Digest) (*Creature, error) {
	buffer := get(trx, l.db.Pool.Creatures, id[:])
	if nil == buffer {
		return nil, fault.ErrCreatureNotFound
	}
	creature, err := unpackCreature(id, buffer)
	if nil != err {
		l.log.Criticalf("creature: %v  record: %x  error: %s", id, buffer, err)
		return nil, err
	}
	return creature, nil
}

func (l *Ledger) bio(trx storage.Transaction, id digest.Digest) (*Bio, error) {
	buffer := get(trx, l.db.Pool.Bios, id[:])
	if nil == buffer {
		return nil, fault.ErrCreatureNotFound
	}
	bio, err := unpackBio(id, buffer)
	if nil != err {
		l.log.Criticalf("bio: %v  record: %x  error: %s", id, buffer, err)
		return nil, err
	}
	return bio, nil
}

func (l *Ledger) ownerOf(trx storage.Transaction, id digest.Digest) (account.Account, error) {
	buffer := get(trx, l.db.Pool.Owners, id[:])
	if nil == buffer {
		return account.Account{}, fault.ErrCreatureNotFound
	}
	owner, err := account.FromBytes(buffer)
	if nil != err {
		l.log.Criticalf("owner: %v  record: %x  error: %s", id, buffer, err)
		return account.Account{}, fault.ErrRecordCorrupt
	}
	return owner, nil
}

func appendUint64(buffer []byte, n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return append(buffer, b...)
}
