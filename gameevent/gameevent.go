// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package gameevent - externally triggered game events
//
// an event is linked into the bio of every creature it names: its id
// is appended to the adaptations and the trigger block to the phases
package gameevent

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/dotmog/mogwaid/digest"
	"github.com/dotmog/mogwaid/fault"
	"github.com/dotmog/mogwaid/ledger"
	"github.com/dotmog/mogwaid/storage"
)

// DefaultMaximumPerBlock - events that can be triggered in one block
const DefaultMaximumPerBlock = 10

var nonceKey = []byte("event-nonce")

// Creatures - the parts of the creature ledger used by events
type Creatures interface {
	Exists(id digest.Digest) bool
	UpdateBio(id digest.Digest, f func(bio *ledger.Bio) error) error
}

// Configuration - event limits
type Configuration struct {
	MaximumPerBlock int `gluamapper:"maximum_per_block" json:"maximum_per_block"`
}

// Events - the game event store
type Events struct {
	db        *storage.DB
	log       *logger.L
	creatures Creatures
	maximum   int
}

// New - create the event store
func New(db *storage.DB, log *logger.L, creatures Creatures, config Configuration) *Events {
	maximum := config.MaximumPerBlock
	if maximum <= 0 {
		maximum = DefaultMaximumPerBlock
	}
	return &Events{
		db:        db,
		log:       log,
		creatures: creatures,
		maximum:   maximum,
	}
}

// Trigger - record an event at block now and apply it to the named creatures
func (e *Events) Trigger(now uint64, eventType Type, duration uint16, hashes []digest.Digest, value uint64) (*Event, error) {
	if !eventType.Valid() {
		return nil, fault.ErrInvalidEventType
	}
	if 0 == len(hashes) {
		return nil, fault.ErrNoCreatures
	}
	seen := make(map[digest.Digest]struct{}, len(hashes))
	for _, h := range hashes {
		if _, ok := seen[h]; ok {
			return nil, fault.ErrDuplicateCreature
		}
		seen[h] = struct{}{}
	}

	event := &Event{
		Begin:    now,
		Duration: duration,
		Type:     eventType,
		Hashes:   append([]digest.Digest{}, hashes...),
		Value:    value,
	}

	err := e.db.Update(func(trx storage.Transaction) error {
		pool := e.db.Pool

		for _, h := range hashes {
			if !e.creatures.Exists(h) {
				return fault.ErrCreatureNotFound
			}
		}

		created, _ := trx.GetN(pool.EventCreated, blockKey(now))
		if created >= uint64(e.maximum) {
			return fault.ErrTooManyEvents
		}

		nonce, _ := trx.GetN(pool.Settings, nonceKey)
		event.Id = eventId(event, nonce)
		if trx.Has(pool.GameEvents, event.Id[:]) {
			e.log.Criticalf("trigger: id collision: %v  nonce: %d", event.Id, nonce)
			return fault.ErrAlreadyIndexed
		}

		trx.PutN(pool.Settings, nonceKey, nonce+1)
		trx.Put(pool.GameEvents, event.Id[:], event.pack())
		trx.PutN(pool.EventCreated, blockKey(now), created+1)

		for _, h := range hashes {
			err := e.creatures.UpdateBio(h, func(bio *ledger.Bio) error {
				bio.Adaptations = append(bio.Adaptations, event.Id)
				bio.Phases = append(bio.Phases, now)
				if Hatch == eventType {
					bio.State = bio.State.Set(ledger.StateHatched)
				}
				return nil
			})
			if nil != err {
				return err
			}
		}
		return nil
	})
	if nil != err {
		return nil, err
	}

	e.log.Debugf("trigger: %v  type: %s  creatures: %d", event.Id, eventType, len(hashes))
	return event, nil
}

// Get - read an event
func (e *Events) Get(id digest.Digest) (*Event, error) {
	buffer := e.db.Pool.GameEvents.Get(id[:])
	if nil == buffer {
		return nil, fault.ErrEventNotFound
	}
	event, err := unpackEvent(id, buffer)
	if nil != err {
		e.log.Criticalf("event: %v  record: %x  error: %s", id, buffer, err)
		return nil, err
	}
	return event, nil
}

// CreatedAt - number of events triggered during a block
func (e *Events) CreatedAt(height uint64) uint64 {
	n, _ := e.db.Pool.EventCreated.GetN(blockKey(height))
	return n
}

// DiscardBlock - drop the admission counter of a processed block
func (e *Events) DiscardBlock(height uint64) error {
	return e.db.Update(func(trx storage.Transaction) error {
		trx.Delete(e.db.Pool.EventCreated, blockKey(height))
		return nil
	})
}

func eventId(event *Event, nonce uint64) digest.Digest {
	seed := event.pack()
	n := make([]byte, 8)
	binary.BigEndian.PutUint64(n, nonce)
	return digest.New(append(seed, n...))
}

func blockKey(height uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, height)
	return key
}
