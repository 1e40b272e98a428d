// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package enumerable

import (
	"encoding/binary"

	"github.com/dotmog/mogwaid/digest"
	"github.com/dotmog/mogwaid/fault"
	"github.com/dotmog/mogwaid/storage"
)

// Domain - one enumeration, e.g. all creatures or the creatures of one owner
type Domain struct {
	array   *storage.PoolHandle
	reverse *storage.PoolHandle
	count   *storage.PoolHandle
	scope   []byte
}

// New - create a domain over three pools
//
// scope is prepended to every key, nil for a pool wide domain
func New(array, reverse, count *storage.PoolHandle, scope []byte) *Domain {
	s := make([]byte, len(scope))
	copy(s, scope)
	return &Domain{
		array:   array,
		reverse: reverse,
		count:   count,
		scope:   s,
	}
}

func (d *Domain) arrayKey(position uint64) []byte {
	key := make([]byte, len(d.scope)+8)
	copy(key, d.scope)
	binary.BigEndian.PutUint64(key[len(d.scope):], position)
	return key
}

func (d *Domain) reverseKey(id digest.Digest) []byte {
	key := make([]byte, 0, len(d.scope)+digest.Length)
	key = append(key, d.scope...)
	return append(key, id[:]...)
}

// Count - number of ids in the domain
func (d *Domain) Count() uint64 {
	n, _ := d.count.GetN(d.scope)
	return n
}

// At - the id stored at a position
func (d *Domain) At(position uint64) (digest.Digest, error) {
	id := digest.Digest{}
	if position >= d.Count() {
		return id, fault.ErrIndexEntryNotFound
	}
	buffer := d.array.Get(d.arrayKey(position))
	if nil == buffer {
		return id, fault.ErrIndexCorrupt
	}
	if err := digest.FromBytes(&id, buffer); nil != err {
		return id, fault.ErrIndexCorrupt
	}
	return id, nil
}

// Position - the position of an id
func (d *Domain) Position(id digest.Digest) (uint64, bool) {
	return d.reverse.GetN(d.reverseKey(id))
}

// Contains - true if the id is enumerated
func (d *Domain) Contains(id digest.Digest) bool {
	return d.reverse.Has(d.reverseKey(id))
}

// List - up to count ids starting at a position
func (d *Domain) List(start uint64, count int) ([]digest.Digest, error) {
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	total := d.Count()
	if start >= total {
		return []digest.Digest{}, nil
	}
	if remaining := total - start; uint64(count) > remaining {
		count = int(remaining)
	}

	ids := make([]digest.Digest, 0, count)
	for i := 0; i < count; i += 1 {
		id, err := d.At(start + uint64(i))
		if nil != err {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Append - add an id at the end, returning its position
func (d *Domain) Append(trx storage.Transaction, id digest.Digest) (uint64, error) {
	reverseKey := d.reverseKey(id)
	if trx.Has(d.reverse, reverseKey) {
		return 0, fault.ErrAlreadyIndexed
	}

	position, _ := trx.GetN(d.count, d.scope)

	trx.Put(d.array, d.arrayKey(position), id[:])
	trx.PutN(d.reverse, reverseKey, position)
	trx.PutN(d.count, d.scope, position+1)

	return position, nil
}

// SwapRemove - remove an id by moving the last id into its slot
func (d *Domain) SwapRemove(trx storage.Transaction, id digest.Digest) error {
	reverseKey := d.reverseKey(id)
	position, found := trx.GetN(d.reverse, reverseKey)
	if !found {
		return fault.ErrIndexEntryNotFound
	}

	count, _ := trx.GetN(d.count, d.scope)
	if 0 == count || position >= count {
		return fault.ErrIndexCorrupt
	}
	last := count - 1

	if position != last {
		lastKey := d.arrayKey(last)
		moved := trx.Get(d.array, lastKey)
		if digest.Length != len(moved) {
			return fault.ErrIndexCorrupt
		}
		trx.Put(d.array, d.arrayKey(position), moved)
		trx.PutN(d.reverse, append(append([]byte{}, d.scope...), moved...), position)
	}

	trx.Delete(d.array, d.arrayKey(last))
	trx.Delete(d.reverse, reverseKey)

	if 0 == last {
		trx.Delete(d.count, d.scope)
	} else {
		trx.PutN(d.count, d.scope, last)
	}
	return nil
}
