// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/dotmog/mogwaid/fault"
)

// Transaction - the write side of an atomic unit
type Transaction interface {
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
}

// one pending write
type operation struct {
	op    dbOperation
	key   []byte
	value []byte
}

type transaction struct {
	database *leveldb.DB
	depth    int
	ops      []operation
	cache    Cache
}

func newTransaction(database *leveldb.DB) *transaction {
	return &transaction{
		database: database,
		cache:    newCache(),
	}
}

// Update - run f as an atomic unit
//
// all writes made through the transaction are committed in a single
// batch when the outermost unit returns nil.  A unit that returns an
// error is rolled back to the point it started, an enclosing unit can
// then continue and still commit its own writes.
func (d *DB) Update(f func(trx Transaction) error) error {
	if d.readOnly {
		return fault.ErrReadOnly
	}

	t := d.trx
	mark := len(t.ops)

	t.depth += 1
	completed := false
	defer func() {
		if !completed {
			t.depth -= 1
			t.rollback(mark)
		}
	}()

	err := f(t)

	completed = true
	t.depth -= 1

	if nil != err {
		t.rollback(mark)
		return err
	}
	if 0 == t.depth {
		return t.commit()
	}
	return nil
}

// InTransaction - true while an atomic unit is running
func (d *DB) InTransaction() bool {
	return d.trx.depth > 0
}

// Put - store a key/value bytes pair
func (t *transaction) Put(handle *PoolHandle, key []byte, value []byte) {
	data := make([]byte, len(value))
	copy(data, value)
	t.record(dbPut, handle.prefixKey(key), data)
}

// PutN - store a big endian uint64 value
func (t *transaction) PutN(handle *PoolHandle, key []byte, value uint64) {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, value)
	t.record(dbPut, handle.prefixKey(key), data)
}

// Delete - remove a key
func (t *transaction) Delete(handle *PoolHandle, key []byte) {
	t.record(dbDelete, handle.prefixKey(key), nil)
}

func (t *transaction) Get(handle *PoolHandle, key []byte) []byte {
	return handle.Get(key)
}

func (t *transaction) GetN(handle *PoolHandle, key []byte) (uint64, bool) {
	return handle.GetN(key)
}

func (t *transaction) Has(handle *PoolHandle, key []byte) bool {
	return handle.Has(key)
}

func (t *transaction) record(op dbOperation, key []byte, value []byte) {
	t.ops = append(t.ops, operation{
		op:    op,
		key:   key,
		value: value,
	})
	t.cache.Set(op, string(key), value)
}

// discard every write after mark and rebuild the overlay
func (t *transaction) rollback(mark int) {
	if mark >= len(t.ops) {
		return
	}
	t.ops = t.ops[:mark]
	t.cache.Clear()
	for _, o := range t.ops {
		t.cache.Set(o.op, string(o.key), o.value)
	}
}

func (t *transaction) commit() error {
	batch := new(leveldb.Batch)
	for _, o := range t.ops {
		switch o.op {
		case dbPut:
			batch.Put(o.key, o.value)
		case dbDelete:
			batch.Delete(o.key)
		}
	}

	t.ops = nil
	t.cache.Clear()

	if 0 == batch.Len() {
		return nil
	}
	return t.database.Write(batch, nil)
}
