// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/dotmog/mogwaid/fault"
)

// Element - a key/value pair from a pool, key without the prefix
type Element struct {
	Key   []byte
	Value []byte
}

// FetchCursor - walks a pool in key order
//
// only committed records are visible, an open transaction is not
type FetchCursor struct {
	pool     *PoolHandle
	keyRange util.Range
}

// NewFetchCursor - cursor at the first key of the pool
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		keyRange: util.Range{
			Start: []byte{p.prefix},
			Limit: p.limit,
		},
	}
}

// Seek - move to the first key not less than key
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.keyRange.Start = cursor.pool.prefixKey(key)
	return cursor
}

// Fetch - up to count elements, a following Fetch continues after the last one
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	results := make([]Element, 0, count)
	err := cursor.walk(func(key []byte, value []byte) bool {
		results = append(results, Element{Key: key, Value: value})
		return len(results) < count
	})

	if n := len(results); n > 0 {
		// smallest key greater than the last one returned
		next := cursor.pool.prefixKey(results[n-1].Key)
		cursor.keyRange.Start = append(next, 0x00)
	}
	return results, err
}

// Map - run f on every remaining element, stop on its first error
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	var ferr error
	err := cursor.walk(func(key []byte, value []byte) bool {
		ferr = f(key, value)
		return nil == ferr
	})
	if nil != ferr {
		return ferr
	}
	return err
}

func (cursor *FetchCursor) walk(f func(key []byte, value []byte) bool) error {
	database := cursor.pool.db.database
	if nil == database {
		return fault.ErrNotInitialised
	}

	iter := database.NewIterator(&cursor.keyRange, nil)
	defer iter.Release()

	for iter.Next() {

		// iterator slices are only valid until the next call to Next
		key := make([]byte, len(iter.Key())-1)
		copy(key, iter.Key()[1:])
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())

		if !f(key, value) {
			break
		}
	}
	return iter.Error()
}
