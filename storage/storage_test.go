// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotmog/mogwaid/fault"
)

func setupTestDB(t *testing.T) *DB {
	db, err := OpenMemory()
	require.Nil(t, err, "open memory database")
	return db
}

func TestPoolPrefixes(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	assert.Equal(t, byte('M'), db.Pool.Creatures.prefix, "creatures prefix")
	assert.Equal(t, byte('Z'), db.Pool.TestData.prefix, "test data prefix")
	assert.Equal(t, []byte{'Z' + 1}, db.Pool.TestData.limit, "test data limit")
	assert.Equal(t, []byte{'Z', 'k', 'e', 'y'}, db.Pool.TestData.prefixKey([]byte("key")), "prefixed key")
}

func TestCommit(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	pool := db.Pool.TestData

	err := db.Update(func(trx Transaction) error {
		trx.Put(pool, []byte("one"), []byte("1"))
		trx.PutN(pool, []byte("two"), 2)

		// writes are visible before commit
		assert.Equal(t, []byte("1"), trx.Get(pool, []byte("one")), "pending put")
		n, found := trx.GetN(pool, []byte("two"))
		assert.True(t, found, "pending putN")
		assert.Equal(t, uint64(2), n, "pending putN value")
		assert.True(t, db.InTransaction(), "not in transaction")
		return nil
	})
	require.Nil(t, err, "update")

	assert.False(t, db.InTransaction(), "transaction still open")
	assert.Equal(t, []byte("1"), pool.Get([]byte("one")), "committed put")
	assert.True(t, pool.Has([]byte("two")), "committed putN")
	assert.False(t, pool.Has([]byte("three")), "unexpected key")
	assert.Nil(t, pool.Get([]byte("three")), "unexpected value")
}

func TestDeleteHidesCommittedValue(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	pool := db.Pool.TestData
	key := []byte("key")

	err := db.Update(func(trx Transaction) error {
		trx.Put(pool, key, []byte("value"))
		return nil
	})
	require.Nil(t, err, "first update")

	err = db.Update(func(trx Transaction) error {
		trx.Delete(pool, key)
		assert.False(t, trx.Has(pool, key), "deleted key still visible")
		assert.Nil(t, trx.Get(pool, key), "deleted value still visible")
		return nil
	})
	require.Nil(t, err, "second update")

	assert.False(t, pool.Has(key), "deleted key committed")
}

func TestAbort(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	pool := db.Pool.TestData
	failure := errors.New("failure")

	err := db.Update(func(trx Transaction) error {
		trx.Put(pool, []byte("key"), []byte("value"))
		return failure
	})
	assert.Equal(t, failure, err, "wrong error")
	assert.False(t, pool.Has([]byte("key")), "aborted write visible")
	assert.False(t, db.InTransaction(), "transaction still open")
}

func TestNestedRollback(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	pool := db.Pool.TestData
	failure := errors.New("inner failure")

	err := db.Update(func(trx Transaction) error {
		trx.Put(pool, []byte("outer"), []byte("kept"))
		trx.Put(pool, []byte("shared"), []byte("before"))

		innerErr := db.Update(func(inner Transaction) error {
			inner.Put(pool, []byte("inner"), []byte("lost"))
			inner.Put(pool, []byte("shared"), []byte("after"))
			inner.Delete(pool, []byte("outer"))
			return failure
		})
		assert.Equal(t, failure, innerErr, "wrong inner error")

		// state is restored to the savepoint
		assert.Equal(t, []byte("before"), trx.Get(pool, []byte("shared")), "shared not restored")
		assert.True(t, trx.Has(pool, []byte("outer")), "outer not restored")
		assert.False(t, trx.Has(pool, []byte("inner")), "inner not discarded")

		return db.Update(func(inner Transaction) error {
			inner.Put(pool, []byte("second"), []byte("kept"))
			return nil
		})
	})
	require.Nil(t, err, "outer update")

	assert.Equal(t, []byte("kept"), pool.Get([]byte("outer")), "outer write")
	assert.Equal(t, []byte("before"), pool.Get([]byte("shared")), "shared write")
	assert.Equal(t, []byte("kept"), pool.Get([]byte("second")), "second inner write")
	assert.False(t, pool.Has([]byte("inner")), "rolled back write committed")
}

func TestPanicRollsBack(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	pool := db.Pool.TestData

	assert.Panics(t, func() {
		_ = db.Update(func(trx Transaction) error {
			trx.Put(pool, []byte("key"), []byte("value"))
			panic("boom")
		})
	}, "panic not propagated")

	assert.False(t, db.InTransaction(), "transaction still open")

	err := db.Update(func(trx Transaction) error {
		assert.False(t, trx.Has(pool, []byte("key")), "write survived panic")
		return nil
	})
	assert.Nil(t, err, "update after panic")
}

func TestReopenAndReadOnly(t *testing.T) {
	dir, err := ioutil.TempDir("", "mogwaid-storage")
	require.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	name := filepath.Join(dir, "test.leveldb")

	db, err := Open(name, ReadWrite)
	require.Nil(t, err, "open read write")

	err = db.Update(func(trx Transaction) error {
		trx.PutN(db.Pool.Settings, []byte("height"), 42)
		return nil
	})
	require.Nil(t, err, "update")
	require.Nil(t, db.Close(), "close")

	db, err = Open(name, ReadOnly)
	require.Nil(t, err, "open read only")
	defer db.Close()

	assert.True(t, db.IsReadOnly(), "not read only")
	n, found := db.Pool.Settings.GetN([]byte("height"))
	assert.True(t, found, "height not found")
	assert.Equal(t, uint64(42), n, "height")

	err = db.Update(func(trx Transaction) error {
		return nil
	})
	assert.Equal(t, fault.ErrReadOnly, err, "update allowed on read only database")
}

func TestCloseTwice(t *testing.T) {
	db := setupTestDB(t)
	assert.Nil(t, db.Close(), "first close")
	assert.Equal(t, fault.ErrNotInitialised, db.Close(), "second close")
}
