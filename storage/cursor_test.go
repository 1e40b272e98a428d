// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotmog/mogwaid/fault"
)

func fillTestData(t *testing.T, db *DB, keys ...string) {
	err := db.Update(func(trx Transaction) error {
		for _, k := range keys {
			trx.Put(db.Pool.TestData, []byte(k), []byte("v-"+k))
		}
		return nil
	})
	require.Nil(t, err, "fill")
}

func TestFetchCursor(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	fillTestData(t, db, "b", "a", "ab", "c")

	// neighbouring pool must not leak into the range
	err := db.Update(func(trx Transaction) error {
		trx.Put(db.Pool.Settings, []byte("zz"), []byte("x"))
		return nil
	})
	require.Nil(t, err, "settings")

	cursor := db.Pool.TestData.NewFetchCursor()

	first, err := cursor.Fetch(2)
	assert.Nil(t, err, "first fetch")
	assert.Equal(t, []Element{
		{Key: []byte("a"), Value: []byte("v-a")},
		{Key: []byte("ab"), Value: []byte("v-ab")},
	}, first, "first page")

	second, err := cursor.Fetch(5)
	assert.Nil(t, err, "second fetch")
	assert.Equal(t, 2, len(second), "second page size")
	assert.Equal(t, []byte("b"), second[0].Key, "continuation")
	assert.Equal(t, []byte("c"), second[1].Key, "last key")

	third, err := cursor.Fetch(5)
	assert.Nil(t, err, "third fetch")
	assert.Equal(t, 0, len(third), "past the end")

	_, err = cursor.Fetch(0)
	assert.Equal(t, fault.ErrInvalidCount, err, "zero count")
}

func TestFetchCursorSeek(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	fillTestData(t, db, "a", "b", "c")

	elements, err := db.Pool.TestData.NewFetchCursor().Seek([]byte("b")).Fetch(10)
	assert.Nil(t, err, "fetch")
	assert.Equal(t, 2, len(elements), "seek start")
	assert.Equal(t, []byte("b"), elements[0].Key, "seek key included")
}

func TestFetchCursorMap(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	fillTestData(t, db, "a", "b", "c")

	keys := []string{}
	err := db.Pool.TestData.NewFetchCursor().Map(func(key []byte, value []byte) error {
		keys = append(keys, string(key))
		return nil
	})
	assert.Nil(t, err, "map")
	assert.Equal(t, []string{"a", "b", "c"}, keys, "map order")

	stop := errors.New("stop")
	n := 0
	err = db.Pool.TestData.NewFetchCursor().Map(func(key []byte, value []byte) error {
		n += 1
		return stop
	})
	assert.Equal(t, stop, err, "map error")
	assert.Equal(t, 1, n, "map did not stop")
}

func TestFetchCursorIgnoresOpenTransaction(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	fillTestData(t, db, "a")

	err := db.Update(func(trx Transaction) error {
		trx.Put(db.Pool.TestData, []byte("b"), []byte("pending"))
		elements, err := db.Pool.TestData.NewFetchCursor().Fetch(10)
		assert.Nil(t, err, "fetch")
		assert.Equal(t, 1, len(elements), "pending write visible")
		return nil
	})
	require.Nil(t, err, "update")
}
