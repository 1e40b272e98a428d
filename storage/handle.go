// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
)

// PoolHandle - handle for a storage pool
//
// reads see the writes of the currently open transaction
type PoolHandle struct {
	prefix byte
	limit  []byte
	db     *DB
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Get - read a value for a given key
//
// returns nil if the key does not exist
func (p *PoolHandle) Get(key []byte) []byte {
	prefixedKey := p.prefixKey(key)

	value, op, found := p.db.trx.cache.Get(string(prefixedKey))
	if found {
		if dbDelete == op {
			return nil
		}
		result := make([]byte, len(value))
		copy(result, value)
		return result
	}

	if nil == p.db.database {
		return nil
	}
	value, err := p.db.database.Get(prefixedKey, nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("pool.Get", err)
	return value
}

// GetN - read a record and decode first 8 bytes as big endian uint64
//
// second parameter is false if record was not found
// panics if not 8 (or more) bytes in the record
func (p *PoolHandle) GetN(key []byte) (uint64, bool) {
	buffer := p.Get(key)
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < 8 {
		logger.Panicf("pool.GetN truncated record for: %x: %x", key, buffer)
	}
	n := binary.BigEndian.Uint64(buffer[:8])
	return n, true
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	prefixedKey := p.prefixKey(key)

	_, op, found := p.db.trx.cache.Get(string(prefixedKey))
	if found {
		return dbPut == op
	}

	if nil == p.db.database {
		return false
	}
	value, err := p.db.database.Has(prefixedKey, nil)
	logger.PanicIfError("pool.Has", err)
	return value
}
