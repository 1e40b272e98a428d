// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/dotmog/mogwaid/fault"
)

// Pools - the set of exported pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type Pools struct {
	Creatures        *PoolHandle `prefix:"M"`
	Bios             *PoolHandle `prefix:"B"`
	Owners           *PoolHandle `prefix:"W"`
	AllArray         *PoolHandle `prefix:"G"`
	AllIndex         *PoolHandle `prefix:"g"`
	AllCount         *PoolHandle `prefix:"n"`
	OwnedArray       *PoolHandle `prefix:"L"`
	OwnedIndex       *PoolHandle `prefix:"D"`
	OwnedCount       *PoolHandle `prefix:"N"`
	Auctions         *PoolHandle `prefix:"U"`
	AuctionBuckets   *PoolHandle `prefix:"X"`
	AuctionCreated   *PoolHandle `prefix:"K"`
	Bids             *PoolHandle `prefix:"P"`
	Bidders          *PoolHandle `prefix:"Q"`
	GameEvents       *PoolHandle `prefix:"E"`
	EventCreated     *PoolHandle `prefix:"e"`
	FreeBalances     *PoolHandle `prefix:"F"`
	ReservedBalances *PoolHandle `prefix:"R"`
	Settings         *PoolHandle `prefix:"S"`
	TestData         *PoolHandle `prefix:"Z"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// DB - an open database and its pools
type DB struct {
	Pool     Pools
	database *leveldb.DB
	readOnly bool
	trx      *transaction
}

// Open - open up the database connection
func Open(name string, readOnly bool) (*DB, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}
	return setup(db, readOnly)
}

// OpenMemory - open a database that only lives in memory
func OpenMemory() (*DB, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return setup(db, ReadWrite)
}

func setup(db *leveldb.DB, readOnly bool) (*DB, error) {
	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	version, err := getVersion(db)
	if nil != err {
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		return nil, fault.ErrDatabaseVersion
	}

	if 0 == version && !readOnly {
		// database was empty so tag as current version
		if err := putVersion(db, currentDBVersion); nil != err {
			return nil, err
		}
	}

	d := &DB{
		database: db,
		readOnly: readOnly,
	}
	d.trx = newTransaction(db)

	if err := d.createPools(); nil != err {
		return nil, err
	}

	ok = true // prevent db close
	return d, nil
}

// scan each field of the pool structure and create the handles
func (d *DB) createPools() error {

	// this will be a struct type
	poolType := reflect.TypeOf(d.Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&d.Pool).Elem()

	seen := make(map[byte]string)

	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo.Name, prefixTag)
		}

		prefix := prefixTag[0]
		if 0 == prefix {
			return fault.ErrInvalidPoolPrefix
		}
		if other, ok := seen[prefix]; ok {
			return fmt.Errorf("pool: %s duplicates prefix of: %s", fieldInfo.Name, other)
		}
		seen[prefix] = fieldInfo.Name

		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix: prefix,
			limit:  limit,
			db:     d,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}
	return nil
}

// Close - close the database connection
func (d *DB) Close() error {
	if nil == d.database {
		return fault.ErrNotInitialised
	}
	err := d.database.Close()
	d.database = nil
	return err
}

// IsReadOnly - true if the database was opened read only
func (d *DB) IsReadOnly() bool {
	return d.readOnly
}

// return the stored version, zero if the database is empty
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
