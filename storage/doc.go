// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ⧺            = concatenation of byte data
// 3. block number = big endian uint64 (8 bytes)
// 4. id           = creature or game event digest as 32 byte SHA3-256(data)
// 5. position     = index in a dense enumeration as big endian uint64 (8 bytes)
// 6. count        = number of entries as big endian uint64 (8 bytes)
// 7. account      = 32 byte public key
// 8. *packed*     = Varint64 / fixed field record, see the owning package
//
// Creatures:
//
//   M ⧺ id                  - creature record
//                             data: packed creature
//   B ⧺ id                  - creature bio
//                             data: packed bio
//   W ⧺ id                  - current owner
//                             data: account
//
// Enumerations:
//
//   G ⧺ position            - all creatures
//                             data: id
//   g ⧺ id                  - reverse of G
//                             data: position
//   n                       - number of creatures
//                             data: count
//   L ⧺ account ⧺ position  - creatures of one owner
//                             data: id
//   D ⧺ account ⧺ id        - reverse of L
//                             data: position
//   N ⧺ account             - number of creatures of one owner
//                             data: count
//
// Auctions:
//
//   U ⧺ id                  - live auction of a creature
//                             data: packed auction
//   X ⧺ block number        - auctions expiring at block, in insertion order
//                             data: id ⧺ id ⧺ …
//   K ⧺ block number        - auctions created during block
//                             data: count
//   P ⧺ id ⧺ account        - amount reserved by a bidder
//                             data: count
//   Q ⧺ id                  - distinct bidders holding a reservation
//                             data: account ⧺ account ⧺ …
//
// Game events:
//
//   E ⧺ id                  - game event
//                             data: packed event
//   e ⧺ block number        - events triggered during block
//                             data: count
//
// Balances:
//
//   F ⧺ account             - free balance
//                             data: count
//   R ⧺ account             - reserved balance
//                             data: count
//
// Settings:
//
//   S ⧺ name                - named counters (nonces, processed height)
//                             data: count
//
// Testing:
//
//   Z ⧺ key                 - testing data
package storage
