// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type CapacityError GenericError
type FundsError GenericError
type InvalidError GenericError
type InvariantError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyHighBidder      = InvalidError("account already holds the high bid")
	ErrAlreadyIndexed         = InvariantError("identifier is already indexed")
	ErrAlreadyInitialised     = ProcessError("already initialised")
	ErrAuctionContested       = InvalidError("auction has bids and cannot be cancelled")
	ErrAuctionExists          = InvalidError("creature already has a live auction")
	ErrAuctionNotFound        = NotFoundError("auction not found")
	ErrBalanceOverflow        = InvariantError("balance overflow")
	ErrBidTooLow              = InvalidError("bid must exceed the current high bid")
	ErrConfigDirPath          = ProcessError("data directory is not a folder")
	ErrCreatureExists         = InvariantError("creature identifier collision")
	ErrCreatureListed         = InvalidError("creature is listed for auction")
	ErrCreatureNotFound       = NotFoundError("creature not found")
	ErrDatabaseVersion        = ProcessError("database version is newer than supported")
	ErrDuplicateCreature      = InvalidError("game event names a creature more than once")
	ErrEventNotFound          = NotFoundError("game event not found")
	ErrExpiryBucketFull       = CapacityError("maximum auctions expiring in one block reached")
	ErrIndexCorrupt           = InvariantError("enumeration index is corrupt")
	ErrIndexEntryNotFound     = NotFoundError("identifier is not in the enumeration")
	ErrInsufficientFunds      = FundsError("insufficient free balance")
	ErrInsufficientReserved   = InvariantError("insufficient reserved balance")
	ErrInvalidAccount         = InvalidError("account is invalid")
	ErrInvalidCount           = InvalidError("count must be positive")
	ErrInvalidDigest          = InvalidError("digest is invalid")
	ErrInvalidDuration        = InvalidError("duration is outside the permitted range")
	ErrInvalidEventType       = InvalidError("game event type is invalid")
	ErrInvalidLevel           = InvalidError("level exceeds the maximum")
	ErrInvalidLoggerChannel   = ProcessError("invalid logger channel")
	ErrInvalidPoolPrefix      = ProcessError("storage pool prefix is invalid")
	ErrInvalidRarity          = InvalidError("rarity is invalid")
	ErrInvalidStructPointer   = ProcessError("invalid struct pointer")
	ErrNoCreatures            = InvalidError("game event must reference at least one creature")
	ErrNotInitialised         = ProcessError("not initialised")
	ErrNotOwner               = InvalidError("account is not the owner")
	ErrReadOnly               = ProcessError("database is read only")
	ErrRecordCorrupt          = InvariantError("stored record is corrupt")
	ErrSameOwner              = InvalidError("transfer to the current owner")
	ErrSellerCannotBid        = InvalidError("seller cannot bid on own auction")
	ErrTooManyAuctions        = CapacityError("maximum auctions per block reached")
	ErrTooManyEvents          = CapacityError("maximum game events per block reached")
	ErrTransactionInUse       = ProcessError("transaction already in use")
	ErrZeroAmount             = InvalidError("amount must be positive")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e CapacityError) Error() string  { return string(e) }
func (e FundsError) Error() string     { return string(e) }
func (e InvalidError) Error() string   { return string(e) }
func (e InvariantError) Error() string { return string(e) }
func (e NotFoundError) Error() string  { return string(e) }
func (e ProcessError) Error() string   { return string(e) }

// determine the class of an error
func IsErrCapacity(e error) bool  { _, ok := e.(CapacityError); return ok }
func IsErrFunds(e error) bool     { _, ok := e.(FundsError); return ok }
func IsErrInvalid(e error) bool   { _, ok := e.(InvalidError); return ok }
func IsErrInvariant(e error) bool { _, ok := e.(InvariantError); return ok }
func IsErrNotFound(e error) bool  { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool   { _, ok := e.(ProcessError); return ok }
