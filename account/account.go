// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/dotmog/mogwaid/fault"
)

// miscellaneous constants
const (
	PublicKeyLength = 32
	checksumLength  = 4
)

// Account - an already authenticated account, identified by its public key
//
// the text form is Base58(public key ⧺ checksum) where the checksum is
// the first four bytes of SHA3-256(public key)
type Account [PublicKeyLength]byte

// FromBytes - convert a public key to an account
func FromBytes(buffer []byte) (Account, error) {
	a := Account{}
	if PublicKeyLength != len(buffer) {
		return a, fault.ErrInvalidAccount
	}
	copy(a[:], buffer)
	return a, nil
}

// FromBase58 - decode and verify the text form of an account
func FromBase58(s string) (Account, error) {
	decoded, err := base58.Decode(s)
	if nil != err || PublicKeyLength+checksumLength != len(decoded) {
		return Account{}, fault.ErrInvalidAccount
	}

	checksum := sha3.Sum256(decoded[:PublicKeyLength])
	if !bytes.Equal(checksum[:checksumLength], decoded[PublicKeyLength:]) {
		return Account{}, fault.ErrInvalidAccount
	}
	return FromBytes(decoded[:PublicKeyLength])
}

// Bytes - the public key as a byte slice
func (a Account) Bytes() []byte {
	return a[:]
}

// IsZero - true for the unset account
func (a Account) IsZero() bool {
	return a == Account{}
}

// String - Base58 text form
func (a Account) String() string {
	checksum := sha3.Sum256(a[:])
	buffer := make([]byte, 0, PublicKeyLength+checksumLength)
	buffer = append(buffer, a[:]...)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - convert account to Base58 text
func (a Account) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert Base58 text to an account
func (a *Account) UnmarshalText(s []byte) error {
	decoded, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*a = decoded
	return nil
}
