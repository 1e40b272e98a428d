// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/dotmog/mogwaid/fault"
)

// Packer - accumulates the fields of a stored record
//
// integers are written as Varint64, fixed size fields are copied verbatim
type Packer []byte

// Varint - append a Varint64 encoded integer
func (p *Packer) Varint(value uint64) {
	*p = append(*p, ToVarint64(value)...)
}

// Fixed - append a fixed length field
func (p *Packer) Fixed(data []byte) {
	*p = append(*p, data...)
}

// Byte - append a single byte
func (p *Packer) Byte(b byte) {
	*p = append(*p, b)
}

// Unpacker - sequential reader for a record produced by Packer
//
// after the first failure all further reads return zero values and
// Done reports the record as corrupt
type Unpacker struct {
	buffer []byte
	failed bool
}

// NewUnpacker - start reading a packed record
func NewUnpacker(buffer []byte) *Unpacker {
	return &Unpacker{buffer: buffer}
}

// Varint - read the next Varint64
func (u *Unpacker) Varint() uint64 {
	if u.failed {
		return 0
	}
	value, n := FromVarint64(u.buffer)
	if 0 == n {
		u.failed = true
		return 0
	}
	u.buffer = u.buffer[n:]
	return value
}

// Fixed - read the next n bytes, the result is a copy
func (u *Unpacker) Fixed(n int) []byte {
	if u.failed || len(u.buffer) < n {
		u.failed = true
		return nil
	}
	result := make([]byte, n)
	copy(result, u.buffer[:n])
	u.buffer = u.buffer[n:]
	return result
}

// Byte - read a single byte
func (u *Unpacker) Byte() byte {
	b := u.Fixed(1)
	if nil == b {
		return 0
	}
	return b[0]
}

// Remaining - number of unread bytes
func (u *Unpacker) Remaining() int {
	if u.failed {
		return 0
	}
	return len(u.buffer)
}

// Done - check the whole record was consumed without error
func (u *Unpacker) Done() error {
	if u.failed || 0 != len(u.buffer) {
		return fault.ErrRecordCorrupt
	}
	return nil
}
