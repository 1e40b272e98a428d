// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// Varint64MaximumBytes - longest encoding of a uint64
const Varint64MaximumBytes = 9

// ToVarint64 - little endian groups of 7 bits, high bit set while
// more bytes follow
//
// the ninth byte carries the top 8 bits and has no continuation flag
func ToVarint64(value uint64) []byte {
	result := make([]byte, 0, Varint64MaximumBytes)
	for len(result) < Varint64MaximumBytes-1 {
		if value < 0x80 {
			return append(result, byte(value))
		}
		result = append(result, byte(value&0x7f)|0x80)
		value >>= 7
	}
	return append(result, byte(value))
}

// FromVarint64 - decode the start of buffer
//
// returns the value and the number of bytes consumed, or 0, 0 if
// the buffer ends before the encoding does
func FromVarint64(buffer []byte) (uint64, int) {
	result := uint64(0)
	shift := uint(0)
	for i, b := range buffer {
		if i == Varint64MaximumBytes-1 {
			return result | uint64(b)<<shift, i + 1
		}
		result |= uint64(b&0x7f) << shift
		if 0 == b&0x80 {
			return result, i + 1
		}
		shift += 7
	}
	return 0, 0
}
