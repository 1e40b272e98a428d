// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dotmog/mogwaid/util"
)

func TestVarint64(t *testing.T) {
	tests := []struct {
		value   uint64
		encoded []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xac, 0x02}},
		{16384, []byte{0x80, 0x80, 0x01}},
		{1 << 56, []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}},
		{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	}

	for i, item := range tests {
		encoded := util.ToVarint64(item.value)
		assert.Equal(t, item.encoded, encoded, "%d: wrong encoding", i)

		// trailing bytes belong to the next field
		value, n := util.FromVarint64(append(encoded, 0xff, 0x17))
		assert.Equal(t, item.value, value, "%d: wrong value", i)
		assert.Equal(t, len(item.encoded), n, "%d: wrong length", i)
	}
}

func TestVarint64Truncated(t *testing.T) {
	for i, buffer := range [][]byte{
		{},
		{0x80},
		{0xff, 0xff},
		{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80},
	} {
		value, n := util.FromVarint64(buffer)
		assert.Equal(t, uint64(0), value, "%d: truncated value", i)
		assert.Equal(t, 0, n, "%d: truncated length", i)
	}
}
