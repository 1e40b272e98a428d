// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dotmog/mogwaid/digest"
	"github.com/dotmog/mogwaid/fault"
)

func TestNewDigest(t *testing.T) {
	// SHA3-256 of the empty string
	expected := "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"

	d := digest.New([]byte{})
	assert.Equal(t, expected, d.String(), "wrong digest")
	assert.Equal(t, "<SHA3-256:"+expected+">", fmt.Sprintf("%#v", d), "wrong go string")
	assert.False(t, d.IsZero(), "digest reported as zero")
	assert.True(t, digest.Digest{}.IsZero(), "zero digest not reported as zero")
}

func TestText(t *testing.T) {
	d := digest.New([]byte("mogwai"))

	text, err := d.MarshalText()
	assert.Nil(t, err, "marshal error")

	var r digest.Digest
	err = r.UnmarshalText(text)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, d, r, "text round trip mismatch")

	err = r.UnmarshalText([]byte("abcd"))
	assert.Equal(t, fault.ErrInvalidDigest, err, "short text accepted")

	err = r.UnmarshalText(append([]byte("zz"), text[2:]...))
	assert.Equal(t, fault.ErrInvalidDigest, err, "non hex text accepted")
}

func TestFromBytes(t *testing.T) {
	var d digest.Digest
	err := digest.FromBytes(&d, make([]byte, 31))
	assert.Equal(t, fault.ErrInvalidDigest, err, "short buffer accepted")

	b := make([]byte, digest.Length)
	b[0] = 0x42
	err = digest.FromBytes(&d, b)
	assert.Nil(t, err, "valid buffer rejected")
	assert.Equal(t, byte(0x42), d[0], "wrong first byte")
}
