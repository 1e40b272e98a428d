// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dotmog/mogwaid/account"
	"github.com/dotmog/mogwaid/fault"
)

func makeAccount(b byte) account.Account {
	a := account.Account{}
	for i := range a {
		a[i] = b + byte(i)
	}
	return a
}

func TestBase58RoundTrip(t *testing.T) {
	a := makeAccount(7)

	s := a.String()
	r, err := account.FromBase58(s)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, a, r, "round trip mismatch")
}

func TestBase58Checksum(t *testing.T) {
	s := makeAccount(1).String()

	// alter the last character to break the checksum
	last := s[len(s)-1]
	replacement := byte('2')
	if '2' == last {
		replacement = '3'
	}
	corrupt := s[:len(s)-1] + string(replacement)

	_, err := account.FromBase58(corrupt)
	assert.Equal(t, fault.ErrInvalidAccount, err, "corrupt account accepted")

	_, err = account.FromBase58("0OIl")
	assert.Equal(t, fault.ErrInvalidAccount, err, "invalid base58 accepted")
}

func TestFromBytes(t *testing.T) {
	_, err := account.FromBytes([]byte{1, 2, 3})
	assert.Equal(t, fault.ErrInvalidAccount, err, "short key accepted")

	a := makeAccount(3)
	r, err := account.FromBytes(a.Bytes())
	assert.Nil(t, err, "valid key rejected")
	assert.Equal(t, a, r, "wrong account")
	assert.False(t, r.IsZero(), "account reported as zero")
	assert.True(t, account.Account{}.IsZero(), "zero account not reported as zero")
}

func TestJSON(t *testing.T) {
	type holder struct {
		Owner account.Account `json:"owner"`
	}
	h := holder{Owner: makeAccount(9)}

	buffer, err := json.Marshal(h)
	assert.Nil(t, err, "marshal error")

	var r holder
	err = json.Unmarshal(buffer, &r)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, h.Owner, r.Owner, "json round trip mismatch")
}
