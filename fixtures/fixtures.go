// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"

	"github.com/dotmog/mogwaid/account"
	"github.com/dotmog/mogwaid/digest"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// well known test accounts
var (
	Alice = makeAccount("alice")
	Bob   = makeAccount("bob")
	Carol = makeAccount("carol")
	Dave  = makeAccount("dave")
)

func makeAccount(name string) account.Account {
	key := digest.New([]byte("account:" + name))
	a, _ := account.FromBytes(key[:])
	return a
}

// Dna - a deterministic genetic fingerprint for a name
func Dna(name string) digest.Digest {
	return digest.New([]byte("dna:" + name))
}

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
