// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dotmog/mogwaid/fixtures"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

const testFounder = "jvLfuB3aFtEfxymjhzyGkmRV4evtdu5SRBCDXuwrzBRtpvSB5"

// configuration text with the given block interval and founder
func testScript(interval int, founder string) string {
	return fmt.Sprintf(`
local M = {}
M.data_directory = "."
M.founder = "%s"
M.block_interval = %d
M.auction = {
    maximum_per_block = 3,
    fee_rate = 250,
}
M.logging = {
    levels = {
        DEFAULT = "critical",
    },
}
return M
`, founder, interval)
}

// writes the configuration into a fresh directory
func writeTestConfiguration(t *testing.T, content string) (string, func()) {
	dir, err := ioutil.TempDir("", "mogwaid")
	require.Nil(t, err, "temp dir")

	fileName := filepath.Join(dir, "mogwaid.conf")
	require.Nil(t, ioutil.WriteFile(fileName, []byte(content), 0600), "write configuration")
	return fileName, func() { os.RemoveAll(dir) }
}
