// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotmog/mogwaid/configuration"
	"github.com/dotmog/mogwaid/fault"
)

type limits struct {
	MaximumPerBlock int    `gluamapper:"maximum_per_block"`
	MaximumPeriod   uint64 `gluamapper:"maximum_period"`
}

type testConfiguration struct {
	DataDirectory string            `gluamapper:"data_directory"`
	Name          string            `gluamapper:"name"`
	Auction       limits            `gluamapper:"auction"`
	Levels        map[string]string `gluamapper:"levels"`
}

const script = `
local M = {}
M.data_directory = arg[0]
M.name = "mogwai" .. "d"
M.auction = {
    maximum_per_block = 2,
    maximum_period = 1000,
}
M.levels = {
    DEFAULT = "info",
    clock = "debug",
}
return M
`

func writeScript(t *testing.T, content string) (string, func()) {
	dir, err := ioutil.TempDir("", "mogwaid-configuration")
	require.Nil(t, err, "temp dir")

	fileName := filepath.Join(dir, "test.conf")
	require.Nil(t, ioutil.WriteFile(fileName, []byte(content), 0600), "write script")
	return fileName, func() { os.RemoveAll(dir) }
}

func TestParse(t *testing.T) {
	fileName, cleanup := writeScript(t, script)
	defer cleanup()

	config := testConfiguration{}
	err := configuration.ParseConfigurationFile(fileName, &config)
	require.Nil(t, err, "parse")

	assert.Equal(t, fileName, config.DataDirectory, "arg[0]")
	assert.Equal(t, "mogwaid", config.Name, "name")
	assert.Equal(t, 2, config.Auction.MaximumPerBlock, "maximum per block")
	assert.Equal(t, uint64(1000), config.Auction.MaximumPeriod, "maximum period")
	assert.Equal(t, "debug", config.Levels["clock"], "levels")
}

func TestParseErrors(t *testing.T) {
	fileName, cleanup := writeScript(t, "return 42")
	defer cleanup()

	config := testConfiguration{}
	assert.Error(t, configuration.ParseConfigurationFile(fileName, &config), "non table result")
	assert.Equal(t, fault.ErrInvalidStructPointer, configuration.ParseConfigurationFile(fileName, config), "not a pointer")
	assert.Error(t, configuration.ParseConfigurationFile(fileName+".missing", &config), "missing file")
	assert.Error(t, configuration.ParseConfigurationString("empty", "local x = 1", &config), "no result")
	assert.Error(t, configuration.ParseConfigurationString("syntax", "return {", &config), "syntax error")
}

func TestParseString(t *testing.T) {
	config := testConfiguration{}
	err := configuration.ParseConfigurationString("inline", script, &config)
	require.Nil(t, err, "parse")

	assert.Equal(t, "inline", config.DataDirectory, "arg[0]")
	assert.Equal(t, "mogwaid", config.Name, "name")
	assert.Equal(t, "info", config.Levels["DEFAULT"], "levels")
}
