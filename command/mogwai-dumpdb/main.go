// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"reflect"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/dotmog/mogwaid/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

const (
	keyColour = "\033[1;36m"
	valColour = "\033[1;33m"
	endColour = "\033[0m"
)

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "list", HasArg: getoptions.NO_ARGUMENT, Short: 'l'},
		{Long: "colour", HasArg: getoptions.NO_ARGUMENT, Short: 'g'},
		{Long: "ascii", HasArg: getoptions.NO_ARGUMENT, Short: 'a'},
		{Long: "file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'f'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["list"]) > 0 {
		fmt.Printf(" tags:\n")
		for _, p := range pools() {
			fmt.Printf("       %s → %s\n", p.tag, p.name)
		}
		return
	}

	if len(options["help"]) > 0 || 0 == len(arguments) || 1 != len(options["file"]) {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--colour] [--ascii] [--count=N] --file=FILE tag [key-prefix]", program)
	}

	count := 10
	if len(options["count"]) > 0 {
		count, err = strconv.Atoi(options["count"][0])
		if nil != err {
			exitwithstatus.Message("%s: convert count error: %s", program, err)
		}
		if count < 1 {
			exitwithstatus.Message("%s: invalid count: %d", program, count)
		}
	}

	filename := options["file"][0]
	tag := arguments[0]
	if len(options["verbose"]) > 0 {
		fmt.Printf("read tag: %s from file: %q\n", tag, filename)
	}

	prefix := []byte(nil)
	if len(arguments) > 1 {
		prefix, err = hex.DecodeString(arguments[1])
		if nil != err {
			exitwithstatus.Message("%s: convert prefix error: %s", program, err)
		}
	}

	logging := logger.Configuration{
		Directory: ".",
		File:      "mogwai-dumpdb.log",
		Size:      1048576,
		Count:     10,
		Console:   true,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	if err = logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	db, err := storage.Open(filename, storage.ReadOnly)
	if nil != err {
		exitwithstatus.Message("%s: storage open failed with error: %s", program, err)
	}
	defer db.Close()

	p := poolByTag(db, tag)
	if nil == p {
		exitwithstatus.Message("%s: no pool corresponding to: %q", program, tag)
	}

	cursor := p.NewFetchCursor()
	if len(prefix) > 0 {
		cursor.Seek(prefix)
	}

	data, err := cursor.Fetch(count)
	if nil != err {
		exitwithstatus.Message("%s: error on Fetch: %s", program, err)
	}

	ck, cv, ce := "", "", ""
	if len(options["colour"]) > 0 {
		ck, cv, ce = keyColour, valColour, endColour
	}
	for i, e := range data {
		fmt.Printf("%d: %sKey:%s %x\n", i, ck, ce, e.Key)
		if len(options["ascii"]) > 0 {
			hexDump(fmt.Sprintf("%d: %sVal:%s ", i, cv, ce), e.Value)
		} else {
			fmt.Printf("%d: %sVal:%s %x\n", i, cv, ce, e.Value)
		}
	}
}

type poolTag struct {
	tag  string
	name string
}

// tags of storage.Pools in declaration order
func pools() []poolTag {
	poolType := reflect.TypeOf(storage.Pools{})
	result := make([]poolTag, 0, poolType.NumField())
	for i := 0; i < poolType.NumField(); i += 1 {
		field := poolType.Field(i)
		result = append(result, poolTag{tag: field.Tag.Get("prefix"), name: field.Name})
	}
	return result
}

func poolByTag(db *storage.DB, tag string) *storage.PoolHandle {
	poolValue := reflect.ValueOf(db.Pool)
	for i, p := range pools() {
		if tag == p.tag || tag == p.name {
			return poolValue.Field(i).Interface().(*storage.PoolHandle)
		}
	}
	return nil
}

// dump hex data on stdout
func hexDump(prefix string, data []byte) {
	const bytesPerLine = 16
	for i := 0; i < len(data); i += bytesPerLine {
		end := i + bytesPerLine
		if end > len(data) {
			end = len(data)
		}

		text := ""
		ascii := ""
		for _, c := range data[i:end] {
			text += fmt.Sprintf("%02x ", c)
			if c < 32 || c >= 127 {
				c = '.'
			}
			ascii += string(c)
		}
		fmt.Printf("%s%04x  %-48s |%s|\n", prefix, i, text, ascii)
	}
}
