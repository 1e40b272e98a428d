// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/dotmog/mogwaid/account"
	"github.com/dotmog/mogwaid/auction"
	"github.com/dotmog/mogwaid/digest"
	"github.com/dotmog/mogwaid/fault"
	"github.com/dotmog/mogwaid/gameevent"
	"github.com/dotmog/mogwaid/ledger"
	"github.com/dotmog/mogwaid/storage"
)

const (
	defaultListCount = 20
)

// setup command handler
//
// commands that do not need the configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg":
		return false

	case "status", "creature", "c", "owned", "o", "balance", "bal", "deposit", "mint", "auction", "a", "bid", "cancel", "event", "block", "b":
		return false // defer processing until database is loaded

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                          (h)    - display this message\n\n")
		fmt.Printf("  version                       (v)    - display version sting\n\n")

		fmt.Printf("  start                         (run)  - just run the program, same as no arguments\n")
		fmt.Printf("                                         for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                   (cfg)  - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  status                               - processed height and creature count\n")
		fmt.Printf("  creature ID                   (c)    - creature, bio, owner and any live auction\n")
		fmt.Printf("  owned ACCOUNT [START [COUNT]] (o)    - list creatures of an account\n")
		fmt.Printf("  balance ACCOUNT               (bal)  - free and reserved balance\n")
		fmt.Printf("\n")

		fmt.Printf("  deposit ACCOUNT AMOUNT               - credit the free balance of an account\n")
		fmt.Printf("  mint OWNER NAME [RARITY]             - create a creature with DNA derived from NAME\n")
		fmt.Printf("  auction ID OWNER MIN DURATION (a)    - list a creature for auction\n")
		fmt.Printf("  bid ID BIDDER AMOUNT                 - bid on an auction\n")
		fmt.Printf("  cancel ID OWNER                      - cancel an auction without bids\n")
		fmt.Printf("  event TYPE DURATION VALUE ID...      - trigger a game event on creatures\n")
		fmt.Printf("  block                         (b)    - process the next block immediately\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
//
// the database is opened so these commands can read and change it;
// cannot be used while the daemon holds the database
func processDataCommand(log *logger.L, arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	if "start" == command || "run" == command {
		return false // continue processing
	}

	readOnly := storage.ReadWrite
	switch command {
	case "status", "creature", "c", "owned", "o", "balance", "bal":
		readOnly = storage.ReadOnly
	}

	db, err := storage.Open(options.Database.Name, readOnly)
	if nil != err {
		exitwithstatus.Message("storage open error: %s", err)
	}
	defer db.Close()

	n := newNode(db, options)

	switch command {

	case "status":
		printJson("status", struct {
			Height    uint64 `json:"height"`
			Creatures uint64 `json:"creatures"`
		}{
			Height:    n.driver.Height(),
			Creatures: n.ledger.Count(),
		})

	case "creature", "c":
		requireArguments(arguments, 1, "creature ID")
		id := parseId(arguments[0])

		creature, err := n.ledger.Creature(id)
		failIf(err, "creature")
		bio, err := n.ledger.Bio(id)
		failIf(err, "bio")
		owner, err := n.ledger.OwnerOf(id)
		failIf(err, "owner")

		result := struct {
			Creature *ledger.Creature `json:"creature"`
			Bio      *ledger.Bio      `json:"bio"`
			Owner    account.Account  `json:"owner"`
			Auction  *auction.Auction `json:"auction,omitempty"`
		}{
			Creature: creature,
			Bio:      bio,
			Owner:    owner,
		}
		if a, err := n.book.Get(id); nil == err {
			result.Auction = a
		}
		printJson("", result)

	case "owned", "o":
		requireArguments(arguments, 1, "owned ACCOUNT [START [COUNT]]")
		owner := parseAccount(arguments[0])
		start := uint64(0)
		count := defaultListCount
		if len(arguments) > 1 {
			start = parseUint(arguments[1], "start")
		}
		if len(arguments) > 2 {
			count = int(parseUint(arguments[2], "count"))
		}
		ids, err := n.ledger.ListOwned(owner, start, count)
		failIf(err, "owned")
		printJson("", struct {
			Total     uint64          `json:"total"`
			Creatures []digest.Digest `json:"creatures"`
		}{
			Total:     n.ledger.OwnedCount(owner),
			Creatures: ids,
		})

	case "balance", "bal":
		requireArguments(arguments, 1, "balance ACCOUNT")
		who := parseAccount(arguments[0])
		printJson("", struct {
			Free     uint64 `json:"free"`
			Reserved uint64 `json:"reserved"`
		}{
			Free:     n.accounts.Free(who),
			Reserved: n.accounts.Reserved(who),
		})

	case "deposit":
		requireArguments(arguments, 2, "deposit ACCOUNT AMOUNT")
		who := parseAccount(arguments[0])
		failIf(n.accounts.Deposit(who, parseUint(arguments[1], "amount")), "deposit")
		log.Infof("deposit: %v  amount: %s", who, arguments[1])

	case "mint":
		requireArguments(arguments, 2, "mint OWNER NAME [RARITY]")
		owner := parseAccount(arguments[0])
		rarity := ledger.Minor
		if len(arguments) > 2 {
			failIf(rarity.UnmarshalText([]byte(arguments[2])), "rarity")
		}
		dna := digest.New([]byte(arguments[1]))
		id, err := n.ledger.Create(owner, dna, 0, rarity, 0, n.currentHeight())
		failIf(err, "mint")
		fmt.Printf("%s\n", id)

	case "auction", "a":
		requireArguments(arguments, 4, "auction ID OWNER MIN DURATION")
		a, err := n.book.Create(parseId(arguments[0]), parseAccount(arguments[1]), parseUint(arguments[2], "min"), parseUint(arguments[3], "duration"), n.currentHeight())
		failIf(err, "auction")
		printJson("", a)

	case "bid":
		requireArguments(arguments, 3, "bid ID BIDDER AMOUNT")
		err := n.book.Bid(parseId(arguments[0]), parseAccount(arguments[1]), parseUint(arguments[2], "amount"))
		failIf(err, "bid")

	case "cancel":
		requireArguments(arguments, 2, "cancel ID OWNER")
		failIf(n.book.Cancel(parseId(arguments[0]), parseAccount(arguments[1])), "cancel")

	case "event":
		requireArguments(arguments, 4, "event TYPE DURATION VALUE ID...")
		eventType := gameevent.Default
		switch arguments[0] {
		case "default":
		case "hatch":
			eventType = gameevent.Hatch
		default:
			exitwithstatus.Message("event: %s", fault.ErrInvalidEventType)
		}
		duration := parseUint(arguments[1], "duration")
		if duration > 0xffff {
			exitwithstatus.Message("event: %s", fault.ErrInvalidDuration)
		}
		hashes := []digest.Digest{}
		for _, s := range arguments[3:] {
			hashes = append(hashes, parseId(s))
		}
		e, err := n.events.Trigger(n.currentHeight(), eventType, uint16(duration), hashes, parseUint(arguments[2], "value"))
		failIf(err, "event")
		printJson("", e)

	case "block", "b":
		report, err := n.driver.OnBlock(n.currentHeight())
		failIf(err, "block")
		printJson("", report)

	default:
		exitwithstatus.Message("error: no such command: %q", command)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

func requireArguments(arguments []string, n int, usage string) {
	if len(arguments) < n {
		exitwithstatus.Message("usage: %s", usage)
	}
}

func failIf(err error, title string) {
	if nil != err {
		exitwithstatus.Message("%s: error: %s", title, err)
	}
}

func parseId(s string) digest.Digest {
	id := digest.Digest{}
	failIf(id.UnmarshalText([]byte(s)), "id")
	return id
}

func parseAccount(s string) account.Account {
	a, err := account.FromBase58(s)
	failIf(err, "account")
	return a
}

func parseUint(s string, title string) uint64 {
	n, err := strconv.ParseUint(s, 10, 64)
	failIf(err, title)
	return n
}

func printJson(title string, message interface{}) {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		exitwithstatus.Message("Error: printjson marshall error: %s", err)
	}

	if "" == title {
		fmt.Printf("%s\n", b)
	} else {
		fmt.Printf("%s:\n%s\n", title, b)
	}
}
