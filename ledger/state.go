// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"strings"
)

// State - lifecycle flags of a creature
type State uint32

// the flags
const (
	// a live auction exists, transfer and burn are refused
	StateListed State = 1 << iota
	// a hatch event has been applied
	StateHatched

	stateAll = StateListed | StateHatched
)

// Has - true if every flag in f is set
func (s State) Has(f State) bool {
	return f == s&f
}

// Set - the state with the flags in f added
func (s State) Set(f State) State {
	return s | f
}

// Clear - the state with the flags in f removed
func (s State) Clear(f State) State {
	return s &^ f
}

func (s State) String() string {
	flags := []string{}
	if s.Has(StateListed) {
		flags = append(flags, "listed")
	}
	if s.Has(StateHatched) {
		flags = append(flags, "hatched")
	}
	if 0 != s&^stateAll {
		flags = append(flags, "*unknown*")
	}
	return "[" + strings.Join(flags, ",") + "]"
}
