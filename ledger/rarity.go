// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/dotmog/mogwaid/fault"
)

// Rarity - classification assigned by the breeding engine
type Rarity uint8

// the closed set of rarities
const (
	Minor Rarity = iota
	Normal
	Rare
	Epic
	Legendary
	Mythical
)

var rarityNames = [...]string{
	Minor:     "minor",
	Normal:    "normal",
	Rare:      "rare",
	Epic:      "epic",
	Legendary: "legendary",
	Mythical:  "mythical",
}

// Valid - true for a member of the closed set
func (r Rarity) Valid() bool {
	return int(r) < len(rarityNames)
}

func (r Rarity) String() string {
	if !r.Valid() {
		return "*unknown*"
	}
	return rarityNames[r]
}

// MarshalText - convert rarity to its name
func (r Rarity) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fault.ErrInvalidRarity
	}
	return []byte(rarityNames[r]), nil
}

// UnmarshalText - convert a name to a rarity
func (r *Rarity) UnmarshalText(s []byte) error {
	for i, name := range rarityNames {
		if name == string(s) {
			*r = Rarity(i)
			return nil
		}
	}
	return fault.ErrInvalidRarity
}
