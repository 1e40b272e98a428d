// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package enumerable - dense numbering of identifiers over a keyed store
//
// A domain is three pools sharing a scope:
//
//   array   ⧺ scope ⧺ position  - id at a position
//   reverse ⧺ scope ⧺ id        - position of an id
//   count   ⧺ scope             - number of positions in use
//
// positions 0 .. count-1 are always occupied.  Removal moves the last
// id into the vacated slot so order is not preserved across removals.
package enumerable
