// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package auction - time boxed auctions of creatures
//
// a live auction is stored under the creature id and its id is also
// appended to the bucket of the block it expires in.  Bids reserve
// funds through the Currency collaborator; the previous high bid is
// released as soon as it is beaten.  Settlement at expiry moves the
// winning reservation to the seller, less a fee that is handed to the
// PricePayment collaborator, and transfers the creature.
package auction
