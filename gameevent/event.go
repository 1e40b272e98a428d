// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gameevent

import (
	"github.com/dotmog/mogwaid/digest"
	"github.com/dotmog/mogwaid/fault"
	"github.com/dotmog/mogwaid/util"
)

// Type - the kind of game event
type Type uint8

// the closed set of event types
const (
	Default Type = iota
	Hatch
)

// Valid - true for a member of the closed set
func (t Type) Valid() bool {
	switch t {
	case Default, Hatch:
		return true
	default:
		return false
	}
}

func (t Type) String() string {
	switch t {
	case Default:
		return "default"
	case Hatch:
		return "hatch"
	default:
		return "*unknown*"
	}
}

// Event - a game event affecting one or more creatures
type Event struct {
	Id       digest.Digest   `json:"id"`
	Begin    uint64          `json:"begin"`
	Duration uint16          `json:"duration"`
	Type     Type            `json:"type"`
	Hashes   []digest.Digest `json:"hashes"`
	Value    uint64          `json:"value"`
}

// End - first block after the event window
func (e *Event) End() uint64 {
	return e.Begin + uint64(e.Duration)
}

func (e *Event) pack() []byte {
	p := util.Packer{}
	p.Varint(e.Begin)
	p.Varint(uint64(e.Duration))
	p.Byte(byte(e.Type))
	p.Varint(uint64(len(e.Hashes)))
	for _, h := range e.Hashes {
		p.Fixed(h[:])
	}
	p.Varint(e.Value)
	return p
}

func unpackEvent(id digest.Digest, buffer []byte) (*Event, error) {
	u := util.NewUnpacker(buffer)

	e := &Event{
		Id: id,
	}
	e.Begin = u.Varint()
	duration := u.Varint()
	e.Type = Type(u.Byte())

	n := u.Varint()
	for i := uint64(0); i < n; i += 1 {
		f := u.Fixed(digest.Length)
		if nil == f {
			return nil, fault.ErrRecordCorrupt
		}
		h := digest.Digest{}
		copy(h[:], f)
		e.Hashes = append(e.Hashes, h)
	}
	e.Value = u.Varint()

	if err := u.Done(); nil != err {
		return nil, err
	}
	if duration > 0xffff || !e.Type.Valid() {
		return nil, fault.ErrRecordCorrupt
	}
	e.Duration = uint16(duration)
	return e, nil
}
