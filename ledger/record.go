// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/dotmog/mogwaid/digest"
	"github.com/dotmog/mogwaid/fault"
	"github.com/dotmog/mogwaid/util"
)

// MetaxyLength - size of one metaxy block
const MetaxyLength = 16

// MaximumLevel - highest level a creature can reach
const MaximumLevel = 50

// Creature - the write once part of a creature, except for price
type Creature struct {
	Id         digest.Digest `json:"id"`
	Dna        digest.Digest `json:"dna"`
	Genesis    uint64        `json:"genesis"`
	Price      uint64        `json:"price"`
	Generation uint32        `json:"generation"`
	Rarity     Rarity        `json:"rarity"`
}

// Bio - gameplay state of a creature
type Bio struct {
	Id          digest.Digest        `json:"id"`
	State       State                `json:"state"`
	Metaxy      [][MetaxyLength]byte `json:"metaxy"`
	Intrinsic   uint64               `json:"intrinsic"`
	Level       uint8                `json:"level"`
	Phases      []uint64             `json:"phases"`
	Adaptations []digest.Digest      `json:"adaptations"`
}

// the id is the key so is not packed
func (c *Creature) pack() []byte {
	p := util.Packer{}
	p.Fixed(c.Dna[:])
	p.Varint(c.Genesis)
	p.Varint(c.Price)
	p.Varint(uint64(c.Generation))
	p.Byte(byte(c.Rarity))
	return p
}

func unpackCreature(id digest.Digest, buffer []byte) (*Creature, error) {
	u := util.NewUnpacker(buffer)

	c := &Creature{
		Id: id,
	}
	copy(c.Dna[:], u.Fixed(digest.Length))
	c.Genesis = u.Varint()
	c.Price = u.Varint()
	generation := u.Varint()
	c.Rarity = Rarity(u.Byte())

	if err := u.Done(); nil != err {
		return nil, err
	}
	if generation > 0xffffffff || !c.Rarity.Valid() {
		return nil, fault.ErrRecordCorrupt
	}
	c.Generation = uint32(generation)
	return c, nil
}

func (b *Bio) pack() []byte {
	p := util.Packer{}
	p.Varint(uint64(b.State))
	p.Varint(uint64(len(b.Metaxy)))
	for _, m := range b.Metaxy {
		p.Fixed(m[:])
	}
	p.Varint(b.Intrinsic)
	p.Byte(b.Level)
	p.Varint(uint64(len(b.Phases)))
	for _, h := range b.Phases {
		p.Varint(h)
	}
	p.Varint(uint64(len(b.Adaptations)))
	for _, a := range b.Adaptations {
		p.Fixed(a[:])
	}
	return p
}

func unpackBio(id digest.Digest, buffer []byte) (*Bio, error) {
	u := util.NewUnpacker(buffer)

	b := &Bio{
		Id:          id,
		Metaxy:      [][MetaxyLength]byte{},
		Phases:      []uint64{},
		Adaptations: []digest.Digest{},
	}

	state := u.Varint()
	if state > 0xffffffff {
		return nil, fault.ErrRecordCorrupt
	}
	b.State = State(state)

	n := u.Varint()
	for i := uint64(0); i < n; i += 1 {
		m := [MetaxyLength]byte{}
		f := u.Fixed(MetaxyLength)
		if nil == f {
			return nil, fault.ErrRecordCorrupt
		}
		copy(m[:], f)
		b.Metaxy = append(b.Metaxy, m)
	}

	b.Intrinsic = u.Varint()
	b.Level = u.Byte()

	// each height takes at least one byte
	n = u.Varint()
	if n > uint64(u.Remaining()) {
		return nil, fault.ErrRecordCorrupt
	}
	for i := uint64(0); i < n; i += 1 {
		b.Phases = append(b.Phases, u.Varint())
	}

	n = u.Varint()
	for i := uint64(0); i < n; i += 1 {
		a := digest.Digest{}
		f := u.Fixed(digest.Length)
		if nil == f {
			return nil, fault.ErrRecordCorrupt
		}
		copy(a[:], f)
		b.Adaptations = append(b.Adaptations, a)
	}

	if err := u.Done(); nil != err {
		return nil, err
	}
	return b, nil
}
