// Copyright 2025, The Packlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

import (
	"github.com/packlab/inflate"
	"github.com/packlab/inflate/internal/errors"
	"github.com/packlab/inflate/internal/prefix"
)

// bitReader walks an input buffer as an LSB-first bit sequence.
//
// Two bit orders coexist in DEFLATE: multi-bit integer fields are packed
// LSB-first (the first bit read is bit zero of the value), while prefix
// codewords are assembled MSB-first (the first bit read is the top bit of
// the code). ReadBits serves the former, ReadSymbol the latter; both consume
// bits from the same monotone cursor.
//
// The reader borrows the input buffer and never mutates it; the cursor is
// its only mutable state. Reads past the end panic with TruncatedInput.
type bitReader struct {
	buf []byte
	pos int64 // Bit offset into buf; byte index is pos>>3
}

func (br *bitReader) Init(buf []byte) {
	*br = bitReader{buf: buf}
}

// BitsRead returns the number of bits consumed so far.
func (br *bitReader) BitsRead() int64 { return br.pos }

// Offset returns the number of whole input bytes consumed, rounding any
// partially read byte up.
func (br *bitReader) Offset() int { return int((br.pos + 7) >> 3) }

func (br *bitReader) require(nb uint) {
	if br.pos+int64(nb) > int64(len(br.buf))*8 {
		errors.Panic(errors.New(inflate.TruncatedInput, "unexpected end of bit stream"))
	}
}

// ReadBits reads nb bits in LSB order, for nb in [0, 32].
func (br *bitReader) ReadBits(nb uint) uint32 {
	br.require(nb)
	var v uint32
	for i := uint(0); i < nb; i++ {
		v |= uint32(br.buf[br.pos>>3]>>(br.pos&7)&1) << i
		br.pos++
	}
	return v
}

// ReadPads discards 0-7 bits to advance the cursor to the next byte
// boundary and returns the discarded bits.
func (br *bitReader) ReadPads() uint32 {
	return br.ReadBits(uint(-br.pos & 7))
}

// ReadAlignedUint16LE reads a little-endian 16-bit value. The cursor must be
// byte-aligned.
func (br *bitReader) ReadAlignedUint16LE() uint16 {
	b := br.ReadAlignedBytes(2)
	return uint16(b[0]) | uint16(b[1])<<8
}

// ReadAlignedBytes reads the next n whole bytes. The cursor must be
// byte-aligned. The returned slice aliases the input buffer.
func (br *bitReader) ReadAlignedBytes(n int) []byte {
	if br.pos&7 != 0 {
		panic("flate: aligned read from unaligned bit reader")
	}
	br.require(uint(n) * 8)
	off := int(br.pos >> 3)
	br.pos += int64(n) * 8
	return br.buf[off : off+n]
}

// ReadSymbol decodes the next prefix symbol, assembling the codeword
// MSB-first one bit at a time and probing the decoder at every length.
func (br *bitReader) ReadSymbol(pd *prefix.Decoder) uint {
	var code uint32
	for n := uint(1); n <= pd.MaxLen(); n++ {
		code = code<<1 | br.ReadBits(1)
		if sym, ok := pd.Lookup(code, n); ok {
			return sym
		}
	}
	errors.Panic(errors.New(inflate.InvalidCode, "bit string decodes to no symbol"))
	panic("unreachable")
}
