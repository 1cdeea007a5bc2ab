// Copyright 2025, The Packlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package prefix implements decoding of canonical prefix (Huffman) codes as
// constructed by RFC 1951, section 3.2.2.
package prefix

import (
	"github.com/packlab/inflate"
	"github.com/packlab/inflate/internal/errors"
)

// MaxCodeLen is the longest permitted code length in DEFLATE.
const MaxCodeLen = 15

// Decoder maps canonical prefix codes back to their symbols.
//
// The representation is the classic per-length one: all present symbols
// sorted by (length, symbol), plus the first canonical code and the first
// sorted-symbol index of every length. Looking up a codeword of a known
// length is a single range check, so decoding one symbol costs at most
// maxLen probes.
type Decoder struct {
	symbols   []uint16                // Present symbols, sorted by (length, symbol)
	counts    [MaxCodeLen + 1]uint16  // Number of codes per length
	firstCode [MaxCodeLen + 1]uint32  // First canonical code per length
	firstSym  [MaxCodeLen + 1]uint16  // symbols index of the first code per length
	minLen    uint                    // Smallest present code length
	maxLen    uint                    // Largest present code length
}

// Init builds the decoder from a table of per-symbol code lengths, where a
// zero length marks an absent symbol. The codes are assigned canonically:
// symbols ordered by (length, symbol), with the first code of length n being
// (firstCode[n-1]+counts[n-1])<<1.
//
// Init reports a KraftViolation if any length exceeds MaxCodeLen or if the
// table over-subscribes the code space. Incomplete (under-subscribed) tables
// are accepted; their unassigned codewords simply decode to nothing.
func (pd *Decoder) Init(lens []int) error {
	pd.symbols = pd.symbols[:0]
	pd.counts = [MaxCodeLen + 1]uint16{}
	pd.minLen, pd.maxLen = 0, 0

	for sym, n := range lens {
		if n == 0 {
			continue
		}
		if n < 0 || n > MaxCodeLen {
			return errors.Newf(inflate.KraftViolation, "code length %d for symbol %d out of range", n, sym)
		}
		if pd.minLen == 0 || uint(n) < pd.minLen {
			pd.minLen = uint(n)
		}
		if uint(n) > pd.maxLen {
			pd.maxLen = uint(n)
		}
		pd.counts[n]++
	}
	if pd.maxLen == 0 {
		return nil // Empty table; any decode attempt fails with InvalidCode
	}

	// Assign the canonical first code of every length and verify that no
	// prefix of the code space is claimed twice (Kraft-McMillan).
	var code uint32
	var idx uint16
	for n := uint(1); n <= pd.maxLen; n++ {
		code <<= 1
		pd.firstCode[n] = code
		pd.firstSym[n] = idx
		code += uint32(pd.counts[n])
		idx += pd.counts[n]
		if code > 1<<n {
			return errors.New(inflate.KraftViolation, "prefix code space is over-subscribed")
		}
	}

	// Bucket the symbols by length, ascending symbol within each length.
	pd.symbols = extendUint16s(pd.symbols, int(idx))
	next := pd.firstSym
	for sym, n := range lens {
		if n > 0 {
			pd.symbols[next[n]] = uint16(sym)
			next[n]++
		}
	}
	return nil
}

// MinLen returns the smallest code length in the table, or zero if empty.
func (pd *Decoder) MinLen() uint { return pd.minLen }

// MaxLen returns the largest code length in the table, or zero if empty.
func (pd *Decoder) MaxLen() uint { return pd.maxLen }

// NumSyms returns the number of symbols with assigned codes.
func (pd *Decoder) NumSyms() int { return len(pd.symbols) }

// Lookup resolves a codeword of the given length, assembled MSB-first.
// It reports whether any symbol of that length owns the codeword.
func (pd *Decoder) Lookup(code uint32, length uint) (sym uint, ok bool) {
	d := code - pd.firstCode[length]
	if d >= uint32(pd.counts[length]) {
		return 0, false
	}
	return uint(pd.symbols[pd.firstSym[length]+uint16(d)]), true
}

// extendUint16s returns a slice with length n, reusing s if possible.
func extendUint16s(s []uint16, n int) []uint16 {
	if cap(s) >= n {
		return s[:n]
	}
	return append(s[:cap(s)], make([]uint16, n-cap(s))...)
}
