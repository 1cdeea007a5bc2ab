// Copyright 2025, The Packlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

import (
	"github.com/packlab/inflate"
	"github.com/packlab/inflate/internal/errors"
)

// readDynamicHeader parses the header of a dynamic block according to RFC
// section 3.2.7 and rebuilds d.dynLit and d.dynDist.
//
// The header is a three-layer decoding problem: HLIT/HDIST/HCLEN integer
// fields, then 3-bit lengths for the 19-symbol code-length alphabet in a
// fixed permuted order, then the run-length-encoded lengths of the combined
// literal/length and distance alphabets read through that alphabet.
func (d *Decoder) readDynamicHeader() {
	numLitSyms := int(d.rd.ReadBits(5)) + 257
	numDistSyms := int(d.rd.ReadBits(5)) + 1
	numCLenSyms := int(d.rd.ReadBits(4)) + 4
	if numLitSyms > maxNumLitSyms {
		errors.Panic(errors.Newf(inflate.InvalidSymbol, "HLIT of %d exceeds %d", numLitSyms, maxNumLitSyms))
	}
	if numDistSyms > maxNumDistSyms {
		errors.Panic(errors.Newf(inflate.InvalidSymbol, "HDIST of %d exceeds %d", numDistSyms, maxNumDistSyms))
	}

	// Code lengths for the code-length alphabet itself; positions beyond
	// HCLEN stay absent.
	var codeCLens [maxNumCLenSyms]int
	for _, sym := range clenLens[:numCLenSyms] {
		codeCLens[sym] = int(d.rd.ReadBits(3))
	}
	if err := d.clenTree.Init(codeCLens[:]); err != nil {
		errors.Panic(err)
	}

	// Decode exactly HLIT+HDIST code lengths through the code-length
	// alphabet. Symbol 16 repeats the previously emitted length, 17 and 18
	// emit runs of zeros.
	numSyms := numLitSyms + numDistSyms
	lens := allocInts(d.lens, numSyms)
	d.lens = lens
	for i := 0; i < numSyms; {
		switch sym := d.rd.ReadSymbol(&d.clenTree); {
		case sym < 16:
			lens[i] = int(sym)
			i++
		case sym == 16:
			if i == 0 {
				errors.Panic(errors.New(inflate.InvalidRepeat, "repeat of previous length with no previous length"))
			}
			i = repeatLen(lens, i, numSyms, lens[i-1], 3+int(d.rd.ReadBits(2)))
		case sym == 17:
			i = repeatLen(lens, i, numSyms, 0, 3+int(d.rd.ReadBits(3)))
		default: // sym == 18; the alphabet has no other symbols
			i = repeatLen(lens, i, numSyms, 0, 11+int(d.rd.ReadBits(7)))
		}
	}

	if err := d.dynLit.Init(lens[:numLitSyms]); err != nil {
		errors.Panic(err)
	}
	if err := d.dynDist.Init(lens[numLitSyms:]); err != nil {
		errors.Panic(err)
	}
}

// repeatLen writes cnt copies of clen at lens[i:], failing if the run would
// pass the end of the combined table.
func repeatLen(lens []int, i, max, clen, cnt int) int {
	if i+cnt > max {
		errors.Panic(errors.New(inflate.InvalidRepeat, "length repeat overruns the code-length table"))
	}
	for j := 0; j < cnt; j++ {
		lens[i+j] = clen
	}
	return i + cnt
}

// allocInts returns a slice with length n, reusing s if possible.
func allocInts(s []int, n int) []int {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]int, n, maxNumLitSyms+maxNumDistSyms)
}
