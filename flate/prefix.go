// Copyright 2025, The Packlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

import "github.com/packlab/inflate/internal/prefix"

const (
	maxNumCLenSyms = 19
	maxNumLitSyms  = 286
	maxNumDistSyms = 30
)

var (
	lenLUT   [maxNumLitSyms - 257]rangeCode // RFC section 3.2.5
	distLUT  [maxNumDistSyms]rangeCode      // RFC section 3.2.5
	litTree  prefix.Decoder                 // RFC section 3.2.6
	distTree prefix.Decoder                 // RFC section 3.2.6
)

type rangeCode struct {
	base uint32 // Starting base offset of the range
	bits uint32 // Bit-width of a subsequent integer to add to base offset
}

// RFC section 3.2.7.
// Order in which code lengths for the code length alphabet appear.
var clenLens = [maxNumCLenSyms]int{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

func init() {
	initPrefixLUTs()
}

func initPrefixLUTs() {
	// These come from the RFC section 3.2.5.
	for i, base := 0, 3; i < len(lenLUT)-1; i++ {
		nb := uint(i/4 - 1)
		if i < 4 {
			nb = 0
		}
		lenLUT[i] = rangeCode{base: uint32(base), bits: uint32(nb)}
		base += 1 << nb
	}
	lenLUT[len(lenLUT)-1] = rangeCode{base: maxMatchLen, bits: 0}

	// These come from the RFC section 3.2.5.
	for i, base := 0, 1; i < len(distLUT); i++ {
		nb := uint(i/2 - 1)
		if i < 2 {
			nb = 0
		}
		distLUT[i] = rangeCode{base: uint32(base), bits: uint32(nb)}
		base += 1 << nb
	}

	// These come from the RFC section 3.2.6. Symbols 286-287 and 30-31
	// receive codes so that the reserved bit patterns decode and are then
	// rejected by symbol value.
	litLens := make([]int, 288)
	for i := 0; i < 144; i++ {
		litLens[i] = 8
	}
	for i := 144; i < 256; i++ {
		litLens[i] = 9
	}
	for i := 256; i < 280; i++ {
		litLens[i] = 7
	}
	for i := 280; i < 288; i++ {
		litLens[i] = 8
	}
	if err := litTree.Init(litLens); err != nil {
		panic(err)
	}

	distLens := make([]int, 32)
	for i := range distLens {
		distLens[i] = 5
	}
	if err := distTree.Init(distLens); err != nil {
		panic(err)
	}
}
