// Copyright 2025, The Packlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

import (
	"github.com/packlab/inflate"
	"github.com/packlab/inflate/internal/errors"
	"github.com/packlab/inflate/internal/prefix"
)

// Decoder decompresses a raw DEFLATE bit stream held entirely in memory.
// The zero value is usable after a call to Init.
type Decoder struct {
	rd   bitReader   // Input source
	dict dictDecoder // Sliding window history

	lit  *prefix.Decoder // Literal/length alphabet of the current block
	dist *prefix.Decoder // Distance alphabet of the current block

	clenTree prefix.Decoder // Code-length alphabet of a dynamic header
	dynLit   prefix.Decoder // Rebuilt per dynamic block
	dynDist  prefix.Decoder // Rebuilt per dynamic block
	lens     []int          // Scratch for dynamic code lengths

	output []byte // Decoded stream, appended to across blocks
}

// Init prepares the decoder to read the DEFLATE stream in buf, with the
// window seeded from dict. The dictionary bytes count as prior history for
// backward matches but are not part of the decoded output.
func (d *Decoder) Init(buf, dict []byte, windowSize int) error {
	if !ValidWindowSize(windowSize) {
		return errors.Newf(inflate.InvalidWindowSize, "window size %d is not a power of two in [%d, %d]",
			windowSize, MinWindowSize, MaxWindowSize)
	}
	if len(dict) > windowSize {
		return errors.Newf(inflate.InvalidDictionarySize, "dictionary of %d bytes exceeds window of %d",
			len(dict), windowSize)
	}
	d.rd.Init(buf)
	d.dict.Init(windowSize, dict)
	d.lit, d.dist = nil, nil
	return nil
}

// Decode reads blocks until one with BFINAL set completes, appending the
// decompressed bytes to out. On error the returned slice is out unchanged;
// nothing decoded so far is exposed.
func (d *Decoder) Decode(out []byte) (res []byte, err error) {
	defer func() {
		if err != nil {
			res = out
		}
	}()
	defer errors.Recover(&err)
	d.output = out
	for {
		last := d.rd.ReadBits(1) == 1
		switch d.rd.ReadBits(2) {
		case 0:
			// Stored block (RFC section 3.2.4).
			d.readStoredBlock()
		case 1:
			// Fixed prefix block (RFC section 3.2.6).
			d.lit, d.dist = &litTree, &distTree
			d.readBlock()
		case 2:
			// Dynamic prefix block (RFC section 3.2.7).
			d.readDynamicHeader()
			d.lit, d.dist = &d.dynLit, &d.dynDist
			d.readBlock()
		default:
			// Reserved block (RFC section 3.2.3).
			errors.Panic(errors.New(inflate.ReservedBlock, "reserved block type"))
		}
		if last {
			break
		}
	}
	return d.output, nil
}

// InputOffset returns the number of whole input bytes consumed, with the
// cursor rounded up past the final block's padding bits.
func (d *Decoder) InputOffset() int { return d.rd.Offset() }

// readStoredBlock reads a stored block according to RFC section 3.2.4:
// discard the padding, check LEN against its one's complement, then pass the
// raw bytes through both the window and the output.
func (d *Decoder) readStoredBlock() {
	d.rd.ReadPads()
	n := d.rd.ReadAlignedUint16LE()
	nn := d.rd.ReadAlignedUint16LE()
	if n^nn != 0xffff {
		errors.Panic(errors.Newf(inflate.StoredLengthMismatch, "stored length %#04x does not match check %#04x", n, nn))
	}
	data := d.rd.ReadAlignedBytes(int(n))
	for _, c := range data {
		d.dict.WriteByte(c)
	}
	d.output = append(d.output, data...)
}

// readBlock decodes literal and match commands according to RFC section
// 3.2.3 until the end-of-block symbol.
func (d *Decoder) readBlock() {
	for {
		switch sym := d.rd.ReadSymbol(d.lit); {
		case sym < endBlockSym:
			d.dict.WriteByte(byte(sym))
			d.output = append(d.output, byte(sym))
		case sym == endBlockSym:
			return
		case sym < maxNumLitSyms:
			// Decode the match length.
			rec := lenLUT[sym-257]
			length := int(rec.base) + int(d.rd.ReadBits(uint(rec.bits)))

			// Decode the match distance.
			distSym := d.rd.ReadSymbol(d.dist)
			if distSym >= maxNumDistSyms {
				errors.Panic(errors.Newf(inflate.InvalidDistanceSymbol, "reserved distance symbol %d", distSym))
			}
			rec = distLUT[distSym]
			dist := int(rec.base) + int(d.rd.ReadBits(uint(rec.bits)))

			d.output = append(d.output, d.dict.WriteCopy(dist, length)...)
		default:
			errors.Panic(errors.Newf(inflate.InvalidSymbol, "reserved literal/length symbol %d", sym))
		}
	}
}
