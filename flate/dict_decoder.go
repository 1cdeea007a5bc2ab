// Copyright 2025, The Packlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

import (
	"github.com/packlab/inflate"
	"github.com/packlab/inflate/internal/errors"
)

// dictDecoder is the LZ77 sliding window: a fixed-size ring holding the most
// recently emitted bytes, which backward matches copy from.
//
// Invariant: after k bytes have been written in total, the last min(k, size)
// bytes of output occupy the ring positions (ptr-min(k,size))%size through
// (ptr-1)%size. A preset dictionary counts toward that history as if its
// bytes had been emitted first.
type dictDecoder struct {
	hist    []byte // The ring; len(hist) is the window size
	ptr     int    // Next write position, in [0, len(hist))
	cnt     int    // Bytes written so far, saturating at len(hist)
	scratch []byte // Reused buffer for materialized matches
}

// Init sets the window size and seeds the ring with the preset dictionary,
// which the caller has already verified to fit.
func (dd *dictDecoder) Init(size int, dict []byte) {
	*dd = dictDecoder{hist: dd.hist, scratch: dd.scratch}
	if cap(dd.hist) < size {
		dd.hist = make([]byte, size)
	}
	dd.hist = dd.hist[:size]

	copy(dd.hist, dict)
	dd.ptr = len(dict) % size
	dd.cnt = len(dict)
}

// HistSize reports the total amount of historical data in the window.
func (dd *dictDecoder) HistSize() int { return dd.cnt }

// WriteByte appends a single literal byte to the window.
func (dd *dictDecoder) WriteByte(c byte) {
	dd.hist[dd.ptr] = c
	dd.ptr++
	if dd.ptr == len(dd.hist) {
		dd.ptr = 0
	}
	if dd.cnt < len(dd.hist) {
		dd.cnt++
	}
}

// WriteCopy replays the match at the given backward distance and returns the
// emitted bytes. The returned slice is only valid until the next call.
//
// When length exceeds dist the source region repeats: byte i of the match is
// the byte at position ptr-dist+(i mod dist), exactly as if the destination
// were written one byte at a time before the next source byte is read. The
// source may straddle the ring boundary, so the general path indexes the
// ring modularly; the common non-wrapping, non-overlapping case is a single
// copy.
func (dd *dictDecoder) WriteCopy(dist, length int) []byte {
	size := len(dd.hist)
	if dist == 0 || dist > size || dist > dd.cnt {
		errors.Panic(errors.Newf(inflate.InvalidDistance, "match distance %d outside history", dist))
	}
	if length == 0 || length > maxMatchLen {
		errors.Panic(errors.Newf(inflate.InvalidLength, "match length %d out of range", length))
	}

	if cap(dd.scratch) < length {
		dd.scratch = make([]byte, maxMatchLen)
	}
	buf := dd.scratch[:length]

	start := dd.ptr - dist
	if start < 0 {
		start += size
	}
	if dist >= length && start+length <= size {
		copy(buf, dd.hist[start:start+length])
	} else {
		for i := range buf {
			buf[i] = dd.hist[(start+i%dist)%size]
		}
	}

	// Splat the match back into the ring in at most two linear segments.
	// A match longer than the ring (window 256, length up to 258) reduces
	// to writing only its tail.
	src, q := buf, dd.ptr
	if len(src) > size {
		src = src[len(src)-size:]
		q = (q + length - size) % size
	}
	n := copy(dd.hist[q:], src)
	copy(dd.hist, src[n:])
	dd.ptr = (dd.ptr + length) % size
	if dd.cnt += length; dd.cnt > size {
		dd.cnt = size
	}
	return buf
}
