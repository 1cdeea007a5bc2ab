// Copyright 2025, The Packlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package zlib decompresses the ZLIB format of RFC 1950: a two-byte header,
// a DEFLATE stream, and a big-endian Adler-32 trailer over the decompressed
// data.
package zlib

import (
	"encoding/binary"

	"github.com/packlab/inflate"
	"github.com/packlab/inflate/flate"
	"github.com/packlab/inflate/internal/errors"
)

const (
	// MinWindowSize and MaxWindowSize bound the sliding window sizes
	// accepted by Inflate.
	MinWindowSize = flate.MinWindowSize
	MaxWindowSize = flate.MaxWindowSize

	headerSize  = 2
	dictIDSize  = 4
	trailerSize = 4
)

// Inflate decompresses the ZLIB stream in deflated and returns out with the
// decompressed bytes appended, in the manner of append.
//
// The sliding window holds windowSize bytes, which must be a power of two in
// [256, 32768]; backward matches cannot reach further than it. A non-nil
// dict seeds the window as preset history. Dictionary bytes are neither
// emitted nor covered by the Adler-32 check, and the header's FDICT
// dictionary identifier, if present, is skipped rather than verified: which
// dictionary to supply is the caller's concern.
//
// The input must be consumed exactly: bytes remaining after the trailer are
// an error. On error the returned slice is out unchanged, and any partially
// decoded data is discarded. Errors carry an inflate.ErrorKind.
func Inflate(deflated, dict []byte, windowSize int, out []byte) (res []byte, err error) {
	defer func() {
		if err != nil {
			res = out
		}
	}()
	defer errors.Recover(&err)

	body := readHeader(deflated)

	var d flate.Decoder
	if err := d.Init(body, dict, windowSize); err != nil {
		return out, err
	}
	res, err = d.Decode(out)
	if err != nil {
		return out, err
	}

	rest := body[d.InputOffset():]
	if len(rest) < trailerSize {
		return out, errors.New(inflate.TruncatedInput, "missing checksum trailer")
	}
	if want := binary.BigEndian.Uint32(rest); updateAdler32(adlerInit, res[len(out):]) != want {
		return out, errors.New(inflate.DataIntegrity, "checksum mismatch")
	}
	if len(rest) > trailerSize {
		return out, errors.Newf(inflate.TrailingData, "%d bytes remain after checksum trailer", len(rest)-trailerSize)
	}
	return res, nil
}

// readHeader validates the two-byte CMF/FLG header and returns the DEFLATE
// body, past any FDICT dictionary identifier. CINFO is not interpreted; the
// window size is a parameter of the decode, not discovered from the stream.
func readHeader(deflated []byte) []byte {
	if len(deflated) < headerSize {
		errors.Panic(errors.New(inflate.TruncatedInput, "missing stream header"))
	}
	cmf, flg := deflated[0], deflated[1]
	if cmf&0x0f != 8 {
		errors.Panic(errors.Newf(inflate.InvalidHeader, "compression method %d is not DEFLATE", cmf&0x0f))
	}
	if (uint16(cmf)<<8|uint16(flg))%31 != 0 {
		errors.Panic(errors.New(inflate.InvalidHeader, "header check bits do not validate"))
	}
	body := deflated[headerSize:]
	if flg&0x20 != 0 {
		if len(body) < dictIDSize {
			errors.Panic(errors.New(inflate.TruncatedInput, "missing dictionary identifier"))
		}
		body = body[dictIDSize:]
	}
	return body
}
