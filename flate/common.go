// Copyright 2025, The Packlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package flate implements decompression of the DEFLATE compressed data
// format, described in RFC 1951.
//
// The decoder operates on whole input buffers. Wrapping with the ZLIB
// envelope of RFC 1950 is handled by the zlib sub-package.
package flate

const (
	// MinWindowSize and MaxWindowSize bound the permitted sliding window
	// sizes; every power of two between them is accepted.
	MinWindowSize = 1 << 8
	MaxWindowSize = 1 << 15

	endBlockSym = 256
	maxMatchLen = 258
)

// ValidWindowSize reports whether n is a permitted sliding window size.
func ValidWindowSize(n int) bool {
	return MinWindowSize <= n && n <= MaxWindowSize && n&(n-1) == 0
}
