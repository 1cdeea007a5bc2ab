// Copyright 2025, The Packlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package inflate holds the types shared by the decompression packages in
// this module. The actual decoding entry point is in the zlib sub-package.
package inflate

// ErrorKind identifies the class of corruption or misuse that aborted a
// decode. Every error returned by this module carries exactly one kind.
type ErrorKind uint8

const (
	Unknown ErrorKind = iota

	// TruncatedInput is reported when the bit reader is asked for bits or
	// bytes past the end of the input buffer.
	TruncatedInput

	// InvalidWindowSize is reported when the requested sliding window size
	// is not a power of two in [256, 32768].
	InvalidWindowSize

	// InvalidDictionarySize is reported when a preset dictionary is longer
	// than the sliding window.
	InvalidDictionarySize

	// InvalidHeader is reported when the two-byte ZLIB header names a
	// compression method other than DEFLATE or fails its check bits.
	InvalidHeader

	// ReservedBlock is reported for the reserved block type 0b11.
	ReservedBlock

	// StoredLengthMismatch is reported when LEN and NLEN of a stored block
	// are not one's complements of each other.
	StoredLengthMismatch

	// InvalidSymbol is reported for the reserved literal/length symbols
	// 286 and 287.
	InvalidSymbol

	// InvalidDistanceSymbol is reported for distance symbols 30 and 31.
	InvalidDistanceSymbol

	// InvalidDistance is reported when a match distance is zero, larger
	// than the window, or reaches beyond the written history.
	InvalidDistance

	// InvalidLength is reported when a match length is zero or above 258.
	InvalidLength

	// InvalidCode is reported when a bit string does not decode to any
	// symbol within the maximum code length of the current alphabet.
	InvalidCode

	// KraftViolation is reported when a code-length table over-subscribes
	// the code space and therefore cannot form a prefix code.
	KraftViolation

	// InvalidRepeat is reported when code-length symbol 16 appears before
	// any length was emitted, or a repeat run overflows HLIT+HDIST.
	InvalidRepeat

	// DataIntegrity is reported when the Adler-32 of the decoded output
	// does not match the stream trailer.
	DataIntegrity

	// TrailingData is reported when input bytes remain after the trailer.
	TrailingData
)

var kindNames = map[ErrorKind]string{
	Unknown:               "unknown",
	TruncatedInput:        "truncated input",
	InvalidWindowSize:     "invalid window size",
	InvalidDictionarySize: "invalid dictionary size",
	InvalidHeader:         "invalid header",
	ReservedBlock:         "reserved block",
	StoredLengthMismatch:  "stored length mismatch",
	InvalidSymbol:         "invalid symbol",
	InvalidDistanceSymbol: "invalid distance symbol",
	InvalidDistance:       "invalid distance",
	InvalidLength:         "invalid length",
	InvalidCode:           "invalid code",
	KraftViolation:        "kraft violation",
	InvalidRepeat:         "invalid repeat",
	DataIntegrity:         "data integrity",
	TrailingData:          "trailing data",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Error is the concrete error type produced by this module.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string { return "inflate: " + e.Msg }

// Kind extracts the ErrorKind from err, or Unknown if err was not produced
// by this module.
func Kind(err error) ErrorKind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return Unknown
}
