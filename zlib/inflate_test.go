// Copyright 2025, The Packlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package zlib

import (
	"bytes"
	"io"
	"testing"

	stdzlib "compress/zlib"

	kpzlib "github.com/klauspost/compress/zlib"
	"github.com/packlab/inflate"
	"github.com/packlab/inflate/internal/testutil"
)

func TestInflate(t *testing.T) {
	db := testutil.MustDecodeBitGen
	dh := testutil.MustDecodeHex

	var vectors = []struct {
		desc       string            // Description of the test
		input      []byte            // Test input string
		dict       []byte            // Preset dictionary
		windowSize int               // Window size; 32768 if zero
		output     []byte            // Expected output string
		kind       inflate.ErrorKind // Expected error kind, if any
	}{{
		desc:   "empty stored block",
		input:  dh("7801010000ffff00000001"),
		output: dh(""),
	}, {
		desc:   "single-byte stored block",
		input:  dh("7801010100feff4100420042"),
		output: []byte("A"),
	}, {
		desc: "fixed block literals",
		input: db(`<<<
			X:7801 # CMF/FLG header
			< 1 01 # Last, fixed block
			> 01111000 10010101 10011100 10011100 10011111 # "Hello"
			> 0000000  # EOB marker
			< 0*6      # Padding
			X:058c01f5 # Adler-32 trailer
		`),
		output: []byte("Hello"),
	}, {
		desc: "fixed block with a backward copy",
		input: db(`<<<
			X:7801 # CMF/FLG header
			< 1 01 # Last, fixed block
			> 10010001 10010010 10010011 10010100 10010101 10010110 # "abcdef"
			> 0000100 # Length: 6
			> 00100   # Distance symbol 4
			< 1       # Distance extra: 5+1
			> 0000000 # EOB marker
			< 0       # Padding
			X:1e3a04ab # Adler-32 trailer
		`),
		output: []byte("abcdefabcdef"),
	}, {
		desc: "overlapping copy becomes a run",
		input: db(`<<<
			X:7801 # CMF/FLG header
			< 1 01 # Last, fixed block
			> 10001010 # "Z"
			> 0001000  # Length: 10
			> 00000    # Distance: 1
			> 0000000  # EOB marker
			< 0*2      # Padding
			X:173f03df # Adler-32 trailer
		`),
		output: bytes.Repeat([]byte{'Z'}, 11),
	}, {
		desc: "dynamic block",
		input: db(`<<<
			X:7801 # CMF/FLG header
			< 1 10                      # Last, dynamic block
			< D5:1 D5:0 D4:14           # HLit: 258, HDist: 1, HCLen: 18
			< 000*2 001 000*12 010 000 010 # HCLens: {1:2, 2:2, 18:1}
			# HLits: {97:1, 256:2, 257:2}, HDists: {0:1}
			> 0 <D7:86 > 10 0 <D7:127 > 0 <D7:9 > 11 11 10
			> 0*20 10  # Twenty copies of "a", EOB
			< 0*3      # Padding
			X:4fa60795 # Adler-32 trailer
		`),
		output: bytes.Repeat([]byte{'a'}, 20),
	}, {
		desc: "preset dictionary supplies the history",
		input: db(`<<<
			X:7801    # CMF/FLG header
			< 1 01    # Last, fixed block
			> 0000111 # Length: 9
			> 01000   # Distance symbol 8
			< 010     # Distance extra: 17+2
			> 0000000 # EOB marker
			< 0*7     # Padding
			X:1155037f # Adler-32 over the emitted bytes only
		`),
		dict:       []byte("the quick brown fox"),
		windowSize: 512,
		output:     []byte("the quick"),
	}, {
		desc: "FDICT dictionary identifier is skipped",
		input: db(`<<<
			X:7820     # CMF/FLG header with FDICT set
			X:478e0734 # DICTID
			< 1 01    # Last, fixed block
			> 0000111 # Length: 9
			> 01000   # Distance symbol 8
			< 010     # Distance extra: 17+2
			> 0000000 # EOB marker
			< 0*7     # Padding
			X:1155037f # Adler-32 trailer
		`),
		dict:   []byte("the quick brown fox"),
		output: []byte("the quick"),
	}, {
		desc:  "empty input",
		input: dh(""),
		kind:  inflate.TruncatedInput,
	}, {
		desc:  "header cut short",
		input: dh("78"),
		kind:  inflate.TruncatedInput,
	}, {
		desc:  "compression method is not DEFLATE",
		input: dh("7901010000ffff00000001"),
		kind:  inflate.InvalidHeader,
	}, {
		desc:  "header check bits do not validate",
		input: dh("7800010000ffff00000001"),
		kind:  inflate.InvalidHeader,
	}, {
		desc:  "FDICT identifier cut short",
		input: dh("7820beef"),
		kind:  inflate.TruncatedInput,
	}, {
		desc:  "missing trailer",
		input: dh("7801010000ffff000000"),
		kind:  inflate.TruncatedInput,
	}, {
		desc:  "checksum mismatch",
		input: dh("7801010100feff4100420043"),
		kind:  inflate.DataIntegrity,
	}, {
		desc:  "trailing data after the trailer",
		input: dh("7801010000ffff0000000100"),
		kind:  inflate.TrailingData,
	}, {
		desc:       "window size not a power of two",
		input:      dh("7801010000ffff00000001"),
		windowSize: 1000,
		kind:       inflate.InvalidWindowSize,
	}, {
		desc:       "window size too small",
		input:      dh("7801010000ffff00000001"),
		windowSize: 128,
		kind:       inflate.InvalidWindowSize,
	}, {
		desc:       "dictionary larger than the window",
		input:      dh("7801010000ffff00000001"),
		dict:       make([]byte, 300),
		windowSize: 256,
		kind:       inflate.InvalidDictionarySize,
	}}

	for i, v := range vectors {
		windowSize := v.windowSize
		if windowSize == 0 {
			windowSize = MaxWindowSize
		}
		output, err := Inflate(v.input, v.dict, windowSize, nil)

		if got := inflate.Kind(err); got != v.kind {
			t.Errorf("test %d, %s\nerror mismatch: got %v (%v), want %v", i, v.desc, got, err, v.kind)
		}
		if v.kind != 0 {
			continue
		}
		if !bytes.Equal(output, v.output) {
			t.Errorf("test %d, %s\noutput mismatch:\ngot  %x\nwant %x", i, v.desc, output, v.output)
		}
	}
}

// TestInflateAppend checks the append contract: the decoded bytes land after
// whatever out already holds, and a failed decode returns out unchanged.
func TestInflateAppend(t *testing.T) {
	input := testutil.MustDecodeHex("7801010100feff4100420042")

	out := []byte("prefix-")
	out, err := Inflate(input, nil, MaxWindowSize, out)
	if err != nil {
		t.Fatalf("unexpected Inflate error: %v", err)
	}
	if string(out) != "prefix-A" {
		t.Errorf("output mismatch: got %q, want %q", out, "prefix-A")
	}

	bad := testutil.MustDecodeHex("7801010100feff4100420043")
	out, err = Inflate(bad, nil, MaxWindowSize, out)
	if inflate.Kind(err) != inflate.DataIntegrity {
		t.Fatalf("error mismatch: got %v, want data integrity", err)
	}
	if string(out) != "prefix-A" {
		t.Errorf("out was disturbed by a failed decode: got %q", out)
	}
}

// TestInflateCorruption flips every byte of a valid stream, one at a time,
// and requires each corruption to surface as an error: the block layer, the
// stored-length check, the header check bits, and the Adler-32 trailer
// together leave no byte unguarded.
func TestInflateCorruption(t *testing.T) {
	valid := testutil.MustDecodeHex("7801010100feff4100420042")
	if _, err := Inflate(valid, nil, MaxWindowSize, nil); err != nil {
		t.Fatalf("sanity decode failed: %v", err)
	}

	for i := range valid {
		corrupt := append([]byte(nil), valid...)
		corrupt[i] ^= 0xff
		if _, err := Inflate(corrupt, nil, MaxWindowSize, nil); err == nil {
			t.Errorf("flipped byte %d: decode unexpectedly succeeded", i)
		}
	}

	// Header and trailer bytes must catch even single-bit flips.
	for _, i := range []int{0, 1, 8, 9, 10, 11} {
		for bit := uint(0); bit < 8; bit++ {
			corrupt := append([]byte(nil), valid...)
			corrupt[i] ^= 1 << bit
			if _, err := Inflate(corrupt, nil, MaxWindowSize, nil); err == nil {
				t.Errorf("flipped bit %d of byte %d: decode unexpectedly succeeded", bit, i)
			}
		}
	}
}

var roundTripInputs = []struct {
	desc string
	data []byte
}{
	{desc: "empty", data: nil},
	{desc: "single byte", data: []byte("a")},
	{desc: "ascii", data: []byte("Hello, world! Hello, world! Goodbye.")},
	{desc: "repeats", data: testutil.ResizeData([]byte("abcdefgh"), 1e4)},
	{desc: "zeros", data: make([]byte, 1e4)},
	{desc: "random", data: testutil.NewRand(11).Bytes(1e4)},
	{desc: "large", data: testutil.ResizeData(testutil.NewRand(13).Bytes(1e3), 2e5)},
}

func testRoundTrip(t *testing.T, newWriter func(w io.Writer, level int) (io.WriteCloser, error), levels []int) {
	for _, v := range roundTripInputs {
		for _, lvl := range levels {
			var buf bytes.Buffer
			zw, err := newWriter(&buf, lvl)
			if err != nil {
				t.Fatalf("%s, level %d: unexpected NewWriter error: %v", v.desc, lvl, err)
			}
			if _, err := zw.Write(v.data); err != nil {
				t.Fatalf("%s, level %d: unexpected Write error: %v", v.desc, lvl, err)
			}
			if err := zw.Close(); err != nil {
				t.Fatalf("%s, level %d: unexpected Close error: %v", v.desc, lvl, err)
			}

			output, err := Inflate(buf.Bytes(), nil, MaxWindowSize, nil)
			if err != nil {
				t.Errorf("%s, level %d: unexpected Inflate error: %v", v.desc, lvl, err)
				continue
			}
			if !bytes.Equal(output, v.data) {
				t.Errorf("%s, level %d: round-trip mismatch", v.desc, lvl)
			}
		}
	}
}

func TestRoundTripStdlib(t *testing.T) {
	testRoundTrip(t, func(w io.Writer, level int) (io.WriteCloser, error) {
		return stdzlib.NewWriterLevel(w, level)
	}, []int{0, 1, 6, 9, stdzlib.HuffmanOnly})
}

func TestRoundTripKlauspost(t *testing.T) {
	testRoundTrip(t, func(w io.Writer, level int) (io.WriteCloser, error) {
		return kpzlib.NewWriterLevel(w, level)
	}, []int{0, 1, 6, 9})
}

// TestRoundTripDictionary compresses with a preset dictionary and decodes
// with the same dictionary supplied as a parameter.
func TestRoundTripDictionary(t *testing.T) {
	dict := []byte("the quick brown fox jumps over the lazy dog")
	data := testutil.ResizeData([]byte("the quick brown fox jumps over the lazy dog. "), 4096)

	var buf bytes.Buffer
	zw, err := stdzlib.NewWriterLevelDict(&buf, 6, dict)
	if err != nil {
		t.Fatalf("unexpected NewWriterLevelDict error: %v", err)
	}
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("unexpected Write error: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("unexpected Close error: %v", err)
	}

	output, err := Inflate(buf.Bytes(), dict, MaxWindowSize, nil)
	if err != nil {
		t.Fatalf("unexpected Inflate error: %v", err)
	}
	if !bytes.Equal(output, data) {
		t.Errorf("round-trip mismatch with preset dictionary")
	}
}

// TestRoundTripSmallWindow decodes short streams with the smallest window:
// no distance in them can reach past 256 bytes of history.
func TestRoundTripSmallWindow(t *testing.T) {
	data := []byte("to be or not to be, that is the question: to be or not to be")
	var buf bytes.Buffer
	zw, _ := stdzlib.NewWriterLevel(&buf, 9)
	zw.Write(data)
	zw.Close()

	for _, windowSize := range []int{256, 512, 32768} {
		output, err := Inflate(buf.Bytes(), nil, windowSize, nil)
		if err != nil {
			t.Errorf("window %d: unexpected Inflate error: %v", windowSize, err)
			continue
		}
		if !bytes.Equal(output, data) {
			t.Errorf("window %d: round-trip mismatch", windowSize)
		}
	}
}

func benchmarkInflate(b *testing.B, data []byte) {
	b.StopTimer()
	b.ReportAllocs()

	var buf bytes.Buffer
	zw, _ := stdzlib.NewWriterLevel(&buf, 6)
	zw.Write(data)
	zw.Close()
	input := buf.Bytes()

	out, err := Inflate(input, nil, MaxWindowSize, nil)
	if err != nil {
		b.Fatalf("unexpected Inflate error: %v", err)
	}

	b.SetBytes(int64(len(data)))
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		out, err = Inflate(input, nil, MaxWindowSize, out[:0])
		if err != nil {
			b.Fatalf("unexpected Inflate error: %v", err)
		}
	}
}

func BenchmarkInflateRepeats1e4(b *testing.B) {
	benchmarkInflate(b, testutil.ResizeData([]byte("abcdefgh"), 1e4))
}
func BenchmarkInflateRepeats1e6(b *testing.B) {
	benchmarkInflate(b, testutil.ResizeData([]byte("abcdefgh"), 1e6))
}
func BenchmarkInflateRandom1e4(b *testing.B) {
	benchmarkInflate(b, testutil.NewRand(17).Bytes(1e4))
}
func BenchmarkInflateRandom1e6(b *testing.B) {
	benchmarkInflate(b, testutil.NewRand(17).Bytes(1e6))
}

func FuzzInflate(f *testing.F) {
	f.Add([]byte(nil))
	f.Add([]byte("a"))
	f.Add(testutil.MustDecodeHex("7801010000ffff00000001"))
	f.Add(testutil.MustDecodeHex("7801010100feff4100420042"))
	f.Add(testutil.ResizeData([]byte("fuzz"), 512))

	f.Fuzz(func(t *testing.T, data []byte) {
		// Arbitrary input must decode or fail with a typed error, never
		// panic or hang.
		if _, err := Inflate(data, nil, MaxWindowSize, nil); err != nil {
			if _, ok := err.(*inflate.Error); !ok {
				t.Errorf("error is not an *inflate.Error: %v", err)
			}
		}

		// Anything the standard encoder produces must reproduce exactly.
		var buf bytes.Buffer
		zw := stdzlib.NewWriter(&buf)
		zw.Write(data)
		zw.Close()
		output, err := Inflate(buf.Bytes(), nil, MaxWindowSize, nil)
		if err != nil {
			t.Fatalf("unexpected Inflate error: %v", err)
		}
		if !bytes.Equal(output, data) {
			t.Fatalf("round-trip mismatch")
		}
	})
}
