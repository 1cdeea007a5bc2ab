// Copyright 2025, The Packlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench compares the decompression performance of this module
// against other compression implementations. Individual implementations are
// referred to as codecs.
package bench

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"runtime"
	"strings"
	"testing"

	"github.com/dsnet/golib/strconv"
	"github.com/packlab/inflate/internal/testutil"
)

const (
	FormatZlib = iota
	FormatXZ
)

type Encoder func(io.Writer, int) io.WriteCloser
type Decoder func(io.Reader) io.ReadCloser

var (
	Encoders map[int]map[string]Encoder
	Decoders map[int]map[string]Decoder
)

func RegisterEncoder(format int, name string, enc Encoder) {
	if Encoders == nil {
		Encoders = make(map[int]map[string]Encoder)
	}
	if Encoders[format] == nil {
		Encoders[format] = make(map[string]Encoder)
	}
	Encoders[format][name] = enc
}

func RegisterDecoder(format int, name string, dec Decoder) {
	if Decoders == nil {
		Decoders = make(map[int]map[string]Decoder)
	}
	if Decoders[format] == nil {
		Decoders[format] = make(map[string]Decoder)
	}
	Decoders[format][name] = dec
}

// Corpora are synthesized rather than loaded from disk so the tool runs
// anywhere the module checks out.
var Corpora = map[string]func(n int) []byte{
	"repeats": func(n int) []byte {
		return testutil.ResizeData([]byte("the quick brown fox jumps over the lazy dog. "), n)
	},
	"random": func(n int) []byte {
		return testutil.NewRand(3).Bytes(n)
	},
	"zeros": func(n int) []byte {
		return make([]byte, n)
	},
}

type Result struct {
	R float64 // Rate (MB/s) or ratio (rawSize/compSize)
	D float64 // Delta ratio relative to the first codec
}

// BenchmarkDecoder benchmarks a single decoder on pre-compressed input data
// and reports the result.
func BenchmarkDecoder(input []byte, dec Decoder) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			rd := dec(bytes.NewReader(input))
			cnt, err := io.Copy(io.Discard, rd)
			if err := rd.Close(); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(cnt)
		}
	})
}

// BenchmarkDecoderSuite benchmarks the named decoders of a format across
// every corpus, level, and size, compressing with the reference encoder.
//
// The values returned have the following structure:
//
//	results: [len(corpora)*len(levels)*len(sizes)][len(decs)]Result
//	names:   [len(corpora)*len(levels)*len(sizes)]string
func BenchmarkDecoderSuite(format int, decs, corpora []string, levels, sizes []int, ref Encoder) (results [][]Result, names []string) {
	return benchmarkSuite(decs, corpora, levels, sizes,
		func(input []byte, dec string, lvl int) Result {
			buf := new(bytes.Buffer)
			wr := ref(buf, lvl)
			if _, err := io.Copy(wr, bytes.NewReader(input)); err != nil {
				return Result{}
			}
			if wr.Close() != nil {
				return Result{}
			}

			result := BenchmarkDecoder(buf.Bytes(), Decoders[format][dec])
			if result.N == 0 {
				return Result{}
			}
			us := (float64(result.T.Nanoseconds()) / 1e3) / float64(result.N)
			return Result{R: float64(result.Bytes) / us}
		})
}

// BenchmarkRatioSuite reports the compression ratio the named encoders of a
// format achieve across every corpus, level, and size.
func BenchmarkRatioSuite(format int, encs, corpora []string, levels, sizes []int) (results [][]Result, names []string) {
	return benchmarkSuite(encs, corpora, levels, sizes,
		func(input []byte, enc string, lvl int) Result {
			buf := new(bytes.Buffer)
			wr := Encoders[format][enc](buf, lvl)
			if _, err := io.Copy(wr, bytes.NewReader(input)); err != nil {
				return Result{}
			}
			if wr.Close() != nil {
				return Result{}
			}
			return Result{R: float64(len(input)) / float64(buf.Len())}
		})
}

type benchFunc func(input []byte, codec string, level int) Result

func benchmarkSuite(codecs, corpora []string, levels, sizes []int, run benchFunc) ([][]Result, []string) {
	d0 := len(corpora) * len(levels) * len(sizes)
	results := make([][]Result, d0)
	for i := range results {
		results[i] = make([]Result, len(codecs))
	}
	names := make([]string, d0)

	var i int
	for _, c := range corpora {
		gen := Corpora[c]
		for _, l := range levels {
			for _, n := range sizes {
				b := gen(n)
				name := getName(c, l, n)
				for j, codec := range codecs {
					names[i] = name
					results[i][j] = run(b, codec, l)
					results[i][j].D = results[i][j].R / results[i][0].R
				}
				i++
			}
		}
	}
	return results, names
}

var reExp = regexp.MustCompile(`\.0*e\+0*`)

func getName(c string, l, n int) string {
	var sn string
	switch n {
	case 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9:
		sn = reExp.ReplaceAllString(fmt.Sprintf("%e", float64(n)), "e")
	default:
		s := strconv.FormatPrefix(float64(n), strconv.Base1024, 2)
		sn = strings.Replace(s, ".00", "", -1)
	}
	return fmt.Sprintf("%s:%d:%s", c, l, sn)
}
