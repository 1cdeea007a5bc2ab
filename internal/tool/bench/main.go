// Copyright 2025, The Packlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build ignore
// +build ignore

// Benchmark tool to compare the decompression performance of this module
// against other implementations. Individual implementations are referred to
// as codecs.
//
// Example usage:
//
//	$ go run main.go \
//		-corpora repeats,random \
//		-codecs  std,kp,pk      \
//		-levels  1,6,9          \
//		-sizes   1e4,1e5,1e6
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/packlab/inflate/internal/tool/bench"
)

const (
	defaultCorpora = "repeats,random,zeros"
	defaultCodecs  = "std,kp,pk"
	defaultLevels  = "1,6,9"
	defaultSizes   = "1e4,1e5,1e6"
)

func main() {
	corpora := flag.String("corpora", defaultCorpora, "comma-separated list of corpora to benchmark against")
	codecs := flag.String("codecs", defaultCodecs, "comma-separated list of decoder codecs")
	levels := flag.String("levels", defaultLevels, "comma-separated list of compression levels")
	sizes := flag.String("sizes", defaultSizes, "comma-separated list of input sizes")
	tests := flag.String("tests", "decRate", "comma-separated list of benchmarks: decRate,ratio")
	flag.Parse()

	start := time.Now()
	for _, test := range strings.Split(*tests, ",") {
		switch test {
		case "decRate":
			results, names := bench.BenchmarkDecoderSuite(
				bench.FormatZlib,
				strings.Split(*codecs, ","),
				strings.Split(*corpora, ","),
				parseInts(*levels),
				parseInts(*sizes),
				bench.Encoders[bench.FormatZlib]["std"],
			)
			printResults("zlib:decRate", "MB/s", strings.Split(*codecs, ","), results, names)
		case "ratio":
			encs := []string{"std", "kp"}
			results, names := bench.BenchmarkRatioSuite(
				bench.FormatZlib, encs,
				strings.Split(*corpora, ","),
				parseInts(*levels),
				parseInts(*sizes),
			)
			printResults("zlib:ratio", "ratio", encs, results, names)
		default:
			panic("unknown benchmark: " + test)
		}
	}
	fmt.Printf("\nRUNTIME: %v\n", time.Since(start))
}

func parseInts(s string) (xs []int) {
	for _, t := range strings.Split(s, ",") {
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			panic(err)
		}
		xs = append(xs, int(f))
	}
	return xs
}

func printResults(title, unit string, codecs []string, results [][]bench.Result, names []string) {
	fmt.Printf("BENCHMARK: %s\n", title)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "benchmark\t")
	for _, c := range codecs {
		fmt.Fprintf(tw, "%s %s\tdelta\t", c, unit)
	}
	fmt.Fprintln(tw)
	for i, row := range results {
		fmt.Fprintf(tw, "%s\t", names[i])
		for _, r := range row {
			fmt.Fprintf(tw, "%.2f\t%.2fx\t", r.R, r.D)
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}
