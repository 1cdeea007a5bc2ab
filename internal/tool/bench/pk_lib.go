// Copyright 2025, The Packlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"io"

	"github.com/packlab/inflate/zlib"
)

func init() {
	// This module only implements the decode side; the whole input is
	// buffered since the decoder operates on complete streams.
	RegisterDecoder(FormatZlib, "pk",
		func(r io.Reader) io.ReadCloser {
			input, err := io.ReadAll(r)
			if err != nil {
				panic(err)
			}
			output, err := zlib.Inflate(input, nil, zlib.MaxWindowSize, nil)
			if err != nil {
				panic(err)
			}
			return nopCloser{bytes.NewReader(output)}
		})
}
