// Copyright 2025, The Packlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"io"

	"github.com/ulikunitz/xz"
)

type nopCloser struct{ io.Reader }

func (nopCloser) Close() error { return nil }

func init() {
	// The xz codec ignores the compression level.
	RegisterEncoder(FormatXZ, "xz",
		func(w io.Writer, lvl int) io.WriteCloser {
			xw, err := xz.NewWriter(w)
			if err != nil {
				panic(err)
			}
			return xw
		})
	RegisterDecoder(FormatXZ, "xz",
		func(r io.Reader) io.ReadCloser {
			xr, err := xz.NewReader(r)
			if err != nil {
				panic(err)
			}
			return nopCloser{xr}
		})
}
