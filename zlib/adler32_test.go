// Copyright 2025, The Packlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package zlib

import (
	"hash/adler32"
	"testing"

	"github.com/packlab/inflate/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestUpdateAdler32(t *testing.T) {
	vectors := []struct {
		input []byte
		want  uint32
	}{
		{nil, 0x00000001},
		{[]byte("A"), 0x00420042},
		{[]byte("Hello"), 0x058c01f5},
		{[]byte("abcdefabcdef"), 0x1e3a04ab},
		{[]byte("the quick"), 0x1155037f},
	}
	for _, v := range vectors {
		assert.Equal(t, v.want, updateAdler32(adlerInit, v.input), "input %q", v.input)
	}
}

// TestUpdateAdler32Rolling checks that rolling the digest over chunks agrees
// with the one-shot computation of hash/adler32.
func TestUpdateAdler32Rolling(t *testing.T) {
	data := testutil.NewRand(0).Bytes(1 << 16)
	for _, step := range []int{1, 7, 256, 65521} {
		d := uint32(adlerInit)
		for i := 0; i < len(data); i += step {
			n := i + step
			if n > len(data) {
				n = len(data)
			}
			d = updateAdler32(d, data[i:n])
		}
		assert.Equal(t, adler32.Checksum(data), d, "step %d", step)
	}
}
