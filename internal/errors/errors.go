// Copyright 2025, The Packlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package errors constructs the module's typed errors and provides the
// panic/recover plumbing used at the decoder's API boundary.
//
// Decoding code reports corruption by panicking with an *inflate.Error.
// The exported entry points convert that panic back into an ordinary error
// return with a deferred Recover call. Runtime errors (out-of-bounds slice
// accesses and the like) are never swallowed.
package errors

import (
	"fmt"
	"runtime"

	"github.com/packlab/inflate"
)

// New returns an *inflate.Error with the given kind and message.
func New(kind inflate.ErrorKind, msg string) error {
	return &inflate.Error{Kind: kind, Msg: msg}
}

// Newf is New with fmt.Sprintf formatting of the message.
func Newf(kind inflate.ErrorKind, format string, args ...interface{}) error {
	return &inflate.Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Panic raises err as a panic to be caught by Recover.
func Panic(err error) {
	panic(err)
}

// Recover converts a panicking *inflate.Error into an error return.
// It must be called as a deferred function with the address of the caller's
// named error result.
func Recover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case *inflate.Error:
		*err = ex
	default:
		panic(ex)
	}
}
