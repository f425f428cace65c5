// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"encoding/json"
	"fmt"
)

// Stride tells, for each dimension, how many elements to skip in storage to
// advance one position along that dimension. Values can be negative.
type Stride []int

// String returns the stride formatted like a Shape: "(s0, s1, ..., sN-1)".
func (st Stride) String() string {
	return string(appendDims(nil, st))
}

// MarshalJSON serializes a nil Stride as "[]" rather than "null".
func (st Stride) MarshalJSON() ([]byte, error) {
	if st == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int(st))
}

// SetContiguousStride sets stride to be contiguous with respect to a
// row-major layout of the given shape: the last dimension has stride 1, and
// each other dimension has the stride of the next one multiplied by the
// next one's extent.
//
// The previous content of stride is overwritten, never appended to; its
// backing array is reused when large enough. A scalar (empty) shape yields
// an empty, non-nil stride.
//
// The shape is expected to be valid (see Shape.NumElements); the products
// are not checked for overflow.
func SetContiguousStride(s Shape, stride *Stride) {
	st := *stride
	if st == nil || cap(st) < len(s) {
		st = make(Stride, len(s))
	} else {
		st = st[:len(s)]
	}
	acc := 1
	for i := len(s) - 1; i >= 0; i-- {
		st[i] = acc
		acc *= s[i]
	}
	*stride = st
}

// ContiguousStride returns a new row-major contiguous stride for the
// given shape.
func ContiguousStride(s Shape) Stride {
	var st Stride
	SetContiguousStride(s, &st)
	return st
}

// HasContiguousStride reports whether the stride describes a tensor laid
// out contiguously in row-major order, that is, whether it equals the
// stride computed by SetContiguousStride.
//
// Dimensions of extent 1 are not compared, since their stride never
// contributes to an element's position. Shape and stride of different
// length are never contiguous.
func HasContiguousStride(s Shape, st Stride) bool {
	if len(s) != len(st) {
		return false
	}
	expected := 1
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != 1 && st[i] != expected {
			return false
		}
		expected *= s[i]
	}
	return true
}

// ValidateShapeAndStride reports whether shape and stride are structurally
// compatible. See CheckShapeAndStride for the rules.
func ValidateShapeAndStride(s Shape, st Stride) bool {
	return CheckShapeAndStride(s, st) == nil
}

// CheckShapeAndStride returns an error describing the first reason why
// shape and stride are not compatible, otherwise nil.
//
// Shape and stride must have the same length, and the shape must not
// contain negative values. Any stride value is allowed, including negative
// ones, which describe reversed views. Whether an access could fall outside
// the underlying storage depends on its size: see Layout.CheckBounds.
func CheckShapeAndStride(s Shape, st Stride) error {
	if len(s) != len(st) {
		return fmt.Errorf("shape %s and stride %s have different rank: %d != %d", s, st, len(s), len(st))
	}
	for i, v := range s {
		if v < 0 {
			return fmt.Errorf("shape %s contains negative value %d at dimension %d", s, v, i)
		}
	}
	return nil
}

// ParseStride parses a list of strides, accepting the same formats as
// ParseShape. Negative values are allowed.
func ParseStride(str string) (Stride, error) {
	dims, err := parseDims(str, true)
	if err != nil {
		return nil, fmt.Errorf("invalid stride %q: %w", str, err)
	}
	return dims, nil
}
