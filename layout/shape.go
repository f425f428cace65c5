// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout describes how the elements of a tensor are arranged in
// storage, by means of a shape and a stride.
//
// A tensor whose values are laid out in storage starting from the rightmost
// dimension onward (that is, moving along rows for a 2D tensor) is defined
// as contiguous.
package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/bits"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// The Shape of a tensor: the extent of each dimension.
// Its length is the rank of the tensor; an empty Shape describes a scalar.
type Shape []int

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// Equal reports whether two shapes have the same extents.
// A nil Shape equals an empty one.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	return slices.Clone(s)
}

// NumElements returns the number of elements described by the shape, that
// is the product of all extents. An empty shape counts as 1 scalar value.
//
// An error is returned if the shape contains a negative value, or if the
// product does not fit within the "int" type. Every extent is checked, even
// after a zero one.
func (s Shape) NumElements() (int, error) {
	empty := false
	for i, v := range s {
		if v < 0 {
			return 0, fmt.Errorf("shape contains negative value %d at dimension %d", v, i)
		}
		empty = empty || v == 0
	}
	if empty {
		return 0, nil
	}
	size := uint(1)
	for _, v := range s {
		var hi uint
		if hi, size = bits.Mul(size, uint(v)); hi != 0 || size > math.MaxInt {
			return 0, fmt.Errorf("int overflow computing number of elements of shape %s", s)
		}
	}
	return int(size), nil
}

// String returns the shape formatted as "(d0, d1, ..., dN-1)".
func (s Shape) String() string {
	return ShapeString(s)
}

// WriteTo satisfies io.WriterTo interface, writing the same text
// returned by String.
func (s Shape) WriteTo(w io.Writer) (int64, error) {
	n, err := WriteShape(w, s)
	return int64(n), err
}

// MarshalJSON prevents a nil Shape to be serialized as "null",
// preferring an empty array "[]" instead.
func (s Shape) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int(s))
}

// WriteShape writes the shape to w, formatted as a bracketed, comma-separated
// list of dimensions, such as "(2, 3, 4)". An empty shape is written as "()".
//
// Formatting never fails: the returned error, if any, comes from w.
func WriteShape(w io.Writer, s Shape) (int, error) {
	return w.Write(appendDims(nil, s))
}

// ShapeString is a convenience function returning the text written by
// WriteShape.
func ShapeString(s Shape) string {
	var sb strings.Builder
	_, _ = WriteShape(&sb, s)
	return sb.String()
}

func appendDims(b []byte, dims []int) []byte {
	b = append(b, '(')
	for i, v := range dims {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = strconv.AppendInt(b, int64(v), 10)
	}
	return append(b, ')')
}

// ParseShape parses a list of non-negative dimensions.
//
// The canonical format produced by ShapeString, "(2, 3, 4)", is accepted,
// as well as square brackets or no brackets at all, and dimensions
// separated by commas and/or spaces: "[2 3 4]", "2,3,4".
// An empty list, such as "()" or "", is a scalar shape.
func ParseShape(str string) (Shape, error) {
	dims, err := parseDims(str, false)
	if err != nil {
		return nil, fmt.Errorf("invalid shape %q: %w", str, err)
	}
	return dims, nil
}

func parseDims(str string, allowNegative bool) ([]int, error) {
	body := strings.TrimSpace(str)
	if n := len(body); n >= 2 && (body[0] == '(' && body[n-1] == ')' || body[0] == '[' && body[n-1] == ']') {
		body = body[1 : n-1]
	}
	fields := strings.FieldsFunc(body, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	dims := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad dimension %q", f)
		}
		if v < 0 && !allowNegative {
			return nil, fmt.Errorf("negative dimension %d", v)
		}
		dims[i] = v
	}
	return dims, nil
}
