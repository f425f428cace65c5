// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"fmt"

	"github.com/nlpodyssey/tensorlayout/dtype"
)

// Layout describes where each element of a tensor is located within a
// buffer of elements of type DType.
//
// The element at index (i0, i1, ..., iN-1) is found at position
// Offset + i0*Stride[0] + i1*Stride[1] + ... + iN-1*Stride[N-1].
type Layout struct {
	DType  dtype.DType
	Shape  Shape
	Stride Stride
	// Offset is the position of the first element, counted in elements
	// (not bytes) from the beginning of the buffer.
	Offset int
}

// NewContiguous returns a row-major contiguous Layout at offset 0.
// The given shape is copied.
func NewContiguous(dt dtype.DType, s Shape) (Layout, error) {
	if err := dt.Validate(); err != nil {
		return Layout{}, err
	}
	if _, err := s.NumElements(); err != nil {
		return Layout{}, err
	}
	return Layout{
		DType:  dt,
		Shape:  s.Clone(),
		Stride: ContiguousStride(s),
	}, nil
}

// Validate checks the structural consistency of the Layout, returning an
// error if a problem is encountered, otherwise nil.
//
// The Layout is checked against the following rules:
//   - the DType must be valid
//   - Shape and Stride must satisfy CheckShapeAndStride
//   - Offset must not be negative
func (l Layout) Validate() error {
	if err := l.DType.Validate(); err != nil {
		return err
	}
	if err := CheckShapeAndStride(l.Shape, l.Stride); err != nil {
		return err
	}
	if l.Offset < 0 {
		return fmt.Errorf("invalid negative offset %d", l.Offset)
	}
	return nil
}

// IsContiguous reports whether the Layout has a row-major contiguous
// stride. The Offset is not taken into account.
func (l Layout) IsContiguous() bool {
	return HasContiguousStride(l.Shape, l.Stride)
}

// NumElements returns the number of elements of the tensor.
func (l Layout) NumElements() (int, error) {
	return l.Shape.NumElements()
}

// ElementOffset returns the position, in elements, of the tensor value at
// the given multi-dimensional index.
func (l Layout) ElementOffset(index []int) (int, error) {
	if len(index) != len(l.Shape) || len(index) != len(l.Stride) {
		return 0, fmt.Errorf("index rank %d does not match layout rank %d", len(index), len(l.Shape))
	}
	pos := l.Offset
	for i, v := range index {
		if v < 0 || v >= l.Shape[i] {
			return 0, fmt.Errorf("index %d out of range for dimension %d of extent %d", v, i, l.Shape[i])
		}
		step, err := checkedMul(v, l.Stride[i])
		if err != nil {
			return 0, err
		}
		if pos, err = checkedAdd(pos, step); err != nil {
			return 0, err
		}
	}
	return pos, nil
}

// Extent returns the range [lo, hi) of buffer positions reachable through
// the Layout, taking negative strides into account.
//
// If the tensor has no elements (some extent is 0), lo and hi are both
// equal to Offset.
func (l Layout) Extent() (lo, hi int, err error) {
	if err = CheckShapeAndStride(l.Shape, l.Stride); err != nil {
		return 0, 0, err
	}
	for _, v := range l.Shape {
		if v == 0 {
			return l.Offset, l.Offset, nil
		}
	}
	lo, hi = l.Offset, l.Offset
	for i, v := range l.Shape {
		span, err := checkedMul(v-1, l.Stride[i])
		if err != nil {
			return 0, 0, err
		}
		if span > 0 {
			hi, err = checkedAdd(hi, span)
		} else {
			lo, err = checkedAdd(lo, span)
		}
		if err != nil {
			return 0, 0, err
		}
	}
	if hi, err = checkedAdd(hi, 1); err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

// CheckBounds verifies that every element reachable through the Layout lies
// within a buffer of numElements elements, returning an error otherwise.
//
// Unlike CheckShapeAndStride, which can only verify the metadata on its own,
// this check proves that no access can fall outside the buffer.
func (l Layout) CheckBounds(numElements int) error {
	if numElements < 0 {
		return fmt.Errorf("invalid negative buffer size %d", numElements)
	}
	if err := l.Validate(); err != nil {
		return err
	}
	lo, hi, err := l.Extent()
	if err != nil {
		return err
	}
	if lo == hi {
		return nil
	}
	if lo < 0 {
		return fmt.Errorf("layout %s reaches position %d, before the beginning of the buffer", l, lo)
	}
	if hi > numElements {
		return fmt.Errorf("layout %s reaches position %d, beyond a buffer of %d elements", l, hi-1, numElements)
	}
	return nil
}

// ByteSize returns the number of bytes needed to store all the elements of
// the tensor contiguously.
func (l Layout) ByteSize() (int, error) {
	if err := l.DType.Validate(); err != nil {
		return 0, err
	}
	n, err := l.Shape.NumElements()
	if err != nil {
		return 0, err
	}
	size, err := checkedMul(n, l.DType.Size())
	if err != nil {
		return 0, fmt.Errorf("int overflow computing tensor byte size: %w", err)
	}
	return size, nil
}

// ByteStride returns the Stride expressed in bytes rather than elements.
func (l Layout) ByteStride() (Stride, error) {
	if err := l.DType.Validate(); err != nil {
		return nil, err
	}
	bs := make(Stride, len(l.Stride))
	for i, v := range l.Stride {
		var err error
		if bs[i], err = checkedMul(v, l.DType.Size()); err != nil {
			return nil, fmt.Errorf("int overflow computing byte stride: %w", err)
		}
	}
	return bs, nil
}

// String returns a compact description such as "F32(2, 3)@0 stride (3, 1)".
func (l Layout) String() string {
	b := append([]byte(l.DType.String()), ShapeString(l.Shape)...)
	b = fmt.Appendf(b, "@%d stride ", l.Offset)
	return string(appendDims(b, l.Stride))
}
