// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package header

import (
	"github.com/nlpodyssey/tensorlayout/dtype"
	"github.com/nlpodyssey/tensorlayout/layout"
)

// Tensor provides properties of a tensor, as described within a
// safetensors header.
type Tensor struct {
	Name        string
	DType       dtype.DType
	Shape       layout.Shape
	DataOffsets DataOffsets
}

// Layout describes how the elements of the tensor are arranged within its
// own DataOffsets byte range.
//
// Safetensors data is always stored in row-major order with no striding,
// so the layout is contiguous and starts at offset 0.
func (t Tensor) Layout() layout.Layout {
	return layout.Layout{
		DType:  t.DType,
		Shape:  t.Shape,
		Stride: layout.ContiguousStride(t.Shape),
	}
}

// TensorMap is a set of Tensor objects mapped by their name.
type TensorMap map[string]Tensor

// TensorSlice is a slice of Tensor objects.
type TensorSlice []Tensor

// TensorSlice creates an unsorted slice of Tensor objects filled with
// all values of the TensorMap.
func (tm TensorMap) TensorSlice() TensorSlice {
	if len(tm) == 0 {
		return nil
	}
	ts := make(TensorSlice, 0, len(tm))
	for _, t := range tm {
		ts = append(ts, t)
	}
	return ts
}
