// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package header reads and validates the header of a safetensors data
// stream, describing each tensor it contains by means of a layout.Layout.
//
// Only the header is ever read: tensor data is never loaded.
package header

import "slices"

// Header provides tensors information and metadata, as defined by
// the safetensors format.
type Header struct {
	Tensors  TensorMap
	Metadata Metadata
	// ByteBufferOffset indicates the byte index position where the byte-buffer
	// is expected to start, relative to the beginning of the whole
	// safetensors data stream (or file).
	ByteBufferOffset int
}

// Metadata is a set of free-form key/value string pairs.
type Metadata map[string]string

// Sorted returns all the tensors ordered by their DataOffsets, that is the
// same order in which their data appear within the byte-buffer.
// Tensors with identical offsets are ordered by name.
func (h Header) Sorted() TensorSlice {
	ts := h.Tensors.TensorSlice()
	slices.SortFunc(ts, func(a, b Tensor) int {
		if c := a.DataOffsets.Compare(b.DataOffsets); c != 0 {
			return c
		}
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return ts
}

// ByteBufferSize returns the size of the byte-buffer described by the
// header, that is the highest DataOffsets.End among all tensors.
func (h Header) ByteBufferSize() int {
	size := 0
	for _, t := range h.Tensors {
		size = max(size, t.DataOffsets.End)
	}
	return size
}
