// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package header

import (
	"fmt"
)

// Validate checks whether the content of a Header is valid according to
// safetensors format, returning an error if a problem is encountered,
// otherwise nil.
//
// The Header is checked against the following rules:
//
//   - ByteBufferOffset must not be negative
//   - each key in Tensors TensorMap must match the mapped Tensor.Name
//   - the union of DataOffsets of all Tensors must cover an entire contiguous
//     area of the byte-buffer, starting from offset 0
//   - DataOffsets of any pair of tensors must not overlap
//   - for each Tensor, its DataOffsets.Begin must be <= DataOffsets.End
//   - each Tensor's Layout must be valid (see layout.Layout.Validate)
//   - for each Tensor, its explicit byte size described by DataOffsets
//     (End - Begin) must coincide with the byte size of its Layout
//   - no overflow must occur during calculations at any step
func (h Header) Validate() error {
	if h.ByteBufferOffset < 0 {
		return fmt.Errorf("invalid byte-buffer offset negative value %d", h.ByteBufferOffset)
	}
	for k, t := range h.Tensors {
		if k != t.Name {
			return fmt.Errorf("tensor names mismatch: TensorMap key %q, Tensor.Name %q", k, t.Name)
		}
	}

	expectedBegin := 0
	for _, t := range h.Sorted() {
		if err := validateTensor(t, expectedBegin); err != nil {
			return fmt.Errorf("invalid tensor %q: %w", t.Name, err)
		}
		expectedBegin = t.DataOffsets.End
	}
	return nil
}

func validateTensor(t Tensor, expectedBegin int) error {
	if t.DataOffsets.Begin != expectedBegin {
		return fmt.Errorf("expected data-offsets begin %d, actual %d", expectedBegin, t.DataOffsets.Begin)
	}
	if t.DataOffsets.End < t.DataOffsets.Begin {
		return fmt.Errorf("expected data-offsets end >= %d (begin), actual %d", t.DataOffsets.Begin, t.DataOffsets.End)
	}

	l := t.Layout()
	if err := l.Validate(); err != nil {
		return err
	}
	byteSize, err := l.ByteSize()
	if err != nil {
		return err
	}
	if offSize := t.DataOffsets.Len(); offSize != byteSize {
		return fmt.Errorf("byte size computed from shape (%d) differs from data-offsets size (%d)", byteSize, offSize)
	}
	return nil
}
