// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package header

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/nlpodyssey/tensorlayout/dtype"
	"github.com/nlpodyssey/tensorlayout/layout"
)

// MaxSize is the largest header size, in bytes, accepted by Read.
const MaxSize = 100_000_000

const metadataKey = "__metadata__"

type rawDecodedHeader map[string]map[string]any

// Read reads and parses from "r" the initial part of a safetensors
// data stream: an 8-byte little-endian header size, followed by the JSON
// header itself. Nothing is read beyond the header.
//
// Note that after successfully reading and parsing, NO validation is
// performed on the obtained Header. See Header.Validate.
func Read(r io.Reader) (Header, error) {
	size, err := readHeaderSize(r)
	switch {
	case err != nil:
		return Header{}, err
	case size < 2: // a bare minimum header is "{}"
		return Header{}, fmt.Errorf("header size too small: %d", size)
	case size > MaxSize:
		return Header{}, fmt.Errorf("header size too large: %d", size)
	}

	b := make([]byte, size)
	if _, err = io.ReadFull(r, b); err != nil {
		return Header{}, fmt.Errorf("failed to read header: %w", err)
	}

	var h Header
	if err = h.UnmarshalJSON(b); err != nil {
		return Header{}, err
	}
	h.ByteBufferOffset = 8 + int(size) // take into account "size" uint64 bytes
	return h, nil
}

func readHeaderSize(r io.Reader) (uint64, error) {
	var arr [8]byte
	b := arr[:]
	if _, err := io.ReadFull(r, b); err != nil {
		return 0, fmt.Errorf("failed to read header size: %w", err)
	}
	return binary.LittleEndian.Uint64(b), nil
}

// UnmarshalJSON parses the JSON part of a safetensors header.
// Leading and trailing white spaces are allowed.
//
// ByteBufferOffset is left untouched, since it cannot be inferred from
// the JSON data alone.
func (h *Header) UnmarshalJSON(b []byte) error {
	raw, err := decodeJSON(b)
	if err != nil {
		return fmt.Errorf("failed to JSON-decode header: %w", err)
	}
	var decoded Header
	if rawMeta, ok := raw[metadataKey]; ok {
		delete(raw, metadataKey)
		if decoded.Metadata, err = convertRawMetadata(rawMeta); err != nil {
			return err
		}
	}
	if decoded.Tensors, err = convertRawTensors(raw); err != nil {
		return err
	}
	h.Tensors = decoded.Tensors
	h.Metadata = decoded.Metadata
	return nil
}

func decodeJSON(b []byte) (rawDecodedHeader, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var raw rawDecodedHeader
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	// take care of possible padding spaces after JSON object
	if off := dec.InputOffset(); off != int64(len(b)) {
		if _, err := dec.Token(); err == nil {
			return nil, fmt.Errorf("unexpected data at byte offset %d", off)
		} else if err != io.EOF {
			return nil, err
		}
	}
	return raw, nil
}

func convertRawMetadata(raw map[string]any) (Metadata, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	metadata := make(Metadata, len(raw))
	for key, rawVal := range raw {
		var ok bool
		if metadata[key], ok = rawVal.(string); !ok {
			return nil, fmt.Errorf("failed to interpret header metadata: found non-string value for key %q", key)
		}
	}
	return metadata, nil
}

func convertRawTensors(raw rawDecodedHeader) (TensorMap, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	tensors := make(TensorMap, len(raw))
	for key, rawVal := range raw {
		t, err := convertRawTensor(key, rawVal)
		if err != nil {
			return nil, fmt.Errorf("failed to interpret header tensor %q: %w", key, err)
		}
		tensors[key] = t
	}
	return tensors, nil
}

func convertRawTensor(name string, raw map[string]any) (t Tensor, err error) {
	if raw == nil {
		return Tensor{}, errors.New("tensor is not a JSON object")
	}
	t.Name = name
	if t.DType, err = convertRawTensorDType(raw["dtype"]); err != nil {
		return
	}
	if t.Shape, err = convertRawTensorShape(raw["shape"]); err != nil {
		return
	}
	if t.DataOffsets, err = convertRawDataOffsets(raw["data_offsets"]); err != nil {
		return
	}
	if len(raw) != 3 {
		err = errors.New("JSON object contains unknown keys")
	}
	return
}

func convertRawTensorDType(raw any) (dtype.DType, error) {
	if raw == nil {
		return 0, errors.New(`"dtype" is missing`)
	}
	s, ok := raw.(string)
	if !ok {
		return 0, errors.New(`found non-string "dtype" value`)
	}
	dt, err := dtype.Parse(s)
	if err != nil {
		return 0, fmt.Errorf(`invalid "dtype" value: %q`, s)
	}
	return dt, nil
}

func convertRawTensorShape(raw any) (layout.Shape, error) {
	values, err := convertNonNegIntArray("shape", raw)
	if err != nil {
		return nil, err
	}
	return layout.Shape(values), nil
}

func convertRawDataOffsets(raw any) (DataOffsets, error) {
	values, err := convertNonNegIntArray("data_offsets", raw)
	if err != nil {
		return DataOffsets{}, err
	}
	var d DataOffsets
	if err := d.set(values); err != nil {
		return DataOffsets{}, err
	}
	return d, nil
}

func convertNonNegIntArray(key string, raw any) ([]int, error) {
	if raw == nil {
		return nil, fmt.Errorf("%q is missing", key)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("found non-array %q value", key)
	}
	values := make([]int, len(items))
	for i, item := range items {
		var err error
		if values[i], err = convertNonNegInt(item); err != nil {
			return nil, fmt.Errorf("failed to interpret %q value at index %d: %w", key, i, err)
		}
	}
	return values, nil
}

func convertNonNegInt(value any) (int, error) {
	jNum, ok := value.(json.Number)
	if !ok {
		return 0, errors.New("value is not a number")
	}
	num, err := strconv.ParseInt(jNum.String(), 10, strconv.IntSize)
	if err != nil {
		return 0, fmt.Errorf("failed to convert value %q to int: %w", jNum.String(), err)
	}
	if num < 0 {
		return 0, fmt.Errorf("value is negative: %d", num)
	}
	return int(num), nil
}
