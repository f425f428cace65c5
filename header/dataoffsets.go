// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package header

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DataOffsets describes "[Begin, End)" byte range of the tensor's data
// within the safetensors byte-buffer.
//
// Both positions are relative to the beginning of the byte-buffer.
type DataOffsets struct {
	// Begin is the lower bound byte index (included).
	Begin int
	// End is the upper bound byte index (excluded).
	End int
}

// Len returns the number of bytes in the range.
func (a DataOffsets) Len() int {
	return a.End - a.Begin
}

// Compare returns -1, 0 or +1 depending on whether "a" is ordered before,
// together with, or after "b", comparing Begin first, then End.
func (a DataOffsets) Compare(b DataOffsets) int {
	switch {
	case a.Begin < b.Begin, a.Begin == b.Begin && a.End < b.End:
		return -1
	case a == b:
		return 0
	}
	return 1
}

// UnmarshalJSON deserializes a DataOffsets object from the JSON
// value expected from safetensors format (that is, an array of two numbers).
func (a *DataOffsets) UnmarshalJSON(b []byte) error {
	var decoded []int
	if err := json.Unmarshal(b, &decoded); err != nil {
		return err
	}
	return a.set(decoded)
}

// MarshalJSON serializes a DataOffsets object to a value appropriate for
// safetensors format (that is, an array of two numbers).
func (a DataOffsets) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{a.Begin, a.End})
}

// UnmarshalYAML reads the same two-item sequence written by MarshalYAML.
func (a *DataOffsets) UnmarshalYAML(value *yaml.Node) error {
	var decoded []int
	if err := value.Decode(&decoded); err != nil {
		return err
	}
	return a.set(decoded)
}

// MarshalYAML writes the range as a flow sequence "[begin, end]", the same
// shape it has in a safetensors header.
func (a DataOffsets) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind:  yaml.SequenceNode,
		Style: yaml.FlowStyle,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(a.Begin)},
			{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(a.End)},
		},
	}, nil
}

func (a *DataOffsets) set(values []int) error {
	if l := len(values); l != 2 {
		return fmt.Errorf(`bad "data_offsets" length: expected 2, actual %d`, l)
	}
	*a = DataOffsets{Begin: values[0], End: values[1]}
	return nil
}
