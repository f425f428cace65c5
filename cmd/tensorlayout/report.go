// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nlpodyssey/tensorlayout/dtype"
	"github.com/nlpodyssey/tensorlayout/header"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q: expected text, json or yaml", format)
}

// report is the description of a safetensors header printed by inspect.
type report struct {
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Tensors  []tensorRecord    `json:"tensors" yaml:"tensors"`
}

type tensorRecord struct {
	Name        string             `json:"name" yaml:"name"`
	DType       dtype.DType        `json:"dtype" yaml:"dtype"`
	Shape       string             `json:"shape" yaml:"shape"`
	Stride      string             `json:"stride" yaml:"stride"`
	Elements    int                `json:"elements" yaml:"elements"`
	Contiguous  bool               `json:"contiguous" yaml:"contiguous"`
	DataOffsets header.DataOffsets `json:"data_offsets" yaml:"data_offsets"`
}

func newReport(h header.Header) (report, error) {
	r := report{
		Metadata: h.Metadata,
		Tensors:  make([]tensorRecord, 0, len(h.Tensors)),
	}
	for _, t := range h.Sorted() {
		l := t.Layout()
		n, err := l.NumElements()
		if err != nil {
			return report{}, fmt.Errorf("tensor %q: %w", t.Name, err)
		}
		logger.Debug("tensor layout", zap.String("name", t.Name), zap.Stringer("layout", l))
		r.Tensors = append(r.Tensors, tensorRecord{
			Name:        t.Name,
			DType:       l.DType,
			Shape:       l.Shape.String(),
			Stride:      l.Stride.String(),
			Elements:    n,
			Contiguous:  l.IsContiguous(),
			DataOffsets: t.DataOffsets,
		})
	}
	return r, nil
}

func (r report) write(w io.Writer, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case formatText:
		return r.writeText(w)
	}
	return checkFormat(format)
}

func (r report) writeText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "NAME\tDTYPE\tSHAPE\tSTRIDE\tELEMENTS\tCONTIGUOUS\tBYTES"); err != nil {
		return err
	}
	for _, t := range r.Tensors {
		_, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%v\t[%d, %d)\n",
			t.Name, t.DType, t.Shape, t.Stride, t.Elements, t.Contiguous, t.DataOffsets.Begin, t.DataOffsets.End)
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}
