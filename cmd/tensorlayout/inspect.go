// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/nlpodyssey/tensorlayout/header"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInspectCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Describe the layout of every tensor in a safetensors file",
		Long: `Reads and validates the header of a safetensors FILE, then prints, for each
tensor in storage order, its data type, shape, stride, contiguity and byte
range. Tensor data is never loaded.

Output formats: text (default), json, yaml.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.OutOrStdout(), args[0], format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or yaml")
	return cmd
}

func runInspect(w io.Writer, path, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	logger.Debug("reading header", zap.String("path", path))
	h, err := header.Read(bufio.NewReader(f))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err = h.Validate(); err != nil {
		return fmt.Errorf("invalid header in %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if want := int64(h.ByteBufferOffset + h.ByteBufferSize()); info.Size() != want {
		return fmt.Errorf("file %s has size %d, but its header describes %d bytes", path, info.Size(), want)
	}
	logger.Info("header read",
		zap.String("path", path),
		zap.Int("tensors", len(h.Tensors)),
		zap.Int("byte_buffer_offset", h.ByteBufferOffset))

	r, err := newReport(h)
	if err != nil {
		return err
	}
	return r.write(w, format)
}
