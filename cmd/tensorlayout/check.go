// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/nlpodyssey/tensorlayout/dtype"
	"github.com/nlpodyssey/tensorlayout/layout"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type checkOptions struct {
	offset  int
	buffer  int
	element string
}

func newCheckCmd() *cobra.Command {
	opts := checkOptions{buffer: -1}
	cmd := &cobra.Command{
		Use:   "check SHAPE STRIDE",
		Short: "Validate a shape/stride pair and report whether it is contiguous",
		Long: `Validates that SHAPE and STRIDE have the same rank and that SHAPE has no
negative extents, then reports whether STRIDE is row-major contiguous.

With --buffer, the layout starting at --offset is also checked to stay
within a buffer of that many elements.

Example:
  tensorlayout check "(2, 3)" "(3, 1)"
  tensorlayout check "(4)" "(-1)" --offset 3 --buffer 4`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), args[0], args[1], opts)
		},
	}
	cmd.Flags().IntVar(&opts.offset, "offset", 0, "position of the first element, in elements")
	cmd.Flags().IntVar(&opts.buffer, "buffer", -1, "size of the underlying buffer, in elements (negative to skip the bounds check)")
	cmd.Flags().StringVarP(&opts.element, "dtype", "d", "F32", "element data type")
	return cmd
}

func runCheck(w io.Writer, shapeArg, strideArg string, opts checkOptions) error {
	shape, err := layout.ParseShape(shapeArg)
	if err != nil {
		return err
	}
	stride, err := layout.ParseStride(strideArg)
	if err != nil {
		return err
	}
	dt, err := dtype.Parse(opts.element)
	if err != nil {
		return err
	}
	if err = layout.CheckShapeAndStride(shape, stride); err != nil {
		return err
	}

	l := layout.Layout{DType: dt, Shape: shape, Stride: stride, Offset: opts.offset}
	if err = l.Validate(); err != nil {
		return err
	}
	logger.Debug("checking layout", zap.Stringer("layout", l), zap.Int("buffer", opts.buffer))

	if _, err = fmt.Fprintf(w, "layout     %s\ncontiguous %v\n", l, l.IsContiguous()); err != nil {
		return err
	}
	if opts.buffer < 0 {
		return nil
	}
	if err = l.CheckBounds(opts.buffer); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "in bounds  %d elements\n", opts.buffer)
	return err
}
