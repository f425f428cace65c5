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

func newStrideCmd() *cobra.Command {
	var dtypeName string
	cmd := &cobra.Command{
		Use:   "stride SHAPE",
		Short: "Print the row-major contiguous stride of a shape",
		Long: `Prints the row-major contiguous stride of SHAPE, in elements.
With --dtype, the stride in bytes is printed as well.

Example:
  tensorlayout stride "(2, 3, 4)"
  tensorlayout stride 2,3,4 --dtype F32`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStride(cmd.OutOrStdout(), args[0], dtypeName)
		},
	}
	cmd.Flags().StringVarP(&dtypeName, "dtype", "d", "", "element data type, such as F32, to print the stride in bytes")
	return cmd
}

func runStride(w io.Writer, shapeArg, dtypeName string) error {
	shape, err := layout.ParseShape(shapeArg)
	if err != nil {
		return err
	}
	if _, err = shape.NumElements(); err != nil {
		return err
	}
	var stride layout.Stride
	layout.SetContiguousStride(shape, &stride)
	logger.Debug("computed contiguous stride", zap.Stringer("shape", shape), zap.Stringer("stride", stride))

	if _, err = fmt.Fprintf(w, "shape  %s\nstride %s\n", shape, stride); err != nil {
		return err
	}
	if dtypeName == "" {
		return nil
	}

	dt, err := dtype.Parse(dtypeName)
	if err != nil {
		return err
	}
	byteStride, err := layout.Layout{DType: dt, Shape: shape, Stride: stride}.ByteStride()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "bytes  %s\n", byteStride)
	return err
}
