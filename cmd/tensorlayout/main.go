// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tensorlayout inspects tensor shapes and strides, either given on
// the command line or read from the header of a safetensors file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool

	logger = zap.NewNop()
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tensorlayout",
		Short: "Inspect tensor shapes and strides",
		Long: `tensorlayout describes how tensor elements are laid out in storage.

It computes row-major contiguous strides for a shape, checks whether a
shape/stride pair is consistent and contiguous, and describes the layout of
every tensor stored in a safetensors file without loading tensor data.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(newInspectCmd(), newStrideCmd(), newCheckCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
