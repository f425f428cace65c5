// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"strconv"
	"testing"

	"github.com/nlpodyssey/tensorlayout/header"
	"github.com/stretchr/testify/require"
)

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func headerOf(t *testing.T, headerJSON string) header.Header {
	t.Helper()
	var h header.Header
	require.NoError(t, h.UnmarshalJSON([]byte(headerJSON)))
	return h
}

var errWriteFailed = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWriteFailed
}
