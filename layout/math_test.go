// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"math"
	"testing"
)

func Test_CheckedMul(t *testing.T) {
	const max, min = math.MaxInt, math.MinInt

	t.Run("no overflow", func(t *testing.T) {
		testCases := [][2]int{
			{0, 0},
			{0, 1},
			{0, -1},
			{1, 1},
			{1, -2},
			{max, 0},
			{max, 1},
			{max, -1},
			{min, 1},
			{max / 2, 2},
			{min / 2, 2},
			{0, min},
		}
		for _, tc := range testCases {
			for _, pair := range [][2]int{tc, {tc[1], tc[0]}} {
				want := pair[0] * pair[1]

				c, err := checkedMul(pair[0], pair[1])
				if c != want || err != nil {
					t.Errorf("%d * %d: want (%d, nil), got (%d, %v)", pair[0], pair[1], want, c, err)
				}
			}
		}
	})

	t.Run("overflow", func(t *testing.T) {
		testCases := [][2]int{
			{max, 2},
			{max / 2, 3},
			{max, max},
			{min, -1},
			{min, 2},
			{min, min},
		}
		for _, tc := range testCases {
			for _, pair := range [][2]int{tc, {tc[1], tc[0]}} {
				c, err := checkedMul(pair[0], pair[1])
				if err == nil {
					t.Errorf("%d * %d: want error, got (%d, nil)", pair[0], pair[1], c)
				}
			}
		}
	})
}

func Test_CheckedAdd(t *testing.T) {
	const max, min = math.MaxInt, math.MinInt

	for _, pair := range [][2]int{{0, 0}, {max, 0}, {min, 0}, {max, min}, {max - 1, 1}, {min + 1, -1}} {
		if c, err := checkedAdd(pair[0], pair[1]); err != nil || c != pair[0]+pair[1] {
			t.Errorf("%d + %d: want (%d, nil), got (%d, %v)", pair[0], pair[1], pair[0]+pair[1], c, err)
		}
	}
	for _, pair := range [][2]int{{max, 1}, {min, -1}, {max, max}, {min, min}} {
		if c, err := checkedAdd(pair[0], pair[1]); err == nil {
			t.Errorf("%d + %d: want error, got (%d, nil)", pair[0], pair[1], c)
		}
	}
}
