// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testShapes = []Shape{
	nil,
	{},
	{0},
	{1},
	{5},
	{7, 8},
	{2, 3, 4},
	{2, 0, 3},
	{1, 1, 1},
	{3, 1, 4, 1, 5},
}

func TestSetContiguousStride(t *testing.T) {
	testCases := []struct {
		shape Shape
		want  Stride
	}{
		{nil, Stride{}},
		{Shape{}, Stride{}},
		{Shape{5}, Stride{1}},
		{Shape{7, 8}, Stride{8, 1}},
		{Shape{2, 3, 4}, Stride{12, 4, 1}},
		{Shape{2, 0, 3}, Stride{0, 3, 1}},
		{Shape{3, 1, 2}, Stride{2, 2, 1}},
	}
	for _, tc := range testCases {
		t.Run(tc.shape.String(), func(t *testing.T) {
			var st Stride
			SetContiguousStride(tc.shape, &st)
			assert.Equal(t, tc.want, st)
			assert.Equal(t, tc.want, ContiguousStride(tc.shape))
		})
	}
}

func TestSetContiguousStride_Overwrites(t *testing.T) {
	st := Stride{9, 9, 9, 9, 9}
	SetContiguousStride(Shape{2, 3}, &st)
	assert.Equal(t, Stride{3, 1}, st)

	st = Stride{9}
	SetContiguousStride(Shape{2, 3, 4}, &st)
	assert.Equal(t, Stride{12, 4, 1}, st)

	st = Stride{9, 9}
	SetContiguousStride(nil, &st)
	assert.Equal(t, Stride{}, st)
}

func TestSetContiguousStride_Idempotent(t *testing.T) {
	for _, s := range testShapes {
		var a, b Stride
		SetContiguousStride(s, &a)
		SetContiguousStride(s, &b)
		assert.Equal(t, a, b, s)

		SetContiguousStride(s, &a)
		assert.Equal(t, b, a, s)
	}
}

func TestHasContiguousStride(t *testing.T) {
	t.Run("computed stride is contiguous", func(t *testing.T) {
		for _, s := range testShapes {
			assert.True(t, HasContiguousStride(s, ContiguousStride(s)), s)
		}
	})

	testCases := []struct {
		name   string
		shape  Shape
		stride Stride
		want   bool
	}{
		{"scalar", nil, nil, true},
		{"vector", Shape{5}, Stride{1}, true},
		{"vector with gaps", Shape{5}, Stride{2}, false},
		{"reversed vector", Shape{5}, Stride{-1}, false},
		{"matrix", Shape{2, 3}, Stride{3, 1}, true},
		{"transposed matrix", Shape{2, 3}, Stride{1, 2}, false},
		{"padded rows", Shape{2, 3}, Stride{4, 1}, false},
		{"size-1 axis in the middle", Shape{2, 1, 3}, Stride{3, 100, 1}, true},
		{"size-1 trailing axis", Shape{4, 1}, Stride{1, 0}, true},
		{"size-1 leading axis", Shape{1, 4}, Stride{-7, 1}, true},
		{"all size-1 axes", Shape{1, 1}, Stride{5, 6}, true},
		{"zero extent", Shape{2, 0, 3}, Stride{0, 3, 1}, true},
		{"zero extent with other stride", Shape{2, 0, 3}, Stride{3, 3, 1}, false},
		{"shape longer than stride", Shape{2, 3}, Stride{1}, false},
		{"stride longer than shape", Shape{3}, Stride{3, 1}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HasContiguousStride(tc.shape, tc.stride))
		})
	}
}

func TestValidateShapeAndStride(t *testing.T) {
	t.Run("different lengths", func(t *testing.T) {
		for i := 0; i <= 4; i++ {
			for j := 0; j <= 4; j++ {
				if i == j {
					continue
				}
				s := make(Shape, i)
				st := make(Stride, j)
				assert.False(t, ValidateShapeAndStride(s, st), fmt.Sprintf("len %d, %d", i, j))
			}
		}
	})

	testCases := []struct {
		name   string
		shape  Shape
		stride Stride
		want   bool
	}{
		{"scalar", nil, nil, true},
		{"empty non-nil", Shape{}, Stride{}, true},
		{"contiguous", Shape{2, 3}, Stride{3, 1}, true},
		{"negative stride", Shape{2, 3}, Stride{-3, 1}, true},
		{"zero stride", Shape{2, 3}, Stride{0, 0}, true},
		{"zero extent", Shape{0}, Stride{1}, true},
		{"negative extent", Shape{2, -1}, Stride{1, 1}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidateShapeAndStride(tc.shape, tc.stride))
		})
	}
}

func TestCheckShapeAndStride(t *testing.T) {
	assert.NoError(t, CheckShapeAndStride(Shape{2, 3}, Stride{-1, 7}))
	assert.EqualError(t,
		CheckShapeAndStride(Shape{2, 3}, Stride{1}),
		"shape (2, 3) and stride (1) have different rank: 2 != 1")
	assert.EqualError(t,
		CheckShapeAndStride(Shape{2, -1}, Stride{1, 1}),
		"shape (2, -1) contains negative value -1 at dimension 1")
}

func TestStride_String(t *testing.T) {
	assert.Equal(t, "()", Stride(nil).String())
	assert.Equal(t, "(12, 4, 1)", Stride{12, 4, 1}.String())
	assert.Equal(t, "(-1)", Stride{-1}.String())
}

func TestStride_MarshalJSON(t *testing.T) {
	b, err := Stride(nil).MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	b, err = Stride{3, -1}.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, "[3,-1]", string(b))
}

func TestParseStride(t *testing.T) {
	st, err := ParseStride("(12, -4, 1)")
	assert.NoError(t, err)
	assert.Equal(t, Stride{12, -4, 1}, st)

	st, err = ParseStride("()")
	assert.NoError(t, err)
	assert.Equal(t, Stride{}, st)

	_, err = ParseStride("(1, x)")
	assert.EqualError(t, err, `invalid stride "(1, x)": bad dimension "x"`)
}
