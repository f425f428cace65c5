// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"fmt"
	"math"
)

// checkedMul multiplies a and b and checks for overflow.
func checkedMul(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return c, fmt.Errorf("multiplication overflow: %d * %d", a, b)
	}
	return c, nil
}

// checkedAdd adds a and b and checks for overflow.
func checkedAdd(a, b int) (int, error) {
	c := a + b
	if (c > a) != (b > 0) {
		return c, fmt.Errorf("addition overflow: %d + %d", a, b)
	}
	return c, nil
}
