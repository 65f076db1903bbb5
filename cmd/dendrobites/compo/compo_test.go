// Copyright © 2026 The DendroBites Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package compo

import "testing"

func TestChiSquare(t *testing.T) {
	homogeneous := [][]int{
		{10, 10},
		{10, 10},
	}
	x2, df := chiSquare(homogeneous)
	if x2 != 0 {
		t.Errorf("homogeneous: got %.6f, want %.6f", x2, 0.0)
	}
	if df != 1 {
		t.Errorf("homogeneous: got %d degrees of freedom, want %d", df, 1)
	}

	skewed := [][]int{
		{10, 0},
		{0, 10},
	}
	x2, df = chiSquare(skewed)
	if x2 != 20 {
		t.Errorf("skewed: got %.6f, want %.6f", x2, 20.0)
	}
	if df != 1 {
		t.Errorf("skewed: got %d degrees of freedom, want %d", df, 1)
	}

	empty := [][]int{
		{0, 0},
		{0, 0},
	}
	x2, df = chiSquare(empty)
	if x2 != 0 || df != 0 {
		t.Errorf("empty: got %.6f with %d degrees of freedom, want none", x2, df)
	}
}
