// Copyright © 2026 The DendroBites Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package invariants_test

import (
	"errors"
	"math"
	"reflect"
	"slices"
	"testing"

	"github.com/mtholder/dendrobites/align"
	"github.com/mtholder/dendrobites/invariants"
)

func newMatrix(t testing.TB, rows map[string]string) *align.Matrix {
	t.Helper()

	m := align.New(align.DNA)
	// insertion order must be deterministic for the tests
	names := make([]string, 0, len(rows))
	for n := range rows {
		names = append(names, n)
	}
	slices.Sort(names)
	for _, n := range names {
		if err := m.Add(n, []byte(rows[n])); err != nil {
			t.Fatalf("unable to build matrix: %v", err)
		}
	}
	return m
}

func TestCull(t *testing.T) {
	m := newMatrix(t, map[string]string{
		"taxon A": "AACAA",
		"taxon B": "AACC-",
		"taxon C": "AACGA",
		"taxon D": "AACTA",
	})

	p, err := invariants.Cull(m, 0.4)
	if err != nil {
		t.Fatalf("cull: unexpected error: %v", err)
	}

	if p.EquilibriumLength != 5 {
		t.Errorf("equilibrium length: got %.6f, want %.6f", p.EquilibriumLength, 5.0)
	}
	if p.InvariantColumns != 2 {
		t.Errorf("invariant columns: got %.6f, want %.6f", p.InvariantColumns, 2.0)
	}

	symbols := []invariants.SymbolPlan{
		{Symbol: 'A', Cull: 1, Total: 2},
		{Symbol: 'C', Cull: 1, Total: 1},
	}
	if !reflect.DeepEqual(p.Symbols, symbols) {
		t.Errorf("symbol plan: got %v, want %v", p.Symbols, symbols)
	}

	cull := []int{0, 2}
	if !reflect.DeepEqual(p.CullSet, cull) {
		t.Errorf("cull set: got %v, want %v", p.CullSet, cull)
	}
	retain := []int{1, 3, 4}
	if !reflect.DeepEqual(p.RetainSet, retain) {
		t.Errorf("retain set: got %v, want %v", p.RetainSet, retain)
	}

	if g, w := len(p.CullSet)+len(p.RetainSet), m.Columns(); g != w {
		t.Errorf("conservation: got %d columns, want %d", g, w)
	}

	// same input, same output
	np, err := invariants.Cull(m, 0.4)
	if err != nil {
		t.Fatalf("cull: unexpected error: %v", err)
	}
	if !reflect.DeepEqual(np, p) {
		t.Errorf("determinism: got %v, want %v", np, p)
	}

	nm := m.Select(p.RetainSet)
	if g, w := nm.Sequence("taxon B"), "AC-"; string(g) != w {
		t.Errorf("reduced matrix: got %q, want %q", g, w)
	}
}

func TestCullShortfall(t *testing.T) {
	// the per symbol counts round down
	// and the shortfall goes to the smallest symbol
	m := newMatrix(t, map[string]string{
		"taxon A": "AAACCCGGGA",
		"taxon B": "AAACCCGGGC",
	})

	p, err := invariants.Cull(m, 0.405)
	if err != nil {
		t.Fatalf("cull: unexpected error: %v", err)
	}

	symbols := []invariants.SymbolPlan{
		{Symbol: 'A', Cull: 2, Total: 3},
		{Symbol: 'C', Cull: 1, Total: 3},
		{Symbol: 'G', Cull: 1, Total: 3},
	}
	if !reflect.DeepEqual(p.Symbols, symbols) {
		t.Errorf("symbol plan: got %v, want %v", p.Symbols, symbols)
	}

	cull := []int{0, 1, 3, 6}
	if !reflect.DeepEqual(p.CullSet, cull) {
		t.Errorf("cull set: got %v, want %v", p.CullSet, cull)
	}
}

func TestCullBothGapped(t *testing.T) {
	// a column gapped in both rows
	// does not count for the pairwise length
	m := newMatrix(t, map[string]string{
		"taxon A": "AA-C",
		"taxon B": "AA-G",
	})

	p, err := invariants.Cull(m, 0.5)
	if err != nil {
		t.Fatalf("cull: unexpected error: %v", err)
	}
	if p.EquilibriumLength != 3 {
		t.Errorf("equilibrium length: got %.6f, want %.6f", p.EquilibriumLength, 3.0)
	}
	if p.InvariantColumns != 1.5 {
		t.Errorf("invariant columns: got %.6f, want %.6f", p.InvariantColumns, 1.5)
	}
	if cull := []int{0, 1}; !reflect.DeepEqual(p.CullSet, cull) {
		t.Errorf("cull set: got %v, want %v", p.CullSet, cull)
	}
}

func TestCullSaturation(t *testing.T) {
	m := newMatrix(t, map[string]string{
		"taxon A": "AAAC",
		"taxon B": "AAAG",
	})

	p, err := invariants.Cull(m, 0.99)
	if err != nil {
		t.Fatalf("cull: unexpected error: %v", err)
	}

	// every constant column goes,
	// the variable column is never culled
	if cull := []int{0, 1, 2}; !reflect.DeepEqual(p.CullSet, cull) {
		t.Errorf("cull set: got %v, want %v", p.CullSet, cull)
	}
	if retain := []int{3}; !reflect.DeepEqual(p.RetainSet, retain) {
		t.Errorf("retain set: got %v, want %v", p.RetainSet, retain)
	}
}

func TestCullSmallProportion(t *testing.T) {
	m := newMatrix(t, map[string]string{
		"taxon A": "AAC",
		"taxon B": "AAG",
	})

	p, err := invariants.Cull(m, 0.001)
	if err != nil {
		t.Fatalf("cull: unexpected error: %v", err)
	}
	if len(p.CullSet) != 0 {
		t.Errorf("cull set: got %v, want an empty set", p.CullSet)
	}
	if retain := []int{0, 1, 2}; !reflect.DeepEqual(p.RetainSet, retain) {
		t.Errorf("retain set: got %v, want %v", p.RetainSet, retain)
	}
}

func TestCullAmbiguous(t *testing.T) {
	// a column with an ambiguity code is never constant
	m := newMatrix(t, map[string]string{
		"taxon A": "AANR",
		"taxon B": "AANR",
	})

	p, err := invariants.Cull(m, 0.9)
	if err != nil {
		t.Fatalf("cull: unexpected error: %v", err)
	}
	symbols := []invariants.SymbolPlan{
		{Symbol: 'A', Cull: 2, Total: 2},
	}
	if !reflect.DeepEqual(p.Symbols, symbols) {
		t.Errorf("symbol plan: got %v, want %v", p.Symbols, symbols)
	}
	if retain := []int{2, 3}; !reflect.DeepEqual(p.RetainSet, retain) {
		t.Errorf("retain set: got %v, want %v", p.RetainSet, retain)
	}
}

func TestCullMonotonic(t *testing.T) {
	m := newMatrix(t, map[string]string{
		"taxon A": "AAAACCGGT-AC",
		"taxon B": "AAAACCGGTTAG",
		"taxon C": "AAAACCGGT-AT",
	})

	prev := 0
	for _, pInv := range []float64{0.05, 0.1, 0.2, 0.3, 0.5, 0.7, 0.9, 0.99} {
		p, err := invariants.Cull(m, pInv)
		if err != nil {
			t.Fatalf("cull [p-inv %.3f]: unexpected error: %v", pInv, err)
		}
		if len(p.CullSet) < prev {
			t.Errorf("cull [p-inv %.3f]: got %d culled columns, want at least %d", pInv, len(p.CullSet), prev)
		}
		prev = len(p.CullSet)

		for _, s := range p.Symbols {
			if s.Cull < 0 || s.Cull > s.Total {
				t.Errorf("cull [p-inv %.3f]: symbol %c: %d of %d columns", pInv, s.Symbol, s.Cull, s.Total)
			}
		}
		if g, w := len(p.CullSet)+len(p.RetainSet), m.Columns(); g != w {
			t.Errorf("cull [p-inv %.3f]: conservation: got %d columns, want %d", pInv, g, w)
		}
	}
}

func TestCullError(t *testing.T) {
	m := newMatrix(t, map[string]string{
		"taxon A": "AAC",
		"taxon B": "AAG",
	})

	for _, pInv := range []float64{0, 1, -0.5, 1.5, math.NaN()} {
		if _, err := invariants.Cull(m, pInv); !errors.Is(err, invariants.ErrProportion) {
			t.Errorf("p-inv %.3f: got error %v, want %v", pInv, err, invariants.ErrProportion)
		}
	}

	single := newMatrix(t, map[string]string{
		"taxon A": "AAC",
	})
	if _, err := invariants.Cull(single, 0.5); !errors.Is(err, invariants.ErrInsufficientTaxa) {
		t.Errorf("single taxon: got error %v, want %v", err, invariants.ErrInsufficientTaxa)
	}

	ragged := newMatrix(t, map[string]string{
		"taxon A": "AAC",
		"taxon B": "AACGT",
	})
	if _, err := invariants.Cull(ragged, 0.5); !errors.Is(err, invariants.ErrRagged) {
		t.Errorf("ragged matrix: got error %v, want %v", err, invariants.ErrRagged)
	}

	variable := newMatrix(t, map[string]string{
		"taxon A": "ACT",
		"taxon B": "CAT",
		"taxon C": "TCA",
	})
	if _, err := invariants.Cull(variable, 0.5); !errors.Is(err, invariants.ErrNoConstant) {
		t.Errorf("variable matrix: got error %v, want %v", err, invariants.ErrNoConstant)
	}
}
