// Copyright © 2026 The DendroBites Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package distance_test

import (
	"math"
	"testing"

	"github.com/mtholder/dendrobites/align"
	"github.com/mtholder/dendrobites/distance"
)

func TestPairs(t *testing.T) {
	m := align.New(align.DNA)
	seqs := []struct {
		taxon string
		seq   string
	}{
		{"taxon A", "ACCTGN"},
		{"taxon B", "ACGT-A"},
		{"taxon C", "??????"},
	}
	for _, s := range seqs {
		if err := m.Add(s.taxon, []byte(s.seq)); err != nil {
			t.Fatalf("unable to build matrix: %v", err)
		}
	}

	pairs := distance.Pairs(m)
	if g, w := len(pairs), 3; g != w {
		t.Fatalf("pairs: got %d, want %d", g, w)
	}

	// A-B: four comparable sites, one mismatch
	p := pairs[0]
	if p.From != "taxon A" || p.To != "taxon B" {
		t.Errorf("pair order: got %s-%s, want %s-%s", p.From, p.To, "taxon A", "taxon B")
	}
	if g, w := p.Sites, 4; g != w {
		t.Errorf("pair %s-%s: sites: got %d, want %d", p.From, p.To, g, w)
	}
	if g, w := p.Dist, 0.25; g != w {
		t.Errorf("pair %s-%s: distance: got %.6f, want %.6f", p.From, p.To, g, w)
	}

	// pairs with taxon C have no comparable sites
	for _, p := range pairs[1:] {
		if p.Sites != 0 {
			t.Errorf("pair %s-%s: sites: got %d, want %d", p.From, p.To, p.Sites, 0)
		}
		if !math.IsNaN(p.Dist) {
			t.Errorf("pair %s-%s: distance: got %.6f, want NaN", p.From, p.To, p.Dist)
		}
	}
}
