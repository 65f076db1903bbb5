// Copyright © 2026 The DendroBites Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package distance computes uncorrected pairwise distances
// from an aligned character matrix.
package distance

import (
	"math"

	"github.com/mtholder/dendrobites/align"
)

// A Pair is the distance between two taxa.
type Pair struct {
	From string
	To   string

	// Number of sites in which both taxa
	// show a single state.
	Sites int

	// Proportion of compared sites
	// with different states.
	// It is NaN if there are no comparable sites.
	Dist float64
}

// Pairs returns the uncorrected p-distance
// for every pair of taxa in a matrix.
// A site is compared only when both taxa
// show a single state at that site.
// Pairs are reported in matrix row order.
func Pairs(m *align.Matrix) []Pair {
	taxa := m.Taxa()
	var pairs []Pair
	for i := 0; i < len(taxa); i++ {
		for j := i + 1; j < len(taxa); j++ {
			sites := 0
			diff := 0
			cols := m.RowLen(i)
			if c := m.RowLen(j); c < cols {
				cols = c
			}
			for c := 0; c < cols; c++ {
				si, ok := m.State(i, c)
				if !ok {
					continue
				}
				sj, ok := m.State(j, c)
				if !ok {
					continue
				}
				sites++
				if si != sj {
					diff++
				}
			}
			d := math.NaN()
			if sites > 0 {
				d = float64(diff) / float64(sites)
			}
			pairs = append(pairs, Pair{
				From:  taxa[i],
				To:    taxa[j],
				Sites: sites,
				Dist:  d,
			})
		}
	}
	return pairs
}
