// Copyright © 2026 The DendroBites Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package synapo detects alignment columns
// that are candidate synapomorphies
// for a group of taxa:
// columns in which the states shown by the group
// do not overlap with the states shown
// by the rest of the taxa.
package synapo

import (
	"fmt"
	"slices"

	"github.com/mtholder/dendrobites/align"
)

// A Column is a candidate synapomorphy column.
type Column struct {
	// Column index in the source matrix.
	Index int

	// States shown by the ingroup taxa,
	// in ascending symbol order.
	In []byte

	// States shown by the remaining taxa,
	// in ascending symbol order.
	Out []byte
}

// Find reports the columns of a matrix
// in which the ingroup taxa show a set of states
// disjoint from the states of the other taxa.
// Cells with gaps,
// missing data,
// or ambiguity codes are ignored.
//
// Every ingroup taxon must be in the matrix,
// must be given only once,
// and at least one taxon of the matrix
// must be left as outgroup.
func Find(m *align.Matrix, ingroup []string) ([]Column, error) {
	taxa := m.Taxa()
	isIn := make(map[string]bool, len(ingroup))
	for _, tax := range ingroup {
		tax = align.Canon(tax)
		if !m.HasTaxon(tax) {
			return nil, fmt.Errorf("taxon %q not in matrix", tax)
		}
		if isIn[tax] {
			return nil, fmt.Errorf("taxon %q repeated", tax)
		}
		isIn[tax] = true
	}
	if len(isIn) == 0 {
		return nil, fmt.Errorf("expecting one or more ingroup taxa")
	}
	if len(isIn) == len(taxa) {
		return nil, fmt.Errorf("ingroup with all the taxa of the matrix")
	}
	for r := 1; r < m.Rows(); r++ {
		if m.RowLen(r) != m.Columns() {
			return nil, fmt.Errorf("alignment rows of unequal length")
		}
	}

	var cols []Column
	for c := 0; c < m.Columns(); c++ {
		in := make(map[byte]bool)
		out := make(map[byte]bool)
		disjunct := true
		for r, tax := range taxa {
			s, single := m.State(r, c)
			if !single {
				continue
			}
			if isIn[tax] {
				if out[s] {
					disjunct = false
					break
				}
				in[s] = true
				continue
			}
			if in[s] {
				disjunct = false
				break
			}
			out[s] = true
		}
		if !disjunct || len(in) == 0 || len(out) == 0 {
			continue
		}
		cols = append(cols, Column{
			Index: c,
			In:    states(in),
			Out:   states(out),
		})
	}
	return cols, nil
}

func states(set map[byte]bool) []byte {
	st := make([]byte, 0, len(set))
	for s := range set {
		st = append(st, s)
	}
	slices.Sort(st)
	return st
}
