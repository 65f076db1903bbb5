// Copyright © 2026 The DendroBites Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package align provides an aligned character matrix
// for a set of taxa.
package align

import (
	"fmt"
	"strings"
)

// A DataType indicates the kind of characters
// stored in a matrix.
type DataType int

// Valid data types.
const (
	// Nucleotide data.
	DNA DataType = iota

	// Amino acid data.
	Protein
)

// String output for the data type name.
func (dt DataType) String() string {
	switch dt {
	case DNA:
		return "dna"
	case Protein:
		return "protein"
	}
	return "unknown"
}

// States returns the single state symbols
// defined for the data type.
func (dt DataType) States() []byte {
	switch dt {
	case DNA:
		return []byte("ACGT")
	case Protein:
		return []byte("ACDEFGHIKLMNPQRSTVWY")
	}
	return nil
}

// IsState returns true if a symbol
// is a single state symbol of the data type.
func (dt DataType) IsState(c byte) bool {
	c = upper(c)
	for _, s := range dt.States() {
		if c == s {
			return true
		}
	}
	return false
}

// Gap is the character used for alignment gaps.
const Gap = '-'

// IsMissing returns true if a symbol
// indicates fully missing data for the data type.
func (dt DataType) IsMissing(c byte) bool {
	if c == '?' {
		return true
	}
	c = upper(c)
	if dt == DNA && c == 'N' {
		return true
	}
	if dt == Protein && c == 'X' {
		return true
	}
	return false
}

// A Matrix is an aligned character matrix,
// a sequence of character states
// for each taxon in a taxon set.
// Taxa are kept in insertion order.
//
// A Matrix is expected to have rows of equal length,
// but this is not enforced on input,
// consumers that require an alignment
// must validate the row lengths.
type Matrix struct {
	dt   DataType
	taxa []string
	rows map[string][]byte
}

// New creates a new empty matrix
// for a given data type.
func New(dt DataType) *Matrix {
	return &Matrix{
		dt:   dt,
		rows: make(map[string][]byte),
	}
}

// Add adds a new taxon with its sequence
// to a matrix.
// It is an error to add the same taxon twice.
func (m *Matrix) Add(taxon string, seq []byte) error {
	taxon = canon(taxon)
	if taxon == "" {
		return fmt.Errorf("empty taxon name")
	}
	if _, dup := m.rows[taxon]; dup {
		return fmt.Errorf("taxon %q repeated", taxon)
	}

	s := make([]byte, len(seq))
	for i, c := range seq {
		s[i] = upper(c)
	}
	m.taxa = append(m.taxa, taxon)
	m.rows[taxon] = s
	return nil
}

// DataType returns the data type of the matrix.
func (m *Matrix) DataType() DataType {
	return m.dt
}

// Taxa returns the taxon names of a matrix
// in insertion order.
func (m *Matrix) Taxa() []string {
	taxa := make([]string, len(m.taxa))
	copy(taxa, m.taxa)
	return taxa
}

// HasTaxon returns true if the given taxon
// is in the matrix.
func (m *Matrix) HasTaxon(taxon string) bool {
	_, ok := m.rows[canon(taxon)]
	return ok
}

// Sequence returns the sequence of a given taxon.
func (m *Matrix) Sequence(taxon string) []byte {
	row, ok := m.rows[canon(taxon)]
	if !ok {
		return nil
	}
	s := make([]byte, len(row))
	copy(s, row)
	return s
}

// Rows returns the number of taxa in the matrix.
func (m *Matrix) Rows() int {
	return len(m.taxa)
}

// Columns returns the number of columns of the matrix,
// the length of its first row.
func (m *Matrix) Columns() int {
	if len(m.taxa) == 0 {
		return 0
	}
	return len(m.rows[m.taxa[0]])
}

// RowLen returns the sequence length of a given row.
func (m *Matrix) RowLen(row int) int {
	return len(m.rows[m.taxa[row]])
}

// IsGap returns true if the cell at the given position
// is a gap.
func (m *Matrix) IsGap(row, col int) bool {
	return m.rows[m.taxa[row]][col] == Gap
}

// State returns the state symbol at the given position.
// It returns false if the cell is a gap,
// is missing,
// or is an ambiguity code.
func (m *Matrix) State(row, col int) (byte, bool) {
	c := m.rows[m.taxa[row]][col]
	if !m.dt.IsState(c) {
		return 0, false
	}
	return c, true
}

// Select returns a new matrix
// that keeps only the indicated columns,
// in ascending index order,
// with all taxa unchanged.
// The receiver is not modified.
func (m *Matrix) Select(cols []int) *Matrix {
	keep := make(map[int]bool, len(cols))
	for _, c := range cols {
		keep[c] = true
	}

	nm := New(m.dt)
	for _, tax := range m.taxa {
		row := m.rows[tax]
		s := make([]byte, 0, len(keep))
		for i, c := range row {
			if keep[i] {
				s = append(s, c)
			}
		}
		nm.taxa = append(nm.taxa, tax)
		nm.rows[tax] = s
	}
	return nm
}

// Keep returns a new matrix
// that keeps only the indicated taxa,
// preserving the insertion order of the receiver.
// It is an error to request a taxon
// that is not in the matrix.
func (m *Matrix) Keep(taxa []string) (*Matrix, error) {
	keep := make(map[string]bool, len(taxa))
	for _, tax := range taxa {
		tax = canon(tax)
		if _, ok := m.rows[tax]; !ok {
			return nil, fmt.Errorf("taxon %q not in matrix", tax)
		}
		keep[tax] = true
	}

	nm := New(m.dt)
	for _, tax := range m.taxa {
		if !keep[tax] {
			continue
		}
		row := m.rows[tax]
		s := make([]byte, len(row))
		copy(s, row)
		nm.taxa = append(nm.taxa, tax)
		nm.rows[tax] = s
	}
	return nm, nil
}

// Canon returns a taxon name
// with its spacing in canonical form.
func Canon(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

func canon(name string) string {
	return Canon(name)
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return c
}
