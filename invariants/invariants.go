// Copyright © 2026 The DendroBites Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package invariants implements the removal
// of constant gapless columns from an alignment
// under the paired-invariants model
// of McTavish, Steel, and Holder
// <http://arxiv.org/abs/1504.07124>.
//
// The model posits a proportion of sites that never vary
// and a remainder that evolve freely.
// The average pairwise sequence length is used
// as an estimator of the equilibrium length
// of the free-to-vary part of the sequences.
// From that estimate,
// and a proportion of invariant sites given by the caller,
// the package culls constant gapless columns
// in proportion to the frequency of their states,
// so that the state frequencies of the retained columns
// are distorted as little as possible.
package invariants

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// An Alignment is a read-only aligned character matrix.
type Alignment interface {
	// Rows returns the number of rows (taxa).
	Rows() int

	// RowLen returns the sequence length of a given row.
	RowLen(row int) int

	// IsGap returns true if the cell at the given position
	// is a gap.
	IsGap(row, col int) bool

	// State returns the state symbol at the given position.
	// It returns false if the cell does not show
	// a definite single state
	// (a gap, missing data, or an ambiguity code).
	State(row, col int) (byte, bool)
}

// Errors reported by Cull.
var (
	// Rows of unequal length.
	ErrRagged = errors.New("alignment rows of unequal length")

	// Less than two taxa,
	// so pairwise statistics are undefined.
	ErrInsufficientTaxa = errors.New("alignment with less than two taxa")

	// Proportion of invariant sites outside the open interval (0,1).
	ErrProportion = errors.New("proportion of invariant sites out of range")

	// No constant gapless columns to cull.
	ErrNoConstant = errors.New("alignment without constant gapless columns")
)

// A SymbolPlan is the part of a cull plan
// for the columns that are constant
// for a single state symbol.
type SymbolPlan struct {
	Symbol byte

	// Number of columns to cull for the symbol.
	Cull int

	// Number of constant gapless columns for the symbol.
	Total int
}

// A Plan is the result of the paired-invariants procedure
// on an alignment.
type Plan struct {
	// Estimate of the equilibrium sequence length,
	// the average pairwise alignment length.
	EquilibriumLength float64

	// Estimated number of invariant columns,
	// the product of the invariant site proportion
	// and the equilibrium length.
	InvariantColumns float64

	// Per symbol cull counts,
	// in ascending symbol order.
	Symbols []SymbolPlan

	// Column indices to cull,
	// in ascending order.
	CullSet []int

	// Column indices to retain,
	// in ascending order.
	RetainSet []int
}

// Cull takes an alignment
// assumed to be a product of evolution
// under the paired-invariants model
// with a proportion of invariant sites equal to pInv,
// and returns a plan with the constant gapless columns
// to remove so that the retained columns
// are a proxy for the free-to-vary part of the alignment.
//
// The alignment is never modified,
// applying the plan is up to the caller.
func Cull(a Alignment, pInv float64) (*Plan, error) {
	if !(pInv > 0 && pInv < 1) {
		return nil, fmt.Errorf("%w: %.6f", ErrProportion, pInv)
	}
	rows := a.Rows()
	if rows < 2 {
		return nil, fmt.Errorf("%w: %d taxa", ErrInsufficientTaxa, rows)
	}

	bySymbol, bothGapped, cols, err := classify(a)
	if err != nil {
		return nil, err
	}

	// A column counts for every pair of rows,
	// except the pairs in which both rows are gapped
	// at that column.
	pairs := rows * (rows - 1) / 2
	sumPairLens := float64(cols*pairs - bothGapped)
	equilibrium := sumPairLens / float64(pairs)
	invCols := pInv * equilibrium

	symbols, err := allocate(invCols, bySymbol)
	if err != nil {
		return nil, err
	}

	cull := pick(symbols, bySymbol)
	retain := make([]int, 0, cols-len(cull))
	inCull := make(map[int]bool, len(cull))
	for _, c := range cull {
		inCull[c] = true
	}
	for i := 0; i < cols; i++ {
		if !inCull[i] {
			retain = append(retain, i)
		}
	}

	return &Plan{
		EquilibriumLength: equilibrium,
		InvariantColumns:  invCols,
		Symbols:           symbols,
		CullSet:           cull,
		RetainSet:         retain,
	}, nil
}

// Classify partitions the columns of an alignment
// into constant gapless columns,
// keyed by their state symbol,
// and all other columns.
// For the other columns it accumulates the number of row pairs
// in which both rows are gapped.
func classify(a Alignment) (bySymbol map[byte][]int, bothGapped, cols int, err error) {
	rows := a.Rows()
	cols = a.RowLen(0)
	for r := 1; r < rows; r++ {
		if a.RowLen(r) != cols {
			return nil, 0, 0, fmt.Errorf("%w: row %d has %d columns, want %d", ErrRagged, r, a.RowLen(r), cols)
		}
	}

	bySymbol = make(map[byte][]int)
	for c := 0; c < cols; c++ {
		gaps := 0
		constant := true
		var sym byte
		for r := 0; r < rows; r++ {
			if a.IsGap(r, c) {
				gaps++
				constant = false
				continue
			}
			s, single := a.State(r, c)
			if !single {
				constant = false
				continue
			}
			if sym == 0 {
				sym = s
				continue
			}
			if s != sym {
				constant = false
			}
		}
		if constant && gaps == 0 && sym != 0 {
			bySymbol[sym] = append(bySymbol[sym], c)
			continue
		}
		bothGapped += gaps * (gaps - 1) / 2
	}
	return bySymbol, bothGapped, cols, nil
}

// Allocate distributes the number of columns to cull
// among the state symbols,
// in proportion to the number of constant gapless columns
// of each symbol.
// Any shortfall from rounding is given out
// one column at a time
// in ascending symbol order,
// up to the capacity of each symbol.
func allocate(invCols float64, bySymbol map[byte][]int) ([]SymbolPlan, error) {
	total := 0
	for _, ind := range bySymbol {
		total += len(ind)
	}
	if total == 0 {
		return nil, ErrNoConstant
	}

	syms := make([]byte, 0, len(bySymbol))
	for s := range bySymbol {
		syms = append(syms, s)
	}
	slices.Sort(syms)

	frac := invCols / float64(total)
	plan := make([]SymbolPlan, 0, len(syms))
	culled := 0
	for _, s := range syms {
		n := len(bySymbol[s])
		cull := int(math.Round(frac * float64(n)))
		if cull > n {
			cull = n
		}
		culled += cull
		plan = append(plan, SymbolPlan{
			Symbol: s,
			Cull:   cull,
			Total:  n,
		})
	}

	// rounding shortfall
	left := int(math.Round(invCols)) - culled
	for i := range plan {
		if left <= 0 {
			break
		}
		add := plan[i].Total - plan[i].Cull
		if add > left {
			add = left
		}
		plan[i].Cull += add
		left -= add
	}
	return plan, nil
}

// Pick selects the column indices to cull:
// for each symbol,
// the lowest indices of its constant gapless columns.
func pick(plan []SymbolPlan, bySymbol map[byte][]int) []int {
	var cull []int
	for _, p := range plan {
		ind := slices.Clone(bySymbol[p.Symbol])
		slices.Sort(ind)
		cull = append(cull, ind[:p.Cull]...)
	}
	slices.Sort(cull)
	return cull
}
