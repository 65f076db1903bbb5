// Copyright © 2026 The DendroBites Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package cull implements a command to subsample
// the constant gapless columns of an alignment
// under the paired-invariants model.
package cull

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/mtholder/dendrobites/align"
	"github.com/mtholder/dendrobites/invariants"
)

var Command = &command.Command{
	Usage: `cull --p-inv <value> [--protein]
	[-o|--output <matrix-file>] [<matrix-file>]`,
	Short: "subsample constant columns under the paired-invariants model",
	Long: `
Command cull reads an aligned character matrix and removes constant gapless
columns, as if the matrix were generated under the paired-invariants model of
McTavish, Steel, and Holder <http://arxiv.org/abs/1504.07124>. The retained
matrix is a proxy for the free-to-vary part of the alignment.

The flag --p-inv is required, and gives the proportion of invariant sites of
the model, a value between 0 and 1, exclusive. From that proportion, and an
estimate of the equilibrium sequence length based on the average pairwise
alignment length, the command estimates the number of constant columns that
belongs to the invariant class and removes them. The columns are removed in
proportion to the state frequencies among the constant gapless columns, so
the state frequencies of the retained constant columns will be distorted as
little as possible.

The argument of the command is the name of a FASTA file with the aligned
matrix. If no file is given, the matrix will be read from the standard input.
By default the data is read as nucleotides; use the flag --protein for amino
acid data.

The retained matrix is printed as FASTA in the standard output. To set an
output file use the flag --output, or -o. The estimate of the equilibrium
length, the estimated number of invariant columns, and the number of columns
removed for each state are reported in the standard error.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var pInv float64
var protein bool
var output string

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&pInv, "p-inv", 0, "")
	c.Flags().BoolVar(&protein, "protein", false, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if pInv == 0 {
		return c.UsageError("flag --p-inv undefined")
	}

	fn := ""
	if len(args) > 0 {
		fn = args[0]
	}
	m, err := readMatrix(c.Stdin(), fn)
	if err != nil {
		return err
	}

	p, err := invariants.Cull(m, pInv)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stderr(), "estimated equilibrium length: %.6f\n", p.EquilibriumLength)
	fmt.Fprintf(c.Stderr(), "estimated invariant columns: %.6f\n", p.InvariantColumns)
	for _, s := range p.Symbols {
		fmt.Fprintf(c.Stderr(), "state %c: culling %d of %d columns\n", s.Symbol, s.Cull, s.Total)
	}
	fmt.Fprintf(c.Stderr(), "retaining %d of %d columns\n", len(p.RetainSet), m.Columns())

	nm := m.Select(p.RetainSet)
	if output == "" {
		return nm.FASTA(c.Stdout())
	}
	return writeMatrix(nm, output)
}

func dataType() align.DataType {
	if protein {
		return align.Protein
	}
	return align.DNA
}

func readMatrix(r io.Reader, name string) (*align.Matrix, error) {
	if name != "" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		name = "stdin"
	}

	m, err := align.ReadFASTA(r, dataType())
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return m, nil
}

func writeMatrix(m *align.Matrix, name string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := m.FASTA(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
