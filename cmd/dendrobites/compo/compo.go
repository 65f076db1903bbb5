// Copyright © 2026 The DendroBites Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package compo implements a command to report
// the state composition of an aligned matrix.
package compo

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/js-arias/command"
	"github.com/mtholder/dendrobites/align"
	"gonum.org/v1/gonum/stat/distuv"
)

var Command = &command.Command{
	Usage: "compo [--protein] [<matrix-file>]",
	Short: "report the state composition of a matrix",
	Long: `
Command compo reads an aligned character matrix and prints the number of
cells with each single definite state, per taxon, as a tab-delimited table
in the standard output. Gaps, missing data, and ambiguity codes are not
counted.

After the table, the command reports a chi-square test of composition
homogeneity across taxa, with its degrees of freedom and p-value. The test
is only a rough guide: the comparisons are not independent, so the p-value
tends to be too conservative.

The argument of the command is the name of a FASTA file with the aligned
matrix. If no file is given, the matrix will be read from the standard
input. By default the data is read as nucleotides; use the flag --protein
for amino acid data.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var protein bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&protein, "protein", false, "")
}

func run(c *command.Command, args []string) error {
	fn := ""
	if len(args) > 0 {
		fn = args[0]
	}
	m, err := readMatrix(c.Stdin(), fn)
	if err != nil {
		return err
	}

	states := m.DataType().States()
	taxa := m.Taxa()
	counts := make([][]int, len(taxa))
	for i := range taxa {
		counts[i] = make([]int, len(states))
		for c := 0; c < m.RowLen(i); c++ {
			s, ok := m.State(i, c)
			if !ok {
				continue
			}
			for j, st := range states {
				if s == st {
					counts[i][j]++
					break
				}
			}
		}
	}

	if err := writeTable(c.Stdout(), taxa, states, counts); err != nil {
		return err
	}

	x2, df := chiSquare(counts)
	if df < 1 {
		return nil
	}
	p := distuv.ChiSquared{K: float64(df)}.Survival(x2)
	fmt.Fprintf(c.Stdout(), "\nchi-square: %.6f, df: %d, p-value: %.6f\n", x2, df, p)
	return nil
}

// ChiSquare returns the chi-square statistic
// for the homogeneity of the state counts across taxa,
// with its degrees of freedom.
// Taxa and states without observations
// do not contribute to the degrees of freedom.
func chiSquare(counts [][]int) (x2 float64, df int) {
	rows := make([]int, len(counts))
	var cols []int
	grand := 0
	for i, row := range counts {
		if cols == nil {
			cols = make([]int, len(row))
		}
		for j, v := range row {
			rows[i] += v
			cols[j] += v
			grand += v
		}
	}
	if grand == 0 {
		return 0, 0
	}

	nr := 0
	for _, v := range rows {
		if v > 0 {
			nr++
		}
	}
	nc := 0
	for _, v := range cols {
		if v > 0 {
			nc++
		}
	}
	df = (nr - 1) * (nc - 1)

	for i, row := range counts {
		if rows[i] == 0 {
			continue
		}
		for j, v := range row {
			if cols[j] == 0 {
				continue
			}
			exp := float64(rows[i]) * float64(cols[j]) / float64(grand)
			d := float64(v) - exp
			x2 += d * d / exp
		}
	}
	return x2, df
}

func writeTable(w io.Writer, taxa []string, states []byte, counts [][]int) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := []string{"taxon"}
	for _, s := range states {
		header = append(header, string(s))
	}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for i, tax := range taxa {
		row := []string{tax}
		for _, v := range counts[i] {
			row = append(row, strconv.Itoa(v))
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing counts: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing counts: %v", err)
	}
	return nil
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

	dt := align.DNA
	if protein {
		dt = align.Protein
	}
	m, err := align.ReadFASTA(r, dt)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return m, nil
}
