// Copyright © 2026 The DendroBites Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package distcmd implements a command to print
// the pairwise distances of an aligned matrix.
package distcmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"

	"github.com/js-arias/command"
	"github.com/mtholder/dendrobites/align"
	"github.com/mtholder/dendrobites/distance"
	"gonum.org/v1/gonum/stat"
)

var Command = &command.Command{
	Usage: "dist [--protein] [--summary] [<matrix-file>]",
	Short: "print pairwise distances",
	Long: `
Command dist reads an aligned character matrix and prints the uncorrected
pairwise distance (the p-distance) for every pair of taxa, as a
tab-delimited table in the standard output. A site counts for a pair only
when both taxa show a single definite state at that site; pairs without
comparable sites are reported as NaN.

The argument of the command is the name of a FASTA file with the aligned
matrix. If no file is given, the matrix will be read from the standard
input. By default the data is read as nucleotides; use the flag --protein
for amino acid data.

If the flag --summary is set, the mean, the median, and the 95% empirical
interval of the distances are reported in the standard error.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var protein bool
var summary bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&protein, "protein", false, "")
	c.Flags().BoolVar(&summary, "summary", false, "")
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
	if m.Rows() < 2 {
		return fmt.Errorf("matrix with less than two taxa")
	}

	pairs := distance.Pairs(m)
	if err := writeTable(c.Stdout(), pairs); err != nil {
		return err
	}

	if !summary {
		return nil
	}
	var dist []float64
	for _, p := range pairs {
		if math.IsNaN(p.Dist) {
			continue
		}
		dist = append(dist, p.Dist)
	}
	if len(dist) == 0 {
		fmt.Fprintf(c.Stderr(), "no comparable pairs\n")
		return nil
	}
	slices.Sort(dist)
	fmt.Fprintf(c.Stderr(), "pairs: %d\n", len(dist))
	fmt.Fprintf(c.Stderr(), "mean: %.6f\n", stat.Mean(dist, nil))
	fmt.Fprintf(c.Stderr(), "median: %.6f\n", stat.Quantile(0.5, stat.Empirical, dist, nil))
	fmt.Fprintf(c.Stderr(), "95%% interval: %.6f-%.6f\n",
		stat.Quantile(0.025, stat.Empirical, dist, nil),
		stat.Quantile(0.975, stat.Empirical, dist, nil))
	return nil
}

func writeTable(w io.Writer, pairs []distance.Pair) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := []string{"taxon", "to", "sites", "dist"}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, p := range pairs {
		row := []string{
			p.From,
			p.To,
			strconv.Itoa(p.Sites),
			strconv.FormatFloat(p.Dist, 'f', 6, 64),
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing distances: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing distances: %v", err)
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
