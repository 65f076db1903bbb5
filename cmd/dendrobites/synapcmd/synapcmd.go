// Copyright © 2026 The DendroBites Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package synapcmd implements a command to report
// alignment columns that are candidate synapomorphies
// for a group of taxa.
package synapcmd

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/mtholder/dendrobites/align"
	"github.com/mtholder/dendrobites/synapo"
)

var Command = &command.Command{
	Usage: "synap -i|--input <matrix-file> [--protein] <taxon>...",
	Short: "find candidate synapomorphy columns",
	Long: `
Command synap reads an aligned character matrix and prints the columns in
which the states shown by the indicated taxa do not overlap with the states
shown by the rest of the taxa (the "outgroup"). Such columns are potentially
clean synapomorphies for the indicated group.

The flag --input, or -i, is required and gives the name of a FASTA file with
the aligned matrix. By default the data is read as nucleotides; use the flag
--protein for amino acid data.

The arguments of the command are the names of the taxa of the group whose
candidate synapomorphies will be searched. At least one taxon of the matrix
must be left out of the group.

Cells with gaps, missing data, or ambiguity codes are ignored.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var input string
var protein bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&input, "input", "", "")
	c.Flags().StringVar(&input, "i", "", "")
	c.Flags().BoolVar(&protein, "protein", false, "")
}

func run(c *command.Command, args []string) error {
	if input == "" {
		return c.UsageError("expecting input matrix file, flag --input")
	}
	if len(args) < 1 {
		return c.UsageError("expecting one or more taxon names")
	}

	dt := align.DNA
	if protein {
		dt = align.Protein
	}
	m, err := readMatrix(input, dt)
	if err != nil {
		return err
	}

	cols, err := synapo.Find(m, args)
	if err != nil {
		return err
	}

	for _, col := range cols {
		fmt.Fprintf(c.Stdout(), "column %d: in states = {%s}, out states = {%s}\n", col.Index, stateList(col.In), stateList(col.Out))
	}
	return nil
}

func stateList(states []byte) string {
	s := ""
	for i, st := range states {
		if i > 0 {
			s += ", "
		}
		s += string(st)
	}
	return s
}

func readMatrix(name string, dt align.DataType) (*align.Matrix, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := align.ReadFASTA(f, dt)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return m, nil
}
