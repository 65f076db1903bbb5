// Copyright © 2026 The DendroBites Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package taxa implements a command to print
// the taxa found in a matrix or a tree file.
package taxa

import (
	"fmt"
	"os"
	"slices"

	"github.com/js-arias/command"
	"github.com/js-arias/timetree"
	"github.com/mtholder/dendrobites/align"
)

var Command = &command.Command{
	Usage: `taxa [--char <matrix-file>] [--tree <tree-file>]
	[--newick <name>] [--protein]`,
	Short: "print a list of taxon names",
	Long: `
Command taxa reads an aligned character matrix, a tree file, or both, and
prints the names of the taxa found in them, one per line, in alphabetical
order.

An aligned matrix in FASTA format is given with the flag --char. By default
the data is read as nucleotides; use the flag --protein for amino acid data.

A tree file is given with the flag --tree. By default the file must be a
tab-delimited tree file; to read trees in parenthetical (newick) format, use
the flag --newick with a name to be used for the trees found in the file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeFile string
var charFile string
var newickName string
var protein bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeFile, "tree", "", "")
	c.Flags().StringVar(&charFile, "char", "", "")
	c.Flags().StringVar(&newickName, "newick", "", "")
	c.Flags().BoolVar(&protein, "protein", false, "")
}

func run(c *command.Command, args []string) error {
	if treeFile == "" && charFile == "" {
		return c.UsageError("expecting a matrix or tree file")
	}

	names := make(map[string]bool)
	if charFile != "" {
		dt := align.DNA
		if protein {
			dt = align.Protein
		}
		m, err := readMatrix(charFile, dt)
		if err != nil {
			return err
		}
		for _, tax := range m.Taxa() {
			names[tax] = true
		}
	}
	if treeFile != "" {
		tc, err := readTrees(treeFile)
		if err != nil {
			return err
		}
		for _, tn := range tc.Names() {
			t := tc.Tree(tn)
			if t == nil {
				continue
			}
			for _, term := range t.Terms() {
				names[align.Canon(term)] = true
			}
		}
	}

	ls := make([]string, 0, len(names))
	for nm := range names {
		ls = append(ls, nm)
	}
	slices.Sort(ls)
	for _, nm := range ls {
		fmt.Fprintf(c.Stdout(), "%s\n", nm)
	}
	return nil
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

func readTrees(name string) (*timetree.Collection, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tc *timetree.Collection
	if newickName != "" {
		tc, err = timetree.Newick(f, newickName, 0)
	} else {
		tc, err = timetree.ReadTSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return tc, nil
}
