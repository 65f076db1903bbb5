// Copyright © 2026 The DendroBites Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tipcheck implements a command to check
// that the taxa in an aligned matrix
// match the tree terminals.
package tipcheck

import (
	"fmt"
	"os"
	"slices"

	"github.com/js-arias/command"
	"github.com/js-arias/timetree"
	"github.com/mtholder/dendrobites/align"
)

var Command = &command.Command{
	Usage: `tipcheck --tree <tree-file> [--newick <name>]
	--char <matrix-file> [--protein]`,
	Short: "check tip labels between trees and matrix",
	Long: `
Command tipcheck reads a tree file and an aligned character matrix, and
checks that the taxa of the matrix are the same as the terminals of the
trees. If the two sets match, it will print "tips match"; otherwise it will
print the names found in only one of the inputs and finish with an error.

The flag --tree is required and gives the name of the tree file. By default
the file must be a tab-delimited tree file; to read trees in parenthetical
(newick) format, use the flag --newick with a name to be used for the trees
found in the file.

The flag --char is required and gives the name of a FASTA file with the
aligned matrix. By default the data is read as nucleotides; use the flag
--protein for amino acid data.
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
	if treeFile == "" {
		return c.UsageError("expecting tree file, flag --tree")
	}
	if charFile == "" {
		return c.UsageError("expecting matrix file, flag --char")
	}

	tc, err := readTrees(treeFile)
	if err != nil {
		return err
	}
	terms := make(map[string]bool)
	for _, tn := range tc.Names() {
		t := tc.Tree(tn)
		if t == nil {
			continue
		}
		for _, term := range t.Terms() {
			terms[align.Canon(term)] = true
		}
	}

	dt := align.DNA
	if protein {
		dt = align.Protein
	}
	m, err := readMatrix(charFile, dt)
	if err != nil {
		return err
	}
	taxa := make(map[string]bool, m.Rows())
	for _, tax := range m.Taxa() {
		taxa[tax] = true
	}

	var treeOnly, matOnly []string
	for term := range terms {
		if !taxa[term] {
			treeOnly = append(treeOnly, term)
		}
	}
	for tax := range taxa {
		if !terms[tax] {
			matOnly = append(matOnly, tax)
		}
	}
	if len(treeOnly) == 0 && len(matOnly) == 0 {
		fmt.Fprintf(c.Stdout(), "tips match\n")
		return nil
	}

	slices.Sort(treeOnly)
	for _, nm := range treeOnly {
		fmt.Fprintf(c.Stdout(), "not in matrix: %s\n", nm)
	}
	slices.Sort(matOnly)
	for _, nm := range matOnly {
		fmt.Fprintf(c.Stdout(), "not in trees: %s\n", nm)
	}
	return fmt.Errorf("%d tip labels unmatched", len(treeOnly)+len(matOnly))
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
