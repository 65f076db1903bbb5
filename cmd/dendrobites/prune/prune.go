// Copyright © 2026 The DendroBites Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prune implements a command to prune
// trees and an aligned matrix
// down to a common set of taxa.
package prune

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/js-arias/command"
	"github.com/js-arias/timetree"
	"github.com/mtholder/dendrobites/align"
)

var Command = &command.Command{
	Usage: `prune --tree <tree-file> [--newick <name>]
	[--char <matrix-file>] [--protein] <taxon>...`,
	Short: "prune trees and matrix to a set of taxa",
	Long: `
Command prune reads a tree file, and optionally an aligned character matrix,
and prunes them down to just the indicated taxa. The pruned copies are
written next to the input files, with the "pruned-" prefix added to the file
name. The command will never overwrite an existing file.

The flag --tree is required and gives the name of the tree file. By default
the file must be a tab-delimited tree file; to read trees in parenthetical
(newick) format, use the flag --newick with a name to be used for the trees
found in the file. Pruned trees are always written as tab-delimited files.

An aligned matrix in FASTA format can be given with the flag --char. By
default the data is read as nucleotides; use the flag --protein for amino
acid data.

The arguments of the command are the names of the taxa to be retained. Each
taxon must be present in at least one tree or in the matrix.
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
	if len(args) < 1 {
		return c.UsageError("expecting one or more taxon names")
	}

	keep := make(map[string]bool, len(args))
	for _, tax := range args {
		keep[align.Canon(tax)] = true
	}

	tc, err := readTrees(treeFile)
	if err != nil {
		return err
	}

	var m *align.Matrix
	if charFile != "" {
		dt := align.DNA
		if protein {
			dt = align.Protein
		}
		m, err = readMatrix(charFile, dt)
		if err != nil {
			return err
		}
	}

	// every requested taxon must be somewhere
	for tax := range keep {
		if m != nil && m.HasTaxon(tax) {
			continue
		}
		found := false
		for _, tn := range tc.Names() {
			t := tc.Tree(tn)
			if t == nil {
				continue
			}
			if _, ok := t.TaxNode(tax); ok {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("taxon %q not found in the input data", tax)
		}
	}

	outPaths := []string{prunedPath(treeFile)}
	if m != nil {
		outPaths = append(outPaths, prunedPath(charFile))
	}
	for _, p := range outPaths {
		if _, err := os.Stat(p); err == nil {
			return fmt.Errorf("file %q already exists, move it before pruning", p)
		}
	}

	for _, tn := range tc.Names() {
		t := tc.Tree(tn)
		if t == nil {
			continue
		}
		for _, term := range t.Terms() {
			if keep[term] {
				continue
			}
			id, ok := t.TaxNode(term)
			if !ok {
				continue
			}
			if err := t.Delete(id); err != nil {
				return fmt.Errorf("unable to remove terminal %q of tree %s: %v", term, tn, err)
			}
		}
	}
	if err := writeTrees(tc, prunedPath(treeFile)); err != nil {
		return err
	}

	if m == nil {
		return nil
	}
	var mTaxa []string
	for _, tax := range m.Taxa() {
		if keep[tax] {
			mTaxa = append(mTaxa, tax)
		}
	}
	nm, err := m.Keep(mTaxa)
	if err != nil {
		return err
	}
	return writeMatrix(nm, prunedPath(charFile))
}

func prunedPath(name string) string {
	dir, fn := filepath.Split(name)
	return filepath.Join(dir, "pruned-"+fn)
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

func writeTrees(tc *timetree.Collection, name string) (err error) {
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

	if err := tc.TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
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
