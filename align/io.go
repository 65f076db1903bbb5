// Copyright © 2026 The DendroBites Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package align

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

func (dt DataType) alphabet() alphabet.Alphabet {
	if dt == Protein {
		return alphabet.Protein
	}
	return alphabet.DNA
}

// ReadFASTA reads an aligned character matrix
// from a FASTA file.
//
// Here is an example file:
//
//	>Homo sapiens
//	ACCTC-AGT
//	>Pan troglodytes
//	ACCTCTAGT
func ReadFASTA(r io.Reader, dt DataType) (*Matrix, error) {
	tmpl := linear.NewSeq("", nil, dt.alphabet())
	sc := seqio.NewScanner(fasta.NewReader(r, tmpl))

	m := New(dt)
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		name := s.Name()
		if d := s.Description(); d != "" {
			name += " " + d
		}
		if err := m.Add(name, []byte(s.Seq.String())); err != nil {
			return nil, err
		}
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("while reading fasta data: %v", err)
	}
	if m.Rows() == 0 {
		return nil, fmt.Errorf("fasta data without sequences")
	}
	return m, nil
}

// FASTA writes a matrix as a FASTA file.
func (m *Matrix) FASTA(w io.Writer) error {
	fw := fasta.NewWriter(w, 60)
	for _, tax := range m.taxa {
		s := linear.NewSeq(tax, alphabet.BytesToLetters(m.rows[tax]), m.dt.alphabet())
		if _, err := fw.Write(s); err != nil {
			return fmt.Errorf("when writing taxon %q: %v", tax, err)
		}
	}
	return nil
}
