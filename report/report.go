package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	nb "github.com/katalvlaran/bcnbhd/neighborhood"
)

// Column headers, without the trailing newline.
const (
	TotalHeader        = "neighborhood\ttotal"
	MemberMapHeader    = "barcode\tneighborhood\tcount\ttotal\tfraction"
	NeighborhoodHeader = "neighborhood\tnum_barcodes\ttotal\tfract_nbhd"
)

// Fraction formats count/total with three decimals.
func Fraction(count, total int) string {
	return strconv.FormatFloat(float64(count)/float64(total), 'f', 3, 64)
}

// WriteTotal writes "key\ttotal\n".
func WriteTotal(w io.Writer, n *nb.Neighborhood[nb.Count]) error {
	_, err := fmt.Fprintf(w, "%s\t%d\n", n.Key().Seq, nb.Total(n))
	return err
}

// WriteMemberMap writes "member\tkey\tcount\ttotal\tfraction\n" for every
// member, key included.
func WriteMemberMap(w io.Writer, n *nb.Neighborhood[nb.Count]) error {
	key := n.Key().Seq
	total := nb.Total(n)

	var buf bytes.Buffer
	for seq, c := range n.All() {
		fmt.Fprintf(&buf, "%s\t%s\t%d\t%d\t%s\n", seq, key, c, total, Fraction(int(c), total))
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteNeighborhood writes one row:
// "key\tnum_members\ttotal\tkey_fraction" followed by "\tmember\tcount" for
// every member, key included.
func WriteNeighborhood(w io.Writer, n *nb.Neighborhood[nb.Count]) error {
	key := n.Key()
	total := nb.Total(n)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\t%d\t%d\t%s", key.Seq, n.Len(), total, Fraction(int(key.Value), total))
	for seq, c := range n.All() {
		fmt.Fprintf(&buf, "\t%s\t%d", seq, c)
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// Set fans each neighborhood out to the three tables. A nil writer skips
// its table.
type Set struct {
	Totals        io.Writer
	Members       io.Writer
	Neighborhoods io.Writer
}

// NewSet bundles the three destinations.
func NewSet(totals, members, nbhds io.Writer) *Set {
	return &Set{Totals: totals, Members: members, Neighborhoods: nbhds}
}

// WriteHeaders writes the header line of every configured table.
func (s *Set) WriteHeaders() error {
	for _, h := range []struct {
		w    io.Writer
		line string
	}{
		{s.Totals, TotalHeader},
		{s.Members, MemberMapHeader},
		{s.Neighborhoods, NeighborhoodHeader},
	} {
		if h.w == nil {
			continue
		}
		if _, err := io.WriteString(h.w, h.line+"\n"); err != nil {
			return fmt.Errorf("report: header: %w", err)
		}
	}
	return nil
}

// Write appends n to every configured table.
func (s *Set) Write(n *nb.Neighborhood[nb.Count]) error {
	if s.Totals != nil {
		if err := WriteTotal(s.Totals, n); err != nil {
			return fmt.Errorf("report: totals: %w", err)
		}
	}
	if s.Members != nil {
		if err := WriteMemberMap(s.Members, n); err != nil {
			return fmt.Errorf("report: member map: %w", err)
		}
	}
	if s.Neighborhoods != nil {
		if err := WriteNeighborhood(s.Neighborhoods, n); err != nil {
			return fmt.Errorf("report: neighborhoods: %w", err)
		}
	}
	return nil
}

// WriteAll writes every neighborhood in order and stops at the first error.
func (s *Set) WriteAll(nbhds []*nb.Neighborhood[nb.Count]) error {
	for _, n := range nbhds {
		if err := s.Write(n); err != nil {
			return err
		}
	}
	return nil
}
