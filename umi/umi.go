package umi

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/katalvlaran/bcnbhd/internal/fastq"
	nb "github.com/katalvlaran/bcnbhd/neighborhood"
)

// ErrMissingUMI is returned when a FASTQ header has no "umi=" token.
var ErrMissingUMI = errors.New("umi: header has no umi= tag")

const tag = "umi="

// Counts maps UMI sequences to read counts within one barcode.
type Counts map[string]int

// Weight returns the number of reads.
func (c Counts) Weight() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Merge adds other's counts into c and returns c. A nil receiver gets a
// fresh map.
func (c Counts) Merge(other Counts) Counts {
	if c == nil {
		c = make(Counts, len(other))
	}
	for u, n := range other {
		c[u] += n
	}
	return c
}

// Table maps barcodes to their UMI counts.
type Table map[string]Counts

// CountOne records one read of barcode carrying umi.
func (t Table) CountOne(barcode, umi string) {
	c, ok := t[barcode]
	if !ok {
		c = make(Counts)
		t[barcode] = c
	}
	c[umi]++
}

// FindUMI returns the whitespace-delimited token following "umi=" in desc.
func FindUMI(desc string) (string, bool) {
	_, rest, ok := strings.Cut(desc, tag)
	if !ok {
		return "", false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}

// FromFASTQ builds a table from reads whose sequence is the barcode and whose
// header carries the UMI.
func FromFASTQ(path string) (Table, error) {
	t := make(Table)
	n := 0
	err := fastq.Each(path, func(r fastq.Record) error {
		n++
		u, ok := FindUMI(string(r.Name))
		if !ok {
			u, ok = FindUMI(string(r.Desc))
		}
		if !ok {
			return fmt.Errorf("%w: %s record %d %q", ErrMissingUMI, path, n, r.Name)
		}
		t.CountOne(string(r.Seq), u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// CollapseBarcodes clusters barcodes into neighborhoods and returns a new
// table with one entry per neighborhood, keyed by the barcode with the most
// reads and holding the summed UMI counts. t is consumed.
func CollapseBarcodes(t Table, opts ...nb.Option) Table {
	out := make(Table)
	for _, n := range nb.Gather(map[string]Counts(t), opts...) {
		nb.SortByCounts(n)
		out[n.Key().Seq] = nb.Merged(n)
	}
	return out
}

// DedupUMIs clusters the UMIs of one barcode and returns one entry per
// neighborhood: the most frequent UMI with the summed count. c is consumed.
func DedupUMIs(c Counts, opts ...nb.Option) Counts {
	m := make(map[string]nb.Count, len(c))
	for u, n := range c {
		m[u] = nb.Count(n)
		delete(c, u)
	}
	out := make(Counts)
	for _, n := range nb.Gather(m, opts...) {
		nb.SortByCounts(n)
		out[n.Key().Seq] = int(nb.Merged(n))
	}
	return out
}

// Dedup applies DedupUMIs to every barcode of t, in place.
func Dedup(t Table, opts ...nb.Option) Table {
	for bc, c := range t {
		t[bc] = DedupUMIs(c, opts...)
	}
	return t
}

// Summary is the per-barcode row written by Write.
type Summary struct {
	Total  int
	UMIs   int
	Median int
	Counts []int // descending
}

// Summarize computes the row for c. Median is Counts[len/2] of the
// descending list, or 0 for an empty c.
func Summarize(c Counts) Summary {
	vals := slices.Collect(maps.Values(c))
	slices.Sort(vals)
	slices.Reverse(vals)
	s := Summary{UMIs: len(vals), Counts: vals}
	for _, v := range vals {
		s.Total += v
	}
	if len(vals) > 0 {
		s.Median = vals[len(vals)/2]
	}
	return s
}

// Header is the column line for Write output.
const Header = "barcode\ttotal\tn_umi\tmedian\tcounts"

// Write emits "barcode\ttotal\tn_umi\tmedian\tc1,c2,...,\n" per barcode in
// ascending barcode order.
func Write(w io.Writer, t Table) error {
	bw := bufio.NewWriter(w)
	for _, bc := range slices.Sorted(maps.Keys(t)) {
		s := Summarize(t[bc])
		fmt.Fprintf(bw, "%s\t%d\t%d\t%d\t", bc, s.Total, s.UMIs, s.Median)
		for _, n := range s.Counts {
			bw.WriteString(strconv.Itoa(n))
			bw.WriteByte(',')
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
