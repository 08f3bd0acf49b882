package group

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/bcnbhd/internal/fastq"
	nb "github.com/katalvlaran/bcnbhd/neighborhood"
)

// ErrUnpaired is returned when the two input files differ in record count.
var ErrUnpaired = fastq.ErrUnpaired

// Read is one sequencing read attached to a barcode.
type Read struct {
	Name []byte
	Seq  []byte
	Qual []byte
}

// Groups maps a barcode to the reads that carried it.
type Groups map[string]nb.Reads[Read]

// FromPairedFASTQ groups the reads of seqPath by the sequence of the
// matching record in barcodePath.
func FromPairedFASTQ(barcodePath, seqPath string) (Groups, error) {
	g := make(Groups)
	err := fastq.EachPair(barcodePath, seqPath, func(bc, rd fastq.Record) error {
		g.Add(string(bc.Seq), Read{Name: rd.ID, Seq: rd.Seq, Qual: rd.Qual})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Add appends r to barcode's group.
func (g Groups) Add(barcode string, r Read) {
	g[barcode] = append(g[barcode], r)
}

// Collapse gathers barcode neighborhoods, sorts each so the barcode with the
// most reads is the key, and orders the neighborhoods by read count. g is
// consumed.
func Collapse(g Groups, opts ...nb.Option) []*nb.Neighborhood[nb.Reads[Read]] {
	nbhds := nb.Gather(map[string]nb.Reads[Read](g), opts...)
	for _, n := range nbhds {
		nb.SortByCounts(n)
	}
	nb.SortNeighborhoods(nbhds)
	return nbhds
}

// Counts projects read lists to their lengths for the report writers.
func Counts(nbhds []*nb.Neighborhood[nb.Reads[Read]]) []*nb.Neighborhood[nb.Count] {
	out := make([]*nb.Neighborhood[nb.Count], len(nbhds))
	for i, n := range nbhds {
		out[i] = nb.ToCounts(n)
	}
	return out
}

// WriteFASTQ writes every read as FASTQ named "<key>_<n>", n counting from 1
// within each neighborhood in member order.
func WriteFASTQ(w io.Writer, nbhds []*nb.Neighborhood[nb.Reads[Read]]) error {
	bw := bufio.NewWriter(w)
	var name []byte
	for _, n := range nbhds {
		key := n.Key().Seq
		i := 0
		for _, reads := range n.All() {
			for _, r := range reads {
				i++
				name = strconv.AppendInt(append(append(name[:0], key...), '_'), int64(i), 10)
				if err := fastq.Write(bw, name, r.Seq, r.Qual); err != nil {
					return fmt.Errorf("group: %s: %w", key, err)
				}
			}
		}
	}
	return bw.Flush()
}
