package fastq

import (
	"errors"
	"fmt"
	"io"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

const (
	chunkBuffer = 10
	chunkSize   = 1000
)

// ErrUnpaired is returned by EachPair when one file ends before the other.
var ErrUnpaired = errors.New("fastq: paired files have different record counts")

// Record is a detached copy of one FASTQ entry. The byte slices are owned by
// the Record.
type Record struct {
	Name []byte // full header line without the leading '@'
	ID   []byte // first token of the header
	Desc []byte // header text after the ID, if any
	Seq  []byte
	Qual []byte
}

func detach(r *fastx.Record) Record {
	return Record{
		Name: clone(r.Name),
		ID:   clone(r.ID),
		Desc: clone(r.Desc),
		Seq:  clone(r.Seq.Seq),
		Qual: clone(r.Seq.Qual),
	}
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

// Each calls fn for every record of path, in file order. The record passed
// to fn is a fresh copy. The first error from the reader or from fn stops
// the scan.
func Each(path string, fn func(Record) error) error {
	r, err := fastx.NewDefaultReader(path)
	if err != nil {
		return fmt.Errorf("fastq: open %s: %w", path, err)
	}
	defer r.Close()

	for chunk := range r.ChunkChan(chunkBuffer, chunkSize) {
		if chunk.Err != nil {
			return fmt.Errorf("fastq: read %s: %w", path, chunk.Err)
		}
		for _, rec := range chunk.Data {
			if err := fn(detach(rec)); err != nil {
				return err
			}
		}
	}
	return nil
}

// EachPair reads two files in lock step and calls fn with the i-th record of
// each. It returns ErrUnpaired when one file has more records.
func EachPair(pathA, pathB string, fn func(a, b Record) error) error {
	ra, err := fastx.NewDefaultReader(pathA)
	if err != nil {
		return fmt.Errorf("fastq: open %s: %w", pathA, err)
	}
	defer ra.Close()
	rb, err := fastx.NewDefaultReader(pathB)
	if err != nil {
		return fmt.Errorf("fastq: open %s: %w", pathB, err)
	}
	defer rb.Close()

	for n := 1; ; n++ {
		a, errA := next(ra, pathA)
		b, errB := next(rb, pathB)
		switch {
		case errA == io.EOF && errB == io.EOF:
			return nil
		case errA != nil && errA != io.EOF:
			return errA
		case errB != nil && errB != io.EOF:
			return errB
		case errA == io.EOF || errB == io.EOF:
			return fmt.Errorf("%w: %s and %s diverge at record %d", ErrUnpaired, pathA, pathB, n)
		}
		if err := fn(a, b); err != nil {
			return err
		}
	}
}

func next(r *fastx.Reader, path string) (Record, error) {
	rec, err := r.Read()
	if err == io.EOF {
		return Record{}, io.EOF
	}
	if err != nil {
		return Record{}, fmt.Errorf("fastq: read %s: %w", path, err)
	}
	return detach(rec), nil
}

// Write formats one FASTQ entry with header name.
func Write(w io.Writer, name, sequence, qual []byte) error {
	s, err := seq.NewSeqWithQual(seq.Unlimit, sequence, qual)
	if err != nil {
		return fmt.Errorf("fastq: record %s: %w", name, err)
	}
	rec := &fastx.Record{ID: name, Name: name, Seq: s}
	_, err = w.Write(rec.Format(0))
	return err
}
