package counts

import (
	"bufio"
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/shenwei356/xopen"

	"github.com/katalvlaran/bcnbhd/internal/fastq"
	nb "github.com/katalvlaran/bcnbhd/neighborhood"
)

// Sentinel errors for count table parsing.
var (
	ErrMissingCount   = errors.New("counts: missing count")
	ErrMalformedCount = errors.New("counts: malformed count")
	ErrExtraField     = errors.New("counts: extra fields after count")
	ErrDuplicate      = errors.New("counts: duplicate entry")
)

const maxLine = 1 << 20

// SampleCounts maps barcode sequences to read counts for one sample.
// The zero value is not usable; use New or one of the constructors.
type SampleCounts struct {
	m map[string]int
}

// New returns an empty table.
func New() *SampleCounts {
	return &SampleCounts{m: make(map[string]int)}
}

// Read parses a count table. Blank lines at the end of input are accepted;
// a blank line followed by data is ErrMissingCount.
func Read(r io.Reader) (*SampleCounts, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	c := New()
	blank := 0 // line number of a pending blank line
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			if blank == 0 {
				blank = lineNo
			}
			continue
		}
		if blank != 0 {
			return nil, fmt.Errorf("%w: line %d barcode %q", ErrMissingCount, blank, "")
		}

		barcode, rest, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("%w: line %d barcode %q", ErrMissingCount, lineNo, barcode)
		}
		field, extra, hasExtra := strings.Cut(rest, "\t")
		n, err := strconv.ParseUint(field, 10, 63)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d barcode %q: %q", ErrMalformedCount, lineNo, barcode, field)
		}
		if hasExtra {
			return nil, fmt.Errorf("%w: line %d barcode %q: %q", ErrExtraField, lineNo, barcode, extra)
		}
		if _, dup := c.m[barcode]; dup {
			return nil, fmt.Errorf("%w: line %d barcode %q", ErrDuplicate, lineNo, barcode)
		}
		c.m[barcode] = int(n)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("counts: read: %w", err)
	}
	return c, nil
}

// ReadFile reads a count table from path ("-" is stdin, .gz is decompressed).
func ReadFile(path string) (*SampleCounts, error) {
	r, err := xopen.Ropen(path)
	if err != nil {
		return nil, fmt.Errorf("counts: open %s: %w", path, err)
	}
	defer r.Close()

	c, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return c, nil
}

// Write emits the table sorted by sequence.
func (c *SampleCounts) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, seq := range slices.Sorted(maps.Keys(c.m)) {
		bw.WriteString(seq)
		bw.WriteByte('\t')
		bw.WriteString(strconv.Itoa(c.m[seq]))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteFile writes the table to path ("-" is stdout, .gz is compressed).
func (c *SampleCounts) WriteFile(path string) error {
	w, err := xopen.Wopen(path)
	if err != nil {
		return fmt.Errorf("counts: create %s: %w", path, err)
	}
	if err := c.Write(w); err != nil {
		w.Close()
		return fmt.Errorf("counts: write %s: %w", path, err)
	}
	return w.Close()
}

// WriteFreqTable writes "times_seen\tnum_barcodes" rows in ascending
// times_seen order.
func (c *SampleCounts) WriteFreqTable(w io.Writer) error {
	freq := make(map[int]int)
	for _, n := range c.m {
		freq[n]++
	}
	bw := bufio.NewWriter(w)
	for _, n := range slices.Sorted(maps.Keys(freq)) {
		fmt.Fprintf(bw, "%d\t%d\n", n, freq[n])
	}
	return bw.Flush()
}

// Count returns the count of seq, or 0.
func (c *SampleCounts) Count(seq string) int { return c.m[seq] }

// Len returns the number of distinct sequences.
func (c *SampleCounts) Len() int { return len(c.m) }

// Total returns the sum of all counts.
func (c *SampleCounts) Total() int {
	total := 0
	for _, n := range c.m {
		total += n
	}
	return total
}

// Add counts one observation of seq.
func (c *SampleCounts) Add(seq string) { c.m[seq]++ }

// AddN adds n observations of seq.
func (c *SampleCounts) AddN(seq string, n int) { c.m[seq] += n }

// All yields sequences and counts in ascending sequence order.
func (c *SampleCounts) All() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for _, seq := range slices.Sorted(maps.Keys(c.m)) {
			if !yield(seq, c.m[seq]) {
				return
			}
		}
	}
}

// CountMap returns a fresh map for neighborhood.Gather, which consumes it.
// The table itself is not modified.
func (c *SampleCounts) CountMap() map[string]nb.Count {
	out := make(map[string]nb.Count, len(c.m))
	for seq, n := range c.m {
		out[seq] = nb.Count(n)
	}
	return out
}

// FromSequences counts every sequence yielded by seqs.
func FromSequences(seqs iter.Seq[[]byte]) *SampleCounts {
	c := New()
	for s := range seqs {
		c.m[string(s)]++
	}
	return c
}

// FromLines counts one barcode per input line. Blank lines are skipped.
func FromLines(r io.Reader) (*SampleCounts, error) {
	c := New()
	if err := eachLine(r, func(line []byte) { c.m[string(line)]++ }); err != nil {
		return nil, err
	}
	return c, nil
}

func eachLine(r io.Reader, fn func(line []byte)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		line := bytes.TrimSuffix(sc.Bytes(), []byte{'\r'})
		if len(line) == 0 {
			continue
		}
		fn(line)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("counts: read: %w", err)
	}
	return nil
}

// EachLine calls fn with every non-blank line of path ("-" is stdin, .gz is
// decompressed). line is only valid during the call.
func EachLine(path string, fn func(line []byte)) error {
	r, err := xopen.Ropen(path)
	if err != nil {
		return fmt.Errorf("counts: open %s: %w", path, err)
	}
	defer r.Close()

	if err := eachLine(r, fn); err != nil {
		return fmt.Errorf("reading file %s: %w", path, err)
	}
	return nil
}

// FromLinesFile counts one barcode per line of path ("-" is stdin, .gz is
// decompressed).
func FromLinesFile(path string) (*SampleCounts, error) {
	c := New()
	if err := EachLine(path, func(line []byte) { c.m[string(line)]++ }); err != nil {
		return nil, err
	}
	return c, nil
}

// FromFASTQ counts the sequence of every record in a FASTQ file.
func FromFASTQ(path string) (*SampleCounts, error) {
	c := New()
	err := fastq.Each(path, func(r fastq.Record) error {
		c.m[string(r.Seq)]++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Sum adds the tables together.
func Sum(samples ...*SampleCounts) *SampleCounts {
	total := New()
	for _, s := range samples {
		for seq, n := range s.m {
			total.m[seq] += n
		}
	}
	return total
}

// CountVec returns the count of seq in each sample, 0 where absent.
func CountVec(samples []*SampleCounts, seq string) []int {
	out := make([]int, len(samples))
	for i, s := range samples {
		out[i] = s.Count(seq)
	}
	return out
}

// byTotal orders sequences by descending count, then ascending sequence.
func (c *SampleCounts) byTotal() []string {
	seqs := slices.Collect(maps.Keys(c.m))
	slices.SortFunc(seqs, func(a, b string) int {
		if d := cmp.Compare(c.m[b], c.m[a]); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	return seqs
}
