package counts

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
)

// Filter omits barcodes from a tabulation. Zero fields are disabled.
type Filter struct {
	// MinTotal omits barcodes whose summed count is below it.
	MinTotal int `yaml:"min_total" validate:"gte=0"`
	// MinSamples omits barcodes present (count > 0) in fewer samples.
	MinSamples int `yaml:"min_samples" validate:"gte=0"`
	// MinInSample omits barcodes whose largest single-sample count is below it.
	MinInSample int `yaml:"min_in_sample" validate:"gte=0"`
}

// Omit reports whether a barcode with per-sample counts vec is filtered out.
func (f Filter) Omit(vec []int) bool {
	total, present := 0, 0
	for _, n := range vec {
		total += n
		if n > 0 {
			present++
		}
	}
	if f.MinTotal > 0 && total < f.MinTotal {
		return true
	}
	if f.MinSamples > 0 && present < f.MinSamples {
		return true
	}
	if f.MinInSample > 0 && (len(vec) == 0 || slices.Max(vec) < f.MinInSample) {
		return true
	}
	return false
}

// Sample is a named count table.
type Sample struct {
	Name   string
	Counts *SampleCounts
}

// Tabulate writes a barcode-by-sample matrix to w: a header
// "barcode\t<name>..." then one row per barcode of the summed table, ordered
// by descending total then ascending sequence. Barcodes rejected by f are
// written one per line to omitted instead, or dropped when omitted is nil.
func Tabulate(w, omitted io.Writer, samples []Sample, f Filter) error {
	tables := make([]*SampleCounts, len(samples))
	for i, s := range samples {
		tables[i] = s.Counts
	}

	out := bufio.NewWriter(w)
	out.WriteString("barcode")
	for _, s := range samples {
		out.WriteByte('\t')
		out.WriteString(s.Name)
	}
	out.WriteByte('\n')

	var omit *bufio.Writer
	if omitted != nil {
		omit = bufio.NewWriter(omitted)
	}

	for _, seq := range Sum(tables...).byTotal() {
		vec := CountVec(tables, seq)
		if f.Omit(vec) {
			if omit != nil {
				omit.WriteString(seq)
				omit.WriteByte('\n')
			}
			continue
		}
		out.WriteString(seq)
		for _, n := range vec {
			out.WriteByte('\t')
			out.WriteString(strconv.Itoa(n))
		}
		out.WriteByte('\n')
	}

	if omit != nil {
		if err := omit.Flush(); err != nil {
			return fmt.Errorf("counts: omitted: %w", err)
		}
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("counts: tabulate: %w", err)
	}
	return nil
}
