package umi_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nb "github.com/katalvlaran/bcnbhd/neighborhood"
	"github.com/katalvlaran/bcnbhd/umi"
)

func TestFindUMI(t *testing.T) {
	cases := []struct {
		desc string
		want string
		ok   bool
	}{
		{"read1 umi=ACGTAC", "ACGTAC", true},
		{"read1 umi=ACGTAC sample=3", "ACGTAC", true},
		{"umi=TTTT\tx", "TTTT", true},
		{"read1 sample=3", "", false},
		{"read1 umi=", "", false},
	}
	for _, tc := range cases {
		got, ok := umi.FindUMI(tc.desc)
		assert.Equal(t, tc.ok, ok, tc.desc)
		assert.Equal(t, tc.want, got, tc.desc)
	}
}

func TestCounts_WeightAndMerge(t *testing.T) {
	a := umi.Counts{"AAAA": 3, "CCCC": 1}
	b := umi.Counts{"CCCC": 2, "GGGG": 5}
	assert.Equal(t, 4, a.Weight())

	m := a.Merge(b)
	assert.Equal(t, umi.Counts{"AAAA": 3, "CCCC": 3, "GGGG": 5}, m)
	assert.Equal(t, 11, m.Weight())

	var empty umi.Counts
	assert.Equal(t, umi.Counts{"GGGG": 5, "CCCC": 2}, empty.Merge(b))
}

func TestTable_CountOne(t *testing.T) {
	tb := make(umi.Table)
	tb.CountOne("ACGT", "AA")
	tb.CountOne("ACGT", "AA")
	tb.CountOne("ACGT", "CC")
	tb.CountOne("TTTT", "AA")
	assert.Equal(t, umi.Table{
		"ACGT": {"AA": 2, "CC": 1},
		"TTTT": {"AA": 1},
	}, tb)
}

func TestCollapseBarcodes(t *testing.T) {
	tb := umi.Table{
		"ACGTACGT": {"AAAA": 5, "CCCC": 1},
		"ACGTTCGT": {"AAAA": 1, "GGGG": 2},
		"TTTTGGGG": {"TTTT": 4},
	}
	got := umi.CollapseBarcodes(tb)
	assert.Equal(t, umi.Table{
		"ACGTACGT": {"AAAA": 6, "CCCC": 1, "GGGG": 2},
		"TTTTGGGG": {"TTTT": 4},
	}, got)
}

func TestCollapseBarcodes_KeyIsHeaviest(t *testing.T) {
	// the error barcode has more distinct UMIs but fewer reads
	tb := umi.Table{
		"ACGTACGT": {"AAAA": 20},
		"ACGTACGA": {"CCCC": 1, "GGGG": 1, "TTTT": 1},
	}
	got := umi.CollapseBarcodes(tb, nb.WithTraversal(nb.BreadthFirst))
	require.Contains(t, got, "ACGTACGT")
	assert.Equal(t, 23, got["ACGTACGT"].Weight())
	assert.Len(t, got, 1)
}

func TestDedupUMIs(t *testing.T) {
	c := umi.Counts{"AAAAAA": 10, "AAAAAT": 1, "AAAATT": 2, "GGGCCC": 3}
	got := umi.DedupUMIs(c)
	assert.Equal(t, umi.Counts{"AAAAAA": 13, "GGGCCC": 3}, got)
	assert.Empty(t, c)
}

func TestDedup(t *testing.T) {
	tb := umi.Table{
		"B1": {"ACGT": 4, "ACGA": 1},
		"B2": {"TTTT": 2},
	}
	got := umi.Dedup(tb)
	assert.Equal(t, umi.Table{"B1": {"ACGT": 5}, "B2": {"TTTT": 2}}, got)
}

func TestSummarize(t *testing.T) {
	s := umi.Summarize(umi.Counts{"A": 1, "C": 7, "G": 3, "T": 3})
	assert.Equal(t, umi.Summary{Total: 14, UMIs: 4, Median: 3, Counts: []int{7, 3, 3, 1}}, s)

	assert.Equal(t, 0, umi.Summarize(umi.Counts{}).Median)
}

func TestWrite(t *testing.T) {
	tb := umi.Table{
		"TTTT": {"AA": 2},
		"ACGT": {"AA": 5, "CC": 1, "GG": 2},
	}
	var buf bytes.Buffer
	require.NoError(t, umi.Write(&buf, tb))
	assert.Equal(t, "ACGT\t8\t3\t2\t5,2,1,\nTTTT\t2\t1\t2\t2,\n", buf.String())
}

func TestFromFASTQ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bc.fq")
	fq := "@r1 umi=AAAA\nACGT\n+\n~~~~\n" +
		"@r2 umi=AAAA\nACGT\n+\n~~~~\n" +
		"@r3 umi=CCCC\nACGT\n+\n~~~~\n" +
		"@r4 umi=GGGG\nTTTT\n+\n~~~~\n"
	require.NoError(t, os.WriteFile(path, []byte(fq), 0o644))

	tb, err := umi.FromFASTQ(path)
	require.NoError(t, err)
	assert.Equal(t, umi.Table{
		"ACGT": {"AAAA": 2, "CCCC": 1},
		"TTTT": {"GGGG": 1},
	}, tb)
}

func TestFromFASTQ_MissingUMI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bc.fq")
	require.NoError(t, os.WriteFile(path, []byte("@r1 umi=AAAA\nACGT\n+\n~~~~\n@r2\nACGT\n+\n~~~~\n"), 0o644))
	_, err := umi.FromFASTQ(path)
	assert.ErrorIs(t, err, umi.ErrMissingUMI)
	assert.Contains(t, err.Error(), "record 2")
}
