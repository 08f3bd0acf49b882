package counts_test

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/shenwei356/xopen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bcnbhd/counts"
	nb "github.com/katalvlaran/bcnbhd/neighborhood"
)

func mustRead(t *testing.T, table string) *counts.SampleCounts {
	t.Helper()
	c, err := counts.Read(strings.NewReader(table))
	require.NoError(t, err)
	return c
}

func TestRead(t *testing.T) {
	c := mustRead(t, "TACGGA\t3\nCAGTA\t2\nAATTA\t6\n")
	assert.Equal(t, 3, c.Count("TACGGA"))
	assert.Equal(t, 2, c.Count("CAGTA"))
	assert.Equal(t, 6, c.Count("AATTA"))
	assert.Equal(t, 0, c.Count("ACTGA"))
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 11, c.Total())
}

func TestRead_TrailingBlankAndCRLF(t *testing.T) {
	c := mustRead(t, "AAA\t1\r\nCCC\t2\r\n\n")
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 2, c.Count("CCC"))
}

func TestRead_Errors(t *testing.T) {
	cases := []struct {
		name  string
		table string
		err   error
		where string
	}{
		{"MissingCount", "AAA\t1\nCCC\n", counts.ErrMissingCount, `line 2 barcode "CCC"`},
		{"InnerBlank", "AAA\t1\n\nCCC\t1\n", counts.ErrMissingCount, "line 2"},
		{"Malformed", "AAA\tx1\n", counts.ErrMalformedCount, `line 1 barcode "AAA"`},
		{"Negative", "AAA\t-1\n", counts.ErrMalformedCount, "line 1"},
		{"EmptyCount", "AAA\t\n", counts.ErrMalformedCount, "line 1"},
		{"ExtraField", "AAA\t1\textra\n", counts.ErrExtraField, `line 1 barcode "AAA"`},
		{"Duplicate", "AAA\t1\nCCC\t2\nAAA\t3\n", counts.ErrDuplicate, `line 3 barcode "AAA"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := counts.Read(strings.NewReader(tc.table))
			assert.ErrorIs(t, err, tc.err)
			assert.Contains(t, err.Error(), tc.where)
		})
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	c := counts.FromSequences(slices.Values([][]byte{
		[]byte("ACGTACGT"), []byte("CATGCATG"), []byte("ACGTACGT"),
		[]byte("TACGTACG"), []byte("CATGCATG"), []byte("ACGTACGT"),
	}))
	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf))
	assert.Equal(t, "ACGTACGT\t3\nCATGCATG\t2\nTACGTACG\t1\n", buf.String())

	back := mustRead(t, buf.String())
	assert.Equal(t, c.CountMap(), back.CountMap())
}

func TestWriteFile_ReadFile(t *testing.T) {
	c := mustRead(t, "ACGTA\t3\nCGTAC\t7\n")
	for _, name := range []string{"table.txt", "table.txt.gz"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, c.WriteFile(path))
		back, err := counts.ReadFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, 7, back.Count("CGTAC"), name)
	}
}

func TestReadFile_ErrorNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("AAA\t1\nAAA\t1\n"), 0o644))
	_, err := counts.ReadFile(path)
	assert.ErrorIs(t, err, counts.ErrDuplicate)
	assert.Contains(t, err.Error(), path)
}

func TestWriteFreqTable(t *testing.T) {
	c := mustRead(t, "A\t1\nC\t3\nG\t1\nT\t7\nAA\t3\nCC\t1\n")
	var buf bytes.Buffer
	require.NoError(t, c.WriteFreqTable(&buf))
	assert.Equal(t, "1\t3\n3\t2\n7\t1\n", buf.String())
}

func TestSumAndCountVec(t *testing.T) {
	c1 := mustRead(t, "ACGTA\t3\nCGTAC\t7\nGTACG\t4\n")
	c2 := mustRead(t, "ACGTA\t4\nTACGT\t5\n")
	c3 := mustRead(t, "ACGTA\t5\nCGTAC\t2\nTGCAT\t8\n")
	all := []*counts.SampleCounts{c1, c2, c3}

	assert.Equal(t, []int{3, 4, 5}, counts.CountVec(all, "ACGTA"))
	assert.Equal(t, []int{7, 0, 2}, counts.CountVec(all, "CGTAC"))
	assert.Equal(t, []int{0, 0, 0}, counts.CountVec(all, "GACTG"))

	sum := counts.Sum(all...)
	assert.Equal(t, 12, sum.Count("ACGTA"))
	assert.Equal(t, 9, sum.Count("CGTAC"))
	assert.Equal(t, 5, sum.Len())
	// inputs untouched
	assert.Equal(t, 3, c1.Count("ACGTA"))
}

func TestFromLines(t *testing.T) {
	c, err := counts.FromLines(strings.NewReader("ACGT\nACGT\nTTTT\n\nACGT\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, c.Count("ACGT"))
	assert.Equal(t, 1, c.Count("TTTT"))
	assert.Equal(t, 2, c.Len())
}

func TestFromLinesFile(t *testing.T) {
	for _, name := range []string{"bc.txt", "bc.txt.gz"} {
		path := filepath.Join(t.TempDir(), name)
		w, err := xopen.Wopen(path)
		require.NoError(t, err)
		_, err = w.WriteString("ACGT\nACGT\nACGA\n")
		require.NoError(t, err)
		require.NoError(t, w.Close())

		c, err := counts.FromLinesFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, map[string]nb.Count{"ACGT": 2, "ACGA": 1}, c.CountMap(), name)
	}

	_, err := counts.FromLinesFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestFromFASTQ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.fq")
	fq := "@one\nACGTA\n+\n~~~~~\n@two\nCGTAC\n+\n~~~~~\n@three\nGTACG\n+\n~~~~~\n@four\nCGTAC\n+\n~~~~~\n"
	require.NoError(t, os.WriteFile(path, []byte(fq), 0o644))

	c, err := counts.FromFASTQ(path)
	require.NoError(t, err)
	var got []string
	for seq, n := range c.All() {
		got = append(got, seq+":"+strings.Repeat("|", n))
	}
	assert.Equal(t, []string{"ACGTA:|", "CGTAC:||", "GTACG:|"}, got)
}

func TestCountMap_IsIndependent(t *testing.T) {
	c := mustRead(t, "AAAA\t2\nAAAT\t1\n")
	m := c.CountMap()
	nb.Gather(m)
	assert.Empty(t, m)
	assert.Equal(t, 2, c.Len())

	c.Add("AAAA")
	c.AddN("GGGG", 4)
	assert.Equal(t, 3, c.Count("AAAA"))
	assert.Equal(t, 4, c.Count("GGGG"))
}
