package fastq_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bcnbhd/internal/fastq"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEach(t *testing.T) {
	path := writeFile(t, "in.fq", "@one umi=AAAA\nACGTA\n+\n~~~~~\n@two\nCGTAC\n+\nIIIII\n")

	var seqs, quals []string
	var headers [][]byte
	err := fastq.Each(path, func(r fastq.Record) error {
		seqs = append(seqs, string(r.Seq))
		quals = append(quals, string(r.Qual))
		headers = append(headers, r.Name)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ACGTA", "CGTAC"}, seqs)
	assert.Equal(t, []string{"~~~~~", "IIIII"}, quals)
	assert.True(t, bytes.Contains(headers[0], []byte("umi=AAAA")))
}

func TestEach_StopsOnCallbackError(t *testing.T) {
	path := writeFile(t, "in.fq", "@a\nA\n+\n~\n@b\nC\n+\n~\n")
	stop := assert.AnError
	n := 0
	err := fastq.Each(path, func(fastq.Record) error { n++; return stop })
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, n)
}

func TestEach_MissingFile(t *testing.T) {
	err := fastq.Each(filepath.Join(t.TempDir(), "absent.fq"), func(fastq.Record) error { return nil })
	assert.Error(t, err)
}

func TestEachPair(t *testing.T) {
	a := writeFile(t, "a.fq", "@r1\nAAAA\n+\n~~~~\n@r2\nCCCC\n+\n~~~~\n")
	b := writeFile(t, "b.fq", "@r1\nGATTACA\n+\nIIIIIII\n@r2\nTTTT\n+\nIIII\n")

	var pairs []string
	err := fastq.EachPair(a, b, func(x, y fastq.Record) error {
		pairs = append(pairs, string(x.Seq)+"/"+string(y.Seq))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"AAAA/GATTACA", "CCCC/TTTT"}, pairs)
}

func TestEachPair_Unpaired(t *testing.T) {
	a := writeFile(t, "a.fq", "@r1\nAAAA\n+\n~~~~\n@r2\nCCCC\n+\n~~~~\n")
	b := writeFile(t, "b.fq", "@r1\nGATTACA\n+\nIIIIIII\n")
	err := fastq.EachPair(a, b, func(_, _ fastq.Record) error { return nil })
	assert.ErrorIs(t, err, fastq.ErrUnpaired)
}

func TestWrite_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, fastq.Write(&buf, []byte("ACGT_1"), []byte("GATTACA"), []byte("IIIIIII")))
	require.NoError(t, fastq.Write(&buf, []byte("ACGT_2"), []byte("TTT"), []byte("~~~")))

	path := writeFile(t, "out.fq", buf.String())
	var ids, seqs []string
	require.NoError(t, fastq.Each(path, func(r fastq.Record) error {
		ids = append(ids, string(r.ID))
		seqs = append(seqs, string(r.Seq))
		return nil
	}))
	assert.Equal(t, []string{"ACGT_1", "ACGT_2"}, ids)
	assert.Equal(t, []string{"GATTACA", "TTT"}, seqs)
}
