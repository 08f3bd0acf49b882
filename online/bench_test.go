package online_test

import (
	"testing"

	"github.com/katalvlaran/bcnbhd/online"
)

// BenchmarkClusterer_Insert streams 20k observations of 16-base barcodes.
func BenchmarkClusterer_Insert(b *testing.B) {
	obs := observations(1, 2000, 20000, 16)
	seqs := make([][]byte, len(obs))
	for i, s := range obs {
		seqs[i] = []byte(s)
	}

	b.ReportAllocs()
	b.SetBytes(int64(len(seqs)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		c := online.New()
		for _, s := range seqs {
			c.Insert(s)
		}
	}
}
