// Package bcnbhd groups sequencing barcodes and UMIs into error
// neighborhoods: sets of sequences linked by chains of single substitutions,
// insertions or deletions.
//
// 🚀 What is bcnbhd?
//
//	A small toolkit for counting and cleaning up short molecular tags:
//		• variant/      : one-edit candidate generators and the IsOneEdit predicate
//		• neighborhood/ : Gather (destructive component search) and the Neighborhood container
//		• report/       : tab-separated neighborhood tables
//		• counts/       : per-sample barcode count tables and the multi-sample matrix
//		• umi/          : UMI tabulation, barcode collapse and UMI deduplication
//		• group/        : paired-read grouping by barcode neighborhood
//		• online/       : incremental clustering with a disjoint-set forest
//		• progress/     : zap and Prometheus observers for clustering
//		• config/       : YAML run settings
//
// ✨ Why neighborhoods?
//
//   - PCR and sequencing errors turn one barcode into a cloud of near copies.
//   - Probing a hash map with O(L) one-edit candidates finds every neighbor
//     without comparing all pairs.
//   - The most abundant member names the neighborhood, so totals and
//     fractions describe the true molecule.
//
// The command line front end lives in cmd/bcnbhd:
//
//	bcnbhd count    reads.fq        > counts.txt
//	bcnbhd collapse -o lib1 counts.txt
//	bcnbhd umi      -collapse-barcodes -dedup barcodes.fq
//	bcnbhd group    -o lib1 barcodes.fq reads.fq
//	bcnbhd tabulate -min-samples 2 s1.txt s2.txt s3.txt
package bcnbhd
