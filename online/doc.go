// Package online clusters barcodes incrementally, one observation at a time.
//
// Clusterer keeps every distinct sequence in an index-addressed arena and a
// disjoint-set forest over those indices. Adding a new sequence probes the
// map of known sequences with its one-edit candidates and unions the new
// entry with every hit, so a sequence that bridges two clusters merges them.
//
// The one-edit relation is directed once a sequence carries a symbol outside
// variant.Alphabet (N, IUPAC codes, soft-masked lowercase): ACRT reaches ACGT
// but ACGT never produces ACRT. Sequences with such symbols are also indexed
// by each foreign position, and a new sequence looks itself up there, so
// both directions link and the partition is independent of insertion order.
// For sequences over A, C, G and T it equals the batch neighborhood.Gather of
// the accumulated counts.
//
// Complexity (L = sequence length)
//
//   - Add:           O(L) probes plus O(L) index probes once foreign symbols
//     have been seen, near-constant amortized union-find work.
//   - Neighborhoods: O(N log N) for sorting.
package online
