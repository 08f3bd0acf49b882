// Package counts holds per-sample barcode count tables.
//
// A count table is tab-separated text, one "sequence<TAB>count" row per
// barcode, with no header. Tables are read strictly: a missing or
// non-numeric count, extra columns or a repeated sequence is an error that
// names the 1-based line and the barcode. Files are opened through xopen, so
// gzip input and "-" for stdin work everywhere.
//
// Besides reading and writing, the package builds tables from raw sequences
// (FromSequences, FromLines, FromFASTQ), sums and compares samples (Sum,
// CountVec) and writes the multi-sample matrix used to compare libraries
// (Tabulate).
package counts
