// Package umi tabulates unique molecular identifiers per barcode.
//
// Reads carry their UMI in the FASTQ header as a "umi=<SEQ>" token. A Table
// counts reads per (barcode, UMI) pair. Two error-correction passes reuse
// neighborhood gathering:
//
//   - CollapseBarcodes merges barcodes one edit apart into the most abundant
//     one, summing their UMI counts.
//   - Dedup merges UMIs one edit apart within each barcode.
//
// Write emits one row per barcode: total reads, distinct UMIs, the median
// reads per UMI and the per-UMI counts in descending order.
package umi
