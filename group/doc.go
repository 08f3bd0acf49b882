// Package group bins paired reads by barcode.
//
// What
//
//	The barcode file and the sequence file are read in lock step. Each read
//	is stored under its barcode, barcodes are merged into error
//	neighborhoods, and every read is written back out named
//	"<key>_<n>" after its neighborhood key.
//
// Why
//
//	Downstream tools that work per molecule only need the reads grouped and
//	renamed; the neighborhood tables written alongside record which raw
//	barcodes were folded together.
//
// Complexity (R = reads, B = distinct barcodes, L = barcode length)
//
//   - FromPairedFASTQ: O(R) with every read held in memory.
//   - Collapse:        O(B·L) probes plus sorting.
package group
