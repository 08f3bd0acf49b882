// Package fastq wraps shenwei356/bio FASTQ reading and writing for the
// barcode tools. Paths are opened with xopen, so "-" means stdin/stdout and
// a .gz suffix is handled transparently.
package fastq
