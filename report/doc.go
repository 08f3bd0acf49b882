// Package report writes the three tab-separated tables that describe a set of
// barcode neighborhoods:
//
//   - totals:        one row per neighborhood, key and total count.
//   - member map:    one row per member, member, key, count, total and the
//     member's fraction of the total.
//   - neighborhoods: one row per neighborhood, key, member count, total, key
//     fraction, then member/count pairs.
//
// Writers only append; they never flush or close the destination. Fractions
// use three decimals. Neighborhoods should be sorted (SortByCounts) so the
// key is the most abundant member.
package report
