// Package variant enumerates the one-edit neighbors of a DNA sequence.
//
// What
//
//   - Substitutions: every position replaced by each other symbol of Alphabet.
//   - Deletions:     every position removed once.
//   - Insertions:    every symbol of Alphabet inserted before every position
//     and after the last one.
//   - OneEdit:       the three generators chained (substitutions, deletions,
//     insertions).
//
// Why
//
//	Sequencing errors in short barcodes and UMIs are overwhelmingly single
//	substitutions or single-base indels. Rather than comparing every pair of
//	observed sequences (O(N²)), a clusterer can probe a hash map with the
//	O(L) candidates produced here and discover neighbors in O(N·L).
//
// Alphabet asymmetry
//
//	Only A, C, G and T are ever produced as substituted or inserted symbols.
//	A sequence containing another symbol (for example the ambiguity code N)
//	is still a valid source: its N positions are substituted to A, C, G and T.
//	The reverse never happens, so ACNT reaches ACGT but ACGT does not reach
//	ACNT. IsOneEdit reports this directed relation exactly.
//
// Iteration
//
//	All generators return iter.Seq[[]byte]. The yielded slice is a scratch
//	buffer owned by the generator and is overwritten by the next step; use it
//	for map probes (m[string(v)] does not allocate) and copy it, or use
//	Collect, to keep it.
//
// Complexity (L = len(seq))
//
//   - Substitutions: ≤ 3·L candidates (4 per non-alphabet position).
//   - Deletions:     L candidates.
//   - Insertions:    4·(L+1) candidates.
//   - Each step is O(1) amortized; one O(L) buffer per generator.
package variant
