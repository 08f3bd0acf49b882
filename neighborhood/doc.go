// Package neighborhood groups observed sequences into error neighborhoods:
// the connected components of the graph whose edges join sequences one edit
// apart (see package variant).
//
// What
//
//   - Gather: destructive component search over a map[string]T. Every entry
//     ends up in exactly one Neighborhood and the input map is empty on return.
//   - Neighborhood[T]: ordered members with a designated key (the first
//     member). After SortByCounts the key is the most abundant sequence.
//   - Payload helpers: Count (read count), Reads[U] (grouped records), and the
//     Weigher / Merger constraints used by SortByCounts, Total and Merged.
//
// Why
//
//	Barcode and UMI sets carry PCR and sequencing errors. Treating every
//	sequence reachable through a chain of single edits as one molecule and
//	naming the group after its most abundant member recovers the true
//	barcodes without pairwise comparison.
//
// Algorithm
//
//  1. Pick any remaining entry, remove it from the map, push it onto the
//     work list.
//  2. Pop a member, probe the map with every OneEdit candidate; each hit is
//     removed and pushed.
//  3. Append the popped member to the neighborhood.
//  4. When the work list is empty the component is closed; repeat from 1.
//
// The partition is the same for DepthFirst (stack, default) and BreadthFirst
// (queue); only member order differs.
//
// Options
//
//   - WithTraversal(t)        work-list discipline.
//   - WithOnVisit(fn)         called once for every member appended.
//   - WithOnNeighborhood(fn)  called with the member count of every closed
//     neighborhood.
//   - WithObserver(o)         installs both hooks from an Observer.
//
// Complexity (N sequences of length ≤ L)
//
//   - Time:   O(N·L) map probes (≈ 8·L+4 per sequence).
//   - Memory: O(N) for the output plus one work list.
//
// Caveat: the one-edit relation is not symmetric for symbols outside
// variant.Alphabet, so neighborhoods containing N-bearing sequences can
// depend on which entry seeds the search.
package neighborhood
