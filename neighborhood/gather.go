package neighborhood

import "github.com/katalvlaran/bcnbhd/variant"

// Gather partitions m into neighborhoods of sequences connected by single
// edits. Entries are deleted from m as they are claimed, so m is empty when
// Gather returns. The order of the returned neighborhoods follows map
// iteration and is not deterministic; each neighborhood's key is its seed.
//
// Time: O(N·L) map probes. Memory: O(N).
func Gather[T any](m map[string]T, opts ...Option) []*Neighborhood[T] {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	g := &gatherer[T]{pending: m, opts: o}
	var out []*Neighborhood[T]
	// Entries deleted by collect before the range reaches them are never
	// produced, so every seed here is unclaimed.
	for seq, v := range m {
		delete(m, seq)
		out = append(out, g.collect(seq, v))
	}

	return out
}

// gatherer holds the state shared by all components of one Gather call.
type gatherer[T any] struct {
	pending map[string]T
	opts    Options
	work    []Member[T]
	head    int    // queue front for BreadthFirst
	scratch []byte // current member's bytes
}

// collect drains the component containing seed. seed must already be
// removed from pending.
func (g *gatherer[T]) collect(seed string, v T) *Neighborhood[T] {
	g.work = append(g.work[:0], Member[T]{Seq: seed, Value: v})
	g.head = 0

	n := &Neighborhood[T]{}
	for g.head < len(g.work) {
		cur := g.pop()
		g.scratch = append(g.scratch[:0], cur.Seq...)
		for cand := range variant.OneEdit(g.scratch) {
			val, ok := g.pending[string(cand)]
			if !ok {
				continue
			}
			seq := string(cand)
			delete(g.pending, seq)
			g.work = append(g.work, Member[T]{Seq: seq, Value: val})
		}
		n.members = append(n.members, cur)
		g.opts.OnVisit(cur.Seq)
	}
	g.opts.OnNeighborhood(len(n.members))

	return n
}

func (g *gatherer[T]) pop() Member[T] {
	var zero Member[T]
	if g.opts.Traversal == BreadthFirst {
		m := g.work[g.head]
		g.work[g.head] = zero
		g.head++
		return m
	}
	last := len(g.work) - 1
	m := g.work[last]
	g.work[last] = zero
	g.work = g.work[:last]
	return m
}
