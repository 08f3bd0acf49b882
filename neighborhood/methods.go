package neighborhood

import (
	"cmp"
	"iter"
	"slices"
	"strings"
)

// New builds a neighborhood from members in the given order; the first
// member is the key.
func New[T any](members ...Member[T]) *Neighborhood[T] {
	return &Neighborhood[T]{members: slices.Clone(members)}
}

// Len returns the number of members.
func (n *Neighborhood[T]) Len() int { return len(n.members) }

// Members returns the member slice. It aliases the neighborhood's storage
// and must not be modified.
func (n *Neighborhood[T]) Members() []Member[T] { return n.members }

// All yields every member in order, key first.
func (n *Neighborhood[T]) All() iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		for _, m := range n.members {
			if !yield(m.Seq, m.Value) {
				return
			}
		}
	}
}

// Key returns the first member. It panics with ErrEmptyNeighborhood when the
// neighborhood has no members.
func (n *Neighborhood[T]) Key() Member[T] {
	if len(n.members) == 0 {
		panic(ErrEmptyNeighborhood)
	}
	return n.members[0]
}

// SortBy orders members by descending weight; equal weights are ordered by
// ascending byte value of the sequence. weight is called once per member.
func (n *Neighborhood[T]) SortBy(weight func(T) int) {
	type weighted struct {
		w int
		m Member[T]
	}
	ws := make([]weighted, len(n.members))
	for i, m := range n.members {
		ws[i] = weighted{w: weight(m.Value), m: m}
	}
	slices.SortFunc(ws, func(a, b weighted) int {
		if c := cmp.Compare(b.w, a.w); c != 0 {
			return c
		}
		return strings.Compare(a.m.Seq, b.m.Seq)
	})
	for i := range ws {
		n.members[i] = ws[i].m
	}
}

// SortByCounts sorts n by payload weight so the most abundant member
// becomes the key.
func SortByCounts[T Weigher](n *Neighborhood[T]) {
	n.SortBy(func(v T) int { return v.Weight() })
}

// Total sums the payload weights of all members.
func Total[T Weigher](n *Neighborhood[T]) int {
	total := 0
	for _, m := range n.members {
		total += m.Value.Weight()
	}
	return total
}

// MapValues returns a neighborhood with the same members in the same order
// and payloads transformed by f.
func MapValues[T, U any](n *Neighborhood[T], f func(T) U) *Neighborhood[U] {
	out := &Neighborhood[U]{members: make([]Member[U], len(n.members))}
	for i, m := range n.members {
		out.members[i] = Member[U]{Seq: m.Seq, Value: f(m.Value)}
	}
	return out
}

// ToCounts replaces each record list with its length.
func ToCounts[U any](n *Neighborhood[Reads[U]]) *Neighborhood[Count] {
	return MapValues(n, func(r Reads[U]) Count { return Count(len(r)) })
}

// Merged folds every member's payload into the key's payload, in member
// order. Mutating Merge implementations modify the key's value. It panics
// with ErrEmptyNeighborhood on an empty neighborhood.
func Merged[T Merger[T]](n *Neighborhood[T]) T {
	acc := n.Key().Value
	for _, m := range n.members[1:] {
		acc = acc.Merge(m.Value)
	}
	return acc
}

// Index maps every member sequence to the key sequence of its neighborhood.
func Index[T any](nbhds []*Neighborhood[T]) map[string]string {
	idx := make(map[string]string)
	for _, n := range nbhds {
		if n.Len() == 0 {
			continue
		}
		key := n.Key().Seq
		for _, m := range n.members {
			idx[m.Seq] = key
		}
	}
	return idx
}

// SortNeighborhoods orders neighborhoods by descending Total, then by
// ascending key sequence. Each neighborhood should already be sorted.
func SortNeighborhoods[T Weigher](nbhds []*Neighborhood[T]) {
	type keyed struct {
		total int
		key   string
		n     *Neighborhood[T]
	}
	ks := make([]keyed, len(nbhds))
	for i, n := range nbhds {
		ks[i] = keyed{total: Total(n), n: n}
		if n.Len() > 0 {
			ks[i].key = n.Key().Seq
		}
	}
	slices.SortFunc(ks, func(a, b keyed) int {
		if c := cmp.Compare(b.total, a.total); c != 0 {
			return c
		}
		return strings.Compare(a.key, b.key)
	})
	for i := range ks {
		nbhds[i] = ks[i].n
	}
}
