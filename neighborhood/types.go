package neighborhood

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors.
var (
	// ErrEmptyNeighborhood is the panic value of Key and Merged on a
	// neighborhood without members.
	ErrEmptyNeighborhood = errors.New("neighborhood: empty neighborhood")

	// ErrUnknownTraversal is returned by ParseTraversal.
	ErrUnknownTraversal = errors.New("neighborhood: unknown traversal")
)

// Member is one sequence of a neighborhood and its payload.
type Member[T any] struct {
	Seq   string
	Value T
}

// Neighborhood is an ordered, non-empty (when built by Gather) group of
// sequences. The first member is the key.
type Neighborhood[T any] struct {
	members []Member[T]
}

// Weigher is a payload with an abundance used for ordering and totals.
type Weigher interface {
	Weight() int
}

// Merger is a payload that can absorb another payload of the same type.
type Merger[T any] interface {
	Merge(other T) T
}

// Count is the number of times a sequence was observed.
type Count int

// Weight returns the count itself.
func (c Count) Weight() int { return int(c) }

// Merge returns the sum of both counts.
func (c Count) Merge(other Count) Count { return c + other }

// Reads is a list of records sharing one sequence.
type Reads[U any] []U

// Weight returns the number of records.
func (r Reads[U]) Weight() int { return len(r) }

// Merge appends other's records.
func (r Reads[U]) Merge(other Reads[U]) Reads[U] { return append(r, other...) }

// Traversal selects the work-list discipline of Gather.
type Traversal int

const (
	// DepthFirst uses a LIFO stack.
	DepthFirst Traversal = iota
	// BreadthFirst uses a FIFO queue.
	BreadthFirst
)

// String returns "dfs" or "bfs".
func (t Traversal) String() string {
	if t == BreadthFirst {
		return "bfs"
	}
	return "dfs"
}

// ParseTraversal accepts "dfs", "depth-first", "bfs" and "breadth-first",
// case-insensitively.
func ParseTraversal(s string) (Traversal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dfs", "depth-first":
		return DepthFirst, nil
	case "bfs", "breadth-first":
		return BreadthFirst, nil
	}
	return DepthFirst, fmt.Errorf("%w: %q", ErrUnknownTraversal, s)
}

// Observer receives progress events from Gather. Implementations live in
// the caller (for example a logger or a metrics sink).
type Observer interface {
	Visited(seq string)
	Closed(size int)
}

// Option configures Gather.
type Option func(*Options)

// Options holds the Gather parameters.
type Options struct {
	// Traversal is the work-list discipline; any value other than
	// BreadthFirst means DepthFirst.
	Traversal Traversal

	// OnVisit is called once for every sequence appended to a neighborhood.
	OnVisit func(seq string)

	// OnNeighborhood is called with the size of every closed neighborhood.
	OnNeighborhood func(size int)
}

// DefaultOptions returns depth-first traversal with no-op hooks.
func DefaultOptions() Options {
	return Options{
		Traversal:      DepthFirst,
		OnVisit:        func(string) {},
		OnNeighborhood: func(int) {},
	}
}

// WithTraversal sets the work-list discipline.
func WithTraversal(t Traversal) Option {
	return func(o *Options) {
		o.Traversal = t
	}
}

// WithOnVisit registers a per-sequence callback. nil is ignored.
func WithOnVisit(fn func(seq string)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithOnNeighborhood registers a per-neighborhood callback. nil is ignored.
func WithOnNeighborhood(fn func(size int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnNeighborhood = fn
		}
	}
}

// WithObserver installs obs as both OnVisit and OnNeighborhood. A later
// WithOnVisit or WithOnNeighborhood replaces the corresponding half.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		if obs != nil {
			o.OnVisit = obs.Visited
			o.OnNeighborhood = obs.Closed
		}
	}
}
