package online

import (
	nb "github.com/katalvlaran/bcnbhd/neighborhood"
	"github.com/katalvlaran/bcnbhd/variant"
)

// Clusterer accumulates sequence counts and their one-edit clusters.
// It is not safe for concurrent use.
type Clusterer struct {
	ids    map[string]int
	seqs   []string
	counts []int
	parent []int
	size   []int

	// Sequences with a symbol outside variant.Alphabet, indexed by that
	// position: masked by the sequence with the symbol cut out plus its
	// position, dropped by the sequence with the symbol cut out.
	masked  map[maskKey][]int
	dropped map[string][]int

	clusters int
	scratch  []byte
}

type maskKey struct {
	rest string
	pos  int
}

// New returns an empty Clusterer.
func New() *Clusterer {
	return &Clusterer{
		ids:     make(map[string]int),
		masked:  make(map[maskKey][]int),
		dropped: make(map[string][]int),
	}
}

// Insert records one observation of seq.
func (c *Clusterer) Insert(seq []byte) { c.Add(seq, 1) }

// Add records n observations of seq.
func (c *Clusterer) Add(seq []byte, n int) {
	if id, ok := c.ids[string(seq)]; ok {
		c.counts[id] += n
		return
	}

	id := len(c.seqs)
	key := string(seq)
	c.ids[key] = id
	c.seqs = append(c.seqs, key)
	c.counts = append(c.counts, n)
	c.parent = append(c.parent, id)
	c.size = append(c.size, 1)
	c.clusters++

	c.scratch = append(c.scratch[:0], seq...)
	for v := range variant.OneEdit(c.scratch) {
		c.link(id, v)
	}
	c.linkReverse(id, key)
	c.index(id, key)
}

func (c *Clusterer) link(id int, v []byte) {
	if other, ok := c.ids[string(v)]; ok {
		c.union(id, other)
	}
}

// Len returns the number of distinct sequences.
func (c *Clusterer) Len() int { return len(c.seqs) }

// Clusters returns the number of clusters.
func (c *Clusterer) Clusters() int { return c.clusters }

// Count returns the accumulated count of seq.
func (c *Clusterer) Count(seq string) int {
	if id, ok := c.ids[seq]; ok {
		return c.counts[id]
	}
	return 0
}

// Same reports whether a and b are known and share a cluster.
func (c *Clusterer) Same(a, b string) bool {
	ia, okA := c.ids[a]
	ib, okB := c.ids[b]
	return okA && okB && c.find(ia) == c.find(ib)
}

// Neighborhoods returns the current clusters, each sorted by count with the
// neighborhoods ordered by descending total. The Clusterer stays usable.
func (c *Clusterer) Neighborhoods() []*nb.Neighborhood[nb.Count] {
	byRoot := make(map[int][]nb.Member[nb.Count], c.clusters)
	order := make([]int, 0, c.clusters)
	for id, seq := range c.seqs {
		root := c.find(id)
		if _, ok := byRoot[root]; !ok {
			order = append(order, root)
		}
		byRoot[root] = append(byRoot[root], nb.Member[nb.Count]{Seq: seq, Value: nb.Count(c.counts[id])})
	}

	out := make([]*nb.Neighborhood[nb.Count], 0, len(order))
	for _, root := range order {
		n := nb.New(byRoot[root]...)
		nb.SortByCounts(n)
		out = append(out, n)
	}
	nb.SortNeighborhoods(out)
	return out
}

func (c *Clusterer) find(x int) int {
	for c.parent[x] != x {
		c.parent[x] = c.parent[c.parent[x]]
		x = c.parent[x]
	}
	return x
}

func (c *Clusterer) union(a, b int) {
	ra, rb := c.find(a), c.find(b)
	if ra == rb {
		return
	}
	if c.size[ra] < c.size[rb] {
		ra, rb = rb, ra
	}
	c.parent[rb] = ra
	c.size[ra] += c.size[rb]
	c.clusters--
}

// linkReverse unions id with every known sequence whose one-edit
// candidates contain seq but not the other way round: those that differ from
// seq by a foreign symbol where seq has an alphabet symbol, or by one extra
// foreign symbol.
func (c *Clusterer) linkReverse(id int, seq string) {
	for _, other := range c.dropped[seq] {
		c.union(id, other)
	}
	if len(c.masked) == 0 {
		return
	}
	for i := 0; i < len(seq); i++ {
		if !variant.InAlphabet(seq[i]) {
			continue
		}
		for _, other := range c.masked[maskKey{rest: seq[:i] + seq[i+1:], pos: i}] {
			c.union(id, other)
		}
	}
}

func (c *Clusterer) index(id int, seq string) {
	for i := 0; i < len(seq); i++ {
		if variant.InAlphabet(seq[i]) {
			continue
		}
		rest := seq[:i] + seq[i+1:]
		k := maskKey{rest: rest, pos: i}
		c.masked[k] = append(c.masked[k], id)
		c.dropped[rest] = append(c.dropped[rest], id)
	}
}
