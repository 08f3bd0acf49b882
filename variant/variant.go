package variant

import "iter"

// Alphabet lists the symbols produced by substitution and insertion, in the
// order they are tried.
const Alphabet = "ACGT"

// InAlphabet reports whether b is one of the Alphabet symbols.
func InAlphabet(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T':
		return true
	}
	return false
}

// Substitutions yields seq with one position replaced by a different
// Alphabet symbol, position by position.
func Substitutions(seq []byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		buf := make([]byte, len(seq))
		copy(buf, seq)
		for i, orig := range seq {
			for j := 0; j < len(Alphabet); j++ {
				if Alphabet[j] == orig {
					continue
				}
				buf[i] = Alphabet[j]
				if !yield(buf) {
					return
				}
			}
			buf[i] = orig
		}
	}
}

// Deletions yields seq with position i removed, for i = 0..len(seq)-1.
// A one-symbol sequence yields a single empty slice.
func Deletions(seq []byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		if len(seq) == 0 {
			return
		}
		// buf starts as the deletion of position 0; moving the gap from i to
		// i+1 only rewrites buf[i].
		buf := make([]byte, len(seq)-1)
		copy(buf, seq[1:])
		for i := 0; i < len(seq); i++ {
			if i > 0 {
				buf[i-1] = seq[i-1]
			}
			if !yield(buf) {
				return
			}
		}
	}
}

// Insertions yields seq with one Alphabet symbol inserted before position i,
// for i = 0..len(seq).
func Insertions(seq []byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		buf := make([]byte, len(seq)+1)
		copy(buf[1:], seq)
		for i := 0; i <= len(seq); i++ {
			if i > 0 {
				buf[i-1] = seq[i-1]
			}
			for j := 0; j < len(Alphabet); j++ {
				buf[i] = Alphabet[j]
				if !yield(buf) {
					return
				}
			}
		}
	}
}

// OneEdit chains Substitutions, Deletions and Insertions of seq.
// The same candidate may appear more than once.
func OneEdit(seq []byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for _, gen := range [...]func([]byte) iter.Seq[[]byte]{Substitutions, Deletions, Insertions} {
			for v := range gen(seq) {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// Collect drains vs into freshly allocated slices.
func Collect(vs iter.Seq[[]byte]) [][]byte {
	var out [][]byte
	for v := range vs {
		out = append(out, append([]byte(nil), v...))
	}
	return out
}

// Count returns the number of candidates OneEdit(seq) yields.
func Count(seq []byte) int {
	subs := 0
	for _, b := range seq {
		if InAlphabet(b) {
			subs += len(Alphabet) - 1
		} else {
			subs += len(Alphabet)
		}
	}
	return subs + len(seq) + len(Alphabet)*(len(seq)+1)
}

// IsOneEdit reports whether to is among the OneEdit candidates of from,
// without generating them. The relation is directed: see the package doc.
func IsOneEdit(from, to []byte) bool {
	switch len(to) - len(from) {
	case 0:
		diff := -1
		for i := range from {
			if from[i] != to[i] {
				if diff >= 0 {
					return false
				}
				diff = i
			}
		}
		return diff >= 0 && InAlphabet(to[diff])
	case -1:
		return dropsOne(from, to)
	case 1:
		// to[i] must be an alphabet symbol for at least one valid gap i;
		// every valid gap lies in the same homopolymer run of to.
		p := commonPrefix(from, to)
		s := commonSuffix(from, to)
		for i := len(from) - s; i <= p; i++ {
			if i >= 0 && InAlphabet(to[i]) {
				return true
			}
		}
		return false
	}
	return false
}

// dropsOne reports whether short equals long with exactly one symbol removed.
func dropsOne(long, short []byte) bool {
	p := commonPrefix(long, short)
	s := commonSuffix(long, short)
	return p+s >= len(short)
}

func commonPrefix(a, b []byte) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func commonSuffix(a, b []byte) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	return i
}
