package suffixkit

import "sort"

// child returns the child of v whose edge starts with c, or -1.
func (t *SuffixTree) child(v int, c byte) int {
	children := t.nodes[v].children
	d := t.nodes[v].depth
	first := func(i int) byte {
		return t.text[t.nodes[children[i]].span+d]
	}
	i := sort.Search(len(children), func(i int) bool { return first(i) >= c })
	if i < len(children) && first(i) == c {
		return children[i]
	}
	return -1
}

// locate descends from the root along pattern and returns the highest node
// whose path label has pattern as a prefix, or -1 if pattern does not occur.
func (t *SuffixTree) locate(pattern string) int {
	v, i := root, 0
	for i < len(pattern) {
		c := t.child(v, pattern[i])
		if c < 0 {
			return -1
		}
		nd := &t.nodes[c]
		edge := t.text[nd.span+t.nodes[v].depth : nd.span+nd.depth]
		k := min(len(edge), len(pattern)-i)
		if edge[:k] != pattern[i:i+k] {
			return -1
		}
		i += k
		v = c
	}
	return v
}

// HasSubstr reports whether pattern occurs in the text. The empty pattern
// always does.
func (t *SuffixTree) HasSubstr(pattern string) bool {
	return t.locate(pattern) >= 0
}

// SearchAll returns the start offset of every occurrence of pattern, in
// lexicographic order of the suffixes. An empty pattern matches every offset.
func (t *SuffixTree) SearchAll(pattern string) []int {
	v := t.locate(pattern)
	if v < 0 {
		return []int{}
	}
	offsets := []int{}
	for _, u := range t.preorder(v) {
		s := t.nodes[u].suffix
		if s < 0 || s+len(pattern) > len(t.text) {
			continue
		}
		offsets = append(offsets, s)
	}
	return offsets
}

// repeatBetter orders candidates for the longest repeated substring: deeper
// wins, and between equally deep ones the substring whose last occurrence
// starts further right.
func repeatBetter(depth, last, bestDepth, bestLast int) bool {
	return depth > bestDepth || (depth == bestDepth && last > bestLast)
}

// LRS returns the longest substring occurring at least twice. Every node with a
// child is such a repeat, so this is a single scan over the arena using the
// subtree maxima recorded at construction.
func (t *SuffixTree) LRS() string {
	best := root
	for v := range t.nodes {
		nd := &t.nodes[v]
		if len(nd.children) == 0 {
			continue
		}
		if repeatBetter(nd.depth, nd.last, t.nodes[best].depth, t.nodes[best].last) {
			best = v
		}
	}
	return t.label(best)
}

// LRSDFS computes the same result as LRS by a recursive descent that derives
// the subtree maxima on its own.
func (t *SuffixTree) LRSDFS() string {
	best, bestDepth, bestLast := root, -1, -1

	var visit func(v int) int
	visit = func(v int) int {
		nd := &t.nodes[v]
		last := nd.suffix
		for _, c := range nd.children {
			last = max(last, visit(c))
		}
		if len(nd.children) > 0 && repeatBetter(nd.depth, last, bestDepth, bestLast) {
			best, bestDepth, bestLast = v, nd.depth, last
		}
		return last
	}
	visit(root)

	return t.label(best)
}

// TreeLCS computes the same result as LCS on a generalized suffix tree of
// a + cfg.Separator + b: the deepest node whose subtree holds suffixes of both
// texts, the first in child order on ties.
func TreeLCS(a, b string, cfg Config) (string, error) {
	if err := cfg.checkPair(a, b); err != nil {
		return "", err
	}
	if len(a) == 0 || len(b) == 0 {
		return "", nil
	}

	text := a + string([]byte{cfg.Separator}) + b
	t := FromSuffixArray(buildSuffixArray(text, Bytes, false))
	sepAt := len(a)

	nodes := t.preorder(root)
	seen := make([]uint8, len(t.nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		v := nodes[i]
		nd := &t.nodes[v]
		if nd.suffix >= 0 {
			if o := origin(nd.suffix, sepAt); o >= 0 {
				seen[v] |= 1 << o
			}
		}
		if nd.parent >= 0 {
			seen[nd.parent] |= seen[v]
		}
	}

	best := root
	for _, v := range nodes {
		if seen[v] == 0b11 && t.nodes[v].depth > t.nodes[best].depth {
			best = v
		}
	}
	return t.label(best), nil
}
