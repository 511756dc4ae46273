package suffixkit

const root = 0

// node is a suffix tree node stored in the tree's arena. Its path label is
// text[span : span+depth] and the label of the edge leading to it is
// text[span+parent.depth : span+depth].
type node struct {
	parent   int
	children []int // ordered by the first symbol of their edge
	depth    int
	span     int
	// suffix is the offset of the suffix ending exactly here, -1 if none.
	// Without a unique terminator a suffix may end on a node with children.
	suffix int
	// last is the greatest suffix offset in the subtree.
	last int
}

// SuffixTree is an immutable suffix tree laid out as a flat node arena. It is
// safe for concurrent use.
type SuffixTree struct {
	text     string
	alphabet Alphabet
	nodes    []node
}

// NewSuffixTree builds the suffix tree of text over the alphabet a.
func NewSuffixTree(text string, a Alphabet) (*SuffixTree, error) {
	return NewBuilder(text).Alphabet(a).BuildSuffixTree()
}

// FromSuffixArray collapses the suffix array and LCP array of sa into a suffix
// tree in O(n).
func FromSuffixArray(sa *SuffixArray) *SuffixTree {
	return buildTree(sa.text, sa.alphabet, sa.order, sa.lcp)
}

// buildTree walks the suffix array left to right keeping the rightmost path of
// the tree on a stack. At position i the nodes deeper than lcp[i] are closed, a
// branching node at depth lcp[i] is split in when no open node sits at exactly
// that depth, and the leaf for order[i] hangs below it.
func buildTree(text string, alphabet Alphabet, order, lcp []int) *SuffixTree {
	n := len(order)
	t := &SuffixTree{
		text:     text,
		alphabet: alphabet,
		nodes:    make([]node, 1, 2*n+1),
	}
	t.nodes[root] = node{parent: -1, suffix: -1, last: -1}

	stack := []int{root}
	pop := func() int {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p := t.nodes[v].parent; t.nodes[v].last > t.nodes[p].last {
			t.nodes[p].last = t.nodes[v].last
		}
		return v
	}

	for i, p := range order {
		l := lcp[i]
		closed := -1
		for t.nodes[stack[len(stack)-1]].depth > l {
			closed = pop()
		}

		top := stack[len(stack)-1]
		if t.nodes[top].depth < l {
			// closed is the last child of top; the new node takes its place.
			v := t.add(node{
				parent:   top,
				children: []int{closed},
				depth:    l,
				span:     p,
				suffix:   -1,
				last:     t.nodes[closed].last,
			})
			children := t.nodes[top].children
			children[len(children)-1] = v
			t.nodes[closed].parent = v
			stack = append(stack, v)
			top = v
		}

		leaf := t.add(node{parent: top, depth: n - p, span: p, suffix: p, last: p})
		t.nodes[top].children = append(t.nodes[top].children, leaf)
		stack = append(stack, leaf)
	}
	for len(stack) > 1 {
		pop()
	}
	return t
}

func (t *SuffixTree) add(nd node) int {
	t.nodes = append(t.nodes, nd)
	return len(t.nodes) - 1
}

func (t *SuffixTree) Len() int {
	return len(t.text)
}

func (t *SuffixTree) Text() string {
	return t.text
}

func (t *SuffixTree) Alphabet() Alphabet {
	return t.alphabet
}

// NodeCount returns the number of nodes, root included.
func (t *SuffixTree) NodeCount() int {
	return len(t.nodes)
}

// label returns the path label of v.
func (t *SuffixTree) label(v int) string {
	nd := &t.nodes[v]
	return t.text[nd.span : nd.span+nd.depth]
}

// preorder lists the nodes depth-first with children in symbol order, which is
// the lexicographic order of their path labels.
func (t *SuffixTree) preorder(from int) []int {
	var out []int
	stack := []int{from}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, v)
		children := t.nodes[v].children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return out
}

// Leaves returns the suffix offsets in tree order. For every tree this is
// the suffix array of its text.
func (t *SuffixTree) Leaves() []int {
	leaves := make([]int, 0, len(t.text))
	for _, v := range t.preorder(root) {
		if s := t.nodes[v].suffix; s >= 0 {
			leaves = append(leaves, s)
		}
	}
	return leaves
}
