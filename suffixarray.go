package suffixkit

import (
	"slices"

	"github.com/viniciusth/rmq"
)

type Builder struct {
	text     string
	alphabet Alphabet
	useRMQ   bool
}

// NewBuilder starts the construction of a suffix array or suffix tree over text.
// The alphabet defaults to Lowercase.
func NewBuilder(text string) *Builder {
	return &Builder{
		text:     text,
		alphabet: Lowercase,
		useRMQ:   true,
	}
}

// Sets the alphabet window the text is validated against.
func (b *Builder) Alphabet(a Alphabet) *Builder {
	b.alphabet = a
	return b
}

// Skips the range-minimum structure over the LCP array.
// BinarySearch then finds its upper bound with a second prefix comparison search
// and LCPOf scans the LCP range linearly.
// Saves O(n) memory.
func (b *Builder) SkipRMQ() *Builder {
	b.useRMQ = false
	return b
}

func (b *Builder) BuildSuffixArray() (*SuffixArray, error) {
	if err := b.alphabet.Check(b.text); err != nil {
		return nil, err
	}
	return buildSuffixArray(b.text, b.alphabet, b.useRMQ), nil
}

func (b *Builder) BuildSuffixTree() (*SuffixTree, error) {
	if err := b.alphabet.Check(b.text); err != nil {
		return nil, err
	}
	return FromSuffixArray(buildSuffixArray(b.text, b.alphabet, false)), nil
}

// NewSuffixArray builds the suffix array of text over the alphabet a.
func NewSuffixArray(text string, a Alphabet) (*SuffixArray, error) {
	return NewBuilder(text).Alphabet(a).BuildSuffixArray()
}

// SuffixArray is an immutable suffix array over a text together with its
// inverse permutation and LCP array. It is safe for concurrent use.
type SuffixArray struct {
	text     string
	alphabet Alphabet
	order    []int
	rank     []int
	lcp      []int
	lcpRMQ   *rmq.RMQHybridNaive[int]
}

// buildSuffixArray skips alphabet validation; the generalized operations use it
// on texts that contain a separator.
func buildSuffixArray(text string, alphabet Alphabet, useRMQ bool) *SuffixArray {
	order, rank := sortSuffixes(text)
	lcp := buildLCPArray(text, order, rank)

	var lcpRMQ *rmq.RMQHybridNaive[int]
	if useRMQ && len(lcp) > 1 {
		lcpRMQ = rmq.NewRMQHybridNaive(lcp)
	}
	return &SuffixArray{
		text:     text,
		alphabet: alphabet,
		order:    order,
		rank:     rank,
		lcp:      lcp,
		lcpRMQ:   lcpRMQ,
	}
}

func (sa *SuffixArray) Len() int {
	return len(sa.text)
}

func (sa *SuffixArray) Text() string {
	return sa.text
}

func (sa *SuffixArray) Alphabet() Alphabet {
	return sa.alphabet
}

// Order returns a copy of the suffix array: the suffix start offsets in
// lexicographic order of their suffixes.
func (sa *SuffixArray) Order() []int {
	return slices.Clone(sa.order)
}

// Rank returns a copy of the inverse of Order.
func (sa *SuffixArray) Rank() []int {
	return slices.Clone(sa.rank)
}

// LCP returns a copy of the LCP array. Entry i is the length of the longest
// common prefix of the suffixes ranked i-1 and i; entry 0 is always 0.
func (sa *SuffixArray) LCP() []int {
	return slices.Clone(sa.lcp)
}

// Suffix returns the suffix of rank i. The result shares memory with the text.
func (sa *SuffixArray) Suffix(i int) string {
	return sa.text[sa.order[i]:]
}

// Suffixes returns every suffix in lexicographic order.
func (sa *SuffixArray) Suffixes() []string {
	suffixes := make([]string, len(sa.order))
	for i, p := range sa.order {
		suffixes[i] = sa.text[p:]
	}
	return suffixes
}

// LCPOf returns the length of the longest common prefix of the suffixes that
// start at offsets p and q.
func (sa *SuffixArray) LCPOf(p, q int) int {
	if p == q {
		return len(sa.text) - p
	}
	l, r := sa.rank[p], sa.rank[q]
	if l > r {
		l, r = r, l
	}
	return sa.minLCP(l+1, r)
}

// minLCP returns min(lcp[l..r]) for 1 <= l <= r.
func (sa *SuffixArray) minLCP(l, r int) int {
	if sa.lcpRMQ != nil {
		return sa.lcp[sa.lcpRMQ.Query(l, r)]
	}
	return slices.Min(sa.lcp[l : r+1])
}
