package suffixkit

import (
	"slices"
	"sort"
	"strings"
)

// comparePrefix compares the first len(pattern) symbols of suffix with pattern.
// It returns 0 when pattern is a prefix of suffix.
func comparePrefix(suffix, pattern string) int {
	if len(suffix) > len(pattern) {
		suffix = suffix[:len(pattern)]
	}
	return strings.Compare(suffix, pattern)
}

// findBoundaries returns the half-open range [lo, hi) of suffix array positions
// whose suffixes start with pattern. lo == hi when there is no occurrence.
func (sa *SuffixArray) findBoundaries(pattern string) (int, int) {
	n := len(sa.order)

	// first position where pattern <= suffix
	lo := sort.Search(n, func(i int) bool {
		return comparePrefix(sa.text[sa.order[i]:], pattern) >= 0
	})
	if lo == n || !strings.HasPrefix(sa.text[sa.order[lo]:], pattern) {
		return lo, lo
	}

	// Every suffix in the matching group shares at least len(pattern) symbols
	// with the suffix at lo, so the group ends where the LCP range minimum
	// drops below len(pattern).
	if sa.lcpRMQ != nil {
		m := len(pattern)
		hi := lo + sort.Search(n-lo, func(i int) bool {
			if i == 0 {
				return false
			}
			return sa.minLCP(lo+1, lo+i) < m
		})
		return lo, hi
	}

	hi := lo + sort.Search(n-lo, func(i int) bool {
		return comparePrefix(sa.text[sa.order[lo+i]:], pattern) > 0
	})
	return lo, hi
}

// BinarySearch returns the start offset of every occurrence of pattern, in
// suffix array order. An empty pattern matches every offset.
func (sa *SuffixArray) BinarySearch(pattern string) []int {
	lo, hi := sa.findBoundaries(pattern)
	return slices.Clone(sa.order[lo:hi])
}

// Contains reports whether pattern occurs in the text.
func (sa *SuffixArray) Contains(pattern string) bool {
	lo, hi := sa.findBoundaries(pattern)
	return lo < hi
}

// Count returns the number of occurrences of pattern.
func (sa *SuffixArray) Count(pattern string) int {
	lo, hi := sa.findBoundaries(pattern)
	return hi - lo
}
