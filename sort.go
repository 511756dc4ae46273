package suffixkit

// sortSuffixes returns the suffix array of text and its inverse, using prefix
// doubling: after the pass with step k every suffix is ranked by its first 2k
// symbols, a suffix shorter than that sorting before its extensions. Each pass
// is a stable counting sort on (rank[i], rank[i+k]), so construction is
// O(n log n) overall.
func sortSuffixes(text string) (order, rank []int) {
	n := len(text)
	order = make([]int, n)
	rank = make([]int, n)
	if n == 0 {
		return order, rank
	}

	classes := sortByFirstSymbol(text, order, rank)

	tmp := make([]int, n)
	next := make([]int, n)
	count := make([]int, n+1)
	for k := 1; classes < n; k <<= 1 {
		// Order by the second key. Suffixes with no symbols past k have the
		// smallest second key, the rest inherit the current order shifted by k.
		j := 0
		for i := n - k; i < n; i++ {
			tmp[j] = i
			j++
		}
		for _, p := range order {
			if p >= k {
				tmp[j] = p - k
				j++
			}
		}

		// Stable counting sort by the first key.
		clear(count[:classes+1])
		for _, p := range tmp {
			count[rank[p]+1]++
		}
		for c := 0; c < classes; c++ {
			count[c+1] += count[c]
		}
		for _, p := range tmp {
			order[count[rank[p]]] = p
			count[rank[p]]++
		}

		// Renumber classes; two neighbours share a class only when both keys match.
		next[order[0]] = 0
		classes = 1
		for i := 1; i < n; i++ {
			p, q := order[i-1], order[i]
			if rank[p] != rank[q] || secondKey(rank, p, k) != secondKey(rank, q, k) {
				classes++
			}
			next[q] = classes - 1
		}
		rank, next = next, rank
	}
	return order, rank
}

func secondKey(rank []int, p, k int) int {
	if p+k < len(rank) {
		return rank[p+k]
	}
	return -1
}

// sortByFirstSymbol bucket-sorts the offsets of text by their leading byte into
// order and stores the bucket number of every offset in rank. It returns the
// number of distinct buckets.
func sortByFirstSymbol(text string, order, rank []int) int {
	var count [256]int
	for i := 0; i < len(text); i++ {
		count[text[i]]++
	}
	sum := 0
	for c := range count {
		count[c], sum = sum, sum+count[c]
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		order[count[c]] = i
		count[c]++
	}

	classes := 1
	rank[order[0]] = 0
	for i := 1; i < len(order); i++ {
		if text[order[i]] != text[order[i-1]] {
			classes++
		}
		rank[order[i]] = classes - 1
	}
	return classes
}
