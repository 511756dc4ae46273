package suffixkit

// Kasai's algorithm for building the LCP array in O(n) time.
// lcp[i] is the common prefix length of the suffixes at order[i-1] and order[i];
// lcp[0] is 0.
func buildLCPArray(text string, order, rank []int) []int {
	lcp := make([]int, len(order))
	l := 0
	for i := range order {
		if rank[i] == 0 {
			l = 0
			continue
		}
		j := order[rank[i]-1]
		for i+l < len(text) && j+l < len(text) && text[i+l] == text[j+l] {
			l++
		}
		lcp[rank[i]] = l
		if l > 0 {
			l--
		}
	}
	return lcp
}
