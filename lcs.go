package suffixkit

// origin tells which input of a generalized text the suffix at p comes from:
// 0 for the first text, 1 for the second, -1 for the separator itself.
func origin(p, sepAt int) int {
	switch {
	case p < sepAt:
		return 0
	case p > sepAt:
		return 1
	default:
		return -1
	}
}

// LCS returns the longest string that is a substring of both a and b. Among
// several of maximal length the lexicographically smallest one is returned, so
// the result does not depend on the argument order nor on cfg.Separator.
//
// Both texts must lie inside cfg.Alphabet and neither may contain
// cfg.Separator.
func LCS(a, b string, cfg Config) (string, error) {
	if err := cfg.checkPair(a, b); err != nil {
		return "", err
	}
	if len(a) == 0 || len(b) == 0 {
		return "", nil
	}

	text := a + string([]byte{cfg.Separator}) + b
	sa := buildSuffixArray(text, Bytes, false)
	sepAt := len(a)

	best, bestAt := 0, 0
	for i := 1; i < len(sa.order); i++ {
		p, q := sa.order[i-1], sa.order[i]
		op, oq := origin(p, sepAt), origin(q, sepAt)
		if op < 0 || oq < 0 || op == oq {
			continue
		}
		// A suffix of a stops being usable at the separator.
		l := sa.lcp[i]
		if p < sepAt {
			l = min(l, sepAt-p)
		}
		if q < sepAt {
			l = min(l, sepAt-q)
		}
		if l > best {
			best, bestAt = l, q
		}
	}
	return text[bestAt : bestAt+best], nil
}
