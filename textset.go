package suffixkit

import (
	"cmp"
	"slices"
	"strings"

	"github.com/viniciusth/rmq"
)

type TextSetBuilder struct {
	texts         []string
	alphabet      Alphabet
	separator     byte
	useRMQ        bool
	useDocListing bool
}

func NewTextSetBuilder(texts []string) *TextSetBuilder {
	cfg := DefaultConfig()
	return &TextSetBuilder{
		texts:         texts,
		alphabet:      cfg.Alphabet,
		separator:     cfg.Separator,
		useRMQ:        true,
		useDocListing: true,
	}
}

// Sets the alphabet window every text is validated against.
func (b *TextSetBuilder) Alphabet(a Alphabet) *TextSetBuilder {
	b.alphabet = a
	return b
}

// Sets the symbol placed between consecutive texts. It must not occur in any text.
func (b *TextSetBuilder) Separator(c byte) *TextSetBuilder {
	b.separator = c
	return b
}

// Skips the range-minimum structure over the LCP array, see Builder.SkipRMQ.
func (b *TextSetBuilder) SkipRMQ() *TextSetBuilder {
	b.useRMQ = false
	return b
}

// Skips the document listing structures construction.
// This makes the step of finding which texts contain a pattern into a naive algorithm,
// which can take up to O(|S|) time in the worst case.
// Saves O(|S|) memory: doesn't use 2*|S| extra memory.
// Most useful if the number of matched texts is small or the number of wanted matched texts is small.
// Trade-off: FindKMatches is slower, but you spend less memory.
func (b *TextSetBuilder) SkipDocListing() *TextSetBuilder {
	b.useDocListing = false
	return b
}

func (b *TextSetBuilder) Build() (*TextSet, error) {
	for _, text := range b.texts {
		if err := b.alphabet.Check(text); err != nil {
			return nil, err
		}
	}
	if err := checkSeparator(b.alphabet, b.separator, b.texts...); err != nil {
		return nil, err
	}

	joined := strings.Join(b.texts, string([]byte{b.separator}))
	sa := buildSuffixArray(joined, Bytes, b.useRMQ)
	textIndex, starts := buildTextIndex(b.texts, len(joined))

	var prev []int
	var prevRMQ *rmq.RMQHybridNaive[int]
	if b.useDocListing && len(joined) > 0 {
		prev = buildPrevArray(sa.order, textIndex, len(b.texts))
		prevRMQ = rmq.NewRMQHybridNaive(prev)
	}
	return &TextSet{
		texts:     b.texts,
		alphabet:  b.alphabet,
		separator: b.separator,
		sa:        sa,
		textIndex: textIndex,
		starts:    starts,
		prev:      prev,
		prevRMQ:   prevRMQ,
	}, nil
}

// TextSet is a generalized suffix array over several texts joined by a
// separator. It answers which texts contain a pattern and where.
type TextSet struct {
	texts     []string
	alphabet  Alphabet
	separator byte
	sa        *SuffixArray
	textIndex []int
	starts    []int
	prev      []int
	prevRMQ   *rmq.RMQHybridNaive[int]
}

// Occurrence is a match position relative to the start of one text of a set.
type Occurrence struct {
	Text   int
	Offset int
}

// buildTextIndex maps every offset of the joined text to the text it belongs
// to. A separator belongs to the text that follows it.
func buildTextIndex(texts []string, n int) (textIndex, starts []int) {
	textIndex = make([]int, n)
	starts = make([]int, len(texts))
	pos := 0
	for i, text := range texts {
		if i > 0 {
			textIndex[pos] = i
			pos++
		}
		starts[i] = pos
		for range len(text) {
			textIndex[pos] = i
			pos++
		}
	}
	return textIndex, starts
}

// Builds the prev array for the doc listing problem.
// For each index i in the suffix array, prev[i] is the index of the previous index of the same text in the suffix array.
// If there is no previous index of the same text, prev[i] is -1.
func buildPrevArray(order, textIndex []int, numTexts int) []int {
	prev := make([]int, len(order))
	textPrev := make([]int, numTexts)
	for i := range textPrev {
		textPrev[i] = -1
	}

	for i, p := range order {
		prev[i] = textPrev[textIndex[p]]
		textPrev[textIndex[p]] = i
	}

	return prev
}

func (s *TextSet) Len() int {
	return len(s.texts)
}

// validPattern reports whether pattern can match at all: a symbol outside the
// alphabet or the separator itself never occurs inside a text.
func (s *TextSet) validPattern(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		if c := pattern[i]; c == s.separator || !s.alphabet.Contains(c) {
			return false
		}
	}
	return true
}

// FindKMatches returns the indices of at most k distinct texts containing pattern.
func (s *TextSet) FindKMatches(pattern string, k int) []int {
	if k <= 0 || !s.validPattern(pattern) {
		return nil
	}
	k = min(k, len(s.texts))
	if pattern == "" {
		matches := make([]int, k)
		for i := range matches {
			matches[i] = i
		}
		return matches
	}

	// Every position in [l, r) matches the pattern.
	l, r := s.sa.findBoundaries(pattern)
	if l == r {
		return nil
	}

	matches := make([]int, 0, k)
	if s.prev != nil {
		return s.recursiveFindKMatches(l, l, r-1, k, matches)
	}

	usedText := make(map[int]bool)
	for i := l; i < r && len(matches) < k; i++ {
		text := s.textIndex[s.sa.order[i]]
		if usedText[text] {
			continue
		}
		usedText[text] = true
		matches = append(matches, text)
	}
	return matches
}

func (s *TextSet) FindKMatchesString(pattern string, k int) []string {
	matchesIdx := s.FindKMatches(pattern, k)
	matches := make([]string, len(matchesIdx))
	for i := range matches {
		matches[i] = s.texts[matchesIdx[i]]
	}
	return matches
}

func (s *TextSet) recursiveFindKMatches(baseL, l, r, k int, matches []int) []int {
	if k <= len(matches) || l > r {
		return matches
	}

	// prev[p] < l, since if prev[p] >= l, prev[p] ∈ [l, r] and we would have prev[prev[p]] < prev[p], a contradiction.
	p := s.prevRMQ.Query(l, r)

	// nothing in [l, r] is outside of the original l anymore, no more new elements.
	if s.prev[p] >= baseL {
		return matches
	}
	matches = append(matches, s.textIndex[s.sa.order[p]])
	matches = s.recursiveFindKMatches(baseL, l, p-1, k, matches)
	return s.recursiveFindKMatches(baseL, p+1, r, k, matches)
}

// Locate returns every occurrence of pattern, sorted by text and offset.
func (s *TextSet) Locate(pattern string) []Occurrence {
	if !s.validPattern(pattern) {
		return nil
	}
	var occ []Occurrence
	for _, p := range s.sa.BinarySearch(pattern) {
		if s.sa.text[p] == s.separator {
			continue
		}
		text := s.textIndex[p]
		occ = append(occ, Occurrence{Text: text, Offset: p - s.starts[text]})
	}
	slices.SortFunc(occ, func(a, b Occurrence) int {
		if c := cmp.Compare(a.Text, b.Text); c != 0 {
			return c
		}
		return cmp.Compare(a.Offset, b.Offset)
	})
	return occ
}
