package suffixkit

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	// alphabet27 leaves room for the unique terminator '{' after 'z'.
	alphabet27 = Alphabet{Size: 27, Base: 'a'}
	alphabet29 = Alphabet{Size: 29, Base: 'a'}
)

const (
	terminator = "{"        // 'a' + 26
	outsider   = byte('|') // 'a' + 27
)

// dpLRS is the O(n^2) longest repeated substring. dp[q][w] is the length of the
// longest common suffix of s[:q] and s[:w]; ties go to the greatest end.
func dpLRS(s string) string {
	n := len(s) + 1
	dp := make([][]int, n)
	for i := range dp {
		dp[i] = make([]int, n)
	}
	bestLen, bestEnd := 0, 0
	for q := 1; q < n; q++ {
		for w := q + 1; w < n; w++ {
			if s[q-1] == s[w-1] {
				dp[q][w] = dp[q-1][w-1] + 1
			}
			if dp[q][w] > bestLen || (dp[q][w] == bestLen && w > bestEnd) {
				bestLen, bestEnd = dp[q][w], w
			}
		}
	}
	return s[bestEnd-bestLen : bestEnd]
}

func mustTree(t *testing.T, text string, a Alphabet) *SuffixTree {
	t.Helper()
	st, err := NewSuffixTree(text, a)
	require.NoError(t, err)
	return st
}

func TestSuffixTreeShape(t *testing.T) {
	texts := append(slices.Clone(testTexts), randomTexts(9, 100, 30, "abc")...)
	for _, text := range texts {
		for _, s := range []string{text, text + terminator} {
			st := mustTree(t, s, alphabet27)

			assert.Equal(t, naiveOrder(s), st.Leaves(), "text=%q", s)
			assert.LessOrEqual(t, st.NodeCount(), 2*len(s)+1)

			for v, nd := range st.nodes {
				if v != root {
					assert.Greater(t, nd.depth, st.nodes[nd.parent].depth)
					assert.Contains(t, st.nodes[nd.parent].children, v)
				}
				if nd.suffix >= 0 {
					assert.Equal(t, len(s)-nd.suffix, nd.depth)
				} else if v != root {
					assert.GreaterOrEqual(t, len(nd.children), 2)
				}
				var firsts []byte
				for _, c := range nd.children {
					firsts = append(firsts, s[st.nodes[c].span+nd.depth])
				}
				assert.True(t, slices.IsSorted(firsts))
				assert.Equal(t, len(firsts), len(slices.Compact(slices.Clone(firsts))))
			}
		}
	}
}

func TestSuffixTreeTerminatedLeaves(t *testing.T) {
	for _, text := range testTexts {
		st := mustTree(t, text+terminator, alphabet27)
		for _, nd := range st.nodes {
			assert.Equal(t, nd.suffix >= 0, len(nd.children) == 0)
		}
	}
}

func TestSuffixTreeHasSubstr(t *testing.T) {
	for _, s := range testTexts {
		t.Run(s, func(t *testing.T) {
			st := mustTree(t, s, alphabet27)
			for q := 0; q < st.Len(); q++ {
				for w := 1; q+w < st.Len()+1; w++ {
					pat := s[q : q+w]
					assert.True(t, st.HasSubstr(pat), pat)

					fail := pat + string(outsider)
					assert.False(t, st.HasSubstr(fail), fail)

					fail2 := pat[:len(pat)/2] + string(outsider) + pat[len(pat)/2:]
					assert.False(t, st.HasSubstr(fail2), fail2)
				}
			}
			assert.True(t, st.HasSubstr(""))
			assert.False(t, st.HasSubstr(s+"a"+s+"z"))
		})
	}
}

func TestSuffixTreeSearchAll(t *testing.T) {
	texts := append(slices.Clone(testTexts), randomTexts(10, 40, 25, "ab")...)
	for _, s := range texts {
		t.Run(s, func(t *testing.T) {
			y := s + terminator
			st := mustTree(t, y, alphabet27)
			for q := 0; q < len(y); q++ {
				for w := 1; q+w < len(y); w++ {
					pat := s[q : q+w]
					got := st.SearchAll(pat)
					assert.ElementsMatch(t, naiveOccurrences(s, pat), got, pat)
					for _, o := range got {
						assert.Equal(t, pat, y[o:o+len(pat)])
					}
				}
			}
			assert.Len(t, st.SearchAll(""), len(y))
			assert.Empty(t, st.SearchAll(s+"b"+terminator))

			// without the terminator the suffixes ending inside the tree count too
			bare := mustTree(t, s, alphabet27)
			for q := 0; q < len(s); q++ {
				for w := q + 1; w <= len(s); w++ {
					assert.ElementsMatch(t, naiveOccurrences(s, s[q:w]), bare.SearchAll(s[q:w]))
				}
			}
		})
	}
}

func TestSuffixTreeLRS(t *testing.T) {
	texts := append(slices.Clone(testTexts), randomTexts(11, 200, 30, "abc")...)
	texts = append(texts, randomTexts(12, 50, 60, "ab")...)
	for _, s := range texts {
		exp := dpLRS(s)

		st := mustTree(t, s+terminator, alphabet27)
		assert.Equal(t, exp, st.LRS(), "lrs(%q)", s)
		assert.Equal(t, exp, st.LRSDFS(), "lrs_dfs(%q)", s)

		bare := mustTree(t, s, alphabet27)
		assert.Equal(t, exp, bare.LRS(), "lrs(%q)", s)
		assert.Equal(t, exp, bare.LRSDFS(), "lrs_dfs(%q)", s)
	}
}

func TestSuffixTreeScenarios(t *testing.T) {
	st := mustTree(t, "aaaaa", Lowercase)
	assert.Equal(t, "aaaa", st.LRS())
	assert.Equal(t, "aaaa", st.LRSDFS())

	st = mustTree(t, "abcabcdcabx", Lowercase)
	assert.Equal(t, "cab", st.LRS())
	assert.False(t, st.HasSubstr("xyz"))
	assert.Empty(t, st.SearchAll("xyz"))

	st = mustTree(t, "abcdefg", Lowercase)
	assert.Equal(t, "", st.LRS())
	assert.Equal(t, "", st.LRSDFS())

	empty := mustTree(t, "", Lowercase)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 1, empty.NodeCount())
	assert.True(t, empty.HasSubstr(""))
	assert.False(t, empty.HasSubstr("a"))
	assert.Empty(t, empty.SearchAll(""))
	assert.Empty(t, empty.SearchAll("a"))
	assert.Empty(t, empty.Leaves())
	assert.Equal(t, "", empty.LRS())
	assert.Equal(t, "", empty.LRSDFS())

	single := mustTree(t, "q", Lowercase)
	assert.Equal(t, "", single.LRS())
	assert.Equal(t, []int{0}, single.SearchAll("q"))
}

func TestTreeLCSSubstrings(t *testing.T) {
	cfg := Config{Alphabet: alphabet29, Separator: '}'}
	uc := string(outsider)
	for _, s := range testTexts {
		t.Run(s, func(t *testing.T) {
			for q := 0; q < len(s); q++ {
				for w := q + 1; w <= len(s); w++ {
					pat := s[q:w]
					got, err := TreeLCS(s, pat, cfg)
					require.NoError(t, err)
					assert.Equal(t, pat, got)

					got, err = TreeLCS(s, uc+pat, cfg)
					require.NoError(t, err)
					assert.Equal(t, pat, got)
				}
			}
			got, err := TreeLCS(s, uc, cfg)
			require.NoError(t, err)
			assert.Equal(t, "", got)
		})
	}
}

func TestSuffixTreeAlphabet(t *testing.T) {
	_, err := NewSuffixTree("abc"+terminator, Lowercase)
	assert.ErrorIs(t, err, ErrAlphabet)

	st, err := NewBuilder("abc" + terminator).Alphabet(alphabet27).BuildSuffixTree()
	require.NoError(t, err)
	assert.Equal(t, alphabet27, st.Alphabet())
	assert.Equal(t, "abc"+terminator, st.Text())
}

func TestSuffixTreeDeterministic(t *testing.T) {
	opt := cmp.AllowUnexported(node{})
	for _, text := range append(slices.Clone(testTexts), randomTexts(13, 20, 80, "abc")...) {
		a := mustTree(t, text, Lowercase)
		b := mustTree(t, text, Lowercase)
		if diff := cmp.Diff(a.nodes, b.nodes, opt); diff != "" {
			t.Errorf("rebuilt tree of %q differs (-first +second):\n%s", text, diff)
		}

		sa, err := NewSuffixArray(text, Lowercase)
		require.NoError(t, err)
		if diff := cmp.Diff(a.nodes, FromSuffixArray(sa).nodes, opt); diff != "" {
			t.Errorf("tree from suffix array of %q differs (-direct +from array):\n%s", text, diff)
		}
	}
}
