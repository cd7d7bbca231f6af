package reconcile

import "strings"

// Ratio computes the Gestalt pattern-matching similarity of two strings:
// the longest contiguous matching block is found, the search recurses on
// the unmatched left and right remainders, and the result is
// 2*M/(len(a)+len(b)) where M is the total length of matched blocks.
// Lengths are counted in runes. Two empty strings have no matchable
// content and score 0. The function is symmetric and returns 1 only for
// identical inputs.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 0
	}
	m := matchedLen(ra, rb)
	return 2 * float64(m) / float64(total)
}

// Scorer scores raw names against each other: both sides are normalized
// and case-folded before the Gestalt ratio is taken, so "Andijon tumani"
// and "Andijon shahri" score 1.0. Original casing is untouched; callers
// keep the raw strings for reporting.
type Scorer struct {
	norm *Normalizer
}

// NewScorer builds a Scorer around the given Normalizer.
func NewScorer(n *Normalizer) *Scorer {
	return &Scorer{norm: n}
}

// Similarity returns the ratio of the case-folded normalized forms of a
// and b, in [0,1].
func (s *Scorer) Similarity(a, b string) float64 {
	return Ratio(s.fold(a), s.fold(b))
}

func (s *Scorer) fold(raw string) string {
	return strings.ToLower(s.norm.Normalize(raw))
}

// matchedLen sums the lengths of all matching blocks between a and b.
func matchedLen(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	ai, bi, size := longestBlock(a, b)
	if size == 0 {
		return 0
	}
	return size + matchedLen(a[:ai], b[:bi]) + matchedLen(a[ai+size:], b[bi+size:])
}

// longestBlock finds the longest contiguous block common to a and b.
// Ties go to the block starting earliest in a, then earliest in b.
func longestBlock(a, b []rune) (ai, bi, size int) {
	j2len := make(map[int]int)
	for i := range a {
		next := make(map[int]int)
		for j := range b {
			if a[i] != b[j] {
				continue
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > size {
				ai, bi, size = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return ai, bi, size
}
