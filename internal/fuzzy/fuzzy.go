// Package fuzzy provides an order-independent token-set similarity ratio.
package fuzzy

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

var nonAlphanumeric = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Ratio scores the similarity of two strings as an integer 0..100.
type Ratio func(a, b string) int

// TokenSetRatio compares two strings by their token sets, ignoring token
// order and duplication. Both strings are split into unique sorted tokens;
// the score is the best plain ratio among the shared-token string and each
// side's shared-plus-remainder string. Empty input scores 0.
func TokenSetRatio(a, b string) int {
	tokensA := tokenSet(a)
	tokensB := tokenSet(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	var shared, onlyA, onlyB []string
	for token := range tokensA {
		if tokensB[token] {
			shared = append(shared, token)
		} else {
			onlyA = append(onlyA, token)
		}
	}
	for token := range tokensB {
		if !tokensA[token] {
			onlyB = append(onlyB, token)
		}
	}
	sort.Strings(shared)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	base := strings.Join(shared, " ")
	combinedA := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	best := plainRatio(base, combinedA)
	if r := plainRatio(base, combinedB); r > best {
		best = r
	}
	if r := plainRatio(combinedA, combinedB); r > best {
		best = r
	}
	return best
}

// plainRatio is the Levenshtein similarity of two strings scaled to 0..100.
func plainRatio(a, b string) int {
	lensum := len([]rune(a)) + len([]rune(b))
	if lensum == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * float64(lensum-dist) / float64(lensum)))
}

func tokenSet(s string) map[string]bool {
	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, " ")

	set := make(map[string]bool)
	for _, token := range strings.Fields(s) {
		set[token] = true
	}
	return set
}
