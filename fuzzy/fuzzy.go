// Package fuzzy scores string similarity on a 0..100 scale using
// SequenceMatcher ratios from go-difflib.
package fuzzy

import (
	"math"

	"github.com/pmezard/go-difflib/difflib"
)

// Ratio returns the whole-string similarity of a and b.
// Equal strings score 100; an empty string scores 0 against anything else.
func Ratio(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	return percent(ratio(chars(a), chars(b)))
}

// PartialRatio returns the similarity of the shorter string to its
// best-aligned substring of the longer one. It scores 100 whenever the
// shorter string occurs verbatim in the longer.
func PartialRatio(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}

	shorter, longer := chars(a), chars(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	m := difflib.NewMatcher(shorter, longer)
	best := 0.0
	for _, block := range m.GetMatchingBlocks() {
		start := block.B - block.A
		if start < 0 {
			start = 0
		}
		end := start + len(shorter)
		if end > len(longer) {
			end = len(longer)
		}

		r := ratio(shorter, longer[start:end])
		if r > 0.995 {
			return 100
		}
		if r > best {
			best = r
		}
	}
	return percent(best)
}

func ratio(a, b []string) float64 {
	return difflib.NewMatcher(a, b).Ratio()
}

func percent(r float64) int {
	return int(math.Round(100 * r))
}

// chars splits s into single-character elements for the matcher.
func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
