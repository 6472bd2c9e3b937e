package induct

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/fwojciec/swi"
)

// Derive synthesizes a pattern that isolates target inside raw.
//
// It searches the window of raw that contains every character of target
// in order and has the smallest edit distance to it; ties go to the
// earliest and then shortest window. The pattern skips the characters
// before the window, drops those after it, and removes from the window the
// characters that do not occur in target.
//
// Returns EALIGNMENT when no reliable pattern exists: raw is empty, target
// does not occur in raw as an ordered subsequence, target is long and raw
// much longer, or the pattern would discard raw entirely.
func Derive(target, raw string) (*swi.Pattern, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, swi.Errorf(swi.EALIGNMENT, "empty raw value")
	}
	if target == "" {
		return nil, swi.Errorf(swi.EALIGNMENT, "empty target value")
	}

	t, r := []rune(target), []rune(raw)
	if len(t) > 50 && len(r) > 5*len(t) {
		return nil, swi.Errorf(swi.EALIGNMENT, "raw value too long to align %d characters", len(t))
	}
	if !inOrder(t, r) {
		return nil, swi.Errorf(swi.EALIGNMENT, "target characters do not occur in order")
	}

	start, end := alignWindow(t, r)
	p := &swi.Pattern{
		Leading:  start,
		Trailing: len(r) - end,
		Exclude:  noise(t, r[start:end]),
	}
	if p.Apply(raw) == "" {
		return nil, swi.Errorf(swi.EALIGNMENT, "pattern %s discards the value", p)
	}
	return p, nil
}

// alignWindow scans every window of r at least as long as t, left to right
// and by increasing length, and returns the first one with the smallest
// edit distance among those containing t in order.
func alignWindow(t, r []rune) (start, end int) {
	target := string(t)
	best := -1
	start, end = 0, len(r)
	for i := 0; i+len(t) <= len(r); i++ {
		// No later window can contain t once this suffix does not.
		if !inOrder(t, r[i:]) {
			break
		}
		for j := i + len(t); j <= len(r); j++ {
			window := r[i:j]
			if !inOrder(t, window) {
				continue
			}
			d := levenshtein.ComputeDistance(target, string(window))
			if best < 0 || d < best {
				best, start, end = d, i, j
			}
		}
	}
	return start, end
}

// inOrder reports whether every character of t occurs in s in order.
func inOrder(t, s []rune) bool {
	i := 0
	for _, c := range s {
		if i == len(t) {
			break
		}
		if c == t[i] {
			i++
		}
	}
	return i == len(t)
}

// noise returns the distinct characters of window absent from t, in order
// of first occurrence.
func noise(t, window []rune) string {
	in := make(map[rune]bool, len(t))
	for _, c := range t {
		in[c] = true
	}
	var sb strings.Builder
	seen := make(map[rune]bool)
	for _, c := range window {
		if in[c] || seen[c] {
			continue
		}
		seen[c] = true
		sb.WriteRune(c)
	}
	return sb.String()
}
