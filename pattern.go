package swi

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern isolates a value inside a noisy raw string: it skips Leading
// characters, drops Trailing characters and removes every character listed
// in Exclude from what remains. Offsets count characters, not bytes.
type Pattern struct {
	Leading  int    `json:"leading"`
	Trailing int    `json:"trailing"`
	Exclude  string `json:"exclude,omitempty"`
}

// Apply returns the part of raw selected by the pattern, trimmed.
// An empty result means the pattern does not fit raw.
func (p *Pattern) Apply(raw string) string {
	runes := []rune(strings.TrimSpace(raw))
	end := len(runes) - p.Trailing
	if p.Leading < 0 || p.Trailing < 0 || p.Leading >= end {
		return ""
	}
	window := runes[p.Leading:end]
	if p.Exclude == "" {
		return strings.TrimSpace(string(window))
	}

	var sb strings.Builder
	for _, r := range window {
		if !strings.ContainsRune(p.Exclude, r) {
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}

// String renders the equivalent look-around regular expression.
func (p *Pattern) String() string {
	capture := "(.+)"
	if p.Exclude != "" {
		var sb strings.Builder
		for _, r := range p.Exclude {
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
		capture = "([^" + sb.String() + "]+)"
	}
	return fmt.Sprintf("(?<=.{%d})%s(?=.{%d})", p.Leading, capture, p.Trailing)
}

// Simplify applies p to raw. A missing pattern or an empty match falls
// back to the trimmed raw value so that a located value is never dropped.
func Simplify(p *Pattern, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if p == nil {
		return trimmed
	}
	if v := p.Apply(trimmed); v != "" {
		return v
	}
	return trimmed
}
