// Package normalizer maps free-text builder names and locations onto a small set of
// canonical labels so that search and grouping survive inconsistent spelling.
//
// Matching is substring containment over an ordered rule list. The first rule whose
// keyword occurs in the lower-cased, trimmed input wins, so a specific keyword must
// precede any shorter keyword it contains ("ats homekraft" before "ats").
package normalizer

import "strings"

type Rule struct {
	Keyword   string
	Canonical string
}

// BuilderName returns the canonical builder for raw, or raw itself when nothing matches.
func BuilderName(raw string) string {
	return apply(builderRules, raw)
}

// Location returns the canonical location for raw, or raw itself when nothing matches.
func Location(raw string) string {
	return apply(locationRules, raw)
}

func BuilderRules() []Rule {
	return append([]Rule(nil), builderRules...)
}

func LocationRules() []Rule {
	return append([]Rule(nil), locationRules...)
}

// Canonicals lists the distinct canonical labels of rules in first-seen order.
func Canonicals(rules []Rule) []string {
	seen := make(map[string]struct{}, len(rules))
	var out []string
	for _, r := range rules {
		if _, ok := seen[r.Canonical]; ok {
			continue
		}
		seen[r.Canonical] = struct{}{}
		out = append(out, r.Canonical)
	}
	return out
}

func apply(rules []Rule, raw string) string {
	if raw == "" {
		return raw
	}

	working := matchKey(raw)
	if working == "" {
		return raw
	}

	for _, r := range rules {
		if strings.Contains(working, r.Keyword) {
			return r.Canonical
		}
	}
	return raw
}

func matchKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
