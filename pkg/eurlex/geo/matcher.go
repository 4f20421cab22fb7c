package geo

import (
	"regexp"
	"sort"
)

// exclusions overrides matching for names that also occur inside longer
// compounds with a different referent. RE2 has no lookaround, so each
// override names the compound phrase whose whole-word occurrences are
// counted separately and subtracted from the plain count — equivalent to
// the lookbehind/lookahead formulation for whole-word matching. Kept as an
// explicit table so new cases can be added and tested independently.
var exclusions = map[string]string{
	"Balkans":       `\bWestern Balkans\b`,
	"Sudan":         `\bSouth Sudan\b`,
	"Mediterranean": `\bSouthern Mediterranean\b`,
	"Vatican":       `\bVatican City\b`,
	"Czech":         `\bCzech Republic\b`,
	"Swiss":         `\bSwiss Confederation\b`,
	"Palestinian":   `\bPalestinian Territor`, // Territory and Territories
}

// pattern is one compiled gazetteer name.
type pattern struct {
	name    string
	re      *regexp.Regexp
	exclude *regexp.Regexp // nil when the name has no curated exclusion
}

// Matcher counts whole-word, case-insensitive occurrences of gazetteer
// names in text. It is compiled once from a Table and is read-only
// afterwards, so a single Matcher can serve any number of calls.
type Matcher struct {
	patterns []pattern
}

// NewMatcher compiles a matcher from the gazetteer table. Names are
// deduplicated across aggregation keys: a name shared by two keys (some
// capitals are named like their country) is compiled and matched once.
func NewMatcher(table Table) *Matcher {
	set := make(map[string]struct{})
	for _, names := range table {
		for _, n := range names {
			set[n] = struct{}{}
		}
	}

	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)

	m := &Matcher{patterns: make([]pattern, 0, len(names))}
	for _, n := range names {
		p := pattern{
			name: n,
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(n) + `\b`),
		}
		if excl, ok := exclusions[n]; ok {
			p.exclude = regexp.MustCompile(`(?i)` + excl)
		}
		m.patterns = append(m.patterns, p)
	}
	return m
}

// Match counts the non-overlapping occurrences of every known name in
// text. Only names with at least one occurrence appear in the result,
// keyed by the plain name, not by the aggregation key.
func (m *Matcher) Match(text string) map[string]int {
	counts := make(map[string]int)
	for _, p := range m.patterns {
		n := len(p.re.FindAllStringIndex(text, -1))
		if p.exclude != nil {
			n -= len(p.exclude.FindAllStringIndex(text, -1))
		}
		if n > 0 {
			counts[p.name] = n
		}
	}
	return counts
}
