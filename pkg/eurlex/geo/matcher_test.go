package geo

import (
	"testing"
)

func testMatcher() *Matcher {
	return NewMatcher(Table{
		"Sudan":       {"Sudan", "Khartoum", "Sudanese"},
		"Vatican":     {"Vatican"},
		"Luxembourg":  {"Luxembourg", "Luxembourg", "Luxembourgish"},
		"Switzerland": {"Switzerland", "Bern", "Swiss"},
	})
}

func TestMatchWholeWord(t *testing.T) {
	m := NewMatcher(Table{"Sudan": {"Sudan"}})

	counts := m.Match("the Sudanese crisis")
	if counts["Sudan"] != 0 {
		t.Errorf("Sudan should not match inside Sudanese, got %d", counts["Sudan"])
	}
}

func TestMatchCaseInsensitive(t *testing.T) {
	m := NewMatcher(Table{"Sudan": {"Sudan"}})

	counts := m.Match("sanctions against SUDAN and sudan")
	if counts["Sudan"] != 2 {
		t.Errorf("Expected 2 case-insensitive matches, got %d", counts["Sudan"])
	}
}

func TestMatchDisambiguation(t *testing.T) {
	m := testMatcher()

	// The qualified occurrence is excluded.
	counts := m.Match("South Sudan and Sudan")
	if counts["Sudan"] != 1 {
		t.Errorf("Expected exactly 1 Sudan match, got %d", counts["Sudan"])
	}

	counts = m.Match("a visit to South Sudan")
	if counts["Sudan"] != 0 {
		t.Errorf("South Sudan alone should not match Sudan, got %d", counts["Sudan"])
	}
}

func TestMatchSuffixDisambiguation(t *testing.T) {
	m := testMatcher()

	counts := m.Match("the Vatican City delegation")
	if counts["Vatican"] != 0 {
		t.Errorf("Vatican City should not match Vatican, got %d", counts["Vatican"])
	}

	counts = m.Match("the Vatican announced")
	if counts["Vatican"] != 1 {
		t.Errorf("Bare Vatican should match once, got %d", counts["Vatican"])
	}

	counts = m.Match("the Swiss Confederation and the Swiss franc")
	if counts["Swiss"] != 1 {
		t.Errorf("Only the unqualified Swiss should match, got %d", counts["Swiss"])
	}
}

func TestMatchOnlyPositiveCounts(t *testing.T) {
	m := testMatcher()

	counts := m.Match("a text about Khartoum")
	if len(counts) != 1 || counts["Khartoum"] != 1 {
		t.Errorf("Only matched names should appear, got %v", counts)
	}
}

func TestNameDeduplicationAcrossKeys(t *testing.T) {
	// Luxembourg appears as both country and capital under one key, and
	// under a second key as well: it must compile and count once.
	m := NewMatcher(Table{
		"Luxembourg": {"Luxembourg", "Luxembourg"},
		"Benelux":    {"Luxembourg", "Brussels"},
	})

	compiled := 0
	for _, p := range m.patterns {
		if p.name == "Luxembourg" {
			compiled++
		}
	}
	if compiled != 1 {
		t.Fatalf("Luxembourg compiled %d times, want 1", compiled)
	}

	counts := m.Match("an agreement signed in Luxembourg")
	if counts["Luxembourg"] != 1 {
		t.Errorf("Expected a single count, got %d", counts["Luxembourg"])
	}
}

func TestMatcherReusable(t *testing.T) {
	m := testMatcher()

	first := m.Match("Sudan")
	second := m.Match("Sudan")
	if first["Sudan"] != 1 || second["Sudan"] != 1 {
		t.Error("A compiled matcher should be reusable across calls")
	}
}
