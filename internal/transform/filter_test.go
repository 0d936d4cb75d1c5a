package transform

import (
	"testing"
	"time"
)

func rec(fields map[string]any) Record { return Record(fields) }

func titles(rs RecordSet) []string {
	var out []string
	for _, r := range rs {
		s, _ := stringField(r, "title")
		out = append(out, s)
	}
	return out
}

func assertTitles(t *testing.T, rs RecordSet, expected ...string) {
	t.Helper()
	got := titles(rs)
	if len(got) != len(expected) {
		t.Fatalf("expected %d records %v, got %v", len(expected), expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("record %d: expected %q, got %q", i, expected[i], got[i])
		}
	}
}

func TestNAICSPrefixFilter(t *testing.T) {
	rs := RecordSet{
		rec(map[string]any{"title": "roofing", "naicsCode": "236220"}),
		rec(map[string]any{"title": "software", "naicsCode": "541511"}),
		rec(map[string]any{"title": "nullcode", "naicsCode": nil}),
		rec(map[string]any{"title": "numeric", "naicsCode": float64(238210)}),
	}

	out, warns := NAICSPrefix("23").Apply(rs)
	if len(warns) != 0 {
		t.Errorf("unexpected warnings: %v", warns)
	}
	assertTitles(t, out, "roofing", "numeric")
}

func TestNAICSPrefixFilterFieldAbsent(t *testing.T) {
	rs := RecordSet{
		rec(map[string]any{"title": "a"}),
		rec(map[string]any{"title": "b"}),
	}

	out, warns := NAICSPrefix("23").Apply(rs)
	if len(warns) != 1 {
		t.Fatalf("expected a warning, got %v", warns)
	}
	assertTitles(t, out, "a", "b")
}

func TestSetAsideFilter(t *testing.T) {
	rs := RecordSet{
		rec(map[string]any{"title": "empty", "typeOfSetAside": ""}),
		rec(map[string]any{"title": "sba", "typeOfSetAside": "SBA"}),
		rec(map[string]any{"title": "8a", "typeOfSetAside": "8A"}),
		rec(map[string]any{"title": "missing"}),
	}

	tests := []struct {
		name     string
		accepted []string
		expected []string
	}{
		{
			name:     "blank sentinel plus literal code",
			accepted: []string{SetAsideBlank, "SBA"},
			expected: []string{"empty", "sba", "missing"},
		},
		{
			name:     "literal code only",
			accepted: []string{"SBA"},
			expected: []string{"sba"},
		},
		{
			name:     "blank sentinel only",
			accepted: []string{SetAsideBlank},
			expected: []string{"empty", "missing"},
		},
		{
			name:     "empty accepted set is identity",
			accepted: nil,
			expected: []string{"empty", "sba", "8a", "missing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := SetAside(tt.accepted).Apply(rs)
			assertTitles(t, out, tt.expected...)
		})
	}
}

func TestDeadlineFilter(t *testing.T) {
	rs := RecordSet{
		rec(map[string]any{"title": "future", "responseDeadLine": "2025-01-15T00:00:00Z"}),
		rec(map[string]any{"title": "past", "responseDeadLine": "2024-12-31T23:59:59Z"}),
		rec(map[string]any{"title": "tbd", "responseDeadLine": "TBD"}),
		rec(map[string]any{"title": "missing"}),
	}

	bound := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out, _ := DeadlineOnOrAfter(bound).Apply(rs)
	assertTitles(t, out, "future")
}

func TestDeadlineFilterOffsetTimestamps(t *testing.T) {
	rs := RecordSet{
		rec(map[string]any{"title": "est", "responseDeadLine": "2025-06-01T17:00:00-04:00"}),
	}
	out, _ := DeadlineOnOrAfter(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)).Apply(rs)
	assertTitles(t, out, "est")
}

func TestApplyChainHaltsWhenEmptied(t *testing.T) {
	rs := RecordSet{
		rec(map[string]any{"title": "a", "naicsCode": "541511", "typeOfSetAside": "SBA"}),
	}

	// The NAICS filter empties the set; the set-aside filter must not run.
	ran := false
	probe := Filter{Name: "probe", Apply: func(in RecordSet) (RecordSet, []string) {
		ran = true
		return in, nil
	}}

	res := ApplyChain(rs, []Filter{NAICSPrefix("23"), probe})
	if !res.NoMatches() {
		t.Fatal("expected no matches")
	}
	if res.EmptiedBy != "naics-prefix" {
		t.Errorf("expected naics-prefix to empty the chain, got %q", res.EmptiedBy)
	}
	if ran {
		t.Error("chain did not halt after the emptying filter")
	}
}

func TestChainPreservesOrderAndNeverGrows(t *testing.T) {
	rs := RecordSet{
		rec(map[string]any{"title": "c", "naicsCode": "236220", "typeOfSetAside": "SBA"}),
		rec(map[string]any{"title": "a", "naicsCode": "238210", "typeOfSetAside": ""}),
		rec(map[string]any{"title": "b", "naicsCode": "236118", "typeOfSetAside": "SBA"}),
	}

	res := ApplyChain(rs, []Filter{NAICSPrefix("23"), SetAside([]string{"SBA"})})
	if len(res.Records) > len(rs) {
		t.Fatalf("filter chain grew the set: %d > %d", len(res.Records), len(rs))
	}
	assertTitles(t, res.Records, "c", "b")
}
