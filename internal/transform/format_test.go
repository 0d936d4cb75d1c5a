package transform

import "testing"

func TestFormatPlaceOfPerformance(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{
			name: "full address",
			input: map[string]any{
				"city":  map[string]any{"name": "Austin"},
				"state": map[string]any{"code": "TX"},
				"zip":   "78701",
			},
			expected: "Austin, TX 78701",
		},
		{
			name: "missing zip",
			input: map[string]any{
				"city":  map[string]any{"name": "Austin"},
				"state": map[string]any{"code": "TX"},
			},
			expected: "Austin, TX N/A",
		},
		{
			name:     "empty structure",
			input:    map[string]any{},
			expected: "Address Unavailable",
		},
		{
			name:     "missing field",
			input:    nil,
			expected: "N/A",
		},
		{
			name:     "wrong type",
			input:    "Washington DC",
			expected: "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPlaceOfPerformance(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFormatDeadline(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{name: "iso timestamp", input: "2025-03-10T17:00:00Z", expected: "2025-03-10 17:00 UTC"},
		{name: "offset timestamp normalized", input: "2025-03-10T12:00:00-05:00", expected: "2025-03-10 17:00 UTC"},
		{name: "unparseable", input: "not-a-date", expected: "Invalid Date"},
		{name: "empty string", input: "", expected: "N/A"},
		{name: "missing", input: nil, expected: "N/A"},
		{name: "non-string", input: float64(20250310), expected: "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDeadline(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestInitialism(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{name: "agency path", input: "Department Of Example Agency", expected: "DOEA"},
		{name: "extra whitespace", input: "  general   services  administration ", expected: "GSA"},
		{name: "non-string", input: 42, expected: ""},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Initialism(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestHyperlinkFormatters(t *testing.T) {
	url := "https://sam.gov/opp/abc123/view"

	display := FormatHyperlink(url)
	if display == url {
		t.Error("display formatter should decorate the URL")
	}
	if RawURL(url) != url {
		t.Errorf("raw formatter must pass the URL through, got %q", RawURL(url))
	}
	if RawURL(nil) != "" {
		t.Error("raw formatter on non-string should be empty")
	}
}

func TestSanitizeText(t *testing.T) {
	in := `Roof Repair <script>alert(1)</script><b>IDIQ</b>`
	got := SanitizeText(in)
	if got != "Roof Repair IDIQ" {
		t.Errorf("expected stripped text, got %q", got)
	}
}
