package transform

import (
	"reflect"
	"testing"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]any
		expected map[string]any
	}{
		{
			name:     "nested map gets dot-joined keys",
			input:    map[string]any{"a": map[string]any{"b": 1, "c": 2}},
			expected: map[string]any{"a.b": 1, "a.c": 2},
		},
		{
			name: "deep nesting",
			input: map[string]any{
				"placeOfPerformance": map[string]any{
					"city": map[string]any{"name": "Austin"},
					"zip":  "78701",
				},
			},
			expected: map[string]any{
				"placeOfPerformance.city.name": "Austin",
				"placeOfPerformance.zip":       "78701",
			},
		},
		{
			name:     "lists and nulls are leaves",
			input:    map[string]any{"links": []any{"a", "b"}, "x": nil},
			expected: map[string]any{"links": []any{"a", "b"}, "x": nil},
		},
		{
			name:     "empty nested map is a leaf",
			input:    map[string]any{"award": map[string]any{}},
			expected: map[string]any{"award": map[string]any{}},
		},
		{
			name:     "empty input",
			input:    map[string]any{},
			expected: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatten(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFlattenIdempotent(t *testing.T) {
	flat := map[string]any{"a.b": 1, "a.c": 2, "title": "x"}
	again := Flatten(flat)
	if !reflect.DeepEqual(again, flat) {
		t.Errorf("flattening a flat map changed it: %v", again)
	}
}
