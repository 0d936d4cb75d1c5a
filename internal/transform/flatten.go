package transform

// Flatten converts a nested mapping into a flat one whose keys are the
// dot-joined path from the root to each leaf. Leaf values, including lists,
// nulls and empty mappings, are copied unchanged. Paths are unique by
// construction, so keys cannot collide. Input is assumed acyclic (it comes
// from decoded JSON).
func Flatten(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	flattenInto(out, "", m)
	return out
}

// FlattenRecord is Flatten applied to a Record.
func FlattenRecord(r Record) Record {
	return Record(Flatten(r))
}

func flattenInto(out map[string]any, prefix string, m map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok && len(nested) > 0 {
			flattenInto(out, key, nested)
			continue
		}
		out[key] = v
	}
}
