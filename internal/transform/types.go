package transform

import "sort"

// Record is a single opportunity as returned by the SAM.gov API. The field
// set is not fixed; it is whatever the upstream response carried, so records
// stay schema-less maps rather than a static struct.
type Record map[string]any

// RecordSet is an ordered sequence of records with potentially heterogeneous
// key sets. Fields missing from a given record are simply absent.
type RecordSet []Record

// Fields returns the sorted union of all keys across the set.
func (rs RecordSet) Fields() []string {
	seen := make(map[string]struct{})
	for _, r := range rs {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	fields := make([]string, 0, len(seen))
	for k := range seen {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

// HasField reports whether any record in the set carries the key.
func (rs RecordSet) HasField(name string) bool {
	for _, r := range rs {
		if _, ok := r[name]; ok {
			return true
		}
	}
	return false
}
