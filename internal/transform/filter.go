package transform

import (
	"fmt"
	"strings"
	"time"
)

// SetAsideBlank is the sentinel accepted value that matches records whose
// typeOfSetAside is null or empty, in addition to any literal codes selected
// alongside it.
const SetAsideBlank = "blank"

// Filter is a named, pure predicate over a RecordSet. Apply must preserve
// the relative order of surviving rows and never add rows. The returned
// warnings are informational (e.g. a filter that turned itself into a no-op
// because its field is absent from the whole set).
type Filter struct {
	Name  string
	Apply func(RecordSet) (RecordSet, []string)
}

// ChainResult is the outcome of running a filter chain.
type ChainResult struct {
	Records   RecordSet
	Warnings  []string
	EmptiedBy string // name of the filter that emptied the set, "" if none
}

// NoMatches reports whether the chain ended with zero surviving records.
func (c ChainResult) NoMatches() bool {
	return len(c.Records) == 0
}

// ApplyChain runs the filters sequentially (AND semantics). The moment any
// filter empties the set the chain halts and records which filter did it;
// an empty result is an outcome, not an error.
func ApplyChain(rs RecordSet, filters []Filter) ChainResult {
	res := ChainResult{Records: rs}
	for _, f := range filters {
		out, warns := f.Apply(res.Records)
		res.Warnings = append(res.Warnings, warns...)
		res.Records = out
		if len(out) == 0 {
			res.EmptiedBy = f.Name
			break
		}
	}
	return res
}

// NAICSPrefix keeps records whose naicsCode, in string form, starts with the
// given prefix. Records with a missing or null code are excluded. If the
// field is absent from the entire set the filter is a no-op and warns
// instead of failing.
func NAICSPrefix(prefix string) Filter {
	return Filter{
		Name: "naics-prefix",
		Apply: func(rs RecordSet) (RecordSet, []string) {
			if !rs.HasField("naicsCode") {
				return rs, []string{"naicsCode field not present in results; NAICS filter skipped"}
			}
			var out RecordSet
			for _, r := range rs {
				code, ok := stringField(r, "naicsCode")
				if ok && strings.HasPrefix(code, prefix) {
					out = append(out, r)
				}
			}
			return out, nil
		},
	}
}

// SetAside keeps records whose typeOfSetAside is one of the accepted codes.
// The SetAsideBlank sentinel additionally matches null/empty values; the
// match is an OR across the sentinel and the literal codes. An empty
// accepted set yields the identity filter.
func SetAside(accepted []string) Filter {
	matchBlank := false
	codes := make(map[string]struct{}, len(accepted))
	for _, c := range accepted {
		if c == SetAsideBlank {
			matchBlank = true
			continue
		}
		codes[c] = struct{}{}
	}
	return Filter{
		Name: "set-aside",
		Apply: func(rs RecordSet) (RecordSet, []string) {
			if !matchBlank && len(codes) == 0 {
				return rs, nil
			}
			var out RecordSet
			for _, r := range rs {
				val, ok := stringField(r, "typeOfSetAside")
				blank := !ok || val == ""
				if blank && matchBlank {
					out = append(out, r)
					continue
				}
				if _, accept := codes[val]; !blank && accept {
					out = append(out, r)
				}
			}
			return out, nil
		},
	}
}

// DeadlineOnOrAfter keeps records whose responseDeadLine parses to a time at
// or after the given date, interpreted at midnight UTC. Records with
// missing or unparseable deadlines are excluded.
func DeadlineOnOrAfter(day time.Time) Filter {
	cutoff := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return Filter{
		Name: "deadline",
		Apply: func(rs RecordSet) (RecordSet, []string) {
			var out RecordSet
			for _, r := range rs {
				raw, ok := stringField(r, "responseDeadLine")
				if !ok {
					continue
				}
				t, err := ParseDeadline(raw)
				if err != nil {
					continue
				}
				if !t.Before(cutoff) {
					out = append(out, r)
				}
			}
			return out, nil
		},
	}
}

// deadlineLayouts covers the timestamp shapes SAM.gov has been seen to emit.
var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDeadline parses a response-deadline timestamp, normalized to UTC.
func ParseDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty deadline")
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse deadline: %s", s)
}
