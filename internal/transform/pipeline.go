package transform

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Options selects which filters run for a search invocation.
type Options struct {
	NAICSPrefix string     // empty disables the NAICS filter
	SetAsides   []string   // empty disables the set-aside filter
	DeadlineMin *time.Time // nil disables the deadline filter
}

func (o Options) filters() []Filter {
	var fs []Filter
	if o.NAICSPrefix != "" {
		fs = append(fs, NAICSPrefix(o.NAICSPrefix))
	}
	if len(o.SetAsides) > 0 {
		fs = append(fs, SetAside(o.SetAsides))
	}
	if o.DeadlineMin != nil {
		fs = append(fs, DeadlineOnOrAfter(*o.DeadlineMin))
	}
	return fs
}

// Result is everything one search invocation produced. Visible holds the
// surviving nested records (the display path); Full holds the same records
// flattened to dot-path keys (the bulk-export path). Full is never mutated
// after the pipeline returns.
type Result struct {
	SearchID  uuid.UUID
	Visible   RecordSet
	Full      RecordSet
	Warnings  []string
	EmptiedBy string
	NoMatches bool
}

// Run executes the transformation pipeline: filter the raw records, then
// flatten the survivors for the full-export path. It is a pure function of
// its inputs apart from the generated SearchID.
func Run(raw []map[string]any, opts Options) Result {
	rs := make(RecordSet, 0, len(raw))
	for _, m := range raw {
		rs = append(rs, Record(m))
	}

	res := Result{SearchID: uuid.New()}
	if len(rs) == 0 {
		res.NoMatches = true
		return res
	}

	chain := ApplyChain(rs, opts.filters())
	res.Visible = chain.Records
	res.Warnings = chain.Warnings
	res.EmptiedBy = chain.EmptiedBy
	res.NoMatches = chain.NoMatches()

	res.Full = make(RecordSet, 0, len(chain.Records))
	for _, r := range chain.Records {
		res.Full = append(res.Full, FlattenRecord(r))
	}
	return res
}

// ExportFields returns the full-export column set: the sorted union of
// flattened keys minus any column matching the exclusion list. An exclusion
// entry removes the exact column and any dot-nested children under it.
func ExportFields(full RecordSet, exclude []string) []string {
	var out []string
	for _, f := range full.Fields() {
		if !excluded(f, exclude) {
			out = append(out, f)
		}
	}
	return out
}

func excluded(field string, exclude []string) bool {
	for _, e := range exclude {
		if field == e || strings.HasPrefix(field, e+".") {
			return true
		}
	}
	return false
}
