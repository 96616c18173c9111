package domain

import (
	"sort"
	"strings"
	"time"
)

// DateRange is an inclusive [Start, End] window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether [start, end] intersects the range.
func (r DateRange) Overlaps(start, end time.Time) bool {
	return !start.After(r.End) && !end.Before(r.Start)
}

// FilterState is an immutable point-in-time snapshot of a session's filters.
// Updates produce a new snapshot with a higher Version; stale reads are
// detectable by comparing versions.
type FilterState struct {
	SessionID  string
	Version    uint64
	Selections map[string][]string
	DateRange  *DateRange
}

// Selection returns the selected values for a dimension, nil when unset.
func (s FilterState) Selection(dimension string) []string {
	return s.Selections[dimension]
}

func (s FilterState) Has(dimension string) bool {
	return len(s.Selections[dimension]) > 0
}

func (s FilterState) IsEmpty() bool {
	if s.DateRange != nil {
		return false
	}
	for _, vals := range s.Selections {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy suitable for mutation into the next snapshot.
func (s FilterState) Clone() FilterState {
	next := FilterState{
		SessionID:  s.SessionID,
		Version:    s.Version,
		Selections: make(map[string][]string, len(s.Selections)),
	}
	for dim, vals := range s.Selections {
		next.Selections[dim] = append([]string(nil), vals...)
	}
	if s.DateRange != nil {
		r := *s.DateRange
		next.DateRange = &r
	}
	return next
}

// Fingerprint serializes the selections for the given dimensions into a
// stable key. Two states that agree on every listed dimension produce the
// same fingerprint regardless of version, which lets view memoization skip
// recomputation when an update touched unrelated dimensions.
func (s FilterState) Fingerprint(dimensions []string) string {
	var b strings.Builder
	for _, dim := range dimensions {
		if dim == DimensionDateRange {
			b.WriteString(dim)
			b.WriteByte('=')
			if s.DateRange != nil {
				b.WriteString(s.DateRange.Start.Format("2006-01-02"))
				b.WriteByte(',')
				b.WriteString(s.DateRange.End.Format("2006-01-02"))
			}
			b.WriteByte(';')
			continue
		}
		vals := append([]string(nil), s.Selections[dim]...)
		sort.Strings(vals)
		b.WriteString(dim)
		b.WriteByte('=')
		b.WriteString(strings.Join(vals, ","))
		b.WriteByte(';')
	}
	return b.String()
}

// DimensionDateRange is the reserved name of the date-range filter dimension.
const DimensionDateRange = "date_range"

// FilterDimension declares one recognized filter dimension: its name, the
// dataset kind whose values form its valid domain and the canonical field
// it filters on.
type FilterDimension struct {
	Name  string
	Kind  DatasetKind
	Field string
}
