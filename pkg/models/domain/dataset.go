package domain

import "sort"

// RawTable is one input file as read from disk: an ordered header plus rows
// of raw column name to untyped cell. Consumed immediately by normalization.
type RawTable struct {
	Columns []string
	Rows    []map[string]string
}

// CanonicalRecord maps canonical field names to typed values. Columns the
// alias map does not know are preserved under their raw name in Extra so
// schema drift stays visible downstream.
type CanonicalRecord struct {
	Fields map[string]Value
	Extra  map[string]string
}

// Dataset is the canonical form of one dataset kind. Immutable after
// construction; shared read-only across sessions.
type Dataset struct {
	Kind       DatasetKind
	FieldNames []string
	Records    []CanonicalRecord

	// Excluded counts raw rows dropped for missing required values.
	Excluded int
	// UnmappedColumns lists raw headers no alias resolved, in header order.
	UnmappedColumns []string
}

// HasField reports whether the dataset carries a canonical field.
func (d *Dataset) HasField(name string) bool {
	for _, f := range d.FieldNames {
		if f == name {
			return true
		}
	}
	return false
}

// DistinctStrings returns the sorted distinct string values of a field.
// Used to derive filter dimension domains.
func (d *Dataset) DistinctStrings(field string) []string {
	seen := make(map[string]bool)
	for _, rec := range d.Records {
		if s, ok := rec.Fields[field].AsString(); ok && s != "" {
			seen[s] = true
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
