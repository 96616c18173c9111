package views

import (
	"github.com/de-tools/promo-atlas/pkg/models/domain"
	"github.com/de-tools/promo-atlas/pkg/services/session"
)

// applyFilters keeps the records matching every active filter dimension the
// view declares and the dataset carries. Dimensions are AND-combined; values
// within a dimension are OR-combined. A dimension whose canonical field is
// absent from the dataset is ignored for that dataset, not an error.
// Selections outside the declared dimensions never apply, which keeps the
// result a function of exactly the state the view's memo key covers.
func applyFilters(ds *domain.Dataset, state domain.FilterState, dimensions []string) []domain.CanonicalRecord {
	type predicate struct {
		field   string
		allowed map[string]bool
	}

	var preds []predicate
	dateFilter := false
	for _, dim := range dimensions {
		if dim == domain.DimensionDateRange {
			dateFilter = state.DateRange != nil && ds.HasField("start_date") && ds.HasField("end_date")
			continue
		}
		vals := state.Selection(dim)
		if len(vals) == 0 {
			continue
		}
		field, ok := session.DimensionField(dim)
		if !ok || !ds.HasField(field) {
			continue
		}
		allowed := make(map[string]bool, len(vals))
		for _, v := range vals {
			allowed[v] = true
		}
		preds = append(preds, predicate{field: field, allowed: allowed})
	}

	if len(preds) == 0 && !dateFilter {
		return ds.Records
	}

	out := make([]domain.CanonicalRecord, 0, len(ds.Records))
	for _, rec := range ds.Records {
		pass := true
		for _, p := range preds {
			if !p.allowed[rec.Fields[p.field].Text()] {
				pass = false
				break
			}
		}
		if pass && dateFilter {
			start, okS := rec.Fields["start_date"].AsDate()
			end, okE := rec.Fields["end_date"].AsDate()
			pass = okS && okE && state.DateRange.Overlaps(start, end)
		}
		if pass {
			out = append(out, rec)
		}
	}
	return out
}

// join merges fields from the right dataset into matching left records on
// equality of the join key. Left rows without a match and right rows never
// matched are excluded and counted.
func join(left []domain.CanonicalRecord, right *domain.Dataset, clause JoinClause) ([]domain.CanonicalRecord, domain.JoinStats) {
	index := make(map[string]domain.CanonicalRecord, len(right.Records))
	for _, rec := range right.Records {
		key := rec.Fields[clause.Key].Text()
		if key == "" {
			continue
		}
		// First occurrence wins; duplicates on the right would otherwise
		// silently multiply left rows.
		if _, taken := index[key]; !taken {
			index[key] = rec
		}
	}

	var stats domain.JoinStats
	matched := make(map[string]bool, len(index))
	out := make([]domain.CanonicalRecord, 0, len(left))

	for _, rec := range left {
		key := rec.Fields[clause.Key].Text()
		r, ok := index[key]
		if key == "" || !ok {
			stats.UnmatchedLeft++
			continue
		}
		matched[key] = true

		merged := domain.CanonicalRecord{
			Fields: make(map[string]domain.Value, len(rec.Fields)+len(clause.Fields)),
			Extra:  rec.Extra,
		}
		for name, v := range rec.Fields {
			merged.Fields[name] = v
		}
		for _, name := range clause.Fields {
			merged.Fields[name] = r.Fields[name]
		}
		out = append(out, merged)
	}

	for key := range index {
		if !matched[key] {
			stats.UnmatchedRight++
		}
	}
	return out, stats
}
