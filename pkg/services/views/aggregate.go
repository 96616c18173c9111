package views

import (
	"sort"
	"strings"

	"github.com/de-tools/promo-atlas/pkg/models/domain"
)

// aggregation declares a group-by: key fields, summed fields, averaged
// fields and an optional record count column.
type aggregation struct {
	Keys     []string
	Sums     []string
	Avgs     []string
	CountCol string
}

type groupAcc struct {
	keyVals []domain.Value
	sums    map[string]float64
	avgSums map[string]float64
	avgNs   map[string]int
	count   int
}

// groupBy aggregates records and returns rows ordered by the composite
// group key. The sort keeps output stable across reruns regardless of
// record insertion order.
func groupBy(records []domain.CanonicalRecord, agg aggregation) []domain.ViewRow {
	groups := make(map[string]*groupAcc)

	for _, rec := range records {
		parts := make([]string, len(agg.Keys))
		keyVals := make([]domain.Value, len(agg.Keys))
		for i, k := range agg.Keys {
			keyVals[i] = rec.Fields[k]
			parts[i] = keyVals[i].Text()
		}
		key := strings.Join(parts, "\x00")

		acc := groups[key]
		if acc == nil {
			acc = &groupAcc{
				keyVals: keyVals,
				sums:    make(map[string]float64, len(agg.Sums)),
				avgSums: make(map[string]float64, len(agg.Avgs)),
				avgNs:   make(map[string]int, len(agg.Avgs)),
			}
			groups[key] = acc
		}

		acc.count++
		for _, f := range agg.Sums {
			if n, ok := rec.Fields[f].AsNumber(); ok {
				acc.sums[f] += n
			}
		}
		for _, f := range agg.Avgs {
			if n, ok := rec.Fields[f].AsNumber(); ok {
				acc.avgSums[f] += n
				acc.avgNs[f]++
			}
		}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]domain.ViewRow, 0, len(keys))
	for _, k := range keys {
		acc := groups[k]
		row := make(domain.ViewRow, len(agg.Keys)+len(agg.Sums)+len(agg.Avgs)+1)
		for i, f := range agg.Keys {
			row[f] = acc.keyVals[i]
		}
		for _, f := range agg.Sums {
			row[f] = domain.NumberValue(acc.sums[f])
		}
		for _, f := range agg.Avgs {
			if acc.avgNs[f] == 0 {
				row[f] = domain.Missing()
			} else {
				row[f] = domain.NumberValue(acc.avgSums[f] / float64(acc.avgNs[f]))
			}
		}
		if agg.CountCol != "" {
			row[agg.CountCol] = domain.NumberValue(float64(acc.count))
		}
		rows = append(rows, row)
	}
	return rows
}

func sumField(records []domain.CanonicalRecord, field string) float64 {
	var total float64
	for _, rec := range records {
		if n, ok := rec.Fields[field].AsNumber(); ok {
			total += n
		}
	}
	return total
}

// pctChange computes (after-before)/before*100, zero when before is zero.
func pctChange(before, after float64) float64 {
	if before == 0 {
		return 0
	}
	return (after - before) / before * 100
}
