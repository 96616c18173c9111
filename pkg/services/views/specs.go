package views

import (
	"sort"

	"github.com/de-tools/promo-atlas/pkg/models/domain"
)

const (
	ViewKPISummary       = "kpi_summary"
	ViewRevenueByStore   = "revenue_by_store"
	ViewCityMapPoints    = "city_map_points"
	ViewTreemap          = "treemap"
	ViewPromoComboCounts = "promo_combo_counts"
)

// ExplorerView names the canonical pass-through view of one dataset kind.
func ExplorerView(kind domain.DatasetKind) string {
	return "explorer_" + string(kind)
}

var allDimensions = []string{
	"campaign", "category", "product", "promo_type", "city", domain.DimensionDateRange,
}

// DefaultSpecs returns the shipped dashboard views.
func DefaultSpecs() []ViewSpec {
	specs := []ViewSpec{
		{
			Name:       ViewKPISummary,
			Source:     domain.KindCombined,
			Dimensions: allDimensions,
			Compute:    computeKPISummary,
		},
		{
			Name:       ViewRevenueByStore,
			Source:     domain.KindRevenue,
			Join:       &JoinClause{Kind: domain.KindStore, Key: "store_id", Fields: []string{"city"}},
			Dimensions: allDimensions,
			Compute: computeGroupBy(aggregation{
				Keys:     []string{"store_id", "city"},
				Sums:     []string{"revenue_before", "revenue_after", "quantity_before", "quantity_after"},
				CountCol: "events",
			}),
		},
		{
			Name:       ViewCityMapPoints,
			Source:     domain.KindCitySales,
			Dimensions: []string{"city"},
			Compute:    computeCityMapPoints,
		},
		{
			Name:       ViewTreemap,
			Source:     domain.KindCombined,
			Dimensions: allDimensions,
			Compute: computeGroupBy(aggregation{
				Keys: []string{"campaign_id", "product_name", "promo_type"},
				Sums: []string{"revenue_after", "quantity_after"},
				Avgs: []string{"incremental_margin_pct"},
			}),
		},
		{
			Name:       ViewPromoComboCounts,
			Source:     domain.KindCombined,
			Dimensions: allDimensions,
			Compute: computeGroupBy(aggregation{
				Keys:     []string{"campaign_id", "promo_type", "category"},
				CountCol: "count",
			}),
		},
	}

	// Explorer views declare no dimensions: they always show the full
	// canonical dataset regardless of active filters.
	for _, kind := range domain.AllKinds() {
		specs = append(specs, ViewSpec{
			Name:    ExplorerView(kind),
			Source:  kind,
			Compute: computeExplorer,
		})
	}
	return specs
}

func computeGroupBy(agg aggregation) ComputeFunc {
	columns := append([]string{}, agg.Keys...)
	columns = append(columns, agg.Sums...)
	columns = append(columns, agg.Avgs...)
	if agg.CountCol != "" {
		columns = append(columns, agg.CountCol)
	}
	return func(records []domain.CanonicalRecord) ([]string, []domain.ViewRow) {
		return columns, groupBy(records, agg)
	}
}

// computeKPISummary mirrors the dashboard's top KPI cards: revenue and units
// before vs after the promotion plus the incremental percentages.
func computeKPISummary(records []domain.CanonicalRecord) ([]string, []domain.ViewRow) {
	columns := []string{
		"revenue_before", "revenue_after", "ir_pct",
		"quantity_before", "quantity_after", "isu_pct",
	}

	revBefore := sumField(records, "revenue_before")
	revAfter := sumField(records, "revenue_after")
	qtyBefore := sumField(records, "quantity_before")
	qtyAfter := sumField(records, "quantity_after")

	row := domain.ViewRow{
		"revenue_before":  domain.NumberValue(revBefore),
		"revenue_after":   domain.NumberValue(revAfter),
		"ir_pct":          domain.NumberValue(pctChange(revBefore, revAfter)),
		"quantity_before": domain.NumberValue(qtyBefore),
		"quantity_after":  domain.NumberValue(qtyAfter),
		"isu_pct":         domain.NumberValue(pctChange(qtyBefore, qtyAfter)),
	}
	return columns, []domain.ViewRow{row}
}

// computeCityMapPoints feeds the geospatial layer: one point per city,
// ordered by city name.
func computeCityMapPoints(records []domain.CanonicalRecord) ([]string, []domain.ViewRow) {
	columns := []string{"city", "lat", "lng", "total_quantity"}

	rows := make([]domain.ViewRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, domain.ViewRow{
			"city":           rec.Fields["city"],
			"lat":            rec.Fields["lat"],
			"lng":            rec.Fields["lng"],
			"total_quantity": rec.Fields["total_quantity"],
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i]["city"].Text() < rows[j]["city"].Text()
	})
	return columns, rows
}

// computeExplorer passes canonical records through unaggregated, including
// unmapped pass-through columns, for the data explorer page.
func computeExplorer(records []domain.CanonicalRecord) ([]string, []domain.ViewRow) {
	fieldSeen := make(map[string]bool)
	extraSeen := make(map[string]bool)
	var fields, extras []string

	for _, rec := range records {
		for name := range rec.Fields {
			if !fieldSeen[name] {
				fieldSeen[name] = true
				fields = append(fields, name)
			}
		}
		for name := range rec.Extra {
			if !extraSeen[name] {
				extraSeen[name] = true
				extras = append(extras, name)
			}
		}
	}
	sort.Strings(fields)
	sort.Strings(extras)
	columns := append(fields, extras...)

	rows := make([]domain.ViewRow, 0, len(records))
	for _, rec := range records {
		row := make(domain.ViewRow, len(columns))
		for _, name := range fields {
			row[name] = rec.Fields[name]
		}
		for _, name := range extras {
			if raw, ok := rec.Extra[name]; ok {
				row[name] = domain.StringValue(raw)
			} else {
				row[name] = domain.Missing()
			}
		}
		rows = append(rows, row)
	}
	return columns, rows
}
