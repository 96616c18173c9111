package aliases

import "github.com/de-tools/promo-atlas/pkg/models/domain"

const defaultDateLayout = "2006-01-02"

// Default returns the built-in alias map covering the shipped dataset kinds.
// It mirrors the historical spellings seen in the source extracts, including
// the inconsistent quantity_sold paren spacing and the percent-suffixed
// metric headers.
func Default() *Map {
	m, err := NewMap(defaultSchemas())
	if err != nil {
		// The built-in table is validated by tests; a bad entry is a bug.
		panic(err)
	}
	return m
}

func defaultSchemas() []KindSchema {
	eventFields := []FieldSpec{
		{Name: "event_id", Required: true},
		{Name: "store_id"},
		{Name: "campaign_id"},
		{Name: "product_code"},
		{Name: "base_price", Type: FieldNumber},
		{Name: "promo_type"},
		{Name: "quantity_before", Type: FieldNumber, Aliases: []string{
			"quantity_sold (before_promo)", "quantity_sold(before_promo)",
		}},
		{Name: "quantity_after", Type: FieldNumber, Aliases: []string{
			"quantity_sold (after_promo)", "quantity_sold(after_promo)",
		}},
	}

	revenueFields := append(append([]FieldSpec{}, eventFields...),
		FieldSpec{Name: "city"},
		FieldSpec{Name: "total_quantity", Type: FieldNumber, Aliases: []string{"total_quantity_sold"}},
		FieldSpec{Name: "product_name"},
		FieldSpec{Name: "promo_discount", Type: FieldNumber},
		FieldSpec{Name: "revenue_before", Type: FieldNumber, Aliases: []string{"revenue_before_promo"}},
		FieldSpec{Name: "revenue_after", Type: FieldNumber, Aliases: []string{"revenue_after_promo"}},
	)

	combinedFields := append(append([]FieldSpec{}, revenueFields...),
		FieldSpec{Name: "category"},
		FieldSpec{Name: "incremental_revenue", Type: FieldNumber, Aliases: []string{
			"Incremental Revenue", "inc_revenue",
		}},
		FieldSpec{Name: "incremental_margin_pct", Type: FieldNumber, Aliases: []string{
			"incremental_margin%", "incremental_margin %",
		}},
		FieldSpec{Name: "ir_pct", Type: FieldNumber, Aliases: []string{"ir%", "ir_percent_calc"}},
		FieldSpec{Name: "isu_pct", Type: FieldNumber, Aliases: []string{"isu%", "isu_percent"}},
		FieldSpec{Name: "margin_efficiency", Type: FieldNumber},
		FieldSpec{Name: "promo_category"},
	)

	return []KindSchema{
		{
			Kind:       string(domain.KindCampaign),
			DateLayout: defaultDateLayout,
			Fields: []FieldSpec{
				{Name: "campaign_id", Required: true, Aliases: []string{"campaign"}},
				{Name: "campaign_name"},
				{Name: "start_date", Type: FieldDate},
				{Name: "end_date", Type: FieldDate},
			},
		},
		{
			Kind:       string(domain.KindProduct),
			DateLayout: defaultDateLayout,
			Fields: []FieldSpec{
				{Name: "product_code", Required: true},
				{Name: "product_name", Aliases: []string{"product"}},
				{Name: "category", Aliases: []string{"product_category"}},
			},
		},
		{
			Kind:       string(domain.KindStore),
			DateLayout: defaultDateLayout,
			Fields: []FieldSpec{
				{Name: "store_id", Required: true, Aliases: []string{"store", "store name", "store_name"}},
				{Name: "city"},
			},
		},
		{
			Kind:       string(domain.KindEvent),
			DateLayout: defaultDateLayout,
			Fields:     eventFields,
		},
		{
			Kind:       string(domain.KindRevenue),
			DateLayout: defaultDateLayout,
			Fields:     revenueFields,
		},
		{
			Kind:       string(domain.KindCitySales),
			DateLayout: defaultDateLayout,
			Fields: []FieldSpec{
				{Name: "city", Required: true},
				{Name: "location"},
				{Name: "total_quantity", Type: FieldNumber, Aliases: []string{"total_quantity_sold"}},
				{Name: "lat", Type: FieldGeo, Required: true, Aliases: []string{"latitude"}},
				{Name: "lng", Type: FieldGeo, Required: true, Aliases: []string{"longitude", "lon"}},
				{Name: "quantity_before", Type: FieldNumber, Aliases: []string{"quantity_before_promo"}},
				{Name: "quantity_after", Type: FieldNumber, Aliases: []string{"quantity_after_promo"}},
			},
		},
		{
			Kind:       string(domain.KindCombined),
			DateLayout: defaultDateLayout,
			Fields:     combinedFields,
		},
	}
}
