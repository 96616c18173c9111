package session

import "github.com/de-tools/promo-atlas/pkg/models/domain"

// DefaultDimensions declares the shipped filter dimensions. Each dimension's
// valid domain is the distinct values of a canonical field in the named
// dataset, so out-of-domain selections are rejected instead of clamped.
func DefaultDimensions() []domain.FilterDimension {
	return []domain.FilterDimension{
		{Name: "campaign", Kind: domain.KindCampaign, Field: "campaign_id"},
		{Name: "category", Kind: domain.KindProduct, Field: "category"},
		{Name: "product", Kind: domain.KindProduct, Field: "product_name"},
		{Name: "promo_type", Kind: domain.KindEvent, Field: "promo_type"},
		{Name: "city", Kind: domain.KindStore, Field: "city"},
	}
}

// DimensionField maps a filter dimension name to the canonical field it
// filters on. Views consult this when applying predicates; datasets lacking
// the field ignore the dimension.
func DimensionField(name string) (string, bool) {
	switch name {
	case "campaign":
		return "campaign_id", true
	case "category":
		return "category", true
	case "product":
		return "product_name", true
	case "promo_type":
		return "promo_type", true
	case "city":
		return "city", true
	}
	return "", false
}
