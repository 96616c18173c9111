package domain

import "fmt"

// DatasetKind identifies one of the fixed categories of input data.
type DatasetKind string

const (
	KindCampaign  DatasetKind = "campaign"
	KindProduct   DatasetKind = "product"
	KindStore     DatasetKind = "store"
	KindEvent     DatasetKind = "event"
	KindRevenue   DatasetKind = "revenue"
	KindCitySales DatasetKind = "city_sales"
	KindCombined  DatasetKind = "combined"
)

// AllKinds returns every dataset kind in declaration order.
func AllKinds() []DatasetKind {
	return []DatasetKind{
		KindCampaign,
		KindProduct,
		KindStore,
		KindEvent,
		KindRevenue,
		KindCitySales,
		KindCombined,
	}
}

func ParseDatasetKind(s string) (DatasetKind, error) {
	for _, k := range AllKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown dataset kind %q", s)
}
