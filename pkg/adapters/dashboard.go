// Package adapters maps domain models to their API representations.
package adapters

import (
	"github.com/de-tools/promo-atlas/pkg/models/api"
	"github.com/de-tools/promo-atlas/pkg/models/domain"
)

func MapFilterStateToAPI(state domain.FilterState) api.FilterState {
	out := api.FilterState{
		SessionID:  state.SessionID,
		Version:    state.Version,
		Selections: map[string][]string{},
	}
	for dim, vals := range state.Selections {
		out.Selections[dim] = append([]string(nil), vals...)
	}
	if state.DateRange != nil {
		out.DateStart = state.DateRange.Start.Format("2006-01-02")
		out.DateEnd = state.DateRange.End.Format("2006-01-02")
	}
	return out
}

func MapFilteredViewToAPI(view *domain.FilteredView) api.View {
	out := api.View{
		Name:         view.Name,
		Columns:      append([]string(nil), view.Columns...),
		Rows:         make([]map[string]any, 0, len(view.Rows)),
		StateVersion: view.StateVersion,
	}
	if view.Join != nil {
		out.Join = &api.JoinStats{
			UnmatchedLeft:  view.Join.UnmatchedLeft,
			UnmatchedRight: view.Join.UnmatchedRight,
		}
	}
	for _, row := range view.Rows {
		cells := make(map[string]any, len(row))
		for _, col := range view.Columns {
			cells[col] = valueToAny(row[col])
		}
		out.Rows = append(out.Rows, cells)
	}
	return out
}

func MapDimensionsToAPI(dims []domain.FilterDimension) []api.Dimension {
	out := make([]api.Dimension, 0, len(dims))
	for _, d := range dims {
		out = append(out, api.Dimension{
			Name:  d.Name,
			Kind:  string(d.Kind),
			Field: d.Field,
		})
	}
	return out
}

func MapDatasetToInfo(kind domain.DatasetKind, ds *domain.Dataset, loaded bool) api.DatasetInfo {
	info := api.DatasetInfo{Kind: string(kind), Loaded: loaded}
	if ds != nil {
		info.Records = len(ds.Records)
		info.Excluded = ds.Excluded
	}
	return info
}

func valueToAny(v domain.Value) any {
	switch v.Kind() {
	case domain.ValueNumber:
		n, _ := v.AsNumber()
		return n
	case domain.ValueString:
		s, _ := v.AsString()
		return s
	case domain.ValueDate:
		return v.Text()
	default:
		return nil
	}
}
