package adapters

import (
	"testing"
	"time"

	"github.com/de-tools/promo-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapFilterStateToAPI(t *testing.T) {
	state := domain.FilterState{
		SessionID:  "abc",
		Version:    3,
		Selections: map[string][]string{"campaign": {"C1", "C2"}},
		DateRange: &domain.DateRange{
			Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	out := MapFilterStateToAPI(state)
	assert.Equal(t, "abc", out.SessionID)
	assert.EqualValues(t, 3, out.Version)
	assert.Equal(t, []string{"C1", "C2"}, out.Selections["campaign"])
	assert.Equal(t, "2024-01-01", out.DateStart)
	assert.Equal(t, "2024-03-31", out.DateEnd)

	// The API copy is detached from the domain state.
	out.Selections["campaign"][0] = "mutated"
	assert.Equal(t, "C1", state.Selections["campaign"][0])
}

func TestMapFilteredViewToAPI(t *testing.T) {
	view := &domain.FilteredView{
		Name:    "city_map_points",
		Columns: []string{"city", "lat", "opened"},
		Rows: []domain.ViewRow{
			{
				"city":   domain.StringValue("Berlin"),
				"lat":    domain.NumberValue(52.52),
				"opened": domain.DateValue(time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)),
			},
			{
				"city":   domain.StringValue("Munich"),
				"lat":    domain.Missing(),
				"opened": domain.Missing(),
			},
		},
		Join:         &domain.JoinStats{UnmatchedRight: 2},
		StateVersion: 7,
	}

	out := MapFilteredViewToAPI(view)
	assert.Equal(t, "city_map_points", out.Name)
	assert.EqualValues(t, 7, out.StateVersion)
	require.NotNil(t, out.Join)
	assert.Equal(t, 2, out.Join.UnmatchedRight)

	require.Len(t, out.Rows, 2)
	assert.Equal(t, "Berlin", out.Rows[0]["city"])
	assert.Equal(t, 52.52, out.Rows[0]["lat"])
	assert.Equal(t, "2023-06-15", out.Rows[0]["opened"])
	assert.Nil(t, out.Rows[1]["lat"])
}

func TestMapDatasetToInfo(t *testing.T) {
	ds := &domain.Dataset{
		Kind:     domain.KindProduct,
		Records:  []domain.CanonicalRecord{{}, {}},
		Excluded: 1,
	}

	info := MapDatasetToInfo(domain.KindProduct, ds, true)
	assert.Equal(t, "product", info.Kind)
	assert.True(t, info.Loaded)
	assert.Equal(t, 2, info.Records)
	assert.Equal(t, 1, info.Excluded)

	unloaded := MapDatasetToInfo(domain.KindStore, nil, false)
	assert.False(t, unloaded.Loaded)
	assert.Zero(t, unloaded.Records)
}
