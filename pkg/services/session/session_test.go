package session

import (
	"context"
	"testing"

	"github.com/de-tools/promo-atlas/pkg/models/domain"
	"github.com/de-tools/promo-atlas/pkg/services/aliases"
	"github.com/de-tools/promo-atlas/pkg/services/normalizer"
	"github.com/de-tools/promo-atlas/pkg/services/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tableSource struct {
	tables map[domain.DatasetKind]*domain.RawTable
}

func (s *tableSource) Fetch(_ context.Context, kind domain.DatasetKind) (*domain.RawTable, error) {
	return s.tables[kind], nil
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	src := &tableSource{tables: map[domain.DatasetKind]*domain.RawTable{
		domain.KindCampaign: {
			Columns: []string{"campaign_id", "campaign_name"},
			Rows: []map[string]string{
				{"campaign_id": "C1", "campaign_name": "Summer"},
				{"campaign_id": "C2", "campaign_name": "Winter"},
			},
		},
		domain.KindProduct: {
			Columns: []string{"product_code", "product_name", "category"},
			Rows: []map[string]string{
				{"product_code": "P1", "product_name": "Cookies", "category": "Snacks"},
				{"product_code": "P2", "product_name": "Soda", "category": "Drinks"},
			},
		},
		domain.KindEvent: {
			Columns: []string{"event_id", "promo_type"},
			Rows: []map[string]string{
				{"event_id": "E1", "promo_type": "BOGO"},
			},
		},
		domain.KindStore: {
			Columns: []string{"store_id", "city"},
			Rows: []map[string]string{
				{"store_id": "S1", "city": "Berlin"},
			},
		},
	}}
	reg := registry.New(src, normalizer.New(aliases.Default()))
	return NewManager(reg, DefaultDimensions())
}

func TestSession_UpdateValidSelection(t *testing.T) {
	m := newTestManager(t)
	s := m.Create()

	state, err := s.Update(context.Background(), "campaign", []string{"C1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"C1"}, state.Selection("campaign"))
	assert.EqualValues(t, 1, state.Version)

	// Replacing the selection keeps only the new values.
	state, err = s.Update(context.Background(), "campaign", []string{"C2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"C2"}, state.Selection("campaign"))
	assert.EqualValues(t, 2, state.Version)
}

func TestSession_UnrecognizedDimensionRejected(t *testing.T) {
	m := newTestManager(t)
	s := m.Create()

	before := s.Snapshot()
	_, err := s.Update(context.Background(), "aisle", []string{"A7"})
	require.Error(t, err)
	assert.True(t, domain.IsInvalidFilter(err))

	after := s.Snapshot()
	assert.Equal(t, before.Version, after.Version)
	assert.True(t, after.IsEmpty())
}

func TestSession_OutOfDomainValueRejected(t *testing.T) {
	m := newTestManager(t)
	s := m.Create()

	_, err := s.Update(context.Background(), "campaign", []string{"C1", "C99"})
	require.Error(t, err)
	assert.True(t, domain.IsInvalidFilter(err))
	assert.Contains(t, err.Error(), "C99")

	// No partial application: the valid value was not kept either.
	assert.Empty(t, s.Snapshot().Selection("campaign"))
}

func TestSession_EmptyValuesClearDimension(t *testing.T) {
	m := newTestManager(t)
	s := m.Create()

	_, err := s.Update(context.Background(), "city", []string{"Berlin"})
	require.NoError(t, err)

	state, err := s.Update(context.Background(), "city", nil)
	require.NoError(t, err)
	assert.Empty(t, state.Selection("city"))
	assert.True(t, state.IsEmpty())
	assert.EqualValues(t, 2, state.Version)
}

func TestSession_DateRange(t *testing.T) {
	m := newTestManager(t)
	s := m.Create()

	state, err := s.Update(context.Background(), domain.DimensionDateRange, []string{"2024-01-01", "2024-03-31"})
	require.NoError(t, err)
	require.NotNil(t, state.DateRange)
	assert.Equal(t, "2024-01-01", state.DateRange.Start.Format("2006-01-02"))

	tests := []struct {
		name   string
		values []string
	}{
		{name: "single bound", values: []string{"2024-01-01"}},
		{name: "bad start", values: []string{"first of may", "2024-05-31"}},
		{name: "end before start", values: []string{"2024-06-01", "2024-01-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Update(context.Background(), domain.DimensionDateRange, tt.values)
			require.Error(t, err)
			assert.True(t, domain.IsInvalidFilter(err))
		})
	}

	// The valid range survives all rejected updates.
	require.NotNil(t, s.Snapshot().DateRange)

	state, err = s.Update(context.Background(), domain.DimensionDateRange, nil)
	require.NoError(t, err)
	assert.Nil(t, state.DateRange)
}

func TestSession_Reset(t *testing.T) {
	m := newTestManager(t)
	s := m.Create()

	_, err := s.Update(context.Background(), "campaign", []string{"C1"})
	require.NoError(t, err)
	_, err = s.Update(context.Background(), "category", []string{"Snacks"})
	require.NoError(t, err)

	state := s.Reset()
	assert.True(t, state.IsEmpty())
	assert.Nil(t, state.DateRange)
	assert.EqualValues(t, 3, state.Version)
}

func TestSession_SnapshotUnaffectedByLaterUpdates(t *testing.T) {
	m := newTestManager(t)
	s := m.Create()

	_, err := s.Update(context.Background(), "campaign", []string{"C1"})
	require.NoError(t, err)
	snap := s.Snapshot()

	_, err = s.Update(context.Background(), "campaign", []string{"C2"})
	require.NoError(t, err)

	assert.Equal(t, []string{"C1"}, snap.Selection("campaign"))
	assert.EqualValues(t, 1, snap.Version)
}

func TestManager_GetSession(t *testing.T) {
	m := newTestManager(t)
	s := m.Create()

	found, ok := m.Get(s.Snapshot().SessionID)
	require.True(t, ok)
	assert.Same(t, s, found)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestManager_DimensionsKeepDeclarationOrder(t *testing.T) {
	m := newTestManager(t)

	dims := m.Dimensions()
	require.Len(t, dims, 5)
	names := make([]string, len(dims))
	for i, d := range dims {
		names[i] = d.Name
	}
	assert.Equal(t, []string{"campaign", "category", "product", "promo_type", "city"}, names)
}

func TestDimensionField(t *testing.T) {
	tests := []struct {
		dimension string
		field     string
	}{
		{dimension: "campaign", field: "campaign_id"},
		{dimension: "category", field: "category"},
		{dimension: "product", field: "product_name"},
		{dimension: "promo_type", field: "promo_type"},
		{dimension: "city", field: "city"},
	}
	for _, tt := range tests {
		t.Run(tt.dimension, func(t *testing.T) {
			field, ok := DimensionField(tt.dimension)
			require.True(t, ok)
			assert.Equal(t, tt.field, field)
		})
	}

	_, ok := DimensionField("aisle")
	assert.False(t, ok)
}
