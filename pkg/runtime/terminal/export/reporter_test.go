package export

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/de-tools/promo-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleView() *domain.FilteredView {
	return &domain.FilteredView{
		Name:    "revenue_by_store",
		Columns: []string{"store_id", "city", "revenue_after"},
		Rows: []domain.ViewRow{
			{
				"store_id":      domain.StringValue("S1"),
				"city":          domain.StringValue("Berlin"),
				"revenue_after": domain.NumberValue(400),
			},
			{
				"store_id":      domain.StringValue("S2"),
				"city":          domain.StringValue("Hamburg"),
				"revenue_after": domain.NumberValue(125.5),
			},
		},
		Join: &domain.JoinStats{UnmatchedLeft: 1},
	}
}

func TestReporter_Handle(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	require.NoError(t, reporter.Handle(sampleView()))
	out := buf.String()

	assert.Contains(t, out, "revenue_by_store (2 rows)")
	assert.Contains(t, out, "join: 1 unmatched left, 0 unmatched right")
	assert.Contains(t, out, "store_id")
	assert.Contains(t, out, "Berlin")
	assert.Contains(t, out, "125.5")
}

func TestReporter_HandleTruncatesWideCells(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	view := &domain.FilteredView{
		Name:    "explorer_product",
		Columns: []string{"product_name"},
		Rows: []domain.ViewRow{
			{"product_name": domain.StringValue(strings.Repeat("x", 40))},
		},
	}
	require.NoError(t, reporter.Handle(view))

	assert.NotContains(t, buf.String(), strings.Repeat("x", 30))
	assert.Contains(t, buf.String(), "…")
}

func TestReporter_HandleTruncatesOnRuneBoundaries(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	view := &domain.FilteredView{
		Name:    "city_map_points",
		Columns: []string{"city"},
		Rows: []domain.ViewRow{
			{"city": domain.StringValue("München" + strings.Repeat("ü", 30))},
		},
	}
	require.NoError(t, reporter.Handle(view))

	out := buf.String()
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, "München")
	assert.Contains(t, out, "…")
}

func TestReporter_HandleCSV(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	require.NoError(t, reporter.HandleCSV(sampleView()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "store_id,city,revenue_after", lines[0])
	assert.Equal(t, "S1,Berlin,400", lines[1])
	assert.Equal(t, "S2,Hamburg,125.5", lines[2])
}
