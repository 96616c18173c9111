package csvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/promo-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestStore_Fetch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dim_stores.csv",
		" Store Name ,city\nS1,Berlin\nS2,Hamburg\n")

	store := New(dir, nil)
	table, err := store.Fetch(context.Background(), domain.KindStore)
	require.NoError(t, err)

	assert.Equal(t, []string{"Store Name", "city"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "S1", table.Rows[0]["Store Name"])
	assert.Equal(t, "Hamburg", table.Rows[1]["city"])
}

func TestStore_FetchShortRowsPadEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dim_products.csv",
		"product_code,product_name,category\nP1,Cookies\n")

	store := New(dir, nil)
	table, err := store.Fetch(context.Background(), domain.KindProduct)
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Cookies", table.Rows[0]["product_name"])
	assert.Equal(t, "", table.Rows[0]["category"])
}

func TestStore_FetchMissingFile(t *testing.T) {
	store := New(t.TempDir(), nil)

	_, err := store.Fetch(context.Background(), domain.KindCampaign)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dim_campaigns.csv")
}

func TestStore_FetchUnconfiguredKind(t *testing.T) {
	store := New(t.TempDir(), map[domain.DatasetKind]string{})

	_, err := store.Fetch(context.Background(), domain.KindEvent)
	require.Error(t, err)
}

func TestStore_FetchEmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "city_sales.csv", "")

	store := New(dir, nil)
	_, err := store.Fetch(context.Background(), domain.KindCitySales)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header")
}

func TestDefaultFiles_CoverAllKinds(t *testing.T) {
	files := DefaultFiles()
	for _, kind := range domain.AllKinds() {
		assert.NotEmpty(t, files[kind], "kind %s has no default file", kind)
	}
}
