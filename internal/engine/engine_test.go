package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RMoulla/search-engine/internal/search"
	"github.com/RMoulla/search-engine/pkg/config"
	apperrors "github.com/RMoulla/search-engine/pkg/errors"
)

const catalogCSV = `product_name,description,selling_price,rating,category,brand
Chaussure Running Homme,Chaussure légère pour la pluie,"89,90","4,5",Sport,Nike
Mug Cadeau Anniversaire,Mug en céramique,12.99,4.0,Maison,Luminarc
Téléphone 5G,Smartphone grand écran,499,3.9,Informatique,Samsung
`

func writeCatalog(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestEngine(t *testing.T) (*Engine, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.csv")
	writeCatalog(t, path, catalogCSV)
	return New(config.CatalogConfig{CSVPath: path}, nil), path
}

func TestEngineLoadAndSearch(t *testing.T) {
	eng, _ := newTestEngine(t)

	assert.False(t, eng.Ready())
	_, err := eng.Current()
	assert.ErrorIs(t, err, apperrors.ErrIndexNotReady)

	require.NoError(t, eng.Load(context.Background()))
	assert.True(t, eng.Ready())

	idx, err := eng.Current()
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())
	assert.Greater(t, idx.BuildTime.Nanoseconds(), int64(0))

	results, diagnostics, err := eng.Search("chaussure pluie", search.Filters{}, 0, false)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Chaussure Running Homme", results[0].Product.Title)
	assert.Equal(t, 3, diagnostics.TotalProducts)

	categories, err := eng.Categories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Informatique", "Maison", "Sport"}, categories)
}

func TestEngineLoadFailureKeepsPreviousIndex(t *testing.T) {
	eng, path := newTestEngine(t)
	require.NoError(t, eng.Load(context.Background()))

	writeCatalog(t, path, "")
	err := eng.Load(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNoHeaders)

	// The previous index stays in service.
	assert.True(t, eng.Ready())
	idx, err := eng.Current()
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())
}

func TestEngineLoadFailureBeforeFirstIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	writeCatalog(t, path, "product_name\n\n")
	eng := New(config.CatalogConfig{CSVPath: path}, nil)

	err := eng.Load(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNoValidRows)

	_, err = eng.Current()
	assert.ErrorIs(t, err, apperrors.ErrIndexNotReady)
	assert.Contains(t, err.Error(), "no valid products")
}

func TestEngineReloadPicksUpNewProducts(t *testing.T) {
	eng, path := newTestEngine(t)
	require.NoError(t, eng.Load(context.Background()))

	results, _, err := eng.Search("veste pluie", search.Filters{}, 0, false)
	require.NoError(t, err)
	for _, r := range results {
		assert.NotEqual(t, "Veste Imperméable Pluie", r.Product.Title)
	}

	writeCatalog(t, path, catalogCSV+"Veste Imperméable Pluie,Veste contre la pluie,\"59,90\",4.1,Sport,Decathlon\n")
	require.NoError(t, eng.Load(context.Background()))

	idx, err := eng.Current()
	require.NoError(t, err)
	assert.Equal(t, 4, idx.Len())

	results, _, err = eng.Search("veste pluie", search.Filters{}, 0, false)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Veste Imperméable Pluie", results[0].Product.Title)
	assert.Equal(t, 3, results[0].Product.ID)
}

func TestEngineColumnOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	writeCatalog(t, path, "sku_label,cost\nChaussure Cuir,120\n")
	eng := New(config.CatalogConfig{
		CSVPath:       path,
		ColumnMapJSON: `{"title": "sku_label"}`,
	}, nil)

	require.NoError(t, eng.Load(context.Background()))
	idx, err := eng.Current()
	require.NoError(t, err)
	require.Equal(t, 1, idx.Len())
	assert.Equal(t, "Chaussure Cuir", idx.Products[0].Title)
	require.NotNil(t, idx.Products[0].Price)
	assert.InDelta(t, 120, *idx.Products[0].Price, 1e-9)
}

func TestEngineMissingTitleColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	writeCatalog(t, path, "sku_label,cost\nChaussure Cuir,120\n")
	eng := New(config.CatalogConfig{CSVPath: path}, nil)

	err := eng.Load(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNoTitleColumn)
}
