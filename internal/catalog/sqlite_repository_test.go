package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snackshop/storefront/internal/catalog"
)

func setupTestRepo(t *testing.T) *catalog.SQLiteRepository {
	// Use in-memory database for tests
	repo, err := catalog.NewSQLiteRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.RunMigrations())
	return repo
}

func TestGetAllProducts_ReturnsSeededCatalog(t *testing.T) {
	repo := setupTestRepo(t)

	products, err := repo.GetAllProducts(context.Background())
	require.NoError(t, err)

	assert.Len(t, products, 12)

	// Seed order is by id
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Salted Pretzels", products[0].Name)
	assert.Equal(t, catalog.CategorySnacks, products[0].Category)
	assert.Equal(t, "3.5", products[0].UnitPrice.String())
}

func TestGetProduct_ReturnsProduct(t *testing.T) {
	repo := setupTestRepo(t)

	product, err := repo.GetProduct(context.Background(), 11)
	require.NoError(t, err)

	assert.Equal(t, "Party Mix Box", product.Name)
	assert.Equal(t, catalog.CategorySnacks, product.Category)
	assert.Equal(t, "29", product.UnitPrice.String())
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.GetProduct(context.Background(), 9999)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestGetAllProducts_CancelledContext(t *testing.T) {
	repo := setupTestRepo(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GetAllProducts(ctx)
	assert.Error(t, err)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	repo := setupTestRepo(t)

	// A second run is a no-op, not an error
	require.NoError(t, repo.RunMigrations())
}
