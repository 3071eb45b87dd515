package impl

import (
	"context"
	"testing"

	"darkstore/config"
	domainerrors "darkstore/internal/domain/errors"
	"darkstore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService(t *testing.T, cfg *config.Config, provider *fakeProvider) (usecase.CatalogUsecase, *testRepos) {
	t.Helper()

	repos := newTestRepos(t)
	catalog := NewCatalogService(CatalogServiceParams{
		ProductRepo: repos.productRepo,
		Provider:    provider,
		Config:      cfg,
		Logger:      testLogger(),
	})

	return catalog, repos
}

func TestCreateProduct_MirrorsAndPersists(t *testing.T) {
	provider := newFakeProvider()
	catalog, repos := newCatalogService(t, testConfig(), provider)

	created := createCatalogProduct(t, catalog, "Down Sleeping Bag", 100.00, 10, 5)

	assert.Equal(t, 1, provider.mirrorCalls)
	assert.InDelta(t, 90.00, created.EffectivePrice, 0.001)

	stored, err := repos.productRepo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "prod_"+created.ID, stored.ExternalProductRef)
	assert.Equal(t, "price_"+created.ID, stored.ExternalPriceRef)
	assert.Equal(t, int64(9000), stored.UnitAmount())
}

func TestCreateProduct_CapacityLimitLeavesStateUntouched(t *testing.T) {
	cfg := testConfig()
	cfg.Catalog.MaxProducts = 2
	provider := newFakeProvider()
	catalog, repos := newCatalogService(t, cfg, provider)

	createCatalogProduct(t, catalog, "One", 10, 0, 1)
	createCatalogProduct(t, catalog, "Two", 20, 0, 1)

	_, err := catalog.CreateProduct(context.Background(), &usecase.CreateProductInput{
		Name: "Three", Price: 30, Category: "outdoor", Brand: "northpine",
	})
	assert.ErrorIs(t, err, domainerrors.ErrCatalogLimitReached)

	count, err := repos.productRepo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, provider.mirrorCalls, "rejected create must not touch the provider")
}

func TestCreateProduct_MirrorFailureStillPersists(t *testing.T) {
	provider := newFakeProvider()
	provider.mirrorErr = assert.AnError
	catalog, repos := newCatalogService(t, testConfig(), provider)

	created := createCatalogProduct(t, catalog, "Unmirrored", 15, 0, 3)

	stored, err := repos.productRepo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ExternalProductRef)
	assert.Empty(t, stored.ExternalPriceRef)
}

func TestListProducts_ReportsRemainingCapacity(t *testing.T) {
	cfg := testConfig()
	cfg.Catalog.MaxProducts = 3
	catalog, _ := newCatalogService(t, cfg, newFakeProvider())

	createCatalogProduct(t, catalog, "One", 10, 0, 1)

	out, err := catalog.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, out.Products, 1)
	assert.Equal(t, 2, out.RemainingCapacity)
}

func TestUpdateProduct_PriceChangeRotatesMirror(t *testing.T) {
	provider := newFakeProvider()
	catalog, repos := newCatalogService(t, testConfig(), provider)

	created := createCatalogProduct(t, catalog, "Mug", 20.00, 0, 5)

	newPrice := 25.00
	_, err := catalog.UpdateProduct(context.Background(), created.ID, &usecase.UpdateProductInput{Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, 1, provider.updateCalls)
	assert.True(t, provider.lastPriceChanged)

	stored, err := repos.productRepo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "price_"+created.ID+"_v2", stored.ExternalPriceRef)
	assert.Equal(t, int64(2500), stored.UnitAmount())
}

func TestUpdateProduct_DiscountChangeAlsoRotates(t *testing.T) {
	provider := newFakeProvider()
	catalog, _ := newCatalogService(t, testConfig(), provider)

	created := createCatalogProduct(t, catalog, "Mug", 20.00, 0, 5)

	discount := 50
	_, err := catalog.UpdateProduct(context.Background(), created.ID, &usecase.UpdateProductInput{Discount: &discount})
	require.NoError(t, err)

	assert.True(t, provider.lastPriceChanged, "discount affects the effective price")
}

func TestUpdateProduct_RenameKeepsPriceRef(t *testing.T) {
	provider := newFakeProvider()
	catalog, repos := newCatalogService(t, testConfig(), provider)

	created := createCatalogProduct(t, catalog, "Mug", 20.00, 0, 5)

	name := "Enamel Mug"
	_, err := catalog.UpdateProduct(context.Background(), created.ID, &usecase.UpdateProductInput{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, 1, provider.updateCalls)
	assert.False(t, provider.lastPriceChanged)

	stored, err := repos.productRepo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Enamel Mug", stored.Name)
	assert.Equal(t, "price_"+created.ID, stored.ExternalPriceRef)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	catalog, _ := newCatalogService(t, testConfig(), newFakeProvider())

	name := "Ghost"
	_, err := catalog.UpdateProduct(context.Background(), "missing", &usecase.UpdateProductInput{Name: &name})
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestDeleteProduct_ArchivesMirror(t *testing.T) {
	provider := newFakeProvider()
	catalog, repos := newCatalogService(t, testConfig(), provider)

	created := createCatalogProduct(t, catalog, "Mug", 20.00, 0, 5)

	require.NoError(t, catalog.DeleteProduct(context.Background(), created.ID))
	assert.Equal(t, "prod_"+created.ID, provider.archivedProductRef)

	count, err := repos.productRepo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	catalog, _ := newCatalogService(t, testConfig(), newFakeProvider())

	err := catalog.DeleteProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}
