package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	apperrors "storefront-service/common/errors"
	"storefront-service/data"
	"storefront-service/models"
	aws_pkg "storefront-service/pkg/aws"
	"storefront-service/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestCatalogService(t *testing.T, storage repository.LocalStorage, presigner aws_pkg.PutPresigner, metrics aws_pkg.MetricsRecorder) CatalogService {
	t.Helper()
	seed, err := data.Products()
	require.NoError(t, err)
	require.Len(t, seed, 7)
	return NewCatalogService(seed, repository.NewProductOverrideRepository(storage), presigner, metrics, zap.NewNop())
}

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func newProduct() models.Product {
	return models.Product{
		Name:     "USB-C Hub",
		Price:    39.99,
		Rating:   4.2,
		Category: "Accessories",
		Image:    "/img/hub.jpg",
	}
}

func TestList_FiltersAndSorts(t *testing.T) {
	svc := newTestCatalogService(t, repository.NewMemoryStorage(), nil, nil)
	ctx := context.Background()

	cases := []struct {
		name  string
		query models.ProductQuery
		want  []string
	}{
		{"featured keeps catalog order", models.ProductQuery{}, []string{"1", "2", "3", "4", "5", "6", "7"}},
		{"all categories", models.ProductQuery{Category: models.AllCategories}, []string{"1", "2", "3", "4", "5", "6", "7"}},
		{"category is case insensitive", models.ProductQuery{Category: "accessories"}, []string{"3", "4"}},
		{"unknown category", models.ProductQuery{Category: "Furniture"}, []string{}},
		{"on offer", models.ProductQuery{OnOffer: true}, []string{"1", "2", "4", "6"}},
		{"big offer", models.ProductQuery{BigOffer: true}, []string{"1", "6"}},
		{"price low to high", models.ProductQuery{Sort: models.SortPriceLow}, []string{"4", "3", "6", "7", "5", "1", "2"}},
		{"price high to low", models.ProductQuery{Sort: models.SortPriceHigh}, []string{"2", "1", "5", "7", "6", "3", "4"}},
		{"rating keeps ties stable", models.ProductQuery{Sort: models.SortRating}, []string{"3", "1", "7", "4", "2", "5", "6"}},
		{"filter then sort", models.ProductQuery{OnOffer: true, Sort: models.SortPriceLow}, []string{"4", "6", "1", "2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			products, total, err := svc.List(ctx, tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(products))
			assert.Equal(t, len(tc.want), total)
		})
	}
}

func TestList_Paging(t *testing.T) {
	svc := newTestCatalogService(t, repository.NewMemoryStorage(), nil, nil)
	ctx := context.Background()

	products, total, err := svc.List(ctx, models.ProductQuery{Page: 3, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Equal(t, []string{"7"}, ids(products))

	products, total, err = svc.List(ctx, models.ProductQuery{Page: 4, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Empty(t, products)
}

func TestList_PageFarPastEnd(t *testing.T) {
	svc := newTestCatalogService(t, repository.NewMemoryStorage(), nil, nil)

	products, total, err := svc.List(context.Background(), models.ProductQuery{Page: math.MaxInt64/4 + 2, Limit: 4})

	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Empty(t, products)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 12))
	assert.Equal(t, 1, TotalPages(7, 12))
	assert.Equal(t, 3, TotalPages(7, 3))
}

func TestNormalizePage(t *testing.T) {
	page, limit := NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, limit)

	_, limit = NormalizePage(2, 1000)
	assert.Equal(t, MaxPageSize, limit)
}

func TestGet(t *testing.T) {
	svc := newTestCatalogService(t, repository.NewMemoryStorage(), nil, nil)

	product, err := svc.Get(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "Accessories", product.Category)

	_, err = svc.Get(context.Background(), "99")
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
}

func TestCategories(t *testing.T) {
	svc := newTestCatalogService(t, repository.NewMemoryStorage(), nil, nil)

	categories, err := svc.Categories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"All", "Audio", "Wearables", "Accessories", "Gaming", "Smart Home", "Storage"}, categories)
}

func TestCreate_MetricFailureIsLogged(t *testing.T) {
	seed, err := data.Products()
	require.NoError(t, err)
	metrics := new(MockMetrics)
	metrics.On("RecordCount", mock.Anything, aws_pkg.MetricProductsCreated, mock.Anything).Return(errors.New("throttled")).Once()
	core, logs := observer.New(zap.WarnLevel)
	svc := NewCatalogService(seed, repository.NewProductOverrideRepository(repository.NewMemoryStorage()), nil, metrics, zap.New(core))

	created, err := svc.Create(context.Background(), newProduct())

	require.NoError(t, err)
	assert.Equal(t, "8", created.ID)
	metrics.AssertExpectations(t)
	entries := logs.FilterMessage("Failed to record product metric").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "throttled", entries[0].ContextMap()["error"])
}

func TestCreate_AssignsNextIDAndIsSharedAcrossInstances(t *testing.T) {
	storage := repository.NewMemoryStorage()
	metrics := new(MockMetrics)
	metrics.On("RecordCount", mock.Anything, aws_pkg.MetricProductsCreated, mock.Anything).Return(nil).Once()
	svc := newTestCatalogService(t, storage, nil, metrics)
	ctx := context.Background()

	created, err := svc.Create(ctx, newProduct())
	require.NoError(t, err)
	assert.Equal(t, "8", created.ID)
	metrics.AssertExpectations(t)

	other := newTestCatalogService(t, storage, nil, nil)
	products, total, err := other.List(ctx, models.ProductQuery{})
	require.NoError(t, err)
	assert.Equal(t, 8, total)
	assert.Equal(t, "USB-C Hub", products[7].Name)
}

func TestCreate_Validation(t *testing.T) {
	storage := repository.NewMemoryStorage()
	svc := newTestCatalogService(t, storage, nil, nil)

	invalid := newProduct()
	invalid.Price = 0
	_, err := svc.Create(context.Background(), invalid)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	invalid = newProduct()
	invalid.Rating = 6
	_, err = svc.Create(context.Background(), invalid)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, found, _ := storage.GetItem(context.Background(), repository.GlobalScope, repository.AdminProductsKey)
	assert.False(t, found)
}

func TestUpdate(t *testing.T) {
	storage := repository.NewMemoryStorage()
	svc := newTestCatalogService(t, storage, nil, nil)
	ctx := context.Background()

	update := newProduct()
	update.ID = "ignored"
	updated, err := svc.Update(ctx, "2", update)
	require.NoError(t, err)
	assert.Equal(t, "2", updated.ID)

	product, err := svc.Get(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "USB-C Hub", product.Name)

	_, err = svc.Update(ctx, "99", newProduct())
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
}

func TestUpdate_NotFoundDoesNotCreateOverride(t *testing.T) {
	storage := repository.NewMemoryStorage()
	svc := newTestCatalogService(t, storage, nil, nil)

	_, err := svc.Update(context.Background(), "99", newProduct())
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)

	_, found, _ := storage.GetItem(context.Background(), repository.GlobalScope, repository.AdminProductsKey)
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	svc := newTestCatalogService(t, repository.NewMemoryStorage(), nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "1"))

	products, total, err := svc.List(ctx, models.ProductQuery{})
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	assert.NotContains(t, ids(products), "1")

	assert.ErrorIs(t, svc.Delete(ctx, "1"), apperrors.ErrProductNotFound)
}

func TestDeleteAll_LeavesEmptyCatalog(t *testing.T) {
	svc := newTestCatalogService(t, repository.NewMemoryStorage(), nil, nil)
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		require.NoError(t, svc.Delete(ctx, id))
	}

	products, total, err := svc.List(ctx, models.ProductQuery{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, products)
}

func TestCatalog_CorruptOverride(t *testing.T) {
	storage := repository.NewMemoryStorage()
	require.NoError(t, storage.SetItem(context.Background(), repository.GlobalScope, repository.AdminProductsKey, "{"))
	svc := newTestCatalogService(t, storage, nil, nil)

	_, _, err := svc.List(context.Background(), models.ProductQuery{})

	assert.ErrorIs(t, err, apperrors.ErrStorageCorrupt)
}

func TestPresignImageUpload(t *testing.T) {
	presigner := &fakePresigner{}
	svc := newTestCatalogService(t, repository.NewMemoryStorage(), presigner, nil)

	resp, err := svc.PresignImageUpload(context.Background(), "Photo.PNG", "image/png")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Key, "products/"))
	assert.True(t, strings.HasSuffix(resp.Key, ".png"))
	assert.Equal(t, presigner.key, resp.Key)
	assert.Contains(t, resp.URL, resp.Key)
	assert.Equal(t, "image/png", resp.Headers["Content-Type"])
}

func TestPresignImageUpload_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := newTestCatalogService(t, repository.NewMemoryStorage(), nil, nil).PresignImageUpload(ctx, "a.png", "image/png")
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)

	svc := newTestCatalogService(t, repository.NewMemoryStorage(), &fakePresigner{}, nil)
	_, err = svc.PresignImageUpload(ctx, "a.exe", "application/octet-stream")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	svc = newTestCatalogService(t, repository.NewMemoryStorage(), &fakePresigner{err: errors.New("no credentials")}, nil)
	_, err = svc.PresignImageUpload(ctx, "a.png", "image/png")
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
}
