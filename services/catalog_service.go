package services

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	apperrors "storefront-service/common/errors"
	"storefront-service/models"
	aws_pkg "storefront-service/pkg/aws"
	"storefront-service/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// CatalogService defines product listing and admin product management.
type CatalogService interface {
	List(ctx context.Context, query models.ProductQuery) ([]models.Product, int, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, product models.Product) (*models.Product, error)
	Update(ctx context.Context, id string, product models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	PresignImageUpload(ctx context.Context, filename, contentType string) (*models.PresignResponse, error)
}

type catalogServiceImpl struct {
	seed      []models.Product
	overrides repository.ProductOverrideRepository
	presigner aws_pkg.PutPresigner
	metrics   aws_pkg.MetricsRecorder
	validate  *validator.Validate
	logger    *zap.Logger
	locks     *keyedMutex
}

// NewCatalogService creates a CatalogService over the seed products. Admin
// edits are kept by overrides. presigner and metrics may be nil.
func NewCatalogService(
	seed []models.Product,
	overrides repository.ProductOverrideRepository,
	presigner aws_pkg.PutPresigner,
	metrics aws_pkg.MetricsRecorder,
	logger *zap.Logger,
) CatalogService {
	return &catalogServiceImpl{
		seed:      seed,
		overrides: overrides,
		presigner: presigner,
		metrics:   metrics,
		validate:  validator.New(),
		logger:    logger,
		locks:     newKeyedMutex(),
	}
}

// List filters by category and offer flags, sorts, and pages the catalog.
// The returned total counts every match before paging.
func (s *catalogServiceImpl) List(ctx context.Context, query models.ProductQuery) ([]models.Product, int, error) {
	products, err := s.products(ctx)
	if err != nil {
		return nil, 0, err
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if query.Category != "" && query.Category != models.AllCategories && !strings.EqualFold(p.Category, query.Category) {
			continue
		}
		if query.OnOffer && !p.OnOffer {
			continue
		}
		if query.BigOffer && !p.BigOffer {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, query.Sort)

	page, limit := NormalizePage(query.Page, query.Limit)
	total := len(filtered)
	if page > TotalPages(total, limit) {
		return []models.Product{}, total, nil
	}
	start := (page - 1) * limit
	end := start + limit
	if end > total {
		end = total
	}
	return filtered[start:end], total, nil
}

func (s *catalogServiceImpl) Get(ctx context.Context, id string) (*models.Product, error) {
	products, err := s.products(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, apperrors.ErrProductNotFound
}

// Categories lists "All" followed by each category in catalog order.
func (s *catalogServiceImpl) Categories(ctx context.Context) ([]string, error) {
	products, err := s.products(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	categories := []string{models.AllCategories}
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories, nil
}

// Create appends product with the next free numeric id.
func (s *catalogServiceImpl) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	if err := s.validate.StructCtx(ctx, product); err != nil {
		return nil, apperrors.ErrValidation.Wrap(err)
	}

	var created models.Product
	err := s.edit(ctx, func(products []models.Product) ([]models.Product, error) {
		product.ID = nextProductID(products)
		created = product
		return append(products, product), nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil && s.metrics.IsEnabled() {
		if err := s.metrics.RecordCount(ctx, aws_pkg.MetricProductsCreated, map[string]string{"Service": "storefront"}); err != nil {
			s.logger.Warn("Failed to record product metric", zap.Error(err))
		}
	}
	s.logger.Info("Product created", zap.String("product_id", created.ID), zap.String("name", created.Name))
	return &created, nil
}

// Update replaces the product with the given id, keeping the id.
func (s *catalogServiceImpl) Update(ctx context.Context, id string, product models.Product) (*models.Product, error) {
	if err := s.validate.StructCtx(ctx, product); err != nil {
		return nil, apperrors.ErrValidation.Wrap(err)
	}
	product.ID = id

	err := s.edit(ctx, func(products []models.Product) ([]models.Product, error) {
		for i := range products {
			if products[i].ID == id {
				products[i] = product
				return products, nil
			}
		}
		return nil, apperrors.ErrProductNotFound
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product updated", zap.String("product_id", id))
	return &product, nil
}

func (s *catalogServiceImpl) Delete(ctx context.Context, id string) error {
	err := s.edit(ctx, func(products []models.Product) ([]models.Product, error) {
		kept := make([]models.Product, 0, len(products))
		for _, p := range products {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		if len(kept) == len(products) {
			return nil, apperrors.ErrProductNotFound
		}
		return kept, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Product deleted", zap.String("product_id", id))
	return nil
}

// PresignImageUpload returns a presigned S3 PUT URL for a product image.
func (s *catalogServiceImpl) PresignImageUpload(ctx context.Context, filename, contentType string) (*models.PresignResponse, error) {
	if s.presigner == nil {
		return nil, apperrors.ErrServiceUnavailable
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if !allowedImageTypes[contentType] {
		return nil, apperrors.ErrInvalidInput
	}

	key := "products/" + uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	url, headers, err := s.presigner.PresignPut(ctx, key, contentType)
	if err != nil {
		s.logger.Error("Failed to presign image upload", zap.String("key", key), zap.Error(err))
		return nil, apperrors.ErrServiceUnavailable.Wrap(err)
	}
	return &models.PresignResponse{URL: url, Key: key, Headers: headers}, nil
}

// products returns a private copy of the current catalog: the admin override
// when one exists, the seed otherwise.
func (s *catalogServiceImpl) products(ctx context.Context) ([]models.Product, error) {
	override, found, err := s.overrides.Load(ctx)
	if err != nil {
		return nil, s.storageError("load products", err)
	}
	if found {
		return override, nil
	}
	return append([]models.Product(nil), s.seed...), nil
}

// edit applies fn to the current catalog and persists the result as the
// admin override.
func (s *catalogServiceImpl) edit(ctx context.Context, fn func([]models.Product) ([]models.Product, error)) error {
	unlock := s.locks.Lock(repository.AdminProductsKey)
	defer unlock()

	products, err := s.products(ctx)
	if err != nil {
		return err
	}
	updated, err := fn(products)
	if err != nil {
		return err
	}
	if err := s.overrides.Save(ctx, updated); err != nil {
		return s.storageError("save products", err)
	}
	return nil
}

func (s *catalogServiceImpl) storageError(op string, err error) error {
	s.logger.Error("Catalog storage failure", zap.String("op", op), zap.Error(err))
	if errors.Is(err, repository.ErrCorrupt) {
		return apperrors.ErrStorageCorrupt.Wrap(err)
	}
	return apperrors.ErrStorageUnavailable.Wrap(err)
}

func sortProducts(products []models.Product, order string) {
	switch order {
	case models.SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case models.SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case models.SortRating:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Rating > products[j].Rating })
	}
}

// NormalizePage applies the default and maximum page size.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

// TotalPages is the number of pages of limit items needed to hold total.
func TotalPages(total, limit int) int {
	return (total + limit - 1) / limit
}

// nextProductID returns one more than the largest numeric id in use.
func nextProductID(products []models.Product) string {
	highest := 0
	for _, p := range products {
		if n, err := strconv.Atoi(p.ID); err == nil && n > highest {
			highest = n
		}
	}
	return strconv.Itoa(highest + 1)
}
