package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/storefront-labs/storefront-api/internal/api/middleware"
	"github.com/storefront-labs/storefront-api/internal/cache"
	appErrors "github.com/storefront-labs/storefront-api/internal/errors"
	"github.com/storefront-labs/storefront-api/internal/metrics"
	"github.com/storefront-labs/storefront-api/internal/models"
	repository "github.com/storefront-labs/storefront-api/internal/repositories"
	"github.com/storefront-labs/storefront-api/internal/utils"
)

var minUnitPrice = decimal.NewFromInt(1)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error)
	AttachPromotion(ctx context.Context, productID int64, req *models.AttachPromotionRequest) (*models.Product, error)
}

type productService struct {
	repo  repository.ProductRepository
	cache cache.Cache
}

func NewProductService(repo repository.ProductRepository, cache cache.Cache) ProductService {
	return &productService{repo: repo, cache: cache}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	if req.UnitPrice.LessThan(minUnitPrice) {
		return nil, appErrors.AddValidationError("unit_price", "must be at least 1")
	}

	product := &models.Product{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  utils.Sanitize(req.Description),
		Inventory:    req.Inventory,
		UnitPrice:    req.UnitPrice,
		CollectionID: req.CollectionID,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, mapProductError(err, "Failed to create product")
	}

	product.ApplyTax()

	return product, nil
}

// GetProductByID serves from the cache when possible. Cache failures only
// cost a database round trip.
func (s *productService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {

	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.ProductKeyPrefix, id)

	var cached models.Product

	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Product cache lookup failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	metrics.ObserveCacheLookup(hit)

	if hit {
		cached.ApplyTax()
		return &cached, nil
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, mapProductError(err, "Failed to fetch product")
	}

	if err := s.cache.Set(ctx, key, product, 0); err != nil {
		logger.Warn("Failed to cache product", slog.String("key", key), slog.String("error", err.Error()))
	}

	product.ApplyTax()

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, mapProductError(err, "Failed to fetch product")
	}

	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.Slug != nil {
		product.Slug = *req.Slug
	}
	if req.Description != nil {
		product.Description = utils.Sanitize(*req.Description)
	}
	if req.Inventory != nil {
		product.Inventory = *req.Inventory
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.LessThan(minUnitPrice) {
			return nil, appErrors.AddValidationError("unit_price", "must be at least 1")
		}
		product.UnitPrice = *req.UnitPrice
	}
	if req.CollectionID != nil {
		product.CollectionID = *req.CollectionID
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, mapProductError(err, "Failed to update product")
	}

	s.invalidate(ctx, id)

	product.ApplyTax()

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProtected) {
			return appErrors.ConflictError("Product cannot be deleted because it is associated with an order item").WithError(err)
		}

		return mapProductError(err, "Failed to delete product")
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *productService) ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error) {

	products, total, err := s.repo.ListProducts(ctx, page, pageSize)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	for _, product := range products {
		product.ApplyTax()
	}

	return products, total, nil
}

func (s *productService) AttachPromotion(ctx context.Context, productID int64, req *models.AttachPromotionRequest) (*models.Product, error) {

	if err := s.repo.AttachPromotion(ctx, productID, req.PromotionID); err != nil {
		return nil, mapProductError(err, "Failed to attach promotion")
	}

	s.invalidate(ctx, productID)

	return s.GetProductByID(ctx, productID)
}

func (s *productService) invalidate(ctx context.Context, id int64) {
	key := cache.Key(cache.ProductKeyPrefix, id)

	if err := s.cache.Delete(ctx, key); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to invalidate product cache", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func mapProductError(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		return appErrors.NotFoundError("Product not found").WithError(err)
	case errors.Is(err, repository.ErrCollectionNotFound):
		return appErrors.ValidationError("Collection does not exist").WithError(err)
	case errors.Is(err, repository.ErrPromotionNotFound):
		return appErrors.ValidationError("Promotion does not exist").WithError(err)
	case errors.Is(err, repository.ErrOutOfRange):
		return appErrors.ValidationError("Value out of range").WithError(err)
	}

	return appErrors.DatabaseError(message).WithError(err)
}
