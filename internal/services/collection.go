package service

import (
	"context"
	"errors"

	appErrors "github.com/storefront-labs/storefront-api/internal/errors"
	"github.com/storefront-labs/storefront-api/internal/models"
	repository "github.com/storefront-labs/storefront-api/internal/repositories"
)

type CollectionService interface {
	CreateCollection(ctx context.Context, req *models.CollectionRequest) (*models.Collection, error)
	GetCollection(ctx context.Context, id int64) (*models.Collection, error)
	UpdateCollection(ctx context.Context, id int64, req *models.CollectionRequest) (*models.Collection, error)
	DeleteCollection(ctx context.Context, id int64) error
	ListCollections(ctx context.Context, page, pageSize int) ([]*models.Collection, int, error)
}

type collectionService struct {
	repo repository.CollectionRepository
}

func NewCollectionService(repo repository.CollectionRepository) CollectionService {
	return &collectionService{repo: repo}
}

func (s *collectionService) CreateCollection(ctx context.Context, req *models.CollectionRequest) (*models.Collection, error) {

	collection := &models.Collection{Title: req.Title, FeaturedProductID: req.FeaturedProductID}

	if err := s.repo.CreateCollection(ctx, collection); err != nil {
		return nil, mapCollectionError(err, "Failed to create collection")
	}

	return collection, nil
}

func (s *collectionService) GetCollection(ctx context.Context, id int64) (*models.Collection, error) {

	collection, err := s.repo.GetCollectionByID(ctx, id)
	if err != nil {
		return nil, mapCollectionError(err, "Failed to fetch collection")
	}

	return collection, nil
}

func (s *collectionService) UpdateCollection(ctx context.Context, id int64, req *models.CollectionRequest) (*models.Collection, error) {

	collection := &models.Collection{ID: id, Title: req.Title, FeaturedProductID: req.FeaturedProductID}

	if err := s.repo.UpdateCollection(ctx, collection); err != nil {
		return nil, mapCollectionError(err, "Failed to update collection")
	}

	// re-read for products_count
	return s.GetCollection(ctx, id)
}

func (s *collectionService) DeleteCollection(ctx context.Context, id int64) error {

	if err := s.repo.DeleteCollection(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProtected) {
			return appErrors.ConflictError("Collection cannot be deleted because it includes one or more products").WithError(err)
		}

		return mapCollectionError(err, "Failed to delete collection")
	}

	return nil
}

func (s *collectionService) ListCollections(ctx context.Context, page, pageSize int) ([]*models.Collection, int, error) {

	collections, total, err := s.repo.ListCollections(ctx, page, pageSize)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch collections").WithError(err)
	}

	return collections, total, nil
}

func mapCollectionError(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrCollectionNotFound):
		return appErrors.NotFoundError("Collection not found").WithError(err)
	case errors.Is(err, repository.ErrProductNotFound):
		return appErrors.ValidationError("Featured product does not exist").WithError(err)
	}

	return appErrors.DatabaseError(message).WithError(err)
}
