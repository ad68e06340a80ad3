package service

import (
	"context"
	"errors"

	appErrors "github.com/storefront-labs/storefront-api/internal/errors"
	"github.com/storefront-labs/storefront-api/internal/models"
	repository "github.com/storefront-labs/storefront-api/internal/repositories"
	"github.com/storefront-labs/storefront-api/internal/utils"
)

type ReviewService interface {
	CreateReview(ctx context.Context, productID int64, req *models.CreateReviewRequest) (*models.Review, error)
	ListReviews(ctx context.Context, productID int64) ([]*models.Review, error)
}

type reviewService struct {
	repo repository.ReviewRepository
}

func NewReviewService(repo repository.ReviewRepository) ReviewService {
	return &reviewService{repo: repo}
}

func (s *reviewService) CreateReview(ctx context.Context, productID int64, req *models.CreateReviewRequest) (*models.Review, error) {

	review := &models.Review{
		ProductID:   productID,
		Name:        utils.Sanitize(req.Name),
		Description: utils.Sanitize(req.Description),
	}

	if review.Description == "" {
		return nil, appErrors.AddValidationError("description", "must not be empty")
	}

	if err := s.repo.CreateReview(ctx, review); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to create review").WithError(err)
	}

	return review, nil
}

func (s *reviewService) ListReviews(ctx context.Context, productID int64) ([]*models.Review, error) {

	reviews, err := s.repo.ListReviewsByProduct(ctx, productID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch reviews").WithError(err)
	}

	return reviews, nil
}
