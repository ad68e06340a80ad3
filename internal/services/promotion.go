package service

import (
	"context"

	appErrors "github.com/storefront-labs/storefront-api/internal/errors"
	"github.com/storefront-labs/storefront-api/internal/models"
	repository "github.com/storefront-labs/storefront-api/internal/repositories"
	"github.com/storefront-labs/storefront-api/internal/utils"
)

type PromotionService interface {
	CreatePromotion(ctx context.Context, req *models.CreatePromotionRequest) (*models.Promotion, error)
	ListPromotions(ctx context.Context, page, pageSize int) ([]*models.Promotion, int, error)
}

type promotionService struct {
	repo repository.PromotionRepository
}

func NewPromotionService(repo repository.PromotionRepository) PromotionService {
	return &promotionService{repo: repo}
}

func (s *promotionService) CreatePromotion(ctx context.Context, req *models.CreatePromotionRequest) (*models.Promotion, error) {

	promotion := &models.Promotion{Description: utils.Sanitize(req.Description), Discount: req.Discount}

	if err := s.repo.CreatePromotion(ctx, promotion); err != nil {
		return nil, appErrors.DatabaseError("Failed to create promotion").WithError(err)
	}

	return promotion, nil
}

func (s *promotionService) ListPromotions(ctx context.Context, page, pageSize int) ([]*models.Promotion, int, error) {

	promotions, total, err := s.repo.ListPromotions(ctx, page, pageSize)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch promotions").WithError(err)
	}

	return promotions, total, nil
}
