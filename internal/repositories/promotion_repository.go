package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/storefront-labs/storefront-api/internal/models"
	"github.com/storefront-labs/storefront-api/internal/utils"
)

type PromotionRepository interface {
	CreatePromotion(ctx context.Context, promotion *models.Promotion) error
	ListPromotions(ctx context.Context, page, size int) ([]*models.Promotion, int, error)
}

type promotionRepository struct {
	DB *sql.DB
}

func NewPromotionRepo(db *sql.DB) PromotionRepository {
	return &promotionRepository{DB: db}
}

func (r *promotionRepository) CreatePromotion(ctx context.Context, promotion *models.Promotion) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO promotions (description, discount)
		VALUES ($1, $2)
		RETURNING id
	`

	if err := r.DB.QueryRowContext(dbCtx, query, promotion.Description, promotion.Discount).Scan(&promotion.ID); err != nil {
		return fmt.Errorf("failed to insert promotion: %w", err)
	}

	return nil
}

func (r *promotionRepository) ListPromotions(ctx context.Context, page, size int) ([]*models.Promotion, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM promotions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count promotions: %w", err)
	}

	query := `
		SELECT id, description, discount
		FROM promotions
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, pageOffset(page, size))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list promotions: %w", err)
	}

	defer rows.Close()

	promotions := []*models.Promotion{}

	for rows.Next() {
		promotion := &models.Promotion{}

		if err := rows.Scan(&promotion.ID, &promotion.Description, &promotion.Discount); err != nil {
			return nil, 0, fmt.Errorf("failed to scan promotion: %w", err)
		}

		promotions = append(promotions, promotion)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return promotions, total, nil
}
