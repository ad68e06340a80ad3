package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/storefront-labs/storefront-api/internal/models"
	"github.com/storefront-labs/storefront-api/internal/utils"
)

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.Review) error
	ListReviewsByProduct(ctx context.Context, productID int64) ([]*models.Review, error)
}

type reviewRepository struct {
	DB *sql.DB
}

func NewReviewRepo(db *sql.DB) ReviewRepository {
	return &reviewRepository{DB: db}
}

func (r *reviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO reviews (product_id, name, description, date)
		VALUES ($1, $2, $3, CURRENT_DATE)
		RETURNING id, date
	`

	err := r.DB.QueryRowContext(dbCtx, query, review.ProductID, review.Name, review.Description).Scan(&review.ID, &review.Date)
	if err != nil {
		if violatedConstraint(err) == "reviews_product_id_fkey" {
			return ErrProductNotFound
		}

		return fmt.Errorf("failed to insert review: %w", err)
	}

	return nil
}

func (r *reviewRepository) ListReviewsByProduct(ctx context.Context, productID int64) ([]*models.Review, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, product_id, name, description, date
		FROM reviews
		WHERE product_id = $1
		ORDER BY date DESC, id DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	defer rows.Close()

	reviews := []*models.Review{}

	for rows.Next() {
		review := &models.Review{}

		if err := rows.Scan(&review.ID, &review.ProductID, &review.Name, &review.Description, &review.Date); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}

		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}
