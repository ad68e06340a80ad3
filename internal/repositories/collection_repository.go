package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/storefront-labs/storefront-api/internal/models"
	"github.com/storefront-labs/storefront-api/internal/utils"
)

type CollectionRepository interface {
	CreateCollection(ctx context.Context, collection *models.Collection) error
	GetCollectionByID(ctx context.Context, id int64) (*models.Collection, error)
	UpdateCollection(ctx context.Context, collection *models.Collection) error
	DeleteCollection(ctx context.Context, id int64) error
	ListCollections(ctx context.Context, page, size int) ([]*models.Collection, int, error)
}

type collectionRepository struct {
	DB *sql.DB
}

func NewCollectionRepo(db *sql.DB) CollectionRepository {
	return &collectionRepository{DB: db}
}

func (r *collectionRepository) CreateCollection(ctx context.Context, collection *models.Collection) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO collections (title, featured_product_id)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.DB.QueryRowContext(dbCtx, query, collection.Title, collection.FeaturedProductID).Scan(&collection.ID)
	if err != nil {
		if violatedConstraint(err) == "collections_featured_product_id_fkey" {
			return ErrProductNotFound
		}

		return fmt.Errorf("failed to insert collection: %w", err)
	}

	return nil
}

func (r *collectionRepository) GetCollectionByID(ctx context.Context, id int64) (*models.Collection, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT c.id, c.title, c.featured_product_id, COUNT(p.id)
		FROM collections c
		LEFT JOIN products p ON p.collection_id = c.id
		WHERE c.id = $1
		GROUP BY c.id
	`

	collection := &models.Collection{}

	var featured sql.NullInt64

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&collection.ID, &collection.Title, &featured, &collection.ProductsCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCollectionNotFound
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	if featured.Valid {
		collection.FeaturedProductID = &featured.Int64
	}

	return collection, nil
}

func (r *collectionRepository) UpdateCollection(ctx context.Context, collection *models.Collection) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE collections SET title = $1, featured_product_id = $2
		WHERE id = $3
	`

	result, err := r.DB.ExecContext(dbCtx, query, collection.Title, collection.FeaturedProductID, collection.ID)
	if err != nil {
		if violatedConstraint(err) == "collections_featured_product_id_fkey" {
			return ErrProductNotFound
		}

		return fmt.Errorf("failed to update collection: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return ErrCollectionNotFound
	}

	return nil
}

// DeleteCollection is refused while any product still belongs to the collection.
func (r *collectionRepository) DeleteCollection(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		if hasPgCode(err, pgForeignKeyViolation) {
			return ErrProtected
		}

		return fmt.Errorf("failed to delete collection: %w", err)
	}

	deletedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deletedRows == 0 {
		return ErrCollectionNotFound
	}

	return nil
}

func (r *collectionRepository) ListCollections(ctx context.Context, page, size int) ([]*models.Collection, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM collections`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count collections: %w", err)
	}

	query := `
		SELECT c.id, c.title, c.featured_product_id, COUNT(p.id)
		FROM collections c
		LEFT JOIN products p ON p.collection_id = c.id
		GROUP BY c.id
		ORDER BY c.title, c.id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, pageOffset(page, size))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list collections: %w", err)
	}

	defer rows.Close()

	collections := []*models.Collection{}

	for rows.Next() {
		collection := &models.Collection{}

		var featured sql.NullInt64

		if err := rows.Scan(&collection.ID, &collection.Title, &featured, &collection.ProductsCount); err != nil {
			return nil, 0, fmt.Errorf("failed to scan collection: %w", err)
		}

		if featured.Valid {
			collection.FeaturedProductID = &featured.Int64
		}

		collections = append(collections, collection)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return collections, total, nil
}
