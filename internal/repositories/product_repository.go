package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/storefront-labs/storefront-api/internal/models"
	"github.com/storefront-labs/storefront-api/internal/utils"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error)
	AttachPromotion(ctx context.Context, productID, promotionID int64) error
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (title, slug, description, unit_price, inventory, collection_id, last_update)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, last_update
	`

	err := r.DB.QueryRowContext(dbCtx, query, product.Title, product.Slug, product.Description, product.UnitPrice, product.Inventory, product.CollectionID).
		Scan(&product.ID, &product.LastUpdate)
	if err != nil {
		return mapProductWriteError(err)
	}

	return nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	query := `
		SELECT id, title, slug, description, unit_price, inventory, collection_id, last_update
		FROM products
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&product.ID, &product.Title, &product.Slug, &product.Description, &product.UnitPrice, &product.Inventory, &product.CollectionID, &product.LastUpdate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	promotionsQuery := `
		SELECT pr.id, pr.description, pr.discount
		FROM promotions pr
		JOIN product_promotions pp ON pp.promotion_id = pr.id
		WHERE pp.product_id = $1
		ORDER BY pr.id
	`

	rows, err := r.DB.QueryContext(dbCtx, promotionsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product promotions: %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		var promotion models.Promotion

		if err := rows.Scan(&promotion.ID, &promotion.Description, &promotion.Discount); err != nil {
			return nil, fmt.Errorf("failed to scan promotion: %w", err)
		}

		product.Promotions = append(product.Promotions, promotion)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET title = $1, slug = $2, description = $3, unit_price = $4, inventory = $5, collection_id = $6, last_update = NOW()
		WHERE id = $7
		RETURNING last_update
	`

	err := r.DB.QueryRowContext(dbCtx, query, product.Title, product.Slug, product.Description, product.UnitPrice, product.Inventory, product.CollectionID, product.ID).
		Scan(&product.LastUpdate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}

		return mapProductWriteError(err)
	}

	return nil
}

// DeleteProduct refuses to remove products that already appear on an order.
func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if hasPgCode(err, pgForeignKeyViolation) {
			return ErrProtected
		}

		return fmt.Errorf("failed to delete product: %w", err)
	}

	deletedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deletedRows == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *productRepository) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM products`).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := `
		SELECT id, title, slug, description, unit_price, inventory, collection_id, last_update
		FROM products
		ORDER BY title, id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, pageOffset(page, size))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	defer rows.Close()

	products := []*models.Product{}

	for rows.Next() {
		product := &models.Product{}

		err := rows.Scan(&product.ID, &product.Title, &product.Slug, &product.Description, &product.UnitPrice, &product.Inventory, &product.CollectionID, &product.LastUpdate)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) AttachPromotion(ctx context.Context, productID, promotionID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO product_promotions (product_id, promotion_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	if _, err := r.DB.ExecContext(dbCtx, query, productID, promotionID); err != nil {
		switch violatedConstraint(err) {
		case "product_promotions_product_id_fkey":
			return ErrProductNotFound
		case "product_promotions_promotion_id_fkey":
			return ErrPromotionNotFound
		}

		return fmt.Errorf("failed to attach promotion: %w", err)
	}

	return nil
}

func mapProductWriteError(err error) error {
	switch {
	case violatedConstraint(err) == "products_collection_id_fkey":
		return ErrCollectionNotFound
	case hasPgCode(err, pgCheckViolation, pgNumericOutOfRange):
		return fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}

	return fmt.Errorf("failed to write product: %w", err)
}
