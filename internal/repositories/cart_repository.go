package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/storefront-labs/storefront-api/internal/models"
	"github.com/storefront-labs/storefront-api/internal/utils"
)

type CartRepository interface {
	CreateCart(ctx context.Context, cart *models.Cart) error
	GetCartByID(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	DeleteCart(ctx context.Context, id uuid.UUID) error
	AddItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, cartID uuid.UUID, productID int64) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO carts (id, created_at)
		VALUES ($1, NOW())
		RETURNING created_at
	`

	if err := r.DB.QueryRowContext(dbCtx, query, cart.ID).Scan(&cart.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert cart: %w", err)
	}

	return nil
}

// GetCartByID loads the cart with every line priced at the product's current unit price.
func (r *cartRepository) GetCartByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cart := &models.Cart{Items: []models.CartItem{}}

	err := r.DB.QueryRowContext(dbCtx, `SELECT id, created_at FROM carts WHERE id = $1`, id).Scan(&cart.ID, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartNotFound
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	query := `
		SELECT ci.id, ci.quantity, p.id, p.title, p.unit_price
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`

	rows, err := r.DB.QueryContext(dbCtx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		var item models.CartItem

		if err := rows.Scan(&item.ID, &item.Quantity, &item.Product.ID, &item.Product.Title, &item.Product.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		cart.Items = append(cart.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	cart.CalculateTotal()

	return cart, nil
}

func (r *cartRepository) DeleteCart(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM carts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	deletedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deletedRows == 0 {
		return ErrCartNotFound
	}

	return nil
}

// AddItem inserts the line or increments its quantity in one statement, so
// concurrent adds of the same product accumulate instead of overwriting.
func (r *cartRepository) AddItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		WITH line AS (
			INSERT INTO cart_items (cart_id, product_id, quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (cart_id, product_id)
			DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
			RETURNING id, product_id, quantity
		)
		SELECT line.id, line.quantity, p.id, p.title, p.unit_price
		FROM line
		JOIN products p ON p.id = line.product_id
	`

	item, err := scanCartItem(r.DB.QueryRowContext(dbCtx, query, cartID, productID, quantity))
	if err != nil {
		switch {
		case violatedConstraint(err) == "cart_items_cart_id_fkey":
			return nil, ErrCartNotFound
		case violatedConstraint(err) == "cart_items_product_id_fkey":
			return nil, ErrProductNotFound
		case hasPgCode(err, pgNumericOutOfRange, pgCheckViolation):
			return nil, fmt.Errorf("%w: %w", ErrOutOfRange, err)
		}

		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return item, nil
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		WITH line AS (
			UPDATE cart_items SET quantity = $3
			WHERE cart_id = $1 AND product_id = $2
			RETURNING id, product_id, quantity
		)
		SELECT line.id, line.quantity, p.id, p.title, p.unit_price
		FROM line
		JOIN products p ON p.id = line.product_id
	`

	item, err := scanCartItem(r.DB.QueryRowContext(dbCtx, query, cartID, productID, quantity))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		case hasPgCode(err, pgNumericOutOfRange, pgCheckViolation):
			return nil, fmt.Errorf("%w: %w", ErrOutOfRange, err)
		}

		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return item, nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, cartID uuid.UUID, productID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`, cartID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	deletedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deletedRows == 0 {
		return ErrNotFound
	}

	return nil
}

func scanCartItem(row *sql.Row) (*models.CartItem, error) {
	item := &models.CartItem{}

	if err := row.Scan(&item.ID, &item.Quantity, &item.Product.ID, &item.Product.Title, &item.Product.UnitPrice); err != nil {
		return nil, err
	}

	item.CalculateTotal()

	return item, nil
}
