package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/storefront-labs/storefront-api/internal/models"
	"github.com/storefront-labs/storefront-api/internal/utils"
)

type OrderRepository interface {
	CreateOrderFromCart(ctx context.Context, cartID uuid.UUID, userID uuid.UUID) (*models.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context, customerID *int64, page, size int) ([]*models.Order, int, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status models.PaymentStatus) error
	DeleteOrder(ctx context.Context, id int64) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

/*
CreateOrderFromCart converts a cart into an order in one transaction:
 1. lock the cart row, a cart deleted by a concurrent checkout yields ErrConflict
 2. read the lines with live product prices
 3. resolve the customer of the user
 4. insert the order and one item per line with the price frozen
 5. delete the cart, exactly one row must go
*/
func (r *orderRepository) CreateOrderFromCart(ctx context.Context, cartID uuid.UUID, userID uuid.UUID) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{PaymentStatus: models.PaymentStatusPending}

	err := withTx(dbCtx, r.DB, func(tx *sql.Tx) error {

		var lockedID uuid.UUID

		err := tx.QueryRowContext(dbCtx, `SELECT id FROM carts WHERE id = $1 FOR UPDATE`, cartID).Scan(&lockedID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrConflict
			}

			return fmt.Errorf("failed to lock cart: %w", err)
		}

		linesQuery := `
			SELECT ci.quantity, p.id, p.title, p.unit_price
			FROM cart_items ci
			JOIN products p ON p.id = ci.product_id
			WHERE ci.cart_id = $1
			ORDER BY ci.id
		`

		rows, err := tx.QueryContext(dbCtx, linesQuery, cartID)
		if err != nil {
			return fmt.Errorf("failed to read cart items: %w", err)
		}

		for rows.Next() {
			var item models.OrderItem

			if err := rows.Scan(&item.Quantity, &item.Product.ID, &item.Product.Title, &item.Product.UnitPrice); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan cart item: %w", err)
			}

			item.UnitPrice = item.Product.UnitPrice
			order.Items = append(order.Items, item)
		}

		rows.Close()

		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating over cart items: %w", err)
		}

		if len(order.Items) == 0 {
			return ErrCartEmpty
		}

		err = tx.QueryRowContext(dbCtx, `SELECT id FROM customers WHERE user_id = $1`, userID).Scan(&order.CustomerID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrCustomerNotFound
			}

			return fmt.Errorf("failed to resolve customer: %w", err)
		}

		orderQuery := `
			INSERT INTO orders (customer_id, payment_status, placed_at)
			VALUES ($1, $2, NOW())
			RETURNING id, placed_at
		`

		if err := tx.QueryRowContext(dbCtx, orderQuery, order.CustomerID, order.PaymentStatus).Scan(&order.ID, &order.PlacedAt); err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		itemQuery := `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID

			if err := tx.QueryRowContext(dbCtx, itemQuery, order.ID, item.Product.ID, item.Quantity, item.UnitPrice).Scan(&item.ID); err != nil {
				return fmt.Errorf("failed to insert an order item: %w", err)
			}
		}

		result, err := tx.ExecContext(dbCtx, `DELETE FROM carts WHERE id = $1`, cartID)
		if err != nil {
			return fmt.Errorf("failed to delete cart: %w", err)
		}

		deletedRows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get deleted rows: %w", err)
		}

		if deletedRows != 1 {
			return ErrConflict
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	order.CalculateTotal()

	return order, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{}

	query := `
		SELECT id, customer_id, placed_at, payment_status
		FROM orders
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&order.ID, &order.CustomerID, &order.PlacedAt, &order.PaymentStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	if err := r.attachItems(dbCtx, []*models.Order{order}); err != nil {
		return nil, err
	}

	return order, nil
}

// ListOrders returns every order when customerID is nil.
func (r *orderRepository) ListOrders(ctx context.Context, customerID *int64, page, size int) ([]*models.Order, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM orders WHERE ($1::BIGINT IS NULL OR customer_id = $1)`

	if err := r.DB.QueryRowContext(dbCtx, countQuery, customerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := `
		SELECT id, customer_id, placed_at, payment_status
		FROM orders
		WHERE ($1::BIGINT IS NULL OR customer_id = $1)
		ORDER BY placed_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, customerID, size, pageOffset(page, size))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	orders := []*models.Order{}

	for rows.Next() {
		order := &models.Order{}

		if err := rows.Scan(&order.ID, &order.CustomerID, &order.PlacedAt, &order.PaymentStatus); err != nil {
			return nil, 0, fmt.Errorf("failed to scan the orders: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachItems(dbCtx, orders); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// attachItems loads the items of all given orders with a single query.
func (r *orderRepository) attachItems(ctx context.Context, orders []*models.Order) error {

	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, len(orders))
	byID := make(map[int64]*models.Order, len(orders))

	for i, order := range orders {
		ids[i] = order.ID
		order.Items = []models.OrderItem{}
		byID[order.ID] = order
	}

	query := `
		SELECT oi.id, oi.order_id, oi.quantity, oi.unit_price, p.id, p.title, p.unit_price
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.id
	`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to get the order items: %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem

		if err := rows.Scan(&item.ID, &item.OrderID, &item.Quantity, &item.UnitPrice, &item.Product.ID, &item.Product.Title, &item.Product.UnitPrice); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}

		if order, ok := byID[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}

	if err := rows.Err(); err != nil {
		return err
	}

	for _, order := range orders {
		order.CalculateTotal()
	}

	return nil
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id int64, status models.PaymentStatus) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE orders SET payment_status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteOrder is refused while the order still has items.
func (r *orderRepository) DeleteOrder(ctx context.Context, id int64) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		if hasPgCode(err, pgForeignKeyViolation) {
			return ErrProtected
		}

		return fmt.Errorf("failed to delete order: %w", err)
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
