package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/storefront-labs/storefront-api/internal/models"
	"github.com/storefront-labs/storefront-api/internal/utils"
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPaymentByID(ctx context.Context, id string) (*models.Payment, error)
	SettlePayment(ctx context.Context, id string, status models.PaymentStatus) (int64, error)
}

type paymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{DB: db}
}

func (r *paymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO payments (id, order_id, amount_cents, currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, payment.ID, payment.OrderID, payment.AmountCents, payment.Currency, payment.Status).
		Scan(&payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		if violatedConstraint(err) == "payments_order_id_fkey" {
			return ErrNotFound
		}

		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

func (r *paymentRepository) GetPaymentByID(ctx context.Context, id string) (*models.Payment, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	payment := &models.Payment{}

	query := `
		SELECT id, order_id, amount_cents, currency, status, created_at, updated_at
		FROM payments
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&payment.ID, &payment.OrderID, &payment.AmountCents, &payment.Currency, &payment.Status, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get the payment: %w", err)
	}

	return payment, nil
}

// SettlePayment records the final status on the payment and its order, and
// returns the order id.
func (r *paymentRepository) SettlePayment(ctx context.Context, id string, status models.PaymentStatus) (int64, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var orderID int64

	err := withTx(dbCtx, r.DB, func(tx *sql.Tx) error {

		query := `
			UPDATE payments SET status = $1, updated_at = NOW()
			WHERE id = $2
			RETURNING order_id
		`

		if err := tx.QueryRowContext(dbCtx, query, status, id).Scan(&orderID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}

			return fmt.Errorf("failed to update the payment status: %w", err)
		}

		if _, err := tx.ExecContext(dbCtx, `UPDATE orders SET payment_status = $1 WHERE id = $2`, status, orderID); err != nil {
			return fmt.Errorf("failed to update order payment status: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return orderID, nil
}
