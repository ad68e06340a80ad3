package repository_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/storefront-labs/storefront-api/internal/models"
	repository "github.com/storefront-labs/storefront-api/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewPaymentRepository(db)
	ctx := t.Context()

	insertSQL := regexp.QuoteMeta(`INSERT INTO payments (id, order_id, amount_cents, currency, status, created_at, updated_at)`)
	settleSQL := regexp.QuoteMeta(`UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING order_id`)
	orderStatusSQL := regexp.QuoteMeta(`UPDATE orders SET payment_status = $1 WHERE id = $2`)

	t.Run("Success - Create", func(t *testing.T) {
		// Arrange
		now := time.Now()
		payment := &models.Payment{ID: "pi_123", OrderID: 5, AmountCents: 2500, Currency: "usd", Status: models.PaymentStatusPending}
		mock.ExpectQuery(insertSQL).WithArgs("pi_123", int64(5), int64(2500), "usd", models.PaymentStatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		// Act
		err := repo.CreatePayment(ctx, payment)

		// Assert
		require.NoError(t, err)
		assert.WithinDuration(t, now, payment.CreatedAt, time.Second)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Create for unknown order", func(t *testing.T) {
		mock.ExpectQuery(insertSQL).WillReturnError(&pq.Error{Code: "23503", Constraint: "payments_order_id_fkey"})

		err := repo.CreatePayment(ctx, &models.Payment{ID: "pi_123", OrderID: 404})

		require.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Get", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM payments WHERE id = $1`)).WithArgs("pi_123").
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "amount_cents", "currency", "status", "created_at", "updated_at"}).
				AddRow("pi_123", int64(5), int64(2500), "usd", "pending", time.Now(), time.Now()))

		payment, err := repo.GetPaymentByID(ctx, "pi_123")

		require.NoError(t, err)
		assert.Equal(t, int64(2500), payment.AmountCents)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Settle updates payment and order", func(t *testing.T) {
		// Arrange
		mock.ExpectBegin()
		mock.ExpectQuery(settleSQL).WithArgs(models.PaymentStatusComplete, "pi_123").
			WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(int64(5)))
		mock.ExpectExec(orderStatusSQL).WithArgs(models.PaymentStatusComplete, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		// Act
		orderID, err := repo.SettlePayment(ctx, "pi_123", models.PaymentStatusComplete)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(5), orderID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Settle unknown payment", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(settleSQL).WillReturnRows(sqlmock.NewRows([]string{"order_id"}))
		mock.ExpectRollback()

		_, err := repo.SettlePayment(ctx, "pi_missing", models.PaymentStatusFailed)

		require.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
