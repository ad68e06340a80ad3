package repository_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/storefront-labs/storefront-api/internal/models"
	repository "github.com/storefront-labs/storefront-api/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOrderRepoTest(t *testing.T) (repository.OrderRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newMockDB(t)

	repo := repository.NewOrderRepository(db)
	require.NotNil(t, repo, "NewOrderRepository should return a non-nil repository")

	return repo, mock
}

var (
	lockCartSQL      = regexp.QuoteMeta(`SELECT id FROM carts WHERE id = $1 FOR UPDATE`)
	checkoutLinesSQL = regexp.QuoteMeta(`SELECT ci.quantity, p.id, p.title, p.unit_price`)
	customerByUser   = regexp.QuoteMeta(`SELECT id FROM customers WHERE user_id = $1`)
	insertOrderSQL   = regexp.QuoteMeta(`INSERT INTO orders (customer_id, payment_status, placed_at)`)
	insertItemSQL    = regexp.QuoteMeta(`INSERT INTO order_items (order_id, product_id, quantity, unit_price)`)
	deleteCartSQL    = regexp.QuoteMeta(`DELETE FROM carts WHERE id = $1`)
	orderItemsSQL    = regexp.QuoteMeta(`WHERE oi.order_id = ANY($1)`)
	orderColumns     = []string{"id", "customer_id", "placed_at", "payment_status"}
	orderItemColumns = []string{"id", "order_id", "quantity", "unit_price", "product_id", "title", "product_price"}
)

func TestCreateOrderFromCart(t *testing.T) {
	repo, mock := setupOrderRepoTest(t)
	ctx := t.Context()
	cartID := uuid.New()
	userID := uuid.New()

	t.Run("Success - Items frozen and cart deleted", func(t *testing.T) {
		// Arrange
		placedAt := time.Now()
		mock.ExpectBegin()
		mock.ExpectQuery(lockCartSQL).WithArgs(cartID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(cartID.String()))
		mock.ExpectQuery(checkoutLinesSQL).WithArgs(cartID).
			WillReturnRows(sqlmock.NewRows([]string{"quantity", "id", "title", "unit_price"}).
				AddRow(2, int64(1), "A", "10.00").
				AddRow(1, int64(2), "B", "5.00"))
		mock.ExpectQuery(customerByUser).WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
		mock.ExpectQuery(insertOrderSQL).WithArgs(int64(7), models.PaymentStatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"id", "placed_at"}).AddRow(int64(100), placedAt))
		mock.ExpectQuery(insertItemSQL).WithArgs(int64(100), int64(1), 2, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1000)))
		mock.ExpectQuery(insertItemSQL).WithArgs(int64(100), int64(2), 1, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1001)))
		mock.ExpectExec(deleteCartSQL).WithArgs(cartID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		// Act
		order, err := repo.CreateOrderFromCart(ctx, cartID, userID)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, int64(100), order.ID)
		assert.Equal(t, int64(7), order.CustomerID)
		assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
		require.Len(t, order.Items, 2)
		assert.Equal(t, int64(1000), order.Items[0].ID)
		assert.Equal(t, int64(100), order.Items[1].OrderID)
		assertDecimal(t, "10.00", order.Items[0].UnitPrice)
		assertDecimal(t, "25.00", order.Total)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Cart vanished before lock", func(t *testing.T) {
		// Arrange
		mock.ExpectBegin()
		mock.ExpectQuery(lockCartSQL).WithArgs(cartID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		// Act
		order, err := repo.CreateOrderFromCart(ctx, cartID, userID)

		// Assert
		require.ErrorIs(t, err, repository.ErrConflict)
		assert.Nil(t, order)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Cart has no lines", func(t *testing.T) {
		// Arrange
		mock.ExpectBegin()
		mock.ExpectQuery(lockCartSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(cartID.String()))
		mock.ExpectQuery(checkoutLinesSQL).
			WillReturnRows(sqlmock.NewRows([]string{"quantity", "id", "title", "unit_price"}))
		mock.ExpectRollback()

		// Act
		order, err := repo.CreateOrderFromCart(ctx, cartID, userID)

		// Assert
		require.ErrorIs(t, err, repository.ErrCartEmpty)
		assert.Nil(t, order)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - No customer for user", func(t *testing.T) {
		// Arrange
		mock.ExpectBegin()
		mock.ExpectQuery(lockCartSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(cartID.String()))
		mock.ExpectQuery(checkoutLinesSQL).
			WillReturnRows(sqlmock.NewRows([]string{"quantity", "id", "title", "unit_price"}).AddRow(1, int64(1), "A", "10.00"))
		mock.ExpectQuery(customerByUser).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		// Act
		_, err := repo.CreateOrderFromCart(ctx, cartID, userID)

		// Assert
		require.ErrorIs(t, err, repository.ErrCustomerNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Concurrent checkout deleted the cart", func(t *testing.T) {
		// Arrange
		mock.ExpectBegin()
		mock.ExpectQuery(lockCartSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(cartID.String()))
		mock.ExpectQuery(checkoutLinesSQL).
			WillReturnRows(sqlmock.NewRows([]string{"quantity", "id", "title", "unit_price"}).AddRow(1, int64(1), "A", "10.00"))
		mock.ExpectQuery(customerByUser).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
		mock.ExpectQuery(insertOrderSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id", "placed_at"}).AddRow(int64(101), time.Now()))
		mock.ExpectQuery(insertItemSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1002)))
		mock.ExpectExec(deleteCartSQL).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		// Act
		order, err := repo.CreateOrderFromCart(ctx, cartID, userID)

		// Assert
		require.ErrorIs(t, err, repository.ErrConflict)
		assert.Nil(t, order)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Item insert error rolls back", func(t *testing.T) {
		// Arrange
		dbError := errors.New("insert failed")
		mock.ExpectBegin()
		mock.ExpectQuery(lockCartSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(cartID.String()))
		mock.ExpectQuery(checkoutLinesSQL).
			WillReturnRows(sqlmock.NewRows([]string{"quantity", "id", "title", "unit_price"}).AddRow(1, int64(1), "A", "10.00"))
		mock.ExpectQuery(customerByUser).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
		mock.ExpectQuery(insertOrderSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id", "placed_at"}).AddRow(int64(102), time.Now()))
		mock.ExpectQuery(insertItemSQL).WillReturnError(dbError)
		mock.ExpectRollback()

		// Act
		_, err := repo.CreateOrderFromCart(ctx, cartID, userID)

		// Assert
		require.ErrorIs(t, err, dbError)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Begin transaction", func(t *testing.T) {
		mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

		_, err := repo.CreateOrderFromCart(ctx, cartID, userID)

		require.ErrorContains(t, err, "failed to begin transaction")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetOrderByID(t *testing.T) {
	repo, mock := setupOrderRepoTest(t)
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE id = $1`)).WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(orderColumns).AddRow(int64(5), int64(7), time.Now(), "complete"))
		mock.ExpectQuery(orderItemsSQL).WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(orderItemColumns).
				AddRow(int64(1), int64(5), 3, "4.00", int64(9), "Cup", "6.00"))

		// Act
		order, err := repo.GetOrderByID(ctx, 5)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusComplete, order.PaymentStatus)
		require.Len(t, order.Items, 1)
		assertDecimal(t, "12.00", order.Total)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE id = $1`)).
			WillReturnRows(sqlmock.NewRows(orderColumns))

		order, err := repo.GetOrderByID(ctx, 5)

		require.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, order)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListOrders(t *testing.T) {
	repo, mock := setupOrderRepoTest(t)
	ctx := t.Context()
	countSQL := regexp.QuoteMeta(`SELECT COUNT(*) FROM orders`)
	listSQL := regexp.QuoteMeta(`ORDER BY placed_at DESC, id DESC`)

	t.Run("Success - Customer scoped", func(t *testing.T) {
		// Arrange
		customerID := int64(7)
		mock.ExpectQuery(countSQL).WithArgs(customerID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(listSQL).WithArgs(customerID, 10, 0).
			WillReturnRows(sqlmock.NewRows(orderColumns).
				AddRow(int64(2), customerID, time.Now(), "pending").
				AddRow(int64(1), customerID, time.Now().Add(-time.Hour), "complete"))
		mock.ExpectQuery(orderItemsSQL).
			WillReturnRows(sqlmock.NewRows(orderItemColumns).
				AddRow(int64(10), int64(1), 1, "3.00", int64(9), "Cup", "6.00").
				AddRow(int64(11), int64(2), 2, "6.00", int64(9), "Cup", "6.00"))

		// Act
		orders, total, err := repo.ListOrders(ctx, &customerID, 1, 10)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, orders, 2)
		assertDecimal(t, "12.00", orders[0].Total)
		assertDecimal(t, "3.00", orders[1].Total)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - All orders without items query when empty", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(countSQL).WithArgs(nil).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(listSQL).WithArgs(nil, 10, 10).
			WillReturnRows(sqlmock.NewRows(orderColumns))

		// Act
		orders, total, err := repo.ListOrders(ctx, nil, 2, 10)

		// Assert
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, orders)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdatePaymentStatus(t *testing.T) {
	repo, mock := setupOrderRepoTest(t)
	ctx := t.Context()
	updateSQL := regexp.QuoteMeta(`UPDATE orders SET payment_status = $1 WHERE id = $2`)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(updateSQL).WithArgs(models.PaymentStatusFailed, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdatePaymentStatus(ctx, 3, models.PaymentStatusFailed))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		mock.ExpectExec(updateSQL).WillReturnResult(sqlmock.NewResult(0, 0))

		require.ErrorIs(t, repo.UpdatePaymentStatus(ctx, 3, models.PaymentStatusFailed), repository.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteOrder(t *testing.T) {
	repo, mock := setupOrderRepoTest(t)
	ctx := t.Context()
	deleteSQL := regexp.QuoteMeta(`DELETE FROM orders WHERE id = $1`)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(deleteSQL).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DeleteOrder(ctx, 3))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Order has items", func(t *testing.T) {
		mock.ExpectExec(deleteSQL).WillReturnError(&pq.Error{Code: "23503", Constraint: "order_items_order_id_fkey"})

		require.ErrorIs(t, repo.DeleteOrder(ctx, 3), repository.ErrProtected)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		mock.ExpectExec(deleteSQL).WillReturnResult(sqlmock.NewResult(0, 0))

		require.ErrorIs(t, repo.DeleteOrder(ctx, 3), repository.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
