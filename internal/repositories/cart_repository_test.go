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

func setupCartRepoTest(t *testing.T) (repository.CartRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newMockDB(t)

	repo := repository.NewCartRepo(db)
	require.NotNil(t, repo, "NewCartRepo should return a non-nil repository")

	return repo, mock
}

var (
	upsertLineSQL = regexp.QuoteMeta(`ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`)
	updateLineSQL = regexp.QuoteMeta(`UPDATE cart_items SET quantity = $3`)
	lineColumns   = []string{"id", "quantity", "product_id", "title", "unit_price"}
)

func TestCreateCart(t *testing.T) {
	repo, mock := setupCartRepoTest(t)
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		cart := &models.Cart{ID: uuid.New()}
		now := time.Now()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO carts (id, created_at)`)).
			WithArgs(cart.ID).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

		// Act
		err := repo.CreateCart(ctx, cart)

		// Assert
		require.NoError(t, err)
		assert.WithinDuration(t, now, cart.CreatedAt, time.Second)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		dbError := errors.New("database insertion error")
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO carts`)).WillReturnError(dbError)

		// Act
		err := repo.CreateCart(ctx, &models.Cart{ID: uuid.New()})

		// Assert
		require.ErrorIs(t, err, dbError)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetCartByID(t *testing.T) {
	repo, mock := setupCartRepoTest(t)
	ctx := t.Context()
	cartID := uuid.New()

	t.Run("Success - Totals from current prices", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, created_at FROM carts WHERE id = $1`)).
			WithArgs(cartID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(cartID.String(), time.Now()))
		mock.ExpectQuery(regexp.QuoteMeta(`FROM cart_items ci`)).
			WithArgs(cartID).
			WillReturnRows(sqlmock.NewRows(lineColumns).
				AddRow(int64(1), 2, int64(10), "Mug", "10.00").
				AddRow(int64(2), 1, int64(11), "Pen", "5.00"))

		// Act
		cart, err := repo.GetCartByID(ctx, cartID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, cartID, cart.ID)
		require.Len(t, cart.Items, 2)
		assertDecimal(t, "20.00", cart.Items[0].TotalPrice)
		assertDecimal(t, "25.00", cart.TotalPrice)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Empty cart", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(regexp.QuoteMeta(`FROM carts WHERE id = $1`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(cartID.String(), time.Now()))
		mock.ExpectQuery(regexp.QuoteMeta(`FROM cart_items ci`)).
			WillReturnRows(sqlmock.NewRows(lineColumns))

		// Act
		cart, err := repo.GetCartByID(ctx, cartID)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
		assert.True(t, cart.TotalPrice.IsZero())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Cart Not Found", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(regexp.QuoteMeta(`FROM carts WHERE id = $1`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}))

		// Act
		cart, err := repo.GetCartByID(ctx, cartID)

		// Assert
		require.ErrorIs(t, err, repository.ErrCartNotFound)
		assert.Nil(t, cart)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteCart(t *testing.T) {
	repo, mock := setupCartRepoTest(t)
	ctx := t.Context()
	cartID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM carts WHERE id = $1`)).
			WithArgs(cartID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DeleteCart(ctx, cartID))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Cart Not Found", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM carts`)).
			WithArgs(cartID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.ErrorIs(t, repo.DeleteCart(ctx, cartID), repository.ErrCartNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAddItem(t *testing.T) {
	repo, mock := setupCartRepoTest(t)
	ctx := t.Context()
	cartID := uuid.New()

	t.Run("Success - Upsert returns accumulated quantity", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(upsertLineSQL).
			WithArgs(cartID, int64(10), 3).
			WillReturnRows(sqlmock.NewRows(lineColumns).AddRow(int64(1), 5, int64(10), "Mug", "10.00"))

		// Act
		item, err := repo.AddItem(ctx, cartID, 10, 3)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 5, item.Quantity)
		assert.Equal(t, int64(10), item.Product.ID)
		assertDecimal(t, "50.00", item.TotalPrice)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Unknown Cart", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(upsertLineSQL).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "cart_items_cart_id_fkey"})

		// Act
		item, err := repo.AddItem(ctx, cartID, 10, 1)

		// Assert
		require.ErrorIs(t, err, repository.ErrCartNotFound)
		assert.Nil(t, item)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		mock.ExpectQuery(upsertLineSQL).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "cart_items_product_id_fkey"})

		_, err := repo.AddItem(ctx, cartID, 99, 1)

		require.ErrorIs(t, err, repository.ErrProductNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Quantity Overflow", func(t *testing.T) {
		mock.ExpectQuery(upsertLineSQL).
			WillReturnError(&pq.Error{Code: "22003"})

		_, err := repo.AddItem(ctx, cartID, 10, 32767)

		require.ErrorIs(t, err, repository.ErrOutOfRange)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		dbError := errors.New("connection reset")
		mock.ExpectQuery(upsertLineSQL).WillReturnError(dbError)

		_, err := repo.AddItem(ctx, cartID, 10, 1)

		require.ErrorIs(t, err, dbError)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateItemQuantity(t *testing.T) {
	repo, mock := setupCartRepoTest(t)
	ctx := t.Context()
	cartID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(updateLineSQL).
			WithArgs(cartID, int64(10), 4).
			WillReturnRows(sqlmock.NewRows(lineColumns).AddRow(int64(1), 4, int64(10), "Mug", "2.50"))

		// Act
		item, err := repo.UpdateItemQuantity(ctx, cartID, 10, 4)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 4, item.Quantity)
		assertDecimal(t, "10.00", item.TotalPrice)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Line Not Found", func(t *testing.T) {
		mock.ExpectQuery(updateLineSQL).
			WillReturnRows(sqlmock.NewRows(lineColumns))

		_, err := repo.UpdateItemQuantity(ctx, cartID, 10, 4)

		require.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRemoveItem(t *testing.T) {
	repo, mock := setupCartRepoTest(t)
	ctx := t.Context()
	cartID := uuid.New()
	removeSQL := regexp.QuoteMeta(`DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(removeSQL).
			WithArgs(cartID, int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.RemoveItem(ctx, cartID, 10))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Line Not Found", func(t *testing.T) {
		mock.ExpectExec(removeSQL).
			WithArgs(cartID, int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.ErrorIs(t, repo.RemoveItem(ctx, cartID, 10), repository.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
