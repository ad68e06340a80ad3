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

func TestUserRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewUserRepo(db)
	ctx := t.Context()

	insertUserSQL := regexp.QuoteMeta(`INSERT INTO users (email, password, first_name, last_name, is_staff, created_at, updated_at)`)
	insertCustomerSQL := regexp.QuoteMeta(`INSERT INTO customers (user_id, phone, membership)`)
	userColumns := []string{"id", "email", "password", "first_name", "last_name", "is_staff", "created_at", "updated_at"}

	t.Run("CreateUser", func(t *testing.T) {

		t.Run("Success - User and customer in one transaction", func(t *testing.T) {
			// Arrange
			userID := uuid.New()
			now := time.Now()
			user := &models.User{Email: "ann@example.com", Password: "hash", FirstName: "Ann", LastName: "Lee"}
			customer := &models.Customer{Membership: models.MembershipBronze}

			mock.ExpectBegin()
			mock.ExpectQuery(insertUserSQL).WithArgs("ann@example.com", "hash", "Ann", "Lee", false).
				WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(userID.String(), now, now))
			mock.ExpectQuery(insertCustomerSQL).WithArgs(userID, "", models.MembershipBronze).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))
			mock.ExpectCommit()

			// Act
			err := repo.CreateUser(ctx, user, customer)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, userID, user.ID)
			assert.Equal(t, int64(9), customer.ID)
			assert.Equal(t, userID, customer.UserID)
			assert.Equal(t, "ann@example.com", customer.Email)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Duplicate email", func(t *testing.T) {
			mock.ExpectBegin()
			mock.ExpectQuery(insertUserSQL).WillReturnError(&pq.Error{Code: "23505"})
			mock.ExpectRollback()

			err := repo.CreateUser(ctx, &models.User{Email: "ann@example.com"}, &models.Customer{})

			require.ErrorIs(t, err, repository.ErrDuplicate)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Customer insert rolls back the user", func(t *testing.T) {
			dbError := errors.New("customer insert failed")
			mock.ExpectBegin()
			mock.ExpectQuery(insertUserSQL).
				WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(uuid.NewString(), time.Now(), time.Now()))
			mock.ExpectQuery(insertCustomerSQL).WillReturnError(dbError)
			mock.ExpectRollback()

			err := repo.CreateUser(ctx, &models.User{Email: "bob@example.com"}, &models.Customer{})

			require.ErrorIs(t, err, dbError)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetUserByEmail", func(t *testing.T) {
		selectSQL := regexp.QuoteMeta(`FROM users WHERE email = $1`)

		t.Run("Success", func(t *testing.T) {
			userID := uuid.New()
			mock.ExpectQuery(selectSQL).WithArgs("ann@example.com").
				WillReturnRows(sqlmock.NewRows(userColumns).AddRow(userID.String(), "ann@example.com", "hash", "Ann", "Lee", true, time.Now(), time.Now()))

			user, err := repo.GetUserByEmail(ctx, "ann@example.com")

			require.NoError(t, err)
			assert.Equal(t, userID, user.ID)
			assert.True(t, user.IsStaff)
			assert.Equal(t, "hash", user.Password)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Not Found", func(t *testing.T) {
			mock.ExpectQuery(selectSQL).WillReturnRows(sqlmock.NewRows(userColumns))

			user, err := repo.GetUserByEmail(ctx, "nobody@example.com")

			require.ErrorIs(t, err, repository.ErrNotFound)
			assert.Nil(t, user)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetUserByID", func(t *testing.T) {
		userID := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "first_name", "last_name", "is_staff", "created_at", "updated_at"}).
				AddRow(userID.String(), "ann@example.com", "Ann", "Lee", false, time.Now(), time.Now()))

		user, err := repo.GetUserByID(ctx, userID)

		require.NoError(t, err)
		assert.Empty(t, user.Password)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
