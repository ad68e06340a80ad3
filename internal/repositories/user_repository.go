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

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, customer *models.Customer) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

// CreateUser stores the user and its customer profile together.
func (r *userRepository) CreateUser(ctx context.Context, user *models.User, customer *models.Customer) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return withTx(dbCtx, r.DB, func(tx *sql.Tx) error {

		userQuery := `
			INSERT INTO users (email, password, first_name, last_name, is_staff, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRowContext(dbCtx, userQuery, user.Email, user.Password, user.FirstName, user.LastName, user.IsStaff).
			Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			if hasPgCode(err, pgUniqueViolation) {
				return ErrDuplicate
			}

			return fmt.Errorf("failed to insert user: %w", err)
		}

		customerQuery := `
			INSERT INTO customers (user_id, phone, membership)
			VALUES ($1, $2, $3)
			RETURNING id
		`

		customer.UserID = user.ID
		customer.FirstName = user.FirstName
		customer.LastName = user.LastName
		customer.Email = user.Email

		if err := tx.QueryRowContext(dbCtx, customerQuery, customer.UserID, customer.Phone, customer.Membership).Scan(&customer.ID); err != nil {
			return fmt.Errorf("failed to insert customer: %w", err)
		}

		return nil
	})
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}

	query := `
		SELECT id, email, password, first_name, last_name, is_staff, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, email).Scan(&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName, &user.IsStaff, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}

	query := `
		SELECT id, email, first_name, last_name, is_staff, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.IsStaff, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return user, nil
}
