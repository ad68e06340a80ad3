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

type CustomerRepository interface {
	GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error)
	GetCustomerByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, customer *models.Customer) error
	ListCustomers(ctx context.Context, page, size int) ([]*models.Customer, int, error)
}

type customerRepository struct {
	DB *sql.DB
}

func NewCustomerRepo(db *sql.DB) CustomerRepository {
	return &customerRepository{DB: db}
}

const customerColumns = `c.id, c.user_id, u.first_name, u.last_name, u.email, c.phone, c.birth_date, c.membership`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*models.Customer, error) {
	customer := &models.Customer{}

	var birthDate sql.NullTime

	err := row.Scan(&customer.ID, &customer.UserID, &customer.FirstName, &customer.LastName, &customer.Email, &customer.Phone, &birthDate, &customer.Membership)
	if err != nil {
		return nil, err
	}

	if birthDate.Valid {
		customer.BirthDate = &birthDate.Time
	}

	return customer, nil
}

func (r *customerRepository) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + customerColumns + `
		FROM customers c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`

	customer, err := scanCustomer(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) GetCustomerByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + customerColumns + `
		FROM customers c
		JOIN users u ON u.id = c.user_id
		WHERE c.user_id = $1
	`

	customer, err := scanCustomer(r.DB.QueryRowContext(dbCtx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE customers SET phone = $1, birth_date = $2, membership = $3
		WHERE id = $4
	`

	result, err := r.DB.ExecContext(dbCtx, query, customer.Phone, customer.BirthDate, customer.Membership, customer.ID)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

func (r *customerRepository) ListCustomers(ctx context.Context, page, size int) ([]*models.Customer, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM customers`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	query := `SELECT ` + customerColumns + `
		FROM customers c
		JOIN users u ON u.id = c.user_id
		ORDER BY u.first_name, u.last_name, c.id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, pageOffset(page, size))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}

	defer rows.Close()

	customers := []*models.Customer{}

	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan customer: %w", err)
		}

		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}
