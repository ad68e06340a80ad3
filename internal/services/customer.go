package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	appErrors "github.com/storefront-labs/storefront-api/internal/errors"
	"github.com/storefront-labs/storefront-api/internal/models"
	repository "github.com/storefront-labs/storefront-api/internal/repositories"
	"github.com/storefront-labs/storefront-api/internal/utils"
)

type CustomerService interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*models.Customer, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, req *models.UpdateCustomerRequest) (*models.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*models.Customer, error)
	ListCustomers(ctx context.Context, page, pageSize int) ([]*models.Customer, int, error)
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) GetMe(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {

	customer, err := s.repo.GetCustomerByUserID(ctx, userID)
	if err != nil {
		return nil, mapCustomerError(err, "Failed to fetch customer")
	}

	return customer, nil
}

func (s *customerService) UpdateMe(ctx context.Context, userID uuid.UUID, req *models.UpdateCustomerRequest) (*models.Customer, error) {

	customer, err := s.repo.GetCustomerByUserID(ctx, userID)
	if err != nil {
		return nil, mapCustomerError(err, "Failed to fetch customer")
	}

	if req.Phone != nil {
		customer.Phone = utils.Sanitize(*req.Phone)
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse(time.DateOnly, *req.BirthDate)
		if err != nil {
			return nil, appErrors.AddValidationError("birth_date", "must be formatted as YYYY-MM-DD")
		}
		customer.BirthDate = &birthDate
	}
	if req.Membership != nil {
		customer.Membership = *req.Membership
	}

	if err := s.repo.UpdateCustomer(ctx, customer); err != nil {
		return nil, mapCustomerError(err, "Failed to update customer")
	}

	return customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {

	customer, err := s.repo.GetCustomerByID(ctx, id)
	if err != nil {
		return nil, mapCustomerError(err, "Failed to fetch customer")
	}

	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, page, pageSize int) ([]*models.Customer, int, error) {

	customers, total, err := s.repo.ListCustomers(ctx, page, pageSize)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch customers").WithError(err)
	}

	return customers, total, nil
}

func mapCustomerError(err error, message string) error {
	if errors.Is(err, repository.ErrCustomerNotFound) {
		return appErrors.NotFoundError("Customer not found").WithError(err)
	}

	return appErrors.DatabaseError(message).WithError(err)
}
