package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	appErrors "github.com/storefront-labs/storefront-api/internal/errors"
	"github.com/storefront-labs/storefront-api/internal/models"
	repository "github.com/storefront-labs/storefront-api/internal/repositories"
)

// cart_items.quantity is a SMALLINT
const maxLineQuantity = 32767

type CartService interface {
	CreateCart(ctx context.Context) (*models.Cart, error)
	GetCart(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	DeleteCart(ctx context.Context, id uuid.UUID) error
	AddItem(ctx context.Context, cartID uuid.UUID, req *models.AddItemRequest) (*models.CartItem, error)
	UpdateItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, cartID uuid.UUID, productID int64) error
}

type cartService struct {
	repo repository.CartRepository
}

func NewCartService(repo repository.CartRepository) CartService {
	return &cartService{repo: repo}
}

func (s *cartService) CreateCart(ctx context.Context) (*models.Cart, error) {

	cart := &models.Cart{ID: uuid.New(), Items: []models.CartItem{}}

	if err := s.repo.CreateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to create cart").WithError(err)
	}

	cart.CalculateTotal()

	return cart, nil
}

func (s *cartService) GetCart(ctx context.Context, id uuid.UUID) (*models.Cart, error) {

	cart, err := s.repo.GetCartByID(ctx, id)
	if err != nil {
		return nil, mapCartError(err, "Failed to fetch cart")
	}

	return cart, nil
}

func (s *cartService) DeleteCart(ctx context.Context, id uuid.UUID) error {

	if err := s.repo.DeleteCart(ctx, id); err != nil {
		return mapCartError(err, "Failed to delete cart")
	}

	return nil
}

// AddItem merges the quantity into an existing line for the same product.
func (s *cartService) AddItem(ctx context.Context, cartID uuid.UUID, req *models.AddItemRequest) (*models.CartItem, error) {

	if err := validateQuantity(req.Quantity); err != nil {
		return nil, err
	}

	item, err := s.repo.AddItem(ctx, cartID, req.ProductID, req.Quantity)
	if err != nil {
		return nil, mapCartError(err, "Failed to add item to cart")
	}

	return item, nil
}

func (s *cartService) UpdateItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*models.CartItem, error) {

	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	item, err := s.repo.UpdateItemQuantity(ctx, cartID, productID, quantity)
	if err != nil {
		return nil, mapCartError(err, "Failed to update cart item")
	}

	return item, nil
}

func (s *cartService) RemoveItem(ctx context.Context, cartID uuid.UUID, productID int64) error {

	if err := s.repo.RemoveItem(ctx, cartID, productID); err != nil {
		return mapCartError(err, "Failed to remove cart item")
	}

	return nil
}

func validateQuantity(quantity int) error {
	if quantity < 1 || quantity > maxLineQuantity {
		return appErrors.AddValidationError("quantity", "must be between 1 and 32767")
	}

	return nil
}

func mapCartError(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrCartNotFound):
		return appErrors.NotFoundError("Cart not found").WithError(err)
	case errors.Is(err, repository.ErrProductNotFound):
		return appErrors.NotFoundError("Product not found").WithError(err)
	case errors.Is(err, repository.ErrNotFound):
		return appErrors.NotFoundError("Cart item not found").WithError(err)
	case errors.Is(err, repository.ErrOutOfRange):
		return appErrors.AddValidationError("quantity", "must be between 1 and 32767").WithError(err)
	}

	return appErrors.DatabaseError(message).WithError(err)
}
