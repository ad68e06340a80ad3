package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/storefront-labs/storefront-api/internal/api/middleware"
	appErrors "github.com/storefront-labs/storefront-api/internal/errors"
	"github.com/storefront-labs/storefront-api/internal/events"
	"github.com/storefront-labs/storefront-api/internal/metrics"
	"github.com/storefront-labs/storefront-api/internal/models"
	repository "github.com/storefront-labs/storefront-api/internal/repositories"
)

type OrderService interface {
	Checkout(ctx context.Context, claims *models.Claims, req *models.CreateOrderRequest) (*models.Order, error)
	ListOrders(ctx context.Context, claims *models.Claims, page, pageSize int) ([]*models.Order, int, error)
	GetOrder(ctx context.Context, claims *models.Claims, id int64) (*models.Order, error)
	UpdateStatus(ctx context.Context, id int64, req *models.UpdateOrderStatusRequest) (*models.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

type orderService struct {
	orders    repository.OrderRepository
	carts     repository.CartRepository
	customers repository.CustomerRepository
	publisher events.Publisher
}

func NewOrderService(orders repository.OrderRepository, carts repository.CartRepository, customers repository.CustomerRepository, publisher events.Publisher) OrderService {
	return &orderService{orders: orders, carts: carts, customers: customers, publisher: publisher}
}

/*
Checkout turns the cart into an order:
  - the cart must exist and hold at least one line
  - the conversion runs in one transaction that locks the cart, so of two
    concurrent checkouts of the same cart exactly one succeeds
  - OrderCreated is published after commit and its delivery never fails the checkout
*/
func (s *orderService) Checkout(ctx context.Context, claims *models.Claims, req *models.CreateOrderRequest) (*models.Order, error) {

	logger := middleware.LoggerFromContext(ctx)

	if claims == nil {
		return nil, appErrors.UnauthorizedError("Authentication credentials were not provided")
	}

	cart, err := s.carts.GetCartByID(ctx, req.CartID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			metrics.ObserveCheckout(metrics.OutcomeRejected)
			return nil, appErrors.ValidationError("cart not found").WithError(err)
		}

		metrics.ObserveCheckout(metrics.OutcomeError)
		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	if len(cart.Items) == 0 {
		metrics.ObserveCheckout(metrics.OutcomeRejected)
		return nil, appErrors.ValidationError("cart is empty")
	}

	order, err := s.orders.CreateOrderFromCart(ctx, req.CartID, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			metrics.ObserveCheckout(metrics.OutcomeConflict)
			return nil, appErrors.ConflictError("Cart was modified by a concurrent checkout").WithError(err)
		case errors.Is(err, repository.ErrCartEmpty):
			metrics.ObserveCheckout(metrics.OutcomeRejected)
			return nil, appErrors.ValidationError("cart is empty").WithError(err)
		case errors.Is(err, repository.ErrCustomerNotFound):
			metrics.ObserveCheckout(metrics.OutcomeRejected)
			return nil, appErrors.NotFoundError("Customer not found").WithError(err)
		}

		metrics.ObserveCheckout(metrics.OutcomeError)
		return nil, appErrors.DatabaseError("Failed to create order").WithError(err)
	}

	metrics.ObserveCheckout(metrics.OutcomeSuccess)

	logger.Info("Order placed", slog.Int64("orderId", order.ID), slog.String("cartId", req.CartID.String()), slog.Int("items", len(order.Items)))

	s.publisher.PublishOrderCreated(ctx, events.OrderCreated{Order: order, UserID: claims.UserID, Email: claims.Email})

	return order, nil
}

// ListOrders returns every order to staff and only their own to customers.
func (s *orderService) ListOrders(ctx context.Context, claims *models.Claims, page, pageSize int) ([]*models.Order, int, error) {

	if claims == nil {
		return nil, 0, appErrors.UnauthorizedError("Authentication credentials were not provided")
	}

	var customerID *int64

	if !claims.IsStaff {
		customer, err := s.customers.GetCustomerByUserID(ctx, claims.UserID)
		if err != nil {
			return nil, 0, mapCustomerError(err, "Failed to resolve customer")
		}

		customerID = &customer.ID
	}

	orders, total, err := s.orders.ListOrders(ctx, customerID, page, pageSize)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}

func (s *orderService) GetOrder(ctx context.Context, claims *models.Claims, id int64) (*models.Order, error) {

	if claims == nil {
		return nil, appErrors.UnauthorizedError("Authentication credentials were not provided")
	}

	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		return nil, mapOrderError(err, "Failed to fetch order")
	}

	if claims.IsStaff {
		return order, nil
	}

	customer, err := s.customers.GetCustomerByUserID(ctx, claims.UserID)
	if err != nil && !errors.Is(err, repository.ErrCustomerNotFound) {
		return nil, appErrors.DatabaseError("Failed to resolve customer").WithError(err)
	}

	if customer == nil || customer.ID != order.CustomerID {
		return nil, appErrors.ForbiddenError("You do not have permission to view this order")
	}

	return order, nil
}

// UpdateStatus allows any transition between the known statuses.
func (s *orderService) UpdateStatus(ctx context.Context, id int64, req *models.UpdateOrderStatusRequest) (*models.Order, error) {

	if !req.PaymentStatus.Valid() {
		return nil, appErrors.AddValidationError("payment_status", "must be one of pending, complete, failed")
	}

	if err := s.orders.UpdatePaymentStatus(ctx, id, req.PaymentStatus); err != nil {
		return nil, mapOrderError(err, "Failed to update order status")
	}

	middleware.LoggerFromContext(ctx).Info("Order status updated", slog.Int64("orderId", id), slog.String("status", string(req.PaymentStatus)))

	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		return nil, mapOrderError(err, "Failed to fetch order")
	}

	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id int64) error {

	if err := s.orders.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProtected) {
			return appErrors.ConflictError("Order cannot be deleted because it has order items").WithError(err)
		}

		return mapOrderError(err, "Failed to delete order")
	}

	return nil
}

func mapOrderError(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.NotFoundError("Order not found").WithError(err)
	}

	return appErrors.DatabaseError(message).WithError(err)
}
