package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/storefront-labs/storefront-api/internal/api/middleware"
	appErrors "github.com/storefront-labs/storefront-api/internal/errors"
	"github.com/storefront-labs/storefront-api/internal/models"
	repository "github.com/storefront-labs/storefront-api/internal/repositories"
	"github.com/storefront-labs/storefront-api/pkg/stripe"
)

const (
	eventPaymentSucceeded = "payment_intent.succeeded"
	eventPaymentFailed    = "payment_intent.payment_failed"
)

var hundred = decimal.NewFromInt(100)

type PaymentService interface {
	CreatePayment(ctx context.Context, claims *models.Claims, req *models.CreatePaymentRequest) (*models.PaymentResponse, error)
	ProcessWebhook(ctx context.Context, payload []byte, signature string) error
}

type paymentService struct {
	payments  repository.PaymentRepository
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	stripe    stripe.Client
	currency  string
}

func NewPaymentService(payments repository.PaymentRepository, orders repository.OrderRepository, customers repository.CustomerRepository, stripeClient stripe.Client, currency string) PaymentService {
	return &paymentService{
		payments:  payments,
		orders:    orders,
		customers: customers,
		stripe:    stripeClient,
		currency:  currency,
	}
}

// CreatePayment opens a payment intent for the caller's own unpaid order.
func (s *paymentService) CreatePayment(ctx context.Context, claims *models.Claims, req *models.CreatePaymentRequest) (*models.PaymentResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	if claims == nil {
		return nil, appErrors.UnauthorizedError("Authentication credentials were not provided")
	}

	order, err := s.orders.GetOrderByID(ctx, req.OrderID)
	if err != nil {
		return nil, mapOrderError(err, "Failed to fetch order")
	}

	customer, err := s.customers.GetCustomerByUserID(ctx, claims.UserID)
	if err != nil && !errors.Is(err, repository.ErrCustomerNotFound) {
		return nil, appErrors.DatabaseError("Failed to resolve customer").WithError(err)
	}

	if customer == nil || customer.ID != order.CustomerID {
		return nil, appErrors.ForbiddenError("You do not have permission to pay for this order")
	}

	if order.PaymentStatus == models.PaymentStatusComplete {
		return nil, appErrors.ConflictError("Order has already been paid")
	}

	amount := order.Total.Mul(hundred).Round(0).IntPart()

	metadata := map[string]string{
		"order_id": strconv.FormatInt(order.ID, 10),
		"user_id":  claims.UserID.String(),
	}

	intent, err := s.stripe.CreatePaymentIntent(ctx, amount, s.currency, fmt.Sprintf("Order #%d", order.ID), metadata)
	if err != nil {
		logger.Error("Failed to create payment intent", slog.Int64("orderId", order.ID), slog.String("error", err.Error()))
		return nil, appErrors.ThirdPartyError("Failed to create payment intent").WithError(err)
	}

	payment := &models.Payment{
		ID:          intent.ID,
		OrderID:     order.ID,
		AmountCents: amount,
		Currency:    s.currency,
		Status:      models.PaymentStatusPending,
	}

	if err := s.payments.CreatePayment(ctx, payment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to save payment").WithError(err)
	}

	logger.Info("Payment intent created", slog.String("paymentId", payment.ID), slog.Int64("orderId", order.ID), slog.Int64("amountCents", amount))

	return &models.PaymentResponse{Payment: payment, ClientSecret: intent.ClientSecret}, nil
}

// ProcessWebhook settles the payment and its order from a signed Stripe event.
// Event types other than intent success or failure are acknowledged and ignored.
func (s *paymentService) ProcessWebhook(ctx context.Context, payload []byte, signature string) error {

	logger := middleware.LoggerFromContext(ctx)

	event, err := s.stripe.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return appErrors.BadRequestError("Invalid webhook signature").WithError(err)
	}

	var status models.PaymentStatus

	switch string(event.Type) {
	case eventPaymentSucceeded:
		status = models.PaymentStatusComplete
	case eventPaymentFailed:
		status = models.PaymentStatusFailed
	default:
		logger.Debug("Ignoring webhook event", slog.String("type", string(event.Type)))
		return nil
	}

	if event.Data == nil {
		return appErrors.BadRequestError("Webhook event has no payload")
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return appErrors.BadRequestError("Invalid payment intent payload").WithError(err)
	}

	orderID, err := s.payments.SettlePayment(ctx, intent.ID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.NotFoundError("Payment not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to settle payment").WithError(err)
	}

	logger.Info("Payment settled", slog.String("paymentId", intent.ID), slog.Int64("orderId", orderID), slog.String("status", string(status)))

	return nil
}
