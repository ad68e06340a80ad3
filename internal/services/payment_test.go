package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appErrors "github.com/storefront-labs/storefront-api/internal/errors"
	"github.com/storefront-labs/storefront-api/internal/models"
	repository "github.com/storefront-labs/storefront-api/internal/repositories"
	"github.com/storefront-labs/storefront-api/internal/repositories/mocks"
	service "github.com/storefront-labs/storefront-api/internal/services"
	stripeMocks "github.com/storefront-labs/storefront-api/pkg/stripe/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	stripego "github.com/stripe/stripe-go/v81"
)

type paymentServiceMocks struct {
	payments  *mocks.PaymentRepository
	orders    *mocks.OrderRepository
	customers *mocks.CustomerRepository
	stripe    *stripeMocks.Client
}

func setupPaymentServiceTest(t *testing.T) (service.PaymentService, paymentServiceMocks) {
	m := paymentServiceMocks{
		payments:  mocks.NewPaymentRepository(t),
		orders:    mocks.NewOrderRepository(t),
		customers: mocks.NewCustomerRepository(t),
		stripe:    stripeMocks.NewClient(t),
	}

	return service.NewPaymentService(m.payments, m.orders, m.customers, m.stripe, "usd"), m
}

func TestCreatePayment(t *testing.T) {
	ctx := context.Background()
	claims := &models.Claims{UserID: uuid.New()}
	order := &models.Order{ID: 11, CustomerID: 3, PaymentStatus: models.PaymentStatusPending, Total: decimal.RequireFromString("25.00")}

	t.Run("Success - Intent created for own order", func(t *testing.T) {
		// Arrange
		paymentService, m := setupPaymentServiceTest(t)
		m.orders.On("GetOrderByID", mock.Anything, int64(11)).Return(order, nil).Once()
		m.customers.On("GetCustomerByUserID", mock.Anything, claims.UserID).Return(&models.Customer{ID: 3}, nil).Once()
		m.stripe.On("CreatePaymentIntent", mock.Anything, int64(2500), "usd", "Order #11", mock.MatchedBy(func(md map[string]string) bool {
			return md["order_id"] == "11"
		})).Return(&stripego.PaymentIntent{ID: "pi_123", ClientSecret: "pi_123_secret"}, nil).Once()
		m.payments.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p *models.Payment) bool {
			return p.ID == "pi_123" && p.OrderID == 11 && p.AmountCents == 2500 && p.Status == models.PaymentStatusPending
		})).Return(nil).Once()

		// Act
		resp, err := paymentService.CreatePayment(ctx, claims, &models.CreatePaymentRequest{OrderID: 11})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "pi_123_secret", resp.ClientSecret)
		assert.Equal(t, "usd", resp.Payment.Currency)
	})

	t.Run("Failure - Order belongs to someone else", func(t *testing.T) {
		// Arrange
		paymentService, m := setupPaymentServiceTest(t)
		m.orders.On("GetOrderByID", mock.Anything, int64(11)).Return(order, nil).Once()
		m.customers.On("GetCustomerByUserID", mock.Anything, claims.UserID).Return(&models.Customer{ID: 9}, nil).Once()

		// Act
		resp, err := paymentService.CreatePayment(ctx, claims, &models.CreatePaymentRequest{OrderID: 11})

		// Assert
		assert.Nil(t, resp)
		assertAppErrorCode(t, err, appErrors.ErrCodeForbidden)
	})

	t.Run("Failure - Order already paid", func(t *testing.T) {
		// Arrange
		paymentService, m := setupPaymentServiceTest(t)
		paid := *order
		paid.PaymentStatus = models.PaymentStatusComplete
		m.orders.On("GetOrderByID", mock.Anything, int64(11)).Return(&paid, nil).Once()
		m.customers.On("GetCustomerByUserID", mock.Anything, claims.UserID).Return(&models.Customer{ID: 3}, nil).Once()

		// Act
		resp, err := paymentService.CreatePayment(ctx, claims, &models.CreatePaymentRequest{OrderID: 11})

		// Assert
		assert.Nil(t, resp)
		assertAppErrorCode(t, err, appErrors.ErrCodeConflict)
	})

	t.Run("Failure - Stripe rejects the intent", func(t *testing.T) {
		// Arrange
		paymentService, m := setupPaymentServiceTest(t)
		m.orders.On("GetOrderByID", mock.Anything, int64(11)).Return(order, nil).Once()
		m.customers.On("GetCustomerByUserID", mock.Anything, claims.UserID).Return(&models.Customer{ID: 3}, nil).Once()
		m.stripe.On("CreatePaymentIntent", mock.Anything, int64(2500), "usd", mock.Anything, mock.Anything).Return(nil, errors.New("card_declined")).Once()

		// Act
		resp, err := paymentService.CreatePayment(ctx, claims, &models.CreatePaymentRequest{OrderID: 11})

		// Assert
		assert.Nil(t, resp)
		assertAppErrorCode(t, err, appErrors.ErrCodeThirdPartyError)
	})

	t.Run("Failure - Order not found", func(t *testing.T) {
		// Arrange
		paymentService, m := setupPaymentServiceTest(t)
		m.orders.On("GetOrderByID", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound).Once()

		// Act
		resp, err := paymentService.CreatePayment(ctx, claims, &models.CreatePaymentRequest{OrderID: 99})

		// Assert
		assert.Nil(t, resp)
		assertAppErrorCode(t, err, appErrors.ErrCodeNotFound)
	})
}

func intentEvent(t *testing.T, eventType, intentID string) stripego.Event {
	t.Helper()

	raw, err := json.Marshal(map[string]string{"id": intentID, "object": "payment_intent"})
	require.NoError(t, err)

	return stripego.Event{Type: stripego.EventType(eventType), Data: &stripego.EventData{Raw: raw}}
}

func TestProcessWebhook(t *testing.T) {
	ctx := context.Background()
	payload := []byte(`{"id":"evt_1"}`)

	t.Run("Success - Succeeded intent completes the order", func(t *testing.T) {
		// Arrange
		paymentService, m := setupPaymentServiceTest(t)
		m.stripe.On("VerifyWebhookSignature", payload, "sig").Return(intentEvent(t, "payment_intent.succeeded", "pi_123"), nil).Once()
		m.payments.On("SettlePayment", mock.Anything, "pi_123", models.PaymentStatusComplete).Return(int64(11), nil).Once()

		// Act
		err := paymentService.ProcessWebhook(ctx, payload, "sig")

		// Assert
		assert.NoError(t, err)
	})

	t.Run("Success - Failed intent marks the order failed", func(t *testing.T) {
		// Arrange
		paymentService, m := setupPaymentServiceTest(t)
		m.stripe.On("VerifyWebhookSignature", payload, "sig").Return(intentEvent(t, "payment_intent.payment_failed", "pi_123"), nil).Once()
		m.payments.On("SettlePayment", mock.Anything, "pi_123", models.PaymentStatusFailed).Return(int64(11), nil).Once()

		// Act
		err := paymentService.ProcessWebhook(ctx, payload, "sig")

		// Assert
		assert.NoError(t, err)
	})

	t.Run("Success - Unrelated events are ignored", func(t *testing.T) {
		// Arrange
		paymentService, m := setupPaymentServiceTest(t)
		m.stripe.On("VerifyWebhookSignature", payload, "sig").Return(intentEvent(t, "charge.refunded", "ch_1"), nil).Once()

		// Act
		err := paymentService.ProcessWebhook(ctx, payload, "sig")

		// Assert
		assert.NoError(t, err)
		m.payments.AssertNotCalled(t, "SettlePayment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Bad signature", func(t *testing.T) {
		// Arrange
		paymentService, m := setupPaymentServiceTest(t)
		m.stripe.On("VerifyWebhookSignature", payload, "forged").Return(stripego.Event{}, errors.New("signature mismatch")).Once()

		// Act
		err := paymentService.ProcessWebhook(ctx, payload, "forged")

		// Assert
		assertAppErrorCode(t, err, appErrors.ErrCodeBadRequest)
	})

	t.Run("Failure - Unknown payment", func(t *testing.T) {
		// Arrange
		paymentService, m := setupPaymentServiceTest(t)
		m.stripe.On("VerifyWebhookSignature", payload, "sig").Return(intentEvent(t, "payment_intent.succeeded", "pi_missing"), nil).Once()
		m.payments.On("SettlePayment", mock.Anything, "pi_missing", models.PaymentStatusComplete).Return(int64(0), repository.ErrNotFound).Once()

		// Act
		err := paymentService.ProcessWebhook(ctx, payload, "sig")

		// Assert
		assertAppErrorCode(t, err, appErrors.ErrCodeNotFound)
	})
}
