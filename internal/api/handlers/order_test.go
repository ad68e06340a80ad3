package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront-labs/storefront-api/internal/api/handlers"
	appErrors "github.com/storefront-labs/storefront-api/internal/errors"
	"github.com/storefront-labs/storefront-api/internal/models"
	"github.com/storefront-labs/storefront-api/internal/services/mocks"
	"github.com/storefront-labs/storefront-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateOrder(t *testing.T) {
	userID := uuid.New()
	cartID := uuid.New()

	t.Run("Success - Checkout", func(t *testing.T) {
		// Arrange
		mockService := mocks.NewOrderService(t)
		orderHandler := handlers.NewOrderHandler(mockService)

		order := &models.Order{ID: 11, CustomerID: 3, PaymentStatus: models.PaymentStatusPending, Total: decimal.RequireFromString("25.00")}
		mockService.On("Checkout", mock.Anything, mock.MatchedBy(func(c *models.Claims) bool { return c.UserID == userID }), &models.CreateOrderRequest{CartID: cartID}).
			Return(order, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders", jsonBody(t, map[string]string{"cart_id": cartID.String()}), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		orderHandler.CreateOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		var result models.Order
		decodeResponse(t, rr, &result)
		assert.Equal(t, int64(11), result.ID)
		assert.True(t, decimal.RequireFromString("25").Equal(result.Total))
	})

	t.Run("Failure - Unauthorized (No Claims)", func(t *testing.T) {
		// Arrange
		mockService := mocks.NewOrderService(t)
		orderHandler := handlers.NewOrderHandler(mockService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/orders", jsonBody(t, map[string]string{"cart_id": cartID.String()}), nil)
		rr := httptest.NewRecorder()

		// Act
		orderHandler.CreateOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Failure - Concurrent checkout", func(t *testing.T) {
		// Arrange
		mockService := mocks.NewOrderService(t)
		orderHandler := handlers.NewOrderHandler(mockService)
		mockService.On("Checkout", mock.Anything, mock.Anything, mock.Anything).Return(nil, appErrors.ConflictError("Cart was modified by a concurrent checkout")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders", jsonBody(t, map[string]string{"cart_id": cartID.String()}), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		orderHandler.CreateOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Failure - Empty cart", func(t *testing.T) {
		// Arrange
		mockService := mocks.NewOrderService(t)
		orderHandler := handlers.NewOrderHandler(mockService)
		mockService.On("Checkout", mock.Anything, mock.Anything, mock.Anything).Return(nil, appErrors.ValidationError("cart is empty")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders", jsonBody(t, map[string]string{"cart_id": cartID.String()}), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		orderHandler.CreateOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "cart is empty", decodeResponse(t, rr, nil).Error.Message)
	})
}

func TestGetOrder(t *testing.T) {
	userID := uuid.New()

	t.Run("Failure - Forbidden for another customer's order", func(t *testing.T) {
		// Arrange
		mockService := mocks.NewOrderService(t)
		orderHandler := handlers.NewOrderHandler(mockService)
		mockService.On("GetOrder", mock.Anything, mock.Anything, int64(11)).Return(nil, appErrors.ForbiddenError("You do not have permission to view this order")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/11", nil, userID, map[string]string{"id": "11"})
		rr := httptest.NewRecorder()

		// Act
		orderHandler.GetOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Success - List Orders", func(t *testing.T) {
		// Arrange
		mockService := mocks.NewOrderService(t)
		orderHandler := handlers.NewOrderHandler(mockService)
		mockService.On("ListOrders", mock.Anything, mock.Anything, 1, 10).Return([]*models.Order{{ID: 1}}, 1, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		orderHandler.ListOrders().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var page models.PaginatedResponse
		decodeResponse(t, rr, &page)
		assert.Equal(t, 1, page.Total)
	})
}

func TestUpdateOrderStatus(t *testing.T) {

	t.Run("Success - Status updated", func(t *testing.T) {
		// Arrange
		mockService := mocks.NewOrderService(t)
		orderHandler := handlers.NewOrderHandler(mockService)
		mockService.On("UpdateStatus", mock.Anything, int64(11), &models.UpdateOrderStatusRequest{PaymentStatus: models.PaymentStatusComplete}).
			Return(&models.Order{ID: 11, PaymentStatus: models.PaymentStatusComplete}, nil).Once()

		req := testutils.CreateStaffTestRequest(http.MethodPatch, "/api/v1/orders/11", jsonBody(t, map[string]string{"payment_status": "complete"}), uuid.New(), map[string]string{"id": "11"})
		rr := httptest.NewRecorder()

		// Act
		orderHandler.UpdateOrderStatus().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Unknown status", func(t *testing.T) {
		// Arrange
		mockService := mocks.NewOrderService(t)
		orderHandler := handlers.NewOrderHandler(mockService)

		req := testutils.CreateStaffTestRequest(http.MethodPatch, "/api/v1/orders/11", jsonBody(t, map[string]string{"payment_status": "shipped"}), uuid.New(), map[string]string{"id": "11"})
		rr := httptest.NewRecorder()

		// Act
		orderHandler.UpdateOrderStatus().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
