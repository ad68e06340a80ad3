package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/storefront-labs/storefront-api/internal/api/middleware"
	"github.com/storefront-labs/storefront-api/internal/errors"
	"github.com/storefront-labs/storefront-api/internal/models"
	service "github.com/storefront-labs/storefront-api/internal/services"
	"github.com/storefront-labs/storefront-api/internal/utils"
	"github.com/storefront-labs/storefront-api/internal/utils/response"
)

type CustomerHandler struct {
	customerService service.CustomerService
	validator       *validator.Validate
}

func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, validator: validator.New()}
}

// GetMe godoc
//
//	@Summary		Get the caller's customer profile
//	@Tags			Customers
//	@Produce		json
//	@Success		200	{object}	models.Customer			"Customer profile"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Customer not found"
//	@Security		BearerAuth
//	@Router			/customers/me [get]
func (h *CustomerHandler) GetMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		customer, err := h.customerService.GetMe(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to get customer profile", slog.String("userID", claims.UserID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, customer)
	}
}

// UpdateMe godoc
//
//	@Summary		Update the caller's customer profile
//	@Tags			Customers
//	@Accept			json
//	@Produce		json
//	@Param			customer	body		models.UpdateCustomerRequest	true	"Fields to update"
//	@Success		200			{object}	models.Customer					"Updated profile"
//	@Failure		400			{object}	response.ErrorResponse			"Validation error"
//	@Failure		401			{object}	response.ErrorResponse			"Authentication required"
//	@Security		BearerAuth
//	@Router			/customers/me [put]
func (h *CustomerHandler) UpdateMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		logger = logger.With(slog.String("userID", claims.UserID.String()))

		var req models.UpdateCustomerRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator, logger) {
			return
		}

		customer, err := h.customerService.UpdateMe(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to update customer profile", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Customer profile updated", slog.Int64("customerId", customer.ID))
		response.Success(w, http.StatusOK, customer)
	}
}

// GetCustomer godoc
//
//	@Summary		Get a customer by ID
//	@Tags			Customers
//	@Produce		json
//	@Param			id	path		int						true	"Customer ID"
//	@Success		200	{object}	models.Customer			"Customer"
//	@Failure		403	{object}	response.ErrorResponse	"Staff only"
//	@Failure		404	{object}	response.ErrorResponse	"Customer not found"
//	@Security		BearerAuth
//	@Router			/customers/{id} [get]
func (h *CustomerHandler) GetCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid customer ID"))
			return
		}

		customer, err := h.customerService.GetCustomer(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get customer", slog.Int64("customerId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, customer)
	}
}

// ListCustomers godoc
//
//	@Summary		List customers
//	@Tags			Customers
//	@Produce		json
//	@Param			page		query		int												false	"Page number (default: 1)"
//	@Param			pageSize	query		int												false	"Items per page (default: 10, max: 100)"
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Customer}	"Customers"
//	@Failure		403			{object}	response.ErrorResponse							"Staff only"
//	@Security		BearerAuth
//	@Router			/customers [get]
func (h *CustomerHandler) ListCustomers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, pageSize := utils.Pagination(r)

		customers, total, err := h.customerService.ListCustomers(r.Context(), page, pageSize)
		if err != nil {
			logger.Error("Failed to list customers", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{Data: customers, Total: total, Page: page, PageSize: pageSize})
	}
}
