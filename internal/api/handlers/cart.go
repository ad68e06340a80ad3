package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/storefront-labs/storefront-api/internal/api/middleware"
	"github.com/storefront-labs/storefront-api/internal/errors"
	"github.com/storefront-labs/storefront-api/internal/models"
	service "github.com/storefront-labs/storefront-api/internal/services"
	"github.com/storefront-labs/storefront-api/internal/utils"
	"github.com/storefront-labs/storefront-api/internal/utils/response"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

func cartIDFromPath(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, errors.BadRequestError("Invalid cart ID").WithError(err)
	}

	return id, nil
}

// CreateCart godoc
//
//	@Summary		Create a cart
//	@Description	Creates an anonymous cart. The returned id is the only handle to it.
//	@Tags			Carts
//	@Produce		json
//	@Success		201	{object}	models.Cart				"Successfully created cart"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/carts [post]
func (h *CartHandler) CreateCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cart, err := h.cartService.CreateCart(r.Context())
		if err != nil {
			logger.Error("Failed to create cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Cart created successfully", slog.String("cartId", cart.ID.String()))
		response.Success(w, http.StatusCreated, cart)
	}
}

// GetCart godoc
//
//	@Summary		Get a cart
//	@Description	Returns the cart lines priced at current product prices.
//	@Tags			Carts
//	@Produce		json
//	@Param			id	path		string					true	"Cart ID"	Format(uuid)
//	@Success		200	{object}	models.Cart				"Successfully retrieved cart"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid cart ID"
//	@Failure		404	{object}	response.ErrorResponse	"Cart not found"
//	@Router			/carts/{id} [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cartID, err := cartIDFromPath(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), cartID)
		if err != nil {
			logger.Error("Failed to get cart", slog.String("cartId", cartID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// DeleteCart godoc
//
//	@Summary		Delete a cart
//	@Tags			Carts
//	@Param			id	path	string	true	"Cart ID"	Format(uuid)
//	@Success		204	"Cart deleted"
//	@Failure		404	{object}	response.ErrorResponse	"Cart not found"
//	@Router			/carts/{id} [delete]
func (h *CartHandler) DeleteCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cartID, err := cartIDFromPath(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.cartService.DeleteCart(r.Context(), cartID); err != nil {
			logger.Error("Failed to delete cart", slog.String("cartId", cartID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}

// AddItem godoc
//
//	@Summary		Add an item to a cart
//	@Description	Adding a product already in the cart increases the existing line's quantity.
//	@Tags			Carts
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Cart ID"	Format(uuid)
//	@Param			item	body		models.AddItemRequest	true	"Product and quantity"
//	@Success		201		{object}	models.CartItem			"Resulting cart line"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		404		{object}	response.ErrorResponse	"Cart or product not found"
//	@Router			/carts/{id}/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cartID, err := cartIDFromPath(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.String("cartId", cartID.String()))

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator, logger) {
			return
		}

		item, err := h.cartService.AddItem(r.Context(), cartID, &req)
		if err != nil {
			logger.Error("Failed to add item to cart", slog.Int64("productId", req.ProductID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.Int64("productId", req.ProductID), slog.Int("quantity", item.Quantity))
		response.Success(w, http.StatusCreated, item)
	}
}

// UpdateItem godoc
//
//	@Summary		Change the quantity of a cart line
//	@Tags			Carts
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string							true	"Cart ID"	Format(uuid)
//	@Param			productId	path		int								true	"Product ID"
//	@Param			item		body		models.UpdateQuantityRequest	true	"New quantity"
//	@Success		200			{object}	models.CartItem					"Updated cart line"
//	@Failure		400			{object}	response.ErrorResponse			"Validation error"
//	@Failure		404			{object}	response.ErrorResponse			"Cart line not found"
//	@Router			/carts/{id}/items/{productId} [patch]
func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cartID, err := cartIDFromPath(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		productID, err := utils.PathID(r, "productId")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product ID"))
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator, logger) {
			return
		}

		item, err := h.cartService.UpdateItem(r.Context(), cartID, productID, req.Quantity)
		if err != nil {
			logger.Error("Failed to update cart item", slog.String("cartId", cartID.String()), slog.Int64("productId", productID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, item)
	}
}

// RemoveItem godoc
//
//	@Summary		Remove a line from a cart
//	@Tags			Carts
//	@Param			id			path	string	true	"Cart ID"	Format(uuid)
//	@Param			productId	path	int		true	"Product ID"
//	@Success		204			"Line removed"
//	@Failure		404			{object}	response.ErrorResponse	"Cart line not found"
//	@Router			/carts/{id}/items/{productId} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cartID, err := cartIDFromPath(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		productID, err := utils.PathID(r, "productId")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product ID"))
			return
		}

		if err := h.cartService.RemoveItem(r.Context(), cartID, productID); err != nil {
			logger.Error("Failed to remove cart item", slog.String("cartId", cartID.String()), slog.Int64("productId", productID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}
