package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/storefront-labs/storefront-api/internal/api/middleware"
	"github.com/storefront-labs/storefront-api/internal/models"
	service "github.com/storefront-labs/storefront-api/internal/services"
	"github.com/storefront-labs/storefront-api/internal/utils"
	"github.com/storefront-labs/storefront-api/internal/utils/response"
)

type PromotionHandler struct {
	promotionService service.PromotionService
	validator        *validator.Validate
}

func NewPromotionHandler(promotionService service.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService, validator: validator.New()}
}

// CreatePromotion godoc
//
//	@Summary		Create a promotion
//	@Tags			Promotions
//	@Accept			json
//	@Produce		json
//	@Param			promotion	body		models.CreatePromotionRequest	true	"Promotion details"
//	@Success		201			{object}	models.Promotion				"Successfully created promotion"
//	@Failure		400			{object}	response.ErrorResponse			"Validation error"
//	@Security		BearerAuth
//	@Router			/promotions [post]
func (h *PromotionHandler) CreatePromotion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreatePromotionRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator, logger) {
			return
		}

		promotion, err := h.promotionService.CreatePromotion(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create promotion", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, promotion)
	}
}

// ListPromotions godoc
//
//	@Summary		List promotions
//	@Tags			Promotions
//	@Produce		json
//	@Param			page		query		int													false	"Page number (default: 1)"
//	@Param			pageSize	query		int													false	"Items per page (default: 10, max: 100)"
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Promotion}	"Successfully retrieved promotions"
//	@Router			/promotions [get]
func (h *PromotionHandler) ListPromotions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, pageSize := utils.Pagination(r)

		promotions, total, err := h.promotionService.ListPromotions(r.Context(), page, pageSize)
		if err != nil {
			logger.Error("Failed to list promotions", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{Data: promotions, Total: total, Page: page, PageSize: pageSize})
	}
}
