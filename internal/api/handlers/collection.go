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

type CollectionHandler struct {
	collectionService service.CollectionService
	validator         *validator.Validate
}

func NewCollectionHandler(collectionService service.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService, validator: validator.New()}
}

// CreateCollection godoc
//
//	@Summary		Create a collection
//	@Tags			Collections
//	@Accept			json
//	@Produce		json
//	@Param			collection	body		models.CollectionRequest	true	"Collection details"
//	@Success		201			{object}	models.Collection			"Successfully created collection"
//	@Failure		400			{object}	response.ErrorResponse		"Validation error"
//	@Failure		403			{object}	response.ErrorResponse		"Staff only"
//	@Security		BearerAuth
//	@Router			/collections [post]
func (h *CollectionHandler) CreateCollection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CollectionRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator, logger) {
			return
		}

		collection, err := h.collectionService.CreateCollection(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create collection", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Collection created successfully", slog.Int64("collectionId", collection.ID))
		response.Success(w, http.StatusCreated, collection)
	}
}

// GetCollection godoc
//
//	@Summary		Get a collection by ID
//	@Tags			Collections
//	@Produce		json
//	@Param			id	path		int						true	"Collection ID"
//	@Success		200	{object}	models.Collection		"Collection with its product count"
//	@Failure		404	{object}	response.ErrorResponse	"Collection not found"
//	@Router			/collections/{id} [get]
func (h *CollectionHandler) GetCollection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid collection ID"))
			return
		}

		collection, err := h.collectionService.GetCollection(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get collection", slog.Int64("collectionId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, collection)
	}
}

// UpdateCollection godoc
//
//	@Summary		Update a collection
//	@Tags			Collections
//	@Accept			json
//	@Produce		json
//	@Param			id			path		int							true	"Collection ID"
//	@Param			collection	body		models.CollectionRequest	true	"Collection details"
//	@Success		200			{object}	models.Collection			"Successfully updated collection"
//	@Failure		404			{object}	response.ErrorResponse		"Collection not found"
//	@Security		BearerAuth
//	@Router			/collections/{id} [put]
func (h *CollectionHandler) UpdateCollection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid collection ID"))
			return
		}

		var req models.CollectionRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator, logger) {
			return
		}

		collection, err := h.collectionService.UpdateCollection(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update collection", slog.Int64("collectionId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, collection)
	}
}

// DeleteCollection godoc
//
//	@Summary		Delete a collection
//	@Description	Collections that still include products cannot be deleted.
//	@Tags			Collections
//	@Param			id	path	int	true	"Collection ID"
//	@Success		204	"Collection deleted"
//	@Failure		404	{object}	response.ErrorResponse	"Collection not found"
//	@Failure		409	{object}	response.ErrorResponse	"Collection includes products"
//	@Security		BearerAuth
//	@Router			/collections/{id} [delete]
func (h *CollectionHandler) DeleteCollection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid collection ID"))
			return
		}

		if err := h.collectionService.DeleteCollection(r.Context(), id); err != nil {
			logger.Error("Failed to delete collection", slog.Int64("collectionId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}

// ListCollections godoc
//
//	@Summary		List collections
//	@Tags			Collections
//	@Produce		json
//	@Param			page		query		int													false	"Page number (default: 1)"
//	@Param			pageSize	query		int													false	"Items per page (default: 10, max: 100)"
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Collection}	"Successfully retrieved collections"
//	@Router			/collections [get]
func (h *CollectionHandler) ListCollections() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, pageSize := utils.Pagination(r)

		collections, total, err := h.collectionService.ListCollections(r.Context(), page, pageSize)
		if err != nil {
			logger.Error("Failed to list collections", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{Data: collections, Total: total, Page: page, PageSize: pageSize})
	}
}
