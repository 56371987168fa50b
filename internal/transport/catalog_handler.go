package transport

import (
	"errors"
	"net/http"
	"strconv"

	"tienda-pos/internal/domain"
	"tienda-pos/internal/middleware"
	"tienda-pos/internal/repository"
	"tienda-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryRequest represents a category create/update payload
type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// ProductRequest represents a product create/update payload
type ProductRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=255"`
	Price      int64   `json:"price" validate:"gte=0"`
	CategoryID *string `json:"category_id,omitempty" validate:"omitempty,uuid"`
}

// CatalogHandler handles HTTP requests for catalog maintenance
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers all catalog routes. Reads are open to any
// authenticated operator; mutations require the admin role. The delete
// route goes through the integrity-guarded service method, never the raw
// store delete.
func (h *CatalogHandler) RegisterRoutes(r chi.Router, authMiddleware, adminOnly func(http.Handler) http.Handler) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.ListCategories)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.CreateCategory)
			r.Put("/{id}", h.UpdateCategory)
			r.Delete("/{id}", h.DeleteCategory)
		})
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.ListProducts)
		r.Get("/{id}", h.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.CreateProduct)
			r.Put("/{id}", h.UpdateProduct)
			r.Delete("/{id}", h.DeleteProduct)
		})
	})
}

// ListCategories returns all categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// CreateCategory creates a new category
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Category validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.catalogService.CreateCategory(r.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryAlreadyExists):
			middleware.RespondWithError(w, http.StatusConflict, "category with this name already exists")
		case errors.Is(err, service.ErrInvalidName):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Failed to create category", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create category")
		}
		return
	}

	h.logger.Info("Category created", zap.String("category_id", category.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, category)
}

// UpdateCategory renames an existing category
func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	var req CategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.catalogService.UpdateCategory(r.Context(), id, req.Name)
	if err != nil {
		h.logger.Error("Failed to update category", zap.Error(err))

		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "category not found")
		case errors.Is(err, repository.ErrCategoryAlreadyExists):
			middleware.RespondWithError(w, http.StatusConflict, "category with this name already exists")
		case errors.Is(err, service.ErrInvalidName):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update category")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// DeleteCategory deletes a category through the integrity guard
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	if err := h.catalogService.DeleteCategory(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryInUse):
			h.logger.Debug("Category delete rejected, still in use", zap.String("category_id", id.String()))
			middleware.RespondWithError(w, http.StatusBadRequest, "category still contains products")
		case errors.Is(err, repository.ErrCategoryNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "category not found")
		default:
			h.logger.Error("Failed to delete category", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete category")
		}
		return
	}

	h.logger.Info("Category deleted", zap.String("category_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}

// ProductListResponse is one page of products plus paging metadata
type ProductListResponse struct {
	Products []*domain.Product `json:"products"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// ListProducts returns a page of products, optionally filtered by category or
// search term. Paging defaults are applied by the service.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var categoryID *uuid.UUID
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid category ID")
			return
		}
		categoryID = &id
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	page, pageSize = service.NormalizePaging(page, pageSize)

	products, total, err := h.catalogService.ListProducts(r.Context(), categoryID, r.URL.Query().Get("search"), page, pageSize)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Products: products,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetProduct returns a single product
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// CreateProduct creates a new product
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	product, err := h.catalogService.CreateProduct(r.Context(), req.Name, req.Price, categoryID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "category not found")
		case errors.Is(err, service.ErrInvalidName), errors.Is(err, service.ErrInvalidPrice):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Failed to create product", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		}
		return
	}

	h.logger.Info("Product created", zap.String("product_id", product.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct updates an existing product
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	product, err := h.catalogService.UpdateProduct(r.Context(), id, req.Name, req.Price, categoryID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, repository.ErrCategoryNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "category not found")
		case errors.Is(err, service.ErrInvalidName), errors.Is(err, service.ErrInvalidPrice):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Failed to update product", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// DeleteProduct removes a product from the catalog
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if err := h.catalogService.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func parseOptionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
