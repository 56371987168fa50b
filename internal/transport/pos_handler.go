package transport

import (
	"errors"
	"net/http"
	"time"

	"tienda-pos/internal/middleware"
	"tienda-pos/internal/pos"
	"tienda-pos/internal/repository"
	"tienda-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartItemRequest identifies the product to add to or remove from a cart
type CartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// SessionResponse is returned when a terminal session is opened
type SessionResponse struct {
	SessionID string `json:"session_id"`
}

// SaleResponse represents a captured sale
type SaleResponse struct {
	Items      []pos.CartLine `json:"items"`
	Total      int64          `json:"total"`
	CapturedAt string         `json:"captured_at"`
}

// POSHandler handles HTTP requests for the point-of-sale workflow
type POSHandler struct {
	posService service.POSService
	logger     *zap.Logger
}

// NewPOSHandler creates a new POSHandler
func NewPOSHandler(posService service.POSService, logger *zap.Logger) *POSHandler {
	return &POSHandler{
		posService: posService,
		logger:     logger,
	}
}

// RegisterRoutes registers all POS routes
func (h *POSHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/pos", func(r chi.Router) {
		r.Use(authMiddleware)

		r.Post("/sessions", h.OpenSession)
		r.Delete("/sessions/{sessionID}", h.CloseSession)
		r.Get("/sessions/{sessionID}/cart", h.ViewCart)
		r.Post("/sessions/{sessionID}/cart", h.AddToCart)
		r.Delete("/sessions/{sessionID}/cart/{productID}", h.RemoveFromCart)
		r.Post("/sessions/{sessionID}/checkout", h.Checkout)
		r.Get("/sessions/{sessionID}/receipt", h.Receipt)
	})
}

// OpenSession starts a new terminal session
func (h *POSHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.posService.OpenSession(r.Context())
	if err != nil {
		h.logger.Error("Failed to open session", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to open session")
		return
	}

	h.logger.Info("POS session opened", zap.String("session_id", session.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, SessionResponse{SessionID: session.ID.String()})
}

// CloseSession tears down a terminal session
func (h *POSHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid session ID")
		return
	}

	if err := h.posService.CloseSession(r.Context(), sessionID); err != nil {
		if errors.Is(err, pos.ErrSessionNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "session not found")
			return
		}
		h.logger.Error("Failed to close session", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to close session")
		return
	}

	h.logger.Info("POS session closed", zap.String("session_id", sessionID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "session closed"})
}

// ViewCart returns the session's cart lines and running total
func (h *POSHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid session ID")
		return
	}

	view, err := h.posService.ViewCart(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, pos.ErrSessionNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "session not found")
			return
		}
		h.logger.Error("Failed to view cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to view cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, view)
}

// AddToCart adds one unit of a product to the session's cart
func (h *POSHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid session ID")
		return
	}

	var req CartItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Cart item validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	view, err := h.posService.AddToCart(r.Context(), sessionID, productID)
	if err != nil {
		switch {
		case errors.Is(err, pos.ErrSessionNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "session not found")
		case errors.Is(err, repository.ErrProductNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		default:
			h.logger.Error("Failed to add to cart", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add to cart")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, view)
}

// RemoveFromCart drops a product's line from the session's cart
func (h *POSHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid session ID")
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	view, err := h.posService.RemoveFromCart(r.Context(), sessionID, productID)
	if err != nil {
		if errors.Is(err, pos.ErrSessionNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "session not found")
			return
		}
		h.logger.Error("Failed to remove from cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to remove from cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, view)
}

// Checkout finalizes the session's cart into a sale
func (h *POSHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid session ID")
		return
	}

	sale, err := h.posService.Checkout(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, pos.ErrSessionNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "session not found")
		case errors.Is(err, pos.ErrEmptyCart):
			h.logger.Debug("Checkout rejected, cart is empty", zap.String("session_id", sessionID.String()))
			middleware.RespondWithError(w, http.StatusConflict, "cart is empty")
		default:
			h.logger.Error("Failed to checkout", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to checkout")
		}
		return
	}

	h.logger.Info("Sale captured",
		zap.String("session_id", sessionID.String()),
		zap.Int("items", len(sale.Items)),
		zap.Int64("total", sale.Total),
	)

	response := SaleResponse{
		Items:      sale.Items,
		Total:      sale.Total,
		CapturedAt: sale.CapturedAt.UTC().Format(time.RFC3339),
	}
	middleware.RespondWithJSON(w, http.StatusCreated, response)
}

// Receipt renders the session's last sale as a text ticket
func (h *POSHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid session ID")
		return
	}

	receipt, err := h.posService.Receipt(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, pos.ErrSessionNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "session not found")
		case errors.Is(err, pos.ErrNoSale):
			middleware.RespondWithError(w, http.StatusNotFound, "no sale captured yet")
		default:
			h.logger.Error("Failed to render receipt", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to render receipt")
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(receipt))
}
