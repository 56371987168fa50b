package transport

import (
	"net/http"

	"tienda-pos/internal/middleware"
	"tienda-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token    string          `json:"token"`
	Operator OperatorProfile `json:"operator"`
}

// OperatorProfile represents operator profile data
type OperatorProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// AuthHandler handles HTTP requests for operator authentication
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// RegisterRoutes registers all auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware, loginRateLimit func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.With(loginRateLimit).Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/me", h.Me)
		})
	})
}

// Login handles operator authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, operator, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Debug("Login failed", zap.Error(err))

		if err == service.ErrInvalidCredentials {
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}

		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	response := LoginResponse{
		Token: token,
		Operator: OperatorProfile{
			ID:    operator.ID.String(),
			Email: operator.Email,
			Name:  operator.Name,
			Role:  operator.Role,
		},
	}

	h.logger.Info("Operator logged in", zap.String("operator_id", operator.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, response)
}

// Me returns the authenticated operator's profile
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	operatorIDStr, ok := middleware.GetOperatorID(r.Context())
	if !ok {
		h.logger.Error("Operator ID not found in context")
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	operatorID, err := uuid.Parse(operatorIDStr)
	if err != nil {
		h.logger.Error("Invalid operator ID format", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid operator ID")
		return
	}

	operator, err := h.authService.GetOperatorByID(r.Context(), operatorID)
	if err != nil {
		h.logger.Error("Failed to get operator profile", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get operator profile")
		return
	}

	profile := OperatorProfile{
		ID:    operator.ID.String(),
		Email: operator.Email,
		Name:  operator.Name,
		Role:  operator.Role,
	}

	middleware.RespondWithJSON(w, http.StatusOK, profile)
}
