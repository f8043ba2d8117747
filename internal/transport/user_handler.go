package transport

import (
	"errors"
	"net/http"

	"vape-shop/internal/middleware"
	"vape-shop/internal/repository"
	"vape-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=admin user"`
}

// TokenRequest represents the token issuance payload
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// TokenResponse carries the issued identity token
type TokenResponse struct {
	Token string `json:"token"`
}

// UserHandler handles HTTP requests for registration and token issuance
type UserHandler struct {
	users  service.UserService
	tokens service.TokenService
	logger *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users service.UserService, tokens service.TokenService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Post("/user", h.Register)
	r.Post("/jwt", h.IssueToken)
}

// Register handles user registration. Each email registers once; the role
// defaults to "user".
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Registration validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Role)
	if err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			middleware.RespondWithError(w, http.StatusBadRequest, "User already exists")
			return
		}

		h.logger.Error("Registration failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	h.logger.Info("User registered", zap.String("email", user.Email), zap.String("role", user.Role))
	middleware.RespondWithJSON(w, http.StatusCreated, user)
}

// IssueToken handles identity token issuance. Issuance does not require the
// email to be registered; unknown emails get a plain user token.
func (h *UserHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.tokens.Issue(r.Context(), req.Email)
	if err != nil {
		h.logger.Error("Token issuance failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, TokenResponse{Token: token})
}
