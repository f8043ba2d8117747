package transport

import (
	"net/http"

	"vape-shop/internal/domain"
	"vape-shop/internal/middleware"
	"vape-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateColorRequest represents the color creation payload
type CreateColorRequest struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// ColorHandler handles HTTP requests for color operations
type ColorHandler struct {
	colors service.ColorService
	logger *zap.Logger
}

// NewColorHandler creates a new ColorHandler
func NewColorHandler(colors service.ColorService, logger *zap.Logger) *ColorHandler {
	return &ColorHandler{
		colors: colors,
		logger: logger,
	}
}

// RegisterRoutes registers all color routes
func (h *ColorHandler) RegisterRoutes(r chi.Router, auth, requireAdmin func(http.Handler) http.Handler) {
	r.Get("/color", h.List)

	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Use(requireAdmin)
		r.Post("/color", h.Create)
	})
}

// List handles the color listing
func (h *ColorHandler) List(w http.ResponseWriter, r *http.Request) {
	colors, err := h.colors.List(r.Context())
	if err != nil {
		h.logger.Error("Color listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list colors")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, colors)
}

// Create handles color creation
func (h *ColorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateColorRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	color, err := h.colors.Create(r.Context(), &domain.Color{
		Name:  req.Name,
		Value: req.Value,
	})
	if err != nil {
		h.logger.Error("Color creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create color")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, color)
}
