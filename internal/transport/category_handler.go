package transport

import (
	"encoding/json"
	"net/http"

	"vape-shop/internal/middleware"
	"vape-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CategoryHandler handles HTTP requests for category operations. Categories
// are open documents, so payloads pass through as-is.
type CategoryHandler struct {
	categories service.CategoryService
	logger     *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		logger:     logger,
	}
}

// RegisterRoutes registers all category routes
func (h *CategoryHandler) RegisterRoutes(r chi.Router, auth, requireAdmin func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Use(requireAdmin)
		r.Post("/category", h.Create)
		r.Get("/category", h.List)
		r.Patch("/category/{id}", h.Update)
	})
}

// Create handles category creation
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	doc := bson.M{}
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.categories.Create(r.Context(), doc)
	if err != nil {
		h.logger.Error("Category creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	h.logger.Info("Category created", zap.String("id", id.Hex()))
	middleware.RespondWithJSON(w, http.StatusCreated, map[string]string{"insertedId": id.Hex()})
}

// List handles the category listing
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		h.logger.Error("Category listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// Update handles a partial category update. The update upserts: an id that
// matches nothing creates the category.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	fields := bson.M{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.categories.Update(r.Context(), id, fields); err != nil {
		h.logger.Error("Category update failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update category")
		return
	}

	h.logger.Info("Category updated", zap.String("id", id.Hex()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "category updated"})
}
