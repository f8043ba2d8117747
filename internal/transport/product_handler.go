package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"vape-shop/internal/domain"
	"vape-shop/internal/middleware"
	"vape-shop/internal/repository"
	"vape-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CreateProductRequest represents the product creation payload
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Brand       string   `json:"brand"`
	Flavor      string   `json:"flavor"`
	Category    string   `json:"category"`
	Price       float64  `json:"price" validate:"gte=0"`
	Status      string   `json:"status" validate:"omitempty,oneof=active inactive"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
}

// ListResponse is the paginated listing envelope
type ListResponse struct {
	Data       []domain.Product      `json:"data"`
	Pagination repository.Pagination `json:"pagination"`
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	products service.ProductService
	logger   *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		logger:   logger,
	}
}

// RegisterRoutes registers all product routes. The admin surface keeps the
// route names of the storefront it replaced, misspelling included.
func (h *ProductHandler) RegisterRoutes(r chi.Router, auth, requireAdmin func(http.Handler) http.Handler) {
	// Public routes
	r.Get("/products", h.PublicList)
	r.Get("/product/{id}", h.Get)

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Use(requireAdmin)
		r.Post("/product", h.Create)
		r.Get("/product", h.AdminList)
		r.Patch("/product/{id}", h.Update)
		r.Patch("/productIsAcitve/{id}", h.ToggleStatus)
		r.Delete("/productDelete/{id}", h.Delete)
	})
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.products.Create(r.Context(), &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Brand:       req.Brand,
		Flavor:      req.Flavor,
		Category:    req.Category,
		Price:       req.Price,
		Status:      req.Status,
		Image:       req.Image,
		Images:      req.Images,
	})
	if err != nil {
		h.logger.Error("Product creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.String("id", product.ID.Hex()))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// AdminList handles the filtered, paginated admin listing. Unlike the public
// listing it does not filter by status.
func (h *ProductHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	query, err := parseProductQuery(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.list(w, r, query)
}

// PublicList handles the storefront listing: active products only, with
// optional name and category filters.
func (h *ProductHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	query, err := parseProductQuery(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	query.Name = r.URL.Query().Get("name")
	query.Status = domain.StatusActive

	h.list(w, r, query)
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request, query repository.ProductQuery) {
	products, pagination, err := h.products.List(r.Context(), query)
	if err != nil {
		h.logger.Error("Product listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ListResponse{
		Data:       products,
		Pagination: pagination,
	})
}

// Get handles a single product fetch
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		h.respondProductError(w, err, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// ToggleStatus flips a product between active and inactive
func (h *ProductHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.products.ToggleStatus(r.Context(), id)
	if err != nil {
		h.respondProductError(w, err, "failed to toggle product status")
		return
	}

	h.logger.Info("Product status toggled",
		zap.String("id", product.ID.Hex()),
		zap.String("status", product.Status),
	)
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Update handles a partial product update with image-replacement cleanup
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	fields := bson.M{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.products.Update(r.Context(), id, fields); err != nil {
		h.respondProductError(w, err, "failed to update product")
		return
	}

	h.logger.Info("Product updated", zap.String("id", id.Hex()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product updated"})
}

// Delete handles a cascading product delete
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		h.respondProductError(w, err, "failed to delete product")
		return
	}

	h.logger.Info("Product deleted", zap.String("id", id.Hex()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *ProductHandler) respondProductError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, repository.ErrProductNotFound) {
		middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	h.logger.Error(fallback, zap.Error(err))
	middleware.RespondWithError(w, http.StatusInternalServerError, fallback)
}

// parseProductQuery reads the optional listing filters off the query string.
// Absent price bounds stay nil so that no bound is applied on that side.
func parseProductQuery(r *http.Request) (repository.ProductQuery, error) {
	values := r.URL.Query()

	query := repository.ProductQuery{
		Search:    values.Get("search"),
		Category:  values.Get("category"),
		SortBy:    values.Get("sortBy"),
		SortOrder: values.Get("sortOrder"),
	}

	if raw := values.Get("minPrice"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return repository.ProductQuery{}, fmt.Errorf("invalid minPrice %q", raw)
		}
		query.MinPrice = &min
	}

	if raw := values.Get("maxPrice"); raw != "" {
		max, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return repository.ProductQuery{}, fmt.Errorf("invalid maxPrice %q", raw)
		}
		query.MaxPrice = &max
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return repository.ProductQuery{}, fmt.Errorf("invalid page %q", raw)
		}
		query.Page = page
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return repository.ProductQuery{}, fmt.Errorf("invalid limit %q", raw)
		}
		query.Limit = limit
	}

	return query, nil
}
