package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/calebhs/storefront-api/internal/domain"
	"github.com/calebhs/storefront-api/internal/service"
	"github.com/calebhs/storefront-api/internal/store"
)

// ProductHandler handles catalog requests. Listing and search are public;
// create, update, and delete sit behind authentication.
type ProductHandler struct {
	products  *service.ProductService
	validator *validator.Validate
}

// NewProductHandler creates a ProductHandler with the given dependencies.
func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{
		products:  products,
		validator: validator.New(),
	}
}

// List handles GET /products: the public catalog of active products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListActive(r.Context(), parsePage(r))
	if err != nil {
		slog.Error("failed to list products", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to list products")
		return
	}
	RespondWithJSON(w, r, http.StatusOK, products)
}

// productSortColumns is the set of columns ?order_by= may name. The store
// splices the ordering expression into the statement verbatim, so nothing
// outside this set may pass through.
var productSortColumns = map[string]bool{
	"id":         true,
	"title":      true,
	"quantity":   true,
	"full_price": true,
	"created_at": true,
	"updated_at": true,
}

// productOrderBy resolves the raw order_by parameter to a trusted column
// expression. A leading "-" selects descending order.
func productOrderBy(raw string) (string, bool) {
	if raw == "" {
		return "", true
	}
	col, desc := strings.CutPrefix(raw, "-")
	if !productSortColumns[col] {
		return "", false
	}
	if desc {
		return col + " DESC", true
	}
	return col, true
}

// ListAll handles GET /products/all: the administrative listing, including
// inactive products, optionally ordered by ?order_by=.
func (h *ProductHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	filter := store.ProductFilter{}
	if raw := r.URL.Query().Get("is_active"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}

	orderBy, ok := productOrderBy(r.URL.Query().Get("order_by"))
	if !ok {
		RespondWithError(w, r, http.StatusBadRequest, "order_by has invalid format")
		return
	}

	products, err := h.products.List(r.Context(), filter, parsePage(r), orderBy)
	if err != nil {
		slog.Error("failed to list products", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to list products")
		return
	}
	RespondWithJSON(w, r, http.StatusOK, products)
}

// Search handles GET /products/search?q=...&category_ids=1,2.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		RespondWithError(w, r, http.StatusBadRequest, "Search query is required")
		return
	}

	var categoryIDs []int64
	if raw := r.URL.Query().Get("category_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				RespondWithError(w, r, http.StatusBadRequest, "category_ids has invalid format")
				return
			}
			categoryIDs = append(categoryIDs, id)
		}
	}

	products, err := h.products.Search(r.Context(), query, categoryIDs, parsePage(r))
	if err != nil {
		slog.Error("product search failed", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to search products")
		return
	}
	RespondWithJSON(w, r, http.StatusOK, products)
}

// Get handles GET /products/{productID}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "productID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		slog.Error("failed to get product", "error", err, "product_id", id)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to get product")
		return
	}
	if product == nil {
		RespondWithError(w, r, http.StatusNotFound, "Product not found")
		return
	}
	RespondWithJSON(w, r, http.StatusOK, product)
}

// Create handles POST /products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	product, err := h.products.Create(r.Context(), &domain.Product{
		Title:       req.Title,
		Description: req.Description,
		Quantity:    req.Quantity,
		FullPrice:   req.FullPrice,
		IsActive:    req.IsActive,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, product)
}

// Update handles PATCH /products/{productID}. Absent body fields are left
// unchanged; the whole patch is rejected if any value is invalid.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "productID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req ProductPatchRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	product, err := h.products.Update(r.Context(), id, domain.ProductPatch{
		Title:       req.Title,
		Description: req.Description,
		Quantity:    req.Quantity,
		FullPrice:   req.FullPrice,
		IsActive:    req.IsActive,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	if product == nil {
		RespondWithError(w, r, http.StatusNotFound, "Product not found")
		return
	}
	RespondWithJSON(w, r, http.StatusOK, product)
}

// Delete handles DELETE /products/{productID}. Deleting an absent product
// succeeds; deleting one referenced by carts or orders is a conflict.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "productID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
