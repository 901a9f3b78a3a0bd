package http

import (
	"net/http"

	"github.com/snackshop/storefront/internal/catalog"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

type ProductDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Category  string `json:"category"`
	ImageURL  string `json:"image_url"`
}

// ListProducts returns the catalog, optionally filtered by ?category=.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.catalog.Products()

	if raw := r.URL.Query().Get("category"); raw != "" {
		cat := catalog.Category(raw)
		if !cat.Valid() {
			respondError(w, http.StatusBadRequest, "invalid_category", "unknown product category")
			return
		}
		products = h.catalog.ByCategory(cat)
	}

	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, ProductDTO{
			ID:        p.ID,
			Name:      p.Name,
			UnitPrice: p.UnitPrice.StringFixed(2),
			Category:  string(p.Category),
			ImageURL:  p.ImageURL,
		})
	}

	respondJSON(w, http.StatusOK, out)
}
