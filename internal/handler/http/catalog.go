package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Pentakotacharan/shopmate-client/internal/domain"
	"github.com/Pentakotacharan/shopmate-client/pkg/httputil"
)

// CatalogAPI is the slice of the backend the catalog endpoints need.
type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID string) (domain.Product, error)
}

// CatalogHandler proxies catalog browsing to the backend, serving prices in
// both minor units and display form.
type CatalogHandler struct {
	catalog CatalogAPI
	logger  *slog.Logger
}

// NewCatalogHandler creates a catalog HTTP handler.
func NewCatalogHandler(catalog CatalogAPI, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

type productView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Brand        string `json:"brand,omitempty"`
	Description  string `json:"description,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	PriceCents   int64  `json:"price_cents"`
	Price        string `json:"price"`
	CountInStock int    `json:"count_in_stock"`
}

func viewOfProduct(p domain.Product) productView {
	return productView{
		ID:           p.ID,
		Name:         p.Name,
		Brand:        p.Brand,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		PriceCents:   p.PriceCents,
		Price:        domain.FormatMinorUnits(p.PriceCents),
		CountInStock: p.CountInStock,
	}
}

// List handles GET /api/v1/products.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, viewOfProduct(p))
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: views})
}

// Get handles GET /api/v1/products/{productID}.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: viewOfProduct(product)})
}
