package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Pentakotacharan/shopmate-client/internal/cart"
	"github.com/Pentakotacharan/shopmate-client/internal/domain"
	"github.com/Pentakotacharan/shopmate-client/pkg/httputil"
	"github.com/Pentakotacharan/shopmate-client/pkg/validator"
)

// ProductFetcher resolves a product ID to its catalog entry so the cart line
// carries the catalog price and name. backend.Client satisfies it.
type ProductFetcher interface {
	GetProduct(ctx context.Context, productID string) (domain.Product, error)
}

// CartHandler handles the cart endpoints.
type CartHandler struct {
	carts   *cart.Store
	catalog ProductFetcher
	logger  *slog.Logger
}

// NewCartHandler creates a cart HTTP handler.
func NewCartHandler(carts *cart.Store, catalog ProductFetcher, logger *slog.Logger) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog, logger: logger}
}

// AddItemRequest is the JSON request body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

type lineItemView struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
	ImageURL  string `json:"image_url,omitempty"`
}

type cartView struct {
	Items         []lineItemView `json:"items"`
	TotalItems    int            `json:"total_items"`
	SubtotalCents int64          `json:"subtotal_cents"`
	Subtotal      string         `json:"subtotal"`
}

func viewOfCart(c domain.Cart) cartView {
	items := make([]lineItemView, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, lineItemView{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: domain.FormatMinorUnits(item.UnitPrice),
			Quantity:  item.Quantity,
			LineTotal: domain.FormatMinorUnits(item.UnitPrice * int64(item.Quantity)),
			ImageURL:  item.ImageURL,
		})
	}
	return cartView{
		Items:         items,
		TotalItems:    c.TotalItems(),
		SubtotalCents: c.Subtotal(),
		Subtotal:      domain.FormatMinorUnits(c.Subtotal()),
	}
}

// Get handles GET /api/v1/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: viewOfCart(h.carts.Snapshot())})
}

// AddItem handles POST /api/v1/cart/items. The product's price and name come
// from the catalog, never from the request.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := h.carts.AddOrIncrement(r.Context(), product, quantity); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: viewOfCart(h.carts.Snapshot())})
}

// Decrement handles POST /api/v1/cart/items/{productID}/decrement.
func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	h.carts.Decrement(r.Context(), productID)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: viewOfCart(h.carts.Snapshot())})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productID}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	h.carts.Remove(r.Context(), productID)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: viewOfCart(h.carts.Snapshot())})
}
