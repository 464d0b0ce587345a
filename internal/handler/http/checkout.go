package http

import (
	"log/slog"
	"net/http"

	"github.com/Pentakotacharan/shopmate-client/internal/checkout"
	"github.com/Pentakotacharan/shopmate-client/pkg/httputil"
	"github.com/Pentakotacharan/shopmate-client/pkg/validator"
)

// CheckoutHandler handles the guarded checkout endpoints.
type CheckoutHandler struct {
	coordinator *checkout.Coordinator
	logger      *slog.Logger
}

// NewCheckoutHandler creates a checkout HTTP handler.
func NewCheckoutHandler(coordinator *checkout.Coordinator, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{coordinator: coordinator, logger: logger}
}

// SelectProviderRequest is the JSON request body for choosing a payment
// provider.
type SelectProviderRequest struct {
	Provider string `json:"provider" validate:"required,oneof=stripe razorpay cashfree"`
}

// ConfirmRequest is the JSON request body for confirming a payment.
type ConfirmRequest struct {
	Provider string `json:"provider" validate:"required,oneof=stripe razorpay cashfree"`
}

// View handles GET /api/v1/checkout.
func (h *CheckoutHandler) View(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.coordinator.View()})
}

// SelectProvider handles POST /api/v1/checkout/provider.
func (h *CheckoutHandler) SelectProvider(w http.ResponseWriter, r *http.Request) {
	var req SelectProviderRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	view, err := h.coordinator.Select(r.Context(), req.Provider)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: view})
}

// Confirm handles POST /api/v1/checkout/confirm.
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	result, err := h.coordinator.Confirm(r.Context(), req.Provider)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}
