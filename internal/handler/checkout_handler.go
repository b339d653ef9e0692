package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/cart"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles checkout HTTP requests.
type CheckoutHandler struct {
	engine cart.Engine
	logger zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(engine cart.Engine, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		engine: engine,
		logger: logger.With().Str("handler", "checkout").Logger(),
	}
}

// Create handles POST /api/checkout requests.
func (h *CheckoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	receipt, err := h.engine.Checkout(r.Context(), req.Name, req.Email)
	if err != nil {
		status := http.StatusInternalServerError
		message := "failed to process checkout"

		switch err {
		case model.ErrMissingCustomerName, model.ErrMissingCustomerEmail:
			status = http.StatusBadRequest
			message = err.Error()
		case model.ErrEmptyCart:
			status = http.StatusBadRequest
			message = "cart is empty"
		}

		writeError(w, status, message, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, receipt)
}
