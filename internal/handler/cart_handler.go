package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"storefront/internal/cart"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	engine cart.Engine
	logger zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(engine cart.Engine, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		engine: engine,
		logger: logger.With().Str("handler", "cart").Logger(),
	}
}

// GetAll handles GET /api/cart requests.
func (h *CartHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	items, err := h.engine.Items(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// Add handles POST /api/cart requests.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.ProductID <= 0 {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	// Quantity is optional and defaults to 1.
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := h.engine.Add(r.Context(), req.ProductID, quantity)
	if err != nil {
		status := http.StatusInternalServerError
		message := "failed to add to cart"

		switch err {
		case model.ErrProductNotFound:
			status = http.StatusNotFound
			message = "product not found"
		case model.ErrInvalidQuantity:
			status = http.StatusBadRequest
			message = "invalid quantity"
		}

		writeError(w, status, message, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// UpdateQuantity handles PATCH /api/cart/{id} requests.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	itemID, ok := h.itemIDFromPath(w, r)
	if !ok {
		return
	}

	var req model.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	item, err := h.engine.UpdateQuantity(r.Context(), itemID, req.Quantity)
	if err != nil {
		status := http.StatusInternalServerError
		message := "failed to update cart item"

		switch err {
		case model.ErrInvalidQuantity:
			status = http.StatusBadRequest
			message = "invalid quantity"
		case model.ErrCartItemNotFound:
			status = http.StatusNotFound
			message = "cart item not found"
		}

		writeError(w, status, message, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Remove handles DELETE /api/cart/{id} requests.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	itemID, ok := h.itemIDFromPath(w, r)
	if !ok {
		return
	}

	removed, err := h.engine.Remove(r.Context(), itemID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove cart item", h.logger)
		return
	}

	if !removed {
		writeError(w, http.StatusNotFound, "cart item not found", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// itemIDFromPath extracts the line item id from /api/cart/{id} paths.
func (h *CartHandler) itemIDFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	path := r.URL.Path
	if len(path) < len("/api/cart/") {
		writeError(w, http.StatusBadRequest, "cart item ID is required", h.logger)
		return 0, false
	}
	idStr := path[len("/api/cart/"):]

	if idStr == "" {
		writeError(w, http.StatusBadRequest, "cart item ID is required", h.logger)
		return 0, false
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart item ID format", h.logger)
		return 0, false
	}

	return id, true
}
