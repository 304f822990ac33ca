package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/parthg2112/ecommerce-wp-proj/internal/domain"
)

type Lister interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type Handler struct {
	products Lister
	logger   *slog.Logger
}

func NewHandler(products Lister, logger *slog.Logger) *Handler {
	return &Handler{
		products: products,
		logger:   logger,
	}
}

type listResponse struct {
	Products []domain.Product `json:"products"`
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("products listed", "count", len(products))
	h.writeJSON(w, http.StatusOK, listResponse{Products: products})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
