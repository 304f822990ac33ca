package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/parthg2112/ecommerce-wp-proj/internal/domain"
)

type listerFunc func(ctx context.Context) ([]domain.Product, error)

func (f listerFunc) ListProducts(ctx context.Context) ([]domain.Product, error) { return f(ctx) }

func TestHandler_HandleList(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("wraps products in an envelope", func(t *testing.T) {
		seeded := SeedProducts()
		for i := range seeded {
			seeded[i].ID = int64(i + 1)
		}
		handler := NewHandler(listerFunc(func(context.Context) ([]domain.Product, error) {
			return seeded, nil
		}), logger)

		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		rec := httptest.NewRecorder()

		handler.HandleList(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if rec.Header().Get("Content-Type") != "application/json" {
			t.Errorf("expected application/json, got %s", rec.Header().Get("Content-Type"))
		}

		var resp struct {
			Products []domain.Product `json:"products"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(resp.Products) != 6 {
			t.Fatalf("expected 6 products, got %d", len(resp.Products))
		}
		if resp.Products[3].Name != "Cottage Pie" || resp.Products[3].Type != "Main Course" {
			t.Errorf("unexpected fourth product: %+v", resp.Products[3])
		}
		if !resp.Products[0].Price.Equal(seeded[0].Price) {
			t.Errorf("expected price %s, got %s", seeded[0].Price, resp.Products[0].Price)
		}
	})

	t.Run("encodes an empty catalog as an empty array", func(t *testing.T) {
		handler := NewHandler(listerFunc(func(context.Context) ([]domain.Product, error) {
			return []domain.Product{}, nil
		}), logger)

		rec := httptest.NewRecorder()
		handler.HandleList(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

		if rec.Body.String() != "{\"products\":[]}\n" {
			t.Errorf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("returns 500 when the store fails", func(t *testing.T) {
		handler := NewHandler(listerFunc(func(context.Context) ([]domain.Product, error) {
			return nil, errors.New("connection refused")
		}), logger)

		rec := httptest.NewRecorder()
		handler.HandleList(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", rec.Code)
		}
	})
}
