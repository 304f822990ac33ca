package orders

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/parthg2112/ecommerce-wp-proj/internal/domain"
)

type Store interface {
	Create(ctx context.Context, userID int64, total decimal.Decimal, items []domain.OrderItem) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
}

type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type Handler struct {
	store        Store
	publisher    Publisher
	logger       *slog.Logger
	guestUserID  int64
	maxBodyBytes int64

	ordersPlaced metric.Int64Counter
	orderValue   metric.Float64Histogram
}

type HandlerOption func(*Handler)

// WithGuestUserID sets the user id recorded on every order. There is no
// login, so all orders belong to this one placeholder user.
func WithGuestUserID(id int64) HandlerOption {
	return func(h *Handler) {
		h.guestUserID = id
	}
}

func WithMaxBodyBytes(n int64) HandlerOption {
	return func(h *Handler) {
		h.maxBodyBytes = n
	}
}

// NewHandler builds the order endpoints. publisher may be nil, in which case
// no events are emitted.
func NewHandler(store Store, publisher Publisher, logger *slog.Logger, opts ...HandlerOption) (*Handler, error) {
	h := &Handler{
		store:        store,
		publisher:    publisher,
		logger:       logger,
		guestUserID:  1,
		maxBodyBytes: 1 << 20,
	}
	for _, opt := range opts {
		opt(h)
	}

	meter := otel.Meter("storefront/orders")

	var err error
	h.ordersPlaced, err = meter.Int64Counter("storefront.orders.placed",
		metric.WithDescription("Orders committed to the order store"),
	)
	if err != nil {
		return nil, err
	}

	h.orderValue, err = meter.Float64Histogram("storefront.orders.value",
		metric.WithDescription("Total price of committed orders"),
	)
	if err != nil {
		return nil, err
	}

	return h, nil
}

type createOrderRequest struct {
	Items      []domain.OrderItem `json:"items"`
	TotalPrice decimal.Decimal    `json:"totalPrice"`
}

type createOrderResponse struct {
	Success bool  `json:"success"`
	OrderID int64 `json:"orderId"`
}

// decodeCreateRequest never fails: an absent, oversized or malformed body
// yields the zero request.
func (h *Handler) decodeCreateRequest(w http.ResponseWriter, r *http.Request) createOrderRequest {
	var req createOrderRequest

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		h.logger.Warn("failed to read order body", "error", err)
		return createOrderRequest{}
	}
	if len(body) == 0 {
		return req
	}
	if err := json.Unmarshal(body, &req); err != nil {
		h.logger.Warn("malformed order body, treating as empty", "error", err)
		return createOrderRequest{}
	}

	return req
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req := h.decodeCreateRequest(w, r)

	if len(req.Items) == 0 {
		h.writeError(w, http.StatusBadRequest, "order has no items")
		return
	}

	order, err := h.store.Create(r.Context(), h.guestUserID, req.TotalPrice, req.Items)
	if err != nil {
		h.logger.Error("failed to create order", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to place order")
		return
	}

	h.ordersPlaced.Add(r.Context(), 1)
	h.orderValue.Record(r.Context(), order.TotalPrice.InexactFloat64())

	if h.publisher != nil {
		event := domain.OrderPlacedEvent{
			EventID:    uuid.NewString(),
			OrderID:    order.ID,
			UserID:     order.UserID,
			Items:      order.Items,
			TotalPrice: order.TotalPrice,
			PlacedAt:   order.CreatedAt,
		}
		if err := h.publisher.Publish(r.Context(), strconv.FormatInt(order.ID, 10), event); err != nil {
			h.logger.Error("failed to publish order placed event", "error", err, "order_id", order.ID)
		}
	}

	h.logger.Info("order placed", "order_id", order.ID, "items", len(order.Items), "total", order.TotalPrice.StringFixed(2))
	h.writeJSON(w, http.StatusOK, createOrderResponse{Success: true, OrderID: order.ID})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get order", "error", err, "order_id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if order == nil {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	h.writeJSON(w, http.StatusOK, order)
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
