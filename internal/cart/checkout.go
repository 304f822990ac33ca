package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/parthg2112/ecommerce-wp-proj/internal/domain"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOrderRejected      = errors.New("order rejected by storefront")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// OrderRequest is the checkout payload. TotalPrice is rendered with two
// decimals.
type OrderRequest struct {
	Items      []domain.OrderItem `json:"items"`
	TotalPrice string             `json:"totalPrice"`
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req OrderRequest) (int64, error)
}

type Result struct {
	OrderID   int64
	Reference string
}

// Reference formats an order id the way it is shown to shoppers.
func Reference(orderID int64) string {
	return fmt.Sprintf("#%06d", orderID)
}

// Notice returns the shopper-facing message for a checkout error.
func Notice(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyCart):
		return "Your cart is empty!"
	case errors.Is(err, ErrOrderRejected):
		return "Order failed. Please try again."
	default:
		return "Error placing order. Please try again."
	}
}

// Checkout runs Idle -> Submitting -> Succeeded|Failed -> Idle. Failures
// leave the cart as it was; nothing is retried.
type Checkout struct {
	placer OrderPlacer
	logger *slog.Logger

	mu      sync.Mutex
	phase   Phase
	observe func(from, to Phase)
}

type CheckoutOption func(*Checkout)

// WithTransitionObserver registers fn to be called on every phase change.
func WithTransitionObserver(fn func(from, to Phase)) CheckoutOption {
	return func(c *Checkout) {
		c.observe = fn
	}
}

func NewCheckout(placer OrderPlacer, logger *slog.Logger, opts ...CheckoutOption) *Checkout {
	c := &Checkout{placer: placer, logger: logger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Checkout) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Checkout) transition(to Phase) {
	c.mu.Lock()
	from := c.phase
	c.phase = to
	c.mu.Unlock()

	if c.observe != nil {
		c.observe(from, to)
	}
}

// begin moves Idle -> Submitting; it refuses empty carts and overlapping
// submissions.
func (c *Checkout) begin(state State) error {
	c.mu.Lock()
	if c.phase != PhaseIdle {
		c.mu.Unlock()
		return ErrCheckoutInProgress
	}
	if len(state) == 0 {
		c.mu.Unlock()
		return ErrEmptyCart
	}
	c.phase = PhaseSubmitting
	c.mu.Unlock()

	if c.observe != nil {
		c.observe(PhaseIdle, PhaseSubmitting)
	}
	return nil
}

// NewOrderRequest builds the checkout payload for a cart.
func NewOrderRequest(state State) OrderRequest {
	items := make([]domain.OrderItem, 0, len(state))
	for _, it := range state {
		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return OrderRequest{
		Items:      items,
		TotalPrice: ComputeBill(state).Total.StringFixed(2),
	}
}

// PlaceOrder submits the manager's cart as one order. On success the cart is
// cleared and the order reference returned.
func (c *Checkout) PlaceOrder(ctx context.Context, m *Manager) (Result, error) {
	state := m.State()
	if err := c.begin(state); err != nil {
		return Result{}, err
	}

	orderID, err := c.placer.PlaceOrder(ctx, NewOrderRequest(state))
	if err != nil {
		c.logger.Error("order failed", "error", err, "items", len(state))
		c.transition(PhaseFailed)
		c.transition(PhaseIdle)
		return Result{}, err
	}

	c.transition(PhaseSucceeded)
	if err := m.Clear(ctx); err != nil {
		c.logger.Error("order placed but cart not cleared", "error", err, "order_id", orderID)
	}
	c.transition(PhaseIdle)

	c.logger.Info("order placed", "order_id", orderID)
	return Result{OrderID: orderID, Reference: Reference(orderID)}, nil
}
