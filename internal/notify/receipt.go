package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/parthg2112/ecommerce-wp-proj/internal/domain"
)

// ReceiptHandler turns OrderPlaced events into receipt emails sent through
// the mailer service.
type ReceiptHandler struct {
	mailerURL  string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewReceiptHandler(mailerURL string, client *http.Client, logger *slog.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		mailerURL:  strings.TrimRight(mailerURL, "/"),
		httpClient: client,
		logger:     logger,
	}
}

type email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Handle is a messaging.HandlerFunc. Returning an error leaves the message
// uncommitted.
func (h *ReceiptHandler) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderPlacedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal order placed event: %w", err)
	}

	h.logger.Info("processing order placed event", "order_id", event.OrderID, "user_id", event.UserID, "event_id", event.EventID)

	msg := email{
		To:      Recipient(event.UserID),
		Subject: "Order Confirmation: " + Reference(event.OrderID),
		Body:    RenderReceipt(event),
	}
	if err := h.send(ctx, msg); err != nil {
		h.logger.Error("failed to send receipt", "error", err, "order_id", event.OrderID)
		return fmt.Errorf("send receipt: %w", err)
	}

	h.logger.Info("receipt sent", "order_id", event.OrderID)
	return nil
}

// Recipient is the placeholder mailbox for a user; there are no real accounts.
func Recipient(userID int64) string {
	return fmt.Sprintf("user-%d@example.com", userID)
}

func Reference(orderID int64) string {
	return fmt.Sprintf("#%06d", orderID)
}

// RenderReceipt formats the order as a plain-text receipt.
func RenderReceipt(event domain.OrderPlacedEvent) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Thank you for your order %s.\n\n", Reference(event.OrderID))
	for _, it := range event.Items {
		fmt.Fprintf(&sb, "  product %d  x%d  @ %s  = %s\n",
			it.ProductID, it.Quantity, it.Price.StringFixed(2), it.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&sb, "\nTotal paid: %s\n", event.TotalPrice.StringFixed(2))
	if !event.PlacedAt.IsZero() {
		fmt.Fprintf(&sb, "Placed at: %s\n", event.PlacedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	}
	return sb.String()
}

func (h *ReceiptHandler) send(ctx context.Context, msg email) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.mailerURL+"/send", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mailer returned status %d", resp.StatusCode)
	}

	return nil
}
