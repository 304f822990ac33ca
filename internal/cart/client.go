package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/parthg2112/ecommerce-wp-proj/internal/domain"
)

// Client talks to the storefront API.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, client *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/products", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storefront returned status %d listing products", resp.StatusCode)
	}

	var body struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return body.Products, nil
}

type placeOrderResponse struct {
	Success bool   `json:"success"`
	OrderID int64  `json:"orderId"`
	Error   string `json:"error"`
}

// PlaceOrder sends one order. Responses the storefront answers without
// success wrap ErrOrderRejected; transport and decoding failures do not.
func (c *Client) PlaceOrder(ctx context.Context, order OrderRequest) (int64, error) {
	data, err := json.Marshal(order)
	if err != nil {
		return 0, fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders", bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("place order: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var body placeOrderResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("%w: status %d %s", ErrOrderRejected, resp.StatusCode, body.Error)
	}
	if decodeErr != nil {
		return 0, fmt.Errorf("decode order response: %w", decodeErr)
	}
	if !body.Success {
		return 0, fmt.Errorf("%w: %s", ErrOrderRejected, body.Error)
	}
	return body.OrderID, nil
}
