package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is one line of an order. Price is the unit price copied at
// checkout, not a reference into the catalog.
type OrderItem struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"unitPrice"`
}

// Subtotal returns price × quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"userId"`
	Items      []OrderItem     `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	CreatedAt  time.Time       `json:"createdAt"`
}
