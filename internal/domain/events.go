package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const EventOrderPlaced = "OrderPlaced"

type OrderPlacedEvent struct {
	EventID    string          `json:"eventId"`
	OrderID    int64           `json:"orderId"`
	UserID     int64           `json:"userId"`
	Items      []OrderItem     `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	PlacedAt   time.Time       `json:"placedAt"`
}
