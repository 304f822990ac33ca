package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID       int64               `json:"id"`
	Name     string              `json:"name"`
	Type     string              `json:"type"`
	Price    decimal.Decimal     `json:"price"`
	Rating   decimal.NullDecimal `json:"rating"`
	ImageURL *string             `json:"imageUrl"`
}
