package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/parthg2112/ecommerce-wp-proj/internal/domain"
)

type seedProduct struct {
	name   string
	kind   string
	price  int64
	rating string
	image  string
}

var seed = []seedProduct{
	{"Summer Salad", "Salad", 125, "4.0", "/images/plate-1.png"},
	{"Russian Salad", "Salad", 150, "3.0", "/images/plate-2.png"},
	{"Greek Salad", "Salad", 150, "4.0", "/images/plate-3.png"},
	{"Cottage Pie", "Main Course", 175, "5.0", "/images/plate-3.png"},
	{"Caesar Salad", "Salad", 135, "4.5", "/images/plate-1.png"},
	{"Garden Salad", "Salad", 120, "4.0", "/images/plate-2.png"},
}

// SeedProducts returns the starter catalog in insertion order. IDs are left
// zero; the database assigns them.
func SeedProducts() []domain.Product {
	out := make([]domain.Product, 0, len(seed))
	for _, s := range seed {
		image := s.image
		out = append(out, domain.Product{
			Name:     s.name,
			Type:     s.kind,
			Price:    decimal.NewFromInt(s.price),
			Rating:   decimal.NewNullDecimal(decimal.RequireFromString(s.rating)),
			ImageURL: &image,
		})
	}
	return out
}
