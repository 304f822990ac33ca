// Package cart is the shopper-side cart. State values are never mutated in
// place; Manager mirrors them into durable storage and Checkout turns them
// into storefront orders.
package cart

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/parthg2112/ecommerce-wp-proj/internal/domain"
)

// Item is a product snapshot plus a positive quantity.
type Item struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// State is the ordered list of cart items. Functions in this package never
// modify a State in place; they return a new one.
type State []Item

// Catalog is the read-only product snapshot the cart resolves ids against.
type Catalog struct {
	byID map[int64]domain.Product
}

func NewCatalog(products []domain.Product) Catalog {
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return Catalog{byID: byID}
}

func (c Catalog) Lookup(productID int64) (domain.Product, bool) {
	p, ok := c.byID[productID]
	return p, ok
}

func (c Catalog) Len() int { return len(c.byID) }

func (s State) index(productID int64) int {
	return slices.IndexFunc(s, func(it Item) bool { return it.ProductID == productID })
}

// Count is the total number of units in the cart.
func (s State) Count() int {
	n := 0
	for _, it := range s {
		n += it.Quantity
	}
	return n
}

// AddToCart adds one unit of productID. Products missing from the catalog
// leave the state unchanged.
func AddToCart(s State, catalog Catalog, productID int64) State {
	p, ok := catalog.Lookup(productID)
	if !ok {
		return s
	}

	if i := s.index(productID); i >= 0 {
		next := slices.Clone(s)
		next[i].Quantity++
		return next
	}

	item := Item{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
	}
	if p.ImageURL != nil {
		item.Image = *p.ImageURL
	}
	return append(slices.Clone(s), item)
}

// ChangeQuantity adds delta to an item's quantity and drops the item when the
// result is zero or less.
func ChangeQuantity(s State, productID int64, delta int) State {
	i := s.index(productID)
	if i < 0 {
		return s
	}

	if s[i].Quantity+delta <= 0 {
		return RemoveItem(s, productID)
	}

	next := slices.Clone(s)
	next[i].Quantity += delta
	return next
}

func RemoveItem(s State, productID int64) State {
	next := make(State, 0, len(s))
	for _, it := range s {
		if it.ProductID != productID {
			next = append(next, it)
		}
	}
	return next
}
