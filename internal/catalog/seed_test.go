package catalog

import "testing"

func TestSeedProducts(t *testing.T) {
	products := SeedProducts()

	if len(products) != 6 {
		t.Fatalf("expected 6 seed products, got %d", len(products))
	}

	want := []struct {
		name  string
		price string
	}{
		{"Summer Salad", "125"},
		{"Russian Salad", "150"},
		{"Greek Salad", "150"},
		{"Cottage Pie", "175"},
		{"Caesar Salad", "135"},
		{"Garden Salad", "120"},
	}
	for i, w := range want {
		p := products[i]
		if p.Name != w.name {
			t.Errorf("product %d: expected %q, got %q", i, w.name, p.Name)
		}
		if p.Price.String() != w.price {
			t.Errorf("product %d: expected price %s, got %s", i, w.price, p.Price)
		}
		if !p.Rating.Valid {
			t.Errorf("product %d: expected a rating", i)
		}
		if p.ImageURL == nil || *p.ImageURL == "" {
			t.Errorf("product %d: expected an image", i)
		}
	}

	products[0].Name = "changed"
	if SeedProducts()[0].Name != "Summer Salad" {
		t.Error("SeedProducts must return a fresh copy")
	}
}
