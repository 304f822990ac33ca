package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/parthg2112/ecommerce-wp-proj/internal/domain"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, type, price, rating, image_url
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		var imageURL sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Price, &p.Rating, &imageURL); err != nil {
			return nil, err
		}
		if imageURL.Valid {
			p.ImageURL = &imageURL.String
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// Seed inserts the fixed starter catalog when the products table is empty and
// reports how many rows it wrote. The exclusive table lock makes the count
// guard hold across concurrently starting instances.
func (r *ProductRepository) Seed(ctx context.Context) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `LOCK TABLE products IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return 0, fmt.Errorf("lock products: %w", err)
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (name, type, price, rating, image_url)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = stmt.Close() }()

	for _, p := range SeedProducts() {
		if _, err := stmt.ExecContext(ctx, p.Name, p.Type, p.Price, p.Rating, p.ImageURL); err != nil {
			return 0, fmt.Errorf("insert product %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(seed), nil
}
