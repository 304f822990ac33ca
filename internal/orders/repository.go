package orders

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/parthg2112/ecommerce-wp-proj/internal/domain"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists an order and its items in one transaction and returns the
// new order. Either both the order row and every item row are committed or
// nothing is.
func (r *OrderRepository) Create(ctx context.Context, userID int64, total decimal.Decimal, items []domain.OrderItem) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	order, err := createOrder(ctx, tx, userID, total)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	if err := addOrderItems(ctx, tx, order.ID, items); err != nil {
		return nil, fmt.Errorf("insert items for order %d: %w", order.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	order.Items = items
	return order, nil
}

func createOrder(ctx context.Context, tx *sql.Tx, userID int64, total decimal.Decimal) (*domain.Order, error) {
	order := &domain.Order{UserID: userID, TotalPrice: total}

	err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, total_price)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, userID, total).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	return order, nil
}

func addOrderItems(ctx context.Context, tx *sql.Tx, orderID int64, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	productIDs := make([]int64, len(items))
	quantities := make([]int64, len(items))
	prices := make([]string, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
		quantities[i] = int64(item.Quantity)
		prices[i] = item.Price.String()
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO order_items (order_id, product_id, quantity, price)
		SELECT $1, item.product_id, item.quantity, item.price
		FROM unnest($2::bigint[], $3::integer[], $4::numeric[])
			WITH ORDINALITY AS item(product_id, quantity, price, position)
		ORDER BY item.position
	`, orderID, pq.Array(productIDs), pq.Array(quantities), pq.Array(prices))
	return err
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	order := &domain.Order{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, total_price, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.UserID, &order.TotalPrice, &order.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	items, err := r.Items(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// Items returns the line items of an order in insertion order.
func (r *OrderRepository) Items(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
