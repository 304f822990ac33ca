package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
)

// StorageKey is the single key the serialized cart lives under.
const StorageKey = "cart"

// Storage persists the serialized cart. Load returns nil data and no error
// when nothing has been stored yet.
type Storage interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Manager owns a cart state and mirrors every change into storage. A change
// whose save fails is not applied, so memory and storage never disagree.
// Manager is not safe for concurrent use.
type Manager struct {
	state   State
	storage Storage
	catalog Catalog
}

// NewManager rehydrates the cart from storage.
func NewManager(ctx context.Context, storage Storage, catalog Catalog) (*Manager, error) {
	data, err := storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	state := State{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &state); err != nil {
			return nil, fmt.Errorf("decode stored cart: %w", err)
		}
	}

	return &Manager{state: state, storage: storage, catalog: catalog}, nil
}

// State returns a copy of the current cart.
func (m *Manager) State() State {
	return slices.Clone(m.state)
}

func (m *Manager) Add(ctx context.Context, productID int64) error {
	return m.apply(ctx, AddToCart(m.state, m.catalog, productID))
}

func (m *Manager) ChangeQuantity(ctx context.Context, productID int64, delta int) error {
	return m.apply(ctx, ChangeQuantity(m.state, productID, delta))
}

func (m *Manager) Remove(ctx context.Context, productID int64) error {
	return m.apply(ctx, RemoveItem(m.state, productID))
}

func (m *Manager) Clear(ctx context.Context) error {
	return m.apply(ctx, State{})
}

func (m *Manager) apply(ctx context.Context, next State) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := m.storage.Save(ctx, data); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	m.state = next
	return nil
}
