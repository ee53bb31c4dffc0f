// Package cart owns the shopping cart: its mutation rules, quantity limits,
// totals and the snapshot it keeps in the storage substrate.
//
// The manager reads the whole snapshot, mutates it and writes it back on every
// call. Nothing is locked, so two writers sharing one key lose updates: the
// last Save wins. It is meant for a single active session per key.
package cart

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"storefront/internal/storage"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// DefaultKey is the substrate key the cart snapshot lives under
	DefaultKey = "ecommerce-cart"

	// MaxLineQuantity is the per-line cap applied by UpdateQuantity
	MaxLineQuantity = 5
)

// Manager is the single writer of the cart snapshot
type Manager struct {
	store  storage.Store
	key    string
	logger *zap.Logger
}

// Option configures a Manager
type Option func(*Manager)

// WithKey overrides the substrate key
func WithKey(key string) Option {
	return func(m *Manager) {
		if key != "" {
			m.key = key
		}
	}
}

// NewManager creates a Manager over the given store
func NewManager(store storage.Store, logger *zap.Logger, opts ...Option) *Manager {
	if store == nil {
		store = storage.Unavailable{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{
		store:  store,
		key:    DefaultKey,
		logger: logger.Named("cart"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Key returns the substrate key the manager writes to
func (m *Manager) Key() string {
	return m.key
}

// Load returns the persisted cart. A missing, corrupt or unreadable snapshot
// yields an empty cart.
func (m *Manager) Load(ctx context.Context) domain.Cart {
	res := readSnapshot(ctx, m.store, m.key)
	switch res.status {
	case statusLoaded:
		return res.cart
	case statusCorrupt:
		m.logger.Warn("Discarding unreadable cart snapshot",
			zap.String("key", m.key),
			zap.Error(res.err),
		)
	case statusUnavailable:
		m.logger.Debug("Cart storage unavailable", zap.String("key", m.key))
	}
	return domain.Cart{}
}

// Save writes the full snapshot. Failures are logged and swallowed.
func (m *Manager) Save(ctx context.Context, c domain.Cart) {
	value, err := encode(c)
	if err != nil {
		m.logger.Error("Failed to save cart", zap.String("key", m.key), zap.Error(err))
		return
	}

	if err := m.store.Set(ctx, m.key, value); err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			m.logger.Debug("Cart storage unavailable, skipping save", zap.String("key", m.key))
			return
		}
		m.logger.Error("Failed to save cart",
			zap.String("key", m.key),
			zap.Int("lines", len(c)),
			zap.Error(err),
		)
	}
}

// AddItem adds quantity units of product. An existing line grows but never
// past product stock; a new line starts at min(quantity, stock). A quantity
// below 1 adds a single unit.
func (m *Manager) AddItem(ctx context.Context, product domain.Product, quantity int) domain.Cart {
	if quantity < 1 {
		quantity = 1
	}

	c := m.Load(ctx)
	if i := c.Index(product.ID); i >= 0 {
		c[i].Quantity = min(c[i].Quantity+quantity, product.Stock)
		if c[i].Quantity <= 0 {
			c = append(c[:i], c[i+1:]...)
		}
	} else if q := min(quantity, product.Stock); q > 0 {
		c = append(c, domain.NewCartLine(product, q))
	}

	m.Save(ctx, c)
	return c
}

// UpdateQuantity sets the line quantity, capped at MaxLineQuantity. The cap
// does not look at product stock. A quantity of zero or less removes the line;
// an unknown productID leaves the cart unchanged.
func (m *Manager) UpdateQuantity(ctx context.Context, productID string, quantity int) domain.Cart {
	if quantity <= 0 {
		return m.RemoveItem(ctx, productID)
	}

	c := m.Load(ctx)
	if i := c.Index(productID); i >= 0 {
		c[i].Quantity = min(quantity, MaxLineQuantity)
	}

	m.Save(ctx, c)
	return c
}

// RemoveItem drops the line for productID if there is one
func (m *Manager) RemoveItem(ctx context.Context, productID string) domain.Cart {
	loaded := m.Load(ctx)

	c := make(domain.Cart, 0, len(loaded))
	for _, line := range loaded {
		if line.ID != productID {
			c = append(c, line)
		}
	}

	m.Save(ctx, c)
	return c
}

// Clear deletes the persisted snapshot
func (m *Manager) Clear(ctx context.Context) {
	if err := m.store.Remove(ctx, m.key); err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			return
		}
		m.logger.Error("Failed to clear cart", zap.String("key", m.key), zap.Error(err))
	}
}

// Total returns the sum of price * quantity over the lines of c
func Total(c domain.Cart) decimal.Decimal {
	return c.Total()
}

// ItemCount returns the sum of quantities over the lines of c
func ItemCount(c domain.Cart) int {
	return c.ItemCount()
}
