// Package cart maintains the client-side shopping cart: per-identity
// persistence, mutation operations, and the migration away from the legacy
// unkeyed storage entry.
package cart

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/domain"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/store"
	apperrors "github.com/Sakurayo-Crispita/saborreal-storefront/pkg/errors"
)

// Manager owns the in-memory cart for the active identity. Views receive
// snapshots and mutate only through the exported operations; every mutation
// writes through to the store under the active key before returning.
type Manager struct {
	st     store.Store
	logger *slog.Logger

	mu       sync.Mutex
	identity string
	items    []domain.CartLine
}

// NewManager creates an empty cart manager. Wire HandleIdentityChange into
// the session before session.Restore so the first load lands on the right
// bucket.
func NewManager(st store.Store, logger *slog.Logger) *Manager {
	return &Manager{
		st:     st,
		logger: logger,
	}
}

// HandleIdentityChange is the session.IdentityListener for this cart:
// flush under the departing identity, then load the arriving one.
func (m *Manager) HandleIdentityChange(ctx context.Context, oldIdentity, newIdentity string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if oldIdentity != "" && m.identity == oldIdentity {
		m.flushLocked(ctx)
	}
	m.identity = newIdentity
	m.loadLocked(ctx)
}

// Load restores the cart for the given identity, running the one-time
// legacy-entry migration when needed.
func (m *Manager) Load(ctx context.Context, identity string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.identity = identity
	m.loadLocked(ctx)
}

// loadLocked reads the entry under the active key. When no keyed entry
// exists but the legacy unkeyed entry does, the legacy cart is adopted once,
// re-keyed, and the legacy entry deleted. Running it again finds the keyed
// entry and is a no-op.
func (m *Manager) loadLocked(ctx context.Context) {
	m.items = nil
	if m.identity == "" {
		return
	}

	key := store.CartKey(m.identity)

	var items []domain.CartLine
	err := m.st.Get(ctx, key, &items)
	if err == nil {
		m.items = items
		return
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		m.logger.Warn("failed to load cart", slog.String("key", key), slog.String("error", err.Error()))
		return
	}

	// Legacy migration: carts stored before per-identity partitioning live
	// under a single unkeyed entry.
	var legacy []domain.CartLine
	if err := m.st.Get(ctx, store.KeyLegacyCart, &legacy); err != nil {
		return
	}

	if len(legacy) > 0 {
		if err := m.st.Set(ctx, key, legacy); err != nil {
			m.logger.Warn("failed to re-key legacy cart", slog.String("error", err.Error()))
			return
		}
		m.items = legacy
	}
	if err := m.st.Delete(ctx, store.KeyLegacyCart); err != nil {
		m.logger.Warn("failed to delete legacy cart entry", slog.String("error", err.Error()))
	}

	m.logger.Info("migrated legacy cart",
		slog.String("identity", m.identity),
		slog.Int("items", len(m.items)),
	)
}

// AddItem appends a product to the cart, merging by product id: adding an
// already-present product increments its quantity by qty. Quantities below
// one are treated as one. Zero or negative prices are accepted as-is; the
// catalog source is trusted.
func (m *Manager) AddItem(ctx context.Context, p domain.Product, qty int) {
	if qty < 1 {
		qty = 1
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ProductID == p.ID {
			m.items[i].Quantity += qty
			m.persistLocked(ctx)
			return
		}
	}

	m.items = append(m.items, domain.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  qty,
		ImageURL:  p.ImageURL,
	})
	m.persistLocked(ctx)
}

// SetQuantity replaces an item's quantity, clamped to a minimum of one.
// Removal is explicit via RemoveItem.
func (m *Manager) SetQuantity(ctx context.Context, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ProductID == productID {
			m.items[i].Quantity = qty
			m.persistLocked(ctx)
			return nil
		}
	}
	return apperrors.NotFound("cart item", productID)
}

// Increment raises an item's quantity by one.
func (m *Manager) Increment(ctx context.Context, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ProductID == productID {
			m.items[i].Quantity++
			m.persistLocked(ctx)
			return nil
		}
	}
	return apperrors.NotFound("cart item", productID)
}

// Decrement lowers an item's quantity by one, flooring at one.
func (m *Manager) Decrement(ctx context.Context, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ProductID == productID {
			if m.items[i].Quantity > 1 {
				m.items[i].Quantity--
				m.persistLocked(ctx)
			}
			return nil
		}
	}
	return apperrors.NotFound("cart item", productID)
}

// RemoveItem drops an item from the cart.
func (m *Manager) RemoveItem(ctx context.Context, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ProductID == productID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			m.persistLocked(ctx)
			return nil
		}
	}
	return apperrors.NotFound("cart item", productID)
}

// Clear empties the cart and deletes the stored entry for the active key,
// rather than writing an empty array, so anonymous buckets leave no stale
// empty records behind.
func (m *Manager) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = nil
	if m.identity == "" {
		return
	}
	if err := m.st.Delete(ctx, store.CartKey(m.identity)); err != nil {
		m.logger.Warn("failed to delete cart entry", slog.String("error", err.Error()))
	}
	// Drop any surviving legacy entry too, so a later load cannot
	// resurrect cleared items through the migration path.
	if err := m.st.Delete(ctx, store.KeyLegacyCart); err != nil {
		m.logger.Warn("failed to delete legacy cart entry", slog.String("error", err.Error()))
	}
}

// Items returns a snapshot of the cart lines in insertion order.
func (m *Manager) Items() []domain.CartLine {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.CartLine, len(m.items))
	copy(out, m.items)
	return out
}

// Len returns the number of distinct line items.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Total recomputes the cart total on every call; it is never cached across
// mutations. Rounding happens only at display time.
func (m *Manager) Total() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	var total float64
	for _, it := range m.items {
		total += it.Subtotal()
	}
	return total
}

// OrderItems projects the cart into the order submission shape.
func (m *Manager) OrderItems() []domain.OrderItemInput {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.OrderItemInput, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, domain.OrderItemInput{ProductID: it.ProductID, Qty: it.Quantity})
	}
	return out
}

// persistLocked writes the cart through under the active key. Caller holds
// m.mu; the write happens inside the same critical section as the mutation,
// so a reload immediately after a mutation observes the new value.
func (m *Manager) persistLocked(ctx context.Context) {
	if m.identity == "" {
		return
	}
	if err := m.st.Set(ctx, store.CartKey(m.identity), m.items); err != nil {
		m.logger.Warn("failed to persist cart", slog.String("error", err.Error()))
	}
}

// flushLocked persists under the current key before an identity switch.
// An empty cart deletes the entry instead of storing an empty array.
func (m *Manager) flushLocked(ctx context.Context) {
	if m.identity == "" {
		return
	}
	key := store.CartKey(m.identity)
	if len(m.items) == 0 {
		if err := m.st.Delete(ctx, key); err != nil {
			m.logger.Warn("failed to delete empty cart entry", slog.String("error", err.Error()))
		}
		return
	}
	if err := m.st.Set(ctx, key, m.items); err != nil {
		m.logger.Warn("failed to flush cart", slog.String("error", err.Error()))
	}
}

// CoerceQuantity turns free-text quantity input into an integer of at least
// one: numeric input is rounded to the nearest integer, anything else
// defaults to one.
func CoerceQuantity(s string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 1
	}
	n := int(math.Round(f))
	if n < 1 {
		return 1
	}
	return n
}
