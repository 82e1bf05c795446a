// Package cart holds the shopping-cart state container.
//
// A Cart keeps one entry per product id and mirrors its full state into a
// single storage slot. The slot is read once when the cart is loaded; writes
// start only after Hydrate so an empty initial state never overwrites a
// persisted one.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/monaco/tienda/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StorageKey is the versioned slot name. Bump the suffix when the persisted
// item layout changes so old slots are ignored instead of misread.
const StorageKey = "monaco_carrito_v1"

// Quantity bounds for a single entry
const (
	MinQuantity = 1
	MaxQuantity = 99
)

// MsgInvalidItem is returned when a product snapshot cannot enter the cart
const MsgInvalidItem = "invalid item"

// Item is one cart entry. Price, name and image are snapshotted when the
// product is first added and do not follow later catalog edits.
type Item struct {
	ID       string          `json:"id"`
	Name     string          `json:"nombre"`
	Price    decimal.Decimal `json:"precio"`
	ImageURL *string         `json:"imagen_url"`
	Quantity int             `json:"cantidad"`
}

// Subtotal returns price x quantity
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Product is the snapshot taken by Add
type Product struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	ImageURL *string
}

// Cart is the state container. It is safe for concurrent use.
type Cart struct {
	mu       sync.Mutex
	storage  Storage
	key      string
	items    []Item
	hydrated bool
}

// New returns an empty, unhydrated cart bound to a storage slot
func New(storage Storage, key string) *Cart {
	return &Cart{
		storage: storage,
		key:     key,
		items:   []Item{},
	}
}

// Load reads the slot synchronously and returns an unhydrated cart.
// A missing or unreadable slot yields an empty cart; only storage
// failures are returned.
func Load(ctx context.Context, storage Storage, key string) (*Cart, error) {
	c := New(storage, key)

	raw, err := storage.Load(ctx, key)
	if err != nil {
		return c, fmt.Errorf("failed to load cart slot %q: %w", key, err)
	}
	if len(raw) == 0 {
		return c, nil
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return c, nil
	}
	c.items = sanitize(items)
	return c, nil
}

// Key returns the storage slot name
func (c *Cart) Key() string {
	return c.key
}

// Hydrated reports whether writes to storage are enabled
func (c *Cart) Hydrated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hydrated
}

// Hydrate enables storage writes and flushes the current state once
func (c *Cart) Hydrate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hydrated {
		return nil
	}
	c.hydrated = true
	return c.persistLocked(ctx)
}

// Add puts a product in the cart. An existing entry gains one unit,
// capped at MaxQuantity; a new entry starts at one.
func (c *Cart) Add(ctx context.Context, p Product) error {
	if strings.TrimSpace(p.ID) == "" || p.Price.IsNegative() {
		return shared.NewValidationError(MsgInvalidItem)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if idx := c.indexLocked(p.ID); idx >= 0 {
		c.items[idx].Quantity = clamp(c.items[idx].Quantity + 1)
	} else {
		c.items = append(c.items, Item{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			ImageURL: p.ImageURL,
			Quantity: MinQuantity,
		})
	}
	return c.persistLocked(ctx)
}

// Remove drops the entry for id. Unknown ids are ignored.
func (c *Cart) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.items[:0]
	for _, it := range c.items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	c.items = out
	return c.persistLocked(ctx)
}

// SetQuantity clamps qty into [MinQuantity, MaxQuantity]. Entries left with
// a non-positive quantity are dropped, which the clamp floor makes
// unreachable in practice.
func (c *Cart) SetQuantity(ctx context.Context, id string, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.items[:0]
	for _, it := range c.items {
		if it.ID == id {
			it.Quantity = clamp(qty)
		}
		if it.Quantity > 0 {
			out = append(out, it)
		}
	}
	c.items = out
	return c.persistLocked(ctx)
}

// Clear empties the cart
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = []Item{}
	return c.persistLocked(ctx)
}

// Items returns a copy of the entries in insertion order
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Total returns the sum of price x quantity over every entry
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Count returns the number of units in the cart
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) indexLocked(id string) int {
	for i, it := range c.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the full state. The in-memory mutation stands even
// when the write fails.
func (c *Cart) persistLocked(ctx context.Context) error {
	if !c.hydrated {
		return nil
	}
	raw, err := json.Marshal(c.items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := c.storage.Save(ctx, c.key, raw); err != nil {
		return fmt.Errorf("failed to save cart slot %q: %w", c.key, err)
	}
	return nil
}

// sanitize enforces the container invariants on data read from storage
func sanitize(items []Item) []Item {
	out := make([]Item, 0, len(items))
	seen := make(map[string]int, len(items))
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		if idx, ok := seen[it.ID]; ok {
			out[idx].Quantity = clamp(out[idx].Quantity + it.Quantity)
			continue
		}
		it.Quantity = clamp(it.Quantity)
		seen[it.ID] = len(out)
		out = append(out, it)
	}
	return out
}

func clamp(qty int) int {
	if qty < MinQuantity {
		return MinQuantity
	}
	if qty > MaxQuantity {
		return MaxQuantity
	}
	return qty
}
