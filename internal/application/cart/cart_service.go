// Package cart serves server-side carts keyed by a browser session id.
package cart

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/monaco/tienda/internal/application/trade"
	"github.com/monaco/tienda/internal/domain/cart"
	"github.com/monaco/tienda/internal/domain/catalog"
	"github.com/monaco/tienda/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MsgInvalidSession is returned for a blank session id
const MsgInvalidSession = "invalid cart session"

// OrderCreator submits an order built from the cart
type OrderCreator interface {
	CreateOrder(ctx context.Context, req trade.CreateOrderRequest) (*trade.CreateOrderResult, error)
}

// CartService loads the session cart from slot storage, applies one
// mutation and lets the cart persist itself.
type CartService struct {
	storage  cart.Storage
	products catalog.ProductRepository
	orders   OrderCreator
	logger   *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(storage cart.Storage, products catalog.ProductRepository, orders OrderCreator, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		storage:  storage,
		products: products,
		orders:   orders,
		logger:   logger,
	}
}

// SlotKey returns the storage slot for a session
func SlotKey(sessionID string) string {
	return cart.StorageKey + ":" + sessionID
}

func (s *CartService) open(ctx context.Context, sessionID string) (*cart.Cart, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, shared.NewValidationError(MsgInvalidSession)
	}

	c, err := cart.Load(ctx, s.storage, SlotKey(sessionID))
	if err != nil {
		return nil, shared.NewPersistenceError(err)
	}
	if err := c.Hydrate(ctx); err != nil {
		return nil, shared.NewPersistenceError(err)
	}
	return c, nil
}

// Get returns the session cart
func (s *CartService) Get(ctx context.Context, sessionID string) (*CartResponse, error) {
	c, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	resp := ToCartResponse(c)
	return &resp, nil
}

// AddProduct snapshots an active catalog product into the cart
func (s *CartService) AddProduct(ctx context.Context, sessionID string, productID uuid.UUID) (*CartResponse, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, shared.NewPersistenceError(err)
	}
	if !product.Active {
		return nil, shared.NewValidationError(cart.MsgInvalidItem)
	}

	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		return c.Add(ctx, cart.Product{
			ID:       product.ID.String(),
			Name:     product.Name,
			Price:    product.Price,
			ImageURL: product.ImageURL,
		})
	})
}

// SetQuantity clamps and sets the quantity of one entry
func (s *CartService) SetQuantity(ctx context.Context, sessionID, productID string, qty int) (*CartResponse, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		return c.SetQuantity(ctx, productID, qty)
	})
}

// Remove drops one entry
func (s *CartService) Remove(ctx context.Context, sessionID, productID string) (*CartResponse, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		return c.Remove(ctx, productID)
	})
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, sessionID string) (*CartResponse, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		return c.Clear(ctx)
	})
}

func (s *CartService) mutate(ctx context.Context, sessionID string, fn func(*cart.Cart) error) (*CartResponse, error) {
	c, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, shared.NewPersistenceError(err)
	}
	resp := ToCartResponse(c)
	return &resp, nil
}

// Checkout submits the cart as an order and clears it once the order is
// stored. A rejected order leaves the cart untouched.
func (s *CartService) Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (*trade.CreateOrderResult, error) {
	c, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items := c.Items()
	lines := make([]trade.OrderLineRequest, len(items))
	for i, it := range items {
		price := it.Price
		qty := decimal.NewFromInt(int64(it.Quantity))
		lines[i] = trade.OrderLineRequest{
			ProductID: it.ID,
			Name:      it.Name,
			Price:     &price,
			Quantity:  &qty,
		}
	}

	result, err := s.orders.CreateOrder(ctx, trade.CreateOrderRequest{
		CustomerName:  req.CustomerName,
		Phone:         req.Phone,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		Items:         lines,
	})
	if err != nil {
		return nil, err
	}

	if err := c.Clear(ctx); err != nil {
		s.logger.Warn("Failed to clear cart after checkout",
			zap.String("order_id", result.OrderID.String()),
			zap.Error(err),
		)
	}
	return result, nil
}
