package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/monaco/tienda/internal/application/trade"
	"github.com/monaco/tienda/internal/domain/cart"
	"github.com/monaco/tienda/internal/domain/catalog"
	"github.com/monaco/tienda/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *mockProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockOrderCreator struct {
	mock.Mock
}

func (m *mockOrderCreator) CreateOrder(ctx context.Context, req trade.CreateOrderRequest) (*trade.CreateOrderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.CreateOrderResult), args.Error(1)
}

func newProduct(t *testing.T, name string, price int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, decimal.NewFromInt(price))
	require.NoError(t, err)
	return p
}

type fixture struct {
	svc      *CartService
	storage  *cart.MemoryStorage
	products *mockProductRepository
	orders   *mockOrderCreator
}

func newFixture() fixture {
	f := fixture{
		storage:  cart.NewMemoryStorage(),
		products: new(mockProductRepository),
		orders:   new(mockOrderCreator),
	}
	f.svc = NewCartService(f.storage, f.products, f.orders, nil)
	return f
}

func TestCartService_AddProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	vela := newProduct(t, "Vela", 25000)
	f.products.On("FindByID", mock.Anything, vela.ID).Return(vela, nil)

	_, err := f.svc.AddProduct(ctx, "s1", vela.ID)
	require.NoError(t, err)
	got, err := f.svc.AddProduct(ctx, "s1", vela.ID)
	require.NoError(t, err)

	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, 50000.0, got.Total)
	assert.Equal(t, 2, got.Count)

	other, err := f.svc.Get(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, other.Items, "sessions do not share slots")

	raw, err := f.storage.Load(ctx, "monaco_carrito_v1:s1")
	require.NoError(t, err)
	assert.Contains(t, string(raw), vela.ID.String())
}

func TestCartService_AddProductRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("inactive product", func(t *testing.T) {
		f := newFixture()
		p := newProduct(t, "Agotado", 1)
		p.Active = false
		f.products.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		_, err := f.svc.AddProduct(ctx, "s1", p.ID)

		assert.ErrorIs(t, err, shared.NewValidationError(cart.MsgInvalidItem))
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newFixture()
		f.products.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		_, err := f.svc.AddProduct(ctx, "s1", uuid.New())

		assert.True(t, shared.IsCode(err, shared.CodeNotFound))
	})

	t.Run("blank session", func(t *testing.T) {
		f := newFixture()
		p := newProduct(t, "Vela", 1)
		f.products.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		_, err := f.svc.AddProduct(ctx, "  ", p.ID)

		assert.ErrorIs(t, err, shared.NewValidationError(MsgInvalidSession))
	})
}

func TestCartService_QuantityRemoveClear(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a, b := newProduct(t, "A", 10), newProduct(t, "B", 20)
	f.products.On("FindByID", mock.Anything, a.ID).Return(a, nil)
	f.products.On("FindByID", mock.Anything, b.ID).Return(b, nil)
	_, err := f.svc.AddProduct(ctx, "s", a.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, "s", b.ID)
	require.NoError(t, err)

	got, err := f.svc.SetQuantity(ctx, "s", a.ID.String(), 500)
	require.NoError(t, err)
	assert.Equal(t, cart.MaxQuantity, got.Items[0].Quantity)

	got, err = f.svc.Remove(ctx, "s", b.ID.String())
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 990.0, got.Total)

	got, err = f.svc.Clear(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Zero(t, got.Total)
}

func TestCartService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("submits lines and clears the cart", func(t *testing.T) {
		f := newFixture()
		p := newProduct(t, "Vela", 25000)
		f.products.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		_, err := f.svc.AddProduct(ctx, "s", p.ID)
		require.NoError(t, err)
		_, err = f.svc.AddProduct(ctx, "s", p.ID)
		require.NoError(t, err)

		orderID := uuid.New()
		f.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req trade.CreateOrderRequest) bool {
			return req.CustomerName == "Ana" && len(req.Items) == 1 &&
				req.Items[0].ProductID == p.ID.String() &&
				req.Items[0].Quantity.Equal(decimal.NewFromInt(2)) &&
				req.Items[0].Price.Equal(decimal.NewFromInt(25000))
		})).Return(&trade.CreateOrderResult{OrderID: orderID, Total: 50000}, nil)

		result, err := f.svc.Checkout(ctx, "s", CheckoutRequest{CustomerName: "Ana", Phone: "1", Address: "x", PaymentMethod: "Transferencia"})

		require.NoError(t, err)
		assert.Equal(t, orderID, result.OrderID)
		after, err := f.svc.Get(ctx, "s")
		require.NoError(t, err)
		assert.Empty(t, after.Items)
	})

	t.Run("rejected order keeps the cart", func(t *testing.T) {
		f := newFixture()
		p := newProduct(t, "Vela", 25000)
		f.products.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		_, err := f.svc.AddProduct(ctx, "s", p.ID)
		require.NoError(t, err)
		f.orders.On("CreateOrder", mock.Anything, mock.Anything).
			Return(nil, shared.NewValidationError("missing customer data"))

		_, err = f.svc.Checkout(ctx, "s", CheckoutRequest{})

		require.Error(t, err)
		after, err := f.svc.Get(ctx, "s")
		require.NoError(t, err)
		assert.Len(t, after.Items, 1)
	})
}

type brokenStorage struct{}

func (brokenStorage) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("dial tcp 10.0.0.5:6379: connect: connection refused")
}

func (brokenStorage) Save(context.Context, string, []byte) error { return nil }

func TestCartService_StorageFailure(t *testing.T) {
	svc := NewCartService(brokenStorage{}, new(mockProductRepository), new(mockOrderCreator), nil)

	_, err := svc.Get(context.Background(), "s")

	require.Error(t, err)
	assert.True(t, shared.IsCode(err, shared.CodePersistence))
	assert.Contains(t, err.Error(), "connection refused")
}
