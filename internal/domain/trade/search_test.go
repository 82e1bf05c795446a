package trade

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildOrder(t *testing.T, name, address, product string) Order {
	t.Helper()
	o, err := NewOrder(
		Customer{Name: name, Phone: "3001234567", Address: address},
		"Transferencia",
		[]LineInput{{ProductID: "p-1", Name: product, Price: dec("1000"), Quantity: dec("2")}},
	)
	require.NoError(t, err)
	return *o
}

func TestOrderQuery_Filter(t *testing.T) {
	ana := buildOrder(t, "Ana Pérez", "Bogotá", "Perfume Oud")
	luis := buildOrder(t, "Luis Gómez", "Medellín", "Crema Corporal")
	require.NoError(t, luis.SetStatus(OrderStatusDelivered))
	orders := []Order{ana, luis}

	t.Run("zero query keeps everything", func(t *testing.T) {
		assert.Len(t, OrderQuery{}.Filter(orders), 2)
	})

	t.Run("by status", func(t *testing.T) {
		got := OrderQuery{Status: OrderStatusDelivered}.Filter(orders)
		require.Len(t, got, 1)
		assert.Equal(t, luis.ID, got[0].ID)
	})

	t.Run("text ignores case and accents", func(t *testing.T) {
		got := OrderQuery{Text: "BOGOTA"}.Filter(orders)
		require.Len(t, got, 1)
		assert.Equal(t, ana.ID, got[0].ID)

		got = OrderQuery{Text: "perez"}.Filter(orders)
		require.Len(t, got, 1)
	})

	t.Run("text matches item names", func(t *testing.T) {
		got := OrderQuery{Text: "crema"}.Filter(orders)
		require.Len(t, got, 1)
		assert.Equal(t, luis.ID, got[0].ID)
	})

	t.Run("text matches id prefix", func(t *testing.T) {
		got := OrderQuery{Text: ana.ID.String()[:8]}.Filter(orders)
		require.Len(t, got, 1)
		assert.Equal(t, ana.ID, got[0].ID)
	})

	t.Run("status and text combine", func(t *testing.T) {
		assert.Empty(t, OrderQuery{Status: OrderStatusPending, Text: "luis"}.Filter(orders))
	})
}

func TestTally(t *testing.T) {
	orders := []Order{
		buildOrder(t, "a", "x", "p"),
		buildOrder(t, "b", "y", "q"),
	}

	count, total := Tally(orders)

	assert.Equal(t, 2, count)
	assert.True(t, total.Equal(decimal.NewFromInt(4000)))
}
