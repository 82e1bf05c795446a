package cart

import (
	"github.com/monaco/tienda/internal/domain/cart"
)

// ItemResponse represents a cart entry
type ItemResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"nombre"`
	Price    float64 `json:"precio"`
	ImageURL *string `json:"imagen_url"`
	Quantity int     `json:"cantidad"`
	Subtotal float64 `json:"subtotal"`
}

// CartResponse represents the cart contents and totals
type CartResponse struct {
	Items []ItemResponse `json:"items"`
	Total float64        `json:"total"`
	Count int            `json:"cantidad"`
}

// CheckoutRequest carries the customer fields for a cart checkout
type CheckoutRequest struct {
	CustomerName  string
	Phone         string
	Address       string
	PaymentMethod string
}

// ToCartResponse converts a cart to a response
func ToCartResponse(c *cart.Cart) CartResponse {
	items := c.Items()
	out := make([]ItemResponse, len(items))
	for i, it := range items {
		out[i] = ItemResponse{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price.InexactFloat64(),
			ImageURL: it.ImageURL,
			Quantity: it.Quantity,
			Subtotal: it.Subtotal().InexactFloat64(),
		}
	}
	return CartResponse{
		Items: out,
		Total: c.Total().InexactFloat64(),
		Count: c.Count(),
	}
}
