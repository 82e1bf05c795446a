package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/monaco/tienda/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest carries checkout input as submitted
type CreateOrderRequest struct {
	CustomerName  string
	Phone         string
	Address       string
	PaymentMethod string
	Items         []OrderLineRequest
}

// OrderLineRequest is one submitted line. Nil numbers were missing or not finite.
type OrderLineRequest struct {
	ProductID string
	Name      string
	Price     *decimal.Decimal
	Quantity  *decimal.Decimal
}

// CreateOrderResult is returned after a successful checkout
type CreateOrderResult struct {
	OrderID    uuid.UUID `json:"orden_id"`
	Total      float64   `json:"total"`
	PaymentURL string    `json:"pago_url,omitempty"`
	Message    string    `json:"mensaje,omitempty"`
}

// ListOrdersQuery narrows the admin listing
type ListOrdersQuery struct {
	IncludeItems bool
	Status       string
	Text         string
}

// OrderListResult is a filtered listing with its tallies
type OrderListResult struct {
	Orders []OrderResponse
	Count  int
	Total  float64
}

// OrderItemResponse represents a stored order line
type OrderItemResponse struct {
	ID          uuid.UUID `json:"id"`
	OrderID     uuid.UUID `json:"orden_id"`
	ProductID   *string   `json:"producto_id"`
	ProductName string    `json:"nombre_producto"`
	Price       float64   `json:"precio"`
	Quantity    int       `json:"cantidad"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	CreatedAt     time.Time           `json:"creado_en"`
	CustomerName  string              `json:"nombre_cliente"`
	Phone         string              `json:"telefono"`
	Address       string              `json:"direccion"`
	PaymentMethod string              `json:"metodo_pago"`
	Total         float64             `json:"total"`
	Status        string              `json:"estado"`
	Items         []OrderItemResponse `json:"orden_items,omitzero"`
}

// MetricProjectionResponse is the minimal order view for dashboards
type MetricProjectionResponse struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"creado_en"`
	Total     float64   `json:"total"`
	Status    string    `json:"estado"`
}

// DashboardResponse carries the admin overview figures
type DashboardResponse struct {
	OrdersToday int     `json:"ordenesHoy"`
	SalesToday  float64 `json:"ventasHoy"`
	OrdersMonth int     `json:"ordenesMes"`
	SalesMonth  float64 `json:"ventasMes"`
	Pending     int     `json:"pendientes"`
	Delivered   int     `json:"entregadas"`
	Cancelled   int     `json:"canceladas"`
}

// ToOrderResponse converts a domain order. Items are emitted only when
// withItems is set, as an empty list for an order without lines.
func ToOrderResponse(o *trade.Order, withItems bool) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID,
		CreatedAt:     o.CreatedAt,
		CustomerName:  o.CustomerName,
		Phone:         o.Phone,
		Address:       o.Address,
		PaymentMethod: string(o.PaymentMethod),
		Total:         o.Total.InexactFloat64(),
		Status:        string(o.Status),
	}
	if withItems {
		resp.Items = make([]OrderItemResponse, len(o.Items))
		for i, it := range o.Items {
			resp.Items[i] = OrderItemResponse{
				ID:          it.ID,
				OrderID:     it.OrderID,
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				Price:       it.Price.InexactFloat64(),
				Quantity:    it.Quantity,
			}
		}
	}
	return resp
}

// ToDashboardResponse converts dashboard figures
func ToDashboardResponse(d trade.Dashboard) DashboardResponse {
	return DashboardResponse{
		OrdersToday: d.OrdersToday,
		SalesToday:  d.SalesToday.InexactFloat64(),
		OrdersMonth: d.OrdersMonth,
		SalesMonth:  d.SalesMonth.InexactFloat64(),
		Pending:     d.Pending,
		Delivered:   d.Delivered,
		Cancelled:   d.Cancelled,
	}
}
