package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/monaco/tienda/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order entity
type OrderModel struct {
	BaseModel
	CustomerName  string              `gorm:"column:nombre_cliente;type:varchar(200);not null"`
	Phone         string              `gorm:"column:telefono;type:varchar(50);not null"`
	Address       string              `gorm:"column:direccion;type:text;not null"`
	PaymentMethod trade.PaymentMethod `gorm:"column:metodo_pago;type:varchar(20);not null"`
	Total         decimal.Decimal     `gorm:"column:total;type:decimal(14,2);not null"`
	Status        trade.OrderStatus   `gorm:"column:estado;type:varchar(20);not null;default:'pendiente';index"`
	Items         []OrderItemModel    `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "ordenes"
}

// ToDomain converts the persistence model to a domain Order. Items are only
// present when they were preloaded.
func (m *OrderModel) ToDomain() *trade.Order {
	order := &trade.Order{
		BaseEntity:    m.BaseModel.ToDomain(),
		CustomerName:  m.CustomerName,
		Phone:         m.Phone,
		Address:       m.Address,
		PaymentMethod: m.PaymentMethod,
		Total:         m.Total,
		Status:        m.Status,
	}
	if m.Items != nil {
		order.Items = make([]trade.OrderItem, len(m.Items))
		for i := range m.Items {
			order.Items[i] = m.Items[i].ToDomain()
		}
	}
	return order
}

// FromDomain populates the order columns. Items are written separately.
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.CustomerName = o.CustomerName
	m.Phone = o.Phone
	m.Address = o.Address
	m.PaymentMethod = o.PaymentMethod
	m.Total = o.Total
	m.Status = o.Status
}

// OrderModelFromDomain creates a persistence model from a domain Order
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for one order line. ProductID is
// nulled by the store when the product is deleted.
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"column:orden_id;type:uuid;not null;index"`
	ProductID   *string         `gorm:"column:producto_id;type:uuid"`
	ProductName string          `gorm:"column:nombre_producto;type:varchar(200);not null"`
	Price       decimal.Decimal `gorm:"column:precio;type:decimal(12,2);not null"`
	Quantity    int             `gorm:"column:cantidad;not null"`
	Position    int             `gorm:"column:posicion;not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "orden_items"
}

// ToDomain converts the persistence model to a domain OrderItem
func (m *OrderItemModel) ToDomain() trade.OrderItem {
	return trade.OrderItem{
		ID:          m.ID,
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Price:       m.Price,
		Quantity:    m.Quantity,
	}
}

// OrderItemModelsFromDomain converts items keeping their submission order
func OrderItemModelsFromDomain(items []trade.OrderItem) []OrderItemModel {
	out := make([]OrderItemModel, len(items))
	for i, it := range items {
		out[i] = OrderItemModel{
			ID:          it.ID,
			OrderID:     it.OrderID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Price:       it.Price,
			Quantity:    it.Quantity,
			Position:    i,
		}
	}
	return out
}

// MetricProjectionRow is the narrow row read for dashboards
type MetricProjectionRow struct {
	ID        uuid.UUID
	CreatedAt time.Time         `gorm:"column:creado_en"`
	Total     decimal.Decimal   `gorm:"column:total"`
	Status    trade.OrderStatus `gorm:"column:estado"`
}

// ToDomain converts the row to a domain projection
func (r MetricProjectionRow) ToDomain() trade.MetricProjection {
	return trade.MetricProjection{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Total:     r.Total,
		Status:    r.Status,
	}
}
