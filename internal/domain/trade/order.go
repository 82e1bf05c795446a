package trade

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/monaco/tienda/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Validation messages, checked in this order on order creation
const (
	MsgMissingCustomerData  = "missing customer data"
	MsgInvalidPaymentMethod = "invalid payment method"
	MsgEmptyCart            = "empty cart"
	MsgInvalidItem          = "invalid item"
	MsgInvalidStatus        = "invalid status"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pendiente"
	OrderStatusPaid      OrderStatus = "pagado"
	OrderStatusShipped   OrderStatus = "enviado"
	OrderStatusDelivered OrderStatus = "entregado"
	OrderStatusCancelled OrderStatus = "cancelado"
)

// AllOrderStatuses returns the closed status set in lifecycle order
func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusPaid,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// ParseOrderStatus normalizes raw input and checks it against the closed set.
// Any member is accepted regardless of the order's current status.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", shared.NewValidationError(MsgInvalidStatus)
	}
	return s, nil
}

// PaymentMethod is how the customer settles the order
type PaymentMethod string

const (
	PaymentMethodTransfer       PaymentMethod = "Transferencia"
	PaymentMethodCashOnDelivery PaymentMethod = "Contraentrega"
)

// DefaultPaymentMethod applies when checkout omits the method entirely
const DefaultPaymentMethod = PaymentMethodTransfer

// IsValid checks if the payment method is one of the accepted literals
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodTransfer || m == PaymentMethodCashOnDelivery
}

// Customer holds the contact fields captured at checkout
type Customer struct {
	Name    string
	Phone   string
	Address string
}

// LineInput is an unvalidated order line. A nil Price or Quantity means the
// submitted value was missing or not a finite number.
type LineInput struct {
	ProductID string
	Name      string
	Price     *decimal.Decimal
	Quantity  *decimal.Decimal
}

// OrderItem is a snapshot of one product line. Items are immutable once stored.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   *string
	ProductName string
	Price       decimal.Decimal
	Quantity    int
}

// Subtotal returns price x quantity
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order represents a customer purchase request
type Order struct {
	shared.BaseEntity
	CustomerName  string
	Phone         string
	Address       string
	PaymentMethod PaymentMethod
	Total         decimal.Decimal
	Status        OrderStatus
	Items         []OrderItem
}

// NewOrder validates checkout input and builds a pending order.
// Validation short-circuits on the first failure. The total is always
// computed from the lines.
func NewOrder(customer Customer, method string, lines []LineInput) (*Order, error) {
	customer = Customer{
		Name:    strings.TrimSpace(customer.Name),
		Phone:   strings.TrimSpace(customer.Phone),
		Address: strings.TrimSpace(customer.Address),
	}
	if customer.Name == "" || customer.Phone == "" || customer.Address == "" {
		return nil, shared.NewValidationError(MsgMissingCustomerData)
	}

	pm := PaymentMethod(strings.TrimSpace(method))
	if !pm.IsValid() {
		return nil, shared.NewValidationError(MsgInvalidPaymentMethod)
	}

	if len(lines) == 0 {
		return nil, shared.NewValidationError(MsgEmptyCart)
	}

	order := &Order{
		BaseEntity:    shared.NewBaseEntity(),
		CustomerName:  customer.Name,
		Phone:         customer.Phone,
		Address:       customer.Address,
		PaymentMethod: pm,
		Status:        OrderStatusPending,
		Items:         make([]OrderItem, 0, len(lines)),
	}

	for _, line := range lines {
		item, err := newOrderItem(order.ID, line)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	order.recalculateTotal()

	return order, nil
}

func newOrderItem(orderID uuid.UUID, line LineInput) (OrderItem, error) {
	invalid := shared.NewValidationError(MsgInvalidItem)

	productID := strings.TrimSpace(line.ProductID)
	if productID == "" || strings.TrimSpace(line.Name) == "" {
		return OrderItem{}, invalid
	}
	if line.Price == nil || line.Price.IsNegative() {
		return OrderItem{}, invalid
	}
	if line.Quantity == nil || !line.Quantity.IsInteger() ||
		line.Quantity.LessThan(decimal.NewFromInt(1)) ||
		line.Quantity.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return OrderItem{}, invalid
	}

	return OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   &productID,
		ProductName: line.Name,
		Price:       line.Price.Round(shared.MoneyScale),
		Quantity:    int(line.Quantity.IntPart()),
	}, nil
}

// recalculateTotal sums price x quantity over the items
func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	o.Total = total
}

// SetStatus moves the order to any status of the closed set
func (o *Order) SetStatus(status OrderStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError(MsgInvalidStatus)
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}
