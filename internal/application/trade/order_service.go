package trade

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/monaco/tienda/internal/domain/shared"
	"github.com/monaco/tienda/internal/domain/trade"
	"github.com/monaco/tienda/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// HandoffConfig configures the post-checkout payment hand-off
type HandoffConfig struct {
	// WhatsAppNumber receives transfer payment chats, digits only with country code
	WhatsAppNumber string
	// CashOnDeliveryNotice is shown after a cash-on-delivery order
	CashOnDeliveryNotice string
}

// OrderService handles order submission and the admin order lifecycle
type OrderService struct {
	orderRepo trade.OrderRepository
	handoff   HandoffConfig
	logger    *zap.Logger
	now       func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo trade.OrderRepository, handoff HandoffConfig, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo: orderRepo,
		handoff:   handoff,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateOrder validates checkout input, computes the total from the lines
// and stores the order with its items.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "create",
		attribute.Int("order.lines", len(req.Items)),
	)
	defer span.End()

	lines := make([]trade.LineInput, len(req.Items))
	for i, it := range req.Items {
		lines[i] = trade.LineInput{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		}
	}

	order, err := trade.NewOrder(trade.Customer{
		Name:    req.CustomerName,
		Phone:   req.Phone,
		Address: req.Address,
	}, req.PaymentMethod, lines)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("order.id", order.ID.String()))

	if err := s.persist(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("payment_method", string(order.PaymentMethod)),
		zap.String("total", order.Total.String()),
		zap.Int("lines", len(order.Items)),
	)
	return s.handoffResult(order), nil
}

// persist writes the order and its items atomically when the repository
// supports it. Otherwise the items follow the header and a failed item
// insert deletes the header again.
func (s *OrderService) persist(ctx context.Context, order *trade.Order) error {
	if tx, ok := s.orderRepo.(trade.OrderTransactor); ok {
		if err := tx.CreateWithItems(ctx, order); err != nil {
			return shared.NewPersistenceError(err)
		}
		return nil
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return shared.NewPersistenceError(err)
	}
	if err := s.orderRepo.CreateItems(ctx, order.Items); err != nil {
		if delErr := s.orderRepo.Delete(ctx, order.ID); delErr != nil {
			s.logger.Error("Failed to remove order after item insert failure",
				zap.String("order_id", order.ID.String()),
				zap.Error(delErr),
			)
		}
		return shared.NewPersistenceError(err)
	}
	return nil
}

func (s *OrderService) handoffResult(order *trade.Order) *CreateOrderResult {
	result := &CreateOrderResult{
		OrderID: order.ID,
		Total:   order.Total.InexactFloat64(),
	}
	switch order.PaymentMethod {
	case trade.PaymentMethodTransfer:
		result.PaymentURL = TransferPaymentURL(s.handoff.WhatsAppNumber, order.ID)
	case trade.PaymentMethodCashOnDelivery:
		result.Message = s.handoff.CashOnDeliveryNotice
	}
	return result
}

// TransferPaymentURL builds the chat link a customer follows to pay by transfer
func TransferPaymentURL(number string, orderID uuid.UUID) string {
	text := "Hola, quiero realizar el pago de mi pedido " + orderID.String() + ", por medio de transferencia"
	return "https://wa.me/" + url.PathEscape(strings.TrimSpace(number)) + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// ListOrders returns orders newest first, filtered by status and free text
func (s *OrderService) ListOrders(ctx context.Context, q ListOrdersQuery) (*OrderListResult, error) {
	query := trade.OrderQuery{Text: q.Text}
	if strings.TrimSpace(q.Status) != "" {
		status, err := trade.ParseOrderStatus(q.Status)
		if err != nil {
			return nil, err
		}
		query.Status = status
	}

	// Item names are searchable, so text queries always load the items.
	loadItems := q.IncludeItems || strings.TrimSpace(q.Text) != ""
	orders, err := s.orderRepo.FindAll(ctx, loadItems)
	if err != nil {
		return nil, shared.NewPersistenceError(err)
	}

	matched := query.Filter(orders)
	count, total := trade.Tally(matched)

	out := make([]OrderResponse, len(matched))
	for i := range matched {
		out[i] = ToOrderResponse(&matched[i], q.IncludeItems)
	}
	return &OrderListResult{
		Orders: out,
		Count:  count,
		Total:  total.InexactFloat64(),
	}, nil
}

// SetStatus moves an order to any status of the closed set
func (s *OrderService) SetStatus(ctx context.Context, id uuid.UUID, raw string) (*OrderResponse, error) {
	status, err := trade.ParseOrderStatus(raw)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "order", "set_status",
		attribute.String("order.id", id.String()),
		attribute.String("order.status", string(status)),
	)
	defer span.End()

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		telemetry.RecordError(span, err)
		return nil, shared.NewPersistenceError(err)
	}

	order, err := s.orderRepo.FindByID(ctx, id, false)
	if err != nil {
		return nil, shared.NewPersistenceError(err)
	}
	resp := ToOrderResponse(order, false)
	return &resp, nil
}

// RemoveOrder deletes the items and then the order. When the items cannot
// be deleted the order is left in place.
func (s *OrderService) RemoveOrder(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "remove",
		attribute.String("order.id", id.String()),
	)
	defer span.End()

	if err := s.orderRepo.DeleteItems(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return shared.NewPersistenceError(err)
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return shared.NewPersistenceError(err)
	}
	return nil
}

// MetricProjections returns the minimal order rows for dashboards
func (s *OrderService) MetricProjections(ctx context.Context) ([]MetricProjectionResponse, error) {
	rows, err := s.orderRepo.FindMetricProjections(ctx)
	if err != nil {
		return nil, shared.NewPersistenceError(err)
	}

	out := make([]MetricProjectionResponse, len(rows))
	for i, r := range rows {
		out[i] = MetricProjectionResponse{
			ID:        r.ID,
			CreatedAt: r.CreatedAt,
			Total:     r.Total.InexactFloat64(),
			Status:    string(r.Status),
		}
	}
	return out, nil
}

// Dashboard summarizes every order against the calendar of loc
func (s *OrderService) Dashboard(ctx context.Context, loc *time.Location) (*DashboardResponse, error) {
	rows, err := s.orderRepo.FindMetricProjections(ctx)
	if err != nil {
		return nil, shared.NewPersistenceError(err)
	}
	if loc == nil {
		loc = time.UTC
	}

	resp := ToDashboardResponse(trade.Summarize(rows, s.now().In(loc)))
	return &resp, nil
}
