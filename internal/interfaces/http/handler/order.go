package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monaco/tienda/internal/application/trade"
	domain "github.com/monaco/tienda/internal/domain/trade"
	"github.com/monaco/tienda/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// OrderHandler handles order-related API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *trade.OrderService
	location     *time.Location
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler. loc dates the CSV export.
func NewOrderHandler(orderService *trade.OrderService, loc *time.Location, logger *zap.Logger) *OrderHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &OrderHandler{
		orderService: orderService,
		location:     loc,
		logger:       logger,
	}
}

// List handles GET /ordenes?items=true&estado=&q=
func (h *OrderHandler) List(c *gin.Context) {
	result, err := h.orderService.ListOrders(c.Request.Context(), listQuery(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Orders, result.Count, result.Total)
}

// Create handles POST /ordenes
func (h *OrderHandler) Create(c *gin.Context) {
	b := body(c)
	req := trade.CreateOrderRequest{
		CustomerName:  b.String("nombre_cliente"),
		Phone:         b.String("telefono"),
		Address:       b.String("direccion"),
		PaymentMethod: b.StringOr("metodo_pago", string(domain.DefaultPaymentMethod)),
		Items:         orderLines(b.Objects("items")),
	}

	result, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateStatus handles PUT /ordenes/:id with {estado}
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	order, err := h.orderService.SetStatus(c.Request.Context(), id, body(c).String("estado"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete handles DELETE /ordenes/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.orderService.RemoveOrder(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, nil)
}

// Export handles GET /ordenes/export.csv with the same filters as List
func (h *OrderHandler) Export(c *gin.Context) {
	q := listQuery(c)
	q.IncludeItems = true

	// Rows are rendered into memory first so a store failure still gets
	// a JSON error instead of a truncated file.
	var buf bytes.Buffer
	if err := h.orderService.ExportCSV(c.Request.Context(), &buf, q, h.location); err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("Orders exported",
		zap.String("status", q.Status),
		zap.Int("bytes", buf.Len()),
	)
	c.Header("Content-Disposition", `attachment; filename="`+h.orderService.ExportFilename(h.location)+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func listQuery(c *gin.Context) trade.ListOrdersQuery {
	return trade.ListOrdersQuery{
		IncludeItems: c.Query("items") == "true",
		Status:       c.Query("estado"),
		Text:         c.Query("q"),
	}
}

func orderLines(items []dto.Body) []trade.OrderLineRequest {
	lines := make([]trade.OrderLineRequest, len(items))
	for i, it := range items {
		lines[i] = trade.OrderLineRequest{
			ProductID: it.String("id"),
			Name:      it.String("nombre"),
			Price:     it.Decimal("precio"),
			Quantity:  it.Decimal("cantidad"),
		}
	}
	return lines
}
