package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monaco/tienda/internal/application/trade"
)

// MetricsHandler serves order projections and the admin dashboard
type MetricsHandler struct {
	BaseHandler
	orderService *trade.OrderService
	location     *time.Location
}

// NewMetricsHandler creates a new MetricsHandler. loc is the calendar used
// when a request does not name one.
func NewMetricsHandler(orderService *trade.OrderService, loc *time.Location) *MetricsHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &MetricsHandler{
		orderService: orderService,
		location:     loc,
	}
}

// Projections handles GET /metricas. With ?resumen=true the summary is
// computed server-side in the ?tz= calendar instead.
func (h *MetricsHandler) Projections(c *gin.Context) {
	if c.Query("resumen") == "true" {
		h.Dashboard(c)
		return
	}

	rows, err := h.orderService.MetricProjections(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Dashboard handles GET /admin and GET /admin/resumen
func (h *MetricsHandler) Dashboard(c *gin.Context) {
	summary, err := h.orderService.Dashboard(c.Request.Context(), h.resolveLocation(c.Query("tz")))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// resolveLocation falls back to the store calendar for empty or unknown names
func (h *MetricsHandler) resolveLocation(name string) *time.Location {
	if name == "" {
		return h.location
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return h.location
	}
	return loc
}
