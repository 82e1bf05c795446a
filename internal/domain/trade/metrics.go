package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MetricProjection is the minimal order view needed for dashboards
type MetricProjection struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Total     decimal.Decimal
	Status    OrderStatus
}

// Dashboard aggregates orders for the admin overview
type Dashboard struct {
	OrdersToday int
	SalesToday  decimal.Decimal
	OrdersMonth int
	SalesMonth  decimal.Decimal
	Pending     int // pendiente, pagado and enviado
	Delivered   int
	Cancelled   int
}

// Summarize reduces a full order listing into dashboard figures.
// "Today" and "this month" follow the calendar of now's location.
func Summarize(orders []MetricProjection, now time.Time) Dashboard {
	loc := now.Location()
	year, month, day := now.Date()

	d := Dashboard{
		SalesToday: decimal.Zero,
		SalesMonth: decimal.Zero,
	}

	for _, o := range orders {
		oy, om, od := o.CreatedAt.In(loc).Date()

		if oy == year && om == month {
			d.OrdersMonth++
			d.SalesMonth = d.SalesMonth.Add(o.Total)

			if od == day {
				d.OrdersToday++
				d.SalesToday = d.SalesToday.Add(o.Total)
			}
		}

		switch o.Status {
		case OrderStatusDelivered:
			d.Delivered++
		case OrderStatusCancelled:
			d.Cancelled++
		default:
			d.Pending++
		}
	}

	return d
}

// ProjectOrders derives metric projections from loaded orders
func ProjectOrders(orders []Order) []MetricProjection {
	out := make([]MetricProjection, 0, len(orders))
	for _, o := range orders {
		out = append(out, MetricProjection{
			ID:        o.ID,
			CreatedAt: o.CreatedAt,
			Total:     o.Total,
			Status:    o.Status,
		})
	}
	return out
}
