package trade

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/monaco/tienda/internal/domain/shared"
	"github.com/monaco/tienda/internal/domain/trade"
)

// orderCSVRow is one line of the order export. Orders without items still
// produce a single row with empty item columns.
type orderCSVRow struct {
	OrderID       string `csv:"orden_id"`
	Date          string `csv:"fecha"`
	Status        string `csv:"estado"`
	CustomerName  string `csv:"cliente"`
	Phone         string `csv:"telefono"`
	Address       string `csv:"direccion"`
	PaymentMethod string `csv:"metodo_pago"`
	Total         string `csv:"total"`
	ItemName      string `csv:"item_nombre"`
	ItemPrice     string `csv:"item_precio"`
	ItemQuantity  string `csv:"item_cantidad"`
	ItemSubtotal  string `csv:"item_subtotal"`
}

const exportDateLayout = "2006-01-02 15:04"

// ExportFilename names the export after the current date in loc
func (s *OrderService) ExportFilename(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return fmt.Sprintf("ordenes_%s.csv", s.now().In(loc).Format("2006-01-02"))
}

// ExportCSV writes the orders matched by q as CSV, dates rendered in loc
func (s *OrderService) ExportCSV(ctx context.Context, w io.Writer, q ListOrdersQuery, loc *time.Location) error {
	query := trade.OrderQuery{Text: q.Text}
	if q.Status != "" {
		status, err := trade.ParseOrderStatus(q.Status)
		if err != nil {
			return err
		}
		query.Status = status
	}
	if loc == nil {
		loc = time.UTC
	}

	orders, err := s.orderRepo.FindAll(ctx, true)
	if err != nil {
		return shared.NewPersistenceError(err)
	}

	rows := buildCSVRows(query.Filter(orders), loc)
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write order export: %w", err)
	}
	return nil
}

func buildCSVRows(orders []trade.Order, loc *time.Location) []*orderCSVRow {
	rows := make([]*orderCSVRow, 0, len(orders))
	for _, o := range orders {
		base := orderCSVRow{
			OrderID:       o.ID.String(),
			Date:          o.CreatedAt.In(loc).Format(exportDateLayout),
			Status:        string(o.Status),
			CustomerName:  o.CustomerName,
			Phone:         o.Phone,
			Address:       o.Address,
			PaymentMethod: string(o.PaymentMethod),
			Total:         o.Total.String(),
		}
		if len(o.Items) == 0 {
			row := base
			rows = append(rows, &row)
			continue
		}
		for _, it := range o.Items {
			row := base
			row.ItemName = it.ProductName
			row.ItemPrice = it.Price.String()
			row.ItemQuantity = strconv.Itoa(it.Quantity)
			row.ItemSubtotal = it.Subtotal().String()
			rows = append(rows, &row)
		}
	}
	return rows
}
