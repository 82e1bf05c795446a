package trade

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// OrderQuery filters an order listing by status and free text
type OrderQuery struct {
	Status OrderStatus // empty matches every status
	Text   string
}

// IsZero reports whether the query matches everything
func (q OrderQuery) IsZero() bool {
	return q.Status == "" && strings.TrimSpace(q.Text) == ""
}

// Filter returns the orders matched by the query, keeping their order
func (q OrderQuery) Filter(orders []Order) []Order {
	if q.IsZero() {
		return orders
	}
	needle := foldText(q.Text)

	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if q.Status != "" && o.Status != q.Status {
			continue
		}
		if needle != "" && !matchesText(o, needle) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// matchesText searches id, customer fields, payment method and item names
func matchesText(o Order, needle string) bool {
	fields := []string{
		o.ID.String(),
		o.CustomerName,
		o.Phone,
		o.Address,
		string(o.PaymentMethod),
	}
	for _, f := range fields {
		if strings.Contains(foldText(f), needle) {
			return true
		}
	}
	for _, it := range o.Items {
		if strings.Contains(foldText(it.ProductName), needle) {
			return true
		}
	}
	return false
}

// foldText case-folds and strips diacritics so "Bogotá" matches "bogota"
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), cases.Fold(), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

// Tally counts orders and sums their totals
func Tally(orders []Order) (int, decimal.Decimal) {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
	}
	return len(orders), total
}
