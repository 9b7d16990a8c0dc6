package app

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"
	"time"

	checkoutdomain "github.com/dwikikusuma/storefront-state/internal/checkout/domain"
	"github.com/dwikikusuma/storefront-state/internal/order/domain"
	"github.com/shopspring/decimal"
)

var csvHeader = []string{"id", "date", "status", "total", "itemCount"}

// ExportCSV writes one row per order. itemCount is the number of lines, not
// the number of units.
func (s *Service) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, o := range s.state.Orders() {
		row := []string{
			o.ID,
			o.CreatedAt.UTC().Format(time.RFC3339),
			string(o.Status),
			o.Total.StringFixed(2),
			strconv.Itoa(len(o.Items)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": func(d decimal.Decimal) string { return "$" + d.StringFixed(2) },
	"date":  func(t time.Time) string { return t.UTC().Format("January 2, 2006") },
	"upper": func(s domain.Status) string { return strings.ToUpper(string(s)) },
}).Parse(`FRESHMART INVOICE
================

Order ID: #{{.Order.ID}}
Order Date: {{date .Order.CreatedAt}}
Status: {{upper .Order.Status}}
{{- if .Order.PaymentMethod}}
Payment: {{.Order.PaymentMethod}}
{{- end}}

CUSTOMER INFORMATION
-------------------
{{with .Order.CustomerInfo -}}
Name: {{.FullName}}
Email: {{.Email}}
Phone: {{.Phone}}
Address: {{.Address}}
{{- else -}}
Customer information not available
{{- end}}

ITEMS ORDERED
-------------
{{range .Order.Items -}}
{{.Name}} x{{.Quantity}} - {{money .LineTotal}}
{{end}}
SUMMARY
-------
Subtotal: {{money .Quote.Subtotal}}
Delivery: {{money .Quote.DeliveryFee}}
Tax: {{money .Quote.Tax}}
Total: {{money .Quote.Total}}

Thank you for shopping with FreshMart!
`))

// Invoice renders a plain-text invoice for one order.
func (s *Service) Invoice(w io.Writer, orderID string) error {
	order, ok := s.Get(orderID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	return invoiceTmpl.Execute(w, struct {
		Order domain.Order
		Quote checkoutdomain.Quote
	}{order, checkoutdomain.Price(order.Items)})
}
