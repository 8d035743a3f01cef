package billing

import (
	"fmt"
	"html/template"
	"strings"
)

// Letterhead is the hospital identity block printed on invoices. Filled
// from the hospital settings.
type Letterhead struct {
	Name    string
	Address string
	Phone   string
	Email   string
	TaxID   string
}

var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice {{.Invoice.ID}}</title>
<style>
body { font-family: sans-serif; margin: 40px; color: #222; }
.letterhead { border-bottom: 2px solid #222; padding-bottom: 12px; margin-bottom: 24px; }
.letterhead h1 { margin: 0 0 4px 0; }
.meta { margin-bottom: 24px; }
table { width: 100%; border-collapse: collapse; }
th, td { text-align: left; padding: 8px; border-bottom: 1px solid #ccc; }
td.num, th.num { text-align: right; }
.totals { margin-top: 16px; width: 40%; margin-left: auto; }
.totals td { border: none; padding: 4px 8px; }
.totals .grand { font-weight: bold; border-top: 2px solid #222; }
.status { text-transform: uppercase; letter-spacing: 1px; }
</style>
</head>
<body>
<div class="letterhead">
<h1>{{.Hospital.Name}}</h1>
<div>{{.Hospital.Address}}</div>
<div>{{.Hospital.Phone}} · {{.Hospital.Email}}</div>
{{if .Hospital.TaxID}}<div>Tax ID: {{.Hospital.TaxID}}</div>{{end}}
</div>
<div class="meta">
<div><strong>Invoice:</strong> {{.Invoice.ID}}</div>
<div><strong>Patient:</strong> {{.Invoice.PatientName}}</div>
<div><strong>Date:</strong> {{.Invoice.Date.Format "2006-01-02"}}</div>
<div><strong>Due:</strong> {{.Invoice.DueDate.Format "2006-01-02"}}</div>
<div><strong>Status:</strong> <span class="status">{{.Invoice.Status}}</span></div>
</div>
<table>
<tr><th>Description</th><th class="num">Qty</th><th class="num">Unit</th><th class="num">Total</th></tr>
{{range .Invoice.Items}}
<tr><td>{{.Description}}</td><td class="num">{{.Quantity}}</td><td class="num">{{money .UnitPrice}}</td><td class="num">{{money .Total}}</td></tr>
{{end}}
</table>
<table class="totals">
<tr><td>Subtotal</td><td class="num">{{money .Invoice.Subtotal}}</td></tr>
<tr><td>VAT (19%)</td><td class="num">{{money .Invoice.Tax}}</td></tr>
<tr class="grand"><td>Total</td><td class="num">{{money .Invoice.Total}}</td></tr>
</table>
</body>
</html>`))

// RenderHTML produces the printable invoice document.
func RenderHTML(inv *Invoice, hospital Letterhead) (string, error) {
	var buf strings.Builder
	err := invoiceTmpl.Execute(&buf, struct {
		Invoice  *Invoice
		Hospital Letterhead
	}{inv, hospital})
	if err != nil {
		return "", fmt.Errorf("render invoice: %w", err)
	}
	return buf.String(), nil
}
