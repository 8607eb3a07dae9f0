package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/etnz/billing"
)

// InvoiceView is the flattened, render-ready picture of one invoice.
type InvoiceView struct {
	Number int    `json:"number"`
	Date   string `json:"date"`
	// Period spans the earliest item start and the latest item end.
	Period string            `json:"period"`
	Items  []InvoiceItemView `json:"items"`
	// Subtotal is the sum of all item amounts, before taxes.
	Subtotal string        `json:"subtotal"`
	Taxes    []TaxLineView `json:"taxes,omitempty"`
	Total    string        `json:"total"`
	// Paid is the payment date, empty while the invoice is outstanding.
	Paid string `json:"paid,omitempty"`
}

// InvoiceItemView is one billed line of an invoice view.
type InvoiceItemView struct {
	Service  string `json:"service"`
	Period   string `json:"period"`
	Rate     string `json:"rate"`
	Quantity string `json:"quantity"`
	Amount   string `json:"amount"`
}

// TaxLineView is one applied tax of an invoice view.
type TaxLineView struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// NewInvoiceView builds an invoice view with its computed total breakdown.
func NewInvoiceView(inv *billing.Invoice) (*InvoiceView, error) {
	total, err := inv.Total()
	if err != nil {
		return nil, err
	}

	v := &InvoiceView{
		Number:   inv.Number,
		Date:     inv.Date.String(),
		Period:   inv.OverallPeriod().String(),
		Items:    make([]InvoiceItemView, 0, len(inv.Items)),
		Subtotal: total.Subtotal.String(),
		Total:    total.Total.String(),
	}
	for _, item := range inv.Items {
		v.Items = append(v.Items, InvoiceItemView{
			Service:  item.Service,
			Period:   item.Period.String(),
			Rate:     item.Rate.String(),
			Quantity: item.Quantity.StringFixed(2),
			Amount:   item.Amount.String(),
		})
	}
	for _, tax := range total.Taxes {
		v.Taxes = append(v.Taxes, TaxLineView{Name: tax.Tax.String(), Amount: tax.Amount.String()})
	}
	if inv.Paid != nil {
		v.Paid = inv.Paid.String()
	}
	return v, nil
}

const invoiceMarkdownTemplate = `# Invoice #{{ .Number }}

Date: **{{ .Date }}**
Period: {{ .Period }}
{{- if .Paid }}
Paid: **{{ .Paid }}**
{{- end }}

| Service | Period | Rate | Quantity | Amount |
|:---|:---|---:|---:|---:|
{{- range .Items }}
| {{ .Service }} | {{ .Period }} | {{ .Rate }} | {{ .Quantity }} | {{ .Amount }} |
{{- end }}

| | |
|:---|---:|
| Subtotal | {{ .Subtotal }} |
{{- range .Taxes }}
| {{ .Name }} | {{ .Amount }} |
{{- end }}
| **Total** | **{{ .Total }}** |
`

// RenderInvoice renders the invoice view to a markdown string.
func RenderInvoice(v *InvoiceView) string {
	tmpl := template.Must(template.New("invoice").Parse(invoiceMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, v); err != nil {
		return fmt.Sprintf("Error executing template: %v", err)
	}
	return b.String()
}

// InvoiceLine is one row of the invoice list view.
type InvoiceLine struct {
	Number int    `json:"number"`
	Date   string `json:"date"`
	Total  string `json:"total"`
	Status string `json:"status"`
}

const invoiceListMarkdownTemplate = `# Invoices

| # | Date | Total | Status |
|---:|:---|---:|:---|
{{- range . }}
| {{ .Number }} | {{ .Date }} | {{ .Total }} | {{ .Status }} |
{{- end }}
`

// RenderInvoiceList renders all of a client's invoices as a markdown table,
// in issue order.
func RenderInvoiceList(c *billing.Client) string {
	var rows []InvoiceLine
	for inv := range c.Invoices() {
		row := InvoiceLine{Number: inv.Number, Date: inv.Date.String(), Status: "Unpaid"}
		if inv.Paid != nil {
			row.Status = fmt.Sprintf("Paid %s", inv.Paid)
		}
		if total, err := inv.Total(); err == nil {
			row.Total = total.Total.String()
		}
		rows = append(rows, row)
	}
	tmpl := template.Must(template.New("invoices").Parse(invoiceListMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, rows); err != nil {
		return fmt.Sprintf("Error executing template: %v", err)
	}
	return b.String()
}

const taxHistoryMarkdownTemplate = `# Tax History

| Effective | Taxes |
|:---|:---|
{{- range . }}
| {{ .Effective }} | {{ .Taxes }} |
{{- end }}
`

// RenderTaxHistory renders the client's tax history as a markdown table, in
// chronological order. An empty tax set renders as "none".
func RenderTaxHistory(c *billing.Client) string {
	type row struct{ Effective, Taxes string }
	var rows []row
	for on, taxes := range c.TaxHistory() {
		names := make([]string, 0, len(taxes))
		for _, tax := range taxes {
			names = append(names, tax.String())
		}
		line := strings.Join(names, ", ")
		if line == "" {
			line = "none"
		}
		rows = append(rows, row{Effective: on.String(), Taxes: line})
	}
	tmpl := template.Must(template.New("taxes").Parse(taxHistoryMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, rows); err != nil {
		return fmt.Sprintf("Error executing template: %v", err)
	}
	return b.String()
}
