// Package renderer turns billing aggregates into human-facing views: markdown
// reports for the terminal, an hledger posting, and a LaTeX invoice.
//
// It builds plain view structs from the aggregates and renders them through
// text/template, so the views stay independent from the event log.
package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/etnz/billing"
)

// ClientView is the flattened, render-ready picture of one client.
type ClientView struct {
	// Key identifies the client in the history.
	Key string `json:"key"`
	// Name is the client's display name.
	Name string `json:"name"`
	// AddressLines is the postal address, one line per element.
	AddressLines []string `json:"addressLines"`
	// Services lists the client's services with their current rate.
	Services []ServiceView `json:"services"`
	// Taxes lists the tax rates in effect on the reference date.
	Taxes []string `json:"taxes,omitempty"`
	// BilledUntil is the end of the last invoiced period, empty when no
	// invoice was issued yet.
	BilledUntil string `json:"billedUntil,omitempty"`
	// Outstanding lists the numbers of unpaid invoices.
	Outstanding []int `json:"outstanding,omitempty"`
}

// ServiceView is one service line in a client view.
type ServiceView struct {
	Name string `json:"name"`
	// Rate is the rate in effect on the reference date, empty when the
	// service has no effective rate yet.
	Rate string `json:"rate,omitempty"`
}

// NewClientView builds a client view as of the given date. The date selects
// which rates and taxes are reported as current.
func NewClientView(c *billing.Client, on billing.Date) *ClientView {
	v := &ClientView{
		Key:          c.Key,
		Name:         c.Name,
		AddressLines: strings.Split(c.Address, "\n"),
		Services:     make([]ServiceView, 0),
	}

	for service := range c.Services() {
		line := ServiceView{Name: service.Name}
		if rate, ok := service.RateAsOf(on); ok {
			line.Rate = rate.String()
		}
		v.Services = append(v.Services, line)
	}

	for _, tax := range c.TaxesAsOf(on) {
		v.Taxes = append(v.Taxes, tax.String())
	}

	if until, ok := c.BilledUntil(); ok {
		v.BilledUntil = until.String()
	}
	v.Outstanding = c.UnpaidInvoices()

	return v
}

const clientMarkdownTemplate = `# {{ .Name }} ({{ .Key }})

{{ range .AddressLines }}{{ . }}
{{ end }}
{{- if .Services }}

## Services

| Service | Current Rate |
|:---|---:|
{{- range .Services }}
| {{ .Name }} | {{ if .Rate }}{{ .Rate }}{{ else }}no current rate{{ end }} |
{{- end }}
{{- end }}

{{- if .Taxes }}

## Taxes

{{ range .Taxes }}- {{ . }}
{{ end }}
{{- end }}

{{- if .BilledUntil }}

Billed until: **{{ .BilledUntil }}**
{{- end }}

{{- if .Outstanding }}

Outstanding invoices:{{ range .Outstanding }} #{{ . }}{{ end }}
{{- end }}
`

// RenderClient renders the client view to a markdown string.
func RenderClient(v *ClientView) string {
	tmpl := template.Must(template.New("client").Parse(clientMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, v); err != nil {
		return fmt.Sprintf("Error executing template: %v", err)
	}
	return b.String()
}

const clientListMarkdownTemplate = `# Clients

| Key | Name |
|:---|:---|
{{- range . }}
| {{ .Key }} | {{ .Name }} |
{{- end }}
`

// RenderClientList renders a one-line-per-client markdown table.
func RenderClientList(clients *billing.Clients) string {
	type row struct{ Key, Name string }
	var rows []row
	for client := range clients.All() {
		rows = append(rows, row{Key: client.Key, Name: client.Name})
	}
	tmpl := template.Must(template.New("clients").Parse(clientListMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, rows); err != nil {
		return fmt.Sprintf("Error executing template: %v", err)
	}
	return b.String()
}
