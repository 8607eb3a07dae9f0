package renderer

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/etnz/billing"
)

//go:embed invoice.tex
var templates embed.FS

// invoiceTexData is the data bound to the invoice.tex template.
type invoiceTexData struct {
	ClientName   string
	AddressLines []string
	Invoice      *InvoiceView
}

// texEscape escapes the characters LaTeX treats specially in the values that
// come from free-form input: names, addresses and formatted amounts.
func texEscape(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '%':
			b.WriteString(`\%`)
		case '$':
			b.WriteString(`\$`)
		case '&':
			b.WriteString(`\&`)
		case '#':
			b.WriteString(`\#`)
		case '_':
			b.WriteString(`\_`)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// RenderInvoiceTex renders an invoice as a standalone LaTeX document, ready
// to compile into the PDF sent to the client.
func RenderInvoiceTex(inv *billing.Invoice, c *billing.Client) (string, error) {
	view, err := NewInvoiceView(inv)
	if err != nil {
		return "", err
	}
	data := invoiceTexData{
		ClientName:   c.Name,
		AddressLines: strings.Split(c.Address, "\n"),
		Invoice:      view,
	}

	tmpl, err := template.New("invoice.tex").
		Funcs(template.FuncMap{"tex": texEscape}).
		ParseFS(templates, "invoice.tex")
	if err != nil {
		return "", fmt.Errorf("could not parse invoice template: %w", err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("could not render invoice template: %w", err)
	}
	return b.String(), nil
}
