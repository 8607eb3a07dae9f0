package billing

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// InvoiceItem is one line of an invoice: a service billed at a rate snapshot
// over a period. It is immutable once created; quantity and amount are fixed
// at creation time so the invoice never changes when rates do.
type InvoiceItem struct {
	Service  string
	Rate     Rate
	Period   Period
	Quantity decimal.Decimal
	Amount   Money
}

// NewInvoiceItem creates an item whose quantity is derived from the period
// and the rate's billing unit.
func NewInvoiceItem(service string, rate Rate, period Period) InvoiceItem {
	quantity := period.Units(rate.Per)
	return InvoiceItem{
		Service:  service,
		Rate:     rate,
		Period:   period,
		Quantity: quantity,
		Amount:   rate.Amount.Mul(quantity),
	}
}

// NewHourlyInvoiceItem creates an item with a caller-supplied quantity of
// hours. Hourly quantities cannot be derived from the period.
func NewHourlyInvoiceItem(service string, rate Rate, period Period, hours decimal.Decimal) InvoiceItem {
	return InvoiceItem{
		Service:  service,
		Rate:     rate,
		Period:   period,
		Quantity: hours,
		Amount:   rate.Amount.Mul(hours),
	}
}

// String formats the item like "consulting 2021-04-01 — 2021-04-30, 1.00 @ $1,000.00/month: $1,000.00".
func (i InvoiceItem) String() string {
	return fmt.Sprintf("%s %s, %s @ %s: %s", i.Service, i.Period, i.Quantity.StringFixed(2), i.Rate, i.Amount)
}

// MarshalJSON implements the json.Marshaler interface for InvoiceItem.
func (i InvoiceItem) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("service", i.Service)
	w.Append("rate", i.Rate)
	w.Append("period", i.Period)
	w.Append("quantity", i.Quantity)
	w.Append("amount", i.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for InvoiceItem.
func (i *InvoiceItem) UnmarshalJSON(data []byte) error {
	var temp struct {
		Service  string          `json:"service"`
		Rate     Rate            `json:"rate"`
		Period   Period          `json:"period"`
		Quantity decimal.Decimal `json:"quantity"`
		Amount   struct {
			Amount   decimal.Decimal `json:"amount"`
			Currency string          `json:"currency"`
		} `json:"amount"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	i.Service = temp.Service
	i.Rate = temp.Rate
	i.Period = temp.Period
	i.Quantity = temp.Quantity
	i.Amount = M(temp.Amount.Amount, temp.Amount.Currency)
	return nil
}

// TaxAmount is one applied tax line of an invoice total.
type TaxAmount struct {
	Tax    TaxRate
	Amount Money
}

// InvoiceTotal is the computed breakdown of an invoice.
type InvoiceTotal struct {
	Subtotal Money
	Taxes    []TaxAmount
	Total    Money
}

// String formats the breakdown over multiple lines.
func (t InvoiceTotal) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subtotal: %s\n", t.Subtotal)
	for _, tax := range t.Taxes {
		fmt.Fprintf(&b, "%s: %s\n", tax.Tax, tax.Amount)
	}
	fmt.Fprintf(&b, "\nTotal: %s", t.Total)
	return b.String()
}

// Invoice records what was billed to a client on a given date, with the tax
// rates in effect at that time. The paid date is set at most once.
type Invoice struct {
	Date     Date
	Number   int
	Items    []InvoiceItem
	TaxRates []TaxRate
	Paid     *Date
}

// NewInvoice creates an invoice issued on the given date. The number is
// caller-supplied and validated by the client aggregate when the invoice is
// recorded.
func NewInvoice(on Date, number int, items []InvoiceItem, taxRates []TaxRate) *Invoice {
	return &Invoice{Date: on, Number: number, Items: items, TaxRates: taxRates}
}

// IsPaid reports whether the invoice has been marked paid.
func (inv *Invoice) IsPaid() bool { return inv.Paid != nil }

// Total computes the invoice breakdown: subtotal, one amount per tax rate,
// and the grand total. It is a pure function of the stored items and tax
// snapshot. An invoice must have at least one item.
func (inv *Invoice) Total() (InvoiceTotal, error) {
	if len(inv.Items) == 0 {
		return InvoiceTotal{}, fmt.Errorf("invoice #%d has no items", inv.Number)
	}
	subtotal := inv.Items[0].Amount
	for _, item := range inv.Items[1:] {
		subtotal = subtotal.Add(item.Amount)
	}
	taxes := make([]TaxAmount, 0, len(inv.TaxRates))
	total := subtotal
	for _, tr := range inv.TaxRates {
		amount := subtotal.Mul(tr.Rate)
		taxes = append(taxes, TaxAmount{Tax: tr, Amount: amount})
		total = total.Add(amount)
	}
	return InvoiceTotal{Subtotal: subtotal, Taxes: taxes, Total: total}, nil
}

// OverallPeriod returns the period spanning the earliest item start and the
// latest item end. It is the invoice's nominal billing period, used for
// display and for tax as-of lookups.
func (inv *Invoice) OverallPeriod() Period {
	if len(inv.Items) == 0 {
		return Period{}
	}
	overall := inv.Items[0].Period
	for _, item := range inv.Items[1:] {
		if item.Period.From.Before(overall.From) {
			overall.From = item.Period.From
		}
		if item.Period.Until.After(overall.Until) {
			overall.Until = item.Period.Until
		}
	}
	return overall
}

// String formats the invoice with its items and total breakdown.
func (inv *Invoice) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Invoice: #%d\nDate: %s\n\n", inv.Number, inv.Date)
	for _, item := range inv.Items {
		fmt.Fprintf(&b, "%s\n", item)
	}
	if total, err := inv.Total(); err == nil {
		fmt.Fprintf(&b, "\n%s", total)
	}
	return b.String()
}

// MarshalJSON implements the json.Marshaler interface for Invoice.
func (inv Invoice) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", inv.Date)
	w.Append("number", inv.Number)
	w.Append("items", inv.Items)
	w.Append("taxRates", inv.TaxRates)
	if inv.Paid != nil {
		w.Append("paid", *inv.Paid)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Invoice.
func (inv *Invoice) UnmarshalJSON(data []byte) error {
	var temp struct {
		Date     Date          `json:"date"`
		Number   int           `json:"number"`
		Items    []InvoiceItem `json:"items"`
		TaxRates []TaxRate     `json:"taxRates"`
		Paid     *Date         `json:"paid"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	inv.Date = temp.Date
	inv.Number = temp.Number
	inv.Items = temp.Items
	inv.TaxRates = temp.TaxRates
	inv.Paid = temp.Paid
	return nil
}
