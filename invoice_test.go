package billing

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func dailyRate(amount int, currency string) Rate {
	return NewRate(M(amount, currency), Day)
}

func TestNewInvoiceItem(t *testing.T) {
	// 5 working days at 100 EUR/day.
	rate := dailyRate(100, "EUR")
	item := NewInvoiceItem("consulting", rate, period("2021-04-05", "2021-04-09"))

	if !item.Quantity.Equal(decimal.NewFromInt(5)) {
		t.Errorf("Quantity = %s, want 5", item.Quantity)
	}
	if !item.Amount.Equal(M(500, "EUR")) {
		t.Errorf("Amount = %s, want 500 EUR", item.Amount)
	}
}

func TestNewHourlyInvoiceItem(t *testing.T) {
	rate := NewRate(M(80, "EUR"), Hour)
	hours := decimal.RequireFromString("12.5")
	item := NewHourlyInvoiceItem("support", rate, period("2021-04-01", "2021-04-30"), hours)

	if !item.Quantity.Equal(hours) {
		t.Errorf("Quantity = %s, want %s", item.Quantity, hours)
	}
	if !item.Amount.Equal(M(1000, "EUR")) {
		t.Errorf("Amount = %s, want 1000 EUR", item.Amount)
	}
}

func TestInvoiceTotal(t *testing.T) {
	// One month at 1000 with a 5% tax: subtotal 1000, tax 50, total 1050.
	rate := NewRate(M(1000, "EUR"), Month)
	item := NewInvoiceItem("consulting", rate, period("2021-04-01", "2021-04-30"))
	inv := NewInvoice(MustParse("2021-04-30"), 1, []InvoiceItem{item}, []TaxRate{NewTaxRate("GST", 5)})

	total, err := inv.Total()
	if err != nil {
		t.Fatal(err)
	}
	if !total.Subtotal.Equal(M(1000, "EUR")) {
		t.Errorf("Subtotal = %s, want 1000 EUR", total.Subtotal)
	}
	if len(total.Taxes) != 1 || !total.Taxes[0].Amount.Equal(M(50, "EUR")) {
		t.Errorf("Taxes = %v, want one 50 EUR line", total.Taxes)
	}
	if !total.Total.Equal(M(1050, "EUR")) {
		t.Errorf("Total = %s, want 1050 EUR", total.Total)
	}
}

func TestInvoiceTotalNoItems(t *testing.T) {
	inv := NewInvoice(MustParse("2021-04-30"), 1, nil, nil)
	if _, err := inv.Total(); err == nil {
		t.Error("Total() on an empty invoice should error")
	}
}

func TestInvoiceOverallPeriod(t *testing.T) {
	rate := dailyRate(100, "EUR")
	items := []InvoiceItem{
		NewInvoiceItem("a", rate, period("2021-04-10", "2021-04-20")),
		NewInvoiceItem("b", rate, period("2021-04-01", "2021-04-15")),
		NewInvoiceItem("c", rate, period("2021-04-12", "2021-04-30")),
	}
	inv := NewInvoice(MustParse("2021-04-30"), 1, items, nil)

	got := inv.OverallPeriod()
	want := period("2021-04-01", "2021-04-30")
	if got != want {
		t.Errorf("OverallPeriod() = %s, want %s", got, want)
	}
}

func TestInvoiceJSONRoundTrip(t *testing.T) {
	rate := dailyRate(650, "EUR")
	item := NewInvoiceItem("consulting", rate, period("2021-04-05", "2021-04-09"))
	paid := MustParse("2021-05-15")
	inv := NewInvoice(MustParse("2021-04-30"), 3, []InvoiceItem{item}, []TaxRate{NewTaxRate("VAT", 20)})
	inv.Paid = &paid

	data, err := json.Marshal(inv)
	if err != nil {
		t.Fatal(err)
	}
	var back Invoice
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}

	if back.Number != inv.Number || back.Date != inv.Date {
		t.Errorf("round trip header = (#%d, %s), want (#%d, %s)", back.Number, back.Date, inv.Number, inv.Date)
	}
	if back.Paid == nil || *back.Paid != paid {
		t.Errorf("round trip Paid = %v, want %s", back.Paid, paid)
	}
	if len(back.Items) != 1 || !back.Items[0].Amount.Equal(item.Amount) {
		t.Errorf("round trip items = %v, want %v", back.Items, inv.Items)
	}
	if len(back.TaxRates) != 1 || !back.TaxRates[0].Equal(inv.TaxRates[0]) {
		t.Errorf("round trip taxes = %v, want %v", back.TaxRates, inv.TaxRates)
	}

	wantTotal, _ := inv.Total()
	gotTotal, err := back.Total()
	if err != nil {
		t.Fatal(err)
	}
	if !gotTotal.Total.Equal(wantTotal.Total) {
		t.Errorf("round trip Total = %s, want %s", gotTotal.Total, wantTotal.Total)
	}
}

func TestTaxRate(t *testing.T) {
	tax := NewTaxRate("GST", 5)
	if !tax.Rate.Equal(decimal.RequireFromString("0.05")) {
		t.Errorf("Rate = %s, want 0.05", tax.Rate)
	}
	if got := tax.String(); got != "GST @ 5%" {
		t.Errorf("String() = %q, want %q", got, "GST @ 5%")
	}
}
