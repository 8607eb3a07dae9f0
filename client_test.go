package billing

import (
	"errors"
	"testing"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	c := NewClient("acme", "Acme Corp", "1 Main St\nSpringfield")
	if err := c.Apply(SetServiceRate{
		Service:   "consulting",
		Effective: MustParse("2021-01-01"),
		Rate:      dailyRate(650, "EUR"),
	}); err != nil {
		t.Fatal(err)
	}
	return c
}

func invoiceFor(t *testing.T, c *Client, from, until string) *Invoice {
	t.Helper()
	rate, err := c.RateAsOf("consulting", MustParse(from))
	if err != nil {
		t.Fatal(err)
	}
	item := NewInvoiceItem("consulting", rate, period(from, until))
	return NewInvoice(MustParse(until), c.NextInvoiceNumber(), []InvoiceItem{item}, c.TaxesAsOf(MustParse(from)))
}

func TestClientRateAsOf(t *testing.T) {
	c := testClient(t)
	c.Apply(SetServiceRate{Service: "consulting", Effective: MustParse("2021-06-01"), Rate: dailyRate(700, "EUR")})

	tests := []struct {
		on   string
		want int
	}{
		{"2021-01-01", 650},
		{"2021-05-31", 650},
		{"2021-06-01", 700},
		{"2022-01-01", 700},
	}
	for _, tt := range tests {
		rate, err := c.RateAsOf("consulting", MustParse(tt.on))
		if err != nil {
			t.Fatalf("RateAsOf(%s): %v", tt.on, err)
		}
		if !rate.Amount.Equal(M(tt.want, "EUR")) {
			t.Errorf("RateAsOf(%s) = %s, want %d EUR", tt.on, rate.Amount, tt.want)
		}
	}

	if _, err := c.RateAsOf("consulting", MustParse("2020-12-31")); !errors.Is(err, ErrNoRate) {
		t.Errorf("RateAsOf before any rate: err = %v, want ErrNoRate", err)
	}
	if _, err := c.RateAsOf("unknown", MustParse("2021-06-01")); !errors.Is(err, ErrNotFound) {
		t.Errorf("RateAsOf on unknown service: err = %v, want ErrNotFound", err)
	}
}

func TestClientInvoiceSequence(t *testing.T) {
	c := testClient(t)
	if got := c.NextInvoiceNumber(); got != 1 {
		t.Fatalf("NextInvoiceNumber() = %d, want 1", got)
	}

	inv := invoiceFor(t, c, "2021-04-05", "2021-04-09")
	if err := c.Apply(Invoiced{Invoice: inv}); err != nil {
		t.Fatal(err)
	}
	if got := c.NextInvoiceNumber(); got != 2 {
		t.Errorf("NextInvoiceNumber() = %d, want 2", got)
	}

	// Recording invoice #2 as #5 is out of sequence.
	bad := invoiceFor(t, c, "2021-04-12", "2021-04-16")
	bad.Number = 5
	if err := c.Apply(Invoiced{Invoice: bad}); !errors.Is(err, ErrOutOfSequence) {
		t.Errorf("out of sequence: err = %v, want ErrOutOfSequence", err)
	}
	if got := c.NextInvoiceNumber(); got != 2 {
		t.Errorf("rejected invoice changed NextInvoiceNumber() to %d", got)
	}
}

func TestClientPaidOnce(t *testing.T) {
	c := testClient(t)
	c.Apply(Invoiced{Invoice: invoiceFor(t, c, "2021-04-05", "2021-04-09")})

	if err := c.Apply(PaidInvoice{Number: 1, On: MustParse("2021-05-01")}); err != nil {
		t.Fatal(err)
	}
	inv, _ := c.Invoice(1)
	if !inv.IsPaid() || *inv.Paid != MustParse("2021-05-01") {
		t.Fatalf("invoice not marked paid: %v", inv.Paid)
	}

	if err := c.Apply(PaidInvoice{Number: 1, On: MustParse("2021-05-02")}); !errors.Is(err, ErrAlreadyPaid) {
		t.Errorf("second payment: err = %v, want ErrAlreadyPaid", err)
	}
	if *inv.Paid != MustParse("2021-05-01") {
		t.Errorf("second payment changed the paid date to %s", inv.Paid)
	}

	if err := c.Apply(PaidInvoice{Number: 7, On: MustParse("2021-05-01")}); !errors.Is(err, ErrNotFound) {
		t.Errorf("paying a missing invoice: err = %v, want ErrNotFound", err)
	}
}

func TestClientBilledUntil(t *testing.T) {
	c := testClient(t)
	if _, ok := c.BilledUntil(); ok {
		t.Error("BilledUntil() on a fresh client should not be set")
	}
	c.Apply(Invoiced{Invoice: invoiceFor(t, c, "2021-04-01", "2021-04-30")})
	until, ok := c.BilledUntil()
	if !ok || until != MustParse("2021-04-30") {
		t.Errorf("BilledUntil() = (%s, %t), want (2021-04-30, true)", until, ok)
	}
}

func TestClientUnpaidInvoices(t *testing.T) {
	c := testClient(t)
	c.Apply(Invoiced{Invoice: invoiceFor(t, c, "2021-04-01", "2021-04-30")})
	c.Apply(Invoiced{Invoice: invoiceFor(t, c, "2021-05-01", "2021-05-31")})
	c.Apply(PaidInvoice{Number: 1, On: MustParse("2021-06-01")})

	got := c.UnpaidInvoices()
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("UnpaidInvoices() = %v, want [2]", got)
	}
}

func TestClientTaxesSnapshot(t *testing.T) {
	c := testClient(t)
	c.Apply(SetTaxes{Effective: MustParse("2021-01-01"), Taxes: []TaxRate{NewTaxRate("GST", 5)}})

	// The invoice snapshots the taxes in effect at its period start.
	inv := invoiceFor(t, c, "2021-04-01", "2021-04-30")
	c.Apply(Invoiced{Invoice: inv})

	// A later tax change does not alter the recorded invoice.
	c.Apply(SetTaxes{Effective: MustParse("2021-05-01"), Taxes: []TaxRate{NewTaxRate("GST", 10)}})

	recorded, _ := c.Invoice(1)
	if len(recorded.TaxRates) != 1 || !recorded.TaxRates[0].Equal(NewTaxRate("GST", 5)) {
		t.Errorf("recorded taxes = %v, want the 5%% snapshot", recorded.TaxRates)
	}

	// And the live lookup reflects the new rate.
	now := c.TaxesAsOf(MustParse("2021-05-01"))
	if len(now) != 1 || !now[0].Equal(NewTaxRate("GST", 10)) {
		t.Errorf("TaxesAsOf(2021-05-01) = %v, want GST @ 10%%", now)
	}
}

func TestClientNoTaxHistory(t *testing.T) {
	c := testClient(t)
	if taxes := c.TaxesAsOf(MustParse("2021-04-01")); len(taxes) != 0 {
		t.Errorf("TaxesAsOf with no history = %v, want empty", taxes)
	}
}

func TestClientIdentityUpdates(t *testing.T) {
	c := testClient(t)
	c.Apply(SetName{Name: "Acme Inc"})
	c.Apply(SetAddress{Address: "2 Side St"})
	if c.Name != "Acme Inc" || c.Address != "2 Side St" {
		t.Errorf("after updates: name %q address %q", c.Name, c.Address)
	}
	if c.Key != "acme" {
		t.Errorf("key changed to %q", c.Key)
	}
}
