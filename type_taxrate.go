package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxRate is a named tax expressed as a fraction: 0.05 for a 5% tax.
type TaxRate struct {
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

// NewTaxRate creates a TaxRate from a percentage expressed in hundredths,
// so NewTaxRate("GST", 5) is a 5% tax.
func NewTaxRate(name string, percentage int64) TaxRate {
	return TaxRate{Name: name, Rate: decimal.New(percentage, -2)}
}

// String formats the tax rate like "GST @ 5%".
func (t TaxRate) String() string {
	return fmt.Sprintf("%s @ %s%%", t.Name, t.Rate.Mul(decimal.NewFromInt(100)))
}

// Equal reports whether two tax rates have the same name and fraction.
func (t TaxRate) Equal(o TaxRate) bool { return t.Name == o.Name && t.Rate.Equal(o.Rate) }
