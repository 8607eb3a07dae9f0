package billing

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Rate is a price per billing unit, like 1000 USD per month.
type Rate struct {
	Amount Money
	Per    Unit
}

// NewRate creates a new Rate.
func NewRate(amount Money, per Unit) Rate { return Rate{Amount: amount, Per: per} }

// String formats the rate like "$1,000.00/month".
func (r Rate) String() string { return fmt.Sprintf("%s/%s", r.Amount, r.Per) }

// MarshalJSON implements the json.Marshaler interface for Rate.
func (r Rate) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(r.Amount)
	w.Append("per", r.Per)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Rate.
// It handles the structure where amount and currency are separate fields.
func (r *Rate) UnmarshalJSON(data []byte) error {
	var temp struct {
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
		Per      Unit            `json:"per"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	r.Amount = M(temp.Amount, temp.Currency)
	r.Per = temp.Per
	return nil
}
