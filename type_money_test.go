package billing

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyMul(t *testing.T) {
	// 5% of 1000 is exactly 50, no rounding drift.
	m := M(1000, "EUR").Mul(decimal.RequireFromString("0.05"))
	if !m.Amount().Equal(decimal.NewFromInt(50)) {
		t.Errorf("1000 * 0.05 = %s, want 50", m.Amount())
	}
}

func TestMoneyMulRoundsBank(t *testing.T) {
	// Half-to-even: 1.005 rounds down to 1.00, 1.015 rounds up to 1.02.
	tests := []struct {
		q    string
		want string
	}{
		{"0.1005", "1"},
		{"0.1015", "1.02"},
	}
	for _, tt := range tests {
		got := M(10, "EUR").Mul(decimal.RequireFromString(tt.q))
		if !got.Amount().Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("10 * %s = %s, want %s", tt.q, got.Amount(), tt.want)
		}
	}
}

func TestMoneyAdd(t *testing.T) {
	got := M(10, "EUR").Add(M(5, "EUR"))
	if !got.Equal(M(15, "EUR")) {
		t.Errorf("10 EUR + 5 EUR = %s, want 15 EUR", got)
	}
}

func TestMoneyAddWeakCurrency(t *testing.T) {
	// The empty currency adopts the other side.
	got := M(0, "").Add(M(5, "USD"))
	if got.Currency() != "USD" {
		t.Errorf("currency = %q, want USD", got.Currency())
	}
	got = M(5, "USD").Add(M(1, ""))
	if got.Currency() != "USD" {
		t.Errorf("currency = %q, want USD", got.Currency())
	}
}

func TestMoneyAddMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("adding EUR and USD should panic")
		}
	}()
	M(1, "EUR").Add(M(1, "USD"))
}

func TestMoneyString(t *testing.T) {
	if got := M(1000, "USD").String(); got != "$1,000.00" {
		t.Errorf("String() = %q, want %q", got, "$1,000.00")
	}
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(M(1000, "EUR"))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"amount":1000,"currency":"EUR"}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}

	// The weak currency is omitted entirely.
	data, err = json.Marshal(M(50, ""))
	if err != nil {
		t.Fatal(err)
	}
	want = `{"amount":50}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}
}
