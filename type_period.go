package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Period is an inclusive date range, From ≤ Until.
type Period struct {
	From  Date `json:"from"`
	Until Date `json:"until"`
}

// NewPeriod creates a new inclusive Period.
func NewPeriod(from, until Date) Period { return Period{From: from, Until: until} }

// String formats the period like "2021-04-01 — 2021-04-30".
func (p Period) String() string { return fmt.Sprintf("%s — %s", p.From, p.Until) }

// Contains reports whether date is included in the period (boundaries included).
func (p Period) Contains(date Date) bool { return !date.Before(p.From) && !date.After(p.Until) }

// WorkingDays counts the weekdays (Monday to Friday) in the period.
func (p Period) WorkingDays() int {
	count := 0
	for d := p.From; !d.After(p.Until); d = d.Add(1) {
		if d.IsWorkingDay() {
			count++
		}
	}
	return count
}

// Units converts the period into a fractional count of billing units.
//
// Month and Week prorate partial periods by the share of working days
// actually covered, assuming a 5-day work week: a range covering half the
// working days of its enclosing month bills half a month. Day counts working
// days directly. Hour always yields zero: hourly quantities are supplied by
// the caller, never derived from dates.
func (p Period) Units(unit Unit) decimal.Decimal {
	switch unit {
	case Month:
		return p.months()
	case Week:
		return p.weeks()
	case Day:
		return decimal.NewFromInt(int64(p.WorkingDays()))
	case Hour:
		return decimal.Zero
	default:
		return decimal.Zero
	}
}

// months prorates against the full calendar months enclosing the period.
// The whole-year part is counted exactly; the remainder is the worked share
// of the enclosing months' working days times the count of distinct months.
func (p Period) months() decimal.Decimal {
	full := NewPeriod(p.From.StartOfMonth(), p.Until.EndOfMonth())
	years := decimal.NewFromInt(int64(p.Until.Year()-p.From.Year()) * 12)
	months := decimal.NewFromInt(int64(p.Until.Month()) - int64(p.From.Month()) + 1)
	worked := decimal.NewFromInt(int64(p.WorkingDays()))
	available := decimal.NewFromInt(int64(full.WorkingDays()))
	return years.Add(worked.Div(available).Mul(months))
}

// weeks prorates against the full Monday-to-Sunday weeks enclosing the period.
func (p Period) weeks() decimal.Decimal {
	full := NewPeriod(p.From.StartOfWeek(), p.Until.EndOfWeek())
	distinct := 0
	for d := p.From; !d.After(p.Until); d = d.Add(7) {
		distinct++
	}
	worked := decimal.NewFromInt(int64(p.WorkingDays()))
	available := decimal.NewFromInt(int64(full.WorkingDays()))
	return decimal.NewFromInt(int64(distinct)).Mul(worked).Div(available)
}
