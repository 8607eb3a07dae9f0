package billing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func period(from, until string) Period {
	return NewPeriod(MustParse(from), MustParse(until))
}

func TestWorkingDays(t *testing.T) {
	tests := []struct {
		from, until string
		want        int
	}{
		{"2021-04-05", "2021-04-09", 5}, // Monday to Friday
		{"2021-04-03", "2021-04-04", 0}, // weekend only
		{"2021-04-01", "2021-04-30", 22},
		{"2021-04-07", "2021-04-07", 1}, // single weekday
	}
	for _, tt := range tests {
		p := period(tt.from, tt.until)
		if got := p.WorkingDays(); got != tt.want {
			t.Errorf("WorkingDays(%s) = %d, want %d", p, got, tt.want)
		}
	}
}

func TestUnitsDay(t *testing.T) {
	p := period("2021-04-05", "2021-04-11") // Monday to Sunday
	if got := p.Units(Day); !got.Equal(decimal.NewFromInt(5)) {
		t.Errorf("Units(Day) = %s, want 5", got)
	}

	weekend := period("2021-04-03", "2021-04-04")
	if got := weekend.Units(Day); !got.IsZero() {
		t.Errorf("weekend Units(Day) = %s, want 0", got)
	}
}

func TestUnitsMonth(t *testing.T) {
	// A full calendar month is exactly one month.
	p := period("2021-04-01", "2021-04-30")
	if got := p.Units(Month); !got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("full month Units(Month) = %s, want 1", got)
	}

	// 7 of April's 22 working days.
	partial := period("2021-04-01", "2021-04-09")
	want := decimal.NewFromInt(7).Div(decimal.NewFromInt(22))
	if got := partial.Units(Month); !got.Equal(want) {
		t.Errorf("partial Units(Month) = %s, want %s", got, want)
	}

	// Whole years contribute exactly 12 months each.
	year := period("2020-04-01", "2021-03-31")
	if got := year.Units(Month); !got.Equal(decimal.NewFromInt(12)) {
		t.Errorf("one year Units(Month) = %s, want 12", got)
	}

	weekend := period("2021-04-03", "2021-04-04")
	if got := weekend.Units(Month); !got.IsZero() {
		t.Errorf("weekend Units(Month) = %s, want 0", got)
	}
}

func TestUnitsWeek(t *testing.T) {
	// One full Monday-to-Sunday week.
	p := period("2021-04-05", "2021-04-11")
	if got := p.Units(Week); !got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("full week Units(Week) = %s, want 1", got)
	}

	// Two full weeks.
	p = period("2021-04-05", "2021-04-18")
	if got := p.Units(Week); !got.Equal(decimal.NewFromInt(2)) {
		t.Errorf("two weeks Units(Week) = %s, want 2", got)
	}

	// Monday to Wednesday: 3 of the week's 5 working days.
	p = period("2021-04-05", "2021-04-07")
	want := decimal.NewFromInt(3).Div(decimal.NewFromInt(5))
	if got := p.Units(Week); !got.Equal(want) {
		t.Errorf("partial Units(Week) = %s, want %s", got, want)
	}

	weekend := period("2021-04-03", "2021-04-04")
	if got := weekend.Units(Week); !got.IsZero() {
		t.Errorf("weekend Units(Week) = %s, want 0", got)
	}
}

func TestUnitsHour(t *testing.T) {
	// Hourly quantities are supplied by the caller, never derived.
	p := period("2021-04-05", "2021-04-09")
	if got := p.Units(Hour); !got.IsZero() {
		t.Errorf("Units(Hour) = %s, want 0", got)
	}
}

func TestPeriodContains(t *testing.T) {
	p := period("2021-04-05", "2021-04-09")
	for day, want := range map[string]bool{
		"2021-04-04": false,
		"2021-04-05": true,
		"2021-04-07": true,
		"2021-04-09": true,
		"2021-04-10": false,
	} {
		if got := p.Contains(MustParse(day)); got != want {
			t.Errorf("Contains(%s) = %t, want %t", day, got, want)
		}
	}
}
