package billing

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Unit is the billing unit a rate is quoted against.
type Unit int

const (
	Month Unit = iota
	Week
	Day
	Hour
)

func (u Unit) String() string {
	switch u {
	case Month:
		return "month"
	case Week:
		return "week"
	case Day:
		return "day"
	case Hour:
		return "hour"
	default:
		return "unit"
	}
}

// ParseUnit parses a string into a Unit.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "month", "monthly":
		return Month, nil
	case "week", "weekly":
		return Week, nil
	case "day", "daily":
		return Day, nil
	case "hour", "hourly":
		return Hour, nil
	default:
		return Month, fmt.Errorf("unknown billing unit %q", s)
	}
}

func (u Unit) MarshalJSON() ([]byte, error) { return json.Marshal(u.String()) }

func (u *Unit) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	parsed, err := ParseUnit(str)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
