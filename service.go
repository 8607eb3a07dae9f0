package billing

import "fmt"

// Service is a billable offering a client subscribes to. Its rate can change
// over time; the history keeps every rate with its effective date.
type Service struct {
	Name  string
	Rates History[Rate]
}

// NewService creates a service with no rate set yet.
func NewService(name string) *Service { return &Service{Name: name} }

// RateAsOf returns the rate in effect on the given date.
func (s *Service) RateAsOf(on Date) (Rate, bool) { return s.Rates.AsOf(on) }

// String formats the service with the rate in effect on the given date.
func (s *Service) Describe(on Date) string {
	rate, ok := s.Rates.AsOf(on)
	if !ok {
		return fmt.Sprintf("%s (no current rate set)", s.Name)
	}
	return fmt.Sprintf("%s %s", s.Name, rate)
}
