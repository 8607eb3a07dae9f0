package billing

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Client is the aggregate for one freelance client: identity, the services
// billed to them, their tax history, and the invoices issued so far.
//
// The key is the client's identity in the event log and never changes once
// the client is created. Everything else is derived from replayed events.
type Client struct {
	Key     string
	Name    string
	Address string

	services map[string]*Service
	invoices []*Invoice // invoice n is at index n-1; numbers are contiguous from 1
	taxes    History[[]TaxRate]
}

// NewClient creates a client with no services, taxes or invoices yet.
func NewClient(key, name, address string) *Client {
	return &Client{
		Key:      key,
		Name:     name,
		Address:  address,
		services: make(map[string]*Service),
	}
}

// Update is one validated change to a single client. It is a closed set:
// the fold switches exhaustively over the variants below.
type Update interface {
	update() // marker: only types in this package are updates
}

// SetAddress replaces the client's address.
type SetAddress struct{ Address string }

// SetName replaces the client's display name.
type SetName struct{ Name string }

// SetServiceRate records a rate for a service, effective at a date. The
// service is created on first use; a rate already set for the exact same
// date is overwritten.
type SetServiceRate struct {
	Service   string
	Effective Date
	Rate      Rate
}

// Invoiced records a generated invoice.
type Invoiced struct{ Invoice *Invoice }

// PaidInvoice marks an existing invoice as paid on a date.
type PaidInvoice struct {
	Number int
	On     Date
}

// SetTaxes replaces the set of applicable tax rates, effective at a date.
type SetTaxes struct {
	Effective Date
	Taxes     []TaxRate
}

func (SetAddress) update()     {}
func (SetName) update()        {}
func (SetServiceRate) update() {}
func (Invoiced) update()       {}
func (PaidInvoice) update()    {}
func (SetTaxes) update()       {}

// Apply validates the update against the client's current state and applies
// it. Invoices must arrive with the next contiguous number; a payment must
// reference an existing, unpaid invoice. Rate and tax updates are always
// accepted, backdated or not.
func (c *Client) Apply(u Update) error {
	switch v := u.(type) {
	case SetAddress:
		c.Address = v.Address
	case SetName:
		c.Name = v.Name
	case SetServiceRate:
		service, ok := c.services[v.Service]
		if !ok {
			service = NewService(v.Service)
			c.services[v.Service] = service
		}
		service.Rates.Append(v.Effective, v.Rate)
	case Invoiced:
		if v.Invoice.Number != c.NextInvoiceNumber() {
			return fmt.Errorf("invoice #%d after %d invoices: %w", v.Invoice.Number, len(c.invoices), ErrOutOfSequence)
		}
		c.invoices = append(c.invoices, v.Invoice)
	case PaidInvoice:
		invoice, err := c.Invoice(v.Number)
		if err != nil {
			return err
		}
		if invoice.Paid != nil {
			return fmt.Errorf("invoice #%d paid on %s: %w", v.Number, invoice.Paid, ErrAlreadyPaid)
		}
		on := v.On
		invoice.Paid = &on
	case SetTaxes:
		c.taxes.Append(v.Effective, v.Taxes)
	default:
		return fmt.Errorf("unsupported update type: %T", u)
	}
	return nil
}

// NextInvoiceNumber returns the number the next invoice must carry.
// Numbers are contiguous from 1, so it is always the invoice count plus one.
func (c *Client) NextInvoiceNumber() int { return len(c.invoices) + 1 }

// Invoice returns the invoice with the given number.
func (c *Client) Invoice(number int) (*Invoice, error) {
	if number < 1 || number > len(c.invoices) {
		return nil, fmt.Errorf("invoice #%d for client %q: %w", number, c.Key, ErrNotFound)
	}
	return c.invoices[number-1], nil
}

// Invoices returns an iterator over all invoices in issue order.
func (c *Client) Invoices() iter.Seq[*Invoice] {
	return func(yield func(*Invoice) bool) {
		for _, inv := range c.invoices {
			if !yield(inv) {
				return
			}
		}
	}
}

// UnpaidInvoices returns the numbers of invoices not yet marked paid.
func (c *Client) UnpaidInvoices() []int {
	var nums []int
	for _, inv := range c.invoices {
		if inv.Paid == nil {
			nums = append(nums, inv.Number)
		}
	}
	return nums
}

// BilledUntil returns the end of the latest invoice's overall period, the
// date up to which the client has been billed. ok is false when no invoice
// has been issued yet.
func (c *Client) BilledUntil() (until Date, ok bool) {
	if len(c.invoices) == 0 {
		return Date{}, false
	}
	return c.invoices[len(c.invoices)-1].OverallPeriod().Until, true
}

// Service returns the named service, or nil if the client has no such service.
func (c *Client) Service(name string) *Service { return c.services[name] }

// ServiceNames returns the sorted names of the client's services.
func (c *Client) ServiceNames() []string {
	names := slices.Collect(maps.Keys(c.services))
	slices.Sort(names)
	return names
}

// Services returns an iterator over the client's services in name order.
func (c *Client) Services() iter.Seq[*Service] {
	return func(yield func(*Service) bool) {
		for _, name := range c.ServiceNames() {
			if !yield(c.services[name]) {
				return
			}
		}
	}
}

// RateAsOf returns the rate in effect for a service on the given date.
func (c *Client) RateAsOf(service string, on Date) (Rate, error) {
	s, ok := c.services[service]
	if !ok {
		return Rate{}, fmt.Errorf("service %q for client %q: %w", service, c.Key, ErrNotFound)
	}
	rate, ok := s.RateAsOf(on)
	if !ok {
		return Rate{}, fmt.Errorf("service %q as of %s: %w", service, on, ErrNoRate)
	}
	return rate, nil
}

// TaxesAsOf returns the tax rates in effect on the given date. A client with
// no tax history is simply untaxed: the result is empty, not an error.
func (c *Client) TaxesAsOf(on Date) []TaxRate {
	taxes, _ := c.taxes.AsOf(on)
	return taxes
}

// TaxHistory returns an iterator over the client's tax history in
// chronological order.
func (c *Client) TaxHistory() iter.Seq2[Date, []TaxRate] { return c.taxes.Values() }

// String formats the client header: key, name and address.
func (c *Client) String() string {
	return fmt.Sprintf("%s:\n\n%s\n%s\n", c.Key, c.Name, c.Address)
}
