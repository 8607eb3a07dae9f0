package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/etnz/billing"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// itemSpecs collects repeated -item flags. Parsing is deferred to Execute,
// where the client's rates are available.
type itemSpecs []string

func (s *itemSpecs) String() string { return strings.Join(*s, "; ") }
func (s *itemSpecs) Set(value string) error {
	*s = append(*s, value)
	return nil
}

type invoiceCmd struct {
	client  string
	service string
	from    string
	until   string
	hours   string
	on      string
	items   itemSpecs
}

func (*invoiceCmd) Name() string     { return "invoice" }
func (*invoiceCmd) Synopsis() string { return "issue the next invoice for a client" }
func (*invoiceCmd) Usage() string {
	return `bil invoice -client <key> -service <name> -from <date> -until <date> [-hours <n>] [-on <date>] [-item <spec>]...

  Issues the client's next invoice. A single item is given with -service,
  -from and -until; further items with repeated -item flags, each of the form
  "service,from,until" or "service,from,until,hours".

  Each item is billed at the rate in effect at the start of its period. The
  quantity is derived from the period and the rate's billing unit, except for
  hourly rates where -hours (or the item's fourth field) is required. Taxes
  are the ones in effect at the earliest item start.

  The invoice is issued -on the given date, today by default.

Usage Examples:
$ bil invoice -client acme -service consulting -from 2026-01-01 -until 2026-01-31
$ bil invoice -client acme -item "consulting,2026-01-01,2026-01-31" -item "support,2026-01-01,2026-01-31,12.5"
`
}

func (c *invoiceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "client", "", "Key of the client.")
	f.StringVar(&c.service, "service", "", "Service of the single invoice item.")
	f.StringVar(&c.from, "from", "", "Start of the billed period, inclusive.")
	f.StringVar(&c.until, "until", "", "End of the billed period, inclusive.")
	f.StringVar(&c.hours, "hours", "", "Hours worked, for services billed by the hour.")
	f.StringVar(&c.on, "on", "", "Issue date of the invoice. Defaults to today.")
	f.Var(&c.items, "item", "Additional item, as service,from,until[,hours]. Repeatable.")
}

func (c *invoiceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.client == "" {
		fmt.Fprintln(os.Stderr, "Error: -client is required.")
		return subcommands.ExitUsageError
	}

	// Normalize the single-item flags into one more spec.
	specs := c.items
	if c.service != "" {
		spec := fmt.Sprintf("%s,%s,%s", c.service, c.from, c.until)
		if c.hours != "" {
			spec += "," + c.hours
		}
		specs = append(itemSpecs{spec}, specs...)
	}
	if len(specs) == 0 {
		fmt.Fprintln(os.Stderr, "Error: an invoice needs at least one item.")
		return subcommands.ExitUsageError
	}

	on := billing.Today()
	if c.on != "" {
		var err error
		if on, err = billing.ParseDate(c.on); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
	}

	events, clients, err := loadClients()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	client, err := clients.Get(c.client)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	var items []billing.InvoiceItem
	var start billing.Date
	for _, spec := range specs {
		item, err := parseItem(client, spec)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		if start.IsZero() || item.Period.From.Before(start) {
			start = item.Period.From
		}
		items = append(items, item)
	}

	// Taxes are snapshotted at the earliest billed day.
	taxes := client.TaxesAsOf(start)
	invoice := billing.NewInvoice(on, client.NextInvoiceNumber(), items, taxes)

	fmt.Printf("Adding invoice:\n\n%s\n\n", invoice)

	event := billing.NewUpdateEvent(c.client, time.Now(), billing.Invoiced{Invoice: invoice})
	return record(events, clients, event)
}

// parseItem builds one invoice item from a "service,from,until[,hours]" spec,
// using the rate in effect at the start of the period.
func parseItem(client *billing.Client, spec string) (billing.InvoiceItem, error) {
	fields := strings.Split(spec, ",")
	if len(fields) != 3 && len(fields) != 4 {
		return billing.InvoiceItem{}, fmt.Errorf("item %q must be service,from,until[,hours]", spec)
	}
	service := strings.TrimSpace(fields[0])

	from, err := billing.ParseDate(strings.TrimSpace(fields[1]))
	if err != nil {
		return billing.InvoiceItem{}, fmt.Errorf("item %q: %w", spec, err)
	}
	until, err := billing.ParseDate(strings.TrimSpace(fields[2]))
	if err != nil {
		return billing.InvoiceItem{}, fmt.Errorf("item %q: %w", spec, err)
	}
	if until.Before(from) {
		return billing.InvoiceItem{}, fmt.Errorf("item %q: period ends before it starts", spec)
	}
	period := billing.Period{From: from, Until: until}

	rate, err := client.RateAsOf(service, from)
	if err != nil {
		return billing.InvoiceItem{}, err
	}

	if rate.Per == billing.Hour {
		if len(fields) != 4 {
			return billing.InvoiceItem{}, fmt.Errorf("item %q: service %s is billed by the hour, hours are required", spec, service)
		}
		hours, err := decimal.NewFromString(strings.TrimSpace(fields[3]))
		if err != nil {
			return billing.InvoiceItem{}, fmt.Errorf("item %q: %w", spec, err)
		}
		return billing.NewHourlyInvoiceItem(service, rate, period, hours), nil
	}
	if len(fields) == 4 {
		return billing.InvoiceItem{}, fmt.Errorf("item %q: hours are only valid for services billed by the hour", spec)
	}
	return billing.NewInvoiceItem(service, rate, period), nil
}
