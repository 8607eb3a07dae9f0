package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/billing"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type rateCmd struct {
	client    string
	service   string
	amount    string
	currency  string
	per       string
	effective string
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "set the billing rate of a service" }
func (*rateCmd) Usage() string {
	return `bil rate -client <key> -service <name> -amount <amount> -currency <code> -per <unit> [-effective <date>]

  Sets the rate of a service, effective at a date (today by default). The
  service is created on first use. A backdated rate never changes an existing
  invoice: invoices keep the rate they were issued with.

Usage Examples:
$ bil rate -client acme -service consulting -amount 650 -currency EUR -per day -effective 2026-01-01
`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "client", "", "Key of the client.")
	f.StringVar(&c.service, "service", "", "Name of the service.")
	f.StringVar(&c.amount, "amount", "", "Rate amount, a decimal number.")
	f.StringVar(&c.currency, "currency", "", "ISO currency code of the rate.")
	f.StringVar(&c.per, "per", "day", "Billing unit: month, week, day or hour.")
	f.StringVar(&c.effective, "effective", "", "Date the rate takes effect. Defaults to today.")
}

func (c *rateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.client == "" || c.service == "" || c.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -client, -service and -amount are required.")
		return subcommands.ExitUsageError
	}

	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount %q: %v\n", c.amount, err)
		return subcommands.ExitUsageError
	}
	per, err := billing.ParseUnit(c.per)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	effective := billing.Today()
	if c.effective != "" {
		if effective, err = billing.ParseDate(c.effective); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
	}
	rate := billing.Rate{Amount: billing.M(amount, c.currency), Per: per}

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

	fmt.Printf("Setting billing rate for %s, for %s to: %s\n", c.service, client.Name, rate)
	fmt.Printf("Effective: %s\n", effective)

	event := billing.NewUpdateEvent(c.client, time.Now(), billing.SetServiceRate{
		Service:   c.service,
		Effective: effective,
		Rate:      rate,
	})
	return record(events, clients, event)
}
