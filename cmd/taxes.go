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

// taxList collects repeated -tax flags of the form "name:percent".
type taxList []billing.TaxRate

func (l *taxList) String() string {
	names := make([]string, 0, len(*l))
	for _, tax := range *l {
		names = append(names, tax.String())
	}
	return strings.Join(names, ", ")
}

func (l *taxList) Set(value string) error {
	name, percent, found := strings.Cut(value, ":")
	if !found || name == "" {
		return fmt.Errorf("tax %q must be of the form name:percent", value)
	}
	rate, err := decimal.NewFromString(percent)
	if err != nil {
		return fmt.Errorf("tax %q has an invalid percentage: %w", value, err)
	}
	*l = append(*l, billing.TaxRate{Name: name, Rate: rate.Shift(-2)})
	return nil
}

type taxesCmd struct {
	client    string
	taxes     taxList
	effective string
}

func (*taxesCmd) Name() string     { return "taxes" }
func (*taxesCmd) Synopsis() string { return "set the tax rates applied to a client" }
func (*taxesCmd) Usage() string {
	return `bil taxes -client <key> [-tax <name:percent>]... [-effective <date>]

  Replaces the set of tax rates applied to new invoices, effective at a date
  (today by default). With no -tax flag the client becomes untaxed. Existing
  invoices keep the taxes they were issued with.

Usage Examples:
$ bil taxes -client acme -tax VAT:5 -effective 2026-01-01
`
}

func (c *taxesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "client", "", "Key of the client.")
	f.Var(&c.taxes, "tax", "Tax to apply, as name:percent. Repeatable.")
	f.StringVar(&c.effective, "effective", "", "Date the taxes take effect. Defaults to today.")
}

func (c *taxesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.client == "" {
		fmt.Fprintln(os.Stderr, "Error: -client is required.")
		return subcommands.ExitUsageError
	}
	effective := billing.Today()
	if c.effective != "" {
		var err error
		if effective, err = billing.ParseDate(c.effective); err != nil {
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

	fmt.Printf("Setting taxes for %s to:\n", client.Name)
	for _, tax := range c.taxes {
		fmt.Println(tax)
	}
	if len(c.taxes) == 0 {
		fmt.Println("none")
	}
	fmt.Printf("Effective: %s\n", effective)

	event := billing.NewUpdateEvent(c.client, time.Now(), billing.SetTaxes{
		Effective: effective,
		Taxes:     c.taxes,
	})
	return record(events, clients, event)
}
