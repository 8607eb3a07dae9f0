package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/billing"
	"github.com/google/subcommands"
)

type paidCmd struct {
	client string
	number int
	on     string
}

func (*paidCmd) Name() string     { return "paid" }
func (*paidCmd) Synopsis() string { return "mark an invoice as paid" }
func (*paidCmd) Usage() string {
	return `bil paid -client <key> -n <number> [-on <date>]

  Marks an invoice as paid on a date (today by default). An invoice is paid
  at most once.

Usage Examples:
$ bil paid -client acme -n 1 -on 2026-02-15
`
}

func (c *paidCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "client", "", "Key of the client.")
	f.IntVar(&c.number, "n", 0, "Number of the invoice to mark paid.")
	f.StringVar(&c.on, "on", "", "Payment date. Defaults to today.")
}

func (c *paidCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.client == "" || c.number == 0 {
		fmt.Fprintln(os.Stderr, "Error: -client and -n are required.")
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
	if _, err := client.Invoice(c.number); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Marking invoice #%d as paid on %s\n", c.number, on)

	event := billing.NewUpdateEvent(c.client, time.Now(), billing.PaidInvoice{Number: c.number, On: on})
	return record(events, clients, event)
}
