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

type removeCmd struct {
	client string
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a client from the live set" }
func (*removeCmd) Usage() string {
	return `bil remove -client <key>

  Removes the client from the live set. The history keeps every past event,
  so the removal is itself recorded and adding the same key again starts a
  fresh client.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "client", "", "Key of the client to remove.")
}

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.client == "" {
		fmt.Fprintln(os.Stderr, "Error: -client is required.")
		return subcommands.ExitUsageError
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

	fmt.Printf("Removing client %s (%s)\n", client.Name, client.Key)
	if unpaid := client.UnpaidInvoices(); len(unpaid) > 0 {
		fmt.Printf("Warning: %d invoice(s) still unpaid.\n", len(unpaid))
	}

	event := billing.NewEvent(c.client, time.Now(), billing.Removed{})
	return record(events, clients, event)
}
