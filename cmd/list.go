package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/billing"
	"github.com/etnz/billing/renderer"
	"github.com/google/subcommands"
)

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list all clients in the history" }
func (*listCmd) Usage() string {
	return `bil list

  Lists all clients with their key and name.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, clients, err := loadClients()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderClientList(clients))
	return subcommands.ExitSuccess
}

type servicesCmd struct {
	client string
}

func (*servicesCmd) Name() string     { return "services" }
func (*servicesCmd) Synopsis() string { return "list the services of a client" }
func (*servicesCmd) Usage() string {
	return `bil services -client <key>

  Lists the client's services with the rate currently in effect.
`
}

func (c *servicesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "client", "", "Key of the client.")
}

func (c *servicesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, clients, err := loadClients()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	client, err := clients.Get(c.client)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	today := billing.Today()
	for service := range client.Services() {
		fmt.Println(service.Describe(today))
	}
	return subcommands.ExitSuccess
}

type invoicesCmd struct {
	client string
}

func (*invoicesCmd) Name() string     { return "invoices" }
func (*invoicesCmd) Synopsis() string { return "list the invoices of a client" }
func (*invoicesCmd) Usage() string {
	return `bil invoices -client <key>

  Lists the client's invoices with their date, total and payment status.
`
}

func (c *invoicesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "client", "", "Key of the client.")
}

func (c *invoicesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, clients, err := loadClients()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	client, err := clients.Get(c.client)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderInvoiceList(client))
	return subcommands.ExitSuccess
}
