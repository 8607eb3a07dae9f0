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

type showCmd struct {
	client  string
	number  int
	posting bool
	latex   bool
	taxes   bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show a client, one of its invoices, or its tax history" }
func (*showCmd) Usage() string {
	return `bil show -client <key> [-n <number> [-posting | -latex]] [-taxes]

  Without further flags, shows the client: address, services, current taxes,
  the date billed until and the outstanding invoices.

  With -n, shows one invoice. Add -posting for an hledger journal entry, or
  -latex for a standalone LaTeX document on standard output.

  With -taxes, shows the client's tax history.

Usage Examples:
$ bil show -client acme
$ bil show -client acme -n 1 -posting
$ bil show -client acme -n 1 -latex > invoice-1.tex
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "client", "", "Key of the client.")
	f.IntVar(&c.number, "n", 0, "Invoice number to show.")
	f.BoolVar(&c.posting, "posting", false, "Render the invoice as an hledger posting.")
	f.BoolVar(&c.latex, "latex", false, "Render the invoice as a LaTeX document.")
	f.BoolVar(&c.taxes, "taxes", false, "Show the client's tax history.")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.client == "" {
		fmt.Fprintln(os.Stderr, "Error: -client is required.")
		return subcommands.ExitUsageError
	}
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

	switch {
	case c.number > 0:
		return c.showInvoice(client)
	case c.taxes:
		printMarkdown(renderer.RenderTaxHistory(client))
		return subcommands.ExitSuccess
	default:
		view := renderer.NewClientView(client, billing.Today())
		printMarkdown(renderer.RenderClient(view))
		return subcommands.ExitSuccess
	}
}

func (c *showCmd) showInvoice(client *billing.Client) subcommands.ExitStatus {
	invoice, err := client.Invoice(c.number)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	switch {
	case c.posting:
		posting, err := renderer.Posting(invoice, client)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Print(posting)
	case c.latex:
		tex, err := renderer.RenderInvoiceTex(invoice, client)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Print(tex)
	default:
		view, err := renderer.NewInvoiceView(invoice)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.RenderInvoice(view))
	}
	return subcommands.ExitSuccess
}
