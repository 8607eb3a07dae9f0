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
)

type addCmd struct {
	key     string
	name    string
	address string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a new client to the history" }
func (*addCmd) Usage() string {
	return `bil add -key <key> -name <name> -address <address>

  Adds a new client. The key identifies the client in every other command and
  never changes. Use "\n" in the address to separate lines.

Usage Examples:
$ bil add -key acme -name "Acme Corp" -address "1 Main St\nSpringfield"
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.key, "key", "", "Unique key identifying the client.")
	f.StringVar(&c.name, "name", "", "Display name of the client.")
	f.StringVar(&c.address, "address", "", "Postal address, lines separated by \\n.")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.key == "" || c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -key and -name are required.")
		return subcommands.ExitUsageError
	}
	events, clients, err := loadClients()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if clients.Has(c.key) {
		fmt.Fprintf(os.Stderr, "Error: client %q already exists.\n", c.key)
		return subcommands.ExitFailure
	}

	address := strings.ReplaceAll(c.address, `\n`, "\n")
	fmt.Printf("Adding client %s:\n\n%s\n%s\n\n", c.key, c.name, address)

	event := billing.NewEvent(c.key, time.Now(), billing.Added{Name: c.name, Address: address})
	return record(events, clients, event)
}
