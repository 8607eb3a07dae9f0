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

type addressCmd struct {
	client  string
	address string
}

func (*addressCmd) Name() string     { return "address" }
func (*addressCmd) Synopsis() string { return "change the address of a client" }
func (*addressCmd) Usage() string {
	return `bil address -client <key> -address <address>

  Replaces the client's postal address. Use "\n" to separate lines.
`
}

func (c *addressCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "client", "", "Key of the client.")
	f.StringVar(&c.address, "address", "", "New postal address, lines separated by \\n.")
}

func (c *addressCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	address := strings.ReplaceAll(c.address, `\n`, "\n")
	fmt.Printf("Changing address for %s to:\n\n%s\n\n", client.Name, address)

	event := billing.NewUpdateEvent(c.client, time.Now(), billing.SetAddress{Address: address})
	return record(events, clients, event)
}

type nameCmd struct {
	client string
	name   string
}

func (*nameCmd) Name() string     { return "name" }
func (*nameCmd) Synopsis() string { return "change the display name of a client" }
func (*nameCmd) Usage() string {
	return `bil name -client <key> -name <name>

  Replaces the client's display name. The key is unaffected.
`
}

func (c *nameCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "client", "", "Key of the client.")
	f.StringVar(&c.name, "name", "", "New display name.")
}

func (c *nameCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.client == "" || c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -client and -name are required.")
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

	fmt.Printf("Changing client %s (%s) to: %s\n", client.Name, client.Key, c.name)

	event := billing.NewUpdateEvent(c.client, time.Now(), billing.SetName{Name: c.name})
	return record(events, clients, event)
}
