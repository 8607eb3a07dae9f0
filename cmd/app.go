// Package cmd implements the CLI application to manage a client history.
package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/billing"
	"github.com/google/subcommands"
)

// Commands lists all subcommands.
// A main package iterates over it to register them on a commander.
var Commands = []subcommands.Command{
	&listCmd{},
	&servicesCmd{},
	&invoicesCmd{},
	&addCmd{},
	&rateCmd{},
	&taxesCmd{},
	&addressCmd{},
	&nameCmd{},
	&showCmd{},
	&invoiceCmd{},
	&paidCmd{},
	&removeCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var historyFile = flag.String("file", "clients.history", "Path to the client history file")
var assumeYes = flag.Bool("y", false, "Assume yes, skip confirmation prompts")

// loadClients reads the history file and folds it into the live registry.
// A missing file yields an empty registry.
func loadClients() ([]billing.Event, *billing.Clients, error) {
	events, err := billing.LoadEvents(*historyFile)
	if err != nil {
		return nil, nil, err
	}
	clients, err := billing.FromEvents(events)
	if err != nil {
		return nil, nil, fmt.Errorf("history %q is inconsistent: %w", *historyFile, err)
	}
	return events, clients, nil
}

// record asks for confirmation, validates the event against the live
// registry, and appends it to the history file. Declining is a normal
// outcome: nothing is written.
//
// The event is applied to the fold before saving, so an invalid event
// (out of sequence, already paid, unknown client) fails here and leaves the
// file untouched.
func record(events []billing.Event, clients *billing.Clients, event billing.Event) subcommands.ExitStatus {
	if !confirm() {
		fmt.Println("Aborted, nothing written.")
		return subcommands.ExitSuccess
	}
	if err := clients.ApplyEvent(event); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := billing.SaveEvents(*historyFile, append(events, event)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// confirm asks the user to confirm on stdin. The -y flag bypasses the prompt.
func confirm() bool {
	if *assumeYes {
		return true
	}
	fmt.Print("Confirm? [y/N] ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// printMarkdown renders markdown for the terminal. On render failure the raw
// markdown is printed instead.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
