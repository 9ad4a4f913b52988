// Package cli implements the tripdiary command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"tripdiary/internal/client/api"
	"tripdiary/internal/client/localstore"
	"tripdiary/internal/client/services"
)

var ErrUsage = errors.New("usage")

// App wires the local store and the server client to the commands.
type App struct {
	store   *localstore.Store
	client  *api.Client
	sync    *services.SyncService
	capture *services.CaptureService
	out     io.Writer
	notify  services.Notifier
}

func NewApp(store *localstore.Store, client *api.Client, out io.Writer) *App {
	n := services.WriterNotifier{W: out}
	return &App{
		store:   store,
		client:  client,
		sync:    services.NewSyncService(store, client, n),
		capture: services.NewCaptureService(store, client, n),
		out:     out,
		notify:  n,
	}
}

type command struct {
	usage string
	help  string
	run   func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"add":         {"add -from <place> -to <place> -consent [flags]", "record a new trip and try to sync it", (*App).add},
	"list":        {"list", "show local trips, newest first", (*App).list},
	"show":        {"show <id>", "print one trip as JSON", (*App).show},
	"sync":        {"sync <id>", "push one trip to the server", (*App).syncOne},
	"sync-all":    {"sync-all", "push every unsynced trip in one request", (*App).syncAll},
	"delete":      {"delete <id>", "remove a trip from this device", (*App).delete},
	"clear":       {"clear", "remove every trip from this device", (*App).clear},
	"next-number": {"next-number", "print the next trip number", (*App).nextNumber},
	"ping":        {"ping", "check that the server answers", (*App).ping},
	"modes":       {"modes", "list transport modes", (*App).modes},
}

// Run executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" {
		a.Usage()
		return nil
	}
	cmd, ok := commands[args[0]]
	if !ok {
		a.Usage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	err := cmd.run(a, ctx, args[1:])
	if errors.Is(err, ErrUsage) {
		fmt.Fprintf(a.out, "usage: tripdiary %s\n", cmd.usage)
	}
	return err
}

func (a *App) Usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, "usage: tripdiary [-c config.json] [-s server] [-d data] [-t token] [-timeout d] <command>")
	fmt.Fprintln(a.out, "commands:")
	for _, name := range names {
		fmt.Fprintf(a.out, "  %-12s %s\n", name, commands[name].help)
	}
}

func oneID(args []string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", ErrUsage
	}
	return strings.TrimSpace(args[0]), nil
}
