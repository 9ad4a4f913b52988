package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"tripdiary/internal/client/services"
	"tripdiary/internal/domain/models"
	"tripdiary/internal/utils"
)

func (a *App) list(ctx context.Context, _ []string) error {
	trips, err := a.store.List(ctx)
	if err != nil {
		return err
	}
	if len(trips) == 0 {
		fmt.Fprintln(a.out, "No trips yet.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tROUTE\tMODE\tDEPARTURE\tCOMPANIONS\tSTATUS\tID")
	for _, t := range trips {
		status := "pending"
		if t.Synced() {
			status = "synced"
		}
		fmt.Fprintf(w, "%d\t%s -> %s\t%s\t%s\t%d\t%s\t%s\n",
			t.TripNumber, t.Origin, t.Destination, t.Mode.Label(),
			utils.FormatDateTime(t.DepartureTime, time.Local), len(t.Companions), status, t.ID)
	}
	return w.Flush()
}

func (a *App) show(ctx context.Context, args []string) error {
	id, err := oneID(args)
	if err != nil {
		return err
	}
	trip, err := a.store.Get(ctx, id)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(trip)
}

func (a *App) syncOne(ctx context.Context, args []string) error {
	id, err := oneID(args)
	if err != nil {
		return err
	}
	_, err = a.sync.SyncTrip(ctx, id)
	return err
}

func (a *App) syncAll(ctx context.Context, _ []string) error {
	_, err := a.sync.SyncAll(ctx)
	return err
}

func (a *App) delete(ctx context.Context, args []string) error {
	id, err := oneID(args)
	if err != nil {
		return err
	}
	if _, err := a.store.Get(ctx, id); err != nil {
		return err
	}
	if err := a.store.Remove(ctx, id); err != nil {
		return err
	}
	a.notify.Notify(services.Notice{Level: services.LevelSuccess, Message: "Trip deleted"})
	return nil
}

func (a *App) clear(ctx context.Context, _ []string) error {
	if err := a.store.Clear(ctx); err != nil {
		return err
	}
	a.notify.Notify(services.Notice{Level: services.LevelSuccess, Message: "Cleared all trips"})
	return nil
}

func (a *App) nextNumber(ctx context.Context, _ []string) error {
	n, err := a.store.NextNumber(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, n)
	return nil
}

func (a *App) ping(ctx context.Context, _ []string) error {
	msg, err := a.client.Ping(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) modes(_ context.Context, _ []string) error {
	for _, m := range models.Modes() {
		fmt.Fprintf(a.out, "%-12s %s\n", m, m.Label())
	}
	return nil
}
