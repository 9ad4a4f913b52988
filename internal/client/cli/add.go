package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tripdiary/internal/client/services"
	"tripdiary/internal/domain/models"
	"tripdiary/internal/utils"
)

// companionList collects repeated -with name[:age[:relationship]] values.
type companionList []models.Companion

func (l *companionList) String() string {
	return fmt.Sprintf("%d companion(s)", len(*l))
}

func (l *companionList) Set(v string) error {
	c, err := parseCompanion(v)
	if err != nil {
		return err
	}
	*l = append(*l, c)
	return nil
}

func parseCompanion(v string) (models.Companion, error) {
	parts := strings.SplitN(v, ":", 3)
	var c models.Companion
	c.Name = utils.OptionalString(parts[0])
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		age, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || age < 0 {
			return c, fmt.Errorf("invalid companion age %q", parts[1])
		}
		c.Age = &age
	}
	if len(parts) > 2 {
		c.Relationship = utils.OptionalString(parts[2])
	}
	return c, nil
}

// optionalFloat is a float flag that stays nil unless set.
type optionalFloat struct{ v *float64 }

func (f *optionalFloat) String() string {
	if f.v == nil {
		return ""
	}
	return strconv.FormatFloat(*f.v, 'f', -1, 64)
}

func (f *optionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return err
	}
	f.v = &v
	return nil
}

func (a *App) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(a.out)

	var (
		in                             services.CaptureInput
		mode, at                       string
		companions                     companionList
		fromLat, fromLng, toLat, toLng optionalFloat
	)
	fs.IntVar(&in.TripNumber, "n", 0, "trip number (default: next number)")
	fs.StringVar(&in.Origin, "from", "", "origin")
	fs.StringVar(&in.Destination, "to", "", "destination")
	fs.StringVar(&mode, "mode", string(models.ModeWalk), "transport mode (see 'modes')")
	fs.StringVar(&at, "at", "", "departure time, RFC 3339 or YYYY-MM-DDTHH:MM local (default: now)")
	fs.BoolVar(&in.ConsentGiven, "consent", false, "the traveller agrees to share this trip")
	fs.StringVar(&in.Notes, "notes", "", "free text notes")
	fs.Var(&companions, "with", "companion as name[:age[:relationship]], repeatable")
	fs.Var(&fromLat, "from-lat", "origin latitude")
	fs.Var(&fromLng, "from-lng", "origin longitude")
	fs.Var(&toLat, "to-lat", "destination latitude")
	fs.Var(&toLng, "to-lng", "destination longitude")

	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	in.Mode = models.Mode(strings.ToLower(strings.TrimSpace(mode)))
	in.Companions = companions
	in.OriginLat, in.OriginLng = fromLat.v, fromLng.v
	in.DestinationLat, in.DestinationLng = toLat.v, toLng.v

	if strings.TrimSpace(at) == "" {
		in.DepartureTime = time.Now().UTC().Truncate(time.Minute)
	} else {
		t, err := utils.ParseDeparture(at, time.Local)
		if err != nil {
			return fmt.Errorf("invalid -at %q: %w", at, err)
		}
		in.DepartureTime = t
	}

	trip, _, err := a.capture.Submit(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "trip #%d %s\n", trip.TripNumber, trip.ID)
	return nil
}
