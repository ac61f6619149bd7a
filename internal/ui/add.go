package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/peluqapp/peluq/internal/appointment"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date     string
		start    string
		service  string
		stylist  string
		duration int
	)

	cmd := &cobra.Command{
		Use:   "add [client name]",
		Short: "Book an appointment",
		Long: `Book an appointment for a client. The client is created if unknown.

Example:
  peluq add "Carmen Ruiz" --date=2026-09-01 --time=10:00 --service=Cut --stylist=Ana`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()

			svc, err := a.resolveService(ctx, service)
			if err != nil {
				return err
			}
			st, err := a.resolveStylist(ctx, stylist)
			if err != nil {
				return err
			}
			client, err := a.repo.FindOrCreateClient(ctx, args[0])
			if err != nil {
				return fmt.Errorf("resolving client: %w", err)
			}

			appt, err := appointment.New(client.ID, svc.ID, st.ID, date, start)
			if err != nil {
				return err
			}
			if duration > 0 {
				appt.DurationOverride = &duration
			}

			if err := a.repo.CreateAppointment(ctx, appt); err != nil {
				return fmt.Errorf("booking appointment: %w", err)
			}

			fmt.Printf("Booked #%d: %s with %s, %s %s-%s (%s)\n",
				appt.ID,
				svc.Name,
				st.Name,
				appt.Date.Format("2006-01-02"),
				appt.Start,
				appt.End(svc),
				appt.Ref,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&start, "time", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&service, "service", "", "Service name or id (required)")
	cmd.Flags().StringVar(&stylist, "stylist", "", "Stylist name or id (required)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration override in minutes (default: service duration)")

	_ = cmd.MarkFlagRequired("time")
	_ = cmd.MarkFlagRequired("service")
	_ = cmd.MarkFlagRequired("stylist")

	return cmd
}

// resolveService matches a service by name (case-insensitive) or id.
func (a *App) resolveService(ctx context.Context, ref string) (*appointment.Service, error) {
	services, err := a.repo.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}
	for _, s := range services {
		if strings.EqualFold(s.Name, ref) || fmt.Sprint(s.ID) == ref {
			return s, nil
		}
	}
	return nil, fmt.Errorf("unknown service %q (try: peluq services)", ref)
}

// resolveStylist matches a stylist by name (case-insensitive) or id.
func (a *App) resolveStylist(ctx context.Context, ref string) (*appointment.Stylist, error) {
	stylists, err := a.repo.ListStylists(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing stylists: %w", err)
	}
	for _, s := range stylists {
		if strings.EqualFold(s.Name, ref) || fmt.Sprint(s.ID) == ref {
			return s, nil
		}
	}
	return nil, fmt.Errorf("unknown stylist %q (try: peluq staff)", ref)
}
