package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/peluqapp/peluq/internal/appointment"
	"github.com/peluqapp/peluq/internal/dateutil"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		copySheet bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List appointments in a date range",
		Long: `List appointments scheduled within a date range.

If no dates are specified, lists today's bookings.
If only --date is specified, lists that single day.`,
		Example: `  peluq list
  peluq list --date=2026-09-01
  peluq list --date=2026-09-01 --end=2026-09-07
  peluq list --copy`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			dateRange, err := dateutil.NewDateRange(startDate, endDate)
			if err != nil {
				return err
			}

			ctx := context.Background()
			appts, err := a.repo.ListAppointments(ctx, dateRange.Start, dateRange.End)
			if err != nil {
				return fmt.Errorf("listing appointments: %w", err)
			}
			if len(appts) == 0 {
				fmt.Println("No appointments in the specified range.")
				return nil
			}

			services, err := a.repo.ListServices(ctx)
			if err != nil {
				return fmt.Errorf("listing services: %w", err)
			}
			stylists, err := a.repo.ListStylists(ctx)
			if err != nil {
				return fmt.Errorf("listing stylists: %w", err)
			}

			svcIndex := appointment.ServiceIndex(services)
			stylistName := map[int64]string{}
			for _, s := range stylists {
				stylistName[s.ID] = s.Name
			}

			sort.SliceStable(appts, func(i, j int) bool {
				di, dj := dateutil.FormatDate(appts[i].Date), dateutil.FormatDate(appts[j].Date)
				if di != dj {
					return di < dj
				}
				return appts[i].Start < appts[j].Start
			})

			var sheet strings.Builder
			var currentDate string
			for _, appt := range appts {
				date := dateutil.FormatDate(appt.Date)
				if date != currentDate {
					if currentDate != "" {
						fmt.Println()
						sheet.WriteString("\n")
					}
					header := fmt.Sprintf("=== %s ===", date)
					fmt.Println(formatHeader(header))
					sheet.WriteString(header + "\n")
					currentDate = date
				}

				client, err := a.repo.GetClientByID(ctx, appt.ClientID)
				clientName := ""
				if err == nil {
					clientName = client.Name
				}

				line := formatAppointmentLine(appt, svcIndex[appt.ServiceID], stylistName[appt.StylistID], clientName)
				fmt.Println(line)

				svc := svcIndex[appt.ServiceID]
				sheet.WriteString(fmt.Sprintf("%s-%s  %s  %s  %s  [%s]\n",
					appt.Start, appt.End(svc), stylistName[appt.StylistID], serviceName(svc), clientName, appt.Status))
			}

			if copySheet {
				if err := clipboard.WriteAll(sheet.String()); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Println()
				fmt.Println(formatMuted("Copied to clipboard."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "date", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	cmd.Flags().BoolVar(&copySheet, "copy", false, "Copy a plain-text day sheet to the clipboard")

	return cmd
}

func serviceName(svc *appointment.Service) string {
	if svc == nil {
		return "(unknown service)"
	}
	return svc.Name
}
