package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/peluqapp/peluq/internal/appointment"
)

func (a *App) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [appointment-id] [status]",
		Short: "Set an appointment's status",
		Long: `Set an appointment's status. Any status can move to any other;
clients change their minds.

Valid statuses: ` + statusList() + `

Example:
  peluq status 42 confirmed`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid appointment ID: %w", err)
			}
			status, err := appointment.ParseStatus(args[1])
			if err != nil {
				return err
			}

			ctx := context.Background()
			if err := a.repo.UpdateAppointmentStatus(ctx, id, status); err != nil {
				return fmt.Errorf("updating status: %w", err)
			}

			fmt.Printf("Appointment #%d is now %s\n", id, formatStatus(status))
			return nil
		},
	}
}

func statusList() string {
	names := make([]string, len(appointment.Statuses))
	for i, s := range appointment.Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
