package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/peluqapp/peluq/internal/appointment"
)

func (a *App) cancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel [appointment-id]",
		Short: "Cancel an appointment",
		Long: `Cancel an appointment by its ID. The booking stays on record but
disappears from the calendar grid.

Example:
  peluq cancel 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid appointment ID: %w", err)
			}

			ctx := context.Background()
			if err := a.repo.UpdateAppointmentStatus(ctx, id, appointment.StatusCancelled); err != nil {
				return fmt.Errorf("cancelling appointment: %w", err)
			}

			fmt.Printf("Cancelled appointment #%d\n", id)
			return nil
		},
	}
}
