package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) servicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the service catalogue",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			services, err := a.repo.ListServices(context.Background())
			if err != nil {
				return fmt.Errorf("listing services: %w", err)
			}

			fmt.Println(formatHeader("Services"))
			fmt.Println(ruler())
			for _, s := range services {
				fmt.Printf("  #%-3d %-22s %4dm  %8s\n", s.ID, s.Name, s.Duration, formatPrice(s.Price))
			}
			return nil
		},
	}
}
