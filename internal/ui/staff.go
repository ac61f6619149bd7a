package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) staffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "staff",
		Short: "List the stylists",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			stylists, err := a.repo.ListStylists(context.Background())
			if err != nil {
				return fmt.Errorf("listing stylists: %w", err)
			}

			fmt.Println(formatHeader("Stylists"))
			fmt.Println(ruler())
			for _, s := range stylists {
				fmt.Printf("  #%-3d %s\n", s.ID, s.Name)
			}
			return nil
		},
	}
}
