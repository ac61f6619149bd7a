// Package ui implements the command line interface for peluq.
package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/peluqapp/peluq/internal/appointment"
	"github.com/peluqapp/peluq/internal/config"
	"github.com/peluqapp/peluq/internal/db"
	"github.com/peluqapp/peluq/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   appointment.Repository
	config *config.Config
	root   *cobra.Command
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened lazily from the configured database path.
func NewApp(repo appointment.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "peluq",
		Short: "A salon appointment calendar for the terminal",
		Long: `Peluq is a salon booking calendar that lives in your terminal.

Run it without arguments to open the interactive calendar: drag on an
empty slot to book, drag a booking to reschedule it, drag its bottom
edge to change the duration.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.Run(a.repo, a.config)
		},
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.servicesCmd())
	a.root.AddCommand(a.staffCmd())
	a.root.AddCommand(a.statusCmd())
	a.root.AddCommand(a.cancelCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("peluq %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the database on first use and seeds the catalogue
// so a fresh install starts with bookable services and staff.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}

	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	store, err := db.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	if err := store.EnsureCatalogue(context.Background()); err != nil {
		_ = store.Close()
		return fmt.Errorf("seeding catalogue: %w", err)
	}

	a.repo = store
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository if one was opened.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}
