package db

import (
	"context"
	"fmt"
)

// EnsureCatalogue seeds a starter service menu and stylist roster when
// the database is brand new, so the calendar has columns to render on
// first launch. Existing rows are never touched.
func (s *SQLite) EnsureCatalogue(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM services`).Scan(&count); err != nil {
		return fmt.Errorf("counting services: %w", err)
	}
	if count == 0 {
		services := []struct {
			name     string
			duration int
			price    float64
		}{
			{"Cut", 30, 25},
			{"Cut & blow dry", 45, 38},
			{"Color", 90, 80},
			{"Highlights", 120, 110},
			{"Beard trim", 15, 12},
		}
		for _, svc := range services {
			if _, err := s.db.ExecContext(ctx,
				`INSERT INTO services (name, duration_minutes, price) VALUES (?, ?, ?)`,
				svc.name, svc.duration, svc.price); err != nil {
				return fmt.Errorf("seeding service %q: %w", svc.name, err)
			}
		}
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stylists`).Scan(&count); err != nil {
		return fmt.Errorf("counting stylists: %w", err)
	}
	if count == 0 {
		stylists := []struct {
			name  string
			color string
		}{
			{"Ana", "#f38ba8"},
			{"Marco", "#89b4fa"},
			{"Lucía", "#a6e3a1"},
		}
		for i, st := range stylists {
			if _, err := s.db.ExecContext(ctx,
				`INSERT INTO stylists (name, color, sort_order) VALUES (?, ?, ?)`,
				st.name, st.color, i); err != nil {
				return fmt.Errorf("seeding stylist %q: %w", st.name, err)
			}
		}
	}

	return nil
}
