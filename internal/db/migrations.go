package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS clients (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL,
			phone      TEXT DEFAULT '',
			email      TEXT DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS services (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			name             TEXT NOT NULL,
			duration_minutes INTEGER NOT NULL CHECK(duration_minutes > 0),
			price            REAL NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS stylists (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL,
			color      TEXT DEFAULT '',
			sort_order INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS appointments (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			ref               TEXT NOT NULL UNIQUE,
			client_id         INTEGER NOT NULL REFERENCES clients(id),
			service_id        INTEGER NOT NULL REFERENCES services(id),
			stylist_id        INTEGER NOT NULL REFERENCES stylists(id),
			date              DATE NOT NULL,
			start_time        TIME NOT NULL,
			status            TEXT DEFAULT 'unconfirmed'
			                  CHECK(status IN ('unconfirmed', 'confirmed', 'late', 'cancelled')),
			duration_override INTEGER,
			notes             TEXT DEFAULT '',
			created_at        DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_appointments_date ON appointments(date);
		CREATE INDEX IF NOT EXISTS idx_appointments_stylist ON appointments(stylist_id, date);
		CREATE INDEX IF NOT EXISTS idx_clients_name ON clients(name);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
