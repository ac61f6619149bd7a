// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/peluqapp/peluq/internal/appointment"
)

// SQLite implements appointment.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// CreateAppointment adds a new appointment and assigns its ID and Ref.
func (s *SQLite) CreateAppointment(ctx context.Context, a *appointment.Appointment) error {
	if a.Status == "" {
		a.Status = appointment.StatusUnconfirmed
	}
	if a.Ref == "" {
		a.Ref = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO appointments (
			ref, client_id, service_id, stylist_id, date, start_time,
			status, duration_override, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		a.Ref,
		a.ClientID,
		a.ServiceID,
		a.StylistID,
		a.Date.Format("2006-01-02"),
		a.Start,
		a.Status,
		a.DurationOverride,
		a.Notes,
		a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting appointment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	a.ID = id

	return nil
}

const appointmentColumns = `
	id, ref, client_id, service_id, stylist_id, date, start_time,
	status, duration_override, notes, created_at
`

// GetAppointment retrieves an appointment by ID.
func (s *SQLite) GetAppointment(ctx context.Context, id int64) (*appointment.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = ?`

	a, err := scanAppointment(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, appointment.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying appointment: %w", err)
	}
	return a, nil
}

// ListAppointments returns all appointments with dates in [start, end] inclusive.
func (s *SQLite) ListAppointments(ctx context.Context, start, end time.Time) ([]*appointment.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE date >= ? AND date <= ?
		ORDER BY date, start_time, id
	`

	rows, err := s.db.QueryContext(ctx, query,
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
	)
	if err != nil {
		return nil, fmt.Errorf("querying appointments: %w", err)
	}
	defer rows.Close()

	var appts []*appointment.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning appointment: %w", err)
		}
		appts = append(appts, a)
	}
	return appts, rows.Err()
}

// UpdateAppointmentDetails applies a partial update to an appointment.
func (s *SQLite) UpdateAppointmentDetails(ctx context.Context, id int64, upd appointment.DetailsUpdate) error {
	if upd.IsZero() {
		return nil
	}

	var (
		sets []string
		args []any
	)
	if upd.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, upd.Date.Format("2006-01-02"))
	}
	if upd.Start != nil {
		if err := appointment.ValidateTimeFormat(*upd.Start); err != nil {
			return err
		}
		sets = append(sets, "start_time = ?")
		args = append(args, *upd.Start)
	}
	if upd.StylistID != nil {
		sets = append(sets, "stylist_id = ?")
		args = append(args, *upd.StylistID)
	}
	if upd.DurationOverride != nil {
		if *upd.DurationOverride <= 0 {
			return appointment.ErrInvalidDuration
		}
		sets = append(sets, "duration_override = ?")
		args = append(args, *upd.DurationOverride)
	}
	args = append(args, id)

	query := "UPDATE appointments SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating appointment: %w", err)
	}
	return requireRow(result)
}

// UpdateAppointmentStatus sets the appointment status.
func (s *SQLite) UpdateAppointmentStatus(ctx context.Context, id int64, status appointment.Status) error {
	if !status.Valid() {
		return appointment.ErrInvalidStatus
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE appointments SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}
	return requireRow(result)
}

// ListServices returns the service catalogue.
func (s *SQLite) ListServices(ctx context.Context) ([]*appointment.Service, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, duration_minutes, price FROM services ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying services: %w", err)
	}
	defer rows.Close()

	var services []*appointment.Service
	for rows.Next() {
		var svc appointment.Service
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Duration, &svc.Price); err != nil {
			return nil, fmt.Errorf("scanning service: %w", err)
		}
		services = append(services, &svc)
	}
	return services, rows.Err()
}

// ListStylists returns all stylists in display order.
func (s *SQLite) ListStylists(ctx context.Context) ([]*appointment.Stylist, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, color FROM stylists ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("querying stylists: %w", err)
	}
	defer rows.Close()

	var stylists []*appointment.Stylist
	for rows.Next() {
		var st appointment.Stylist
		if err := rows.Scan(&st.ID, &st.Name, &st.Color); err != nil {
			return nil, fmt.Errorf("scanning stylist: %w", err)
		}
		stylists = append(stylists, &st)
	}
	return stylists, rows.Err()
}

// GetClientByID retrieves a client by ID.
func (s *SQLite) GetClientByID(ctx context.Context, id int64) (*appointment.Client, error) {
	var c appointment.Client
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, phone, email FROM clients WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Phone, &c.Email)
	if err == sql.ErrNoRows {
		return nil, appointment.ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying client: %w", err)
	}
	return &c, nil
}

// FindOrCreateClient looks a client up by name, creating one if needed.
func (s *SQLite) FindOrCreateClient(ctx context.Context, name string) (*appointment.Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appointment.ErrNoClient
	}

	var c appointment.Client
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, phone, email FROM clients WHERE name = ? LIMIT 1`, name).
		Scan(&c.ID, &c.Name, &c.Phone, &c.Email)
	if err == nil {
		return &c, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("querying client: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `INSERT INTO clients (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("inserting client: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting last insert id: %w", err)
	}
	return &appointment.Client{ID: id, Name: name}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (*appointment.Appointment, error) {
	var (
		a        appointment.Appointment
		date     string
		created  string
		override sql.NullInt64
	)

	err := row.Scan(
		&a.ID,
		&a.Ref,
		&a.ClientID,
		&a.ServiceID,
		&a.StylistID,
		&date,
		&a.Start,
		&a.Status,
		&override,
		&a.Notes,
		&created,
	)
	if err != nil {
		return nil, err
	}

	a.Date, err = time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}
	if created != "" {
		// created_at may come back as RFC3339 (set by us) or as the
		// sqlite CURRENT_TIMESTAMP format.
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			a.CreatedAt = t
		} else if t, err := time.Parse("2006-01-02 15:04:05", created); err == nil {
			a.CreatedAt = t
		}
	}
	if override.Valid {
		v := int(override.Int64)
		a.DurationOverride = &v
	}

	return &a, nil
}

// requireRow converts a zero-row update into a not-found error.
func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return appointment.ErrAppointmentNotFound
	}
	return nil
}
