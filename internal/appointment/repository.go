package appointment

import (
	"context"
	"time"
)

// DetailsUpdate carries a partial appointment mutation. Nil fields are
// left untouched. Reschedule sets Date/Start/StylistID; resize sets
// DurationOverride.
type DetailsUpdate struct {
	Date             *time.Time
	Start            *string
	StylistID        *int64
	DurationOverride *int
}

// IsZero returns true if the update mutates nothing.
func (u DetailsUpdate) IsZero() bool {
	return u.Date == nil && u.Start == nil && u.StylistID == nil && u.DurationOverride == nil
}

// Repository defines the storage interface for the salon calendar.
type Repository interface {
	// CreateAppointment adds a new appointment and assigns its ID and Ref.
	// Status defaults to unconfirmed when unset.
	CreateAppointment(ctx context.Context, appt *Appointment) error

	// GetAppointment retrieves an appointment by ID.
	// Returns ErrAppointmentNotFound if it does not exist.
	GetAppointment(ctx context.Context, id int64) (*Appointment, error)

	// ListAppointments returns all appointments with dates in [start, end] inclusive.
	ListAppointments(ctx context.Context, start, end time.Time) ([]*Appointment, error)

	// UpdateAppointmentDetails applies a partial update to date, start
	// time, stylist, or duration override.
	UpdateAppointmentDetails(ctx context.Context, id int64, upd DetailsUpdate) error

	// UpdateAppointmentStatus sets the appointment status. Setting the
	// current status is an idempotent no-op.
	UpdateAppointmentStatus(ctx context.Context, id int64, status Status) error

	// ListServices returns the service catalogue.
	ListServices(ctx context.Context) ([]*Service, error)

	// ListStylists returns all stylists in display order.
	ListStylists(ctx context.Context) ([]*Stylist, error)

	// GetClientByID retrieves a client. Returns ErrClientNotFound if missing.
	GetClientByID(ctx context.Context, id int64) (*Client, error)

	// FindOrCreateClient looks a client up by name, creating one if needed.
	FindOrCreateClient(ctx context.Context, name string) (*Client, error)

	// Close releases any resources held by the repository.
	Close() error
}
