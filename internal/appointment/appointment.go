// Package appointment defines the core domain types for peluq.
package appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/peluqapp/peluq/internal/dateutil"
)

// Validation errors.
var (
	ErrNoClient          = errors.New("appointment requires a client")
	ErrNoService         = errors.New("appointment requires a service")
	ErrNoStylist         = errors.New("appointment requires a stylist")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrInvalidStatus     = errors.New("unknown appointment status")
	ErrInvalidDuration   = errors.New("duration must be positive")
)

// Domain errors.
var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrStylistNotFound     = errors.New("stylist not found")
	ErrClientNotFound      = errors.New("client not found")
)

// Status represents the state of an appointment.
//
// The transition table is intentionally unconstrained: staff may move an
// appointment between any two statuses by explicit selection. Nothing is
// derived from the clock ("late" is set by hand).
type Status string

const (
	StatusUnconfirmed Status = "unconfirmed"
	StatusConfirmed   Status = "confirmed"
	StatusLate        Status = "late"
	StatusCancelled   Status = "cancelled"
)

// Statuses lists all statuses in menu order.
var Statuses = []Status{StatusUnconfirmed, StatusConfirmed, StatusLate, StatusCancelled}

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusUnconfirmed, StatusConfirmed, StatusLate, StatusCancelled:
		return true
	default:
		return false
	}
}

// ParseStatus converts a string to a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// Appointment represents a booked service slot for a client with a stylist.
type Appointment struct {
	ID        int64
	Ref       string // public booking reference (uuid)
	ClientID  int64
	ServiceID int64
	StylistID int64
	Date      time.Time // calendar day, truncated to midnight
	Start     string    // "HH:MM" format
	Status    Status
	// DurationOverride, when set, replaces the service duration (minutes).
	// A nil override means the appointment runs for Service.Duration.
	DurationOverride *int
	Notes            string
	CreatedAt        time.Time
}

// New creates a new Appointment with validation.
// date can be empty (defaults to today) or in YYYY-MM-DD format.
// start must be in HH:MM format.
func New(clientID, serviceID, stylistID int64, date, start string) (*Appointment, error) {
	if clientID <= 0 {
		return nil, ErrNoClient
	}
	if serviceID <= 0 {
		return nil, ErrNoService
	}
	if stylistID <= 0 {
		return nil, ErrNoStylist
	}

	day, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}

	if err := ValidateTimeFormat(start); err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}

	return &Appointment{
		ClientID:  clientID,
		ServiceID: serviceID,
		StylistID: stylistID,
		Date:      day,
		Start:     start,
		Status:    StatusUnconfirmed,
		CreatedAt: time.Now(),
	}, nil
}

// ValidateTimeFormat checks that s is a valid HH:MM time.
func ValidateTimeFormat(s string) error {
	if len(s) != 5 {
		return ErrInvalidTimeFormat
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return ErrInvalidTimeFormat
	}
	return nil
}

// EffectiveDuration returns the appointment duration in minutes.
// The override wins; otherwise the service duration applies.
// Returns 0 when the service is unknown and no override is set, which
// callers treat as "cannot be laid out".
func (a *Appointment) EffectiveDuration(svc *Service) int {
	if a.DurationOverride != nil {
		return *a.DurationOverride
	}
	if svc == nil {
		return 0
	}
	return svc.Duration
}

// End returns the end time "HH:MM" given the effective duration.
func (a *Appointment) End(svc *Service) string {
	return MinutesToTime(TimeToMinutes(a.Start) + a.EffectiveDuration(svc))
}

// IsCancelled returns true if the appointment has cancelled status.
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// OnDay returns true if the appointment falls on the given calendar day.
func (a *Appointment) OnDay(day time.Time) bool {
	return a.Date.Year() == day.Year() && a.Date.YearDay() == day.YearDay()
}
