// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/peluqapp/peluq/internal/appointment"
)

// CalendarLoadedMsg is sent when the visible date range is loaded.
type CalendarLoadedMsg struct {
	Appointments []*appointment.Appointment
	Services     []*appointment.Service
	Stylists     []*appointment.Stylist
}

// AppointmentsReloadedMsg is sent after a mutation refreshed the range.
type AppointmentsReloadedMsg struct {
	Appointments []*appointment.Appointment
}

// CommittedMsg is sent when a mutation was persisted; the calendar
// reloads the affected range in response.
type CommittedMsg struct {
	Action string // "created", "rescheduled", "resized", "status"
}

// ClientLoadedMsg is sent when a client lookup for the detail view completes.
type ClientLoadedMsg struct {
	AppointmentID int64
	Client        *appointment.Client // nil when the reference is dangling
}

// ErrMsg is sent when a repository call fails. The grid re-syncs from
// the store rather than trusting the optimistic render.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadCalendar loads appointments plus the service and stylist
// catalogues for the visible range.
func LoadCalendar(repo appointment.Repository, start, end time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		appts, err := repo.ListAppointments(ctx, start, end)
		if err != nil {
			return ErrMsg{Err: err}
		}
		services, err := repo.ListServices(ctx)
		if err != nil {
			return ErrMsg{Err: err}
		}
		stylists, err := repo.ListStylists(ctx)
		if err != nil {
			return ErrMsg{Err: err}
		}

		return CalendarLoadedMsg{Appointments: appts, Services: services, Stylists: stylists}
	}
}

// ReloadAppointments refreshes only the appointment list for the range.
func ReloadAppointments(repo appointment.Repository, start, end time.Time) tea.Cmd {
	return func() tea.Msg {
		appts, err := repo.ListAppointments(context.Background(), start, end)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return AppointmentsReloadedMsg{Appointments: appts}
	}
}

// CreateAppointment books a new appointment for a named client.
func CreateAppointment(repo appointment.Repository, clientName string, serviceID, stylistID int64, day time.Time, start string, durationOverride int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		client, err := repo.FindOrCreateClient(ctx, clientName)
		if err != nil {
			return ErrMsg{Err: err}
		}

		appt, err := appointment.New(client.ID, serviceID, stylistID, day.Format("2006-01-02"), start)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if durationOverride > 0 {
			appt.DurationOverride = &durationOverride
		}

		if err := repo.CreateAppointment(ctx, appt); err != nil {
			return ErrMsg{Err: err}
		}
		return CommittedMsg{Action: "created"}
	}
}

// Reschedule commits a move: new day, stylist, and start time. The
// duration is preserved by never touching it.
func Reschedule(repo appointment.Repository, id int64, day time.Time, stylistID int64, start string) tea.Cmd {
	return func() tea.Msg {
		err := repo.UpdateAppointmentDetails(context.Background(), id, appointment.DetailsUpdate{
			Date:      &day,
			Start:     &start,
			StylistID: &stylistID,
		})
		if err != nil {
			return ErrMsg{Err: err}
		}
		return CommittedMsg{Action: "rescheduled"}
	}
}

// Resize commits a duration override.
func Resize(repo appointment.Repository, id int64, durationMinutes int) tea.Cmd {
	return func() tea.Msg {
		err := repo.UpdateAppointmentDetails(context.Background(), id, appointment.DetailsUpdate{
			DurationOverride: &durationMinutes,
		})
		if err != nil {
			return ErrMsg{Err: err}
		}
		return CommittedMsg{Action: "resized"}
	}
}

// SetStatus commits an explicit status change.
func SetStatus(repo appointment.Repository, id int64, status appointment.Status) tea.Cmd {
	return func() tea.Msg {
		if err := repo.UpdateAppointmentStatus(context.Background(), id, status); err != nil {
			return ErrMsg{Err: err}
		}
		return CommittedMsg{Action: "status"}
	}
}

// LoadClient resolves the client for an appointment's detail view.
// A dangling reference degrades to a nil client instead of an error.
func LoadClient(repo appointment.Repository, apptID, clientID int64) tea.Cmd {
	return func() tea.Msg {
		client, err := repo.GetClientByID(context.Background(), clientID)
		if err != nil {
			return ClientLoadedMsg{AppointmentID: apptID, Client: nil}
		}
		return ClientLoadedMsg{AppointmentID: apptID, Client: client}
	}
}
