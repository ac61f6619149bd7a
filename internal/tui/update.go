package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/peluqapp/peluq/internal/appointment"
	"github.com/peluqapp/peluq/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildLayout()
		return m, nil

	case commands.CalendarLoadedMsg:
		m.appts = msg.Appointments
		m.services = msg.Services
		m.svcIndex = appointment.ServiceIndex(msg.Services)
		m.stylists = msg.Stylists
		m.rebuildLayout()
		m.rebuildPlacement()
		m.loading = false
		return m, nil

	case commands.AppointmentsReloadedMsg:
		m.appts = msg.Appointments
		m.rebuildPlacement()
		m.loading = false
		return m, nil

	case commands.CommittedMsg:
		// Source of truth is the store: reload the range instead of
		// patching the optimistic render.
		var cmd tea.Cmd
		switch msg.Action {
		case "created":
			cmd = m.setStatus("Booked")
		case "rescheduled":
			cmd = m.setStatus("Rescheduled")
		case "resized":
			cmd = m.setStatus("Duration updated")
		case "status":
			cmd = m.setStatus("Status updated")
		}
		return m, tea.Batch(cmd, commands.ReloadAppointments(m.repo, m.rangeStart(), m.rangeEnd()))

	case commands.ClientLoadedMsg:
		if m.modalType == ModalDetail && m.detailAppt != nil && m.detailAppt.ID == msg.AppointmentID {
			m.detailClient = msg.Client
		}
		return m, nil

	case commands.ErrMsg:
		// A failed commit leaves the grid out of sync with the store;
		// re-sync by reloading the range.
		m.err = msg.Err
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = time.Now().Add(5 * time.Second)
		return m, commands.ReloadAppointments(m.repo, m.rangeStart(), m.rangeEnd())

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg)

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	// Forward remaining messages to the focused form input.
	if m.mode == ModeModal && m.modalType == ModalCreate && m.formFocus == 0 {
		var cmd tea.Cmd
		m.formClient, cmd = m.formClient.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleMouseMsg routes pointer events to the gesture machine. A press
// on an appointment body is ambiguous between "open details" and "drag
// to move", so it is held until the pointer either moves (move begins)
// or releases in place (details open).
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeModal {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Action == tea.MouseActionPress {
			m.scroll(-2)
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if msg.Action == tea.MouseActionPress {
			m.scroll(2)
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.handleMousePress(msg.X, msg.Y)
	case tea.MouseActionMotion:
		return m.handleMouseMotion(msg.X, msg.Y)
	case tea.MouseActionRelease:
		return m.handleMouseRelease()
	}
	return m, nil
}

func (m Model) handleMousePress(x, y int) (tea.Model, tea.Cmd) {
	hit, ok := m.layout.HitTest(x, y, m.scrollOffset, m.placedFor)
	if !ok {
		return m, nil
	}

	switch hit.Region {
	case RegionEmpty:
		if err := m.gesture.StartCreate(hit.Col, hit.Offset); err != nil {
			return m, nil
		}
	case RegionHandle:
		dur := hit.Appt.EffectiveDuration(m.svcIndex[hit.Appt.ServiceID])
		if err := m.gesture.StartResize(hit.Appt.ID, dur, hit.Offset); err != nil {
			return m, nil
		}
	case RegionBody:
		m.pressAppt = hit.Appt
	}
	return m, nil
}

func (m Model) handleMouseMotion(x, y int) (tea.Model, tea.Cmd) {
	// A held body press becomes a move on first movement.
	if m.pressAppt != nil && !m.gesture.Active() {
		appt := m.pressAppt
		m.pressAppt = nil
		if err := m.gesture.StartMove(appt.ID); err != nil {
			return m, nil
		}
	}

	switch m.gesture.Phase() {
	case PhaseCreating:
		if offset, ok := m.layout.RowToOffset(y, m.scrollOffset); ok {
			m.gesture.TrackCreate(offset)
		}
	case PhaseResizing:
		if offset, ok := m.layout.RowToOffset(y, m.scrollOffset); ok {
			m.gesture.TrackResize(offset)
		}
	case PhaseMoving:
		hit, ok := m.layout.HitTest(x, y, m.scrollOffset, nil)
		if ok {
			m.gesture.DragOver(hit.Col, hit.Offset)
		}
	}
	return m, nil
}

func (m Model) handleMouseRelease() (tea.Model, tea.Cmd) {
	// Release without motion on a body: open the detail view.
	if m.pressAppt != nil {
		appt := m.pressAppt
		m.pressAppt = nil
		return m.openDetailModal(appt)
	}

	switch m.gesture.Phase() {
	case PhaseCreating:
		intent, ok := m.gesture.FinishCreate()
		if !ok {
			return m, nil
		}
		return m.openCreateModal(intent)

	case PhaseResizing:
		intent, ok := m.gesture.FinishResize()
		if !ok {
			return m, nil
		}
		return m, commands.Resize(m.repo, intent.AppointmentID, intent.Duration)

	case PhaseMoving:
		intent, ok := m.gesture.FinishMove()
		if !ok {
			return m, nil
		}
		if m.apptByID(intent.AppointmentID) == nil {
			return m, nil
		}
		return m, commands.Reschedule(m.repo, intent.AppointmentID, intent.Day, intent.StylistID, intent.Start)
	}
	return m, nil
}

// scroll moves the visible window over the grid span.
func (m *Model) scroll(delta int) {
	max := m.geo.Height() - m.layout.GridH
	if max < 0 {
		max = 0
	}
	m.scrollOffset += delta
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
	if m.scrollOffset > max {
		m.scrollOffset = max
	}
}
