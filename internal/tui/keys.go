package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/peluqapp/peluq/internal/appointment"
	"github.com/peluqapp/peluq/internal/dateutil"
	"github.com/peluqapp/peluq/internal/tui/commands"
)

// handleKeyMsg routes key presses by interaction mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeFilter:
		return m.handleFilterKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.gesture.Cancel()
		m.pressAppt = nil
		return m, nil

	case "[", "h":
		return m, m.setDays(m.anchor.AddDate(0, 0, -1))

	case "]", "l":
		return m, m.setDays(m.anchor.AddDate(0, 0, 1))

	case "t":
		return m, m.setDays(dateutil.TruncateToDay(time.Now()))

	case "r":
		m.loading = true
		return m, commands.LoadCalendar(m.repo, m.rangeStart(), m.rangeEnd())

	case "f":
		m.mode = ModeFilter
		return m, nil

	case "c":
		sheet := m.daySheet(m.anchor)
		if err := clipboard.WriteAll(sheet); err != nil {
			return m, m.setStatus(fmt.Sprintf("Copy failed: %v", err))
		}
		return m, m.setStatus("Day sheet copied")

	case "up", "k":
		m.scroll(-1)
		return m, nil

	case "down", "j":
		m.scroll(1)
		return m, nil
	}
	return m, nil
}

// handleFilterKeys toggles the visible stylist set. Digits map to
// stylists in catalogue order. Changing the set never retargets a
// gesture in flight: gestures carry the stylist id captured at press.
func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc", "f", "enter":
		m.mode = ModeNormal
		return m, nil
	case "a":
		m.visible = map[int64]bool{}
		m.rebuildLayout()
		return m, nil
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx < len(m.stylists) {
			id := m.stylists[idx].ID
			if len(m.visible) == 0 {
				// Narrow from "everyone" to just this stylist.
				m.visible = map[int64]bool{id: true}
			} else if m.visible[id] {
				delete(m.visible, id)
			} else {
				m.visible[id] = true
			}
			m.rebuildLayout()
		}
	}
	return m, nil
}

func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalCreate:
		return m.handleCreateFormKeys(msg)
	case ModalDetail:
		return m.handleDetailKeys(msg)
	}
	return m, nil
}

func (m Model) handleCreateFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closeModal(), nil

	case "tab", "shift+tab":
		m.formFocus = 1 - m.formFocus
		if m.formFocus == 0 {
			m.formClient.Focus()
		} else {
			m.formClient.Blur()
		}
		return m, nil

	case "enter":
		return m.submitCreateForm()
	}

	if m.formFocus == 1 {
		switch msg.String() {
		case "left", "up":
			if m.formService > 0 {
				m.formService--
			}
			return m, nil
		case "right", "down":
			if m.formService < len(m.services)-1 {
				m.formService++
			}
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.formClient, cmd = m.formClient.Update(msg)
	return m, cmd
}

func (m Model) submitCreateForm() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.formClient.Value())
	if name == "" {
		return m, m.setStatus("Client name required")
	}
	if len(m.services) == 0 {
		return m, m.setStatus("No services configured")
	}
	svc := m.services[m.formService]
	intent := m.pending
	cmd := commands.CreateAppointment(m.repo, name, svc.ID, intent.StylistID, intent.Day, intent.Start, intent.Duration)
	return m.closeModal(), cmd
}

// handleDetailKeys drives the status menu of the detail view. Choosing
// the status the appointment already has closes the menu without
// issuing a store call.
func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	appt := m.detailAppt
	switch msg.String() {
	case "esc", "q", "enter":
		return m.closeModal(), nil

	case "1", "2", "3", "4":
		idx := int(msg.String()[0] - '1')
		statuses := appointment.Statuses
		if appt == nil || idx >= len(statuses) {
			return m, nil
		}
		next := statuses[idx]
		if next == appt.Status {
			return m.closeModal(), nil
		}
		return m.closeModal(), commands.SetStatus(m.repo, appt.ID, next)
	}
	return m, nil
}

// daySheet renders one day's bookings as plain text for the clipboard,
// sorted by start time then stylist.
func (m *Model) daySheet(day time.Time) string {
	var lines []string
	date := dateutil.FormatDate(day)
	lines = append(lines, fmt.Sprintf("%s - %s", m.config.Salon.Name, day.Format("Mon 02 Jan 2006")))

	byName := map[int64]string{}
	for _, s := range m.stylists {
		byName[s.ID] = s.Name
	}

	var dayAppts []*appointment.Appointment
	for _, a := range m.appts {
		if dateutil.FormatDate(a.Date) == date && !a.IsCancelled() {
			dayAppts = append(dayAppts, a)
		}
	}
	sort.Slice(dayAppts, func(i, j int) bool {
		if dayAppts[i].Start != dayAppts[j].Start {
			return dayAppts[i].Start < dayAppts[j].Start
		}
		return dayAppts[i].StylistID < dayAppts[j].StylistID
	})

	for _, a := range dayAppts {
		svc := m.svcIndex[a.ServiceID]
		svcName := "?"
		if svc != nil {
			svcName = svc.Name
		}
		dur := a.EffectiveDuration(svc)
		lines = append(lines, fmt.Sprintf("%s  %-12s %s (%dm) [%s]",
			a.Start, byName[a.StylistID], svcName, dur, a.Status))
	}
	if len(dayAppts) == 0 {
		lines = append(lines, "No bookings")
	}
	return strings.Join(lines, "\n")
}
