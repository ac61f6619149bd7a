package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/peluqapp/peluq/internal/appointment"
	"github.com/peluqapp/peluq/internal/tui/commands"
)

// openCreateModal opens the booking form prefilled from a finished
// create gesture. Duration 0 means the chosen service's default.
func (m Model) openCreateModal(intent CreateIntent) (tea.Model, tea.Cmd) {
	m.pending = intent
	m.mode = ModeModal
	m.modalType = ModalCreate
	m.formClient.SetValue("")
	m.formService = 0
	m.formFocus = 0
	return m, m.formClient.Focus()
}

// openDetailModal opens the read view for an appointment and resolves
// its client in the background.
func (m Model) openDetailModal(appt *appointment.Appointment) (tea.Model, tea.Cmd) {
	m.mode = ModeModal
	m.modalType = ModalDetail
	m.detailAppt = appt
	m.detailClient = nil
	return m, commands.LoadClient(m.repo, appt.ID, appt.ClientID)
}

// closeModal returns to the grid and clears modal state.
func (m Model) closeModal() Model {
	m.mode = ModeNormal
	m.modalType = ModalNone
	m.detailAppt = nil
	m.detailClient = nil
	m.pending = CreateIntent{}
	m.formClient.Blur()
	return m
}

// renderCreateModal renders the booking form.
func (m Model) renderCreateModal() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.ModalTitleStyle.Render("New booking"))
	b.WriteString("\n\n")

	stylist := "?"
	for _, st := range m.stylists {
		if st.ID == m.pending.StylistID {
			stylist = st.Name
		}
	}
	b.WriteString(s.ModalLabelStyle.Render("When") +
		s.ModalValueStyle.Render(fmt.Sprintf("%s %s", m.pending.Day.Format("Mon 02 Jan"), m.pending.Start)))
	b.WriteString("\n")
	b.WriteString(s.ModalLabelStyle.Render("Stylist") + s.ModalValueStyle.Render(stylist))
	b.WriteString("\n\n")

	inputStyle := s.ModalInputStyle
	if m.formFocus == 0 {
		inputStyle = s.ModalInputFocused
	}
	b.WriteString(s.ModalLabelStyle.Render("Client"))
	b.WriteString("\n")
	b.WriteString(inputStyle.Render(m.formClient.View()))
	b.WriteString("\n\n")

	b.WriteString(s.ModalLabelStyle.Render("Service"))
	b.WriteString("\n")
	var opts []string
	for i, svc := range m.services {
		dur := svc.Duration
		if m.pending.Duration > 0 {
			dur = m.pending.Duration
		}
		label := fmt.Sprintf("%s (%dm)", svc.Name, dur)
		if i == m.formService && m.formFocus == 1 {
			opts = append(opts, s.ModalOptionActive.Render(label))
		} else {
			opts = append(opts, s.ModalOptionStyle.Render(label))
		}
	}
	b.WriteString(strings.Join(opts, " "))
	b.WriteString("\n\n")
	b.WriteString(s.ModalHintStyle.Render("tab: switch field  enter: book  esc: cancel"))

	return s.ModalStyle.Render(b.String())
}

// renderDetailModal renders the appointment view with the status menu.
// A dangling client reference shows a placeholder instead of failing.
func (m Model) renderDetailModal() string {
	s := m.styles
	appt := m.detailAppt
	if appt == nil {
		return ""
	}
	var b strings.Builder

	b.WriteString(s.ModalTitleStyle.Render("Appointment"))
	b.WriteString("\n\n")

	client := "(unknown client)"
	if m.detailClient != nil {
		client = m.detailClient.Name
	}
	svc := m.svcIndex[appt.ServiceID]
	svcName := "(unknown service)"
	if svc != nil {
		svcName = svc.Name
	}
	dur := appt.EffectiveDuration(svc)

	stylist := "?"
	for _, st := range m.stylists {
		if st.ID == appt.StylistID {
			stylist = st.Name
		}
	}

	b.WriteString(s.ModalLabelStyle.Render("Client") + s.ModalValueStyle.Render(client))
	b.WriteString("\n")
	b.WriteString(s.ModalLabelStyle.Render("Service") + s.ModalValueStyle.Render(fmt.Sprintf("%s (%dm)", svcName, dur)))
	b.WriteString("\n")
	b.WriteString(s.ModalLabelStyle.Render("When") +
		s.ModalValueStyle.Render(fmt.Sprintf("%s %s–%s", appt.Date.Format("Mon 02 Jan"), appt.Start, appt.End(svc))))
	b.WriteString("\n")
	b.WriteString(s.ModalLabelStyle.Render("Stylist") + s.ModalValueStyle.Render(stylist))
	b.WriteString("\n")

	badge := s.StatusBadgeStyles[string(appt.Status)]
	b.WriteString(s.ModalLabelStyle.Render("Status") + badge.Render(string(appt.Status)))
	b.WriteString("\n")
	if appt.Ref != "" {
		b.WriteString(s.ModalLabelStyle.Render("Ref") + s.ModalHintStyle.Render(appt.Ref))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	var opts []string
	for i, st := range appointment.Statuses {
		label := fmt.Sprintf("%d %s", i+1, st)
		if st == appt.Status {
			opts = append(opts, s.ModalOptionActive.Render(label))
		} else {
			opts = append(opts, s.ModalOptionStyle.Render(label))
		}
	}
	b.WriteString(strings.Join(opts, " "))
	b.WriteString("\n\n")
	b.WriteString(s.ModalHintStyle.Render("1-4: set status  esc: close"))

	return s.ModalStyle.Render(b.String())
}
