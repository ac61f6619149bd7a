package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/peluqapp/peluq/internal/appointment"
	"github.com/peluqapp/peluq/internal/dateutil"
	"github.com/peluqapp/peluq/internal/grid"
)

// View renders the TUI.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}

	base := m.renderGrid()

	if m.mode == ModeModal {
		var modal string
		switch m.modalType {
		case ModalCreate:
			modal = m.renderCreateModal()
		case ModalDetail:
			modal = m.renderDetailModal()
		}
		return composite(base, modal, m.width, m.height)
	}
	return base
}

func (m Model) renderGrid() string {
	var b strings.Builder
	s := m.styles

	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.renderHeaders())

	stylists := m.visibleStylists()
	colW := m.layout.ColWidth()

	for row := 0; row < m.layout.GridH; row++ {
		offset := row + m.scrollOffset
		b.WriteString(m.renderTimeLabel(offset))
		for _, day := range m.days {
			for _, st := range stylists {
				ref := ColumnRef{Day: day, StylistID: st.ID}
				b.WriteString(m.renderCell(ref, st, float64(offset), colW))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(s.HelpStyle.Render(m.helpText()))
	return b.String()
}

func (m Model) renderTitle() string {
	title := fmt.Sprintf(" %s  %s – %s",
		m.config.Salon.Name,
		m.days[0].Format("Mon 02 Jan"),
		m.days[len(m.days)-1].Format("Mon 02 Jan"))
	if m.loading {
		title += "  (loading)"
	}
	return m.styles.TitleStyle.Render(title)
}

// renderHeaders renders the day row and the stylist row under it.
func (m Model) renderHeaders() string {
	s := m.styles
	stylists := m.visibleStylists()
	colW := m.layout.ColWidth()
	today := dateutil.TruncateToDay(time.Now())

	var days, names strings.Builder
	days.WriteString(s.TimeColumnStyle.Render(strings.Repeat(" ", timeColWidth)))
	names.WriteString(s.TimeColumnStyle.Render(strings.Repeat(" ", timeColWidth)))
	for _, day := range m.days {
		style := s.DayHeaderStyleWidth(colW * len(stylists))
		if dateutil.SameDay(day, today) {
			style = s.DayHeaderTodayStyleWidth(colW * len(stylists))
		}
		days.WriteString(style.Render(day.Format("Mon 02")))
		for _, st := range stylists {
			names.WriteString(s.StylistHeaderStyleWidth(colW).Render(truncate(st.Name, colW)))
		}
	}
	return days.String() + "\n" + names.String() + "\n"
}

// renderTimeLabel renders the gutter label for a grid row: the time at
// hour boundaries, blank elsewhere.
func (m Model) renderTimeLabel(offset int) string {
	mins := m.geo.StartMinutes() + m.geo.PixelsToMinutes(float64(offset))
	label := strings.Repeat(" ", timeColWidth)
	if mins%60 == 0 {
		label = fmt.Sprintf("%5s ", appointment.MinutesToTime(mins))
	}
	return m.styles.TimeColumnStyle.Render(label)
}

// renderCell renders one column cell at a vertical offset. Transient
// gesture state only affects presentation here; the projected blocks
// come from committed data.
func (m Model) renderCell(ref ColumnRef, st *appointment.Stylist, offset float64, colW int) string {
	s := m.styles

	// Create selection rectangle.
	if m.gesture.Phase() == PhaseCreating && m.gesture.col == ref {
		if top, height, ok := m.gesture.Selection(); ok {
			if offset >= top && offset <= top+height {
				return s.SelectionStyleWidth(colW).Render(truncate(" + new", colW))
			}
		}
	}

	placed := m.placedFor(ref)
	p := grid.At(placed, offset)
	if p == nil {
		// Drop-target highlight for empty cells while moving.
		if target, ok := m.gesture.DropTarget(); ok && target == ref {
			return s.DropTargetStyleWidth(colW).Render(strings.Repeat("·", colW))
		}
		return s.EmptyCellStyleWidth(colW).Render(strings.Repeat(" ", colW))
	}

	block := p.Block
	appt := p.Appt

	// Live resize preview: the resized block stretches to the candidate
	// duration before anything is committed.
	if id, ok := m.gesture.ResizingID(); ok && id == appt.ID {
		if dur, ok := m.gesture.CandidateDuration(); ok {
			block.Height = m.geo.MinutesToPixels(dur)
			if block.Height < 1 {
				block.Height = 1
			}
		}
		return s.ApptResizingStyle.Width(colW).Render(m.blockText(appt, block, offset, colW))
	}

	if id, ok := m.gesture.MovingID(); ok && id == appt.ID {
		return s.ApptMovingStyle.Width(colW).Render(m.blockText(appt, block, offset, colW))
	}

	text := m.blockText(appt, block, offset, colW)
	if block.IsHandle(offset) {
		return s.ApptHandleStyle.Width(colW).Render(text)
	}
	if appt.Status == appointment.StatusLate {
		return s.ApptCellColored(colW, "").Foreground(s.colorWarning).Render(text)
	}
	return s.ApptCellColored(colW, st.Color).Render(text)
}

// blockText picks the line of an appointment block to show at a given
// offset: time and service on the first row, a drag handle on the last.
func (m Model) blockText(appt *appointment.Appointment, block grid.Block, offset float64, colW int) string {
	px := int(offset)
	switch {
	case px == block.Top:
		svc := m.svcIndex[appt.ServiceID]
		name := "?"
		if svc != nil {
			name = svc.Name
		}
		return truncate(fmt.Sprintf("%s %s", appt.Start, name), colW)
	case block.IsHandle(offset):
		return truncate(" "+strings.Repeat("╌", colW-2), colW)
	default:
		return strings.Repeat(" ", colW)
	}
}

func (m Model) renderStatusLine() string {
	if m.statusMsg == "" {
		return m.styles.StatusStyle.Render(" ")
	}
	if m.err != nil && strings.HasPrefix(m.statusMsg, "Error") {
		return m.styles.StatusErrStyle.Render(" " + m.statusMsg)
	}
	return m.styles.StatusStyle.Render(" " + m.statusMsg)
}

func (m Model) helpText() string {
	if m.mode == ModeFilter {
		var parts []string
		for i, st := range m.stylists {
			label := fmt.Sprintf("%d %s", i+1, st.Name)
			if len(m.visible) == 0 || m.visible[st.ID] {
				parts = append(parts, m.styles.FilterActiveStyle.Render(label))
			} else {
				parts = append(parts, m.styles.FilterInactiveStyle.Render(label))
			}
		}
		return " filter: " + strings.Join(parts, " ") + "  a: all  esc: done"
	}
	return " [/]: day  t: today  f: filter  c: copy sheet  r: reload  q: quit"
}

// truncate clips s to width cells, padding with spaces.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
