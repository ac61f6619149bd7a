// Package tui provides the terminal user interface for peluq.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/peluqapp/peluq/internal/tui/theme"
)

// Default column width - recalculated from the terminal width.
const defaultColWidth = 18

// Width of the time gutter on the left edge of the grid.
const timeColWidth = 6

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorWarning     lipgloss.Color
	colorOk          lipgloss.Color
	colorDropTarget  lipgloss.Color

	// Title style
	TitleStyle lipgloss.Style

	// Header styles
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style
	StylistHeaderStyle  lipgloss.Style

	// Time column
	TimeColumnStyle lipgloss.Style

	// Appointment block styles
	ApptCellStyle     lipgloss.Style
	ApptHandleStyle   lipgloss.Style
	ApptCancelled     lipgloss.Style
	ApptMovingStyle   lipgloss.Style
	ApptResizingStyle lipgloss.Style

	// Create-drag selection rectangle
	SelectionStyle lipgloss.Style

	// Column highlighted as a drop target during a move
	DropTargetStyle lipgloss.Style

	// Empty cell
	EmptyCellStyle lipgloss.Style

	// Status bar
	StatusStyle    lipgloss.Style
	StatusErrStyle lipgloss.Style

	// Help text
	HelpStyle lipgloss.Style

	// Filter bar
	FilterActiveStyle   lipgloss.Style
	FilterInactiveStyle lipgloss.Style

	// Modal styles
	ModalStyle            lipgloss.Style
	ModalBgColor          lipgloss.Color
	ModalTitleStyle       lipgloss.Style
	ModalLabelStyle       lipgloss.Style
	ModalValueStyle       lipgloss.Style
	ModalHintStyle        lipgloss.Style
	ModalInputStyle       lipgloss.Style
	ModalInputFocused     lipgloss.Style
	ModalOptionStyle      lipgloss.Style
	ModalOptionActive     lipgloss.Style
	StatusBadgeStyles     map[string]lipgloss.Style
	ModalPlaceholderStyle lipgloss.Style

	// App container
	AppStyle lipgloss.Style

	// Viewport background
	ViewportStyle lipgloss.Style

	// Separator style
	SeparatorStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}

	s.colorBg = lipgloss.Color(t.Bg)
	s.colorBgHighlight = lipgloss.Color(t.BgHighlight)
	s.colorBgSelection = lipgloss.Color(t.BgSelection)
	s.colorFg = lipgloss.Color(t.Fg)
	s.colorFgMuted = lipgloss.Color(t.FgMuted)
	s.colorAccent = lipgloss.Color(t.Accent)
	s.colorWarning = lipgloss.Color(t.Warning)
	s.colorOk = lipgloss.Color(t.Ok)
	s.colorDropTarget = lipgloss.Color(t.DropTarget)

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Foreground(s.colorFg).
		Background(s.colorBg).
		Width(defaultColWidth)

	s.DayHeaderTodayStyle = s.DayHeaderStyle.
		Foreground(s.colorAccent)

	s.StylistHeaderStyle = lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(s.colorFgMuted).
		Background(s.colorBg).
		Width(defaultColWidth)

	s.TimeColumnStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg).
		Width(timeColWidth)

	s.ApptCellStyle = lipgloss.NewStyle().
		Width(defaultColWidth).
		Align(lipgloss.Left).
		Background(s.colorBgHighlight).
		Foreground(s.colorFg)

	s.ApptHandleStyle = s.ApptCellStyle.
		Foreground(s.colorFgMuted)

	s.ApptCancelled = s.ApptCellStyle.
		Foreground(s.colorFgMuted).
		Strikethrough(true)

	s.ApptMovingStyle = s.ApptCellStyle.
		Background(s.colorBgSelection).
		Bold(true)

	s.ApptResizingStyle = s.ApptCellStyle.
		Background(s.colorBgSelection).
		Bold(true)

	s.SelectionStyle = lipgloss.NewStyle().
		Width(defaultColWidth).
		Background(s.colorBgSelection).
		Foreground(s.colorFg).
		Bold(true)

	s.DropTargetStyle = lipgloss.NewStyle().
		Width(defaultColWidth).
		Background(s.colorDropTarget).
		Foreground(s.colorFgMuted)

	s.EmptyCellStyle = lipgloss.NewStyle().
		Width(defaultColWidth).
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorOk).
		Background(s.colorBg).
		Bold(true)

	s.StatusErrStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Background(s.colorBg).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.FilterActiveStyle = lipgloss.NewStyle().
		Background(s.colorAccent).
		Foreground(s.colorBg).
		Bold(true).
		Padding(0, 1)

	s.FilterInactiveStyle = lipgloss.NewStyle().
		Background(s.colorBgHighlight).
		Foreground(s.colorFgMuted).
		Padding(0, 1)

	modalBg := lipgloss.Color(t.ModalBg)
	modalBorder := lipgloss.Color(t.ModalBorder)
	s.ModalBgColor = modalBg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modalBorder).
		Background(modalBg).
		Foreground(s.colorFg).
		Padding(1, 2).
		Width(56).
		Align(lipgloss.Left)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(modalBg)

	s.ModalLabelStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(modalBg).
		Width(10)

	s.ModalValueStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(modalBg)

	s.ModalHintStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(modalBg)

	s.ModalInputStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(s.colorFgMuted).
		Background(modalBg).
		Foreground(s.colorFg).
		Padding(0, 1).
		Width(40)

	s.ModalInputFocused = s.ModalInputStyle.
		BorderForeground(s.colorAccent)

	s.ModalOptionStyle = lipgloss.NewStyle().
		Background(modalBg).
		Foreground(s.colorFgMuted).
		Padding(0, 1)

	s.ModalOptionActive = lipgloss.NewStyle().
		Background(s.colorAccent).
		Foreground(modalBg).
		Bold(true).
		Padding(0, 1)

	s.ModalPlaceholderStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(modalBg)

	s.StatusBadgeStyles = map[string]lipgloss.Style{
		"unconfirmed": lipgloss.NewStyle().Foreground(s.colorFgMuted).Background(modalBg),
		"confirmed":   lipgloss.NewStyle().Foreground(s.colorOk).Background(modalBg).Bold(true),
		"late":        lipgloss.NewStyle().Foreground(s.colorWarning).Background(modalBg).Bold(true),
		"cancelled":   lipgloss.NewStyle().Foreground(s.colorFgMuted).Background(modalBg).Strikethrough(true),
	}

	s.AppStyle = lipgloss.NewStyle().
		Background(s.colorBg).
		PaddingTop(1).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingBottom(1)

	s.ViewportStyle = lipgloss.NewStyle().
		Background(s.colorBg)

	s.SeparatorStyle = lipgloss.NewStyle().
		Foreground(s.colorBgSelection).
		Background(s.colorBg)

	return s
}

// ApptCellStyleWidth returns the appointment block style with the given width.
func (s *Styles) ApptCellStyleWidth(width int) lipgloss.Style {
	return s.ApptCellStyle.Width(width)
}

// ApptCellColored returns a block style tinted with a stylist's color.
func (s *Styles) ApptCellColored(width int, hex string) lipgloss.Style {
	st := s.ApptCellStyle.Width(width)
	if hex != "" {
		st = st.Foreground(lipgloss.Color(hex))
	}
	return st
}

// EmptyCellStyleWidth returns the empty cell style with the given width.
func (s *Styles) EmptyCellStyleWidth(width int) lipgloss.Style {
	return s.EmptyCellStyle.Width(width)
}

// SelectionStyleWidth returns the selection style with the given width.
func (s *Styles) SelectionStyleWidth(width int) lipgloss.Style {
	return s.SelectionStyle.Width(width)
}

// DropTargetStyleWidth returns the drop-target style with the given width.
func (s *Styles) DropTargetStyleWidth(width int) lipgloss.Style {
	return s.DropTargetStyle.Width(width)
}

// DayHeaderStyleWidth returns the day header style with the given width.
func (s *Styles) DayHeaderStyleWidth(width int) lipgloss.Style {
	return s.DayHeaderStyle.Width(width)
}

// DayHeaderTodayStyleWidth returns the today header style with the given width.
func (s *Styles) DayHeaderTodayStyleWidth(width int) lipgloss.Style {
	return s.DayHeaderTodayStyle.Width(width)
}

// StylistHeaderStyleWidth returns the stylist header style with the given width.
func (s *Styles) StylistHeaderStyleWidth(width int) lipgloss.Style {
	return s.StylistHeaderStyle.Width(width)
}
