package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/peluqapp/peluq/internal/appointment"
	"github.com/peluqapp/peluq/internal/config"
	"github.com/peluqapp/peluq/internal/dateutil"
	"github.com/peluqapp/peluq/internal/grid"
	"github.com/peluqapp/peluq/internal/tui/commands"
	"github.com/peluqapp/peluq/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter      // Toggling the visible stylist set
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone   ModalType = iota
	ModalCreate           // New booking form
	ModalDetail           // View existing appointment
)

// Number of terminal rows reserved above the grid body: title, day
// header, stylist header.
const headerRows = 3

// colKey identifies a grid column for the placement cache.
type colKey struct {
	date      string
	stylistID int64
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   appointment.Repository
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Pixel/time translation and the gesture machine built on it
	geo     grid.Geometry
	gesture *Gesture

	// State
	anchor   time.Time // First visible day
	days     []time.Time
	loading  bool
	mode     Mode
	stylists []*appointment.Stylist
	visible  map[int64]bool // Stylist ids shown in the grid
	services []*appointment.Service
	svcIndex map[int64]*appointment.Service
	appts    []*appointment.Appointment

	// Cached per-column projection, rebuilt when appts change
	placed map[colKey][]grid.Placed

	// Press-on-body bookkeeping: a press is ambiguous between "click to
	// open details" and "drag to move" until the pointer moves.
	pressAppt *appointment.Appointment

	// Modal state
	modalType    ModalType
	detailAppt   *appointment.Appointment
	detailClient *appointment.Client
	pending      CreateIntent // Prefill for the booking form
	formClient   textinput.Model
	formService  int // Index into services
	formFocus    int // 0=client name, 1=service picker

	// Terminal dimensions and layout
	width        int
	height       int
	layout       *ColumnLayout
	scrollOffset int

	// Messages
	statusMsg  string
	statusTime time.Time

	// Error state
	err error
}

// New creates a new TUI model.
func New(repo appointment.Repository, cfg *config.Config) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t = theme.Fallback()
	}
	styles := NewStyles(t)

	formClient := textinput.New()
	formClient.Placeholder = "Client name"
	formClient.CharLimit = 128
	formClient.Width = 38
	formClient.PlaceholderStyle = styles.ModalPlaceholderStyle
	formClient.TextStyle = styles.ModalValueStyle
	formClient.PromptStyle = styles.ModalValueStyle

	// One terminal row per slot.
	geo := grid.Geometry{
		StartHour:     cfg.OpenHour(),
		TotalHours:    cfg.TotalHours(),
		PixelsPerHour: 60 / cfg.Grid.SlotMinutes,
		SlotMinutes:   cfg.Grid.SlotMinutes,
	}

	anchor := dateutil.TruncateToDay(time.Now())

	m := &Model{
		repo:       repo,
		config:     cfg,
		theme:      t,
		styles:     styles,
		geo:        geo,
		gesture:    NewGesture(geo),
		anchor:     anchor,
		days:       dateutil.Days(anchor, cfg.Grid.Days),
		loading:    true,
		mode:       ModeNormal,
		visible:    map[int64]bool{},
		formClient: formClient,
	}
	m.rebuildLayout()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.LoadCalendar(m.repo, m.rangeStart(), m.rangeEnd())
}

// rangeStart returns the first instant of the visible range.
func (m *Model) rangeStart() time.Time { return m.days[0] }

// rangeEnd returns the last visible day. The store's list query treats
// the range as inclusive on both ends.
func (m *Model) rangeEnd() time.Time {
	return m.days[len(m.days)-1]
}

// visibleStylists returns the stylists currently shown, in catalogue
// order. An empty visible set means everyone.
func (m *Model) visibleStylists() []*appointment.Stylist {
	var out []*appointment.Stylist
	for _, s := range m.stylists {
		if len(m.visible) == 0 || m.visible[s.ID] {
			out = append(out, s)
		}
	}
	return out
}

// rebuildLayout recomputes column geometry after a resize or a change
// to the visible stylist set. Gestures in flight keep the column they
// captured at press time.
func (m *Model) rebuildLayout() {
	gridH := m.height - headerRows - 2 // status bar + help line
	if gridH < 1 {
		gridH = m.geo.Height()
	}
	if gridH > m.geo.Height() {
		gridH = m.geo.Height()
	}
	width := m.width
	if width <= 0 {
		width = 120
	}
	m.layout = NewColumnLayout(m.days, m.visibleStylists(), width, headerRows, gridH)
}

// rebuildPlacement reprojects every column from the committed
// appointment list.
func (m *Model) rebuildPlacement() {
	m.placed = map[colKey][]grid.Placed{}
	for _, day := range m.days {
		date := dateutil.FormatDate(day)
		for _, s := range m.stylists {
			var colAppts []*appointment.Appointment
			for _, a := range m.appts {
				if a.StylistID == s.ID && dateutil.FormatDate(a.Date) == date {
					colAppts = append(colAppts, a)
				}
			}
			m.placed[colKey{date: date, stylistID: s.ID}] = grid.Project(colAppts, m.svcIndex, m.geo)
		}
	}
}

// placedFor returns the projected blocks for a column.
func (m *Model) placedFor(ref ColumnRef) []grid.Placed {
	return m.placed[colKey{date: dateutil.FormatDate(ref.Day), stylistID: ref.StylistID}]
}

// apptByID resolves an id against the loaded list. Gestures carry ids,
// not records, so the commit always reads current state.
func (m *Model) apptByID(id int64) *appointment.Appointment {
	for _, a := range m.appts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// setDays repositions the visible window and reloads.
func (m *Model) setDays(anchor time.Time) tea.Cmd {
	m.gesture.Cancel()
	m.anchor = anchor
	m.days = dateutil.Days(anchor, m.config.Grid.Days)
	m.rebuildLayout()
	m.loading = true
	return commands.LoadCalendar(m.repo, m.rangeStart(), m.rangeEnd())
}

// setStatus shows a transient status message.
func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusTime = time.Now().Add(3 * time.Second)
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

// Run starts the TUI.
func Run(repo appointment.Repository, cfg *config.Config) error {
	model := New(repo, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
