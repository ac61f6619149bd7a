package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/peluqapp/peluq/internal/appointment"
	"github.com/peluqapp/peluq/internal/config"
	"github.com/peluqapp/peluq/internal/tui/commands"
)

// fakeRepo records mutations for assertions.
type fakeRepo struct {
	appts    []*appointment.Appointment
	services []*appointment.Service
	stylists []*appointment.Stylist

	detailCalls []appointment.DetailsUpdate
	statusCalls []appointment.Status
	listCalls   int
	listStart   time.Time
	listEnd     time.Time
	failDetails error
}

func (f *fakeRepo) CreateAppointment(_ context.Context, appt *appointment.Appointment) error {
	appt.ID = int64(len(f.appts) + 1)
	f.appts = append(f.appts, appt)
	return nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, id int64) (*appointment.Appointment, error) {
	for _, a := range f.appts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, appointment.ErrAppointmentNotFound
}

func (f *fakeRepo) ListAppointments(_ context.Context, start, end time.Time) ([]*appointment.Appointment, error) {
	f.listCalls++
	f.listStart, f.listEnd = start, end
	return f.appts, nil
}

func (f *fakeRepo) UpdateAppointmentDetails(_ context.Context, id int64, upd appointment.DetailsUpdate) error {
	if f.failDetails != nil {
		return f.failDetails
	}
	f.detailCalls = append(f.detailCalls, upd)
	return nil
}

func (f *fakeRepo) UpdateAppointmentStatus(_ context.Context, _ int64, status appointment.Status) error {
	f.statusCalls = append(f.statusCalls, status)
	return nil
}

func (f *fakeRepo) ListServices(context.Context) ([]*appointment.Service, error) {
	return f.services, nil
}

func (f *fakeRepo) ListStylists(context.Context) ([]*appointment.Stylist, error) {
	return f.stylists, nil
}

func (f *fakeRepo) GetClientByID(context.Context, int64) (*appointment.Client, error) {
	return &appointment.Client{ID: 1, Name: "Carmen"}, nil
}

func (f *fakeRepo) FindOrCreateClient(_ context.Context, name string) (*appointment.Client, error) {
	return &appointment.Client{ID: 1, Name: name}, nil
}

func (f *fakeRepo) Close() error { return nil }

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Grid.Days = 1
	return cfg
}

// loadedModel builds a model with a loaded calendar and a fixed window.
func loadedModel(t *testing.T, repo *fakeRepo) Model {
	t.Helper()
	m := New(repo, testConfig())

	var tm tea.Model = *m
	tm, _ = tm.(Model).Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	tm, _ = tm.(Model).Update(commands.CalendarLoadedMsg{
		Appointments: repo.appts,
		Services:     repo.services,
		Stylists:     repo.stylists,
	})
	return tm.(Model)
}

func calendarRepo() *fakeRepo {
	return &fakeRepo{
		services: []*appointment.Service{
			{ID: 1, Name: "Cut", Duration: 30, Price: 25},
			{ID: 2, Name: "Color", Duration: 90, Price: 80},
		},
		stylists: []*appointment.Stylist{
			{ID: 1, Name: "Ana", Color: "#f38ba8"},
			{ID: 2, Name: "Marco", Color: "#89b4fa"},
		},
		appts: []*appointment.Appointment{
			{
				ID:        1,
				ClientID:  1,
				ServiceID: 1,
				StylistID: 1,
				Date:      truncToday(),
				Start:     "10:00",
				Status:    appointment.StatusUnconfirmed,
			},
		},
	}
}

func truncToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// gridRow returns the terminal row for a minute-of-day in the loaded
// model's geometry.
func gridRow(m Model, minuteOfDay int) int {
	return headerRows + m.geo.MinutesToPixels(minuteOfDay-m.geo.StartMinutes()) - m.scrollOffset
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func TestMouseResizeCommitsOverride(t *testing.T) {
	repo := calendarRepo()
	m := loadedModel(t, repo)

	colX := m.layout.Columns[0].X
	// 30-minute cut in a 15-minute grid: block rows 10:00 and 10:15;
	// the handle is the 10:15 row.
	handleY := gridRow(m, 10*60+15)

	var tm tea.Model = m
	tm, _ = tm.(Model).Update(press(colX, handleY))
	if tm.(Model).gesture.Phase() != PhaseResizing {
		t.Fatalf("phase = %d after handle press, want resizing", tm.(Model).gesture.Phase())
	}

	// Drag down two slots: 30 minutes more.
	tm, _ = tm.(Model).Update(motion(colX, handleY+2))
	tm, cmd := tm.(Model).Update(release(colX, handleY+2))
	if cmd == nil {
		t.Fatal("release returned no commit command")
	}
	cmd()

	if len(repo.detailCalls) != 1 {
		t.Fatalf("detail calls = %d, want 1", len(repo.detailCalls))
	}
	upd := repo.detailCalls[0]
	if upd.DurationOverride == nil || *upd.DurationOverride != 60 {
		t.Errorf("override = %v, want 60", upd.DurationOverride)
	}
	if upd.Date != nil || upd.Start != nil || upd.StylistID != nil {
		t.Error("resize touched fields beyond the duration override")
	}
	if tm.(Model).gesture.Active() {
		t.Error("gesture still active after commit")
	}
}

func TestMoveCommitsReschedule(t *testing.T) {
	repo := calendarRepo()
	m := loadedModel(t, repo)

	col0 := m.layout.Columns[0]
	col1 := m.layout.Columns[1]
	bodyY := gridRow(m, 10*60)

	var tm tea.Model = m
	tm, _ = tm.(Model).Update(press(col0.X, bodyY))
	// Press on a body is held until motion decides click vs move.
	if tm.(Model).gesture.Active() {
		t.Fatal("gesture started before motion")
	}

	targetY := gridRow(m, 14*60)
	tm, _ = tm.(Model).Update(motion(col1.X, targetY))
	if tm.(Model).gesture.Phase() != PhaseMoving {
		t.Fatalf("phase = %d after motion, want moving", tm.(Model).gesture.Phase())
	}

	_, cmd := tm.(Model).Update(release(col1.X, targetY))
	if cmd == nil {
		t.Fatal("release returned no commit command")
	}
	cmd()

	if len(repo.detailCalls) != 1 {
		t.Fatalf("detail calls = %d, want 1", len(repo.detailCalls))
	}
	upd := repo.detailCalls[0]
	if upd.Start == nil || *upd.Start != "14:00" {
		t.Errorf("start = %v, want 14:00", upd.Start)
	}
	if upd.StylistID == nil || *upd.StylistID != 2 {
		t.Errorf("stylist = %v, want 2", upd.StylistID)
	}
	if upd.DurationOverride != nil {
		t.Error("move touched the duration")
	}
}

func TestClickOnBodyOpensDetails(t *testing.T) {
	repo := calendarRepo()
	m := loadedModel(t, repo)

	bodyY := gridRow(m, 10*60)
	var tm tea.Model = m
	tm, _ = tm.(Model).Update(press(m.layout.Columns[0].X, bodyY))
	tm, _ = tm.(Model).Update(release(m.layout.Columns[0].X, bodyY))

	got := tm.(Model)
	if got.mode != ModeModal || got.modalType != ModalDetail {
		t.Fatalf("mode=%d modal=%d, want detail modal", got.mode, got.modalType)
	}
	if got.detailAppt == nil || got.detailAppt.ID != 1 {
		t.Error("detail modal lost the appointment")
	}
}

func TestNewSurvivesUnknownTheme(t *testing.T) {
	cfg := testConfig()
	cfg.UI.Theme = "no-such-theme"

	m := New(calendarRepo(), cfg)
	if m.theme == nil {
		t.Fatal("model built without a theme")
	}
	if m.View() == "" {
		t.Fatal("empty render")
	}
}

func TestLoadQueriesVisibleDaysOnly(t *testing.T) {
	repo := calendarRepo()
	cfg := config.Default()
	cfg.Grid.Days = 3
	m := New(repo, cfg)

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init returned no load command")
	}
	cmd()

	// The store lists [start, end] inclusive, so the query ends on the
	// last visible day rather than the day after it.
	if !repo.listStart.Equal(m.days[0]) {
		t.Errorf("query start = %s, want first day %s", repo.listStart, m.days[0])
	}
	if !repo.listEnd.Equal(m.days[len(m.days)-1]) {
		t.Errorf("query end = %s, want last visible day %s", repo.listEnd, m.days[len(m.days)-1])
	}
}

func TestOneSlotAppointmentPressHoldsBody(t *testing.T) {
	repo := calendarRepo()
	short := 15
	repo.appts = []*appointment.Appointment{{
		ID:               3,
		ClientID:         1,
		ServiceID:        1,
		StylistID:        1,
		Date:             truncToday(),
		Start:            "16:00",
		DurationOverride: &short,
		Status:           appointment.StatusConfirmed,
	}}
	m := loadedModel(t, repo)

	colX := m.layout.Columns[0].X
	y := gridRow(m, 16*60)

	// The block's only row is body, so the press is held for click vs
	// move instead of starting a resize.
	var tm tea.Model = m
	tm, _ = tm.(Model).Update(press(colX, y))
	got := tm.(Model)
	if got.gesture.Active() {
		t.Fatalf("phase = %d after press on a one-row block, want idle", got.gesture.Phase())
	}
	if got.pressAppt == nil || got.pressAppt.ID != 3 {
		t.Fatal("press did not hold the appointment")
	}

	tm, _ = tm.(Model).Update(release(colX, y))
	got = tm.(Model)
	if got.mode != ModeModal || got.modalType != ModalDetail {
		t.Fatalf("mode=%d modal=%d, want detail modal", got.mode, got.modalType)
	}
}

func TestSameStatusIssuesNoCall(t *testing.T) {
	repo := calendarRepo()
	m := loadedModel(t, repo)

	var tm tea.Model = m
	tm, _ = tm.(Model).openDetailModal(repo.appts[0])

	// "1" selects unconfirmed, which it already is.
	tm, cmd := tm.(Model).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	if cmd != nil {
		cmd()
	}
	if len(repo.statusCalls) != 0 {
		t.Fatalf("status calls = %d, want 0 for same-status pick", len(repo.statusCalls))
	}
	if tm.(Model).mode != ModeNormal {
		t.Error("menu did not close on same-status pick")
	}
}

func TestStatusChangeCommits(t *testing.T) {
	repo := calendarRepo()
	m := loadedModel(t, repo)

	var tm tea.Model = m
	tm, _ = tm.(Model).openDetailModal(repo.appts[0])
	_, cmd := tm.(Model).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	if cmd == nil {
		t.Fatal("status pick returned no command")
	}
	cmd()

	if len(repo.statusCalls) != 1 || repo.statusCalls[0] != appointment.StatusConfirmed {
		t.Fatalf("status calls = %v, want [confirmed]", repo.statusCalls)
	}
}

func TestCommitFailureReloads(t *testing.T) {
	repo := calendarRepo()
	m := loadedModel(t, repo)
	repo.failDetails = errors.New("disk full")

	handleY := gridRow(m, 10*60+15)
	colX := m.layout.Columns[0].X

	var tm tea.Model = m
	tm, _ = tm.(Model).Update(press(colX, handleY))
	tm, _ = tm.(Model).Update(motion(colX, handleY+2))
	_, cmd := tm.(Model).Update(release(colX, handleY+2))
	if cmd == nil {
		t.Fatal("release returned no command")
	}
	msg := cmd()
	errMsg, ok := msg.(commands.ErrMsg)
	if !ok {
		t.Fatalf("commit failure produced %T, want ErrMsg", msg)
	}

	before := repo.listCalls
	_, reload := tm.(Model).Update(errMsg)
	if reload == nil {
		t.Fatal("error handling returned no reload command")
	}
	reload()
	if repo.listCalls != before+1 {
		t.Error("grid did not re-sync from the store after a failed commit")
	}
}

func TestFilterKeepsGestureColumn(t *testing.T) {
	repo := calendarRepo()
	m := loadedModel(t, repo)

	// Start a create drag in Marco's column.
	col1 := m.layout.Columns[1]
	y := gridRow(m, 11*60)
	var tm tea.Model = m
	tm, _ = tm.(Model).Update(press(col1.X, y))
	got := tm.(Model)
	if got.gesture.Phase() != PhaseCreating {
		t.Fatalf("phase = %d, want creating", got.gesture.Phase())
	}

	// Hide Marco mid-gesture. The gesture keeps the captured column.
	got.visible = map[int64]bool{1: true}
	got.rebuildLayout()

	intent, ok := got.gesture.FinishCreate()
	if !ok {
		t.Fatal("gesture did not finish")
	}
	if intent.StylistID != 2 {
		t.Errorf("intent stylist = %d, want the captured 2", intent.StylistID)
	}
}

func TestFilterTogglesVisibleSet(t *testing.T) {
	repo := calendarRepo()
	m := loadedModel(t, repo)

	var tm tea.Model = m
	tm, _ = tm.(Model).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	tm, _ = tm.(Model).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})

	got := tm.(Model)
	vis := got.visibleStylists()
	if len(vis) != 1 || vis[0].ID != 2 {
		t.Fatalf("visible = %v, want only stylist 2", vis)
	}
	if len(got.layout.Columns) != 1 {
		t.Errorf("columns = %d after narrowing, want 1", len(got.layout.Columns))
	}

	tm, _ = tm.(Model).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	if got := tm.(Model); len(got.visibleStylists()) != 2 {
		t.Error("'a' did not restore every stylist")
	}
}

func TestCreateDragOpensPrefilledForm(t *testing.T) {
	repo := calendarRepo()
	m := loadedModel(t, repo)

	col0 := m.layout.Columns[0]
	startY := gridRow(m, 12*60)

	var tm tea.Model = m
	tm, _ = tm.(Model).Update(press(col0.X, startY))
	tm, _ = tm.(Model).Update(motion(col0.X, startY+4)) // one hour down
	tm, _ = tm.(Model).Update(release(col0.X, startY+4))

	got := tm.(Model)
	if got.mode != ModeModal || got.modalType != ModalCreate {
		t.Fatalf("mode=%d modal=%d, want create modal", got.mode, got.modalType)
	}
	if got.pending.Start != "12:00" {
		t.Errorf("pending start = %s, want 12:00", got.pending.Start)
	}
	if got.pending.Duration != 60 {
		t.Errorf("pending duration = %d, want 60", got.pending.Duration)
	}
	if got.pending.StylistID != 1 {
		t.Errorf("pending stylist = %d, want 1", got.pending.StylistID)
	}
}

func TestViewRendersWithoutPanic(t *testing.T) {
	repo := calendarRepo()
	m := loadedModel(t, repo)

	out := m.View()
	if out == "" {
		t.Fatal("empty render")
	}

	// Render stays stable under a filtered subset.
	m.visible = map[int64]bool{2: true}
	m.rebuildLayout()
	if out := m.View(); out == "" {
		t.Fatal("empty render with filtered stylists")
	}
}
