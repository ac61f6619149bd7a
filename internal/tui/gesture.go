package tui

import (
	"errors"
	"time"

	"github.com/peluqapp/peluq/internal/appointment"
	"github.com/peluqapp/peluq/internal/grid"
)

// Gesture errors.
var (
	ErrGestureActive      = errors.New("another gesture is already active")
	ErrGestureIdle        = errors.New("no gesture in progress")
	ErrGeometryUnreadable = errors.New("grid geometry cannot be read")
)

// GesturePhase is the state of the supervising gesture machine. The
// three interaction protocols are sub-machines entered only from Idle
// and always returning to Idle, so at most one owns the pointer stream.
type GesturePhase int

const (
	PhaseIdle GesturePhase = iota
	PhaseCreating
	PhaseResizing
	PhaseMoving
)

// ColumnRef identifies a (day, stylist) column. Gestures capture a
// ColumnRef at start and carry it to the end: filtering the visible
// stylist set mid-gesture never retargets an in-flight gesture.
type ColumnRef struct {
	Day       time.Time
	StylistID int64
}

// CreateIntent asks the modal host to open a prefilled booking form.
// Duration is 0 for a plain click, meaning "use the service default".
type CreateIntent struct {
	Day       time.Time
	StylistID int64
	Start     string // "HH:MM", snapped
	Duration  int    // minutes, snapped; 0 = service default
}

// ResizeIntent commits a new duration override for an appointment.
type ResizeIntent struct {
	AppointmentID int64
	Duration      int // minutes, snapped, at least one slot
}

// MoveIntent commits a reschedule: new day, stylist, and start time.
// The appointment's duration is deliberately absent; it never changes.
type MoveIntent struct {
	AppointmentID int64
	Day           time.Time
	StylistID     int64
	Start         string // "HH:MM", snapped
}

// Gesture is the supervising state machine over the three
// direct-manipulation protocols. It owns all transient pointer state;
// nothing here touches committed appointment data. Completion returns
// an intent for the controller to commit.
type Gesture struct {
	geo   grid.Geometry
	phase GesturePhase

	// Create: anchor and last known pointer offset inside the column.
	col      ColumnRef
	anchorY  float64
	currentY float64

	// Resize: the appointment, its duration when the drag started, and
	// the pointer anchor.
	apptID        int64
	startDuration int

	// Move: drop target tracked during drag-over. haveTarget stays
	// false until the pointer crosses a valid column, so a drop outside
	// every column cancels with no mutation.
	target     ColumnRef
	targetY    float64
	haveTarget bool
}

// NewGesture creates an idle gesture machine over the given geometry.
func NewGesture(geo grid.Geometry) *Gesture {
	return &Gesture{geo: geo}
}

// Phase returns the current supervising state.
func (g *Gesture) Phase() GesturePhase { return g.phase }

// Active returns true while any protocol owns the pointer stream.
func (g *Gesture) Active() bool { return g.phase != PhaseIdle }

// Cancel aborts whatever is in progress and clears all transient state.
// Safe to call from any phase; every exit path funnels through here.
func (g *Gesture) Cancel() {
	g.phase = PhaseIdle
	g.col = ColumnRef{}
	g.anchorY = 0
	g.currentY = 0
	g.apptID = 0
	g.startDuration = 0
	g.target = ColumnRef{}
	g.targetY = 0
	g.haveTarget = false
}

// clickDragThreshold is the drag height at or below which a create
// gesture counts as a plain click. Half a slot of pixels, floored at 1,
// so the boundary scales with the geometry instead of being an absolute
// pixel count.
func (g *Gesture) clickDragThreshold() float64 {
	t := float64(g.geo.MinutesToPixels(g.geo.SlotMinutes)) / 2
	if t < 1 {
		t = 1
	}
	return t
}

// ---------------------------------------------------------------------------
// Create-by-drag: Idle -> Creating (anchored/tracking) -> Idle

// StartCreate anchors a selection in an empty region of a column.
// Refused while another gesture is active or the geometry is unreadable.
func (g *Gesture) StartCreate(col ColumnRef, y float64) error {
	if g.phase != PhaseIdle {
		return ErrGestureActive
	}
	if !g.geo.Valid() {
		return ErrGeometryUnreadable
	}
	if !grid.ValidOffset(y) {
		return ErrGeometryUnreadable
	}
	g.phase = PhaseCreating
	g.col = col
	g.anchorY = y
	g.currentY = y
	return nil
}

// TrackCreate records pointer movement while the selection grows.
// Purely visual; committed data is untouched. Malformed offsets are
// dropped so the last known good position finalizes the gesture.
func (g *Gesture) TrackCreate(y float64) {
	if g.phase != PhaseCreating || !grid.ValidOffset(y) {
		return
	}
	g.currentY = y
}

// Selection returns the current selection rectangle while creating.
func (g *Gesture) Selection() (top, height float64, ok bool) {
	if g.phase != PhaseCreating {
		return 0, 0, false
	}
	top = min(g.anchorY, g.currentY)
	height = g.currentY - g.anchorY
	if height < 0 {
		height = -height
	}
	return top, height, true
}

// FinishCreate converts the selection to a snapped creation intent and
// returns to Idle. A drag at or below the click threshold is a plain
// click: the intent carries no explicit duration. A taller drag derives
// the duration from the snapped edges, floored at one slot.
func (g *Gesture) FinishCreate() (CreateIntent, bool) {
	if g.phase != PhaseCreating {
		return CreateIntent{}, false
	}
	top, height, _ := g.Selection()
	col := g.col
	g.Cancel()

	intent := CreateIntent{Day: col.Day, StylistID: col.StylistID}

	if height <= g.clickDragThreshold() {
		// Simple click: snap the anchor, use the default duration.
		intent.Start = appointment.MinutesToTime(g.geo.SnapOffsetToMinuteOfDay(top))
		return intent, true
	}

	startMins := g.geo.SnapOffsetToMinuteOfDay(top)
	endMins := g.geo.SnapOffsetToMinuteOfDay(top + height)
	duration := endMins - startMins
	if duration < g.geo.SlotMinutes {
		duration = g.geo.SlotMinutes
	}
	intent.Start = appointment.MinutesToTime(startMins)
	intent.Duration = duration
	return intent, true
}

// ---------------------------------------------------------------------------
// Resize-by-drag: Idle -> Resizing -> Idle

// StartResize begins resizing from an appointment's handle row.
// startDuration is the appointment's current effective duration.
func (g *Gesture) StartResize(apptID int64, startDuration int, y float64) error {
	if g.phase != PhaseIdle {
		return ErrGestureActive
	}
	if !g.geo.Valid() || !grid.ValidOffset(y) {
		return ErrGeometryUnreadable
	}
	g.phase = PhaseResizing
	g.apptID = apptID
	g.startDuration = startDuration
	g.anchorY = y
	g.currentY = y
	return nil
}

// TrackResize records pointer movement during a resize.
func (g *Gesture) TrackResize(y float64) {
	if g.phase != PhaseResizing || !grid.ValidOffset(y) {
		return
	}
	g.currentY = y
}

// CandidateDuration returns the live snapped duration the resize would
// commit, floored at one slot. The appointment record stays untouched
// until FinishResize.
func (g *Gesture) CandidateDuration() (int, bool) {
	if g.phase != PhaseResizing {
		return 0, false
	}
	delta := g.geo.PixelsToMinutes(g.currentY - g.anchorY)
	candidate := grid.SnapMinutes(g.startDuration+delta, g.geo.SlotMinutes)
	if candidate < g.geo.SlotMinutes {
		candidate = g.geo.SlotMinutes
	}
	return candidate, true
}

// ResizingID returns the appointment being resized.
func (g *Gesture) ResizingID() (int64, bool) {
	if g.phase != PhaseResizing {
		return 0, false
	}
	return g.apptID, true
}

// FinishResize returns the commit intent and clears transient state.
// ok is false when the snapped duration never left its starting value:
// the commit is a no-op but the state is cleared regardless.
func (g *Gesture) FinishResize() (ResizeIntent, bool) {
	if g.phase != PhaseResizing {
		return ResizeIntent{}, false
	}
	candidate, _ := g.CandidateDuration()
	id := g.apptID
	start := g.startDuration
	g.Cancel()

	if candidate == start {
		return ResizeIntent{}, false
	}
	return ResizeIntent{AppointmentID: id, Duration: candidate}, true
}

// ---------------------------------------------------------------------------
// Reschedule-by-drag (move): Idle -> Moving -> Idle

// StartMove begins dragging an appointment by identity. Only the id is
// carried; the record is resolved against the current list at drop time
// so the payload cannot go stale.
func (g *Gesture) StartMove(apptID int64) error {
	if g.phase != PhaseIdle {
		return ErrGestureActive
	}
	if !g.geo.Valid() {
		return ErrGeometryUnreadable
	}
	g.phase = PhaseMoving
	g.apptID = apptID
	return nil
}

// DragOver records the candidate drop column while the pointer crosses
// it. This drives the highlight affordance; it is transient UI state.
func (g *Gesture) DragOver(col ColumnRef, y float64) {
	if g.phase != PhaseMoving || !grid.ValidOffset(y) {
		return
	}
	g.target = col
	g.targetY = y
	g.haveTarget = true
}

// MovingID returns the appointment being dragged.
func (g *Gesture) MovingID() (int64, bool) {
	if g.phase != PhaseMoving {
		return 0, false
	}
	return g.apptID, true
}

// DropTarget returns the current candidate column, if any.
func (g *Gesture) DropTarget() (ColumnRef, bool) {
	if g.phase != PhaseMoving || !g.haveTarget {
		return ColumnRef{}, false
	}
	return g.target, true
}

// FinishMove converts the drop position to a snapped reschedule intent.
// ok is false when the pointer was released outside every column: the
// gesture cancels with no mutation.
func (g *Gesture) FinishMove() (MoveIntent, bool) {
	if g.phase != PhaseMoving {
		return MoveIntent{}, false
	}
	id := g.apptID
	col := g.target
	y := g.targetY
	have := g.haveTarget
	g.Cancel()

	if !have {
		return MoveIntent{}, false
	}
	return MoveIntent{
		AppointmentID: id,
		Day:           col.Day,
		StylistID:     col.StylistID,
		Start:         appointment.MinutesToTime(g.geo.SnapOffsetToMinuteOfDay(y)),
	}, true
}
