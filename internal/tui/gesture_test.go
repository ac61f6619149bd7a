package tui

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/peluqapp/peluq/internal/grid"
)

// gestureGeometry is a salon grid spanning 08:00-21:00 at 96px/hour
// with 15-minute slots.
func gestureGeometry() grid.Geometry {
	return grid.Geometry{StartHour: 8, TotalHours: 13, PixelsPerHour: 96, SlotMinutes: 15}
}

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateByClick(t *testing.T) {
	g := NewGesture(gestureGeometry())
	col := ColumnRef{Day: day(3), StylistID: 7} // Tue, stylist A

	if err := g.StartCreate(col, 192); err != nil {
		t.Fatalf("StartCreate: %v", err)
	}
	intent, ok := g.FinishCreate()
	if !ok {
		t.Fatal("click should produce an intent")
	}
	if intent.Start != "10:00" {
		t.Errorf("click at offset 192 = %s, want 10:00", intent.Start)
	}
	if intent.Duration != 0 {
		t.Errorf("click must request the default duration, got %d", intent.Duration)
	}
	if !intent.Day.Equal(day(3)) || intent.StylistID != 7 {
		t.Errorf("intent column = %v/%d", intent.Day, intent.StylistID)
	}
	if g.Active() {
		t.Error("gesture should be idle after finish")
	}
}

func TestCreateByDrag(t *testing.T) {
	g := NewGesture(gestureGeometry())
	col := ColumnRef{Day: day(3), StylistID: 1}

	if err := g.StartCreate(col, 192); err != nil {
		t.Fatal(err)
	}
	g.TrackCreate(240)
	g.TrackCreate(288) // 10:00 -> 11:00

	if top, height, ok := g.Selection(); !ok || top != 192 || height != 96 {
		t.Errorf("selection = %v,%v,%v, want 192,96,true", top, height, ok)
	}

	intent, ok := g.FinishCreate()
	if !ok {
		t.Fatal("drag should produce an intent")
	}
	if intent.Start != "10:00" || intent.Duration != 60 {
		t.Errorf("intent = %s/%dm, want 10:00/60m", intent.Start, intent.Duration)
	}
}

func TestCreateDragUpward(t *testing.T) {
	g := NewGesture(gestureGeometry())

	// Anchor low, drag up: the selection normalizes.
	if err := g.StartCreate(ColumnRef{Day: day(3), StylistID: 1}, 288); err != nil {
		t.Fatal(err)
	}
	g.TrackCreate(192)

	intent, ok := g.FinishCreate()
	if !ok || intent.Start != "10:00" || intent.Duration != 60 {
		t.Errorf("upward drag intent = %+v, %v", intent, ok)
	}
}

func TestClickVsDragBoundary(t *testing.T) {
	geo := gestureGeometry()
	g := NewGesture(geo)
	threshold := g.clickDragThreshold()

	// At the threshold: still a click, default duration.
	if err := g.StartCreate(ColumnRef{Day: day(3), StylistID: 1}, 192); err != nil {
		t.Fatal(err)
	}
	g.TrackCreate(192 + threshold)
	intent, ok := g.FinishCreate()
	if !ok || intent.Duration != 0 {
		t.Errorf("drag at threshold should stay a click, got %+v", intent)
	}

	// Past the threshold: explicit duration, floored at one slot.
	if err := g.StartCreate(ColumnRef{Day: day(3), StylistID: 1}, 192); err != nil {
		t.Fatal(err)
	}
	g.TrackCreate(192 + threshold + 2)
	intent, ok = g.FinishCreate()
	if !ok || intent.Duration < geo.SlotMinutes {
		t.Errorf("past threshold wants at least one slot, got %+v", intent)
	}
}

func TestCreateIgnoresBadOffsets(t *testing.T) {
	g := NewGesture(gestureGeometry())

	if err := g.StartCreate(ColumnRef{Day: day(3), StylistID: 1}, math.NaN()); !errors.Is(err, ErrGeometryUnreadable) {
		t.Errorf("NaN anchor error = %v", err)
	}

	if err := g.StartCreate(ColumnRef{Day: day(3), StylistID: 1}, 192); err != nil {
		t.Fatal(err)
	}
	g.TrackCreate(math.NaN()) // dropped; last known position wins
	g.TrackCreate(288)
	g.TrackCreate(math.Inf(1)) // dropped

	intent, ok := g.FinishCreate()
	if !ok || intent.Duration != 60 {
		t.Errorf("bad offsets should not corrupt the gesture: %+v, %v", intent, ok)
	}
}

func TestCreateZeroGeometryAborts(t *testing.T) {
	g := NewGesture(grid.Geometry{}) // zero-height column

	err := g.StartCreate(ColumnRef{Day: day(3), StylistID: 1}, 100)
	if !errors.Is(err, ErrGeometryUnreadable) {
		t.Errorf("error = %v, want ErrGeometryUnreadable", err)
	}
	if g.Active() {
		t.Error("aborted gesture must stay idle")
	}
}

func TestResizeCommit(t *testing.T) {
	g := NewGesture(gestureGeometry())

	// 30-minute service, handle dragged down 48px = 30 minutes.
	if err := g.StartResize(42, 30, 240); err != nil {
		t.Fatal(err)
	}
	g.TrackResize(288)

	if cand, ok := g.CandidateDuration(); !ok || cand != 60 {
		t.Errorf("candidate = %d, want 60", cand)
	}

	intent, ok := g.FinishResize()
	if !ok {
		t.Fatal("resize should commit")
	}
	if intent.AppointmentID != 42 || intent.Duration != 60 {
		t.Errorf("intent = %+v, want id 42 duration 60", intent)
	}
}

func TestResizeMinimumOneSlot(t *testing.T) {
	g := NewGesture(gestureGeometry())

	if err := g.StartResize(42, 30, 240); err != nil {
		t.Fatal(err)
	}
	g.TrackResize(-2000) // enormous negative drag

	intent, ok := g.FinishResize()
	if !ok {
		t.Fatal("shrink below start should still commit the floor")
	}
	if intent.Duration != 15 {
		t.Errorf("duration = %d, want one slot (15)", intent.Duration)
	}
}

func TestResizeNoMovementIsNoOp(t *testing.T) {
	g := NewGesture(gestureGeometry())

	if err := g.StartResize(42, 30, 240); err != nil {
		t.Fatal(err)
	}
	g.TrackResize(243) // below snap resolution

	if _, ok := g.FinishResize(); ok {
		t.Error("sub-slot wiggle must not commit")
	}
	if g.Active() {
		t.Error("no-op finish must still clear transient state")
	}
}

func TestMoveCommit(t *testing.T) {
	geo := gestureGeometry()
	g := NewGesture(geo)

	if err := g.StartMove(42); err != nil {
		t.Fatal(err)
	}
	if id, ok := g.MovingID(); !ok || id != 42 {
		t.Errorf("MovingID = %d, %v", id, ok)
	}

	// Drag across Monday/stylist A, drop at 14:00 on Wednesday/stylist B.
	g.DragOver(ColumnRef{Day: day(2), StylistID: 1}, 100)
	g.DragOver(ColumnRef{Day: day(4), StylistID: 2}, geo.TimeToPixelOffset(14, 0))

	intent, ok := g.FinishMove()
	if !ok {
		t.Fatal("drop on a column should commit")
	}
	if intent.AppointmentID != 42 || intent.StylistID != 2 || !intent.Day.Equal(day(4)) {
		t.Errorf("intent = %+v", intent)
	}
	if intent.Start != "14:00" {
		t.Errorf("start = %s, want 14:00", intent.Start)
	}
}

func TestMoveDropOutsideCancels(t *testing.T) {
	g := NewGesture(gestureGeometry())

	if err := g.StartMove(42); err != nil {
		t.Fatal(err)
	}
	// Released without ever crossing a valid column.
	if _, ok := g.FinishMove(); ok {
		t.Error("drop outside every column must not mutate")
	}
	if g.Active() {
		t.Error("cancelled move must clear transient state")
	}
}

func TestMutualExclusion(t *testing.T) {
	g := NewGesture(gestureGeometry())

	if err := g.StartCreate(ColumnRef{Day: day(3), StylistID: 1}, 192); err != nil {
		t.Fatal(err)
	}
	g.TrackCreate(240)

	if err := g.StartResize(42, 30, 100); !errors.Is(err, ErrGestureActive) {
		t.Errorf("resize during create error = %v, want ErrGestureActive", err)
	}
	if err := g.StartMove(42); !errors.Is(err, ErrGestureActive) {
		t.Errorf("move during create error = %v, want ErrGestureActive", err)
	}

	// The rejected starts must not have corrupted the create anchor.
	intent, ok := g.FinishCreate()
	if !ok || intent.Start != "10:00" || intent.Duration != 30 {
		t.Errorf("create survived exclusion wrong: %+v, %v", intent, ok)
	}

	// And the other direction.
	if err := g.StartResize(42, 30, 240); err != nil {
		t.Fatal(err)
	}
	if err := g.StartCreate(ColumnRef{Day: day(3), StylistID: 1}, 0); !errors.Is(err, ErrGestureActive) {
		t.Errorf("create during resize error = %v", err)
	}
	g.TrackResize(288)
	if intent, ok := g.FinishResize(); !ok || intent.Duration != 60 {
		t.Errorf("resize survived exclusion wrong: %+v", intent)
	}
}

func TestCancelFromAnyPhase(t *testing.T) {
	g := NewGesture(gestureGeometry())

	_ = g.StartCreate(ColumnRef{Day: day(3), StylistID: 1}, 192)
	g.Cancel()
	if g.Active() {
		t.Error("cancel from creating")
	}

	_ = g.StartMove(42)
	g.Cancel()
	if g.Active() {
		t.Error("cancel from moving")
	}

	// After cancel a fresh gesture starts cleanly.
	if err := g.StartResize(1, 30, 0); err != nil {
		t.Errorf("start after cancel: %v", err)
	}
}
