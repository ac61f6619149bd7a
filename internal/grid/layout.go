package grid

import (
	"sort"

	"github.com/peluqapp/peluq/internal/appointment"
)

// Block is the vertical placement of an appointment inside a column.
type Block struct {
	Top    int // pixel offset of the start time
	Height int // pixel height of the effective duration
}

// Placed pairs an appointment with its computed block.
type Placed struct {
	Appt  *appointment.Appointment
	Block Block
}

// BlockFor computes the block for a start time (minute of day) and an
// effective duration. The height never collapses below one slot so a
// zero or negative duration still renders a clickable block.
func (g Geometry) BlockFor(startMinuteOfDay, durationMinutes int) Block {
	top := g.MinutesToPixels(startMinuteOfDay - g.StartMinutes())
	height := g.MinutesToPixels(durationMinutes)
	if min := g.MinutesToPixels(g.SlotMinutes); height < min {
		height = min
	}
	if height < 1 {
		height = 1
	}
	return Block{Top: top, Height: height}
}

// Project lays out the appointments of one column (one stylist on one
// day), sorted by start time. Appointments whose service cannot be
// resolved and that carry no override are skipped rather than rendered
// with a broken height; cancelled appointments are skipped outright.
//
// The projection is pure: it reads only persisted appointment state,
// never transient gesture state, so the same inputs always produce the
// same blocks.
func Project(appts []*appointment.Appointment, services map[int64]*appointment.Service, g Geometry) []Placed {
	var placed []Placed
	for _, a := range appts {
		if a == nil || a.IsCancelled() {
			continue
		}
		dur := a.EffectiveDuration(services[a.ServiceID])
		if dur <= 0 {
			continue
		}
		start := appointment.TimeToMinutes(a.Start)
		if start >= g.EndMinutes() || start+dur <= g.StartMinutes() {
			continue
		}
		placed = append(placed, Placed{Appt: a, Block: g.BlockFor(start, dur)})
	}
	sort.SliceStable(placed, func(i, j int) bool {
		return placed[i].Block.Top < placed[j].Block.Top
	})
	return placed
}

// At returns the placed appointment covering the given offset, or nil.
// When blocks overlap (same-stylist double booking renders stacked, in
// draw order) the last drawn block wins, matching what is visible.
func At(placed []Placed, offset float64) *Placed {
	if !ValidOffset(offset) {
		return nil
	}
	px := int(offset)
	var hit *Placed
	for i := range placed {
		b := placed[i].Block
		if px >= b.Top && px < b.Top+b.Height {
			hit = &placed[i]
		}
	}
	return hit
}

// IsHandle reports whether the offset falls on the resize handle of the
// block: its bottom row. The rest of the block is the body. A block at
// the minimum height of one row is all body, so short appointments stay
// clickable and draggable; their duration is still adjustable through
// the detail flow.
func (b Block) IsHandle(offset float64) bool {
	if b.Height <= 1 {
		return false
	}
	if !ValidOffset(offset) {
		return false
	}
	px := int(offset)
	return px == b.Top+b.Height-1
}
