// Package grid implements the time-grid coordinate model: the linear map
// between calendar time and vertical offsets, slot snapping, and the
// appointment layout projection the calendar renders from.
package grid

import (
	"math"
)

// Default geometry values.
const (
	// DefaultSlotMinutes is the snap granularity.
	DefaultSlotMinutes = 15
	// DefaultStartHour is the first visible hour of the day.
	DefaultStartHour = 8
	// DefaultTotalHours is the visible span of the day.
	DefaultTotalHours = 13
)

// Geometry holds the constants of the vertical coordinate system.
// Every conversion in the calendar must go through one Geometry value;
// an offset computed with one geometry is meaningless under another.
type Geometry struct {
	StartHour     int // first visible hour, e.g. 8
	TotalHours    int // visible span, e.g. 13 (08:00-21:00)
	PixelsPerHour int // vertical units per hour (terminal rows in the TUI)
	SlotMinutes   int // snap granularity in minutes
}

// NewGeometry creates a Geometry with defaults applied to zero fields.
func NewGeometry(startHour, totalHours, pixelsPerHour, slotMinutes int) Geometry {
	g := Geometry{
		StartHour:     startHour,
		TotalHours:    totalHours,
		PixelsPerHour: pixelsPerHour,
		SlotMinutes:   slotMinutes,
	}
	if g.TotalHours <= 0 {
		g.TotalHours = DefaultTotalHours
	}
	if g.SlotMinutes <= 0 {
		g.SlotMinutes = DefaultSlotMinutes
	}
	return g
}

// Valid returns true if the geometry can be used for conversions.
// A zero-height column cannot be read back into time.
func (g Geometry) Valid() bool {
	return g.PixelsPerHour > 0 && g.TotalHours > 0 && g.SlotMinutes > 0
}

// Height returns the total grid height in pixels.
func (g Geometry) Height() int {
	return g.TotalHours * g.PixelsPerHour
}

// TotalMinutes returns the visible span in minutes.
func (g Geometry) TotalMinutes() int {
	return g.TotalHours * 60
}

// StartMinutes returns the first visible minute of day.
func (g Geometry) StartMinutes() int {
	return g.StartHour * 60
}

// EndMinutes returns the minute of day just past the visible span.
func (g Geometry) EndMinutes() int {
	return g.StartMinutes() + g.TotalMinutes()
}

// LastSlotMinutes returns the minute of day of the last representable slot.
func (g Geometry) LastSlotMinutes() int {
	return g.EndMinutes() - g.SlotMinutes
}

// ValidOffset reports whether a pointer offset may be converted at all.
// NaN and infinite values come from degenerate pointer deltas and must
// never reach a commit.
func ValidOffset(offset float64) bool {
	return !math.IsNaN(offset) && !math.IsInf(offset, 0)
}

// PixelOffsetToMinutes converts a vertical offset to raw (unsnapped)
// minutes from the start of the visible day. Offsets above the grid top
// clamp to 0; offsets past the bottom clamp to the last representable
// slot.
func (g Geometry) PixelOffsetToMinutes(offset float64) int {
	if !g.Valid() || !ValidOffset(offset) {
		return 0
	}
	mins := int(offset / float64(g.PixelsPerHour) * 60)
	if mins < 0 {
		return 0
	}
	if max := g.TotalMinutes() - g.SlotMinutes; mins > max {
		return max
	}
	return mins
}

// PixelOffsetToTime converts a vertical offset to an (hour, minute) wall
// clock pair, unsnapped.
func (g Geometry) PixelOffsetToTime(offset float64) (hour, minute int) {
	mins := g.StartMinutes() + g.PixelOffsetToMinutes(offset)
	return mins / 60, mins % 60
}

// TimeToPixelOffset converts a wall clock time to a vertical offset.
// Inverse of PixelOffsetToTime for times inside the visible span.
func (g Geometry) TimeToPixelOffset(hour, minute int) float64 {
	if !g.Valid() {
		return 0
	}
	mins := hour*60 + minute - g.StartMinutes()
	return float64(mins) * float64(g.PixelsPerHour) / 60
}

// MinutesToPixels converts a duration in minutes to a pixel height.
func (g Geometry) MinutesToPixels(minutes int) int {
	return minutes * g.PixelsPerHour / 60
}

// PixelsToMinutes converts a pixel delta to raw minutes. Unlike
// PixelOffsetToMinutes this does not clamp: deltas are signed.
func (g Geometry) PixelsToMinutes(pixels float64) int {
	if !g.Valid() || !ValidOffset(pixels) {
		return 0
	}
	return int(math.Round(pixels / float64(g.PixelsPerHour) * 60))
}

// SnapMinutes rounds raw minutes to the nearest multiple of interval.
// Applied to user-derived times and durations before commit, never to
// already persisted values.
func SnapMinutes(raw, interval int) int {
	if interval <= 0 {
		return raw
	}
	return int(math.Round(float64(raw)/float64(interval))) * interval
}

// SnapOffsetToMinuteOfDay converts a vertical offset to a snapped minute
// of day, clamped to the visible span.
func (g Geometry) SnapOffsetToMinuteOfDay(offset float64) int {
	mins := SnapMinutes(g.PixelOffsetToMinutes(offset), g.SlotMinutes)
	if max := g.TotalMinutes() - g.SlotMinutes; mins > max {
		mins = max
	}
	if mins < 0 {
		mins = 0
	}
	return g.StartMinutes() + mins
}
