package tui

import (
	"time"

	"github.com/peluqapp/peluq/internal/appointment"
	"github.com/peluqapp/peluq/internal/grid"
)

// Region classifies what part of the grid a mouse event landed on.
type Region int

const (
	RegionNone   Region = iota // outside the grid
	RegionEmpty                // open slot
	RegionBody                 // appointment block
	RegionHandle               // bottom edge of an appointment block
)

// Column is one vertical lane of the grid: a (day, stylist) pair with
// its horizontal extent in terminal cells.
type Column struct {
	Ref   ColumnRef
	X     int
	Width int
}

// ColumnLayout maps terminal coordinates to grid columns and pixel
// offsets. Rebuilt whenever the window resizes or the visible stylist
// set changes.
type ColumnLayout struct {
	Columns []Column
	GridTop int // first terminal row of the grid body
	GridH   int // visible grid rows
	TimeW   int // width of the time gutter
}

// Hit is the result of resolving a mouse event against the layout.
type Hit struct {
	Col    ColumnRef
	Offset float64 // vertical pixel offset into the full grid span
	Region Region
	Appt   *appointment.Appointment // set for RegionBody and RegionHandle
}

// NewColumnLayout lays out one column per (day, visible stylist) pair,
// dividing the width left of the time gutter evenly.
func NewColumnLayout(days []time.Time, stylists []*appointment.Stylist, width, gridTop, gridH int) *ColumnLayout {
	l := &ColumnLayout{GridTop: gridTop, GridH: gridH, TimeW: timeColWidth}

	n := len(days) * len(stylists)
	if n == 0 {
		return l
	}

	colWidth := (width - l.TimeW) / n
	if colWidth < 4 {
		colWidth = 4
	}

	x := l.TimeW
	for _, day := range days {
		for _, st := range stylists {
			l.Columns = append(l.Columns, Column{
				Ref:   ColumnRef{Day: day, StylistID: st.ID},
				X:     x,
				Width: colWidth,
			})
			x += colWidth
		}
	}
	return l
}

// ColWidth returns the width of a single column, or the default when
// the layout is empty.
func (l *ColumnLayout) ColWidth() int {
	if len(l.Columns) == 0 {
		return defaultColWidth
	}
	return l.Columns[0].Width
}

// ColumnAt resolves a terminal x coordinate to a column.
func (l *ColumnLayout) ColumnAt(x int) (Column, bool) {
	for _, c := range l.Columns {
		if x >= c.X && x < c.X+c.Width {
			return c, true
		}
	}
	return Column{}, false
}

// RowToOffset converts a terminal row to a vertical pixel offset into
// the grid span, accounting for scroll.
func (l *ColumnLayout) RowToOffset(y, scroll int) (float64, bool) {
	if y < l.GridTop || y >= l.GridTop+l.GridH {
		return 0, false
	}
	return float64(y - l.GridTop + scroll), true
}

// HitTest resolves a mouse event to a column, offset, and region.
// placedFor supplies the projected blocks for a column so body and
// handle hits can be distinguished from empty slots.
func (l *ColumnLayout) HitTest(x, y, scroll int, placedFor func(ColumnRef) []grid.Placed) (Hit, bool) {
	col, ok := l.ColumnAt(x)
	if !ok {
		return Hit{Region: RegionNone}, false
	}
	offset, ok := l.RowToOffset(y, scroll)
	if !ok {
		return Hit{Region: RegionNone}, false
	}

	hit := Hit{Col: col.Ref, Offset: offset, Region: RegionEmpty}
	if placedFor == nil {
		return hit, true
	}

	p := grid.At(placedFor(col.Ref), offset)
	if p == nil {
		return hit, true
	}

	hit.Appt = p.Appt
	if p.Block.IsHandle(offset) {
		hit.Region = RegionHandle
	} else {
		hit.Region = RegionBody
	}
	return hit, true
}
