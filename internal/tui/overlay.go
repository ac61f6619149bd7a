package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// composite draws a rendered box centered over the base view, splicing
// it into the base line by line so the grid stays visible around it.
func composite(base, box string, width, height int) string {
	if width <= 0 || height <= 0 || box == "" {
		return base
	}

	boxLines := strings.Split(box, "\n")
	boxH := len(boxLines)
	boxW := 0
	for _, line := range boxLines {
		if w := lipgloss.Width(line); w > boxW {
			boxW = w
		}
	}
	if boxW > width {
		boxW = width
	}
	if boxH > height {
		boxLines = boxLines[:height]
		boxH = height
	}

	top := (height - boxH) / 2
	left := (width - boxW) / 2
	if top < 0 {
		top = 0
	}
	if left < 0 {
		left = 0
	}

	baseLines := normalizeLines(base, width, height)

	out := make([]string, 0, height)
	for row := 0; row < height; row++ {
		if row < top || row >= top+boxH {
			out = append(out, baseLines[row])
			continue
		}
		boxLine := boxLines[row-top]
		if w := lipgloss.Width(boxLine); w > boxW {
			boxLine = ansi.Cut(boxLine, 0, boxW)
		} else if w < boxW {
			boxLine += strings.Repeat(" ", boxW-w)
		}
		baseLine := baseLines[row]
		leftSlice := ansi.Cut(baseLine, 0, left)
		rightSlice := ansi.Cut(baseLine, left+boxW, width)
		out = append(out, leftSlice+boxLine+ansi.ResetStyle+rightSlice)
	}
	return strings.Join(out, "\n")
}

// normalizeLines pads and clips the base render to exactly width x height.
func normalizeLines(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		w := lipgloss.Width(line)
		if w > width {
			lines[i] = ansi.Cut(line, 0, width)
		} else if w < width {
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return lines
}
