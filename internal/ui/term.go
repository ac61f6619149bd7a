package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Confirmed bookings: green
	colorConfirmed = color.New(color.FgGreen, color.Bold)

	// Unconfirmed bookings: plain
	colorUnconfirmed = color.New(color.FgWhite)

	// Late clients: yellow to make it pop
	colorLate = color.New(color.FgYellow, color.Bold)

	// Cancelled bookings: dim with strikethrough where supported
	colorCancelled = color.New(color.FgWhite, color.Faint, color.CrossedOut)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
