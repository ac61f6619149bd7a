package ui

import (
	"fmt"
	"strings"

	"github.com/peluqapp/peluq/internal/appointment"
)

// formatStatus renders a status with its color.
func formatStatus(s appointment.Status) string {
	switch s {
	case appointment.StatusConfirmed:
		return colorConfirmed.Sprint(s)
	case appointment.StatusLate:
		return colorLate.Sprint(s)
	case appointment.StatusCancelled:
		return colorCancelled.Sprint(s)
	default:
		return colorUnconfirmed.Sprint(s)
	}
}

// statusSymbol returns a one-cell marker for list output.
func statusSymbol(s appointment.Status) string {
	switch s {
	case appointment.StatusConfirmed:
		return "●"
	case appointment.StatusLate:
		return "!"
	case appointment.StatusCancelled:
		return "✗"
	default:
		return "○"
	}
}

// formatAppointmentLine renders one appointment for list output.
func formatAppointmentLine(a *appointment.Appointment, svc *appointment.Service, stylist, client string) string {
	svcName := "(unknown service)"
	if svc != nil {
		svcName = svc.Name
	}
	if client == "" {
		client = "(unknown client)"
	}
	return fmt.Sprintf("  %s #%-3d %s-%s  %-14s %-18s %s  %s",
		statusSymbol(a.Status),
		a.ID,
		a.Start,
		a.End(svc),
		truncateCol(stylist, 14),
		truncateCol(svcName, 18),
		truncateCol(client, 20),
		formatStatus(a.Status),
	)
}

// formatPrice renders a price in euros.
func formatPrice(amount float64) string {
	return fmt.Sprintf("%.2f€", amount)
}

func truncateCol(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

// ruler renders a separator sized to the terminal.
func ruler() string {
	w := termWidth()
	if w > 72 {
		w = 72
	}
	return formatMuted(strings.Repeat("─", w))
}
