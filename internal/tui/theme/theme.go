// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Appointment blocks, subtle highlight
	BgSelection string `toml:"bg_selection"` // Create-drag selection rectangle
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Grid lines, muted elements
	Accent      string `toml:"accent"`       // Title, borders
	Warning     string `toml:"warning"`      // Errors, late status
	Ok          string `toml:"ok"`           // Confirmed status
	DropTarget  string `toml:"drop_target"`  // Column highlight while dragging
	ModalBorder string `toml:"modal_border"`
	ModalBg     string `toml:"modal_bg"`
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "mocha"
	}
	name = strings.ToLower(name)

	path := "embedded/" + name + ".toml"
	data, err := embeddedThemes.ReadFile(path)
	if err != nil {
		if name != "mocha" {
			return Load("mocha")
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

// Fallback returns a compiled-in mocha palette for callers that must
// render even when no embedded theme can be loaded.
func Fallback() *Theme {
	t := &Theme{
		Name:        "mocha",
		Bg:          "#1e1e2e",
		BgHighlight: "#313244",
		BgSelection: "#45475a",
		Fg:          "#cdd6f4",
		FgMuted:     "#6c7086",
		Accent:      "#cba6f7",
		Warning:     "#f38ba8",
		Ok:          "#a6e3a1",
	}
	t.applyDefaults()
	return t
}

// applyDefaults fills colors a palette file may omit.
func (t *Theme) applyDefaults() {
	if t.ModalBorder == "" {
		t.ModalBorder = t.Accent
	}
	if t.ModalBg == "" {
		t.ModalBg = t.Bg
	}
	if t.DropTarget == "" {
		t.DropTarget = t.BgSelection
	}
	if t.Ok == "" {
		t.Ok = t.Accent
	}
}

// IsAvailable reports whether a theme with the given name is embedded.
func IsAvailable(name string) bool {
	for _, n := range Available() {
		if n == strings.ToLower(name) {
			return true
		}
	}
	return false
}

// Available lists the embedded theme names.
func Available() []string {
	entries, err := embeddedThemes.ReadDir("embedded")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	return names
}
