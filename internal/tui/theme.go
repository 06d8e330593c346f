package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Sticky-note palette. AdaptiveColor keeps the note readable on light and dark
// terminals; faint styling is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorNoteBg   lipgloss.TerminalColor = ac("229", "58")  // pale yellow / olive
	colorNoteFg   lipgloss.TerminalColor = ac("235", "230") // ink
	colorTitleBg  lipgloss.TerminalColor = ac("221", "100")
	colorMuted    lipgloss.TerminalColor = ac("240", "243")
	colorAccent   lipgloss.TerminalColor = ac("27", "75") // drop indicator, cursor
	colorInputBg  lipgloss.TerminalColor = ac("230", "236")
	colorSelectBg lipgloss.TerminalColor = ac("222", "94")
)

type styles struct {
	title     lipgloss.Style
	titleBtn  lipgloss.Style
	row       lipgloss.Style
	selected  lipgloss.Style
	done      lipgloss.Style
	dragged   lipgloss.Style
	addRow    lipgloss.Style
	indicator lipgloss.Style
	status    lipgloss.Style
	inputFill lipgloss.Style
}

func newStyles() styles {
	base := lipgloss.NewStyle().Background(colorNoteBg).Foreground(colorNoteFg)
	return styles{
		title:     lipgloss.NewStyle().Background(colorTitleBg).Foreground(colorNoteFg).Bold(true),
		titleBtn:  lipgloss.NewStyle().Background(colorTitleBg).Foreground(colorNoteFg),
		row:       base,
		selected:  base.Background(colorSelectBg),
		done:      faintIfDark(base.Foreground(colorMuted).Strikethrough(true)),
		dragged:   faintIfDark(base.Foreground(colorMuted).Italic(true)),
		addRow:    base.Foreground(colorMuted),
		indicator: base.Foreground(colorAccent).Bold(true),
		status:    faintIfDark(lipgloss.NewStyle().Foreground(colorMuted)),
		inputFill: lipgloss.NewStyle().Background(colorInputBg),
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile also honors CLICOLOR, which would disable colors in
// a TUI launched from a script; only NO_COLOR is honored here.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection.
//
// Priority:
// 1) STICKYNOTE_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("fg;bg")
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("STICKYNOTE_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
