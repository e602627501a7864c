package debug

import "github.com/charmbracelet/lipgloss"

type styles struct {
	header lipgloss.Style
	on     lipgloss.Style
	off    lipgloss.Style
	muted  lipgloss.Style
	irq    lipgloss.Style
}

// ANSI Color reference
// 1	Red
// 2	Green
// 3	Yellow
// 7	White
// 8	Bright Black (Gray)

func newStyles() styles {
	return styles{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)),
		on:     lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(2)),
		off:    lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8)),
		muted:  lipgloss.NewStyle().Faint(true).Foreground(lipgloss.ANSIColor(8)),
		irq:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
	}
}

func newPlainStyles() styles {
	plain := lipgloss.NewStyle()
	return styles{header: plain, on: plain, off: plain, muted: plain, irq: plain}
}
