package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Weekly task theme (CLI + TUI).
// Reusable styles and a few emojis.

const (
	IconCalendar = "📅"
	IconBook     = "📚"
	IconPlus     = "➕"
	IconDone     = "✅"
	IconTodo     = "⬜"
	IconLater    = "⏭️"
	IconTimer    = "⏱️"
	IconMemo     = "📝"
	IconStar     = "⭐"
	IconFire     = "🔥"
	IconSchool   = "🏫"
	IconInfo     = "ℹ️"
	IconWarn     = "⚠️"
	IconError    = "❌"
	IconUndo     = "↩️"
	IconSearch   = "🔎"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	BadgeActive = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("ACTIVE")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// StatusText renders a day status (pending, completed, postponed, in_progress).
func StatusText(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	switch s {
	case "completed":
		return Good.Render("done")
	case "in_progress":
		return H2.Render("in progress")
	case "postponed":
		return Warn.Render("postponed")
	case "pending":
		return Muted.Render("pending")
	default:
		return Muted.Render(status)
	}
}

func StatusIcon(status string) string {
	switch status {
	case "completed":
		return IconDone
	case "postponed":
		return IconLater
	case "in_progress":
		return IconTimer
	default:
		return IconTodo
	}
}

// Swatch renders a colored block for a task's hex color.
// Empty colors fall back to the muted gray.
func Swatch(hex string) string {
	c := lipgloss.Color(strings.TrimSpace(hex))
	if hex == "" {
		c = cMuted
	}
	return lipgloss.NewStyle().Foreground(c).Render("■")
}

// Minutes formats a minute count as "1h 05m" or "25m".
func Minutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", m/60, m%60)
}
