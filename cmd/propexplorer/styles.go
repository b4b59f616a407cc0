package main

import "github.com/charmbracelet/lipgloss"

// Palette. Adaptive colors keep the inspector readable on light terminals.
var (
	accent   = lipgloss.AdaptiveColor{Light: "#5A3FD1", Dark: "#7D56F4"}
	info     = lipgloss.AdaptiveColor{Light: "#007A99", Dark: "#00D7FF"}
	attn     = lipgloss.AdaptiveColor{Light: "#B8006B", Dark: "#FF5FD7"}
	warn     = lipgloss.AdaptiveColor{Light: "#B36B00", Dark: "#FFA500"}
	danger   = lipgloss.AdaptiveColor{Light: "#C00000", Dark: "#FF4B4B"}
	muted    = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#666666"}
	text     = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FAFAFA"}
	barBg    = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#1A1A1A"}
	inactive = lipgloss.AdaptiveColor{Light: "#C8C8C8", Dark: "#383838"}
)

var (
	bold = lipgloss.NewStyle().Bold(true)

	headerStyle    = bold.Foreground(accent).Background(barBg).Padding(0, 1)
	selectionStyle = lipgloss.NewStyle().Foreground(info).Italic(true)

	paneStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(inactive).Padding(0, 1)
	activePaneStyle = paneStyle.BorderForeground(accent)

	cursorStyle    = bold.Foreground(lipgloss.Color("#FFFFFF")).Background(accent)
	groupStyle     = bold.Foreground(accent)
	captionStyle   = lipgloss.NewStyle().Foreground(text)
	mixedStyle     = lipgloss.NewStyle().Foreground(warn).Italic(true)
	readOnlyStyle  = lipgloss.NewStyle().Foreground(muted)
	inspectedStyle = bold.Foreground(info)
	errorStyle     = bold.Foreground(danger)
	promptStyle    = bold.Foreground(attn)

	statusStyle = lipgloss.NewStyle().Foreground(muted).Background(barBg).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Foreground(info)

	helpTitleStyle = headerStyle.MarginBottom(1)
	helpKeyStyle   = bold.Foreground(info).Width(15)
	helpDescStyle  = captionStyle
)

// truncate shortens s to maxLen runes, ending in "..." when there is room.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
