package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#00D4FF")
	colorMuted   = lipgloss.Color("#6B7280")
	colorText    = lipgloss.Color("#E5E7EB")
	colorDim     = lipgloss.Color("#4B5563")
	colorError   = lipgloss.Color("#EF4444")
)

// agentPalette traduce los nombres de color del registro a hex.
var agentPalette = map[string]lipgloss.Color{
	"slate":   lipgloss.Color("#64748B"),
	"blue":    lipgloss.Color("#3B82F6"),
	"emerald": lipgloss.Color("#10B981"),
	"purple":  lipgloss.Color("#8B5CF6"),
	"amber":   lipgloss.Color("#F59E0B"),
	"teal":    lipgloss.Color("#14B8A6"),
	"rose":    lipgloss.Color("#F43F5E"),
}

func agentColor(name string) lipgloss.Color {
	name = strings.ToLower(strings.TrimSpace(name))
	if strings.HasPrefix(name, "#") {
		return lipgloss.Color(name)
	}
	if c, ok := agentPalette[name]; ok {
		return c
	}
	return colorMuted
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	systemStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	userLabelStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	userMessageStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#1E3A5F")).
				Foreground(colorText).
				Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	reasonStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	separatorStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

func badgeStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#0B1120")).
		Background(agentColor(color)).
		Padding(0, 1)
}
