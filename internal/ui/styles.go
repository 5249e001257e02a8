package ui

import (
	"github.com/charmbracelet/lipgloss"

	"optionfield/internal/ui/theme"
)

// Dropdown styles. Styles are built per call so theme switches apply on the
// next frame.

func styleTrigger() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderNormal()).
		Foreground(theme.Current().Text()).
		Padding(0, 1)
}

func styleTriggerFocused() lipgloss.Style {
	return styleTrigger().
		BorderForeground(theme.Current().Secondary())
}

func styleTriggerDisabled() lipgloss.Style {
	return styleTrigger().
		BorderForeground(theme.Current().BorderDim()).
		Foreground(theme.Current().TextMuted())
}

func stylePlaceholder() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted())
}

func styleEmptyState() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted()).
		Italic(true)
}

func stylePanel() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(theme.Current().BackgroundSecondary()).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderFocused()).
		Padding(0, 1)
}

func styleOption() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Text())
}

func styleOptionHighlight() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Secondary()).
		Bold(true)
}

func styleOptionIcon() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Accent())
}

func styleCheck() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Success())
}

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted())
}

func styleDivider() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().BorderDim())
}
