package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"optionfield/internal/ui/theme"
)

// Overlay width semantics (lipgloss):
//
//	Style.Width(n)   sets the content width, padding included
//	Border           adds 2 to the visual width, outside Width
//
// A box with Width(40), Padding(0,1) and a rounded border is 42 cells wide
// on screen with 38 cells for content. The OverlayBuilder does this math.

const (
	// OverlayWidthStandard is the dialog width used when the caller does not
	// supply one.
	OverlayWidthStandard = 48

	// overlayHPadding matches the horizontal padding in styleOverlay.
	overlayHPadding = 2
)

// OverlayContentWidth returns the usable width inside an overlay's padding.
func OverlayContentWidth(boxWidth int) int {
	inner := boxWidth - (overlayHPadding * 2)
	if inner < 1 {
		return 1
	}
	return inner
}

// footerHint is a short key hint rendered in overlay footers.
type footerHint struct {
	key  string
	desc string
}

// OverlayBuilder helps construct consistent dialog content: a header,
// body lines and a hint footer inside a rounded panel.
type OverlayBuilder struct {
	boxWidth     int
	contentWidth int
	lines        []string
}

// NewOverlayBuilder creates a builder for a panel of boxWidth (the lipgloss
// Width value). Non-positive widths fall back to OverlayWidthStandard.
func NewOverlayBuilder(boxWidth int) *OverlayBuilder {
	if boxWidth <= 0 {
		boxWidth = OverlayWidthStandard
	}
	return &OverlayBuilder{
		boxWidth:     boxWidth,
		contentWidth: OverlayContentWidth(boxWidth),
		lines:        make([]string, 0, 16),
	}
}

// BoxWidth returns the lipgloss Width value for styling containers.
func (b *OverlayBuilder) BoxWidth() int {
	return b.boxWidth
}

// ContentWidth returns the usable width for text content.
func (b *OverlayBuilder) ContentWidth() int {
	return b.contentWidth
}

// Header adds a styled title, an optional muted description and a divider.
func (b *OverlayBuilder) Header(title, description string) *OverlayBuilder {
	b.lines = append(b.lines, styleOverlayTitle().Render(truncateByDisplayWidth(title, b.contentWidth)))
	if strings.TrimSpace(description) != "" {
		b.lines = append(b.lines, styleOverlayDescription().Width(b.contentWidth).Render(description))
	}
	b.lines = append(b.lines, b.Divider())
	b.lines = append(b.lines, "")
	return b
}

// Divider returns a styled horizontal divider line.
func (b *OverlayBuilder) Divider() string {
	return styleOverlayDivider().Render(strings.Repeat("─", b.contentWidth))
}

// Line adds a content line.
func (b *OverlayBuilder) Line(content string) *OverlayBuilder {
	b.lines = append(b.lines, content)
	return b
}

// BlankLine adds an empty line for spacing.
func (b *OverlayBuilder) BlankLine() *OverlayBuilder {
	return b.Line("")
}

// Section adds a labeled section with its content.
func (b *OverlayBuilder) Section(label string, content string) *OverlayBuilder {
	b.lines = append(b.lines, styleOverlaySectionLabel().Render(label))
	b.lines = append(b.lines, content)
	return b
}

// Footer adds a divider and centered key hints.
func (b *OverlayBuilder) Footer(hints []footerHint) *OverlayBuilder {
	b.lines = append(b.lines, b.Divider())
	b.lines = append(b.lines, overlayFooterLine(hints, b.contentWidth))
	return b
}

// Build returns the final styled overlay content.
func (b *OverlayBuilder) Build() string {
	content := strings.Join(b.lines, "\n")
	return styleOverlay().Width(b.boxWidth).Render(content)
}

// overlayFooterLine renders hints as "key desc" pairs, dropping trailing hints
// until the line fits.
func overlayFooterLine(hints []footerHint, width int) string {
	for len(hints) > 0 {
		parts := make([]string, 0, len(hints))
		for _, h := range hints {
			parts = append(parts, styleOverlayKey().Render(h.key)+" "+styleOverlayHint().Render(h.desc))
		}
		line := strings.Join(parts, "  ")
		if lipgloss.Width(line) <= width {
			return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
		}
		hints = hints[:len(hints)-1]
	}
	return ""
}

// These are the canonical overlay styles shared by the dropdown panel and
// the creation dialog.

func styleOverlay() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(theme.Current().BackgroundSecondary()).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderFocused()).
		Padding(1, overlayHPadding)
}

func styleOverlayTitle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Accent()).
		Bold(true)
}

func styleOverlayDescription() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted())
}

func styleOverlayDivider() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Primary())
}

func styleOverlaySectionLabel() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Secondary()).
		Bold(true)
}

func styleOverlayKey() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextEmphasized()).
		Bold(true)
}

func styleOverlayHint() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted())
}

// OverlayInputStyle returns a bordered input style sized for the overlay.
func OverlayInputStyle(boxWidth int, focused bool) lipgloss.Style {
	borderColor := theme.Current().BorderDim()
	if focused {
		borderColor = theme.Current().Success()
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(OverlayContentWidth(boxWidth) - 2)
}
