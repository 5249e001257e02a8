package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model. The trigger presentation renders only the
// trigger; its overlay floats and is drawn through Layer. The anchored
// presentation renders the overlay inline under the trigger.
func (d Dropdown) View() string {
	if d.cfg.Presentation == PresentationAnchored && d.st.open {
		return lipgloss.JoinVertical(lipgloss.Left, d.TriggerView(), d.OverlayView())
	}
	return d.TriggerView()
}

// TriggerView renders the trigger row, the disabled indicator, or the empty
// state when there is nothing to choose from.
func (d Dropdown) TriggerView() string {
	if len(d.props.Options) == 0 && !d.cfg.FreeText {
		if d.props.Loading {
			return styleEmptyState().Render(textLoading)
		}
		return styleEmptyState().Render(textNoParameters)
	}

	inner := d.innerWidth()
	if d.props.Disabled {
		label := "⊘ " + d.TriggerText()
		return styleTriggerDisabled().Width(d.cfg.Width - 2).Render(truncateByDisplayWidth(label, inner))
	}

	var left string
	if icon := d.TriggerIcon(); icon != "" {
		left = styleOptionIcon().Render(icon) + " "
	}
	textWidth := inner - lipgloss.Width(left) - 2
	text := truncateByDisplayWidth(d.TriggerText(), textWidth)
	if d.HasValue() {
		left += text
	} else {
		left += stylePlaceholder().Render(text)
	}
	line := padLineToWidth(left, inner-1) + styleMuted().Render(iconGlyph("chevronsupdown"))

	style := styleTrigger()
	if d.st.focused {
		style = styleTriggerFocused()
	}
	return style.Width(d.cfg.Width - 2).Render(line)
}

// OverlayView renders the overlay panel: search row, option rows and, for the
// detailed layout, the action rows. It is empty while closed.
func (d Dropdown) OverlayView() string {
	if !d.st.open {
		return ""
	}
	inner := d.innerWidth()
	divider := styleDivider().Render(strings.Repeat("─", inner))

	lines := make([]string, 0, d.cfg.MaxVisible+6)
	lines = append(lines, styleMuted().Render(iconGlyph("search")+" ")+d.search.View())
	lines = append(lines, divider)

	if len(d.st.filtered) == 0 {
		lines = append(lines, styleEmptyState().Render(textNoValues))
	} else {
		if d.st.scroll > 0 {
			lines = append(lines, styleMuted().Render("  ▲ more above"))
		}
		end := d.st.scroll + d.cfg.MaxVisible
		if end > len(d.st.filtered) {
			end = len(d.st.filtered)
		}
		for i := d.st.scroll; i < end; i++ {
			lines = append(lines, d.renderOptionRow(i, inner))
		}
		if end < len(d.st.filtered) {
			lines = append(lines, styleMuted().Render("  ▼ more below"))
		}
	}

	if d.cfg.Layout == LayoutDetailed {
		n := len(d.st.filtered)
		lines = append(lines, divider)
		lines = append(lines, d.renderActionRow(n, iconGlyph("plus"), newOptionLabel(d.cfg.Name), inner))
		lines = append(lines, d.renderActionRow(n+1, iconGlyph("refreshccw"), refreshLabel, inner))
	}

	return stylePanel().Width(d.cfg.Width - 2).Render(strings.Join(lines, "\n"))
}

func (d Dropdown) renderOptionRow(i, width int) string {
	opt := d.st.filtered[i]
	highlighted := i == d.st.highlight

	cursor := "  "
	if highlighted {
		cursor = "▸ "
	}
	check := "  "
	if opt != "" && opt == d.props.Value {
		check = styleCheck().Render("✓") + " "
	}

	idx := slices.Index(d.props.Options, opt)
	var affix string
	if idx < 0 {
		affix = styleMuted().Render(freeTextAffix)
	}
	textStyle := styleOption()
	if highlighted {
		textStyle = styleOptionHighlight()
	}

	row := cursor + check
	avail := width - lipgloss.Width(row) - lipgloss.Width(affix)

	if d.cfg.Layout != LayoutDetailed {
		return row + affix + textStyle.Render(truncateByDisplayWidth(opt, avail))
	}

	meta, ok := MetadataAt(d.props.Metadata, idx)
	iconCell := "  "
	if ok && meta.Icon != "" {
		iconCell = styleOptionIcon().Render(iconGlyph(meta.Icon)) + " "
	}
	avail -= 2

	// The option text keeps its width; the summary takes what is left but
	// never less than a third of the row.
	textWidth := lipgloss.Width(opt)
	summaryWidth := 0
	if ok {
		summaryWidth = lipgloss.Width(meta.Summary())
	}
	if summaryWidth > 0 && textWidth+2+summaryWidth > avail {
		summaryWidth = max(avail-textWidth-2, avail/3)
	}
	if summaryWidth > 0 {
		textWidth = min(textWidth, avail-summaryWidth-2)
	} else {
		textWidth = min(textWidth, avail)
	}
	text := truncateByDisplayWidth(opt, textWidth)
	row += iconCell + affix + textStyle.Render(text)

	if summaryWidth > 0 {
		gap := width - lipgloss.Width(row) - summaryWidth
		if gap < 2 {
			gap = 2
		}
		row += strings.Repeat(" ", gap) + styleMuted().Render(meta.summaryFit(summaryWidth))
	}
	return row
}

func (d Dropdown) renderActionRow(i int, glyph, label string, width int) string {
	cursor := "  "
	style := styleMuted()
	if i == d.st.highlight {
		cursor = "▸ "
		style = styleOptionHighlight()
	}
	return cursor + style.Render(truncateByDisplayWidth(glyph+" "+label, width-2))
}

// DialogView renders the creation dialog, or "" when it is closed.
func (d Dropdown) DialogView() string {
	if !d.st.dialogOpen || d.st.dialog == nil {
		return ""
	}
	return d.st.dialog.View()
}

// Layer returns the floating overlay positioned against anchor (the trigger's
// screen rectangle) by the configured OverlayPositioner. It returns nil while
// closed and for the anchored presentation, which renders inline.
func (d Dropdown) Layer(anchor Rect, viewport Size) Layer {
	if !d.st.open || d.cfg.Presentation == PresentationAnchored {
		return nil
	}
	content := d.OverlayView()
	rect := d.caps.Overlay.Place(anchor, blockDimensions(content), viewport)
	return blockLayer(content, rect)
}

// DialogLayer returns the creation dialog centered in the viewport, or nil.
func (d Dropdown) DialogLayer(viewport Size) Layer {
	content := d.DialogView()
	if content == "" {
		return nil
	}
	return CenteredLayer(content, viewport, 1, 1)
}

// innerWidth is the content width inside the bordered, padded trigger.
func (d Dropdown) innerWidth() int {
	w := d.cfg.Width - 4
	if w < 4 {
		w = 4
	}
	return w
}
