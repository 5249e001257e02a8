package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"optionfield/internal/ui/theme"
)

// DialogField describes one input of the creation dialog. A field with
// Options is a fixed choice cycled with left/right; otherwise it is free text.
type DialogField struct {
	Name        string
	Label       string
	Placeholder string
	Options     []string
}

// DialogSpec is the field descriptor set handed to the dialog factory.
type DialogSpec struct {
	Title       string
	Description string
	Fields      []DialogField
}

// DialogClosedMsg is emitted by a Dialog when it closes. Values maps field
// names to their entered values and is nil when the dialog was cancelled.
type DialogClosedMsg struct {
	Submitted bool
	Values    map[string]string
}

// Dialog is the creation surface opened by the "New" action. The dropdown
// only opens it, routes input to it and waits for a DialogClosedMsg.
type Dialog interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Dialog, tea.Cmd)
	View() string
}

// DialogFactory builds a Dialog for spec rendered at the given box width.
type DialogFactory func(spec DialogSpec, width int) Dialog

type dialogKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Left   key.Binding
	Right  key.Binding
	Enter  key.Binding
	Submit key.Binding
	Cancel key.Binding
}

func defaultDialogKeyMap() dialogKeyMap {
	return dialogKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("⇥", "Next")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("⇧⇥", "Prev")),
		Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←→", "Choose")),
		Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("←→", "Choose")),
		Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("⏎", "Next")),
		Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("^S", "Create")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "Cancel")),
	}
}

// CreateDialog is the default Dialog: a form of text inputs and choice
// fields inside the standard overlay panel.
type CreateDialog struct {
	spec   DialogSpec
	width  int
	keys   dialogKeyMap
	inputs []textinput.Model
	choice []int
	focus  int
}

// NewCreateDialog is the DialogFactory shipped with DefaultCapabilities.
func NewCreateDialog(spec DialogSpec, width int) Dialog {
	if width <= 0 {
		width = OverlayWidthStandard
	}
	d := &CreateDialog{
		spec:   spec,
		width:  width,
		keys:   defaultDialogKeyMap(),
		inputs: make([]textinput.Model, len(spec.Fields)),
		choice: make([]int, len(spec.Fields)),
	}
	inputWidth := OverlayContentWidth(width) - 6
	if inputWidth < 4 {
		inputWidth = 4
	}
	for i, f := range spec.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 200
		ti.Width = inputWidth
		d.inputs[i] = ti
	}
	return d
}

// Init focuses the first field.
func (d *CreateDialog) Init() tea.Cmd {
	return d.focusField(0)
}

// Update handles form navigation and editing.
func (d *CreateDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if d.focus < len(d.inputs) {
			var cmd tea.Cmd
			d.inputs[d.focus], cmd = d.inputs[d.focus].Update(msg)
			return d, cmd
		}
		return d, nil
	}

	switch {
	case key.Matches(keyMsg, d.keys.Cancel):
		return d, closeDialog(false, nil)
	case key.Matches(keyMsg, d.keys.Submit):
		return d, closeDialog(true, d.Values())
	case key.Matches(keyMsg, d.keys.Enter):
		if d.focus >= len(d.spec.Fields)-1 {
			return d, closeDialog(true, d.Values())
		}
		return d, d.focusField(d.focus + 1)
	case key.Matches(keyMsg, d.keys.Next):
		return d, d.focusField(d.focus + 1)
	case key.Matches(keyMsg, d.keys.Prev):
		return d, d.focusField(d.focus - 1)
	}

	if d.focus >= len(d.spec.Fields) {
		return d, nil
	}
	if opts := d.spec.Fields[d.focus].Options; len(opts) > 0 {
		switch {
		case key.Matches(keyMsg, d.keys.Left):
			d.choice[d.focus] = (d.choice[d.focus] - 1 + len(opts)) % len(opts)
		case key.Matches(keyMsg, d.keys.Right):
			d.choice[d.focus] = (d.choice[d.focus] + 1) % len(opts)
		}
		return d, nil
	}

	var cmd tea.Cmd
	d.inputs[d.focus], cmd = d.inputs[d.focus].Update(keyMsg)
	return d, cmd
}

// Values returns the current form values keyed by field name.
func (d *CreateDialog) Values() map[string]string {
	values := make(map[string]string, len(d.spec.Fields))
	for i, f := range d.spec.Fields {
		if len(f.Options) > 0 {
			values[f.Name] = f.Options[d.choice[i]]
			continue
		}
		values[f.Name] = strings.TrimSpace(d.inputs[i].Value())
	}
	return values
}

// Focused returns the index of the focused field.
func (d *CreateDialog) Focused() int {
	return d.focus
}

func (d *CreateDialog) focusField(i int) tea.Cmd {
	if len(d.inputs) == 0 {
		return nil
	}
	if i < 0 {
		i = len(d.inputs) - 1
	}
	if i >= len(d.inputs) {
		i = 0
	}
	for j := range d.inputs {
		d.inputs[j].Blur()
	}
	d.focus = i
	if len(d.spec.Fields[i].Options) > 0 {
		return nil
	}
	return d.inputs[i].Focus()
}

func closeDialog(submitted bool, values map[string]string) tea.Cmd {
	return func() tea.Msg {
		return DialogClosedMsg{Submitted: submitted, Values: values}
	}
}

// View renders the dialog panel.
func (d *CreateDialog) View() string {
	b := NewOverlayBuilder(d.width)
	title := d.spec.Title
	if strings.TrimSpace(title) == "" {
		title = "Create"
	}
	b.Header(title, d.spec.Description)

	for i, f := range d.spec.Fields {
		label := f.Label
		if label == "" {
			label = f.Name
		}
		focused := i == d.focus
		var field string
		if len(f.Options) > 0 {
			field = d.renderChoice(f.Options, d.choice[i], focused)
		} else {
			field = d.inputs[i].View()
		}
		b.Section(label, OverlayInputStyle(d.width, focused).Render(field))
	}
	if len(d.spec.Fields) == 0 {
		b.Line(styleOverlayHint().Render("Nothing to fill in."))
	}

	b.BlankLine()
	b.Footer([]footerHint{
		{"⏎", "Next"},
		{"^S", "Create"},
		{"⇥", "Field"},
		{"esc", "Cancel"},
	})
	return b.Build()
}

func (d *CreateDialog) renderChoice(opts []string, selected int, focused bool) string {
	value := opts[selected]
	if !focused {
		return value
	}
	arrows := lipgloss.NewStyle().Foreground(theme.Current().Secondary())
	return arrows.Render("‹ ") + value + arrows.Render(" ›")
}
