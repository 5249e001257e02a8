package main

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"optionfield/internal/debug"
	"optionfield/internal/fieldspec"
	"optionfield/internal/history"
	"optionfield/internal/ui"
	"optionfield/internal/ui/theme"
)

const (
	defaultViewWidth  = 80
	defaultViewHeight = 24
	recentLimit       = 3
	historyTimeout    = 2 * time.Second
)

// selectionRecorder is the part of the history store the host uses.
type selectionRecorder interface {
	Record(ctx context.Context, ev history.Event) (history.Event, error)
	Recent(ctx context.Context, field string, limit int) ([]history.Event, error)
}

type appConfig struct {
	Fields     []fieldspec.Field
	Width      int
	MaxVisible int
	// InfoStyle is the glamour style for field info ("dark", "light", "plain").
	InfoStyle string
	// History may be nil when history is disabled.
	History   selectionRecorder
	SaveTheme func(name string) error
}

type appKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
	Theme  key.Binding
	Quit   key.Binding
	QuitQ  key.Binding
}

func defaultAppKeyMap() appKeyMap {
	return appKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("⇥", "Next")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("⇧⇥", "Prev")),
		Toggle: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("^D", "Disable")),
		Theme:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("^T", "Theme")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("^C", "Quit")),
		QuitQ:  key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "Quit")),
	}
}

// fieldEntry pairs a definition with its widget. props is the value cell the
// host owns; the widget only ever requests changes to it.
type fieldEntry struct {
	def      fieldspec.Field
	props    ui.DropdownProps
	dropdown ui.Dropdown
	recent   []string
}

type historyRecordedMsg struct {
	field  string
	recent []string
	err    error
}

type themeSavedMsg struct {
	name string
	err  error
}

// app hosts one dropdown per field definition.
type app struct {
	fields     []fieldEntry
	focus      int
	width      int
	height     int
	infoStyle  string
	renderInfo func(string) string
	history    selectionRecorder
	saveTheme  func(string) error
	status     string
	keys       appKeyMap
}

func newApp(cfg appConfig) (*app, error) {
	if len(cfg.Fields) == 0 {
		return nil, fmt.Errorf("no fields defined")
	}
	m := &app{
		fields:    make([]fieldEntry, 0, len(cfg.Fields)),
		width:     defaultViewWidth,
		height:    defaultViewHeight,
		infoStyle: cfg.InfoStyle,
		history:   cfg.History,
		saveTheme: cfg.SaveTheme,
		keys:      defaultAppKeyMap(),
	}
	for _, def := range cfg.Fields {
		props := dropdownProps(def)
		d, err := ui.NewDropdown(dropdownConfig(def, cfg.Width, cfg.MaxVisible), props, ui.DefaultCapabilities())
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", def.Name, err)
		}
		for _, w := range def.Warnings {
			debug.Logger().Warn("field definition warning", "field", def.Name, "warning", w)
		}
		m.fields = append(m.fields, fieldEntry{def: def, props: props, dropdown: d})
	}
	m.fields[0].dropdown.Focus()
	m.renderInfo = buildMarkdownRenderer(m.infoStyle, m.infoWidth())
	return m, nil
}

func (m *app) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.fields))
	for i := range m.fields {
		cmds = append(cmds, m.fields[i].dropdown.Init())
	}
	return tea.Batch(cmds...)
}

func (m *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.renderInfo = buildMarkdownRenderer(m.infoStyle, m.infoWidth())
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case ui.DropdownSelectedMsg:
		return m, m.applySelection(msg)
	case ui.DropdownCreateRequestedMsg:
		return m, m.applyCreate(msg)
	case ui.DropdownRefreshRequestedMsg:
		if f := m.field(msg.ID); f != nil {
			m.status = fmt.Sprintf("Refresh requested for %s", f.def.Label())
			debug.Logger().Debug("refresh requested", "field", msg.ID)
		}
		return m, nil
	case ui.DropdownCopiedMsg:
		if msg.Err != nil {
			m.status = fmt.Sprintf("Copy failed: %v", msg.Err)
		} else {
			m.status = fmt.Sprintf("Copied %q", msg.Value)
		}
		return m, nil
	case historyRecordedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("History: %v", msg.err)
			debug.Logger().Error("record selection", "field", msg.field, "err", msg.err)
			return m, nil
		}
		if f := m.field(msg.field); f != nil {
			f.recent = msg.recent
		}
		return m, nil
	case themeSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Theme %s (not saved: %v)", msg.name, msg.err)
		} else {
			m.status = fmt.Sprintf("Theme %s", msg.name)
		}
		return m, nil
	}
	return m, m.broadcast(msg)
}

func (m *app) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	f := &m.fields[m.focus]
	if f.dropdown.State() == ui.DropdownClosed {
		switch {
		case key.Matches(msg, m.keys.QuitQ):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.moveFocus(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.moveFocus(-1)
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			return m, m.toggleDisabled()
		case key.Matches(msg, m.keys.Theme):
			return m, m.cycleTheme()
		}
	}
	var cmd tea.Cmd
	f.dropdown, cmd = f.dropdown.Update(msg)
	return m, cmd
}

// broadcast hands msg to every dropdown. Dialog results are tagged with
// the owning dropdown's ID, so the others ignore them.
func (m *app) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.fields))
	for i := range m.fields {
		var cmd tea.Cmd
		m.fields[i].dropdown, cmd = m.fields[i].dropdown.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *app) moveFocus(delta int) {
	n := len(m.fields)
	m.fields[m.focus].dropdown.Blur()
	m.focus = ((m.focus+delta)%n + n) % n
	m.fields[m.focus].dropdown.Focus()
	m.status = ""
}

func (m *app) toggleDisabled() tea.Cmd {
	f := &m.fields[m.focus]
	f.props.Disabled = !f.props.Disabled
	if f.props.Disabled {
		m.status = f.def.Label() + " disabled"
	} else {
		m.status = f.def.Label() + " enabled"
	}
	return f.dropdown.SetProps(f.props)
}

func (m *app) cycleTheme() tea.Cmd {
	name := theme.CycleTheme()
	m.status = "Theme " + name
	save := m.saveTheme
	if save == nil {
		return nil
	}
	return func() tea.Msg {
		return themeSavedMsg{name: name, err: save(name)}
	}
}

func (m *app) applySelection(msg ui.DropdownSelectedMsg) tea.Cmd {
	f := m.field(msg.ID)
	if f == nil {
		return nil
	}
	f.props.Value = msg.Value
	cmd := f.dropdown.SetProps(f.props)
	if !msg.Silent {
		m.status = fmt.Sprintf("%s = %q", f.def.Label(), msg.Value)
	}
	custom := msg.Value != "" && !slices.Contains(f.props.Options, msg.Value)
	return tea.Batch(cmd, m.recordCmd(history.Event{
		Field:  msg.ID,
		Value:  msg.Value,
		Silent: msg.Silent,
		Custom: custom,
	}))
}

func (m *app) recordCmd(ev history.Event) tea.Cmd {
	store := m.history
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
		defer cancel()
		if _, err := store.Record(ctx, ev); err != nil {
			return historyRecordedMsg{field: ev.Field, err: err}
		}
		events, err := store.Recent(ctx, ev.Field, recentLimit)
		if err != nil {
			return historyRecordedMsg{field: ev.Field, err: err}
		}
		recent := make([]string, 0, len(events))
		for _, e := range events {
			recent = append(recent, e.Value)
		}
		return historyRecordedMsg{field: ev.Field, recent: recent}
	}
}

// applyCreate appends the option named in the dialog. Remaining dialog
// values become the new option's metadata, in dialog field order.
func (m *app) applyCreate(msg ui.DropdownCreateRequestedMsg) tea.Cmd {
	f := m.field(msg.ID)
	if f == nil {
		return nil
	}
	name, attrs := createdOption(f.def.DialogInputs, msg.Values)
	if name == "" {
		m.status = "Nothing to create"
		return nil
	}
	if slices.Contains(f.props.Options, name) {
		m.status = fmt.Sprintf("%q already exists", name)
		return nil
	}
	aligned := len(f.props.Metadata) == len(f.props.Options)
	f.props.Options = append(slices.Clone(f.props.Options), name)
	if aligned {
		icon := ""
		if meta, ok := ui.MetadataAt(f.props.Metadata, 0); ok {
			icon = meta.Icon
		}
		f.props.Metadata = append(slices.Clone(f.props.Metadata), ui.OptionMetadata{Icon: icon, Attrs: attrs})
	}
	m.status = fmt.Sprintf("Created %q", name)
	debug.Logger().Debug("option created", "field", msg.ID, "option", name)
	return f.dropdown.SetProps(f.props)
}

func createdOption(inputs *fieldspec.DialogInputs, values map[string]string) (string, []ui.MetadataAttr) {
	if inputs == nil {
		return strings.TrimSpace(values["name"]), nil
	}
	var name string
	var attrs []ui.MetadataAttr
	for _, in := range inputs.Fields {
		v := strings.TrimSpace(values[in.Name])
		if v == "" {
			continue
		}
		if name == "" && (in.Name == "name" || len(in.Options) == 0) {
			name = v
			continue
		}
		attrs = append(attrs, ui.MetadataAttr{Key: in.Name, Value: v})
	}
	return name, attrs
}

func (m *app) field(id string) *fieldEntry {
	for i := range m.fields {
		if m.fields[i].def.Name == id {
			return &m.fields[i]
		}
	}
	return nil
}

func (m *app) infoWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m *app) View() string {
	viewport := ui.Size{Width: m.width, Height: m.height}
	if viewport.Width <= 0 || viewport.Height <= 0 {
		viewport = ui.Size{Width: defaultViewWidth, Height: defaultViewHeight}
	}

	sections := []string{styleHeader().Render("optionfield"), ""}
	y := lipgloss.Height(sections[0]) + 1
	var anchor ui.Rect
	for i := range m.fields {
		f := &m.fields[i]
		label := f.def.Label()
		if f.props.Disabled {
			label += " (disabled)"
		}
		labelStyle := styleLabel()
		if i == m.focus {
			labelStyle = styleLabelFocused()
		}
		labelLine := labelStyle.Render(label)
		trigger := f.dropdown.View()
		if i == m.focus {
			anchor = ui.Rect{
				X:      0,
				Y:      y + lipgloss.Height(labelLine),
				Width:  lipgloss.Width(f.dropdown.TriggerView()),
				Height: lipgloss.Height(f.dropdown.TriggerView()),
			}
		}
		block := lipgloss.JoinVertical(lipgloss.Left, labelLine, trigger)
		sections = append(sections, block)
		y += lipgloss.Height(block)
	}

	focused := &m.fields[m.focus]
	if info := strings.TrimSpace(focused.def.Info); info != "" {
		sections = append(sections, "", m.renderInfo(info))
	}
	if len(focused.recent) > 0 {
		sections = append(sections, styleMuted().Render("Recent: "+strings.Join(focused.recent, ", ")))
	}
	if m.status != "" {
		sections = append(sections, "", styleStatus().Render(m.status))
	}
	sections = append(sections, "", styleMuted().Render("⇥ field • ⏎ open • ^Y copy • ^D disable • ^T theme • q quit"))

	base := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return ui.ComposeLayers(base, viewport,
		focused.dropdown.Layer(anchor, viewport),
		focused.dropdown.DialogLayer(viewport),
	)
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(theme.Current().Primary())
}

func styleLabel() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text())
}

func styleLabelFocused() lipgloss.Style {
	return styleLabel().Bold(true).Foreground(theme.Current().Secondary())
}

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
}

func styleStatus() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Accent())
}
