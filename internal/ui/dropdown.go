package ui

import (
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"optionfield/internal/debug"
)

// ListLayout selects how overlay rows are rendered.
type ListLayout int

const (
	// LayoutPlain renders option text only.
	LayoutPlain ListLayout = iota
	// LayoutDetailed renders icon, text and a metadata summary per row, followed
	// by the "New" and "Refresh list" actions. Requires a creation dialog.
	LayoutDetailed
)

func (l ListLayout) String() string {
	switch l {
	case LayoutPlain:
		return "plain"
	case LayoutDetailed:
		return "detailed"
	}
	return "unknown"
}

// Presentation selects how the overlay is reached.
type Presentation int

const (
	// PresentationTrigger shows a trigger row; activating it opens the overlay.
	PresentationTrigger Presentation = iota
	// PresentationAnchored embeds the overlay under the trigger. It is always
	// open and the user cannot dismiss it.
	PresentationAnchored
)

func (p Presentation) String() string {
	switch p {
	case PresentationTrigger:
		return "trigger"
	case PresentationAnchored:
		return "anchored"
	}
	return "unknown"
}

// DropdownState is the overlay state machine.
type DropdownState int

const (
	DropdownClosed DropdownState = iota
	DropdownOpen
	DropdownDialogOpen
)

func (s DropdownState) String() string {
	switch s {
	case DropdownClosed:
		return "closed"
	case DropdownOpen:
		return "open"
	case DropdownDialogOpen:
		return "open+dialog"
	}
	return "unknown"
}

const (
	textLoading       = "Loading..."
	textNoParameters  = "No parameters are available for display."
	textNoValues      = "No values found."
	searchPlaceholder = "Search options..."
	freeTextAffix     = "Text: "
	refreshLabel      = "Refresh list"

	defaultWidth      = 44
	defaultMaxVisible = 6
)

// DropdownConfig is fixed for the lifetime of a Dropdown.
type DropdownConfig struct {
	// ID tags every message the dropdown emits.
	ID string
	// Name is the semantic field name ("database_name"). It drives the
	// placeholder and the "New <FirstWord>" action label.
	Name         string
	Layout       ListLayout
	Presentation Presentation
	// FreeText offers typed text that matches no option as a pseudo-option.
	FreeText bool
	// CreateDialog is required by LayoutDetailed.
	CreateDialog *DialogSpec
	// Width is the visual width of the trigger and overlay, borders included.
	Width      int
	MaxVisible int
}

// DropdownProps are owned by the caller and handed in with SetProps. The
// dropdown never writes them back; it requests value changes with
// DropdownSelectedMsg.
type DropdownProps struct {
	Options  []string
	Metadata []OptionMetadata
	Value    string
	Disabled bool
	Loading  bool
}

// Capabilities are the collaborators a Dropdown needs. They are validated by
// NewDropdown.
type Capabilities struct {
	Overlay OverlayPositioner
	Matcher Matcher
	Dialogs DialogFactory
}

// DefaultCapabilities returns the shipped collaborators: a below-anchor
// positioner, the fuzzy matcher and the form-based creation dialog.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		Overlay: BelowAnchor{},
		Matcher: FuzzyMatcher{},
		Dialogs: NewCreateDialog,
	}
}

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

// dropdownState is private to a Dropdown instance.
type dropdownState struct {
	open       bool
	dialogOpen bool
	dialog     Dialog

	filtered  []string
	highlight int
	scroll    int

	// customValue is the last free-text entry selected in this instance.
	customValue string
	focused     bool
}

// Dropdown is a searchable single-select field with optional free text,
// per-option metadata and a creation dialog.
type Dropdown struct {
	cfg    DropdownConfig
	props  DropdownProps
	caps   Capabilities
	keys   KeyMap
	search textinput.Model
	st     dropdownState
}

// NewDropdown validates the configuration and capabilities and returns a
// closed dropdown (open for the anchored presentation).
func NewDropdown(cfg DropdownConfig, props DropdownProps, caps Capabilities) (Dropdown, error) {
	if err := validateDropdown(cfg, caps); err != nil {
		return Dropdown{}, err
	}
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.MaxVisible <= 0 {
		cfg.MaxVisible = defaultMaxVisible
	}

	ti := textinput.New()
	ti.Placeholder = searchPlaceholder
	ti.Prompt = ""
	ti.CharLimit = 200
	ti.Width = cfg.Width - 8

	d := Dropdown{
		cfg:    cfg,
		props:  cloneProps(props),
		caps:   caps,
		keys:   DefaultKeyMap(),
		search: ti,
	}
	if cfg.Presentation == PresentationAnchored && d.reachable() {
		d.open()
	}
	return d, nil
}

func validateDropdown(cfg DropdownConfig, caps Capabilities) error {
	switch cfg.Layout {
	case LayoutPlain, LayoutDetailed:
	default:
		return configurationError("dropdown %q: unknown list layout %d", cfg.ID, int(cfg.Layout))
	}
	switch cfg.Presentation {
	case PresentationTrigger, PresentationAnchored:
	default:
		return configurationError("dropdown %q: unknown presentation %d", cfg.ID, int(cfg.Presentation))
	}
	if caps.Overlay == nil {
		return configurationError("dropdown %q: overlay positioner is required", cfg.ID)
	}
	if caps.Matcher == nil {
		return configurationError("dropdown %q: matcher is required", cfg.ID)
	}
	if cfg.Layout == LayoutDetailed {
		if caps.Dialogs == nil {
			return configurationError("dropdown %q: detailed layout requires a dialog factory", cfg.ID)
		}
		if cfg.CreateDialog == nil {
			return configurationError("dropdown %q: detailed layout requires a creation dialog spec", cfg.ID)
		}
	}
	return nil
}

func cloneProps(p DropdownProps) DropdownProps {
	p.Options = slices.Clone(p.Options)
	p.Metadata = cloneMetadata(p.Metadata)
	return p
}

// Init emits the silent clear when the dropdown starts disabled with a value.
func (d Dropdown) Init() tea.Cmd {
	if d.props.Disabled && d.props.Value != "" {
		return d.silentClear()
	}
	return nil
}

// SetProps replaces the caller-owned inputs. The returned command carries the
// silent clear when Disabled switches on while a value is set.
func (d *Dropdown) SetProps(p DropdownProps) tea.Cmd {
	wasDisabled := d.props.Disabled
	d.props = cloneProps(p)

	var cmd tea.Cmd
	if p.Disabled && !wasDisabled {
		d.close()
		if p.Value != "" {
			cmd = d.silentClear()
		}
	}

	switch {
	case !d.reachable():
		d.close()
	case d.cfg.Presentation == PresentationAnchored && !d.st.open:
		d.open()
	default:
		d.clampHighlight()
	}
	return cmd
}

// Props returns a copy of the current caller-owned inputs.
func (d Dropdown) Props() DropdownProps {
	return cloneProps(d.props)
}

// Config returns the configuration with defaults applied.
func (d Dropdown) Config() DropdownConfig {
	return d.cfg
}

func (d Dropdown) silentClear() tea.Cmd {
	debug.Logger().Debug("dropdown silent clear", "id", d.cfg.ID, "value", d.props.Value)
	return emit(DropdownSelectedMsg{ID: d.cfg.ID, Value: "", Silent: true})
}

// reachable reports whether the overlay may be opened at all.
func (d Dropdown) reachable() bool {
	if d.props.Disabled {
		return false
	}
	return len(d.props.Options) > 0 || d.cfg.FreeText
}

// Update implements tea.Model.
func (d Dropdown) Update(msg tea.Msg) (Dropdown, tea.Cmd) {
	switch msg := msg.(type) {
	case dialogResultMsg:
		if msg.id != d.cfg.ID {
			return d, nil
		}
		return d.handleDialogClosed(msg.closed)
	case tea.KeyMsg:
		if !d.st.focused {
			return d, nil
		}
		return d.handleKeyMsg(msg)
	}

	// Cursor blinks and other non-key messages.
	var cmd tea.Cmd
	switch {
	case d.st.dialogOpen && d.st.dialog != nil:
		d.st.dialog, cmd = d.st.dialog.Update(msg)
		cmd = tagDialogCmd(d.cfg.ID, cmd)
	case d.st.open:
		d.search, cmd = d.search.Update(msg)
	}
	return d, cmd
}

func (d Dropdown) handleKeyMsg(msg tea.KeyMsg) (Dropdown, tea.Cmd) {
	if !d.reachable() {
		return d, nil
	}
	switch d.State() {
	case DropdownClosed:
		return d.handleClosedKey(msg)
	case DropdownOpen:
		return d.handleOpenKey(msg)
	case DropdownDialogOpen:
		return d.handleDialogKey(msg)
	}
	return d, nil
}

func (d Dropdown) handleClosedKey(msg tea.KeyMsg) (Dropdown, tea.Cmd) {
	switch {
	case key.Matches(msg, d.keys.Copy):
		return d.copyValue()
	case key.Matches(msg, d.keys.Open):
		cmd := d.open()
		return d, cmd
	}
	return d, nil
}

func (d Dropdown) handleOpenKey(msg tea.KeyMsg) (Dropdown, tea.Cmd) {
	switch {
	case key.Matches(msg, d.keys.Up):
		if d.st.highlight > 0 {
			d.st.highlight--
			d.adjustScrollOffset()
		}
		return d, nil
	case key.Matches(msg, d.keys.Down):
		if d.st.highlight < d.rowCount()-1 {
			d.st.highlight++
			d.adjustScrollOffset()
		}
		return d, nil
	case key.Matches(msg, d.keys.Home):
		d.st.highlight = 0
		d.adjustScrollOffset()
		return d, nil
	case key.Matches(msg, d.keys.End):
		if n := d.rowCount(); n > 0 {
			d.st.highlight = n - 1
			d.adjustScrollOffset()
		}
		return d, nil
	case key.Matches(msg, d.keys.Select):
		return d.activateHighlighted()
	case key.Matches(msg, d.keys.Close):
		if d.cfg.Presentation != PresentationAnchored {
			d.close()
		}
		return d, nil
	case key.Matches(msg, d.keys.Copy):
		return d.copyValue()
	}

	before := d.search.Value()
	var cmd tea.Cmd
	d.search, cmd = d.search.Update(msg)
	if d.search.Value() != before {
		d.filter()
	}
	return d, cmd
}

func (d Dropdown) handleDialogKey(msg tea.KeyMsg) (Dropdown, tea.Cmd) {
	if d.st.dialog == nil {
		d.st.dialogOpen = false
		return d, nil
	}
	var cmd tea.Cmd
	d.st.dialog, cmd = d.st.dialog.Update(msg)
	return d, tagDialogCmd(d.cfg.ID, cmd)
}

func (d Dropdown) handleDialogClosed(msg DialogClosedMsg) (Dropdown, tea.Cmd) {
	if !d.st.dialogOpen {
		return d, nil
	}
	d.st.dialogOpen = false
	d.st.dialog = nil
	debug.Logger().Debug("dropdown dialog closed", "id", d.cfg.ID, "submitted", msg.Submitted)
	_ = d.search.Focus()
	if !msg.Submitted {
		return d, nil
	}
	return d, emit(DropdownCreateRequestedMsg{ID: d.cfg.ID, Values: msg.Values})
}

// Open opens the overlay if it is reachable. It is what the trigger keys do.
func (d *Dropdown) Open() tea.Cmd {
	if !d.reachable() {
		return nil
	}
	return d.open()
}

// open resets the query and rebuilds the filtered view from the full options.
func (d *Dropdown) open() tea.Cmd {
	d.st.open = true
	d.search.SetValue("")
	d.st.filtered = slices.Clone(d.props.Options)
	if d.showsCustomValue() && !slices.Contains(d.st.filtered, d.props.Value) {
		d.st.filtered = append(d.st.filtered, d.props.Value)
	}
	d.highlightCurrentValue()
	debug.Logger().Debug("dropdown opened", "id", d.cfg.ID, "rows", len(d.st.filtered))
	return d.search.Focus()
}

func (d *Dropdown) close() {
	if d.st.open {
		debug.Logger().Debug("dropdown closed", "id", d.cfg.ID)
	}
	d.st.open = false
	d.st.dialogOpen = false
	d.st.dialog = nil
	d.search.Blur()
}

// showsCustomValue reports whether the value is a free-text entry made in
// this instance that is not among the options.
func (d Dropdown) showsCustomValue() bool {
	v := d.props.Value
	return d.cfg.FreeText && v != "" && v == d.st.customValue && !slices.Contains(d.props.Options, v)
}

func (d *Dropdown) filter() {
	query := strings.TrimSpace(d.search.Value())
	if query == "" {
		d.st.filtered = slices.Clone(d.props.Options)
	} else {
		d.st.filtered = d.caps.Matcher.Match(query, d.props.Options)
		if d.cfg.FreeText && !slices.Contains(d.props.Options, query) && !slices.Contains(d.st.filtered, query) {
			d.st.filtered = append(d.st.filtered, query)
		}
	}
	d.st.highlight = 0
	d.st.scroll = 0
}

func (d *Dropdown) highlightCurrentValue() {
	d.st.highlight = 0
	d.st.scroll = 0
	if i := slices.Index(d.st.filtered, d.props.Value); i >= 0 && d.props.Value != "" {
		d.st.highlight = i
		d.adjustScrollOffset()
	}
}

func (d *Dropdown) clampHighlight() {
	if n := d.rowCount(); d.st.highlight >= n {
		d.st.highlight = n - 1
	}
	if d.st.highlight < 0 {
		d.st.highlight = 0
	}
	d.adjustScrollOffset()
}

// adjustScrollOffset keeps the highlighted option inside the visible window.
// Action rows are always visible and do not scroll.
func (d *Dropdown) adjustScrollOffset() {
	h := d.st.highlight
	if h >= len(d.st.filtered) {
		h = len(d.st.filtered) - 1
	}
	if h < d.st.scroll {
		d.st.scroll = h
	}
	if h >= d.st.scroll+d.cfg.MaxVisible {
		d.st.scroll = h - d.cfg.MaxVisible + 1
	}
	maxOffset := len(d.st.filtered) - d.cfg.MaxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if d.st.scroll > maxOffset {
		d.st.scroll = maxOffset
	}
	if d.st.scroll < 0 {
		d.st.scroll = 0
	}
}

type rowAction int

const (
	rowNone rowAction = iota
	rowOption
	rowCreate
	rowRefresh
)

func (d Dropdown) actionCount() int {
	if d.cfg.Layout == LayoutDetailed {
		return 2
	}
	return 0
}

func (d Dropdown) rowCount() int {
	return len(d.st.filtered) + d.actionCount()
}

func (d Dropdown) rowAt(i int) rowAction {
	switch {
	case i < 0 || i >= d.rowCount():
		return rowNone
	case i < len(d.st.filtered):
		return rowOption
	case i == len(d.st.filtered):
		return rowCreate
	}
	return rowRefresh
}

func (d Dropdown) activateHighlighted() (Dropdown, tea.Cmd) {
	switch d.rowAt(d.st.highlight) {
	case rowOption:
		return d.selectOption(d.st.filtered[d.st.highlight])
	case rowCreate:
		return d.openDialog()
	case rowRefresh:
		debug.Logger().Debug("dropdown refresh requested", "id", d.cfg.ID)
		return d, emit(DropdownRefreshRequestedMsg{ID: d.cfg.ID})
	}
	return d, nil
}

func (d Dropdown) selectOption(value string) (Dropdown, tea.Cmd) {
	msg := DropdownSelectedMsg{ID: d.cfg.ID, Value: value}
	custom := false
	if i := slices.Index(d.props.Options, value); i >= 0 {
		msg.Metadata, msg.HasMetadata = MetadataAt(d.props.Metadata, i)
	} else if d.cfg.FreeText {
		d.st.customValue = value
		custom = true
	}
	if d.cfg.Presentation != PresentationAnchored {
		d.close()
	}
	debug.Logger().Debug("dropdown selected", "id", d.cfg.ID, "value", value, "custom", custom)
	return d, emit(msg)
}

func (d Dropdown) openDialog() (Dropdown, tea.Cmd) {
	if d.cfg.CreateDialog == nil || d.caps.Dialogs == nil {
		return d, nil
	}
	d.st.dialog = d.caps.Dialogs(*d.cfg.CreateDialog, OverlayWidthStandard)
	if d.st.dialog == nil {
		return d, nil
	}
	d.st.dialogOpen = true
	d.search.Blur()
	debug.Logger().Debug("dropdown dialog opened", "id", d.cfg.ID)
	return d, tagDialogCmd(d.cfg.ID, d.st.dialog.Init())
}

func (d Dropdown) copyValue() (Dropdown, tea.Cmd) {
	v := d.props.Value
	if v == "" {
		return d, nil
	}
	err := writeClipboard(v)
	if err != nil {
		debug.Logger().Warn("dropdown copy failed", "id", d.cfg.ID, "err", err)
	}
	return d, emit(DropdownCopiedMsg{ID: d.cfg.ID, Value: v, Err: err})
}

// Focus focuses the dropdown. An open overlay regains its search cursor.
func (d *Dropdown) Focus() tea.Cmd {
	d.st.focused = true
	if d.st.open && !d.st.dialogOpen {
		return d.search.Focus()
	}
	return nil
}

// Blur removes focus and closes the overlay (anchored overlays stay open).
func (d *Dropdown) Blur() {
	d.st.focused = false
	if d.cfg.Presentation == PresentationAnchored {
		d.st.dialogOpen = false
		d.st.dialog = nil
		d.search.Blur()
		return
	}
	d.close()
}

// Focused returns whether the dropdown has focus.
func (d Dropdown) Focused() bool {
	return d.st.focused
}

// ID returns the configured identifier.
func (d Dropdown) ID() string {
	return d.cfg.ID
}

// State returns the overlay state.
func (d Dropdown) State() DropdownState {
	switch {
	case d.st.open && d.st.dialogOpen:
		return DropdownDialogOpen
	case d.st.open:
		return DropdownOpen
	}
	return DropdownClosed
}

// IsOpen returns whether the overlay is visible.
func (d Dropdown) IsOpen() bool {
	return d.st.open
}

// DialogOpen returns whether the creation dialog is visible.
func (d Dropdown) DialogOpen() bool {
	return d.st.dialogOpen
}

// FilteredOptions returns a copy of the current filtered view.
func (d Dropdown) FilteredOptions() []string {
	return slices.Clone(d.st.filtered)
}

// HighlightIndex returns the highlighted row, counting action rows after the
// options.
func (d Dropdown) HighlightIndex() int {
	return d.st.highlight
}

// Query returns the current search text.
func (d Dropdown) Query() string {
	return d.search.Value()
}

// TriggerText returns the text the trigger shows: the value when it is an
// option or this instance's free-text entry, otherwise the placeholder.
func (d Dropdown) TriggerText() string {
	if d.HasValue() {
		return d.props.Value
	}
	return placeholderFor(d.cfg.Name)
}

// HasValue reports whether the trigger shows the value rather than the
// placeholder.
func (d Dropdown) HasValue() bool {
	v := d.props.Value
	return v != "" && (slices.Contains(d.props.Options, v) || d.showsCustomValue())
}

// TriggerIcon returns the glyph for the value's metadata icon, or "".
func (d Dropdown) TriggerIcon() string {
	if d.props.Value == "" {
		return ""
	}
	meta, ok := MetadataAt(d.props.Metadata, slices.Index(d.props.Options, d.props.Value))
	if !ok {
		return ""
	}
	return iconGlyph(meta.Icon)
}
