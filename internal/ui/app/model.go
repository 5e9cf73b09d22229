package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	collectiondto "github.com/addielponce/anki-progress-circle/internal/modules/collection/dto"
	settingsdto "github.com/addielponce/anki-progress-circle/internal/modules/settings/dto"
	apperrors "github.com/addielponce/anki-progress-circle/internal/platform/errors"
	"github.com/addielponce/anki-progress-circle/internal/ui/components"
	"github.com/addielponce/anki-progress-circle/internal/ui/theme"
	decksview "github.com/addielponce/anki-progress-circle/internal/ui/views/decks"
	ringview "github.com/addielponce/anki-progress-circle/internal/ui/views/ring"
)

// Host lifecycle tags replayed by the simulator.
const (
	EventStateDidChange    = "state_did_change"
	EventShowQuestion      = "reviewer_did_show_question"
	EventMainWindowDidInit = "main_window_did_init"
)

var hostStates = []string{"deckBrowser", "overview", "review"}

// ─── ports ───────────────────────────────────────────────────────────────────

// MenuAction is one entry of the add-on's main-window menu.
type MenuAction struct {
	ID    string
	Label string
}

// Menu is what the add-on installs when the main window starts.
type Menu struct {
	Title   string
	Actions []MenuAction
}

// Frame is what the add-on answered to one event.
type Frame struct {
	Visible   bool
	Refreshed bool
	Done      int
	Total     int
	Percent   float64
	Menu      *Menu
}

// Driver delivers host events to the add-on, in process or over the plugin
// transport.
type Driver interface {
	Dispatch(ctx context.Context, kind, state, oldState string) (Frame, error)
	Toggle(ctx context.Context) (Frame, error)
}

type collectionPort interface {
	List(ctx context.Context) ([]collectiondto.DeckOutput, error)
	Current(ctx context.Context) (collectiondto.DeckOutput, error)
	Select(ctx context.Context, deckID string) (collectiondto.DeckOutput, error)
	Next(ctx context.Context) (collectiondto.DeckOutput, error)
	Answer(ctx context.Context) (collectiondto.DeckOutput, error)
	Add(ctx context.Context, count int) (collectiondto.DeckOutput, error)
}

type settingsPort interface {
	Show(ctx context.Context) (settingsdto.ConfigOutput, error)
	Set(ctx context.Context, key, value string) (settingsdto.ConfigOutput, error)
	Reset(ctx context.Context) (settingsdto.ConfigOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabOverlay tabID = iota
	tabDecks
	tabSettings
	tabCount
)

var tabLabels = [tabCount]string{"Overlay", "Decks", "Settings"}

// ─── async messages ──────────────────────────────────────────────────────────

// hostMsg reports one simulated host interaction.
type hostMsg struct {
	status  string
	state   string
	deck    *collectiondto.DeckOutput
	frame   Frame
	toggled bool
	err     error
}

type configMsg struct {
	cfg settingsdto.ConfigOutput
	err error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Answer  key.Binding
	AddCard key.Binding
	Next    key.Binding
	Toggle  key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Answer:  key.NewBinding(key.WithKeys(" ", "a"), key.WithHelp("space/a", "answer card")),
		AddCard: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "add card")),
		Next:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "next deck")),
		Toggle:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle circle")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Answer, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Answer, k.AddCard, k.Next, k.Toggle},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It plays the flashcard host: it owns
// the collection, replays lifecycle events to the add-on through the driver
// and previews the circle the add-on would paint.
type Model struct {
	driver     Driver
	collection collectionPort
	settings   settingsPort
	addonName  string

	decksView decksview.Model

	state    string
	deck     collectiondto.DeckOutput
	hasDeck  bool
	frame    Frame
	progress ringview.Progress
	menu     *Menu
	cfg      settingsdto.ConfigOutput

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// NewModel builds the simulator. addonName labels the status bar; empty means
// the add-on runs in process.
func NewModel(driver Driver, collection collectionPort, settings settingsPort, addonName string) Model {
	return Model{
		driver:     driver,
		collection: collection,
		settings:   settings,
		addonName:  addonName,
		decksView:  decksview.New(collection),
		state:      "deckBrowser",
		activeTab:  tabOverlay,
		keys:       defaultKeys(),
		help:       help.New(),
		palette:    components.NewPalette(),
		status:     "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.decksView.Init(),
		m.loadConfigCmd(),
		m.startCmd(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.decksView.SetSize(m.width, max(m.height-6, 1))

	case hostMsg:
		return m.applyHost(msg)

	case configMsg:
		if msg.err != nil {
			m.status = "config: " + msg.err.Error()
		} else {
			m.cfg = msg.cfg
		}

	case decksview.SelectMsg:
		return m, m.selectDeckCmd(msg.DeckID)

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.activeTab == tabDecks && m.decksView.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case msg.String() == "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			return m, m.palette.Open()
		case key.Matches(msg, m.keys.Toggle):
			return m, m.toggleCmd()
		case key.Matches(msg, m.keys.Answer):
			return m, m.answerCmd()
		case key.Matches(msg, m.keys.AddCard):
			return m, m.addCmd(1)
		case key.Matches(msg, m.keys.Next):
			return m, m.nextDeckCmd()
		}
	}

	if m.activeTab == tabDecks {
		var cmd tea.Cmd
		m.decksView, cmd = m.decksView.Update(msg)
		cmds = append(cmds, cmd)
	} else if loaded, ok := msg.(decksview.LoadedMsg); ok {
		var cmd tea.Cmd
		m.decksView, cmd = m.decksView.Update(loaded)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) applyHost(msg hostMsg) (tea.Model, tea.Cmd) {
	if msg.deck != nil {
		m.deck = *msg.deck
		m.hasDeck = true
	}
	if msg.state != "" {
		m.state = msg.state
	}
	if msg.err != nil {
		m.status = msg.status + ": " + msg.err.Error()
		return m, m.decksView.Reload()
	}
	if msg.frame.Menu != nil {
		m.menu = msg.frame.Menu
	}
	m.frame = msg.frame
	// A visible frame only carries numbers when the add-on recomputed.
	if msg.frame.Visible && (msg.frame.Refreshed || msg.toggled) {
		m.progress = ringview.Progress{Done: msg.frame.Done, Total: msg.frame.Total, Percent: msg.frame.Percent}
	}
	m.status = msg.status
	return m, m.decksView.Reload()
}

// ─── palette ─────────────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		m.status = "ready"
		return m, nil
	}
	args := fields[1:]
	switch fields[0] {
	case "overlay:toggle":
		return m, m.toggleCmd()
	case "review:answer":
		return m, m.answerCmd()
	case "deck:add":
		n := 1
		if len(args) > 0 {
			parsed, err := strconv.Atoi(args[0])
			if err != nil || parsed < 1 {
				m.status = "deck:add: count must be a positive integer"
				return m, nil
			}
			n = parsed
		}
		return m, m.addCmd(n)
	case "deck:select":
		if len(args) != 1 {
			m.status = "usage: deck:select <id>"
			return m, nil
		}
		return m, m.selectDeckCmd(args[0])
	case "deck:next":
		return m, m.nextDeckCmd()
	case "host:state":
		if len(args) != 1 {
			m.status = "usage: host:state <" + strings.Join(hostStates, "|") + ">"
			return m, nil
		}
		return m, m.changeStateCmd(args[0])
	case "config:set":
		if len(args) < 2 {
			m.status = "usage: config:set <key> <value>"
			return m, nil
		}
		return m, m.setConfigCmd(args[0], strings.Join(args[1:], " "))
	case "config:reset":
		return m, m.resetConfigCmd()
	case "menu:run":
		if len(args) != 1 {
			m.status = "usage: menu:run <action>"
			return m, nil
		}
		return m.runMenuAction(args[0])
	default:
		m.status = "unknown command: " + fields[0]
		return m, nil
	}
}

func (m Model) runMenuAction(id string) (tea.Model, tea.Cmd) {
	if m.menu == nil {
		m.status = "menu not installed yet"
		return m, nil
	}
	for _, action := range m.menu.Actions {
		if action.ID != id {
			continue
		}
		switch id {
		case "toggle":
			return m, m.toggleCmd()
		case "settings":
			m.activeTab = tabSettings
			m.status = action.Label
			return m, m.loadConfigCmd()
		}
	}
	m.status = "unknown menu action: " + id
	return m, nil
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) startCmd() tea.Cmd {
	driver, collection := m.driver, m.collection
	return func() tea.Msg {
		ctx := context.Background()
		out := hostMsg{status: "main window ready"}
		if deck, err := collection.Current(ctx); err == nil {
			out.deck = &deck
		} else if !errors.Is(err, apperrors.ErrNoCollection) {
			out.status, out.err = "collection", err
			return out
		}
		out.frame, out.err = driver.Dispatch(ctx, EventMainWindowDidInit, "", "")
		if out.err != nil {
			out.status = EventMainWindowDidInit
		}
		return out
	}
}

func (m Model) toggleCmd() tea.Cmd {
	driver := m.driver
	return func() tea.Msg {
		frame, err := driver.Toggle(context.Background())
		status := "circle hidden"
		if frame.Visible {
			status = "circle shown"
		}
		return hostMsg{status: status, frame: frame, toggled: true, err: err}
	}
}

// answerCmd completes the current card; the reviewer then shows the next
// question, which is the add-on's refresh trigger.
func (m Model) answerCmd() tea.Cmd {
	driver, collection, state := m.driver, m.collection, m.state
	return func() tea.Msg {
		ctx := context.Background()
		if state != "review" {
			return hostMsg{status: "answer", err: fmt.Errorf("%w: not reviewing, use host:state review", apperrors.ErrInvalidInput)}
		}
		deck, err := collection.Answer(ctx)
		if err != nil {
			return hostMsg{status: "answer", err: err}
		}
		frame, err := driver.Dispatch(ctx, EventShowQuestion, "", "")
		return hostMsg{status: fmt.Sprintf("answered card in %s", deck.Name), deck: &deck, frame: frame, err: err}
	}
}

func (m Model) addCmd(n int) tea.Cmd {
	driver, collection, state := m.driver, m.collection, m.state
	return func() tea.Msg {
		ctx := context.Background()
		deck, err := collection.Add(ctx, n)
		if err != nil {
			return hostMsg{status: "add", err: err}
		}
		frame, err := driver.Dispatch(ctx, EventStateDidChange, state, state)
		return hostMsg{status: fmt.Sprintf("added %d card(s) to %s", n, deck.Name), deck: &deck, frame: frame, err: err}
	}
}

func (m Model) nextDeckCmd() tea.Cmd {
	collection, state := m.collection, m.state
	return m.openDeckCmd(func(ctx context.Context) (collectiondto.DeckOutput, error) {
		return collection.Next(ctx)
	}, state)
}

func (m Model) selectDeckCmd(deckID string) tea.Cmd {
	collection, state := m.collection, m.state
	return m.openDeckCmd(func(ctx context.Context) (collectiondto.DeckOutput, error) {
		return collection.Select(ctx, deckID)
	}, state)
}

// openDeckCmd switches deck and moves the host to the deck overview.
func (m Model) openDeckCmd(pick func(context.Context) (collectiondto.DeckOutput, error), oldState string) tea.Cmd {
	driver := m.driver
	return func() tea.Msg {
		ctx := context.Background()
		deck, err := pick(ctx)
		if err != nil {
			return hostMsg{status: "deck", err: err}
		}
		frame, err := driver.Dispatch(ctx, EventStateDidChange, "overview", oldState)
		return hostMsg{status: "studying " + deck.Name, state: "overview", deck: &deck, frame: frame, err: err}
	}
}

func (m Model) changeStateCmd(state string) tea.Cmd {
	driver, old := m.driver, m.state
	return func() tea.Msg {
		frame, err := driver.Dispatch(context.Background(), EventStateDidChange, state, old)
		return hostMsg{status: "state " + old + " → " + state, state: state, frame: frame, err: err}
	}
}

func (m Model) loadConfigCmd() tea.Cmd {
	settings := m.settings
	return func() tea.Msg {
		cfg, err := settings.Show(context.Background())
		return configMsg{cfg: cfg, err: err}
	}
}

// setConfigCmd writes one key and replays the current state so a visible
// circle repaints with the new style.
func (m Model) setConfigCmd(key, value string) tea.Cmd {
	settings := m.settings
	return m.configChangeCmd("set "+key, func(ctx context.Context) (settingsdto.ConfigOutput, error) {
		return settings.Set(ctx, key, value)
	})
}

func (m Model) resetConfigCmd() tea.Cmd {
	settings := m.settings
	return m.configChangeCmd("restored defaults", settings.Reset)
}

func (m Model) configChangeCmd(status string, write func(context.Context) (settingsdto.ConfigOutput, error)) tea.Cmd {
	driver, state := m.driver, m.state
	return tea.Sequence(
		func() tea.Msg {
			cfg, err := write(context.Background())
			return configMsg{cfg: cfg, err: err}
		},
		func() tea.Msg {
			frame, err := driver.Dispatch(context.Background(), EventStateDidChange, state, state)
			return hostMsg{status: status, frame: frame, err: err}
		},
	)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()

	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView(contentH)
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView(height int) string {
	switch m.activeTab {
	case tabDecks:
		return m.decksView.View()
	case tabSettings:
		return m.renderSettings()
	default:
		return m.renderOverlay(height)
	}
}

func (m Model) renderOverlay(height int) string {
	var sb strings.Builder
	if m.hasDeck {
		sb.WriteString(theme.Title.Render(m.deck.Name) + "  ")
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("new %d · learning %d · review %d",
			m.deck.New, m.deck.Learning, m.deck.Review)))
	} else {
		sb.WriteString(theme.Muted.Render("no collection"))
	}
	sb.WriteString("\n" + theme.Muted.Render("host state: "+m.state) + "\n\n")

	if !m.frame.Visible {
		sb.WriteString(theme.Muted.Render("circle hidden, press t to toggle"))
	} else {
		radius := min(max((height-6)/2, 3), 8)
		sb.WriteString(ringview.Render(m.progress, ringview.Style{
			MainColor:      m.cfg.MainColor,
			MainOpacity:    m.cfg.MainOpacity,
			BackColor:      m.cfg.BackColor,
			BackOpacity:    m.cfg.BackOpacity,
			HideMainAtZero: m.cfg.HideMainAtZero,
		}, radius))
	}

	if m.menu != nil {
		labels := make([]string, 0, len(m.menu.Actions))
		for _, action := range m.menu.Actions {
			labels = append(labels, action.ID+": "+action.Label)
		}
		sb.WriteString("\n\n" + theme.Hot.Render(m.menu.Title) + "  " + theme.Muted.Render(strings.Join(labels, "  ")))
	}
	return theme.App.Width(max(m.width, 1)).Render(sb.String())
}

func (m Model) renderSettings() string {
	rows := [][2]string{
		{"main_color", m.cfg.MainColor},
		{"main_color_opacity", strconv.Itoa(m.cfg.MainOpacity)},
		{"back_color", m.cfg.BackColor},
		{"back_color_opacity", strconv.Itoa(m.cfg.BackOpacity)},
		{"mask_circles", strconv.FormatBool(m.cfg.MaskCircles)},
		{"hide_main_circle_at_zero", strconv.FormatBool(m.cfg.HideMainAtZero)},
		{"stroke_linecap", m.cfg.StrokeLinecap},
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Settings") + "  " + theme.Muted.Render(m.cfg.Package) + "\n\n")
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%-26s %s\n", row[0], row[1]))
	}
	sb.WriteString("\n" + theme.Muted.Render(":config:set <key> <value>  :config:reset"))
	return theme.App.Width(max(m.width, 1)).Render(sb.String())
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "progress-circle  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.addonName != "" {
		left = theme.Hot.Render("⧉ "+m.addonName) + "  " + left
	}
	right := theme.Muted.Render("?:help  t:toggle  space:answer  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}
