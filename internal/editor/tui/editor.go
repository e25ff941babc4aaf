package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zigbridge/zigbridge/internal/channel"
	"github.com/zigbridge/zigbridge/internal/channelconfig"
)

// editorKeyMap defines key bindings for the editor
type editorKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Apply  key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k editorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Apply, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k editorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Apply, k.Quit},
	}
}

func defaultKeyMap() editorKeyMap {
	return editorKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Apply: key.NewBinding(
			key.WithKeys("a", "s"),
			key.WithHelp("a", "apply"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Result reports what the editor did when it exited.
type Result struct {
	// Applied is true when the user applied their edits
	Applied bool
	// Changed is true when the update protocol reported a real change;
	// the caller should persist the channel's parameters
	Changed bool
	// Err holds a failure from the update protocol, if any
	Err error
}

// Model is the bubbletea model for the channel parameter editor.
type Model struct {
	channel     *channel.Channel
	descriptors []channelconfig.ParameterDescriptor

	// pending holds the edited values, keyed by parameter ID
	pending map[string]bool
	// original holds the values at editor start, for dirty tracking
	original map[string]bool

	cursor int
	keys   editorKeyMap
	help   help.Model

	result Result
	done   bool
}

// NewModel creates an editor for one channel. Current parameter values are
// read from the channel's snapshot; parameters that were never set show
// their catalogue defaults.
func NewModel(ch *channel.Channel) Model {
	descriptors := ch.Reverse().GetConfiguration()
	params := ch.Parameters()

	pending := make(map[string]bool, len(descriptors))
	original := make(map[string]bool, len(descriptors))
	for _, d := range descriptors {
		v, _ := params[d.ID].(bool)
		pending[d.ID] = v
		original[d.ID] = v
	}

	return Model{
		channel:     ch,
		descriptors: descriptors,
		pending:     pending,
		original:    original,
		keys:        defaultKeyMap(),
		help:        help.New(),
	}
}

// Result returns the editor outcome. Only meaningful after the program has
// finished.
func (m Model) Result() Result {
	return m.result
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.descriptors)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Toggle):
			id := m.descriptors[m.cursor].ID
			m.pending[id] = !m.pending[id]

		case key.Matches(msg, m.keys.Apply):
			m.result = m.apply()
			m.done = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// apply funnels the pending edits through the channel's update protocol.
func (m Model) apply() Result {
	changes := make(channelconfig.Configuration, len(m.pending))
	for id, v := range m.pending {
		changes[id] = v
	}

	changed, err := m.channel.ApplyParameterChanges(changes)
	return Result{Applied: true, Changed: changed, Err: err}
}

// View implements tea.Model
func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Channel Settings: %s", m.channel.Name())))
	b.WriteString("\n")

	for i, d := range m.descriptors {
		cursor := "  "
		label := labelStyle.Render(d.Label)
		if i == m.cursor {
			cursor = selectedStyle.Render("> ")
			label = selectedStyle.Render(d.Label)
		}

		value := valueOffStyle.Render("off")
		if m.pending[d.ID] {
			value = valueOnStyle.Render("on")
		}

		dirty := ""
		if m.pending[d.ID] != m.original[d.ID] {
			dirty = dirtyStyle.Render(" *")
		}

		b.WriteString(fmt.Sprintf("%s%s  [%s]%s\n", cursor, label, value, dirty))
		b.WriteString(descriptionStyle.Render(d.Description))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	b.WriteString("\n")

	return b.String()
}
