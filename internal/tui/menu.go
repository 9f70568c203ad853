// Package tui is the interactive inventory menu.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/RichardEWillis/pi-label-inventory/internal/session"
)

// Title is shown above the menu.
const Title = "Package Inventory and Label Generator"

type action string

const (
	actOpen   action = "open"
	actSave   action = "save"
	actList   action = "list"
	actAdd    action = "add"
	actEdit   action = "edit"
	actLabels action = "labels"
	actExit   action = "exit"
)

type item struct {
	key    string
	title  string
	action action
}

func (i item) Title() string       { return fmt.Sprintf("[%s] %s", i.key, i.title) }
func (i item) Description() string { return "" }
func (i item) FilterValue() string { return i.title }

var menuItems = []item{
	{key: "o", title: "Open Inventory File", action: actOpen},
	{key: "s", title: "Save Inventory File", action: actSave},
	{key: "l", title: "List Inventory", action: actList},
	{key: "a", title: "Add Parcel", action: actAdd},
	{key: "e", title: "Edit Parcel", action: actEdit},
	{key: "p", title: "Generate Labels", action: actLabels},
	{key: "x", title: "Exit", action: actExit},
}

type state int

const (
	stateMenu state = iota
	statePrompt
	stateMessage
)

// Model is the bubbletea model for the menu. Session calls run
// synchronously inside Update.
type Model struct {
	session *session.Session
	list    list.Model
	input   textinput.Model
	state   state

	flow   *flow
	prompt *prompt

	message string
	failed  bool
}

// New builds the menu over s, which may already hold a loaded inventory.
func New(s *session.Session) Model {
	items := make([]list.Item, len(menuItems))
	for i, it := range menuItems {
		items[i] = it
	}

	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)
	d.Styles.SelectedTitle = lipgloss.NewStyle().Foreground(Green).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(Green).PaddingLeft(1)

	l := list.New(items, d, 40, 20)
	l.Title = Title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = TitleStyle

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 256

	return Model{
		session: s,
		list:    l,
		input:   ti,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, min(msg.Height-4, 20))
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.state {
		case stateMenu:
			return m.updateMenu(msg)
		case statePrompt:
			return m.updatePrompt(msg)
		case stateMessage:
			m.state = stateMenu
			return m, nil
		}
	}

	if m.state == statePrompt {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	for _, it := range menuItems {
		if it.key == key {
			return m.run(it.action)
		}
	}
	switch key {
	case "enter":
		if it, ok := m.list.SelectedItem().(item); ok {
			return m.run(it.action)
		}
		return m, nil
	case "q", "esc":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) run(a action) (tea.Model, tea.Cmd) {
	switch a {
	case actExit:
		return m, tea.Quit
	case actList:
		rows := m.session.Rows()
		if len(rows) == 0 {
			return m.show("No Records", false), nil
		}
		return m.show(strings.Join(rows, "\n"), false), nil
	}
	return m.start(newFlow(a, m.session))
}

func (m Model) show(text string, failed bool) Model {
	m.state = stateMessage
	m.message = text
	m.failed = failed
	m.flow = nil
	m.prompt = nil
	m.input.Blur()
	return m
}

func (m Model) fail(err error) Model {
	return m.show(describe(err), true)
}

func (m Model) View() string {
	var b strings.Builder
	switch m.state {
	case stateMenu:
		b.WriteString(m.list.View())
		b.WriteString("\n")
		b.WriteString(StatusStyle.Render(m.status()))
		b.WriteString("\n")
		b.WriteString(FooterStyle.Render("↑/↓: Navigate | Enter or key: Select | q: Quit"))
	case statePrompt:
		b.WriteString(TitleStyle.Render(m.flow.title))
		b.WriteString("\n\n")
		for _, line := range m.flow.transcript {
			b.WriteString(PromptStyle.Render(line))
			b.WriteString("\n")
		}
		b.WriteString(PromptStyle.Render(m.prompt.text()))
		b.WriteString("\n")
		b.WriteString(PromptStyle.Render(m.input.View()))
		b.WriteString("\n")
		b.WriteString(FooterStyle.Render("Enter: Accept | Esc: Cancel"))
	case stateMessage:
		style := PromptStyle
		if m.failed {
			style = ErrorStyle
		}
		b.WriteString(style.Render(m.message))
		b.WriteString("\n")
		b.WriteString(FooterStyle.Render("Hit a key to continue"))
	}
	return b.String()
}

func (m Model) status() string {
	var parts []string
	if n := m.session.Inventory.Size(); n == 0 {
		parts = append(parts, "No Records")
	} else {
		parts = append(parts, fmt.Sprintf("Record Count: %d", n))
	}
	if m.session.Filename != "" {
		parts = append(parts, fmt.Sprintf("Loaded File: %s", m.session.Filename))
	}
	return strings.Join(parts, " | ")
}

// Run starts the menu and blocks until the user exits.
func Run(s *session.Session, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(New(s), opts...).Run()
	return err
}
