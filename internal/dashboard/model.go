// Package dashboard implements the interactive terminal dashboard: a
// tabbed, role-aware view over animals, enclosures, tickets and staff.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

// Tab identifies which data view is active.
type Tab int

const (
	// TabAnimals lists every animal.
	TabAnimals Tab = iota
	// TabEnclosures lists every enclosure.
	TabEnclosures
	// TabTickets shows the shared pool of unassigned tickets.
	TabTickets
	// TabMyTickets shows the tickets the operator accepted. Hidden for
	// non-operators.
	TabMyTickets
	// TabUsers lists staff. Hidden for operators, who may not view users.
	TabUsers
)

func (t Tab) title() string {
	switch t {
	case TabAnimals:
		return "Animals"
	case TabEnclosures:
		return "Enclosures"
	case TabTickets:
		return "Tickets"
	case TabMyTickets:
		return "My Tickets"
	case TabUsers:
		return "Staff"
	}
	return "?"
}

// requestTimeout bounds each backend call made by the dashboard.
const requestTimeout = 10 * time.Second

// statusFadeDelay is how long an action notice stays in the status bar.
const statusFadeDelay = 3 * time.Second

// dataLoadedMsg delivers fetched rows for one tab. For ticket tabs the
// raw tickets ride along so accept/complete can resolve the selected id.
type dataLoadedMsg struct {
	tab     Tab
	columns []table.Column
	rows    []table.Row
	tickets []zoosdk.Ticket
}

// errMsg surfaces a failed backend call in the status bar.
type errMsg struct {
	err error
}

// actionDoneMsg reports a completed ticket transition; the active tab is
// reloaded afterwards.
type actionDoneMsg struct {
	note string
}

// statusFadeMsg clears the status bar notice.
type statusFadeMsg struct{}

// Model is the bubbletea model for the dashboard.
type Model struct {
	session *zoosdk.Session
	client  *zoosdk.Client
	keys    keyMap

	tabs   []Tab
	active int

	table   table.Model
	tickets []zoosdk.Ticket

	status  string
	lastErr error
	width   int
	height  int
}

// New builds the dashboard for an authenticated session. The visible
// tabs follow the session's role: operators see their ticket queue but
// not the staff list, and only operators get the accept/complete keys.
func New(session *zoosdk.Session) Model {
	tabs := []Tab{TabAnimals, TabEnclosures, TabTickets}
	if session.CanAcceptTickets() {
		tabs = append(tabs, TabMyTickets)
	}
	if session.CanManageUsers() {
		tabs = append(tabs, TabUsers)
	}

	t := table.New(table.WithFocused(true))
	return Model{
		session: session,
		client:  session.Client(),
		keys:    defaultKeyMap(),
		tabs:    tabs,
		table:   t,
	}
}

// Run starts the dashboard and blocks until the user quits.
func Run(session *zoosdk.Session) error {
	if !session.IsAuthenticated() {
		return fmt.Errorf("not logged in: run 'zooctl login' first")
	}
	_, err := tea.NewProgram(New(session), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.loadTab(m.currentTab())
}

func (m Model) currentTab() Tab {
	return m.tabs[m.active]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(msg.Height - 5)
		return m, nil

	case dataLoadedMsg:
		if msg.tab != m.currentTab() {
			return m, nil
		}
		m.lastErr = nil
		m.tickets = msg.tickets
		m.table.SetRows(nil)
		m.table.SetColumns(msg.columns)
		m.table.SetRows(msg.rows)
		m.table.GotoTop()
		return m, nil

	case errMsg:
		m.lastErr = msg.err
		return m, nil

	case actionDoneMsg:
		m.status = msg.note
		return m, tea.Batch(
			m.loadTab(m.currentTab()),
			tea.Tick(statusFadeDelay, func(time.Time) tea.Msg { return statusFadeMsg{} }),
		)

	case statusFadeMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.active = (m.active + 1) % len(m.tabs)
			return m, m.loadTab(m.currentTab())

		case key.Matches(msg, m.keys.PrevTab):
			m.active = (m.active - 1 + len(m.tabs)) % len(m.tabs)
			return m, m.loadTab(m.currentTab())

		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadTab(m.currentTab())

		case key.Matches(msg, m.keys.Accept):
			if m.currentTab() == TabTickets && m.session.CanAcceptTickets() {
				return m, m.ticketAction("accepted", m.client.AcceptTicket)
			}

		case key.Matches(msg, m.keys.Complete):
			if m.currentTab() == TabMyTickets && m.session.CanAcceptTickets() {
				return m, m.ticketAction("completed", m.client.CompleteTicket)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// ticketAction runs accept or complete against the selected ticket.
func (m Model) ticketAction(verb string, action func(context.Context, int64) (*zoosdk.Ticket, error)) tea.Cmd {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.tickets) {
		return nil
	}
	id := m.tickets[cursor].ID

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		ticket, err := action(ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return actionDoneMsg{note: fmt.Sprintf("Ticket %s: %s", verb, ticket.Title)}
	}
}

func (m Model) View() string {
	principal := m.session.CurrentUser()
	header := titleStyle.Render(fmt.Sprintf(" Zoo Dashboard | %s (%s) ",
		principal.DisplayName(), principal.Role.Label()))

	var tabBar []string
	for i, tab := range m.tabs {
		style := tabStyle
		if i == m.active {
			style = activeTabStyle
		}
		tabBar = append(tabBar, style.Render(tab.title()))
	}

	status := m.statusLine()

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		strings.Join(tabBar, " "),
		m.table.View(),
		status,
	)
}

func (m Model) statusLine() string {
	if m.lastErr != nil {
		return errorStyle.Render("error: " + m.lastErr.Error())
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}

	help := "tab: switch  r: refresh  q: quit"
	switch {
	case m.currentTab() == TabTickets && m.session.CanAcceptTickets():
		help = "a: accept  " + help
	case m.currentTab() == TabMyTickets && m.session.CanAcceptTickets():
		help = "c: complete  " + help
	}
	return statusStyle.Render(help)
}
