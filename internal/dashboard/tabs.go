package dashboard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

// loadTab fetches the active tab's data asynchronously.
func (m Model) loadTab(tab Tab) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		switch tab {
		case TabAnimals:
			animals, err := client.ListAnimals(ctx)
			if err != nil {
				return errMsg{err}
			}
			return animalsLoaded(animals)

		case TabEnclosures:
			enclosures, err := client.ListEnclosures(ctx)
			if err != nil {
				return errMsg{err}
			}
			return enclosuresLoaded(enclosures)

		case TabTickets:
			tickets, err := client.DashboardTickets(ctx)
			if err != nil {
				return errMsg{err}
			}
			return ticketsLoaded(tab, tickets)

		case TabMyTickets:
			tickets, err := client.MyTickets(ctx)
			if err != nil {
				return errMsg{err}
			}
			return ticketsLoaded(tab, tickets)

		case TabUsers:
			users, err := client.ListUsers(ctx)
			if err != nil {
				return errMsg{err}
			}
			return usersLoaded(users)
		}
		return nil
	}
}

func optID(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}

func animalsLoaded(animals []zoosdk.Animal) dataLoadedMsg {
	rows := make([]table.Row, len(animals))
	for i, a := range animals {
		rows[i] = table.Row{
			strconv.FormatInt(a.ID, 10),
			a.Name,
			a.Category.Label(),
			fmt.Sprintf("%.1f kg", a.Weight),
			optID(a.Enclosure),
		}
	}
	return dataLoadedMsg{
		tab: TabAnimals,
		columns: []table.Column{
			{Title: "ID", Width: 5},
			{Title: "Name", Width: 20},
			{Title: "Category", Width: 14},
			{Title: "Weight", Width: 10},
			{Title: "Enclosure", Width: 10},
		},
		rows: rows,
	}
}

func enclosuresLoaded(enclosures []zoosdk.Enclosure) dataLoadedMsg {
	rows := make([]table.Row, len(enclosures))
	for i, e := range enclosures {
		rows[i] = table.Row{
			strconv.FormatInt(e.ID, 10),
			e.Name,
			fmt.Sprintf("%.0f m2", e.Area),
			strconv.Itoa(len(e.Animals)),
			e.Description,
		}
	}
	return dataLoadedMsg{
		tab: TabEnclosures,
		columns: []table.Column{
			{Title: "ID", Width: 5},
			{Title: "Name", Width: 20},
			{Title: "Area", Width: 10},
			{Title: "Animals", Width: 8},
			{Title: "Description", Width: 30},
		},
		rows: rows,
	}
}

func ticketsLoaded(tab Tab, tickets []zoosdk.Ticket) dataLoadedMsg {
	rows := make([]table.Row, len(tickets))
	for i, t := range tickets {
		rows[i] = table.Row{
			strconv.FormatInt(t.ID, 10),
			t.Title,
			string(t.Urgency),
			t.RecommendedRole.Label(),
			t.CreationDate,
		}
	}
	return dataLoadedMsg{
		tab: tab,
		columns: []table.Column{
			{Title: "ID", Width: 5},
			{Title: "Title", Width: 30},
			{Title: "Urgency", Width: 8},
			{Title: "Role", Width: 20},
			{Title: "Created", Width: 12},
		},
		rows:    rows,
		tickets: tickets,
	}
}

func usersLoaded(users []zoosdk.User) dataLoadedMsg {
	rows := make([]table.Row, len(users))
	for i, u := range users {
		operatorType := "-"
		if u.OperatorType != nil {
			operatorType = u.OperatorType.Label()
		}
		rows[i] = table.Row{
			strconv.FormatInt(u.ID, 10),
			u.Username,
			u.Name + " " + u.LastName,
			u.Role.Label(),
			operatorType,
		}
	}
	return dataLoadedMsg{
		tab: TabUsers,
		columns: []table.Column{
			{Title: "ID", Width: 5},
			{Title: "Username", Width: 14},
			{Title: "Name", Width: 22},
			{Title: "Role", Width: 15},
			{Title: "Type", Width: 20},
		},
		rows: rows,
	}
}
