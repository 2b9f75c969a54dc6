package tui

import (
	"fmt"
	"strings"

	"github.com/alligatorO15/fin-lists/internal/grouping"
	"github.com/alligatorO15/fin-lists/internal/models"
	"github.com/charmbracelet/lipgloss"
)

const noData = "No data"

type Styles struct {
	Tab        lipgloss.Style
	ActiveTab  lipgloss.Style
	GroupName  lipgloss.Style
	Cursor     lipgloss.Style
	Dragged    lipgloss.Style
	Month      lipgloss.Style
	Income     lipgloss.Style
	Expense    lipgloss.Style
	Transfer   lipgloss.Style
	Subtitle   lipgloss.Style
	Status     lipgloss.Style
	Error      lipgloss.Style
	FilterLine lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		Tab:        lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#828282")),
		ActiveTab:  lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#d29b1d")),
		GroupName:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#bbbbbb")),
		Cursor:     lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Dragged:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d29b1d")),
		Month:      lipgloss.NewStyle().Bold(true).Underline(true),
		Income:     lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")),
		Expense:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		Transfer:   lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")),
		Subtitle:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		FilterLine: lipgloss.NewStyle().Foreground(lipgloss.Color("#bbbbbb")),
	}
}

func (m Model) View() string {
	var body string
	if m.pane == paneAccounts {
		body = m.accountsView()
	} else {
		body = m.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.tabsView(),
		body,
		m.statusView(),
	)
}

func (m Model) tabsView() string {
	accounts, records := m.styles.Tab, m.styles.Tab
	if m.pane == paneAccounts {
		accounts = m.styles.ActiveTab
	} else {
		records = m.styles.ActiveTab
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		accounts.Render("Счета"),
		records.Render("Записи"),
	)
}

func (m Model) statusView() string {
	var parts []string
	if m.err != nil {
		parts = append(parts, m.styles.Error.Render("ошибка: "+m.err.Error()))
	}
	if m.status != "" {
		parts = append(parts, m.styles.Status.Render(m.status))
	}

	help := "tab записи · ↑/↓ выбор · enter взять · d удалить · q выход"
	if m.pane == paneRecords {
		help = "tab счета · t тип · a счет · c категория · x сброс · r обновить · q выход"
	}
	parts = append(parts, m.styles.Subtitle.Render(help))
	return strings.Join(parts, "\n")
}

func (m Model) accountsView() string {
	if len(m.groups) == 0 {
		return noData
	}

	active, dragging := m.session.Active()
	var b strings.Builder
	i := 0
	for _, g := range m.groups {
		b.WriteString(m.styles.GroupName.Render(g.Name))
		b.WriteString("\n")
		for _, a := range g.Accounts {
			line := fmt.Sprintf("%s  %s %s", a.Name, a.Balance.StringFixed(2), a.Currency)
			switch {
			case dragging && a.ID == active:
				line = m.styles.Dragged.Render("≡ " + line)
			case i == m.cursor:
				line = m.styles.Cursor.Render("> " + line)
			default:
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
			i++
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) refreshRecords() {
	m.viewport.SetContent(m.recordsView())
}

func (m Model) recordsView() string {
	v := m.ctrl.Snapshot()

	var b strings.Builder
	filter := "все записи"
	if q := v.Params.Query(); q != "" {
		filter = q
	}
	b.WriteString(m.styles.FilterLine.Render("фильтр: " + filter))
	b.WriteString("\n")

	if v.Loading {
		b.WriteString(m.styles.Status.Render("загрузка..."))
		b.WriteString("\n")
	}
	if v.Err != nil {
		b.WriteString(m.styles.Error.Render("не удалось загрузить: " + v.Err.Error()))
		b.WriteString("\n")
	}

	if len(v.Groups) == 0 {
		b.WriteString(noData)
		return b.String()
	}

	for _, g := range v.Groups {
		s := grouping.Summarize(g)
		b.WriteString(fmt.Sprintf("%s  %s  (%s %s)\n",
			m.styles.Month.Render(g.Month),
			g.Total.StringFixed(2),
			m.styles.Income.Render("+"+s.Income.StringFixed(2)),
			m.styles.Expense.Render("-"+s.Expense.StringFixed(2)),
		))
		for _, r := range g.Records {
			b.WriteString(fmt.Sprintf("  %s  %s\n", r.Title(), m.amountStyle(r.RecordType).Render(r.Amount.StringFixed(2))))
			b.WriteString("    " + m.styles.Subtitle.Render(r.Subtitle()) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) amountStyle(t models.RecordType) lipgloss.Style {
	switch t {
	case models.RecordTypeIncome:
		return m.styles.Income
	case models.RecordTypeExpense:
		return m.styles.Expense
	}
	return m.styles.Transfer
}
