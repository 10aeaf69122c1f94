package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"routerwatch/internal/reporting"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF7DB")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Margin(0, 1)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func (m BrowserModel) View() string {
	title := titleStyle.Render(fmt.Sprintf("routerwatch - %s", m.source))

	summary := fmt.Sprintf("Taken: %s\nDevices: %d  Flows: %d\nTraffic: %s  Connections: %d",
		m.snap.TakenAt.Format("2006-01-02 15:04:05"),
		len(m.snap.Devices), len(m.snap.Flows),
		reporting.FormatBytes(m.stats.TotalBytes()), m.stats.TotalConnections())
	summaryBox := infoStyle.Render(summary)

	var body string
	if m.active == devicePane {
		body = infoStyle.Render("Devices " + dimStyle.Render("(tab: flows)") + "\n" + m.devices.View())
	} else {
		body = infoStyle.Render("Flows " + dimStyle.Render("(tab: devices)") + "\n" + m.flows.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, summaryBox, body) + "\nPress q to quit."
}
