package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"routerwatch/internal/analysis"
	"routerwatch/internal/models"
	"routerwatch/internal/oui"
	"routerwatch/internal/reporting"
)

type pane int

const (
	devicePane pane = iota
	flowPane
)

// BrowserModel shows one snapshot in two switchable tables.
type BrowserModel struct {
	snap    models.Snapshot
	stats   *analysis.TrafficStats
	devices table.Model
	flows   table.Model
	active  pane
	source  string
}

// NewBrowserModel builds the tables for snap. source names where the snapshot came from.
func NewBrowserModel(snap models.Snapshot, source string) BrowserModel {
	stats := analysis.NewTrafficStats()
	stats.AddFlows(snap.Flows)

	deviceRows := make([]table.Row, len(snap.Devices))
	for i, d := range snap.Devices {
		deviceRows[i] = table.Row{d.Hostname, d.MAC, oui.Lookup(d.MAC), d.IP, string(d.Source)}
	}
	devices := newTable([]table.Column{
		{Title: "Hostname", Width: 20},
		{Title: "MAC", Width: 18},
		{Title: "Vendor", Width: 22},
		{Title: "IP", Width: 16},
		{Title: "Source", Width: 11},
	}, deviceRows)
	devices.Focus()

	flowRows := make([]table.Row, len(snap.Flows))
	for i, f := range snap.Flows {
		flowRows[i] = table.Row{
			f.MAC, f.IP, strconv.FormatInt(f.Connections, 10),
			reporting.FormatBytes(f.DownloadBytes), reporting.FormatBytes(f.UploadBytes),
		}
	}
	flows := newTable([]table.Column{
		{Title: "MAC", Width: 18},
		{Title: "IP", Width: 16},
		{Title: "Conns", Width: 7},
		{Title: "Download", Width: 11},
		{Title: "Upload", Width: 11},
	}, flowRows)

	return BrowserModel{
		snap:    snap,
		stats:   stats,
		devices: devices,
		flows:   flows,
		active:  devicePane,
		source:  source,
	}
}

func newTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m BrowserModel) Init() tea.Cmd {
	return nil
}
