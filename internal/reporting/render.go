package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"routerwatch/internal/analysis"
	"routerwatch/internal/models"
	"routerwatch/internal/oui"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// RenderDevices renders devices as a terminal table.
func RenderDevices(devices []models.DeviceRecord) string {
	t := newTable("Hostname", "MAC", "Vendor", "IP", "Source")
	for _, d := range devices {
		t.Row(d.Hostname, d.MAC, oui.Lookup(d.MAC), d.IP, string(d.Source))
	}
	return t.Render()
}

// RenderFlows renders flows as a terminal table.
func RenderFlows(flows []models.FlowRecord) string {
	t := newTable("MAC", "IP", "Conns", "Download", "Upload")
	for _, f := range flows {
		t.Row(f.MAC, f.IP, strconv.FormatInt(f.Connections, 10), FormatBytes(f.DownloadBytes), FormatBytes(f.UploadBytes))
	}
	return t.Render()
}

// RenderTopTalkers renders the busiest hosts with their share of the total volume.
func RenderTopTalkers(stats *analysis.TrafficStats, limit int) string {
	total := stats.TotalBytes()
	t := newTable("IP", "MAC", "Conns", "Volume", "Share")
	for _, h := range stats.TopTalkers(limit) {
		share := 0.0
		if total > 0 {
			share = float64(h.Bytes()) * 100 / float64(total)
		}
		t.Row(h.IP, h.MAC, strconv.FormatInt(h.Connections, 10), FormatBytes(h.Bytes()), fmt.Sprintf("%.1f%%", share))
	}
	return t.Render()
}
