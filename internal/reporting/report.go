package reporting

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"routerwatch/internal/analysis"
	"routerwatch/internal/models"
	"routerwatch/internal/oui"
)

// GenerateSnapshotReport writes a report of one router snapshot into dir and returns
// the file name. Currently supports "html" format.
func GenerateSnapshotReport(snap models.Snapshot, stats *analysis.TrafficStats, alerts []analysis.Alert, format, dir string) (string, error) {
	if format != "html" {
		return "", fmt.Errorf("unsupported format: %s", format)
	}

	timestamp := snap.TakenAt.Format("20060102_150405")
	filename := filepath.Join(dir, fmt.Sprintf("report_%s.html", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var b strings.Builder

	fmt.Fprintf(&b, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>routerwatch Snapshot Report - %s</title>
    <style>
        body { font-family: sans-serif; margin: 20px; color: #333; }
        h1, h2 { color: #2c3e50; }
        table { width: 100%%; border-collapse: collapse; margin-bottom: 20px; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f2f2f2; }
        tr:nth-child(even) { background-color: #f9f9f9; }
        .summary { background: #eef; padding: 15px; border-radius: 5px; margin-bottom: 20px; }
        .alert { color: #d9534f; font-weight: bold; }
    </style>
</head>
<body>
    <h1>routerwatch Snapshot Report</h1>
    <div class="summary">
        <p><strong>Taken:</strong> %s</p>
        <p><strong>Devices:</strong> %d</p>
        <p><strong>Total Data Transferred:</strong> %s</p>
        <p><strong>Connections:</strong> %d</p>
    </div>
`, timestamp, snap.TakenAt.Format(time.RFC1123), len(snap.Devices),
		FormatBytes(stats.TotalBytes()), stats.TotalConnections())

	b.WriteString(`
    <h2>Devices</h2>
    <table>
        <thead>
            <tr><th>Hostname</th><th>MAC</th><th>Vendor</th><th>IP Address</th><th>Source</th></tr>
        </thead>
        <tbody>
`)
	if len(snap.Devices) == 0 {
		b.WriteString("            <tr><td colspan=\"5\">No devices listed.</td></tr>\n")
	}
	for _, d := range snap.Devices {
		fmt.Fprintf(&b, "            <tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(d.Hostname), html.EscapeString(d.MAC), html.EscapeString(oui.Lookup(d.MAC)),
			html.EscapeString(d.IP), html.EscapeString(string(d.Source)))
	}
	b.WriteString("        </tbody>\n    </table>\n")

	b.WriteString(`
    <h2>Top 10 Talkers</h2>
    <table>
        <thead>
            <tr><th>IP Address</th><th>MAC</th><th>Connections</th><th>Download</th><th>Upload</th></tr>
        </thead>
        <tbody>
`)
	for _, h := range stats.TopTalkers(10) {
		fmt.Fprintf(&b, "            <tr><td>%s</td><td>%s</td><td>%d</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(h.IP), html.EscapeString(h.MAC), h.Connections,
			FormatBytes(h.DownloadBytes), FormatBytes(h.UploadBytes))
	}
	b.WriteString("        </tbody>\n    </table>\n")

	b.WriteString(`
    <h2>Device Changes</h2>
    <table>
        <thead>
            <tr><th>Type</th><th>MAC</th><th>Message</th></tr>
        </thead>
        <tbody>
`)
	if len(alerts) == 0 {
		b.WriteString("            <tr><td colspan=\"3\">No changes detected.</td></tr>\n")
	}
	for _, a := range alerts {
		fmt.Fprintf(&b, "            <tr><td class=\"alert\">%s</td><td>%s</td><td>%s</td></tr>\n",
			a.Type, html.EscapeString(a.MAC), html.EscapeString(a.Message))
	}
	b.WriteString("        </tbody>\n    </table>\n</body>\n</html>\n")

	if _, err := file.WriteString(b.String()); err != nil {
		return "", err
	}

	return filename, nil
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
