package parser

import (
	"strings"

	"routerwatch/internal/models"
)

// ParseClients parses a client listing of the form
//
//	HOSTNAME MAC IP [SOURCE]
//
// Lines with fewer than three columns, a malformed MAC or the all-zero MAC are dropped.
// Output order follows input order.
func ParseClients(text string) []models.DeviceRecord {
	devices, _ := ParseClientsWithStats(text)
	return devices
}

// ParseClientsWithStats is ParseClients plus a count of dropped lines.
func ParseClientsWithStats(text string) ([]models.DeviceRecord, Stats) {
	var stats Stats
	devices := make([]models.DeviceRecord, 0)

	for _, line := range splitLines(text) {
		fields := strings.Fields(line)
		if len(fields) < 3 || !ValidMAC(fields[1]) {
			stats.skip()
			continue
		}

		var tag string
		hasTag := len(fields) > 3
		if hasTag {
			tag = fields[3]
		}

		devices = append(devices, models.DeviceRecord{
			Hostname: fields[0],
			MAC:      NormalizeMAC(fields[1]),
			IP:       fields[2],
			Source:   ClassifySource(tag, hasTag),
		})
		stats.accept()
	}

	return devices, stats
}
