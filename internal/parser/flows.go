package parser

import (
	"strconv"
	"strings"

	"routerwatch/internal/models"
)

// Column positions in an nlbw connection listing.
const (
	colMAC = iota
	colIP
	colConnections
	colRxBytes
	colRxPackets
	colTxBytes
	colTxPackets
	flowColumns
)

// ParseFlows parses an nlbw listing. The first line is a header and is always discarded.
// Remaining lines carry
//
//	MAC IP CONNECTIONS RX_BYTES RX_PACKETS TX_BYTES TX_PACKETS
//
// A line needs MAC and IP to produce a record. Counters that are missing or not
// non-negative integers read as 0.
func ParseFlows(text string) []models.FlowRecord {
	flows, _ := ParseFlowsWithStats(text)
	return flows
}

// ParseFlowsWithStats is ParseFlows plus a count of dropped lines.
func ParseFlowsWithStats(text string) ([]models.FlowRecord, Stats) {
	var stats Stats
	flows := make([]models.FlowRecord, 0)

	_, body, found := strings.Cut(text, "\n")
	if !found {
		return flows, stats
	}

	for _, line := range splitLines(body) {
		cols := columns(strings.Fields(line))
		if cols[colMAC] == "" || cols[colIP] == "" {
			stats.skip()
			continue
		}

		flows = append(flows, models.FlowRecord{
			MAC:           NormalizeMAC(cols[colMAC]),
			IP:            cols[colIP],
			Connections:   parseCount(cols[colConnections]),
			DownloadBytes: parseCount(cols[colRxBytes]),
			UploadBytes:   parseCount(cols[colTxBytes]),
		})
		stats.accept()
	}

	return flows, stats
}

// columns pads or truncates fields to exactly flowColumns entries.
func columns(fields []string) [flowColumns]string {
	var cols [flowColumns]string
	copy(cols[:], fields)
	return cols
}

func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
