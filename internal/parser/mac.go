package parser

import (
	"regexp"
	"strings"

	"routerwatch/internal/models"
)

const zeroMAC = "00:00:00:00:00:00"

var macPattern = regexp.MustCompile(`^([0-9A-Fa-f]{2}:){5}[0-9A-Fa-f]{2}$`)

// ValidMAC reports whether s is a colon separated six-octet MAC that is not all zero.
func ValidMAC(s string) bool {
	if !macPattern.MatchString(s) {
		return false
	}
	return NormalizeMAC(s) != zeroMAC
}

// NormalizeMAC lowercases a MAC token.
func NormalizeMAC(s string) string {
	return strings.ToLower(s)
}

// ClassifySource maps the optional fourth column of a client listing to a Source.
func ClassifySource(token string, present bool) models.Source {
	switch {
	case !present:
		return models.SourceUnknown
	case token == "ARP":
		return models.SourceARPOnly
	default:
		return models.SourceDHCPLease
	}
}
