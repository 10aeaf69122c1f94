// Package oui resolves the vendor behind a MAC address prefix.
package oui

import (
	"net"

	"github.com/google/gopacket/macs"
)

// Lookup returns the registered vendor for mac, or "" when the MAC cannot be parsed
// or its prefix is unknown.
func Lookup(mac string) string {
	hw, err := net.ParseMAC(mac)
	if err != nil || len(hw) < 3 {
		return ""
	}
	return macs.ValidMACPrefixMap[[3]byte{hw[0], hw[1], hw[2]}]
}
