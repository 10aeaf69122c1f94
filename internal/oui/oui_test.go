package oui

import (
	"fmt"
	"testing"

	"github.com/google/gopacket/macs"
	"github.com/stretchr/testify/assert"
)

func TestLookupKnownPrefix(t *testing.T) {
	for prefix, vendor := range macs.ValidMACPrefixMap {
		mac := fmt.Sprintf("%02x:%02x:%02x:01:02:03", prefix[0], prefix[1], prefix[2])
		assert.Equal(t, vendor, Lookup(mac))
		break
	}
}

func TestLookupUnknown(t *testing.T) {
	assert.Empty(t, Lookup("not-a-mac"))
	assert.Empty(t, Lookup(""))
}
