package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routerwatch/internal/models"
)

func TestParseClients(t *testing.T) {
	got := ParseClients("host1  aa:bb:cc:dd:ee:ff  192.168.1.5  DHCP\n")

	require.Len(t, got, 1)
	assert.Equal(t, models.DeviceRecord{
		Hostname: "host1",
		MAC:      "aa:bb:cc:dd:ee:ff",
		IP:       "192.168.1.5",
		Source:   models.SourceDHCPLease,
	}, got[0])
}

func TestParseClientsSource(t *testing.T) {
	tests := []struct {
		name string
		line string
		want models.Source
	}{
		{"missing column", "nas 11:22:33:44:55:66 192.168.1.2", models.SourceUnknown},
		{"arp", "nas 11:22:33:44:55:66 192.168.1.2 ARP", models.SourceARPOnly},
		{"arp is case sensitive", "nas 11:22:33:44:55:66 192.168.1.2 arp", models.SourceDHCPLease},
		{"lease", "nas 11:22:33:44:55:66 192.168.1.2 LEASE", models.SourceDHCPLease},
		{"extra columns", "nas 11:22:33:44:55:66 192.168.1.2 ARP br-lan", models.SourceARPOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseClients(tt.line)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Source)
		})
	}
}

func TestParseClientsDropsInvalidLines(t *testing.T) {
	input := strings.Join([]string{
		"phone aa:bb:cc:dd:ee:01 192.168.1.10 DHCP",
		"short aa:bb:cc:dd:ee:02",
		"zero 00:00:00:00:00:00 192.168.1.11 ARP",
		"bad aa:bb:cc:dd:ee 192.168.1.12",
		"dashes aa-bb-cc-dd-ee-03 192.168.1.13",
		"hex zz:bb:cc:dd:ee:04 192.168.1.14",
		"laptop AA:BB:CC:DD:EE:05 192.168.1.15",
	}, "\n")

	got, stats := ParseClientsWithStats(input)

	require.Len(t, got, 2)
	assert.Equal(t, "phone", got[0].Hostname)
	assert.Equal(t, "laptop", got[1].Hostname)
	assert.Equal(t, "aa:bb:cc:dd:ee:05", got[1].MAC)
	assert.Equal(t, Stats{Lines: 7, Accepted: 2, Skipped: 5}, stats)
}

func TestParseClientsPreservesOrder(t *testing.T) {
	input := "c 00:00:00:00:00:03 10.0.0.3\n" +
		"a 00:00:00:00:00:01 10.0.0.1\n" +
		"\n" +
		"b 00:00:00:00:00:02 10.0.0.2\n"

	got := ParseClients(input)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{got[0].Hostname, got[1].Hostname, got[2].Hostname})
}

func TestParseClientsWhitespace(t *testing.T) {
	input := "\t  tv \t de:ad:be:ef:00:01   192.168.1.40\r\n"

	got := ParseClients(input)

	require.Len(t, got, 1)
	assert.Equal(t, "tv", got[0].Hostname)
	assert.Equal(t, "192.168.1.40", got[0].IP)
	assert.Equal(t, models.SourceUnknown, got[0].Source)
}

func TestParseClientsEmpty(t *testing.T) {
	for _, input := range []string{"", "\n", "\n   \n", "\x00\xff\xfe garbage\x01\n\x02"} {
		got, stats := ParseClientsWithStats(input)
		assert.NotNil(t, got)
		assert.Empty(t, got, "input %q", input)
		assert.Zero(t, stats.Accepted)
	}
}

func TestParseClientsMACIsLowercase(t *testing.T) {
	input := "a AB:CD:EF:01:23:45 10.0.0.1\nb ab:Cd:eF:01:23:46 10.0.0.2\n"

	for _, d := range ParseClients(input) {
		assert.True(t, macPattern.MatchString(d.MAC))
		assert.Equal(t, strings.ToLower(d.MAC), d.MAC)
	}
}

func TestValidMAC(t *testing.T) {
	assert.True(t, ValidMAC("aa:bb:cc:dd:ee:ff"))
	assert.True(t, ValidMAC("AA:BB:CC:DD:EE:FF"))
	assert.False(t, ValidMAC("00:00:00:00:00:00"))
	assert.False(t, ValidMAC("aa:bb:cc:dd:ee:ff:00"))
	assert.False(t, ValidMAC("aabb.ccdd.eeff"))
	assert.False(t, ValidMAC(""))
}
