package models

import "time"

// Source tells where a client entry came from on the router.
type Source string

const (
	SourceARPOnly   Source = "ARP Only"
	SourceDHCPLease Source = "DHCP Lease"
	SourceUnknown   Source = "Unknown"
)

// DeviceRecord is one network client parsed from a client listing.
type DeviceRecord struct {
	Hostname string `json:"hostname"`
	MAC      string `json:"mac"` // lowercase, colon separated
	IP       string `json:"ip"`
	Source   Source `json:"source"`
}

// FlowRecord holds per-host connection and traffic counters from nlbw.
type FlowRecord struct {
	MAC           string `json:"mac"`
	IP            string `json:"ip"`
	Connections   int64  `json:"connections"`
	DownloadBytes int64  `json:"download_bytes"`
	UploadBytes   int64  `json:"upload_bytes"`

	// nlbw does not report live throughput, these stay 0.
	DownloadSpeed int64 `json:"download_speed"`
	UploadSpeed   int64 `json:"upload_speed"`
}

// TotalBytes returns download plus upload volume.
func (f FlowRecord) TotalBytes() int64 {
	return f.DownloadBytes + f.UploadBytes
}

// Snapshot is the result of one collection from the router.
type Snapshot struct {
	TakenAt time.Time      `json:"taken_at"`
	Devices []DeviceRecord `json:"devices"`
	Flows   []FlowRecord   `json:"flows"`
}
