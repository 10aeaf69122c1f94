package analysis

import (
	"fmt"

	"routerwatch/internal/models"
)

// AlertType represents the kind of change detected between two device lists.
type AlertType string

const (
	AlertNewDevice       AlertType = "NEW_DEVICE"
	AlertDeviceGone      AlertType = "DEVICE_GONE"
	AlertIPChanged       AlertType = "IP_CHANGED"
	AlertHostnameChanged AlertType = "HOSTNAME_CHANGED"
)

// Alert describes one change for a device, identified by MAC.
type Alert struct {
	Type    AlertType
	MAC     string
	Message string // Human-readable description
}

// DiffDevices compares a previous device list with the current one. Alerts for devices
// in curr come first in curr order, followed by devices that disappeared in prev order.
func DiffDevices(prev, curr []models.DeviceRecord) []Alert {
	before := make(map[string]models.DeviceRecord, len(prev))
	for _, d := range prev {
		if _, ok := before[d.MAC]; !ok {
			before[d.MAC] = d
		}
	}

	alerts := make([]Alert, 0)
	seen := make(map[string]bool, len(curr))

	for _, d := range curr {
		if seen[d.MAC] {
			continue
		}
		seen[d.MAC] = true

		old, ok := before[d.MAC]
		if !ok {
			alerts = append(alerts, Alert{
				Type:    AlertNewDevice,
				MAC:     d.MAC,
				Message: fmt.Sprintf("New device %s (%s) at %s", d.Hostname, d.MAC, d.IP),
			})
			continue
		}
		if old.IP != d.IP {
			alerts = append(alerts, Alert{
				Type:    AlertIPChanged,
				MAC:     d.MAC,
				Message: fmt.Sprintf("%s moved from %s to %s", d.MAC, old.IP, d.IP),
			})
		}
		if old.Hostname != d.Hostname {
			alerts = append(alerts, Alert{
				Type:    AlertHostnameChanged,
				MAC:     d.MAC,
				Message: fmt.Sprintf("%s renamed from %s to %s", d.MAC, old.Hostname, d.Hostname),
			})
		}
	}

	for _, d := range prev {
		if seen[d.MAC] {
			continue
		}
		seen[d.MAC] = true
		alerts = append(alerts, Alert{
			Type:    AlertDeviceGone,
			MAC:     d.MAC,
			Message: fmt.Sprintf("Device %s (%s) no longer listed, last seen at %s", d.Hostname, d.MAC, d.IP),
		})
	}

	return alerts
}
