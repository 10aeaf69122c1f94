package analysis

import (
	"sort"
	"sync"

	"routerwatch/internal/models"
)

// HostStat holds traffic totals for a single host.
type HostStat struct {
	IP            string
	MAC           string
	Connections   int64
	DownloadBytes int64
	UploadBytes   int64
}

// Bytes returns download plus upload volume.
func (h HostStat) Bytes() int64 {
	return h.DownloadBytes + h.UploadBytes
}

// TrafficStats aggregates flow records per host.
type TrafficStats struct {
	mu               sync.Mutex
	totalBytes       int64
	totalConnections int64
	hosts            map[string]*HostStat // keyed by IP
}

// NewTrafficStats creates a new TrafficStats instance.
func NewTrafficStats() *TrafficStats {
	return &TrafficStats{
		hosts: make(map[string]*HostStat),
	}
}

// AddFlows folds flow records into the totals. Records for the same IP are summed.
func (s *TrafficStats) AddFlows(flows []models.FlowRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range flows {
		s.totalBytes += f.TotalBytes()
		s.totalConnections += f.Connections

		h, ok := s.hosts[f.IP]
		if !ok {
			h = &HostStat{IP: f.IP, MAC: f.MAC}
			s.hosts[f.IP] = h
		}
		h.Connections += f.Connections
		h.DownloadBytes += f.DownloadBytes
		h.UploadBytes += f.UploadBytes
	}
}

// TotalBytes returns the volume over all flows.
func (s *TrafficStats) TotalBytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalBytes
}

// TotalConnections returns the connection count over all flows.
func (s *TrafficStats) TotalConnections() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalConnections
}

// TopTalkers returns the top N hosts by volume. Ties are ordered by IP.
func (s *TrafficStats) TopTalkers(limit int) []HostStat {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := make([]HostStat, 0, len(s.hosts))
	for _, h := range s.hosts {
		stats = append(stats, *h)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Bytes() != stats[j].Bytes() {
			return stats[i].Bytes() > stats[j].Bytes()
		}
		return stats[i].IP < stats[j].IP
	})

	if limit >= 0 && len(stats) > limit {
		return stats[:limit]
	}
	return stats
}
