// Package parser turns the text printed by router diagnostic commands into records.
//
// Parsing is best effort: lines that cannot be parsed are dropped and never reported as
// errors, so a truncated or corrupt block yields a shorter result. All functions are pure
// and safe for concurrent use.
package parser

import "strings"

// Stats describes how a block of text was consumed.
type Stats struct {
	Lines    int // non-empty candidate lines, header excluded
	Accepted int
	Skipped  int
}

func (s *Stats) accept() {
	s.Lines++
	s.Accepted++
}

func (s *Stats) skip() {
	s.Lines++
	s.Skipped++
}

// splitLines splits on '\n' and returns the trimmed, non-empty lines.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
