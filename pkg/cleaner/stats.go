package cleaner

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Stats captures what the cleaner did to a table.
type Stats struct {
	InputRows    int            `json:"input_rows"`
	OutputRows   int            `json:"output_rows"`
	DroppedBy    map[string]int `json:"dropped_by"`    // reason -> count
	RevenueNulls int            `json:"revenue_nulls"` // kept rows whose revenue fell back to null

	Duration time.Duration `json:"duration_ns"`
}

// NewStats creates a new Stats instance with initialized maps.
func NewStats() *Stats {
	return &Stats{
		DroppedBy: make(map[string]int),
	}
}

// RecordDrop records that a row was excluded for reason.
func (s *Stats) RecordDrop(reason string) {
	s.DroppedBy[reason]++
}

// Dropped returns how many input rows were excluded.
func (s *Stats) Dropped() int {
	total := 0
	for _, n := range s.DroppedBy {
		total += n
	}
	return total
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Rows: %d -> %d (%d dropped)\n", s.InputRows, s.OutputRows, s.Dropped()))

	if len(s.DroppedBy) > 0 {
		reasons := make([]string, 0, len(s.DroppedBy))
		for r := range s.DroppedBy {
			reasons = append(reasons, r)
		}
		slices.Sort(reasons)
		parts := make([]string, 0, len(reasons))
		for _, r := range reasons {
			parts = append(parts, fmt.Sprintf("%s=%d", r, s.DroppedBy[r]))
		}
		sb.WriteString("Dropped by reason: ")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("\n")
	}

	if s.RevenueNulls > 0 {
		sb.WriteString(fmt.Sprintf("Revenue unparseable: %d\n", s.RevenueNulls))
	}
	return sb.String()
}
