package leads

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
)

// DefaultHighPriority is the score at which a lead counts as high priority.
const DefaultHighPriority = 90

// Summary aggregates a lead list for display.
type Summary struct {
	Total        int      `json:"total" yaml:"total"`
	AverageScore float64  `json:"average_score" yaml:"average_score"`
	Legacy       int      `json:"legacy" yaml:"legacy"`
	HighPriority int      `json:"high_priority" yaml:"high_priority"`
	Industries   []string `json:"industries" yaml:"industries"`
	TotalRevenue float64  `json:"total_revenue_usd" yaml:"total_revenue_usd"` // Sum of non-null revenues
}

// Summarize computes totals using DefaultHighPriority.
func Summarize(leads []Lead) Summary {
	return SummarizeWith(leads, DefaultHighPriority)
}

// SummarizeWith computes totals, counting leads scoring at least highPriority.
func SummarizeWith(leads []Lead, highPriority int) Summary {
	s := Summary{Total: len(leads), Industries: []string{}}
	if len(leads) == 0 {
		return s
	}

	sum := 0
	for _, l := range leads {
		sum += l.Score
		if l.Legacy {
			s.Legacy++
		}
		if l.Score >= highPriority {
			s.HighPriority++
		}
		if l.Industry != "" && !slices.Contains(s.Industries, l.Industry) {
			s.Industries = append(s.Industries, l.Industry)
		}
		s.TotalRevenue += l.Revenue()
	}
	slices.Sort(s.Industries)
	s.AverageScore = float64(sum) / float64(len(leads))
	return s
}

// String returns a human-readable summary.
func (s Summary) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Leads: %d\n", s.Total))
	sb.WriteString(fmt.Sprintf("Average score: %.1f\n", s.AverageScore))
	sb.WriteString(fmt.Sprintf("High priority: %d\n", s.HighPriority))
	sb.WriteString(fmt.Sprintf("Legacy tech: %d\n", s.Legacy))
	if s.TotalRevenue > 0 {
		sb.WriteString(fmt.Sprintf("Total revenue: $%s\n", humanize.Commaf(s.TotalRevenue)))
	}
	if len(s.Industries) > 0 {
		sb.WriteString(fmt.Sprintf("Industries: %s\n", strings.Join(s.Industries, ", ")))
	}
	return sb.String()
}
