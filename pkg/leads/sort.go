package leads

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortKey selects the ordering used by Sort.
type SortKey string

const (
	SortScoreDesc   SortKey = "score_desc"
	SortScoreAsc    SortKey = "score_asc"
	SortCompanyName SortKey = "company_name"
	SortRevenueDesc SortKey = "revenue_desc"
)

// SortKeys lists the supported sort keys.
func SortKeys() []SortKey {
	return []SortKey{SortScoreDesc, SortScoreAsc, SortCompanyName, SortRevenueDesc}
}

// ParseSortKey validates a sort key name. An empty name means SortScoreDesc.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortScoreDesc, nil
	}
	k := SortKey(strings.ToLower(s))
	if !slices.Contains(SortKeys(), k) {
		return "", fmt.Errorf("unknown sort key: %s", s)
	}
	return k, nil
}

// Sort returns a sorted copy of leads. Equal keys keep input order
// (Lead.Index), so the result is deterministic however the leads were
// produced. Null revenue sorts last under SortRevenueDesc.
func Sort(leads []Lead, by SortKey) []Lead {
	out := slices.Clone(leads)

	var primary func(a, b Lead) int
	switch by {
	case SortScoreAsc:
		primary = func(a, b Lead) int { return cmp.Compare(a.Score, b.Score) }
	case SortCompanyName:
		primary = func(a, b Lead) int { return strings.Compare(a.CompanyName, b.CompanyName) }
	case SortRevenueDesc:
		primary = compareRevenueDesc
	default:
		primary = func(a, b Lead) int { return cmp.Compare(b.Score, a.Score) }
	}

	slices.SortStableFunc(out, func(a, b Lead) int {
		if c := primary(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	return out
}

func compareRevenueDesc(a, b Lead) int {
	switch {
	case a.HasRevenue() && b.HasRevenue():
		return cmp.Compare(b.Revenue(), a.Revenue())
	case a.HasRevenue():
		return -1
	case b.HasRevenue():
		return 1
	default:
		return 0
	}
}

// Top returns the first n leads by descending score. n <= 0 returns all.
func Top(leads []Lead, n int) []Lead {
	sorted := Sort(leads, SortScoreDesc)
	if n <= 0 || n >= len(sorted) {
		return sorted
	}
	return sorted[:n]
}
