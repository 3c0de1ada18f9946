package leads

import (
	"fmt"
	"strings"
)

// Predicate reports whether a lead should be kept.
type Predicate func(Lead) bool

// ScoreRange keeps leads scoring within [lo, hi].
func ScoreRange(lo, hi int) Predicate {
	return func(l Lead) bool {
		return l.Score >= lo && l.Score <= hi
	}
}

// Legacy keeps leads whose legacy-tech flag equals flagged.
func Legacy(flagged bool) Predicate {
	return func(l Lead) bool {
		return l.Legacy == flagged
	}
}

// Industry keeps leads in any of the named industries (exact match).
func Industry(names ...string) Predicate {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(l Lead) bool {
		_, ok := set[l.Industry]
		return ok
	}
}

// And keeps leads matching every predicate. With no predicates it keeps all.
func And(preds ...Predicate) Predicate {
	return func(l Lead) bool {
		for _, p := range preds {
			if !p(l) {
				return false
			}
		}
		return true
	}
}

// Or keeps leads matching at least one predicate.
func Or(preds ...Predicate) Predicate {
	return func(l Lead) bool {
		for _, p := range preds {
			if p(l) {
				return true
			}
		}
		return false
	}
}

// Not inverts a predicate.
func Not(p Predicate) Predicate {
	return func(l Lead) bool { return !p(l) }
}

// Filter returns the leads matching all preds, in input order.
func Filter(leads []Lead, preds ...Predicate) []Lead {
	keep := And(preds...)
	out := make([]Lead, 0, len(leads))
	for _, l := range leads {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

// Tier is a named score range used for lead prioritization.
type Tier string

const (
	TierAll    Tier = "all"
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
)

// Range returns the inclusive score bounds of the tier.
func (t Tier) Range() (int, int) {
	switch t {
	case TierHigh:
		return 90, 100
	case TierMedium:
		return 75, 89
	default:
		return 0, 100
	}
}

// Predicate returns a ScoreRange predicate for the tier.
func (t Tier) Predicate() Predicate {
	return ScoreRange(t.Range())
}

// ParseTier validates a tier name. An empty name means TierAll.
func ParseTier(s string) (Tier, error) {
	switch t := Tier(strings.ToLower(s)); t {
	case "":
		return TierAll, nil
	case TierAll, TierHigh, TierMedium:
		return t, nil
	default:
		return "", fmt.Errorf("unknown priority tier: %s (use all, high or medium)", s)
	}
}
