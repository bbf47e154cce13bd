package optimizer

import (
	"sort"

	"github.com/dreamsbydutch/gshl-lineups/internal/models"
)

// Epsilon absorbs rounding from upstream formatted ratings when comparing
// realized totals against theoretical bounds.
const Epsilon = 0.01

// Usage priority tiers for the full (actual-usage) lineup pass. A higher
// tier always outranks a lower one regardless of raw rating.
const (
	tierStarted      = 5
	tierPlayedActive = 4
	tierPlayedBench  = 3
	tierActiveIdle   = 2
	tierBenchIdle    = 1
)

// Score orders lineup candidates lexicographically: tier first, raw rating
// second. Summed component-wise, two totals compare the same way, so tier
// dominance survives aggregation without any gap constant.
type Score struct {
	Tier   int
	Rating float64
}

// Add returns the component-wise sum.
func (s Score) Add(o Score) Score {
	return Score{Tier: s.Tier + o.Tier, Rating: s.Rating + o.Rating}
}

// Less reports whether s ranks strictly below o.
func (s Score) Less(o Score) bool {
	if s.Tier != o.Tier {
		return s.Tier < o.Tier
	}
	return s.Rating < o.Rating
}

// AtLeast reports whether s meets o within eps on the rating component.
// Tiers are integral and compare exactly.
func (s Score) AtLeast(o Score, eps float64) bool {
	if s.Tier != o.Tier {
		return s.Tier > o.Tier
	}
	return s.Rating >= o.Rating-eps
}

// UsageScore converts a record into the tiered score that reproduces what
// the team actually ran: starters, then active players, then played-but-
// benched, then idle actives, then everyone else.
func UsageScore(p *models.PlayerDay) Score {
	tier := tierBenchIdle
	switch {
	case p.Started():
		tier = tierStarted
	case p.Played() && p.InActiveLineup():
		tier = tierPlayedActive
	case p.Played():
		tier = tierPlayedBench
	case p.InActiveLineup():
		tier = tierActiveIdle
	}
	return Score{Tier: tier, Rating: p.RatingValue()}
}

// RatingScore converts a record into the score for the theoretical-best
// pass. The played flag is the tier, so a record that never hit the ice
// can never rank ahead of one that did, whatever their ratings.
func RatingScore(p *models.PlayerDay) Score {
	tier := 0
	if p.Played() {
		tier = 1
	}
	return Score{Tier: tier, Rating: p.RatingValue()}
}

// rankIndices returns player indices sorted by score descending, stable on
// the original order so rating ties resolve deterministically.
func rankIndices(scores []Score) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[b]].Less(scores[order[a]])
	})
	return order
}

// upperBound sums the top count unused scores from order (score-descending
// player indices), eligibility ignored. No assignment of count slots over
// the unused players can exceed it, which makes it admissible for pruning.
func upperBound(order []int, scores []Score, used uint64, count int) Score {
	var total Score
	taken := 0
	for _, pi := range order {
		if taken == count {
			break
		}
		if used&(1<<uint(pi)) != 0 {
			continue
		}
		total = total.Add(scores[pi])
		taken++
	}
	return total
}
