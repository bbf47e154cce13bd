// Package optimizer assigns a team's daily roster to fixed lineup slots,
// producing two independent lineups per roster: the actual-usage lineup
// (what the team effectively ran) and the theoretical-best lineup (the
// rating-maximizing assignment). It is purely CPU-bound and touches no
// shared state, so callers may fan out across team-days freely.
package optimizer

import (
	"github.com/dreamsbydutch/gshl-lineups/internal/models"
)

// Config controls one dual-pass optimization. The zero value uses the
// default slot catalog and node budget.
type Config struct {
	Slots      []Slot
	NodeBudget int64
}

// Result is the annotated roster plus diagnostics for the best-lineup
// search. BestProven is false when the node budget truncated the search.
type Result struct {
	Players    []models.PlayerDay `json:"players"`
	FullTotal  float64            `json:"full_total"`
	BestTotal  float64            `json:"best_total"`
	BestProven bool               `json:"best_proven"`
	Nodes      int64              `json:"nodes"`
}

// Optimize runs both lineup passes over one team-day roster and returns
// copies of the records with FullPos and BestPos set. Players left out of a
// pass land on the bench; short or empty rosters simply produce open slots.
//
// The full pass feeds usage-tiered scores straight through the greedy
// assigner. Tier dominance already forces the intended placement, so the
// optimality check and exhaustive search would be wasted work there. The
// best pass greedily assigns by rating (played players first), then falls
// back to branch-and-bound only when the greedy total provably misses the
// top-K bound.
func Optimize(players []models.PlayerDay, cfg Config) *Result {
	slots := cfg.Slots
	if len(slots) == 0 {
		slots = DefaultSlots()
	}
	ordered := OrderSlots(slots)

	out := make([]models.PlayerDay, len(players))
	copy(out, players)
	for i := range out {
		out[i].FullPos = models.SlotBench
		out[i].BestPos = models.SlotBench
	}

	// Records without an identifier or position set are passed over for
	// every slot; keeping them out of the pool keeps the top-K bound tight.
	pool := make([]int, 0, len(out))
	for i := range out {
		if out[i].Assignable() {
			pool = append(pool, i)
		}
		if len(pool) == maxSearchPlayers {
			// The used-player bitmask caps the pool. Rosters run 15-17
			// players, so this only guards against garbage input.
			break
		}
	}
	cand := make([]models.PlayerDay, len(pool))
	for k, i := range pool {
		cand[k] = out[i]
	}

	// Full pass: what the team actually ran.
	usage := make([]Score, len(cand))
	for i := range cand {
		usage[i] = UsageScore(&cand[i])
	}
	full := Greedy(cand, usage, ordered)
	for si, pi := range full.PlayerAt {
		if pi >= 0 {
			out[pool[pi]].FullPos = ordered[si].Label
		}
	}

	// Best pass: played first, then rating descending, as the scan order.
	ratings := make([]Score, len(cand))
	for i := range cand {
		ratings[i] = RatingScore(&cand[i])
	}
	scan := rankIndices(ratings)
	ranked := make([]models.PlayerDay, len(cand))
	rankedScores := make([]Score, len(cand))
	for k, i := range scan {
		ranked[k] = cand[i]
		rankedScores[k] = ratings[i]
	}

	best := Greedy(ranked, rankedScores, ordered)
	report := SearchReport{Proven: true}
	if !ProvablyOptimal(&best, rankedScores) {
		best, report = Solve(ranked, rankedScores, ordered, cfg.NodeBudget)
	}
	for si, pi := range best.PlayerAt {
		if pi >= 0 {
			out[pool[scan[pi]]].BestPos = ordered[si].Label
		}
	}

	return &Result{
		Players:    out,
		FullTotal:  full.Total.Rating,
		BestTotal:  best.Total.Rating,
		BestProven: report.Proven,
		Nodes:      report.Nodes,
	}
}
