package optimizer

import (
	"github.com/dreamsbydutch/gshl-lineups/internal/models"
)

// DefaultNodeBudget caps the number of branch attempts the exhaustive
// search will make before settling for its incumbent. Callers should still
// wrap invocations in a wall-clock timeout in case the budget is configured
// too high for their latency envelope.
const DefaultNodeBudget int64 = 1_000_000

// The used-player set is a uint64 bitmask; rosters run 15-17 players so the
// limit never binds in practice.
const maxSearchPlayers = 64

// SearchReport describes how a Solve run ended. Proven is false when the
// node budget truncated the search, in which case the returned assignment
// is the best incumbent found rather than a certified optimum.
type SearchReport struct {
	Proven bool  `json:"proven"`
	Nodes  int64 `json:"nodes"`
}

// frame is one depth of the explicit DFS stack: the slot being filled, its
// eligible candidates (fixed for the frame since siblings share the same
// used set), and the branch currently applied.
type frame struct {
	slot    int
	cands   []int
	next    int
	placed  int
	skipped bool
}

func newFrame(slot int, a *Assignment, order []int, players []models.PlayerDay, slots []Slot) frame {
	f := frame{slot: slot, placed: -1}
	// Candidates in score-descending order so strong branches raise the
	// incumbent early and tighten pruning.
	for _, pi := range order {
		if a.Has(pi) || !IsEligible(&players[pi], slots[slot]) {
			continue
		}
		f.cands = append(f.cands, pi)
	}
	return f
}

// Solve runs depth-first branch-and-bound over the ordered slots and
// returns a rating-maximal eligibility-respecting assignment. The greedy
// result seeds the incumbent, so the returned total is never below it. An
// eligible candidate is never voluntarily skipped; a slot is left open only
// when no eligible unused player remains at that depth. A branch is pruned
// when its running total plus the eligibility-free bound on the remaining
// slots cannot beat the incumbent.
func Solve(players []models.PlayerDay, scores []Score, slots []Slot, nodeBudget int64) (Assignment, SearchReport) {
	if nodeBudget <= 0 {
		nodeBudget = DefaultNodeBudget
	}

	incumbent := Greedy(players, scores, slots)
	report := SearchReport{Proven: true}

	if len(slots) == 0 || len(players) == 0 {
		return incumbent, report
	}
	if len(players) > maxSearchPlayers {
		report.Proven = false
		return incumbent, report
	}

	order := rankIndices(scores)
	bestTotal := incumbent.Total
	cur := newAssignment(slots)

	stack := make([]frame, 0, len(slots))
	stack = append(stack, newFrame(0, &cur, order, players, slots))

	for len(stack) > 0 {
		f := &stack[len(stack)-1]

		// Returning to this frame: undo the branch it last applied.
		if f.placed >= 0 {
			cur.remove(f.slot, f.placed, scores[f.placed])
			f.placed = -1
		}

		if len(f.cands) == 0 {
			// Zero eligible unused players: descend once with the slot
			// open, then unwind.
			if f.skipped {
				stack = stack[:len(stack)-1]
				continue
			}
			f.skipped = true
			if f.slot+1 < len(slots) {
				stack = append(stack, newFrame(f.slot+1, &cur, order, players, slots))
			} else if bestTotal.Less(cur.Total) {
				incumbent = cur.clone()
				bestTotal = cur.Total
			}
			continue
		}

		descended := false
		for f.next < len(f.cands) {
			pi := f.cands[f.next]
			f.next++

			report.Nodes++
			if report.Nodes >= nodeBudget {
				report.Proven = false
				return incumbent, report
			}

			cur.place(f.slot, pi, scores[pi])
			optimistic := cur.Total.Add(upperBound(order, scores, cur.Used, len(slots)-f.slot-1))
			if !bestTotal.Less(optimistic) {
				cur.remove(f.slot, pi, scores[pi])
				continue
			}

			f.placed = pi
			if f.slot+1 < len(slots) {
				stack = append(stack, newFrame(f.slot+1, &cur, order, players, slots))
			} else if bestTotal.Less(cur.Total) {
				incumbent = cur.clone()
				bestTotal = cur.Total
			}
			descended = true
			break
		}

		if !descended && f.placed < 0 {
			stack = stack[:len(stack)-1]
		}
	}

	return incumbent, report
}
