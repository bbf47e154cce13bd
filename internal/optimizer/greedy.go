package optimizer

import (
	"github.com/dreamsbydutch/gshl-lineups/internal/models"
)

// Assignment is a partial injective mapping from players to ordered slot
// instances. PlayerAt holds the player index filling each slot, -1 when the
// slot went unfilled. Unfilled slots are an expected outcome, not an error.
type Assignment struct {
	Slots    []Slot
	PlayerAt []int
	Used     uint64
	Total    Score
}

func newAssignment(slots []Slot) Assignment {
	playerAt := make([]int, len(slots))
	for i := range playerAt {
		playerAt[i] = -1
	}
	return Assignment{Slots: slots, PlayerAt: playerAt}
}

// Filled returns the number of occupied slots.
func (a *Assignment) Filled() int {
	n := 0
	for _, pi := range a.PlayerAt {
		if pi >= 0 {
			n++
		}
	}
	return n
}

// Has reports whether the player index is already placed.
func (a *Assignment) Has(player int) bool {
	return a.Used&(1<<uint(player)) != 0
}

func (a *Assignment) place(slot, player int, sc Score) {
	a.PlayerAt[slot] = player
	a.Used |= 1 << uint(player)
	a.Total = a.Total.Add(sc)
}

func (a *Assignment) remove(slot, player int, sc Score) {
	a.PlayerAt[slot] = -1
	a.Used &^= 1 << uint(player)
	a.Total.Tier -= sc.Tier
	a.Total.Rating -= sc.Rating
}

func (a *Assignment) clone() Assignment {
	c := *a
	c.PlayerAt = make([]int, len(a.PlayerAt))
	copy(c.PlayerAt, a.PlayerAt)
	return c
}

// Greedy fills slots in the given order with the highest-scoring unused
// eligible player for each. Exact score ties go to the first candidate
// encountered in scan order, a deterministic but intentionally arbitrary
// rule. A slot with no eligible unused player is left open. O(slots x
// players), no recursion.
func Greedy(players []models.PlayerDay, scores []Score, slots []Slot) Assignment {
	a := newAssignment(slots)
	for si, slot := range slots {
		best := -1
		for pi := range players {
			if a.Has(pi) || !IsEligible(&players[pi], slot) {
				continue
			}
			if best < 0 || scores[best].Less(scores[pi]) {
				best = pi
			}
		}
		if best >= 0 {
			a.place(si, best, scores[best])
		}
	}
	return a
}

// ProvablyOptimal compares the assignment's realized total against the
// eligibility-free top-K bound (K = slot count). Meeting the bound within
// Epsilon proves no eligible assignment can do better, so the exhaustive
// search can be skipped.
func ProvablyOptimal(a *Assignment, scores []Score) bool {
	order := rankIndices(scores)
	bound := upperBound(order, scores, 0, len(a.Slots))
	return a.Total.AtLeast(bound, Epsilon)
}
