package optimizer

import (
	"sort"

	"github.com/dreamsbydutch/gshl-lineups/internal/models"
)

// Slot is a single lineup position instance requiring exactly one eligible
// player. Slots are configuration: the eligible set fully encodes the rule,
// including Util (any skater position, no goalies).
type Slot struct {
	Label    string            `json:"label"`
	Eligible []models.Position `json:"eligible"`
}

// DefaultSlots returns the league's daily lineup shape:
// 2 LW, 2 C, 2 RW, 3 D, 1 Util, 1 G.
func DefaultSlots() []Slot {
	skaters := []models.Position{models.PositionLW, models.PositionC, models.PositionRW, models.PositionD}

	slots := make([]Slot, 0, 11)
	for i := 0; i < 2; i++ {
		slots = append(slots, Slot{Label: models.SlotLW, Eligible: []models.Position{models.PositionLW}})
	}
	for i := 0; i < 2; i++ {
		slots = append(slots, Slot{Label: models.SlotC, Eligible: []models.Position{models.PositionC}})
	}
	for i := 0; i < 2; i++ {
		slots = append(slots, Slot{Label: models.SlotRW, Eligible: []models.Position{models.PositionRW}})
	}
	for i := 0; i < 3; i++ {
		slots = append(slots, Slot{Label: models.SlotD, Eligible: []models.Position{models.PositionD}})
	}
	slots = append(slots, Slot{Label: models.SlotUtil, Eligible: skaters})
	slots = append(slots, Slot{Label: models.SlotG, Eligible: []models.Position{models.PositionG}})
	return slots
}

// OrderSlots returns a copy sorted most-constrained-first, so the goalie
// slot is attempted before Util. The greedy pass and the exhaustive search
// both assign in this exact order; recomputing it identically is what keeps
// their tie-breaks and pruning behavior comparable.
func OrderSlots(slots []Slot) []Slot {
	ordered := make([]Slot, len(slots))
	copy(ordered, slots)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Eligible) < len(ordered[j].Eligible)
	})
	return ordered
}

// IsEligible reports whether the player's position set satisfies the slot.
// Records with no identifier or an empty position set never qualify.
func IsEligible(p *models.PlayerDay, slot Slot) bool {
	if !p.Assignable() {
		return false
	}
	for _, pos := range p.Positions {
		for _, want := range slot.Eligible {
			if pos == want {
				return true
			}
		}
	}
	return false
}
