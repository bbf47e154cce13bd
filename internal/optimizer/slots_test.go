package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/dreamsbydutch/gshl-lineups/internal/models"
)

func positions(ps ...models.Position) datatypes.JSONSlice[models.Position] {
	return datatypes.JSONSlice[models.Position](ps)
}

// record builds a PlayerDay for tests. gp/gs are games played/started.
func record(id string, rating float64, daily string, gp, gs int, ps ...models.Position) models.PlayerDay {
	r := rating
	return models.PlayerDay{
		PlayerID:     id,
		TeamID:       "HAM",
		Positions:    positions(ps...),
		DailyPos:     daily,
		GamesPlayed:  gp,
		GamesStarted: gs,
		Rating:       &r,
	}
}

func TestDefaultSlots_Shape(t *testing.T) {
	slots := DefaultSlots()
	require.Len(t, slots, 11)

	counts := make(map[string]int)
	for _, s := range slots {
		counts[s.Label]++
	}
	assert.Equal(t, 2, counts[models.SlotLW])
	assert.Equal(t, 2, counts[models.SlotC])
	assert.Equal(t, 2, counts[models.SlotRW])
	assert.Equal(t, 3, counts[models.SlotD])
	assert.Equal(t, 1, counts[models.SlotUtil])
	assert.Equal(t, 1, counts[models.SlotG])
}

func TestOrderSlots_MostConstrainedFirst(t *testing.T) {
	ordered := OrderSlots(DefaultSlots())
	require.Len(t, ordered, 11)

	// Util is the most permissive slot and must come last; everything
	// before it is a single-position slot.
	assert.Equal(t, models.SlotUtil, ordered[len(ordered)-1].Label)
	for _, s := range ordered[:len(ordered)-1] {
		assert.Len(t, s.Eligible, 1, "slot %s should be single-position", s.Label)
	}

	// Ordering is stable, so repeated calls agree exactly. The greedy pass
	// and the search rely on recomputing the identical order.
	again := OrderSlots(DefaultSlots())
	assert.Equal(t, ordered, again)
}

func TestIsEligible(t *testing.T) {
	goalieSlot := Slot{Label: models.SlotG, Eligible: []models.Position{models.PositionG}}
	utilSlot := Slot{Label: models.SlotUtil, Eligible: []models.Position{
		models.PositionLW, models.PositionC, models.PositionRW, models.PositionD,
	}}
	centerSlot := Slot{Label: models.SlotC, Eligible: []models.Position{models.PositionC}}

	goalie := record("g1", 88, models.SlotG, 1, 1, models.PositionG)
	winger := record("w1", 75, models.SlotLW, 1, 1, models.PositionLW)
	dual := record("d1", 95, models.SlotBench, 1, 0, models.PositionRW, models.PositionC)

	assert.True(t, IsEligible(&goalie, goalieSlot))
	assert.False(t, IsEligible(&winger, goalieSlot))
	assert.False(t, IsEligible(&dual, goalieSlot))

	// Util takes any skater but never a pure goalie.
	assert.True(t, IsEligible(&winger, utilSlot))
	assert.True(t, IsEligible(&dual, utilSlot))
	assert.False(t, IsEligible(&goalie, utilSlot))

	// Multi-position players satisfy any slot their set intersects.
	assert.True(t, IsEligible(&dual, centerSlot))
	assert.False(t, IsEligible(&winger, centerSlot))
}

func TestIsEligible_MalformedRecords(t *testing.T) {
	noPositions := record("p1", 50, models.SlotBench, 0, 0)
	noID := record("", 50, models.SlotC, 1, 0, models.PositionC)

	for _, slot := range OrderSlots(DefaultSlots()) {
		assert.False(t, IsEligible(&noPositions, slot))
		assert.False(t, IsEligible(&noID, slot))
	}
}
