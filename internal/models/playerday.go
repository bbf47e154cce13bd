package models

import (
	"time"

	"gorm.io/datatypes"
)

// Position is a skating or goaltending position code.
type Position string

const (
	PositionLW Position = "LW"
	PositionC  Position = "C"
	PositionRW Position = "RW"
	PositionD  Position = "D"
	PositionG  Position = "G"
)

// Daily slot labels. SlotBench and the IR variants are never assignable
// lineup slots; they are where unassigned or unavailable players land.
const (
	SlotLW     = "LW"
	SlotC      = "C"
	SlotRW     = "RW"
	SlotD      = "D"
	SlotUtil   = "Util"
	SlotG      = "G"
	SlotBench  = "BN"
	SlotIR     = "IR"
	SlotIRPlus = "IR+"
)

// PlayerDay is one player's record for one team game day. Records arrive
// fresh per team per day from the roster source; Rating comes from the
// ranking engine and is nil until scored.
type PlayerDay struct {
	ID           uint                          `gorm:"primaryKey" json:"id"`
	PlayerID     string                        `gorm:"not null;index:idx_team_date" json:"player_id"`
	TeamID       string                        `gorm:"not null;index:idx_team_date" json:"team_id"`
	Date         time.Time                     `gorm:"not null;index:idx_team_date" json:"date"`
	Positions    datatypes.JSONSlice[Position] `json:"positions"`
	PosGroup     string                        `json:"pos_group"`
	DailyPos     string                        `json:"daily_pos"`
	GamesPlayed  int                           `json:"games_played"`
	GamesStarted int                           `json:"games_started"`
	InjuryStatus string                        `json:"injury_status,omitempty"`
	Rating       *float64                      `json:"rating,omitempty"`

	// Computed by the lineup optimizer.
	FullPos string `json:"full_pos"`
	BestPos string `json:"best_pos"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (PlayerDay) TableName() string {
	return "player_days"
}

// RatingValue returns the rating with a missing rating treated as 0.
func (p *PlayerDay) RatingValue() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// Played reports whether the player appeared in the game.
func (p *PlayerDay) Played() bool {
	return p.GamesPlayed > 0
}

// Started reports whether the player started the game.
func (p *PlayerDay) Started() bool {
	return p.GamesStarted > 0
}

// InActiveLineup reports whether the team slotted the player into the
// active lineup, as opposed to the bench or an IR spot.
func (p *PlayerDay) InActiveLineup() bool {
	switch p.DailyPos {
	case SlotBench, SlotIR, SlotIRPlus, "":
		return false
	}
	return true
}

// HasPosition reports whether the player's position set contains pos.
func (p *PlayerDay) HasPosition(pos Position) bool {
	for _, held := range p.Positions {
		if held == pos {
			return true
		}
	}
	return false
}

// Assignable reports whether the record can be considered for any slot at
// all. Records missing an identifier or a position set are passed over
// rather than rejected.
func (p *PlayerDay) Assignable() bool {
	return p.PlayerID != "" && len(p.Positions) > 0
}
