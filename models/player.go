package models

import "time"

type PlayerPosition string

const (
	PositionBatsman      PlayerPosition = "batsman"
	PositionBowler       PlayerPosition = "bowler"
	PositionAllRounder   PlayerPosition = "all-rounder"
	PositionWicketKeeper PlayerPosition = "wicket-keeper"
)

func (p PlayerPosition) Valid() bool {
	switch p {
	case PositionBatsman, PositionBowler, PositionAllRounder, PositionWicketKeeper:
		return true
	}
	return false
}

type BattingStyle string

const (
	BattingLeft  BattingStyle = "left"
	BattingRight BattingStyle = "right"
)

func (b BattingStyle) Valid() bool {
	return b == BattingLeft || b == BattingRight
}

type BowlingStyle string

const (
	BowlingFast    BowlingStyle = "fast"
	BowlingMedium  BowlingStyle = "medium"
	BowlingSpin    BowlingStyle = "spin"
	BowlingOffSpin BowlingStyle = "off-spin"
	BowlingLegSpin BowlingStyle = "leg-spin"
)

func (b BowlingStyle) Valid() bool {
	switch b {
	case BowlingFast, BowlingMedium, BowlingSpin, BowlingOffSpin, BowlingLegSpin:
		return true
	}
	return false
}

// PlayerStats are career aggregates, updated through the regular player
// update path.
type PlayerStats struct {
	MatchesPlayed int `json:"matchesPlayed"`
	Runs          int `json:"runs"`
	Wickets       int `json:"wickets"`
}

type Player struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Age          int            `json:"age"`
	Position     PlayerPosition `json:"position"`
	BattingStyle BattingStyle   `json:"battingStyle"`
	BowlingStyle *BowlingStyle  `json:"bowlingStyle,omitempty"`
	Stats        PlayerStats    `json:"stats"`
	CreatedBy    string         `json:"createdBy"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`

	// Teams holds the ids of the teams the player belongs to, a view over
	// the team_players edges mirrored by Team.Players.
	Teams []string `json:"teams"`
}
