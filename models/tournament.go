package models

import "time"

type TournamentStatus string

const (
	TournamentStatusUpcoming  TournamentStatus = "upcoming"
	TournamentStatusOngoing   TournamentStatus = "ongoing"
	TournamentStatusCompleted TournamentStatus = "completed"
)

func (s TournamentStatus) Valid() bool {
	switch s {
	case TournamentStatusUpcoming, TournamentStatusOngoing, TournamentStatusCompleted:
		return true
	}
	return false
}

type TournamentFormat string

const (
	FormatT20  TournamentFormat = "T20"
	FormatODI  TournamentFormat = "ODI"
	FormatTest TournamentFormat = "Test"
)

func (f TournamentFormat) Valid() bool {
	switch f {
	case FormatT20, FormatODI, FormatTest:
		return true
	}
	return false
}

type Tournament struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	StartDate   time.Time        `json:"startDate"`
	EndDate     time.Time        `json:"endDate"`
	Format      TournamentFormat `json:"format"`
	Status      TournamentStatus `json:"status"`
	WinnerID    *string          `json:"winner,omitempty"`
	CreatedBy   string           `json:"createdBy"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`

	// Teams and Matches are views: Teams over the tournament_teams edges,
	// Matches over matches.tournament_id.
	TeamIDs  []string `json:"teams"`
	MatchIDs []string `json:"matches"`
}
