package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusCancelled MatchStatus = "cancelled"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusScheduled, MatchStatusLive, MatchStatusCompleted, MatchStatusCancelled:
		return true
	}
	return false
}

// Score is one innings line. Wickets are capped at 10 by validation.
type Score struct {
	Runs    int     `json:"runs"`
	Wickets int     `json:"wickets"`
	Overs   float64 `json:"overs"`
}

type Match struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Team1ID      string      `json:"team1"`
	Team2ID      string      `json:"team2"`
	Venue        string      `json:"venue"`
	Date         time.Time   `json:"date"`
	Overs        int         `json:"overs"`
	Status       MatchStatus `json:"status"`
	WinnerID     *string     `json:"winner,omitempty"`
	Team1Score   *Score      `json:"team1Score,omitempty"`
	Team2Score   *Score      `json:"team2Score,omitempty"`
	TournamentID *string     `json:"tournament,omitempty"`
	CreatedBy    string      `json:"createdBy"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}
