package models

import "time"

type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Captain   *string   `json:"captain,omitempty"`
	Coach     *string   `json:"coach,omitempty"`
	Founded   time.Time `json:"founded"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Players holds the ids of the players on the roster. The list is a
	// view over the team_players edges, populated by the repository.
	Players []string `json:"players"`

	LogoKey *string `json:"-"`
	LogoURL *string `json:"logoUrl,omitempty"`
}
