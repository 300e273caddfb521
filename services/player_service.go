package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/cricket-league/models"
	"github.com/Dosada05/cricket-league/repositories"
)

const (
	minPlayerAge = 15
	maxPlayerAge = 50
)

type PlayerService interface {
	Create(ctx context.Context, actor *models.User, input CreatePlayerInput) (*models.Player, error)
	GetByID(ctx context.Context, id string) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	ListByTeam(ctx context.Context, teamID string) ([]models.Player, error)
	Update(ctx context.Context, actor *models.User, id string, input UpdatePlayerInput) (*models.Player, error)
	Delete(ctx context.Context, actor *models.User, id string) error
}

type CreatePlayerInput struct {
	Name         string                `json:"name"`
	Age          int                   `json:"age"`
	Position     models.PlayerPosition `json:"position"`
	BattingStyle models.BattingStyle   `json:"battingStyle"`
	BowlingStyle *models.BowlingStyle  `json:"bowlingStyle"`
	Teams        []string              `json:"teams"`
}

// UpdatePlayerInput carries partial updates. Nil means the field was not
// in the request, so zero values like wickets: 0 still apply.
type UpdatePlayerInput struct {
	Name         *string                `json:"name"`
	Age          *int                   `json:"age"`
	Position     *models.PlayerPosition `json:"position"`
	BattingStyle *models.BattingStyle   `json:"battingStyle"`
	BowlingStyle *models.BowlingStyle   `json:"bowlingStyle"`
	Teams        *[]string              `json:"teams"`
	Stats        *StatsInput            `json:"stats"`
}

type StatsInput struct {
	MatchesPlayed *int `json:"matchesPlayed"`
	Runs          *int `json:"runs"`
	Wickets       *int `json:"wickets"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository, teamRepo repositories.TeamRepository) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
	}
}

func (s *playerService) Create(ctx context.Context, actor *models.User, input CreatePlayerInput) (*models.Player, error) {
	input.Name = strings.TrimSpace(input.Name)

	if input.Name == "" {
		return nil, validationError("player name is required")
	}
	if input.Age < minPlayerAge || input.Age > maxPlayerAge {
		return nil, validationError("age must be between %d and %d", minPlayerAge, maxPlayerAge)
	}
	if !input.Position.Valid() {
		return nil, validationError("unknown position %q", input.Position)
	}
	if !input.BattingStyle.Valid() {
		return nil, validationError("unknown batting style %q", input.BattingStyle)
	}
	if input.BowlingStyle != nil && !input.BowlingStyle.Valid() {
		return nil, validationError("unknown bowling style %q", *input.BowlingStyle)
	}
	if err := requireTeams(ctx, s.teamRepo, input.Teams); err != nil {
		return nil, err
	}

	player := &models.Player{
		Name:         input.Name,
		Age:          input.Age,
		Position:     input.Position,
		BattingStyle: input.BattingStyle,
		BowlingStyle: input.BowlingStyle,
		CreatedBy:    actor.ID,
		Teams:        input.Teams,
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *playerService) GetByID(ctx context.Context, id string) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

func (s *playerService) List(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// ListByTeam returns the team's roster. An unknown team id yields an
// empty list rather than an error.
func (s *playerService) ListByTeam(ctx context.Context, teamID string) ([]models.Player, error) {
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players by team: %w", err)
	}
	return players, nil
}

func (s *playerService) Update(ctx context.Context, actor *models.User, id string, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.requireModifiable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, validationError("player name cannot be empty")
		}
		player.Name = name
	}
	if input.Age != nil {
		if *input.Age < minPlayerAge || *input.Age > maxPlayerAge {
			return nil, validationError("age must be between %d and %d", minPlayerAge, maxPlayerAge)
		}
		player.Age = *input.Age
	}
	if input.Position != nil {
		if !input.Position.Valid() {
			return nil, validationError("unknown position %q", *input.Position)
		}
		player.Position = *input.Position
	}
	if input.BattingStyle != nil {
		if !input.BattingStyle.Valid() {
			return nil, validationError("unknown batting style %q", *input.BattingStyle)
		}
		player.BattingStyle = *input.BattingStyle
	}
	if input.BowlingStyle != nil {
		if !input.BowlingStyle.Valid() {
			return nil, validationError("unknown bowling style %q", *input.BowlingStyle)
		}
		player.BowlingStyle = input.BowlingStyle
	}
	if input.Stats != nil {
		if input.Stats.MatchesPlayed != nil {
			if *input.Stats.MatchesPlayed < 0 {
				return nil, validationError("matches played cannot be negative")
			}
			player.Stats.MatchesPlayed = *input.Stats.MatchesPlayed
		}
		if input.Stats.Runs != nil {
			if *input.Stats.Runs < 0 {
				return nil, validationError("runs cannot be negative")
			}
			player.Stats.Runs = *input.Stats.Runs
		}
		if input.Stats.Wickets != nil {
			if *input.Stats.Wickets < 0 {
				return nil, validationError("wickets cannot be negative")
			}
			player.Stats.Wickets = *input.Stats.Wickets
		}
	}

	syncTeams := false
	if input.Teams != nil {
		if err := requireTeams(ctx, s.teamRepo, *input.Teams); err != nil {
			return nil, err
		}
		player.Teams = *input.Teams
		syncTeams = true
	}

	if err := s.playerRepo.Update(ctx, player, syncTeams); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	return player, nil
}

func (s *playerService) Delete(ctx context.Context, actor *models.User, id string) error {
	if _, err := s.requireModifiable(ctx, actor, id); err != nil {
		return err
	}

	// team_players edges go with the player, dropping them from every
	// team roster view.
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return nil
}

func (s *playerService) requireModifiable(ctx context.Context, actor *models.User, id string) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if !actor.CanModify(player.CreatedBy) {
		return nil, ErrForbiddenOperation
	}
	return player, nil
}
