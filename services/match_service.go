package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/cricket-league/models"
	"github.com/Dosada05/cricket-league/repositories"
)

const (
	minMatchOvers = 1
	maxMatchOvers = 50
)

type MatchService interface {
	Create(ctx context.Context, actor *models.User, input CreateMatchInput) (*models.Match, error)
	GetByID(ctx context.Context, id string) (*models.Match, error)
	List(ctx context.Context) ([]models.Match, error)
	Update(ctx context.Context, actor *models.User, id string, input UpdateMatchInput) (*models.Match, error)
	// UpdateScore is the narrow result-reporting path: innings lines,
	// winner and status only.
	UpdateScore(ctx context.Context, actor *models.User, id string, input UpdateScoreInput) (*models.Match, error)
	Delete(ctx context.Context, actor *models.User, id string) error
}

type CreateMatchInput struct {
	Title        string             `json:"title"`
	Team1ID      string             `json:"team1"`
	Team2ID      string             `json:"team2"`
	Venue        string             `json:"venue"`
	Date         time.Time          `json:"date"`
	Overs        int                `json:"overs"`
	Status       models.MatchStatus `json:"status"`
	TournamentID *string            `json:"tournament"`
}

// UpdateMatchInput carries partial updates. Nil means the field was not
// in the request. An empty tournament id detaches the match.
type UpdateMatchInput struct {
	Title        *string             `json:"title"`
	Team1ID      *string             `json:"team1"`
	Team2ID      *string             `json:"team2"`
	Venue        *string             `json:"venue"`
	Date         *time.Time          `json:"date"`
	Overs        *int                `json:"overs"`
	Status       *models.MatchStatus `json:"status"`
	WinnerID     *string             `json:"winner"`
	Team1Score   *ScoreInput         `json:"team1Score"`
	Team2Score   *ScoreInput         `json:"team2Score"`
	TournamentID *string             `json:"tournament"`
}

type UpdateScoreInput struct {
	Team1Score *ScoreInput         `json:"team1Score"`
	Team2Score *ScoreInput         `json:"team2Score"`
	Winner     *string             `json:"winner"`
	Status     *models.MatchStatus `json:"status"`
}

// ScoreInput merges onto the stored innings line field by field, so a
// request carrying wickets: 0 still lands.
type ScoreInput struct {
	Runs    *int     `json:"runs"`
	Wickets *int     `json:"wickets"`
	Overs   *float64 `json:"overs"`
}

type matchService struct {
	matchRepo      repositories.MatchRepository
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
}

func NewMatchService(matchRepo repositories.MatchRepository, teamRepo repositories.TeamRepository, tournamentRepo repositories.TournamentRepository) MatchService {
	return &matchService{
		matchRepo:      matchRepo,
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
	}
}

func (s *matchService) Create(ctx context.Context, actor *models.User, input CreateMatchInput) (*models.Match, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Venue = strings.TrimSpace(input.Venue)

	if input.Title == "" {
		return nil, validationError("match title is required")
	}
	if input.Venue == "" {
		return nil, validationError("match venue is required")
	}
	if input.Date.IsZero() {
		return nil, validationError("match date is required")
	}
	if input.Overs < minMatchOvers || input.Overs > maxMatchOvers {
		return nil, validationError("overs must be between %d and %d", minMatchOvers, maxMatchOvers)
	}
	if input.Team1ID == "" || input.Team2ID == "" {
		return nil, validationError("both teams are required")
	}
	if input.Team1ID == input.Team2ID {
		return nil, ErrSameTeams
	}
	if err := requireTeams(ctx, s.teamRepo, []string{input.Team1ID, input.Team2ID}); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.MatchStatusScheduled
	}
	if !status.Valid() {
		return nil, validationError("unknown match status %q", input.Status)
	}

	if input.TournamentID != nil && *input.TournamentID != "" {
		if err := s.requireTournament(ctx, *input.TournamentID); err != nil {
			return nil, err
		}
	} else {
		input.TournamentID = nil
	}

	match := &models.Match{
		Title:        input.Title,
		Team1ID:      input.Team1ID,
		Team2ID:      input.Team2ID,
		Venue:        input.Venue,
		Date:         input.Date,
		Overs:        input.Overs,
		Status:       status,
		TournamentID: input.TournamentID,
		CreatedBy:    actor.ID,
	}

	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

func (s *matchService) GetByID(ctx context.Context, id string) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return match, nil
}

func (s *matchService) List(ctx context.Context) ([]models.Match, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) Update(ctx context.Context, actor *models.User, id string, input UpdateMatchInput) (*models.Match, error) {
	match, err := s.requireModifiable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, validationError("match title cannot be empty")
		}
		match.Title = title
	}
	if input.Venue != nil {
		venue := strings.TrimSpace(*input.Venue)
		if venue == "" {
			return nil, validationError("match venue cannot be empty")
		}
		match.Venue = venue
	}
	if input.Date != nil {
		if input.Date.IsZero() {
			return nil, validationError("match date cannot be empty")
		}
		match.Date = *input.Date
	}
	if input.Overs != nil {
		if *input.Overs < minMatchOvers || *input.Overs > maxMatchOvers {
			return nil, validationError("overs must be between %d and %d", minMatchOvers, maxMatchOvers)
		}
		match.Overs = *input.Overs
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, validationError("unknown match status %q", *input.Status)
		}
		match.Status = *input.Status
	}

	if input.Team1ID != nil {
		match.Team1ID = *input.Team1ID
	}
	if input.Team2ID != nil {
		match.Team2ID = *input.Team2ID
	}
	if input.Team1ID != nil || input.Team2ID != nil {
		if match.Team1ID == match.Team2ID {
			return nil, ErrSameTeams
		}
		if err := requireTeams(ctx, s.teamRepo, []string{match.Team1ID, match.Team2ID}); err != nil {
			return nil, err
		}
	}

	if input.Team1Score != nil {
		match.Team1Score = mergeScore(match.Team1Score, input.Team1Score)
		if err := validateScore(match.Team1Score); err != nil {
			return nil, err
		}
	}
	if input.Team2Score != nil {
		match.Team2Score = mergeScore(match.Team2Score, input.Team2Score)
		if err := validateScore(match.Team2Score); err != nil {
			return nil, err
		}
	}

	if input.WinnerID != nil {
		if *input.WinnerID == "" {
			match.WinnerID = nil
		} else {
			match.WinnerID = input.WinnerID
		}
	}
	// Checked after every field lands so a team reassignment cannot
	// leave the winner pointing at a non-participant.
	if match.WinnerID != nil && *match.WinnerID != match.Team1ID && *match.WinnerID != match.Team2ID {
		return nil, validationError("winner must be one of the playing teams")
	}

	if input.TournamentID != nil {
		if *input.TournamentID == "" {
			match.TournamentID = nil
		} else {
			if err := s.requireTournament(ctx, *input.TournamentID); err != nil {
				return nil, err
			}
			match.TournamentID = input.TournamentID
		}
	}

	if err := s.matchRepo.Update(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update match: %w", err)
	}
	return match, nil
}

func (s *matchService) UpdateScore(ctx context.Context, actor *models.User, id string, input UpdateScoreInput) (*models.Match, error) {
	return s.Update(ctx, actor, id, UpdateMatchInput{
		Team1Score: input.Team1Score,
		Team2Score: input.Team2Score,
		WinnerID:   input.Winner,
		Status:     input.Status,
	})
}

func (s *matchService) Delete(ctx context.Context, actor *models.User, id string) error {
	if _, err := s.requireModifiable(ctx, actor, id); err != nil {
		return err
	}

	if err := s.matchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match: %w", err)
	}
	return nil
}

func (s *matchService) requireModifiable(ctx context.Context, actor *models.User, id string) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if !actor.CanModify(match.CreatedBy) {
		return nil, ErrForbiddenOperation
	}
	return match, nil
}

func (s *matchService) requireTournament(ctx context.Context, id string) error {
	if _, err := s.tournamentRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return validationError("tournament %s not found", id)
		}
		return fmt.Errorf("failed to get tournament: %w", err)
	}
	return nil
}

func mergeScore(current *models.Score, input *ScoreInput) *models.Score {
	score := &models.Score{}
	if current != nil {
		*score = *current
	}
	if input.Runs != nil {
		score.Runs = *input.Runs
	}
	if input.Wickets != nil {
		score.Wickets = *input.Wickets
	}
	if input.Overs != nil {
		score.Overs = *input.Overs
	}
	return score
}
