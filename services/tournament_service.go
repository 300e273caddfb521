package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/cricket-league/models"
	"github.com/Dosada05/cricket-league/repositories"
	"github.com/Dosada05/cricket-league/storage"
	"golang.org/x/sync/errgroup"
)

// TournamentDetail is the hydrated read model: the teams and matches
// fields carry full entities instead of ids.
type TournamentDetail struct {
	models.Tournament
	Teams   []models.Team  `json:"teams"`
	Matches []models.Match `json:"matches"`
}

type TournamentService interface {
	Create(ctx context.Context, actor *models.User, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id string) (*TournamentDetail, error)
	List(ctx context.Context) ([]models.Tournament, error)
	Update(ctx context.Context, actor *models.User, id string, input UpdateTournamentInput) (*models.Tournament, error)
	// Delete removes the tournament and every match it owns.
	Delete(ctx context.Context, actor *models.User, id string) error

	AddTeam(ctx context.Context, actor *models.User, tournamentID, teamID string) (*models.Tournament, error)
	RemoveTeam(ctx context.Context, actor *models.User, tournamentID, teamID string) (*models.Tournament, error)
	// AddMatch attaches a match to the tournament, moving it from its
	// previous tournament when it has one.
	AddMatch(ctx context.Context, actor *models.User, tournamentID, matchID string) (*models.Tournament, error)
}

type CreateTournamentInput struct {
	Name        string                  `json:"name"`
	Description *string                 `json:"description"`
	StartDate   time.Time               `json:"startDate"`
	EndDate     time.Time               `json:"endDate"`
	Format      models.TournamentFormat `json:"format"`
	Status      models.TournamentStatus `json:"status"`
	Teams       []string                `json:"teams"`
}

// UpdateTournamentInput carries partial updates. Nil means the field was
// not in the request. An empty winner id clears the winner.
type UpdateTournamentInput struct {
	Name        *string                  `json:"name"`
	Description *string                  `json:"description"`
	StartDate   *time.Time               `json:"startDate"`
	EndDate     *time.Time               `json:"endDate"`
	Format      *models.TournamentFormat `json:"format"`
	Status      *models.TournamentStatus `json:"status"`
	WinnerID    *string                  `json:"winner"`
	Teams       *[]string                `json:"teams"`
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	uploader       storage.FileUploader
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		uploader:       uploader,
	}
}

func (s *tournamentService) Create(ctx context.Context, actor *models.User, input CreateTournamentInput) (*models.Tournament, error) {
	input.Name = strings.TrimSpace(input.Name)

	if input.Name == "" {
		return nil, validationError("tournament name is required")
	}
	if err := validateDateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}
	if !input.Format.Valid() {
		return nil, validationError("unknown tournament format %q", input.Format)
	}

	status := input.Status
	if status == "" {
		status = models.TournamentStatusUpcoming
	}
	if !status.Valid() {
		return nil, validationError("unknown tournament status %q", input.Status)
	}

	if err := requireTeams(ctx, s.teamRepo, input.Teams); err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		Name:        input.Name,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Format:      input.Format,
		Status:      status,
		CreatedBy:   actor.ID,
		TeamIDs:     input.Teams,
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id string) (*TournamentDetail, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	return s.hydrate(ctx, tournament)
}

func (s *tournamentService) List(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) Update(ctx context.Context, actor *models.User, id string, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.requireModifiable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, validationError("tournament name cannot be empty")
		}
		tournament.Name = name
	}
	if input.Description != nil {
		tournament.Description = input.Description
	}
	if input.StartDate != nil {
		tournament.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		tournament.EndDate = *input.EndDate
	}
	if input.StartDate != nil || input.EndDate != nil {
		if err := validateDateRange(tournament.StartDate, tournament.EndDate); err != nil {
			return nil, err
		}
	}
	if input.Format != nil {
		if !input.Format.Valid() {
			return nil, validationError("unknown tournament format %q", *input.Format)
		}
		tournament.Format = *input.Format
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, validationError("unknown tournament status %q", *input.Status)
		}
		tournament.Status = *input.Status
	}

	syncTeams := false
	if input.Teams != nil {
		if err := requireTeams(ctx, s.teamRepo, *input.Teams); err != nil {
			return nil, err
		}
		tournament.TeamIDs = *input.Teams
		syncTeams = true
	}

	if input.WinnerID != nil {
		if *input.WinnerID == "" {
			tournament.WinnerID = nil
		} else {
			if !containsID(tournament.TeamIDs, *input.WinnerID) {
				return nil, validationError("winner must be a participating team")
			}
			tournament.WinnerID = input.WinnerID
		}
	}

	if err := s.tournamentRepo.Update(ctx, tournament, syncTeams); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to update tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) Delete(ctx context.Context, actor *models.User, id string) error {
	if _, err := s.requireModifiable(ctx, actor, id); err != nil {
		return err
	}

	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	return nil
}

func (s *tournamentService) AddTeam(ctx context.Context, actor *models.User, tournamentID, teamID string) (*models.Tournament, error) {
	if _, err := s.requireModifiable(ctx, actor, tournamentID); err != nil {
		return nil, err
	}
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	if err := s.tournamentRepo.AddTeam(ctx, tournamentID, teamID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentTeamConflict):
			return nil, ErrTeamAlreadyInTournament
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to add team to tournament: %w", err)
	}
	return s.reload(ctx, tournamentID)
}

func (s *tournamentService) RemoveTeam(ctx context.Context, actor *models.User, tournamentID, teamID string) (*models.Tournament, error) {
	if _, err := s.requireModifiable(ctx, actor, tournamentID); err != nil {
		return nil, err
	}

	// Removing a team that is not entered is a no-op.
	if err := s.tournamentRepo.RemoveTeam(ctx, tournamentID, teamID); err != nil {
		return nil, fmt.Errorf("failed to remove team from tournament: %w", err)
	}
	return s.reload(ctx, tournamentID)
}

func (s *tournamentService) AddMatch(ctx context.Context, actor *models.User, tournamentID, matchID string) (*models.Tournament, error) {
	if _, err := s.requireModifiable(ctx, actor, tournamentID); err != nil {
		return nil, err
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if match.TournamentID != nil && *match.TournamentID == tournamentID {
		return nil, ErrMatchAlreadyInTournament
	}

	if err := s.matchRepo.AssignTournament(ctx, matchID, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to assign match to tournament: %w", err)
	}
	return s.reload(ctx, tournamentID)
}

func (s *tournamentService) requireModifiable(ctx context.Context, actor *models.User, id string) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	if !actor.CanModify(tournament.CreatedBy) {
		return nil, ErrForbiddenOperation
	}
	return tournament, nil
}

func (s *tournamentService) reload(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload tournament: %w", err)
	}
	return tournament, nil
}

// hydrate resolves the team and match id views into full entities,
// fetching both sides concurrently.
func (s *tournamentService) hydrate(ctx context.Context, tournament *models.Tournament) (*TournamentDetail, error) {
	detail := &TournamentDetail{
		Tournament: *tournament,
		Teams:      make([]models.Team, len(tournament.TeamIDs)),
		Matches:    make([]models.Match, len(tournament.MatchIDs)),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, teamID := range tournament.TeamIDs {
		i, teamID := i, teamID
		g.Go(func() error {
			team, err := s.teamRepo.GetByID(gctx, teamID)
			if err != nil {
				return fmt.Errorf("failed to get team %s: %w", teamID, err)
			}
			populateTeamLogoURL(team, s.uploader)
			detail.Teams[i] = *team
			return nil
		})
	}
	for i, matchID := range tournament.MatchIDs {
		i, matchID := i, matchID
		g.Go(func() error {
			match, err := s.matchRepo.GetByID(gctx, matchID)
			if err != nil {
				return fmt.Errorf("failed to get match %s: %w", matchID, err)
			}
			detail.Matches[i] = *match
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
