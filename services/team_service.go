package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Dosada05/cricket-league/models"
	"github.com/Dosada05/cricket-league/repositories"
	"github.com/Dosada05/cricket-league/storage"
	"github.com/google/uuid"
)

type TeamService interface {
	Create(ctx context.Context, actor *models.User, input CreateTeamInput) (*models.Team, error)
	GetByID(ctx context.Context, id string) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	Update(ctx context.Context, actor *models.User, id string, input UpdateTeamInput) (*models.Team, error)
	Delete(ctx context.Context, actor *models.User, id string) error

	AddPlayer(ctx context.Context, actor *models.User, teamID, playerID string) (*models.Team, error)
	RemovePlayer(ctx context.Context, actor *models.User, teamID, playerID string) (*models.Team, error)

	UploadLogo(ctx context.Context, actor *models.User, teamID, contentType string, file io.Reader) (*models.Team, error)
}

type CreateTeamInput struct {
	Name    string    `json:"name"`
	City    string    `json:"city"`
	Captain *string   `json:"captain"`
	Coach   *string   `json:"coach"`
	Founded time.Time `json:"founded"`
	Players []string  `json:"players"`
}

// UpdateTeamInput carries partial updates. Nil means the field was not in
// the request and keeps its stored value.
type UpdateTeamInput struct {
	Name    *string    `json:"name"`
	City    *string    `json:"city"`
	Captain *string    `json:"captain"`
	Coach   *string    `json:"coach"`
	Founded *time.Time `json:"founded"`
	Players *[]string  `json:"players"`
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
}

// NewTeamService wires the team flows. uploader may be nil when logo
// storage is not configured.
func NewTeamService(teamRepo repositories.TeamRepository, playerRepo repositories.PlayerRepository, uploader storage.FileUploader) TeamService {
	return &teamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		uploader:   uploader,
	}
}

func (s *teamService) Create(ctx context.Context, actor *models.User, input CreateTeamInput) (*models.Team, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.City = strings.TrimSpace(input.City)

	if input.Name == "" {
		return nil, validationError("team name is required")
	}
	if input.City == "" {
		return nil, validationError("team city is required")
	}

	players, err := s.normalizePlayerIDs(ctx, input.Players)
	if err != nil {
		return nil, err
	}

	team := &models.Team{
		Name:      input.Name,
		City:      input.City,
		Captain:   input.Captain,
		Coach:     input.Coach,
		Founded:   input.Founded,
		CreatedBy: actor.ID,
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	for _, playerID := range players {
		if err := s.teamRepo.AddPlayer(ctx, team.ID, playerID); err != nil &&
			!errors.Is(err, repositories.ErrTeamPlayerConflict) {
			return nil, fmt.Errorf("failed to add player to team: %w", err)
		}
	}
	team.Players = players

	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) List(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for i := range teams {
		populateTeamLogoURL(&teams[i], s.uploader)
	}
	return teams, nil
}

func (s *teamService) Update(ctx context.Context, actor *models.User, id string, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.requireModifiable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	// Validate the roster before any write so a rejected update leaves
	// the team untouched.
	var players []string
	syncPlayers := false
	if input.Players != nil {
		players, err = s.normalizePlayerIDs(ctx, *input.Players)
		if err != nil {
			return nil, err
		}
		syncPlayers = true
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, validationError("team name cannot be empty")
		}
		team.Name = name
	}
	if input.City != nil {
		city := strings.TrimSpace(*input.City)
		if city == "" {
			return nil, validationError("team city cannot be empty")
		}
		team.City = city
	}
	if input.Captain != nil {
		team.Captain = input.Captain
	}
	if input.Coach != nil {
		team.Coach = input.Coach
	}
	if input.Founded != nil {
		team.Founded = *input.Founded
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	if syncPlayers {
		if err := s.syncRoster(ctx, team.ID, team.Players, players); err != nil {
			return nil, err
		}
		team.Players = players
	}

	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, actor *models.User, id string) error {
	team, err := s.requireModifiable(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team: %w", err)
	}

	if team.LogoKey != nil && s.uploader != nil {
		// Best effort, the team row is already gone.
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}
	return nil
}

func (s *teamService) AddPlayer(ctx context.Context, actor *models.User, teamID, playerID string) (*models.Team, error) {
	if _, err := s.requireModifiable(ctx, actor, teamID); err != nil {
		return nil, err
	}
	if _, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	if err := s.teamRepo.AddPlayer(ctx, teamID, playerID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamPlayerConflict):
			return nil, ErrPlayerAlreadyInTeam
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to add player to team: %w", err)
	}
	return s.GetByID(ctx, teamID)
}

func (s *teamService) RemovePlayer(ctx context.Context, actor *models.User, teamID, playerID string) (*models.Team, error) {
	if _, err := s.requireModifiable(ctx, actor, teamID); err != nil {
		return nil, err
	}

	// Removing a player that is not on the roster is a no-op.
	if err := s.teamRepo.RemovePlayer(ctx, teamID, playerID); err != nil {
		return nil, fmt.Errorf("failed to remove player from team: %w", err)
	}
	return s.GetByID(ctx, teamID)
}

func (s *teamService) UploadLogo(ctx context.Context, actor *models.User, teamID, contentType string, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrLogoStorageUnavailable
	}

	team, err := s.requireModifiable(ctx, actor, teamID)
	if err != nil {
		return nil, err
	}

	ext, err := extensionForContentType(contentType)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("teams/%s/logo-%s%s", teamID, uuid.NewString(), ext)

	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &result.Key); err != nil {
		_ = s.uploader.Delete(ctx, result.Key)
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to store logo key: %w", err)
	}

	if team.LogoKey != nil && *team.LogoKey != result.Key {
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}

	team.LogoKey = &result.Key
	team.LogoURL = nil
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

// requireModifiable loads the team and checks ownership. Existence is
// checked first so callers get a 404 for missing teams even without rights.
func (s *teamService) requireModifiable(ctx context.Context, actor *models.User, id string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	if !actor.CanModify(team.CreatedBy) {
		return nil, ErrForbiddenOperation
	}
	return team, nil
}

// normalizePlayerIDs deduplicates the ids and checks every player exists.
func (s *teamService) normalizePlayerIDs(ctx context.Context, playerIDs []string) ([]string, error) {
	seen := make(map[string]struct{}, len(playerIDs))
	out := make([]string, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		if _, dup := seen[playerID]; dup {
			continue
		}
		seen[playerID] = struct{}{}

		if _, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				return nil, validationError("player %s not found", playerID)
			}
			return nil, err
		}
		out = append(out, playerID)
	}
	return out, nil
}

func (s *teamService) syncRoster(ctx context.Context, teamID string, current, desired []string) error {
	want := make(map[string]struct{}, len(desired))
	for _, id := range desired {
		want[id] = struct{}{}
	}
	have := make(map[string]struct{}, len(current))
	for _, id := range current {
		have[id] = struct{}{}
	}

	for _, id := range current {
		if _, keep := want[id]; !keep {
			if err := s.teamRepo.RemovePlayer(ctx, teamID, id); err != nil {
				return fmt.Errorf("failed to remove player from team: %w", err)
			}
		}
	}
	for _, id := range desired {
		if _, ok := have[id]; ok {
			continue
		}
		if err := s.teamRepo.AddPlayer(ctx, teamID, id); err != nil &&
			!errors.Is(err, repositories.ErrTeamPlayerConflict) {
			return fmt.Errorf("failed to add player to team: %w", err)
		}
	}
	return nil
}
