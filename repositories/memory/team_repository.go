package memory

import (
	"context"

	"github.com/Dosada05/cricket-league/models"
	"github.com/Dosada05/cricket-league/repositories"
	"github.com/google/uuid"
)

type teamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) repositories.TeamRepository {
	return &teamRepository{store: store}
}

func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	team.ID = uuid.NewString()
	team.CreatedAt = now()
	team.UpdatedAt = team.CreatedAt
	team.Players = []string{}

	s.teams[team.ID] = cloneTeam(team)
	s.track(team.ID)
	return nil
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	team, ok := s.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}

	out := cloneTeam(team)
	out.Players = rightsOf(s.teamPlayers, id)
	return out, nil
}

func (r *teamRepository) List(ctx context.Context) ([]models.Team, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	teams := make([]models.Team, 0, len(s.teams))
	for _, id := range s.order {
		if team, ok := s.teams[id]; ok {
			out := cloneTeam(team)
			out.Players = rightsOf(s.teamPlayers, id)
			teams = append(teams, *out)
		}
	}
	return teams, nil
}

func (r *teamRepository) Update(ctx context.Context, team *models.Team) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.teams[team.ID]
	if !ok {
		return repositories.ErrTeamNotFound
	}

	stored.Name = team.Name
	stored.City = team.City
	stored.Captain = copyStringPtr(team.Captain)
	stored.Coach = copyStringPtr(team.Coach)
	stored.Founded = team.Founded
	stored.UpdatedAt = now()

	team.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *teamRepository) Delete(ctx context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(s.teams, id)

	// Dropping the edges removes the team from every player's view.
	s.teamPlayers = dropEdges(s.teamPlayers, func(e edge) bool { return e.left != id })
	s.tournamentTeams = dropEdges(s.tournamentTeams, func(e edge) bool { return e.right != id })
	return nil
}

func (r *teamRepository) UpdateLogoKey(ctx context.Context, id string, logoKey *string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	stored.LogoKey = copyStringPtr(logoKey)
	stored.UpdatedAt = now()
	return nil
}

func (r *teamRepository) AddPlayer(ctx context.Context, teamID, playerID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams[teamID]; !ok {
		return repositories.ErrTeamNotFound
	}
	if s.hasEdge(s.teamPlayers, teamID, playerID) {
		return repositories.ErrTeamPlayerConflict
	}
	s.teamPlayers = append(s.teamPlayers, edge{left: teamID, right: playerID})
	return nil
}

func (r *teamRepository) RemovePlayer(ctx context.Context, teamID, playerID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.teamPlayers = dropEdges(s.teamPlayers, func(e edge) bool {
		return !(e.left == teamID && e.right == playerID)
	})
	return nil
}

func cloneTeam(team *models.Team) *models.Team {
	out := *team
	out.Captain = copyStringPtr(team.Captain)
	out.Coach = copyStringPtr(team.Coach)
	out.LogoKey = copyStringPtr(team.LogoKey)
	out.LogoURL = copyStringPtr(team.LogoURL)
	out.Players = append([]string(nil), team.Players...)
	return &out
}
