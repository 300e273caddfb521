package memory

import (
	"context"

	"github.com/Dosada05/cricket-league/models"
	"github.com/Dosada05/cricket-league/repositories"
	"github.com/google/uuid"
)

type tournamentRepository struct {
	store *Store
}

func NewTournamentRepository(store *Store) repositories.TournamentRepository {
	return &tournamentRepository{store: store}
}

func (r *tournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = uuid.NewString()
	t.CreatedAt = now()
	t.UpdatedAt = t.CreatedAt

	for _, teamID := range t.TeamIDs {
		if !s.hasEdge(s.tournamentTeams, t.ID, teamID) {
			s.tournamentTeams = append(s.tournamentTeams, edge{left: t.ID, right: teamID})
		}
	}
	if t.TeamIDs == nil {
		t.TeamIDs = []string{}
	}
	t.MatchIDs = []string{}

	s.tournaments[t.ID] = cloneTournament(t)
	s.track(t.ID)
	return nil
}

func (r *tournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}

	out := cloneTournament(t)
	out.TeamIDs = rightsOf(s.tournamentTeams, id)
	out.MatchIDs = s.matchIDsOf(id)
	return out, nil
}

func (r *tournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	tournaments := make([]models.Tournament, 0, len(s.tournaments))
	for _, id := range s.order {
		if t, ok := s.tournaments[id]; ok {
			out := cloneTournament(t)
			out.TeamIDs = rightsOf(s.tournamentTeams, id)
			out.MatchIDs = s.matchIDsOf(id)
			tournaments = append(tournaments, *out)
		}
	}
	return tournaments, nil
}

func (r *tournamentRepository) Update(ctx context.Context, t *models.Tournament, syncTeams bool) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.tournaments[t.ID]
	if !ok {
		return repositories.ErrTournamentNotFound
	}

	stored.Name = t.Name
	stored.Description = copyStringPtr(t.Description)
	stored.StartDate = t.StartDate
	stored.EndDate = t.EndDate
	stored.Format = t.Format
	stored.Status = t.Status
	stored.WinnerID = copyStringPtr(t.WinnerID)
	stored.UpdatedAt = now()

	if syncTeams {
		s.tournamentTeams = dropEdges(s.tournamentTeams, func(e edge) bool { return e.left != t.ID })
		for _, teamID := range t.TeamIDs {
			if !s.hasEdge(s.tournamentTeams, t.ID, teamID) {
				s.tournamentTeams = append(s.tournamentTeams, edge{left: t.ID, right: teamID})
			}
		}
	}

	t.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *tournamentRepository) Delete(ctx context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}

	// Matches owned by the tournament are deleted, not orphaned.
	for matchID, match := range s.matches {
		if match.TournamentID != nil && *match.TournamentID == id {
			delete(s.matches, matchID)
		}
	}

	delete(s.tournaments, id)
	s.tournamentTeams = dropEdges(s.tournamentTeams, func(e edge) bool { return e.left != id })
	return nil
}

func (r *tournamentRepository) AddTeam(ctx context.Context, tournamentID, teamID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tournaments[tournamentID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	if s.hasEdge(s.tournamentTeams, tournamentID, teamID) {
		return repositories.ErrTournamentTeamConflict
	}
	s.tournamentTeams = append(s.tournamentTeams, edge{left: tournamentID, right: teamID})
	return nil
}

func (r *tournamentRepository) RemoveTeam(ctx context.Context, tournamentID, teamID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tournamentTeams = dropEdges(s.tournamentTeams, func(e edge) bool {
		return !(e.left == tournamentID && e.right == teamID)
	})
	return nil
}

// matchIDsOf must be called with the store lock held.
func (s *Store) matchIDsOf(tournamentID string) []string {
	ids := make([]string, 0)
	for _, id := range s.order {
		if match, ok := s.matches[id]; ok {
			if match.TournamentID != nil && *match.TournamentID == tournamentID {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func cloneTournament(t *models.Tournament) *models.Tournament {
	out := *t
	out.Description = copyStringPtr(t.Description)
	out.WinnerID = copyStringPtr(t.WinnerID)
	out.TeamIDs = append([]string(nil), t.TeamIDs...)
	out.MatchIDs = append([]string(nil), t.MatchIDs...)
	return &out
}
