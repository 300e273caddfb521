package memory

import (
	"context"

	"github.com/Dosada05/cricket-league/models"
	"github.com/Dosada05/cricket-league/repositories"
	"github.com/google/uuid"
)

type matchRepository struct {
	store *Store
}

func NewMatchRepository(store *Store) repositories.MatchRepository {
	return &matchRepository{store: store}
}

func (r *matchRepository) Create(ctx context.Context, match *models.Match) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	match.ID = uuid.NewString()
	match.CreatedAt = now()
	match.UpdatedAt = match.CreatedAt

	s.matches[match.ID] = cloneMatch(match)
	s.track(match.ID)
	return nil
}

func (r *matchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	match, ok := s.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return cloneMatch(match), nil
}

func (r *matchRepository) List(ctx context.Context) ([]models.Match, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]models.Match, 0, len(s.matches))
	for _, id := range s.order {
		if match, ok := s.matches[id]; ok {
			matches = append(matches, *cloneMatch(match))
		}
	}
	return matches, nil
}

func (r *matchRepository) Update(ctx context.Context, match *models.Match) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.matches[match.ID]
	if !ok {
		return repositories.ErrMatchNotFound
	}

	stored.Title = match.Title
	stored.Team1ID = match.Team1ID
	stored.Team2ID = match.Team2ID
	stored.Venue = match.Venue
	stored.Date = match.Date
	stored.Overs = match.Overs
	stored.Status = match.Status
	stored.WinnerID = copyStringPtr(match.WinnerID)
	stored.Team1Score = copyScore(match.Team1Score)
	stored.Team2Score = copyScore(match.Team2Score)
	stored.TournamentID = copyStringPtr(match.TournamentID)
	stored.UpdatedAt = now()

	match.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *matchRepository) Delete(ctx context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(s.matches, id)
	return nil
}

func (r *matchRepository) AssignTournament(ctx context.Context, matchID, tournamentID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.matches[matchID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	id := tournamentID
	stored.TournamentID = &id
	stored.UpdatedAt = now()
	return nil
}

func cloneMatch(match *models.Match) *models.Match {
	out := *match
	out.WinnerID = copyStringPtr(match.WinnerID)
	out.Team1Score = copyScore(match.Team1Score)
	out.Team2Score = copyScore(match.Team2Score)
	out.TournamentID = copyStringPtr(match.TournamentID)
	return &out
}
