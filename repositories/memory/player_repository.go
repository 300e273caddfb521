package memory

import (
	"context"

	"github.com/Dosada05/cricket-league/models"
	"github.com/Dosada05/cricket-league/repositories"
	"github.com/google/uuid"
)

type playerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) repositories.PlayerRepository {
	return &playerRepository{store: store}
}

func (r *playerRepository) Create(ctx context.Context, player *models.Player) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	player.ID = uuid.NewString()
	player.CreatedAt = now()
	player.UpdatedAt = player.CreatedAt

	for _, teamID := range player.Teams {
		if !s.hasEdge(s.teamPlayers, teamID, player.ID) {
			s.teamPlayers = append(s.teamPlayers, edge{left: teamID, right: player.ID})
		}
	}
	if player.Teams == nil {
		player.Teams = []string{}
	}

	s.players[player.ID] = clonePlayer(player)
	s.track(player.ID)
	return nil
}

func (r *playerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, ok := s.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}

	out := clonePlayer(player)
	out.Teams = leftsOf(s.teamPlayers, id)
	return out, nil
}

func (r *playerRepository) List(ctx context.Context) ([]models.Player, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]models.Player, 0, len(s.players))
	for _, id := range s.order {
		if player, ok := s.players[id]; ok {
			out := clonePlayer(player)
			out.Teams = leftsOf(s.teamPlayers, id)
			players = append(players, *out)
		}
	}
	return players, nil
}

func (r *playerRepository) Update(ctx context.Context, player *models.Player, syncTeams bool) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.players[player.ID]
	if !ok {
		return repositories.ErrPlayerNotFound
	}

	stored.Name = player.Name
	stored.Age = player.Age
	stored.Position = player.Position
	stored.BattingStyle = player.BattingStyle
	stored.BowlingStyle = copyBowlingStyle(player.BowlingStyle)
	stored.Stats = player.Stats
	stored.UpdatedAt = now()

	if syncTeams {
		s.teamPlayers = dropEdges(s.teamPlayers, func(e edge) bool { return e.right != player.ID })
		for _, teamID := range player.Teams {
			if !s.hasEdge(s.teamPlayers, teamID, player.ID) {
				s.teamPlayers = append(s.teamPlayers, edge{left: teamID, right: player.ID})
			}
		}
	}

	player.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *playerRepository) Delete(ctx context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(s.players, id)

	// Dropping the edges removes the player from every roster.
	s.teamPlayers = dropEdges(s.teamPlayers, func(e edge) bool { return e.right != id })
	return nil
}

func (r *playerRepository) ListByTeam(ctx context.Context, teamID string) ([]models.Player, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	members := rightsOf(s.teamPlayers, teamID)
	players := make([]models.Player, 0, len(members))
	for _, playerID := range members {
		if player, ok := s.players[playerID]; ok {
			out := clonePlayer(player)
			out.Teams = leftsOf(s.teamPlayers, playerID)
			players = append(players, *out)
		}
	}
	return players, nil
}

func copyBowlingStyle(p *models.BowlingStyle) *models.BowlingStyle {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func clonePlayer(player *models.Player) *models.Player {
	out := *player
	out.BowlingStyle = copyBowlingStyle(player.BowlingStyle)
	out.Teams = append([]string(nil), player.Teams...)
	return &out
}
