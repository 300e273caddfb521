package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/cricket-league/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound = errors.New("team not found")
	// ErrTeamPlayerConflict means the player is already on the roster.
	ErrTeamPlayerConflict = errors.New("player already in team")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id string) error
	UpdateLogoKey(ctx context.Context, id string, logoKey *string) error

	// AddPlayer and RemovePlayer maintain the team_players edges. Both
	// sides of the relationship (Team.Players, Player.Teams) are views
	// over the same edge set, so a single statement keeps them in sync.
	AddPlayer(ctx context.Context, teamID, playerID string) error
	RemovePlayer(ctx context.Context, teamID, playerID string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	team.ID = uuid.NewString()

	query := `
		INSERT INTO teams (id, name, city, captain, coach, founded, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		team.ID,
		team.Name,
		team.City,
		team.Captain,
		team.Coach,
		team.Founded,
		team.CreatedBy,
	).Scan(&team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return err
	}

	team.Players = []string{}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	query := `
		SELECT id, name, city, captain, coach, founded, logo_key, created_by, created_at, updated_at
		FROM teams
		WHERE id = $1`

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.City,
		&team.Captain,
		&team.Coach,
		&team.Founded,
		&team.LogoKey,
		&team.CreatedBy,
		&team.CreatedAt,
		&team.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	team.Players, err = r.listPlayerIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	query := `
		SELECT id, name, city, captain, coach, founded, logo_key, created_by, created_at, updated_at
		FROM teams
		ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(
			&team.ID,
			&team.Name,
			&team.City,
			&team.Captain,
			&team.Coach,
			&team.Founded,
			&team.LogoKey,
			&team.CreatedBy,
			&team.CreatedAt,
			&team.UpdatedAt,
		); err != nil {
			return nil, err
		}
		team.Players = []string{}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// One pass over the edges fills the rosters for every team.
	edgeRows, err := r.db.QueryContext(ctx, `SELECT team_id, player_id FROM team_players`)
	if err != nil {
		return nil, err
	}
	defer edgeRows.Close()

	byTeam := make(map[string][]string)
	for edgeRows.Next() {
		var teamID, playerID string
		if err := edgeRows.Scan(&teamID, &playerID); err != nil {
			return nil, err
		}
		byTeam[teamID] = append(byTeam[teamID], playerID)
	}
	if err := edgeRows.Err(); err != nil {
		return nil, err
	}

	for i := range teams {
		if ids, ok := byTeam[teams[i].ID]; ok {
			teams[i].Players = ids
		}
	}
	return teams, nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `
		UPDATE teams SET
			name = $1,
			city = $2,
			captain = $3,
			coach = $4,
			founded = $5,
			updated_at = now()
		WHERE id = $6
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		team.Name,
		team.City,
		team.Captain,
		team.Coach,
		team.Founded,
		team.ID,
	).Scan(&team.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTeamNotFound
		}
		return err
	}
	return nil
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id string) error {
	// team_players edges go with the row via ON DELETE CASCADE, which
	// strips the team from every player's membership view in the same
	// statement.
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, id string, logoKey *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE teams SET logo_key = $1, updated_at = now() WHERE id = $2`, logoKey, id)
	if err != nil {
		return err
	}

	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (r *postgresTeamRepository) AddPlayer(ctx context.Context, teamID, playerID string) error {
	query := `
		INSERT INTO team_players (team_id, player_id)
		VALUES ($1, $2)
		ON CONFLICT (team_id, player_id) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, teamID, playerID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTeamNotFound
		}
		return err
	}

	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTeamPlayerConflict
	}
	return nil
}

func (r *postgresTeamRepository) RemovePlayer(ctx context.Context, teamID, playerID string) error {
	// Removing an absent edge is a no-op by contract.
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM team_players WHERE team_id = $1 AND player_id = $2`, teamID, playerID)
	return err
}

func (r *postgresTeamRepository) listPlayerIDs(ctx context.Context, teamID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT player_id FROM team_players WHERE team_id = $1`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
