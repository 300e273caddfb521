package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/cricket-league/models"
	"github.com/google/uuid"
)

var ErrPlayerNotFound = errors.New("player not found")

type PlayerRepository interface {
	// Create persists the player and the team_players edges for every id
	// in player.Teams within one transaction.
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id string) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	// Update rewrites the player row. With syncTeams set it also replaces
	// the team_players edges to match player.Teams, in the same
	// transaction.
	Update(ctx context.Context, player *models.Player, syncTeams bool) error
	Delete(ctx context.Context, id string) error
	ListByTeam(ctx context.Context, teamID string) ([]models.Player, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	player.ID = uuid.NewString()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO players (id, name, age, position, batting_style, bowling_style,
			matches_played, runs, wickets, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	err = tx.QueryRowContext(ctx, query,
		player.ID,
		player.Name,
		player.Age,
		player.Position,
		player.BattingStyle,
		player.BowlingStyle,
		player.Stats.MatchesPlayed,
		player.Stats.Runs,
		player.Stats.Wickets,
		player.CreatedBy,
	).Scan(&player.CreatedAt, &player.UpdatedAt)
	if err != nil {
		return err
	}

	if err := replacePlayerTeams(ctx, tx, player.ID, player.Teams); err != nil {
		return err
	}

	if player.Teams == nil {
		player.Teams = []string{}
	}
	return tx.Commit()
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	query := `
		SELECT id, name, age, position, batting_style, bowling_style,
			matches_played, runs, wickets, created_by, created_at, updated_at
		FROM players
		WHERE id = $1`

	player, err := scanPlayer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	player.Teams, err = r.listTeamIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return player, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `
		SELECT id, name, age, position, batting_style, bowling_style,
			matches_played, runs, wickets, created_by, created_at, updated_at
		FROM players
		ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players, err := collectPlayers(rows)
	if err != nil {
		return nil, err
	}
	if err := r.populateTeams(ctx, players); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player, syncTeams bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE players SET
			name = $1,
			age = $2,
			position = $3,
			batting_style = $4,
			bowling_style = $5,
			matches_played = $6,
			runs = $7,
			wickets = $8,
			updated_at = now()
		WHERE id = $9
		RETURNING updated_at`

	err = tx.QueryRowContext(ctx, query,
		player.Name,
		player.Age,
		player.Position,
		player.BattingStyle,
		player.BowlingStyle,
		player.Stats.MatchesPlayed,
		player.Stats.Runs,
		player.Stats.Wickets,
		player.ID,
	).Scan(&player.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPlayerNotFound
		}
		return err
	}

	if syncTeams {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM team_players WHERE player_id = $1`, player.ID); err != nil {
			return err
		}
		if err := replacePlayerTeams(ctx, tx, player.ID, player.Teams); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id string) error {
	// Edges cascade, so the player disappears from every roster atomically.
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]models.Player, error) {
	query := `
		SELECT p.id, p.name, p.age, p.position, p.batting_style, p.bowling_style,
			p.matches_played, p.runs, p.wickets, p.created_by, p.created_at, p.updated_at
		FROM players p
		JOIN team_players tp ON tp.player_id = p.id
		WHERE tp.team_id = $1
		ORDER BY p.created_at`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players, err := collectPlayers(rows)
	if err != nil {
		return nil, err
	}
	if err := r.populateTeams(ctx, players); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) listTeamIDs(ctx context.Context, playerID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT team_id FROM team_players WHERE player_id = $1`, playerID)
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

func (r *postgresPlayerRepository) populateTeams(ctx context.Context, players []models.Player) error {
	if len(players) == 0 {
		return nil
	}

	rows, err := r.db.QueryContext(ctx, `SELECT team_id, player_id FROM team_players`)
	if err != nil {
		return err
	}
	defer rows.Close()

	byPlayer := make(map[string][]string)
	for rows.Next() {
		var teamID, playerID string
		if err := rows.Scan(&teamID, &playerID); err != nil {
			return err
		}
		byPlayer[playerID] = append(byPlayer[playerID], teamID)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range players {
		if ids, ok := byPlayer[players[i].ID]; ok {
			players[i].Teams = ids
		}
	}
	return nil
}

func replacePlayerTeams(ctx context.Context, exec SQLExecutor, playerID string, teamIDs []string) error {
	for _, teamID := range teamIDs {
		_, err := exec.ExecContext(ctx,
			`INSERT INTO team_players (team_id, player_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			teamID, playerID)
		if err != nil {
			return fmt.Errorf("failed to link player %s to team %s: %w", playerID, teamID, err)
		}
	}
	return nil
}

func scanPlayer(row *sql.Row) (*models.Player, error) {
	player := &models.Player{}
	err := row.Scan(
		&player.ID,
		&player.Name,
		&player.Age,
		&player.Position,
		&player.BattingStyle,
		&player.BowlingStyle,
		&player.Stats.MatchesPlayed,
		&player.Stats.Runs,
		&player.Stats.Wickets,
		&player.CreatedBy,
		&player.CreatedAt,
		&player.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func collectPlayers(rows *sql.Rows) ([]models.Player, error) {
	players := make([]models.Player, 0)
	for rows.Next() {
		var player models.Player
		if err := rows.Scan(
			&player.ID,
			&player.Name,
			&player.Age,
			&player.Position,
			&player.BattingStyle,
			&player.BowlingStyle,
			&player.Stats.MatchesPlayed,
			&player.Stats.Runs,
			&player.Stats.Wickets,
			&player.CreatedBy,
			&player.CreatedAt,
			&player.UpdatedAt,
		); err != nil {
			return nil, err
		}
		player.Teams = []string{}
		players = append(players, player)
	}
	return players, rows.Err()
}
