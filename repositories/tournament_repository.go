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
	ErrTournamentNotFound = errors.New("tournament not found")
	// ErrTournamentTeamConflict means the team is already registered.
	ErrTournamentTeamConflict = errors.New("team already in tournament")
)

type TournamentRepository interface {
	// Create persists the tournament and the tournament_teams edges for
	// every id in tournament.TeamIDs within one transaction.
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context) ([]models.Tournament, error)
	// Update rewrites the tournament row. With syncTeams set it also
	// replaces the tournament_teams edges to match tournament.TeamIDs.
	Update(ctx context.Context, tournament *models.Tournament, syncTeams bool) error
	// Delete removes the tournament and cascade-deletes every match that
	// belongs to it, in one transaction.
	Delete(ctx context.Context, id string) error

	AddTeam(ctx context.Context, tournamentID, teamID string) error
	RemoveTeam(ctx context.Context, tournamentID, teamID string) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	t.ID = uuid.NewString()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tournaments (id, name, description, start_date, end_date, format, status, winner_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err = tx.QueryRowContext(ctx, query,
		t.ID,
		t.Name,
		t.Description,
		t.StartDate,
		t.EndDate,
		t.Format,
		t.Status,
		t.WinnerID,
		t.CreatedBy,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return err
	}

	if err := replaceTournamentTeams(ctx, tx, t.ID, t.TeamIDs); err != nil {
		return err
	}

	if t.TeamIDs == nil {
		t.TeamIDs = []string{}
	}
	t.MatchIDs = []string{}
	return tx.Commit()
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `
		SELECT id, name, description, start_date, end_date, format, status, winner_id, created_by, created_at, updated_at
		FROM tournaments
		WHERE id = $1`

	t := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.StartDate,
		&t.EndDate,
		&t.Format,
		&t.Status,
		&t.WinnerID,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	if t.TeamIDs, err = r.listIDs(ctx,
		`SELECT team_id FROM tournament_teams WHERE tournament_id = $1`, id); err != nil {
		return nil, err
	}
	if t.MatchIDs, err = r.listIDs(ctx,
		`SELECT id FROM matches WHERE tournament_id = $1 ORDER BY date`, id); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	query := `
		SELECT id, name, description, start_date, end_date, format, status, winner_id, created_by, created_at, updated_at
		FROM tournaments
		ORDER BY start_date`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Description,
			&t.StartDate,
			&t.EndDate,
			&t.Format,
			&t.Status,
			&t.WinnerID,
			&t.CreatedBy,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		t.TeamIDs = []string{}
		t.MatchIDs = []string{}
		tournaments = append(tournaments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	teamEdges, err := r.collectEdges(ctx, `SELECT tournament_id, team_id FROM tournament_teams`)
	if err != nil {
		return nil, err
	}
	matchEdges, err := r.collectEdges(ctx,
		`SELECT tournament_id, id FROM matches WHERE tournament_id IS NOT NULL ORDER BY date`)
	if err != nil {
		return nil, err
	}

	for i := range tournaments {
		if ids, ok := teamEdges[tournaments[i].ID]; ok {
			tournaments[i].TeamIDs = ids
		}
		if ids, ok := matchEdges[tournaments[i].ID]; ok {
			tournaments[i].MatchIDs = ids
		}
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament, syncTeams bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE tournaments SET
			name = $1,
			description = $2,
			start_date = $3,
			end_date = $4,
			format = $5,
			status = $6,
			winner_id = $7,
			updated_at = now()
		WHERE id = $8
		RETURNING updated_at`

	err = tx.QueryRowContext(ctx, query,
		t.Name,
		t.Description,
		t.StartDate,
		t.EndDate,
		t.Format,
		t.Status,
		t.WinnerID,
		t.ID,
	).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTournamentNotFound
		}
		return err
	}

	if syncTeams {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM tournament_teams WHERE tournament_id = $1`, t.ID); err != nil {
			return err
		}
		if err := replaceTournamentTeams(ctx, tx, t.ID, t.TeamIDs); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Matches owned by the tournament are deleted, not orphaned.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM matches WHERE tournament_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTournamentNotFound
	}
	return tx.Commit()
}

func (r *postgresTournamentRepository) AddTeam(ctx context.Context, tournamentID, teamID string) error {
	query := `
		INSERT INTO tournament_teams (tournament_id, team_id)
		VALUES ($1, $2)
		ON CONFLICT (tournament_id, team_id) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, tournamentID, teamID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTournamentNotFound
		}
		return err
	}

	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTournamentTeamConflict
	}
	return nil
}

func (r *postgresTournamentRepository) RemoveTeam(ctx context.Context, tournamentID, teamID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM tournament_teams WHERE tournament_id = $1 AND team_id = $2`,
		tournamentID, teamID)
	return err
}

func (r *postgresTournamentRepository) listIDs(ctx context.Context, query string, arg string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
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

func (r *postgresTournamentRepository) collectEdges(ctx context.Context, query string) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	edges := make(map[string][]string)
	for rows.Next() {
		var left, right string
		if err := rows.Scan(&left, &right); err != nil {
			return nil, err
		}
		edges[left] = append(edges[left], right)
	}
	return edges, rows.Err()
}

func replaceTournamentTeams(ctx context.Context, exec SQLExecutor, tournamentID string, teamIDs []string) error {
	for _, teamID := range teamIDs {
		_, err := exec.ExecContext(ctx,
			`INSERT INTO tournament_teams (tournament_id, team_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			tournamentID, teamID)
		if err != nil {
			return err
		}
	}
	return nil
}
