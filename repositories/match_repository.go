package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/cricket-league/models"
	"github.com/google/uuid"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id string) (*models.Match, error)
	List(ctx context.Context) ([]models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	Delete(ctx context.Context, id string) error
	// AssignTournament sets the match's owning tournament. The
	// Tournament.Matches view derives from this column, so one statement
	// updates both sides of the relationship.
	AssignTournament(ctx context.Context, matchID, tournamentID string) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `
	id, title, team1_id, team2_id, venue, date, overs, status, winner_id,
	team1_runs, team1_wickets, team1_overs,
	team2_runs, team2_wickets, team2_overs,
	tournament_id, created_by, created_at, updated_at`

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	match.ID = uuid.NewString()

	query := `
		INSERT INTO matches (id, title, team1_id, team2_id, venue, date, overs, status, winner_id,
			team1_runs, team1_wickets, team1_overs,
			team2_runs, team2_wickets, team2_overs,
			tournament_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at, updated_at`

	args := matchArgs(match)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&match.CreatedAt, &match.UpdatedAt)
	return err
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrMatchNotFound
	}
	return scanMatch(rows)
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches ORDER BY date`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *match)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches SET
			title = $2, team1_id = $3, team2_id = $4, venue = $5, date = $6,
			overs = $7, status = $8, winner_id = $9,
			team1_runs = $10, team1_wickets = $11, team1_overs = $12,
			team2_runs = $13, team2_wickets = $14, team2_overs = $15,
			tournament_id = $16,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	args := append([]interface{}{match.ID}, matchArgs(match)[1:16]...)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&match.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMatchNotFound
		}
		return err
	}
	return nil
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (r *postgresMatchRepository) AssignTournament(ctx context.Context, matchID, tournamentID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE matches SET tournament_id = $1, updated_at = now() WHERE id = $2`,
		tournamentID, matchID)
	if err != nil {
		return err
	}

	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func matchArgs(match *models.Match) []interface{} {
	var t1Runs, t1Wickets, t2Runs, t2Wickets *int
	var t1Overs, t2Overs *float64
	if s := match.Team1Score; s != nil {
		t1Runs, t1Wickets, t1Overs = &s.Runs, &s.Wickets, &s.Overs
	}
	if s := match.Team2Score; s != nil {
		t2Runs, t2Wickets, t2Overs = &s.Runs, &s.Wickets, &s.Overs
	}

	return []interface{}{
		match.ID,
		match.Title,
		match.Team1ID,
		match.Team2ID,
		match.Venue,
		match.Date,
		match.Overs,
		match.Status,
		match.WinnerID,
		t1Runs, t1Wickets, t1Overs,
		t2Runs, t2Wickets, t2Overs,
		match.TournamentID,
		match.CreatedBy,
	}
}

func scanMatch(rows *sql.Rows) (*models.Match, error) {
	match := &models.Match{}
	var t1Runs, t1Wickets, t2Runs, t2Wickets sql.NullInt64
	var t1Overs, t2Overs sql.NullFloat64

	err := rows.Scan(
		&match.ID,
		&match.Title,
		&match.Team1ID,
		&match.Team2ID,
		&match.Venue,
		&match.Date,
		&match.Overs,
		&match.Status,
		&match.WinnerID,
		&t1Runs, &t1Wickets, &t1Overs,
		&t2Runs, &t2Wickets, &t2Overs,
		&match.TournamentID,
		&match.CreatedBy,
		&match.CreatedAt,
		&match.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if t1Runs.Valid {
		match.Team1Score = &models.Score{
			Runs:    int(t1Runs.Int64),
			Wickets: int(t1Wickets.Int64),
			Overs:   t1Overs.Float64,
		}
	}
	if t2Runs.Valid {
		match.Team2Score = &models.Score{
			Runs:    int(t2Runs.Int64),
			Wickets: int(t2Wickets.Int64),
			Overs:   t2Overs.Float64,
		}
	}
	return match, nil
}
