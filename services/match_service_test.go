package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/cricket-league/models"
)

func TestCreateMatchRejectsSameTeams(t *testing.T) {
	env := newTestEnv(t)
	team := env.createTeam(t, "Mumbai Kings")

	_, err := env.matches.Create(context.Background(), env.manager, CreateMatchInput{
		Title:   "Derby",
		Team1ID: team.ID,
		Team2ID: team.ID,
		Venue:   "Wankhede Stadium",
		Date:    time.Now().Add(24 * time.Hour),
		Overs:   20,
	})
	if !errors.Is(err, ErrSameTeams) {
		t.Fatalf("expected ErrSameTeams, got %v", err)
	}
}

func TestCreateMatchValidatesOversAndTeams(t *testing.T) {
	env := newTestEnv(t)
	team1 := env.createTeam(t, "Mumbai Kings")
	team2 := env.createTeam(t, "Delhi Capitals")

	base := CreateMatchInput{
		Title:   "League fixture",
		Team1ID: team1.ID,
		Team2ID: team2.ID,
		Venue:   "Wankhede Stadium",
		Date:    time.Now().Add(24 * time.Hour),
		Overs:   20,
	}

	tooMany := base
	tooMany.Overs = 51
	if _, err := env.matches.Create(context.Background(), env.manager, tooMany); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("overs=51: expected ErrValidationFailed, got %v", err)
	}

	unknownTeam := base
	unknownTeam.Team2ID = "no-such-team"
	if _, err := env.matches.Create(context.Background(), env.manager, unknownTeam); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("unknown team: expected ErrValidationFailed, got %v", err)
	}
}

func TestCreateMatchDefaultsToScheduled(t *testing.T) {
	env := newTestEnv(t)
	team1 := env.createTeam(t, "Mumbai Kings")
	team2 := env.createTeam(t, "Delhi Capitals")

	match := env.createMatch(t, team1.ID, team2.ID)
	if match.Status != models.MatchStatusScheduled {
		t.Errorf("expected status %q, got %q", models.MatchStatusScheduled, match.Status)
	}
}

func TestUpdateMatchScoreMerge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	team1 := env.createTeam(t, "Mumbai Kings")
	team2 := env.createTeam(t, "Delhi Capitals")
	match := env.createMatch(t, team1.ID, team2.ID)

	runs, wickets, overs := 165, 4, 20.0
	updated, err := env.matches.Update(ctx, env.manager, match.ID, UpdateMatchInput{
		Team1Score: &ScoreInput{Runs: &runs, Wickets: &wickets, Overs: &overs},
	})
	if err != nil {
		t.Fatalf("set score: %v", err)
	}
	if updated.Team1Score == nil || updated.Team1Score.Runs != 165 || updated.Team1Score.Wickets != 4 {
		t.Fatalf("unexpected team1 score %+v", updated.Team1Score)
	}

	// An explicit zero must overwrite, a missing field must not.
	zeroWickets := 0
	updated, err = env.matches.Update(ctx, env.manager, match.ID, UpdateMatchInput{
		Team1Score: &ScoreInput{Wickets: &zeroWickets},
	})
	if err != nil {
		t.Fatalf("zero wickets: %v", err)
	}
	if updated.Team1Score.Wickets != 0 {
		t.Errorf("expected wickets 0, got %d", updated.Team1Score.Wickets)
	}
	if updated.Team1Score.Runs != 165 {
		t.Errorf("expected runs preserved at 165, got %d", updated.Team1Score.Runs)
	}
}

func TestUpdateMatchScoreWicketBounds(t *testing.T) {
	env := newTestEnv(t)

	team1 := env.createTeam(t, "Mumbai Kings")
	team2 := env.createTeam(t, "Delhi Capitals")
	match := env.createMatch(t, team1.ID, team2.ID)

	eleven := 11
	_, err := env.matches.Update(context.Background(), env.manager, match.ID, UpdateMatchInput{
		Team2Score: &ScoreInput{Wickets: &eleven},
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestUpdateMatchWinnerMustBePlaying(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	team1 := env.createTeam(t, "Mumbai Kings")
	team2 := env.createTeam(t, "Delhi Capitals")
	outsider := env.createTeam(t, "Chennai Stars")
	match := env.createMatch(t, team1.ID, team2.ID)

	winner := outsider.ID
	if _, err := env.matches.Update(ctx, env.manager, match.ID, UpdateMatchInput{WinnerID: &winner}); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}

	winner = team1.ID
	updated, err := env.matches.Update(ctx, env.manager, match.ID, UpdateMatchInput{WinnerID: &winner})
	if err != nil {
		t.Fatalf("set winner: %v", err)
	}
	if updated.WinnerID == nil || *updated.WinnerID != team1.ID {
		t.Fatalf("expected winner %s, got %v", team1.ID, updated.WinnerID)
	}
}

func TestTeamReassignmentRevalidatesWinner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	team1 := env.createTeam(t, "Mumbai Kings")
	team2 := env.createTeam(t, "Delhi Capitals")
	replacement := env.createTeam(t, "Chennai Stars")
	match := env.createMatch(t, team1.ID, team2.ID)

	winner := team1.ID
	if _, err := env.matches.Update(ctx, env.manager, match.ID, UpdateMatchInput{WinnerID: &winner}); err != nil {
		t.Fatalf("set winner: %v", err)
	}

	// Swapping out the winning team without touching the winner would
	// leave it pointing at a non-participant.
	if _, err := env.matches.Update(ctx, env.manager, match.ID, UpdateMatchInput{Team1ID: &replacement.ID}); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}

	got, err := env.matches.GetByID(ctx, match.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if got.Team1ID != team1.ID {
		t.Errorf("rejected update leaked: team1 changed to %s", got.Team1ID)
	}

	// Changing the teams and the winner together is fine.
	newWinner := replacement.ID
	updated, err := env.matches.Update(ctx, env.manager, match.ID, UpdateMatchInput{
		Team1ID:  &replacement.ID,
		WinnerID: &newWinner,
	})
	if err != nil {
		t.Fatalf("reassign with winner: %v", err)
	}
	if updated.WinnerID == nil || *updated.WinnerID != replacement.ID {
		t.Fatalf("expected winner %s, got %v", replacement.ID, updated.WinnerID)
	}
}

func TestUpdateScoreReportsResult(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	team1 := env.createTeam(t, "Mumbai Kings")
	team2 := env.createTeam(t, "Delhi Capitals")
	match := env.createMatch(t, team1.ID, team2.ID)

	runs1, runs2 := 180, 175
	winner := team1.ID
	status := models.MatchStatusCompleted
	updated, err := env.matches.UpdateScore(ctx, env.manager, match.ID, UpdateScoreInput{
		Team1Score: &ScoreInput{Runs: &runs1},
		Team2Score: &ScoreInput{Runs: &runs2},
		Winner:     &winner,
		Status:     &status,
	})
	if err != nil {
		t.Fatalf("update score: %v", err)
	}
	if updated.Status != models.MatchStatusCompleted {
		t.Errorf("expected status completed, got %q", updated.Status)
	}
	if updated.WinnerID == nil || *updated.WinnerID != team1.ID {
		t.Errorf("expected winner %s, got %v", team1.ID, updated.WinnerID)
	}
	if updated.Team1Score == nil || updated.Team1Score.Runs != 180 {
		t.Errorf("unexpected team1 score %+v", updated.Team1Score)
	}
}

func TestMatchOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	team1 := env.createTeam(t, "Mumbai Kings")
	team2 := env.createTeam(t, "Delhi Capitals")
	match := env.createMatch(t, team1.ID, team2.ID)

	if err := env.matches.Delete(ctx, env.player, match.ID); !errors.Is(err, ErrForbiddenOperation) {
		t.Fatalf("expected ErrForbiddenOperation, got %v", err)
	}
	if err := env.matches.Delete(ctx, env.admin, match.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := env.matches.GetByID(ctx, match.ID); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound after delete, got %v", err)
	}
}
