package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/cricket-league/models"
)

func TestCreateTournamentRejectsBadDateRange(t *testing.T) {
	env := newTestEnv(t)

	start := time.Now().Add(48 * time.Hour)
	_, err := env.tournaments.Create(context.Background(), env.manager, CreateTournamentInput{
		Name:      "Backwards Cup",
		StartDate: start,
		EndDate:   start.Add(-24 * time.Hour),
		Format:    models.FormatT20,
	})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}

	// Nothing may be persisted on a rejected create.
	tournaments, listErr := env.tournaments.List(context.Background())
	if listErr != nil {
		t.Fatalf("list: %v", listErr)
	}
	if len(tournaments) != 0 {
		t.Fatalf("expected no tournaments, got %d", len(tournaments))
	}
}

func TestUpdateTournamentRejectsInvertedDates(t *testing.T) {
	env := newTestEnv(t)
	tournament := env.createTournament(t, "Premier Cup")

	badEnd := tournament.StartDate.Add(-time.Hour)
	_, err := env.tournaments.Update(context.Background(), env.manager, tournament.ID, UpdateTournamentInput{
		EndDate: &badEnd,
	})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}

	detail, getErr := env.tournaments.GetByID(context.Background(), tournament.ID)
	if getErr != nil {
		t.Fatalf("get: %v", getErr)
	}
	if !detail.EndDate.Equal(tournament.EndDate) {
		t.Fatalf("end date changed after rejected update: %v", detail.EndDate)
	}
}

func TestTournamentDefaultsToUpcoming(t *testing.T) {
	env := newTestEnv(t)
	tournament := env.createTournament(t, "Premier Cup")

	if tournament.Status != models.TournamentStatusUpcoming {
		t.Errorf("expected status %q, got %q", models.TournamentStatusUpcoming, tournament.Status)
	}
}

func TestAddTeamToTournamentConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tournament := env.createTournament(t, "Premier Cup")
	team := env.createTeam(t, "Mumbai Kings")

	updated, err := env.tournaments.AddTeam(ctx, env.manager, tournament.ID, team.ID)
	if err != nil {
		t.Fatalf("add team: %v", err)
	}
	if len(updated.TeamIDs) != 1 || updated.TeamIDs[0] != team.ID {
		t.Fatalf("expected teams [%s], got %v", team.ID, updated.TeamIDs)
	}

	if _, err := env.tournaments.AddTeam(ctx, env.manager, tournament.ID, team.ID); !errors.Is(err, ErrTeamAlreadyInTournament) {
		t.Fatalf("expected ErrTeamAlreadyInTournament, got %v", err)
	}
}

func TestRemoveTeamFromTournamentIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tournament := env.createTournament(t, "Premier Cup")
	team := env.createTeam(t, "Mumbai Kings")

	if _, err := env.tournaments.AddTeam(ctx, env.manager, tournament.ID, team.ID); err != nil {
		t.Fatalf("add team: %v", err)
	}
	if _, err := env.tournaments.RemoveTeam(ctx, env.manager, tournament.ID, team.ID); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	updated, err := env.tournaments.RemoveTeam(ctx, env.manager, tournament.ID, team.ID)
	if err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if len(updated.TeamIDs) != 0 {
		t.Fatalf("expected no teams, got %v", updated.TeamIDs)
	}
}

func TestAddMatchMovesBetweenTournaments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	team1 := env.createTeam(t, "Mumbai Kings")
	team2 := env.createTeam(t, "Delhi Capitals")
	match := env.createMatch(t, team1.ID, team2.ID)

	first := env.createTournament(t, "Premier Cup")
	second := env.createTournament(t, "Champions Trophy")

	if _, err := env.tournaments.AddMatch(ctx, env.manager, first.ID, match.ID); err != nil {
		t.Fatalf("attach to first: %v", err)
	}
	// Attaching again to the same tournament conflicts.
	if _, err := env.tournaments.AddMatch(ctx, env.manager, first.ID, match.ID); !errors.Is(err, ErrMatchAlreadyInTournament) {
		t.Fatalf("expected ErrMatchAlreadyInTournament, got %v", err)
	}

	// Attaching to another tournament moves the match.
	moved, err := env.tournaments.AddMatch(ctx, env.manager, second.ID, match.ID)
	if err != nil {
		t.Fatalf("attach to second: %v", err)
	}
	if len(moved.MatchIDs) != 1 || moved.MatchIDs[0] != match.ID {
		t.Fatalf("expected second tournament to own the match, got %v", moved.MatchIDs)
	}

	firstDetail, err := env.tournaments.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("get first: %v", err)
	}
	if len(firstDetail.MatchIDs) != 0 {
		t.Fatalf("expected first tournament empty, got %v", firstDetail.MatchIDs)
	}
}

func TestDeleteTournamentCascadesToMatches(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	team1 := env.createTeam(t, "Mumbai Kings")
	team2 := env.createTeam(t, "Delhi Capitals")
	owned := env.createMatch(t, team1.ID, team2.ID)
	standalone := env.createMatch(t, team1.ID, team2.ID)

	tournament := env.createTournament(t, "Premier Cup")
	if _, err := env.tournaments.AddMatch(ctx, env.manager, tournament.ID, owned.ID); err != nil {
		t.Fatalf("attach match: %v", err)
	}

	if err := env.tournaments.Delete(ctx, env.manager, tournament.ID); err != nil {
		t.Fatalf("delete tournament: %v", err)
	}

	if _, err := env.matches.GetByID(ctx, owned.ID); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected owned match deleted, got %v", err)
	}
	if _, err := env.matches.GetByID(ctx, standalone.ID); err != nil {
		t.Fatalf("standalone match must survive: %v", err)
	}
}

func TestTournamentDetailHydration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	team1 := env.createTeam(t, "Mumbai Kings")
	team2 := env.createTeam(t, "Delhi Capitals")
	match := env.createMatch(t, team1.ID, team2.ID)
	tournament := env.createTournament(t, "Premier Cup")

	if _, err := env.tournaments.AddTeam(ctx, env.manager, tournament.ID, team1.ID); err != nil {
		t.Fatalf("add team: %v", err)
	}
	if _, err := env.tournaments.AddMatch(ctx, env.manager, tournament.ID, match.ID); err != nil {
		t.Fatalf("add match: %v", err)
	}

	detail, err := env.tournaments.GetByID(ctx, tournament.ID)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	if len(detail.Teams) != 1 || detail.Teams[0].ID != team1.ID {
		t.Fatalf("expected hydrated team %s, got %+v", team1.ID, detail.Teams)
	}
	if len(detail.Matches) != 1 || detail.Matches[0].ID != match.ID {
		t.Fatalf("expected hydrated match %s, got %+v", match.ID, detail.Matches)
	}
}

func TestTournamentWinnerMustParticipate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tournament := env.createTournament(t, "Premier Cup")
	team := env.createTeam(t, "Mumbai Kings")
	outsider := env.createTeam(t, "Chennai Stars")

	if _, err := env.tournaments.AddTeam(ctx, env.manager, tournament.ID, team.ID); err != nil {
		t.Fatalf("add team: %v", err)
	}

	winner := outsider.ID
	if _, err := env.tournaments.Update(ctx, env.manager, tournament.ID, UpdateTournamentInput{WinnerID: &winner}); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}

	winner = team.ID
	updated, err := env.tournaments.Update(ctx, env.manager, tournament.ID, UpdateTournamentInput{WinnerID: &winner})
	if err != nil {
		t.Fatalf("set winner: %v", err)
	}
	if updated.WinnerID == nil || *updated.WinnerID != team.ID {
		t.Fatalf("expected winner %s, got %v", team.ID, updated.WinnerID)
	}
}
