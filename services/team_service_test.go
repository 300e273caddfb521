package services

import (
	"context"
	"errors"
	"testing"
)

func TestAddPlayerKeepsBothSidesInSync(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	team := env.createTeam(t, "Mumbai Kings")
	player := env.createPlayer(t, "Rohit")

	updated, err := env.teams.AddPlayer(ctx, env.manager, team.ID, player.ID)
	if err != nil {
		t.Fatalf("add player: %v", err)
	}
	if len(updated.Players) != 1 || updated.Players[0] != player.ID {
		t.Fatalf("expected roster [%s], got %v", player.ID, updated.Players)
	}

	got, err := env.players.GetByID(ctx, player.ID)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if len(got.Teams) != 1 || got.Teams[0] != team.ID {
		t.Fatalf("expected player teams [%s], got %v", team.ID, got.Teams)
	}
}

func TestAddPlayerTwiceConflictsWithoutChangingState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	team := env.createTeam(t, "Mumbai Kings")
	player := env.createPlayer(t, "Rohit")

	if _, err := env.teams.AddPlayer(ctx, env.manager, team.ID, player.ID); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := env.teams.AddPlayer(ctx, env.manager, team.ID, player.ID); !errors.Is(err, ErrPlayerAlreadyInTeam) {
		t.Fatalf("expected ErrPlayerAlreadyInTeam, got %v", err)
	}

	got, err := env.teams.GetByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if len(got.Players) != 1 {
		t.Fatalf("expected roster of 1 after duplicate add, got %v", got.Players)
	}
}

func TestRemovePlayerIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	team := env.createTeam(t, "Mumbai Kings")
	player := env.createPlayer(t, "Rohit")

	if _, err := env.teams.AddPlayer(ctx, env.manager, team.ID, player.ID); err != nil {
		t.Fatalf("add player: %v", err)
	}
	if _, err := env.teams.RemovePlayer(ctx, env.manager, team.ID, player.ID); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	// Second remove of the same absent edge still succeeds.
	got, err := env.teams.RemovePlayer(ctx, env.manager, team.ID, player.ID)
	if err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if len(got.Players) != 0 {
		t.Fatalf("expected empty roster, got %v", got.Players)
	}
}

func TestDeleteTeamStripsPlayerMemberships(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	team := env.createTeam(t, "Mumbai Kings")
	player := env.createPlayer(t, "Rohit")

	if _, err := env.teams.AddPlayer(ctx, env.manager, team.ID, player.ID); err != nil {
		t.Fatalf("add player: %v", err)
	}
	if err := env.teams.Delete(ctx, env.manager, team.ID); err != nil {
		t.Fatalf("delete team: %v", err)
	}

	got, err := env.players.GetByID(ctx, player.ID)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if len(got.Teams) != 0 {
		t.Fatalf("expected no team memberships, got %v", got.Teams)
	}
}

func TestTeamOwnershipChecks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	team := env.createTeam(t, "Mumbai Kings")
	newName := "Renamed"

	// A different non-admin user cannot touch someone else's team.
	if _, err := env.teams.Update(ctx, env.player, team.ID, UpdateTeamInput{Name: &newName}); !errors.Is(err, ErrForbiddenOperation) {
		t.Fatalf("expected ErrForbiddenOperation, got %v", err)
	}
	if err := env.teams.Delete(ctx, env.player, team.ID); !errors.Is(err, ErrForbiddenOperation) {
		t.Fatalf("expected ErrForbiddenOperation, got %v", err)
	}

	// Admins can.
	updated, err := env.teams.Update(ctx, env.admin, team.ID, UpdateTeamInput{Name: &newName})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Name != newName {
		t.Errorf("expected name %q, got %q", newName, updated.Name)
	}
}

func TestTeamUpdateMissingTeamIs404BeforeOwnership(t *testing.T) {
	env := newTestEnv(t)

	name := "x"
	_, err := env.teams.Update(context.Background(), env.player, "missing-id", UpdateTeamInput{Name: &name})
	if !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestCreateTeamRejectsUnknownPlayers(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.teams.Create(context.Background(), env.manager, CreateTeamInput{
		Name:    "Ghost XI",
		City:    "Pune",
		Players: []string{"no-such-player"},
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestRejectedTeamUpdatePersistsNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	team := env.createTeam(t, "Mumbai Kings")

	// A bad roster must reject the whole update, including the field
	// changes that ride along with it.
	city := "Pune"
	roster := []string{"no-such-player"}
	_, err := env.teams.Update(ctx, env.manager, team.ID, UpdateTeamInput{
		City:    &city,
		Players: &roster,
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}

	got, err := env.teams.GetByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if got.City != "Mumbai" {
		t.Errorf("rejected update leaked: city changed to %q", got.City)
	}
	if len(got.Players) != 0 {
		t.Errorf("rejected update leaked: roster changed to %v", got.Players)
	}
}

func TestUpdateTeamReplacesRoster(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	team := env.createTeam(t, "Mumbai Kings")
	first := env.createPlayer(t, "Rohit")
	second := env.createPlayer(t, "Virat")

	if _, err := env.teams.AddPlayer(ctx, env.manager, team.ID, first.ID); err != nil {
		t.Fatalf("add player: %v", err)
	}

	roster := []string{second.ID}
	updated, err := env.teams.Update(ctx, env.manager, team.ID, UpdateTeamInput{Players: &roster})
	if err != nil {
		t.Fatalf("update team: %v", err)
	}
	if len(updated.Players) != 1 || updated.Players[0] != second.ID {
		t.Fatalf("expected roster [%s], got %v", second.ID, updated.Players)
	}

	dropped, err := env.players.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if len(dropped.Teams) != 0 {
		t.Fatalf("expected dropped player to leave the team, got %v", dropped.Teams)
	}
}
