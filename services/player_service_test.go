package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/cricket-league/models"
)

func TestCreatePlayerValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		input CreatePlayerInput
	}{
		{"too young", CreatePlayerInput{Name: "Kid", Age: 14, Position: models.PositionBatsman, BattingStyle: models.BattingRight}},
		{"too old", CreatePlayerInput{Name: "Veteran", Age: 51, Position: models.PositionBatsman, BattingStyle: models.BattingRight}},
		{"bad position", CreatePlayerInput{Name: "P", Age: 25, Position: "striker", BattingStyle: models.BattingRight}},
		{"bad batting style", CreatePlayerInput{Name: "P", Age: 25, Position: models.PositionBatsman, BattingStyle: "switch"}},
		{"unknown team", CreatePlayerInput{Name: "P", Age: 25, Position: models.PositionBatsman, BattingStyle: models.BattingRight, Teams: []string{"missing"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.players.Create(context.Background(), env.manager, tt.input)
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("expected ErrValidationFailed, got %v", err)
			}
		})
	}
}

func TestCreatePlayerWithInitialTeams(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	team := env.createTeam(t, "Mumbai Kings")

	player, err := env.players.Create(ctx, env.manager, CreatePlayerInput{
		Name:         "Rohit",
		Age:          28,
		Position:     models.PositionBatsman,
		BattingStyle: models.BattingRight,
		Teams:        []string{team.ID},
	})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	got, err := env.teams.GetByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if len(got.Players) != 1 || got.Players[0] != player.ID {
		t.Fatalf("expected roster [%s], got %v", player.ID, got.Players)
	}
}

func TestUpdatePlayerStatsZeroValuesApply(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	player := env.createPlayer(t, "Rohit")

	matches, runs, wickets := 10, 450, 3
	updated, err := env.players.Update(ctx, env.manager, player.ID, UpdatePlayerInput{
		Stats: &StatsInput{MatchesPlayed: &matches, Runs: &runs, Wickets: &wickets},
	})
	if err != nil {
		t.Fatalf("set stats: %v", err)
	}
	if updated.Stats.Wickets != 3 {
		t.Fatalf("expected wickets 3, got %d", updated.Stats.Wickets)
	}

	zero := 0
	updated, err = env.players.Update(ctx, env.manager, player.ID, UpdatePlayerInput{
		Stats: &StatsInput{Wickets: &zero},
	})
	if err != nil {
		t.Fatalf("zero wickets: %v", err)
	}
	if updated.Stats.Wickets != 0 {
		t.Errorf("expected wickets 0, got %d", updated.Stats.Wickets)
	}
	if updated.Stats.Runs != 450 {
		t.Errorf("expected runs preserved at 450, got %d", updated.Stats.Runs)
	}
}

func TestUpdatePlayerBowlingStyle(t *testing.T) {
	env := newTestEnv(t)

	player := env.createPlayer(t, "Bumrah")

	style := models.BowlingFast
	updated, err := env.players.Update(context.Background(), env.manager, player.ID, UpdatePlayerInput{
		BowlingStyle: &style,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.BowlingStyle == nil || *updated.BowlingStyle != models.BowlingFast {
		t.Fatalf("expected bowling style %q, got %v", models.BowlingFast, updated.BowlingStyle)
	}

	bad := models.BowlingStyle("underarm")
	if _, err := env.players.Update(context.Background(), env.manager, player.ID, UpdatePlayerInput{BowlingStyle: &bad}); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestListPlayersByUnknownTeamReturnsEmpty(t *testing.T) {
	env := newTestEnv(t)

	players, err := env.players.ListByTeam(context.Background(), "no-such-team")
	if err != nil {
		t.Fatalf("list by team: %v", err)
	}
	if len(players) != 0 {
		t.Fatalf("expected empty roster, got %d players", len(players))
	}
}

func TestDeletePlayerRemovesFromRosters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	team := env.createTeam(t, "Mumbai Kings")
	player := env.createPlayer(t, "Rohit")

	if _, err := env.teams.AddPlayer(ctx, env.manager, team.ID, player.ID); err != nil {
		t.Fatalf("add player: %v", err)
	}
	if err := env.players.Delete(ctx, env.manager, player.ID); err != nil {
		t.Fatalf("delete player: %v", err)
	}

	got, err := env.teams.GetByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if len(got.Players) != 0 {
		t.Fatalf("expected empty roster, got %v", got.Players)
	}
}
