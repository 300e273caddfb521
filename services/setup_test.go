package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/cricket-league/auth"
	"github.com/Dosada05/cricket-league/models"
	"github.com/Dosada05/cricket-league/repositories/memory"
)

// testEnv wires every service over a fresh in-memory store.
type testEnv struct {
	auth        AuthService
	users       UserService
	teams       TeamService
	players     PlayerService
	matches     MatchService
	tournaments TournamentService

	admin   *models.User
	manager *models.User
	player  *models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	teamRepo := memory.NewTeamRepository(store)
	playerRepo := memory.NewPlayerRepository(store)
	matchRepo := memory.NewMatchRepository(store)
	tournamentRepo := memory.NewTournamentRepository(store)

	hasher := auth.NewBcryptHasher()
	tokens := auth.NewJWTManager("test-secret", time.Hour)

	env := &testEnv{
		auth:        NewAuthService(userRepo, hasher, tokens),
		users:       NewUserService(userRepo),
		teams:       NewTeamService(teamRepo, playerRepo, nil),
		players:     NewPlayerService(playerRepo, teamRepo),
		matches:     NewMatchService(matchRepo, teamRepo, tournamentRepo),
		tournaments: NewTournamentService(tournamentRepo, teamRepo, matchRepo, nil),
	}

	env.admin = env.register(t, "Admin", "admin@example.com", models.RoleAdmin)
	env.manager = env.register(t, "Manager", "manager@example.com", models.RoleManager)
	env.player = env.register(t, "Player", "player@example.com", models.RolePlayer)
	return env
}

func (e *testEnv) register(t *testing.T, name, email string, role models.UserRole) *models.User {
	t.Helper()

	user, _, err := e.auth.Register(context.Background(), RegisterInput{
		Name:     name,
		Email:    email,
		Password: "secret-pass",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}

func (e *testEnv) createTeam(t *testing.T, name string) *models.Team {
	t.Helper()

	team, err := e.teams.Create(context.Background(), e.manager, CreateTeamInput{
		Name: name,
		City: "Mumbai",
	})
	if err != nil {
		t.Fatalf("create team %s: %v", name, err)
	}
	return team
}

func (e *testEnv) createPlayer(t *testing.T, name string) *models.Player {
	t.Helper()

	player, err := e.players.Create(context.Background(), e.manager, CreatePlayerInput{
		Name:         name,
		Age:          25,
		Position:     models.PositionBatsman,
		BattingStyle: models.BattingRight,
	})
	if err != nil {
		t.Fatalf("create player %s: %v", name, err)
	}
	return player
}

func (e *testEnv) createMatch(t *testing.T, team1, team2 string) *models.Match {
	t.Helper()

	match, err := e.matches.Create(context.Background(), e.manager, CreateMatchInput{
		Title:   "League fixture",
		Team1ID: team1,
		Team2ID: team2,
		Venue:   "Wankhede Stadium",
		Date:    time.Now().Add(24 * time.Hour),
		Overs:   20,
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	return match
}

func (e *testEnv) createTournament(t *testing.T, name string) *models.Tournament {
	t.Helper()

	start := time.Now().Add(48 * time.Hour)
	tournament, err := e.tournaments.Create(context.Background(), e.manager, CreateTournamentInput{
		Name:      name,
		StartDate: start,
		EndDate:   start.Add(14 * 24 * time.Hour),
		Format:    models.FormatT20,
	})
	if err != nil {
		t.Fatalf("create tournament %s: %v", name, err)
	}
	return tournament
}
