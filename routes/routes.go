package routes

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Dosada05/cricket-league/handlers"
	"github.com/Dosada05/cricket-league/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Team       *handlers.TeamHandler
	Player     *handlers.PlayerHandler
	Match      *handlers.MatchHandler
	Tournament *handlers.TournamentHandler

	// Authenticate and Authorize come pre-wired with the token manager
	// and user repository.
	Authenticate func(http.Handler) http.Handler
	Authorize    func(roles ...models.UserRole) func(http.Handler) http.Handler
}

func InitRoutes(h Handlers) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeMessage(w, http.StatusOK, "OK")
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(h.Authenticate)
				r.Get("/profile", h.Auth.Profile)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(h.Authenticate)

			r.Get("/users", h.User.List)
			r.With(h.Authorize(models.RoleAdmin)).
				Get("/users/{userID}", h.User.GetByID)

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", h.Team.List)
				r.Get("/{teamID}", h.Team.GetByID)
				r.Get("/{teamID}/players", h.Team.ListPlayers)

				r.With(h.Authorize(models.RoleAdmin, models.RoleManager)).
					Post("/", h.Team.Create)

				r.Put("/{teamID}", h.Team.Update)
				r.Delete("/{teamID}", h.Team.Delete)
				r.Post("/{teamID}/logo", h.Team.UploadLogo)
				r.Post("/{teamID}/players/{playerID}", h.Team.AddPlayer)
				r.Delete("/{teamID}/players/{playerID}", h.Team.RemovePlayer)
			})

			r.Route("/players", func(r chi.Router) {
				r.Get("/", h.Player.List)
				r.Get("/team/{teamID}", h.Player.ListByTeam)
				r.Get("/{playerID}", h.Player.GetByID)

				r.With(h.Authorize(models.RoleAdmin, models.RoleManager)).
					Post("/", h.Player.Create)

				r.Put("/{playerID}", h.Player.Update)
				r.Delete("/{playerID}", h.Player.Delete)
			})

			r.Route("/matches", func(r chi.Router) {
				r.Get("/", h.Match.List)
				r.Get("/{matchID}", h.Match.GetByID)

				r.With(h.Authorize(models.RoleAdmin, models.RoleManager)).
					Post("/", h.Match.Create)

				r.Put("/{matchID}", h.Match.Update)
				r.Patch("/{matchID}/score", h.Match.UpdateScore)
				r.Delete("/{matchID}", h.Match.Delete)
			})

			r.Route("/tournaments", func(r chi.Router) {
				r.Get("/", h.Tournament.List)
				r.Get("/{tournamentID}", h.Tournament.GetByID)

				r.With(h.Authorize(models.RoleAdmin, models.RoleManager)).
					Post("/", h.Tournament.Create)

				r.Put("/{tournamentID}", h.Tournament.Update)
				r.Delete("/{tournamentID}", h.Tournament.Delete)
				r.Post("/{tournamentID}/teams/{teamID}", h.Tournament.AddTeam)
				r.Delete("/{tournamentID}/teams/{teamID}", h.Tournament.RemoveTeam)
				r.Post("/{tournamentID}/matches/{matchID}", h.Tournament.AddMatch)
			})
		})
	})

	return router
}

// recoverer answers panics with the same JSON envelope the handlers use.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil && rec != http.ErrAbortHandler {
				slog.Error("panic recovered", "panic", rec, "path", r.URL.Path)
				writeMessage(w, http.StatusInternalServerError, "Something went wrong!")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
