package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/cricket-league/auth"
	"github.com/Dosada05/cricket-league/config"
	"github.com/Dosada05/cricket-league/db"
	"github.com/Dosada05/cricket-league/handlers"
	"github.com/Dosada05/cricket-league/middleware"
	"github.com/Dosada05/cricket-league/repositories"
	"github.com/Dosada05/cricket-league/repositories/memory"
	"github.com/Dosada05/cricket-league/routes"
	"github.com/Dosada05/cricket-league/services"
	"github.com/Dosada05/cricket-league/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("store", cfg.StoreDriver))

	var (
		userRepo       repositories.UserRepository
		teamRepo       repositories.TeamRepository
		playerRepo     repositories.PlayerRepository
		matchRepo      repositories.MatchRepository
		tournamentRepo repositories.TournamentRepository
	)

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			logger.Error("failed to connect to database", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			}
		}()
		logger.Info("database connection established")

		userRepo = repositories.NewPostgresUserRepository(dbConn)
		teamRepo = repositories.NewPostgresTeamRepository(dbConn)
		playerRepo = repositories.NewPostgresPlayerRepository(dbConn)
		matchRepo = repositories.NewPostgresMatchRepository(dbConn)
		tournamentRepo = repositories.NewPostgresTournamentRepository(dbConn)

	case config.StoreDriverMemory:
		store := memory.NewStore()
		userRepo = memory.NewUserRepository(store)
		teamRepo = memory.NewTeamRepository(store)
		playerRepo = memory.NewPlayerRepository(store)
		matchRepo = memory.NewMatchRepository(store)
		tournamentRepo = memory.NewTournamentRepository(store)
		logger.Info("in-memory store initialized")
	}

	var uploader storage.FileUploader
	if cfg.R2 != nil {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2Config{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("logo storage not configured, uploads disabled")
	}

	hasher := auth.NewBcryptHasher()
	tokens := auth.NewJWTManager(cfg.JWTSecretKey, auth.TokenLifetime)

	authService := services.NewAuthService(userRepo, hasher, tokens)
	userService := services.NewUserService(userRepo)
	teamService := services.NewTeamService(teamRepo, playerRepo, uploader)
	playerService := services.NewPlayerService(playerRepo, teamRepo)
	matchService := services.NewMatchService(matchRepo, teamRepo, tournamentRepo)
	tournamentService := services.NewTournamentService(tournamentRepo, teamRepo, matchRepo, uploader)
	logger.Info("services initialized")

	router := routes.InitRoutes(routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService),
		User:         handlers.NewUserHandler(userService),
		Team:         handlers.NewTeamHandler(teamService, playerService),
		Player:       handlers.NewPlayerHandler(playerService),
		Match:        handlers.NewMatchHandler(matchService),
		Tournament:   handlers.NewTournamentHandler(tournamentService),
		Authenticate: middleware.Authenticate(tokens, userRepo),
		Authorize:    middleware.Authorize,
	})
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
