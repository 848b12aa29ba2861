package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"process-maps-backend/internal/api"
	"process-maps-backend/internal/api/routes"
	v1 "process-maps-backend/internal/api/routes/v1"
	"process-maps-backend/internal/auth"
	"process-maps-backend/internal/config"
	"process-maps-backend/internal/generator"
	"process-maps-backend/internal/libraries"
	llmHandlers "process-maps-backend/internal/llm_handlers"
	"process-maps-backend/internal/middleware"
	"process-maps-backend/internal/repo"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	config.ConfigureLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := config.OpenDB(cfg.Database)
	if err != nil {
		return err
	}
	defer config.CloseDB(db)

	// Run migrations
	if cfg.Database.AutoMigrate {
		if err := config.Migrate(db); err != nil {
			return err
		}
	}

	sessions, err := auth.NewSessions(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	if err != nil {
		return err
	}

	content := repo.NewBoardContentRepository(db)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		content = repo.NewContentCache(content, rdb, cfg.CacheTTL)
		log.WithField("ttl", cfg.CacheTTL).Info("board content cache enabled")
	}

	// a missing provider only disables generation; boards keep working
	llmClient, err := llmHandlers.New(ctx, cfg.LLM)
	if err != nil {
		log.WithError(err).WithField("provider", cfg.LLM.Provider).Warn("diagram generation unavailable")
		llmClient = nil
	}

	hub := libraries.NewHub()
	go hub.Run(ctx)

	// Create and configure Fiber app
	app := api.NewServer(cfg.CORSOrigins)

	// Register routes
	routes.Register(app, &v1.Deps{
		DB:          db,
		Users:       repo.NewUserRepository(db),
		Boards:      repo.NewBoardRepository(db),
		Content:     content,
		Sessions:    sessions,
		GitHub:      auth.NewGitHub(cfg.Auth.GitHubClientID, cfg.Auth.GitHubClientSecret, cfg.Auth.OAuthRedirectURL),
		Generator:   generator.New(llmClient),
		Hub:         hub,
		AILimiter:   middleware.NewRateLimiter(cfg.LLM.RatePerMinute),
		FrontendURL: cfg.Auth.FrontendURL,
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("shutdown failed")
		}
	}()

	// Start server
	return api.StartServer(app, cfg.Port)
}
