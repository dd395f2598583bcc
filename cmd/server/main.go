// @title          CodeBlaze Portal API
// @version        1.0
// @description    Job board and account backend of the CodeBlaze careers and internship portal.
// @BasePath       /
// @securityDefinitions.apikey BearerAuth
// @in             header
// @name           Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/codeblaze/portal/internal/api"
	"github.com/codeblaze/portal/internal/api/handler"
	"github.com/codeblaze/portal/internal/core/ports"
	"github.com/codeblaze/portal/internal/core/service"
	"github.com/codeblaze/portal/internal/infrastructure/config"
	"github.com/codeblaze/portal/internal/infrastructure/db/memory"
	mongodb "github.com/codeblaze/portal/internal/infrastructure/db/mongo"
	redisdb "github.com/codeblaze/portal/internal/infrastructure/db/redis"
	"github.com/codeblaze/portal/internal/infrastructure/mailer"
	"github.com/codeblaze/portal/internal/infrastructure/queue"
	"github.com/codeblaze/portal/pkg/logger"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{Pretty: true})
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "portal-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	var (
		jobs    ports.JobRepository   = memory.NewJobRepository()
		users   ports.UserRepository  = memory.NewUserRepository()
		codes   ports.CodeStore       = memory.NewCodeStore()
		audit   ports.AuditRepository = nil
		pingers []handler.Pinger
	)

	if cfg.NeedsMongo() {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "codeblaze-portal",
		})
		if err != nil {
			return err
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()
		pingers = append(pingers, mongodb.Pinger{DB: db})
		audit = mongodb.NewAuditRepository(db)

		if cfg.Store.Jobs == "mongo" {
			repo := mongodb.NewJobRepository(db)
			if err := repo.EnsureIndexes(ctx); err != nil {
				return err
			}
			jobs = repo
		}
		if cfg.Store.Users == "mongo" {
			repo := mongodb.NewUserRepository(db)
			if err := repo.EnsureIndexes(ctx); err != nil {
				return err
			}
			users = repo
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
	}

	if cfg.NeedsRedis() {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		pingers = append(pingers, redisdb.Pinger{Client: rdb})
		codes = redisdb.NewCodeStore(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	}

	sender, err := mailer.New(mailer.Config{
		Provider:       cfg.Mail.Provider,
		From:           cfg.Mail.From,
		FromName:       cfg.Mail.FromName,
		SendGridAPIKey: cfg.Mail.SendGridAPIKey,
	}, log)
	if err != nil {
		return err
	}
	dispatcher := queue.NewDispatcher(cfg.Mail.Workers, sender, log)
	dispatcher.Start(ctx)

	router := api.NewRouter(api.Dependencies{
		Jobs: service.NewJobService(jobs, log),
		Auth: service.NewAuthService(users, codes, dispatcher, audit, service.AuthConfig{
			JWTSecret:   cfg.JWTSecret,
			TokenTTL:    cfg.TokenTTL,
			FrontendURL: cfg.FrontendURL,
		}, log),
		JWTSecret:        cfg.JWTSecret,
		AdminAuthEnabled: cfg.AdminAuthEnabled,
		Pingers:          pingers,
		Logger:           log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("job_store", cfg.Store.Jobs).
			Str("user_store", cfg.Store.Users).
			Str("code_store", cfg.Store.Codes).
			Bool("admin_auth", cfg.AdminAuthEnabled).
			Msg("portal api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
