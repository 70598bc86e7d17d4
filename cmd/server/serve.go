package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"culture-passport/internal/auth"
	"culture-passport/internal/config"
	"culture-passport/internal/database"
	"culture-passport/internal/handlers"
	"culture-passport/internal/metrics"
	"culture-passport/internal/models"
	"culture-passport/internal/server"
	"culture-passport/internal/storage"
	"culture-passport/internal/store"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, log)
	},
}

func serve(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	db, err := database.Open(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		return err
	}

	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.JWTExpiresIn)
	deps, credentials, err := buildDeps(db, cfg, tokens, log)
	if err != nil {
		return err
	}
	if err := database.SeedAdmin(ctx, credentials, cfg.AdminEmail, cfg.AdminPassword, log); err != nil {
		return err
	}

	if cfg.RedisURL != "" {
		revoker, err := auth.NewRedisRevoker(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer revoker.Close()
		if err := revoker.Ping(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		deps.Revoker = revoker
		log.Info("token revocation enabled")
	}

	if cfg.Storage.Enabled() {
		gw, err := storage.New(ctx, cfg.Storage, log)
		if err != nil {
			return err
		}
		deps.Storage = gw
		log.WithField("endpoint", cfg.Storage.URL()).Info("object storage enabled")
	} else {
		log.Warn("STORAGE_ENDPOINT is not set, storage routes will answer 503")
	}

	h := handlers.New(deps)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.NewRouter(cfg, h, tokens),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildDeps wires the postgres stores into the handler dependencies.
func buildDeps(db *gorm.DB, cfg *config.Config, tokens *auth.TokenService, log logrus.FieldLogger) (handlers.Deps, *store.CredentialStore, error) {
	credentials, err := store.NewCredentialStore(db, auth.BcryptHasher{Cost: cfg.BcryptCost}, tokens)
	if err != nil {
		return handlers.Deps{}, nil, err
	}
	profiles := store.NewProfileStore(db)
	missions := store.NewMissionStore(db)
	exams := store.NewExamStore(db)

	return handlers.Deps{
		Credentials:   credentials,
		Profiles:      profiles,
		Scoper:        store.NewScoper(profiles),
		Missions:      missions,
		UserMissions:  store.NewUserMissionStore(db, missions),
		Companies:     store.NewResource[models.Company](db, "companies", "name asc"),
		Departments:   store.NewResource[models.Department](db, "departments", "name asc"),
		Positions:     store.NewResource[models.Position](db, "positions", "name asc"),
		Categories:    store.NewResource[models.Category](db, "categories", "name asc"),
		ExamTemplates: exams.Templates,
		Exams:         exams,
		Announcements: store.NewAnnouncementStore(db),
		Roadmap:       store.NewRoadmapStore(db, profiles),
		Admin:         store.NewAdminStore(db),
		Audit:         store.NewAuditStore(db, log),
		Metrics:       metrics.NewMetrics(prometheus.NewRegistry()),
		Log:           log,
	}, credentials, nil
}
