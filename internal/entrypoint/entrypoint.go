package entrypoint

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/database/authors"
	"github.com/mrlokans/locallibrary/internal/database/bookinstances"
	"github.com/mrlokans/locallibrary/internal/database/books"
	"github.com/mrlokans/locallibrary/internal/database/genres"
	http_controllers "github.com/mrlokans/locallibrary/internal/http"
	"github.com/mrlokans/locallibrary/internal/logger"
	"github.com/mrlokans/locallibrary/internal/scheduler"
	"github.com/mrlokans/locallibrary/internal/sessions"
	"github.com/mrlokans/locallibrary/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Dur("timeout", timeout).Msg("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// stop background work first so no task runs against a closing database
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info().Msg("server exiting")
	return nil
}

// Run wires the catalog database, sessions, background work and router, then
// serves until interrupted.
func Run(cfg *config.Config, version string) error {
	log.Info().Str("version", version).Msg("starting locallibrary")

	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewDatabaseWithLogLevel(cfg.Database.Path, logger.GormLevel(cfg.Database.LogLevel))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("error closing database")
		}
	}()

	instances := bookinstances.NewRepository(db.DB)
	stores := http_controllers.Stores{
		Genres:        genres.NewRepository(db.DB),
		Authors:       authors.NewRepository(db.DB),
		Books:         books.NewRepository(db.DB),
		BookInstances: instances,
	}

	var sessionManager *sessions.Manager
	if cfg.Session.Enabled {
		sqlDB, err := db.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get SQL DB for sessions: %w", err)
		}
		sessionManager, err = sessions.NewManager(sqlDB, cfg.Session)
		if err != nil {
			return fmt.Errorf("failed to initialize sessions: %w", err)
		}
	}

	csrfSecret := decodeSecret(cfg.CSRF.Secret)
	if csrfSecret == nil {
		log.Warn().Msg("CSRF protection disabled, set CSRF_SECRET to enable it")
	}

	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var taskAdder scheduler.TaskAdder
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.ConfigFrom(cfg.Tasks))
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Error().Err(err).Msg("error closing task client")
			}
		}()

		taskClient.Register(tasks.NewOverdueLoansQueue(instances))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
		taskAdder = taskClient
	}

	overdue := scheduler.NewOverdueScheduler(cfg.Overdue, taskAdder, instances)
	if err := overdue.Start(context.Background()); err != nil {
		return err
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Stores:        stores,
		Database:      db,
		TemplatesPath: cfg.UI.TemplatesPath,
		StaticPath:    cfg.UI.StaticPath,
		Version:       version,
		CSRFSecret:    csrfSecret,
		SecureCookies: cfg.CSRF.SecureCookies,
		Sessions:      sessionManager,
	})

	onShutdown := func(ctx context.Context) {
		overdue.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	return Serve(router, cfg, onShutdown)
}

// decodeSecret accepts a hex-encoded secret, falling back to the raw bytes.
func decodeSecret(secret string) []byte {
	if secret == "" {
		return nil
	}
	if b, err := hex.DecodeString(secret); err == nil {
		return b
	}
	return []byte(secret)
}
