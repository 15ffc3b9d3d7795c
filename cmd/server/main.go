package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitjourney/chronicle/internal/api"
	"github.com/fitjourney/chronicle/internal/catalog"
	"github.com/fitjourney/chronicle/internal/config"
	"github.com/fitjourney/chronicle/internal/logging"
	"github.com/fitjourney/chronicle/internal/notify"
	"github.com/fitjourney/chronicle/internal/service"
	"github.com/fitjourney/chronicle/internal/session"
	"github.com/fitjourney/chronicle/internal/storage"

	"github.com/alecthomas/kong"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var version = "dev"

type CLI struct {
	ConfigDir string           `help:"Directory containing config.yaml." default:"." type:"path" env:"CONFIG_DIR"`
	LogLevel  string           `help:"Override log.level from the config (trace, debug, info, warn, error)."`
	Version   kong.VersionFlag `help:"Show version information."`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("chronicle"),
		kong.Description("Workout session tracker API."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)

	if err := run(cli); err != nil {
		log.Fatalf("chronicle: %s", err)
	}
}

func run(cli CLI) error {
	cfg, err := config.LoadConfig(cli.ConfigDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	logFile := logging.Setup(logging.SetupParams{
		Level:      cfg.Log.Level,
		FormatJSON: cfg.Log.JSON,
		FileName:   cfg.Log.File,
	})
	defer logFile.Close()
	log.WithField("version", version).Info("starting chronicle")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	repos, err := openRepositories(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer repos.Close()

	if err := prepareStore(ctx, repos); err != nil {
		return err
	}

	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		if fileStorage, err = storage.NewS3Storage(ctx, cfg.S3); err != nil {
			return fmt.Errorf("init s3 storage: %w", err)
		}
	} else {
		log.Info("s3 bucket not configured, log export disabled")
	}

	// --- Sessions and services ---
	manager := session.NewManager(repos.workouts, repos.logs,
		session.WithRestResolution(cfg.Session.RestTick),
		session.WithNotifier(notify.NewLogger(log.WithField("component", "notify"))),
	)
	defer manager.Shutdown()

	if cfg.Log.Level != "debug" && cfg.Log.Level != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger())
	api.SetupRoutes(router, manager,
		service.NewWorkoutService(repos.workouts),
		service.NewHistoryService(repos.logs, repos.goals, nil),
		service.NewGoalService(repos.goals, nil),
		service.NewExportService(repos.logs, fileStorage, cfg.S3.URLExpiry, nil),
	)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		log.Warn("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}

// prepareStore creates indexes and seeds the default catalogue concurrently.
func prepareStore(ctx context.Context, repos *repositories) error {
	workouts, err := catalog.Defaults()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if repos.ensureIndexes != nil {
		g.Go(func() error {
			// queries still work without indexes
			if err := repos.ensureIndexes(gctx); err != nil {
				log.WithError(err).Warn("continuing without indexes")
			}
			return nil
		})
	}
	g.Go(func() error {
		_, err := catalog.Seed(gctx, repos.workouts, workouts)
		return err
	})
	return g.Wait()
}
