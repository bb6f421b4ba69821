package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nyeinlwin/clubsched/internal/config"
	"github.com/nyeinlwin/clubsched/internal/handler"
	"github.com/nyeinlwin/clubsched/pkg/core/services"
	"github.com/nyeinlwin/clubsched/pkg/store"
	"github.com/nyeinlwin/clubsched/pkg/store/fallback"
	"github.com/nyeinlwin/clubsched/pkg/store/local"
	"github.com/nyeinlwin/clubsched/pkg/store/postgres"
	"github.com/nyeinlwin/clubsched/pkg/utils/logging"
)

func main() {
	configPath := flag.String("config", "", "config file path (defaults to clubsched_config.yaml discovery)")
	flag.Parse()

	logger, err := logging.InitLogger("server")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(*configPath, logger); err != nil {
		logger.Error("Server failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(configPath string, logger *zap.Logger) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()

	localStore, err := local.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open local cache: %w", err)
	}

	// The remote store is optional; without it the server runs on the
	// local cache alone.
	var remote store.Store
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn("Remote store unavailable, running on local cache", zap.Error(err))
		} else {
			defer pg.Close()
			if err := pg.RunMigrations(ctx); err != nil {
				return fmt.Errorf("failed to run store migrations: %w", err)
			}
			remote = pg
		}
	}

	st := fallback.New(remote, localStore, logger)
	defer st.Close()

	if err := bootstrap(ctx, st, logger, cfg); err != nil {
		return err
	}

	r := gin.Default()
	allowOrigins := cfg.Server.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	rosterH := handler.NewRosterHandler(st, logger)
	batchH := handler.NewBatchHandler(st, logger, cfg)
	assignH := handler.NewAssignmentHandler(st, logger)
	linkH := handler.NewLinkHandler(st, logger)

	api := r.Group("/api")
	api.GET("/members", rosterH.List)
	api.POST("/members", rosterH.Add)
	api.POST("/members/:id/archive", rosterH.Archive)
	api.POST("/members/:id/restore", rosterH.Restore)
	api.DELETE("/members/:id", rosterH.Delete)

	api.GET("/batches", batchH.List)
	api.POST("/batches", batchH.Create)
	api.DELETE("/batches/:id", batchH.Delete)
	api.GET("/batches/:id/weeks/:idx", assignH.Week)
	api.POST("/batches/:id/weeks/:idx/assignments", assignH.Apply)
	api.PUT("/batches/:id/weeks/:idx/topic", batchH.SetTopic)
	api.PUT("/batches/:id/weeks/:idx/audience", batchH.SetAudience)
	api.POST("/batches/:id/weeks/:idx/reset", batchH.ResetWeek)
	api.GET("/batches/:id/weeks/:idx/report", batchH.Report)

	api.GET("/links", linkH.List)
	api.DELETE("/links", linkH.Delete)
	api.POST("/batches/:id/weeks/:idx/links", linkH.Add)
	api.PUT("/batches/:id/weeks/:idx/masterlinks", linkH.SetMaster)

	logger.Info("Server starting", zap.String("addr", cfg.Addr()))
	return r.Run(cfg.Addr())
}

// bootstrap brings stored data up to the current schema before any request
// is served: seed the roster if configured, make sure a batch exists, and
// run the idempotent batch migration pass.
func bootstrap(ctx context.Context, st store.Store, logger *zap.Logger, cfg *config.Config) error {
	if len(cfg.SeedMembers) > 0 {
		if _, err := services.SeedRoster(ctx, st, logger, cfg.SeedMembers); err != nil {
			return fmt.Errorf("failed to seed roster: %w", err)
		}
	}

	batches, err := store.LoadBatches(ctx, st)
	if err != nil {
		return err
	}
	if len(batches) == 0 {
		dates, err := services.SessionDates(cfg.SessionRRule, time.Now())
		if err != nil {
			return err
		}
		if _, err := services.CreateBatch(ctx, st, logger, "Batch 1", dates); err != nil {
			return fmt.Errorf("failed to create initial batch: %w", err)
		}
	}

	roster, err := store.LoadMembers(ctx, st)
	if err != nil {
		return err
	}
	if _, err := services.MigrateBatches(ctx, st, logger, roster); err != nil {
		return fmt.Errorf("failed to migrate batches: %w", err)
	}
	return nil
}
