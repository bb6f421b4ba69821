package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nyeinlwin/clubsched/cmd/cli/commands"
	"github.com/nyeinlwin/clubsched/internal/config"
	"github.com/nyeinlwin/clubsched/pkg/core/services"
	"github.com/nyeinlwin/clubsched/pkg/store"
	"github.com/nyeinlwin/clubsched/pkg/store/fallback"
	"github.com/nyeinlwin/clubsched/pkg/store/local"
	"github.com/nyeinlwin/clubsched/pkg/store/postgres"
	"github.com/nyeinlwin/clubsched/pkg/utils/logging"
)

var (
	configPath string
	app        *commands.AppContext
	cleanup    func()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Club scheduler CLI - Manage members, batches, and weekly roles",
		Long:  `A CLI tool for managing the club roster, session batches, and per-week role assignments.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cleanup != nil {
				cleanup()
			}
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (defaults to clubsched_config.yaml discovery)")

	app = &commands.AppContext{}

	rootCmd.AddCommand(commands.AddMemberCmd(app))
	rootCmd.AddCommand(commands.ListMembersCmd(app))
	rootCmd.AddCommand(commands.ArchiveMemberCmd(app))
	rootCmd.AddCommand(commands.RestoreMemberCmd(app))
	rootCmd.AddCommand(commands.DeleteMemberCmd(app))
	rootCmd.AddCommand(commands.CreateBatchCmd(app))
	rootCmd.AddCommand(commands.ListBatchesCmd(app))
	rootCmd.AddCommand(commands.DeleteBatchCmd(app))
	rootCmd.AddCommand(commands.ShowWeekCmd(app))
	rootCmd.AddCommand(commands.SetTopicCmd(app))
	rootCmd.AddCommand(commands.SetAudienceCmd(app))
	rootCmd.AddCommand(commands.ReportCmd(app))
	rootCmd.AddCommand(commands.AssignCmd(app))
	rootCmd.AddCommand(commands.TeamRemoveCmd(app))
	rootCmd.AddCommand(commands.LeaveCmd(app))
	rootCmd.AddCommand(commands.ResetWeekCmd(app))
	rootCmd.AddCommand(commands.LinksCmd(app))
	rootCmd.AddCommand(commands.DeleteLinkCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and the store stack
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger("cli")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Loading configuration")
	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	localStore, err := local.New(app.Cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open local cache: %w", err)
	}

	var remote store.Store
	if app.Cfg.DatabaseURL != "" {
		pg, err := postgres.New(app.Ctx, app.Cfg.DatabaseURL)
		if err != nil {
			app.Logger.Warn("Remote store unavailable, running on local cache", zap.Error(err))
		} else {
			if err := pg.RunMigrations(app.Ctx); err != nil {
				pg.Close()
				return fmt.Errorf("failed to run store migrations: %w", err)
			}
			remote = pg
			cleanup = pg.Close
		}
	}

	fb := fallback.New(remote, localStore, app.Logger)
	app.Store = fb
	prev := cleanup
	cleanup = func() {
		fb.Close()
		if prev != nil {
			prev()
		}
	}

	return bootstrap()
}

// bootstrap brings stored data up to the current schema before any command
// runs: seed the roster if configured, make sure a batch exists, and run
// the idempotent batch migration pass.
func bootstrap() error {
	if len(app.Cfg.SeedMembers) > 0 {
		if _, err := services.SeedRoster(app.Ctx, app.Store, app.Logger, app.Cfg.SeedMembers); err != nil {
			return fmt.Errorf("failed to seed roster: %w", err)
		}
	}

	batches, err := store.LoadBatches(app.Ctx, app.Store)
	if err != nil {
		return err
	}
	if len(batches) == 0 {
		dates, err := services.SessionDates(app.Cfg.SessionRRule, time.Now())
		if err != nil {
			return err
		}
		if _, err := services.CreateBatch(app.Ctx, app.Store, app.Logger, "Batch 1", dates); err != nil {
			return fmt.Errorf("failed to create initial batch: %w", err)
		}
	}

	roster, err := store.LoadMembers(app.Ctx, app.Store)
	if err != nil {
		return err
	}
	if _, err := services.MigrateBatches(app.Ctx, app.Store, app.Logger, roster); err != nil {
		return fmt.Errorf("failed to migrate batches: %w", err)
	}
	return nil
}
