// Package main implements the devdash CLI, the command-line surface
// over the dashboard's record store, task timers, and services.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/devdash/dev-dashboard/internal/config"
	"github.com/devdash/dev-dashboard/internal/flatstore"
	"github.com/devdash/dev-dashboard/internal/migrate"
	"github.com/devdash/dev-dashboard/internal/notify"
	"github.com/devdash/dev-dashboard/internal/service"
	"github.com/devdash/dev-dashboard/internal/store"
	"github.com/devdash/dev-dashboard/internal/timer"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var configPath string

var rootCmd = &cobra.Command{
	Use:           "devdash",
	Short:         "devdash - personal task, bookmark, and time tracking",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(),
		"path to the configuration file")

	rootCmd.AddCommand(todoCmd)
	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(profileCmd)
}

// app bundles everything a command needs after startup.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *store.SQLiteStore
	hub      *notify.Hub
	todos    *service.TodoService
	tags     *service.TagService
	projects *service.ProjectService
	profile  *service.ProfileService
	timer    *timer.Engine
}

// openApp loads configuration, opens both stores, runs the startup
// migration, and wires the services. A storage-open failure is fatal;
// a migration failure only degrades (the flag stays unset, so the
// next startup retries).
func openApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	flat, err := flatstore.Open(cfg.Storage.LegacyPath)
	if err != nil {
		log.Sync()
		return nil, err
	}

	s, err := store.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		log.Sync()
		if errors.Is(err, store.ErrOpen) {
			return nil, fmt.Errorf("cannot open local storage, all data operations unavailable: %w", err)
		}
		return nil, err
	}

	if err := migrate.New(flat, s, log).Run(context.Background()); err != nil {
		log.Warn("legacy migration failed, continuing in degraded mode", zap.Error(err))
	}

	hub := notify.NewHub()
	return &app{
		cfg:      cfg,
		log:      log,
		store:    s,
		hub:      hub,
		todos:    service.NewTodoService(s, hub),
		tags:     service.NewTagService(s, hub, log),
		projects: service.NewProjectService(s, hub),
		profile:  service.NewProfileService(s, hub, cfg.Profile.DefaultName, cfg.Profile.DefaultBirthdate),
		timer:    timer.NewEngine(s, hub),
	}, nil
}

func (a *app) close() {
	a.store.Close()
	a.log.Sync()
}

// formatElapsed renders an accumulated duration as HH:MM:SS. A todo
// that was never started renders zero-filled.
func formatElapsed(d time.Duration, started bool) string {
	if !started {
		return "00:00:00"
	}
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
