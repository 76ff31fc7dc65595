package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/lexicon/internal/app"
	"github.com/abhisek/lexicon/internal/config"
	"github.com/abhisek/lexicon/internal/learn"
	"github.com/abhisek/lexicon/internal/screen"
	"github.com/abhisek/lexicon/internal/store"
)

// loadConfig reads the config file and applies the persistent flag
// overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Data = config.DataConfig{Driver: store.DriverSQLite, Path: p}
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	return cfg, nil
}

// openStore opens the database named by cfg.
func openStore(cfg *config.Config) (*store.Store, error) {
	driver, dsn, err := cfg.Data.Source()
	if err != nil {
		return nil, fmt.Errorf("resolve data source: %w", err)
	}
	st, err := store.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// newLogger builds the command logger. The TUI owns the terminal, so
// while it runs the log goes to a file.
func newLogger(cfg *config.Config, tui bool) (*logrus.Logger, error) {
	lc := cfg.Log
	if tui && lc.File == "" {
		p, err := config.DefaultLogPath()
		if err != nil {
			return nil, err
		}
		lc.File = p
	}
	return config.NewLogger(lc)
}

// setup loads config, logger and store for a command.
func setup(cmd *cobra.Command, tui bool) (*config.Config, *logrus.Logger, *store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := newLogger(cfg, tui)
	if err != nil {
		return nil, nil, nil, err
	}
	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, st, nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
// Flags named "filter" and "quiz" on cmd override the configured session
// defaults.
func runApp(cmd *cobra.Command, startSession bool) error {
	cfg, log, st, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer st.Close()

	filterName, pref := cfg.Session.Filter, cfg.Session.Quiz
	if f := cmd.Flags().Lookup("filter"); f != nil && f.Changed {
		filterName = f.Value.String()
	}
	if f := cmd.Flags().Lookup("quiz"); f != nil && f.Changed {
		pref = f.Value.String()
	}

	filter, err := learn.ParseFilter(filterName)
	if err != nil {
		return err
	}
	quizPref, err := learn.ParsePreference(pref)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"filter": filter,
		"quiz":   quizPref,
		"driver": cfg.Data.Driver,
	}).Info("starting tui")

	return app.Run(app.Options{
		Env: screen.Env{
			Words:  st.WordRepo(),
			Events: st.EventRepo(),
			Logger: log,
			Filter: filter,
			Quiz:   quizPref,
		},
		StartSession: startSession,
	})
}
