package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/JAlbertCode/event-tracker/internal/apollo"
	"github.com/JAlbertCode/event-tracker/internal/config"
	"github.com/JAlbertCode/event-tracker/internal/enrich"
	"github.com/JAlbertCode/event-tracker/internal/extract"
	"github.com/JAlbertCode/event-tracker/internal/fetch"
	"github.com/JAlbertCode/event-tracker/internal/store"
	"github.com/JAlbertCode/event-tracker/internal/tracker"
)

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file supplying defaults")
}

// app bundles the constructed collaborators for a command invocation.
// Everything is built once at startup and passed by explicit handle;
// there are no package-level tracker or client instances.
type app struct {
	tracker *tracker.Tracker
	log     zerolog.Logger
	close   func()
}

// buildApp loads configuration, opens the snapshot backend, loads the
// persisted state and wires the tracker together.
func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		fileCfg, err := config.LoadFile(configPath)
		if err != nil {
			return nil, err
		}
		merged := cfg.MergeWithDefaults(*fileCfg)
		cfg = &merged
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var backend store.Backend
	closeBackend := func() {}
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgresBackend(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		backend = pg
		closeBackend = pg.Close
	} else {
		backend = store.NewFileBackend(cfg.DataPath)
	}

	st := store.New(backend, log)
	if err := st.Load(ctx); err != nil {
		closeBackend()
		return nil, fmt.Errorf("failed to load tracker state: %w", err)
	}

	client := apollo.NewClient(cfg.ApolloAPIKey, cfg.ApolloBaseURL)
	extractor := extract.NewExtractor(&fetch.Options{
		Timeout:   cfg.FetchTimeout,
		UserAgent: fetch.DefaultUserAgent,
	}, cfg.UseBrowser, log)
	orchestrator := enrich.New(st, client, client, cfg.SearchDelay, cfg.SeniorityLevels, log)

	return &app{
		tracker: tracker.New(st, extractor, orchestrator, log),
		log:     log,
		close:   closeBackend,
	}, nil
}
