package main

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tennolab/farmscout/internal/analyzer"
	"github.com/tennolab/farmscout/internal/config"
	"github.com/tennolab/farmscout/internal/corpus"
	"github.com/tennolab/farmscout/internal/fetcher"
	"github.com/tennolab/farmscout/internal/model"
	"github.com/tennolab/farmscout/internal/store"
)

// appEnv bundles the wired subsystems a command needs.
type appEnv struct {
	store    store.Store
	provider *corpus.Provider
	analyzer *analyzer.Analyzer
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.Path
		if dsn == "" {
			dsn = "farmscout.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func initEnv(ctx context.Context) (*appEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "migrate store")
	}

	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:    cfg.DropTables.UserAgent,
		Timeout:      cfg.DropTables.Timeout(),
		MaxRetries:   cfg.DropTables.MaxRetries,
		RateLimiters: fetcher.DefaultRateLimiters(),
	})

	holder := corpus.NewHolder()
	provider := corpus.NewProvider(cfg.DropTables.URL, cfg.DropTables.CacheTTL(), f, st, holder)

	return &appEnv{
		store:    st,
		provider: provider,
		analyzer: analyzer.New(holder),
	}, nil
}

func (e *appEnv) load(ctx context.Context, force bool) error {
	_, err := e.provider.Load(ctx, force)
	return err
}

func (e *appEnv) Close() {
	if err := e.store.Close(); err != nil {
		zap.L().Warn("store close failed", zap.Error(err))
	}
}

// logQuery records the query in the history log. Failures only warn; the
// answer already exists.
func (e *appEnv) logQuery(ctx context.Context, kind model.QueryKind, term string, hits int) {
	if _, err := e.store.RecordQuery(ctx, kind, term, hits); err != nil {
		zap.L().Warn("query log write failed", zap.Error(err))
	}
}

// resolveExcludes merges exclusion terms from config, flags, and an optional
// named preset.
func resolveExcludes(extra []string, preset string) ([]string, error) {
	terms := append([]string{}, cfg.Filters.Exclude...)
	terms = append(terms, extra...)

	if preset != "" {
		presets, err := config.LoadPresets(cfg.Filters.PresetsFile)
		if err != nil {
			return nil, err
		}
		fromPreset, err := presets.Resolve(preset)
		if err != nil {
			return nil, err
		}
		terms = append(terms, fromPreset...)
	}

	return terms, nil
}

var titleCaser = cases.Title(language.English)

// normalizeName title-cases user input so it matches the document, which is
// searched case-sensitively ("gauss prime chassis blueprint" would never hit).
func normalizeName(args []string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(strings.Join(args, " "))))
}
