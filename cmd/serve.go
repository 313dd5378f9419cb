package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tennolab/farmscout/internal/analyzer"
	"github.com/tennolab/farmscout/internal/corpus"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyzer over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.load(ctx, false); err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(env),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func newRouter(env *appEnv) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/v1/relics/{item}", func(w http.ResponseWriter, req *http.Request) {
		item := chi.URLParam(req, "item")
		statuses, err := env.analyzer.LocateRelics(item)
		if err != nil {
			writeError(w, err)
			return
		}
		if len(statuses) == 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no relic rewards this item"})
			return
		}
		active, vaulted := analyzer.SplitByVault(statuses)
		writeJSON(w, http.StatusOK, map[string]any{
			"item":     item,
			"statuses": statuses,
			"active":   active,
			"vaulted":  vaulted,
		})
	})

	r.Get("/v1/item/{item}/farms", func(w http.ResponseWriter, req *http.Request) {
		item := chi.URLParam(req, "item")
		exclude := req.URL.Query()["exclude"]
		report, err := env.analyzer.AnalyzeItem(item, exclude)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	})

	r.Get("/v1/mod/{mod}/farms", func(w http.ResponseWriter, req *http.Request) {
		mod := chi.URLParam(req, "mod")
		exclude := req.URL.Query()["exclude"]
		report, err := env.analyzer.AnalyzeMod(mod, exclude)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	})

	r.Post("/v1/reload", func(w http.ResponseWriter, req *http.Request) {
		snap, err := env.provider.Load(req.Context(), true)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":     "reloaded",
			"fetched_at": snap.FetchedAt,
			"etag":       snap.ETag,
			"text_len":   len(snap.Text),
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, corpus.ErrNotReady):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "drop tables not loaded"})
	case errors.Is(err, analyzer.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no matches found"})
	case errors.Is(err, analyzer.ErrAllFiltered):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "all matches excluded by filters"})
	default:
		zap.L().Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
