package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/susumOyaji/quotelens/internal/selector"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP extraction API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		svc, err := initService()
		if err != nil {
			return err
		}

		writeJSON := func(w http.ResponseWriter, status int, v any) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(v)
		}

		// Set up routes
		mux := http.NewServeMux()

		mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		mux.HandleFunc("GET /quote", func(w http.ResponseWriter, r *http.Request) {
			codes := splitCodes(r.URL.Query().Get("code"))
			if len(codes) == 0 {
				http.Error(w, `{"error":"code is required"}`, http.StatusBadRequest)
				return
			}
			fields, err := parseFields(splitCodes(r.URL.Query().Get("fields")))
			if err != nil {
				http.Error(w, `{"error":"unknown field"}`, http.StatusBadRequest)
				return
			}
			writeJSON(w, http.StatusOK, svc.ExtractAll(r.Context(), codes, fields))
		})

		mux.HandleFunc("GET /discover-data", func(w http.ResponseWriter, r *http.Request) {
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, `{"error":"code is required"}`, http.StatusBadRequest)
				return
			}
			found, err := svc.DiscoverCandidates(r.Context(), code)
			if err != nil {
				zap.L().Error("discover failed", zap.String("code", code), zap.Error(err))
				http.Error(w, `{"error":"discovery failed"}`, http.StatusBadGateway)
				return
			}
			writeJSON(w, http.StatusOK, found)
		})

		mux.HandleFunc("GET /generate-selectors", func(w http.ResponseWriter, r *http.Request) {
			url := r.URL.Query().Get("url")
			text := r.URL.Query().Get("text")
			if url == "" || text == "" {
				http.Error(w, `{"error":"url and text are required"}`, http.StatusBadRequest)
				return
			}
			body, err := fetchPage(r.Context(), url)
			if err != nil {
				zap.L().Error("fetch failed", zap.String("url", url), zap.Error(err))
				http.Error(w, `{"error":"fetch failed"}`, http.StatusBadGateway)
				return
			}
			descs, err := selector.Synthesize(body, text)
			if err != nil {
				http.Error(w, `{"error":"synthesis failed"}`, http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, descs)
		})

		mux.HandleFunc("GET /verify-selector", func(w http.ResponseWriter, r *http.Request) {
			url := r.URL.Query().Get("url")
			query := r.URL.Query().Get("selector")
			if url == "" || query == "" {
				http.Error(w, `{"error":"url and selector are required"}`, http.StatusBadRequest)
				return
			}
			body, err := fetchPage(r.Context(), url)
			if err != nil {
				zap.L().Error("fetch failed", zap.String("url", url), zap.Error(err))
				http.Error(w, `{"error":"fetch failed"}`, http.StatusBadGateway)
				return
			}
			desc, err := selector.Verify(body, query)
			if err != nil {
				http.Error(w, `{"error":"verification failed"}`, http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, desc)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
