package reportserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"quizmaker/internal/export"
	"quizmaker/internal/history"
	"quizmaker/internal/logger"
)

// HistorySource reads the recorded sessions.
type HistorySource = history.Reader

const (
	recentSessions = 50
	mostMissed     = 10
)

// NewHandler builds the HTTP handler for exported quizzes and history.
// A nil source disables the history routes.
func NewHandler(cfg Config, source HistorySource) (http.Handler, error) {
	if cfg.ExportDir == "" {
		return nil, errors.New("reportserver: export dir is required")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer, requestLogger)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/", serveIndex(cfg.ExportDir, source != nil))
	r.Get("/quizzes/{name}", serveQuiz(cfg.ExportDir))
	if source != nil {
		r.Get("/history", serveHistoryPage(source))
		r.Get("/api/history", serveHistoryJSON(source))
	}
	return r, nil
}

// serveIndex lists the exported quiz pages, newest first.
func serveIndex(exportDir string, withHistory bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := listQuizzes(exportDir)
		if err != nil {
			http.Error(w, "list quizzes failed", http.StatusInternalServerError)
			return
		}
		page := templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
			var b strings.Builder
			b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Quizzes</title></head><body><h1>Quizzes</h1>`)
			if withHistory {
				b.WriteString(`<p><a href="/history">Results history</a></p>`)
			}
			if len(names) == 0 {
				b.WriteString(`<p>No exported quizzes yet.</p>`)
			} else {
				b.WriteString(`<ul>`)
				for _, name := range names {
					escaped := templ.EscapeString(name)
					fmt.Fprintf(&b, `<li><a href="/quizzes/%s">%s</a></li>`, escaped, escaped)
				}
				b.WriteString(`</ul>`)
			}
			b.WriteString(`</body></html>`)
			_, err := io.WriteString(out, b.String())
			return err
		})
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Render(r.Context(), w); err != nil {
			logger.Get().Warn("render index failed", zap.Error(err))
		}
	}
}

// serveQuiz serves one exported page by file name.
func serveQuiz(exportDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name != filepath.Base(name) || !strings.HasSuffix(name, ".html") || strings.HasPrefix(name, ".") {
			http.NotFound(w, r)
			return
		}
		path := filepath.Join(exportDir, name)
		if _, err := os.Stat(path); err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.ServeFile(w, r, path)
	}
}

func serveHistoryPage(source HistorySource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := history.LoadReport(r.Context(), source, recentSessions, mostMissed)
		if err != nil {
			logger.Get().Warn("load history failed", zap.Error(err))
			http.Error(w, "load history failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := export.HistoryPage(payload).Render(r.Context(), w); err != nil {
			logger.Get().Warn("render history failed", zap.Error(err))
		}
	}
}

func serveHistoryJSON(source HistorySource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := history.LoadReport(r.Context(), source, recentSessions, mostMissed)
		if err != nil {
			logger.Get().Warn("load history failed", zap.Error(err))
			respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "load history failed"})
			return
		}
		respondJSON(w, http.StatusOK, payload)
	}
}

// listQuizzes returns the .html files in dir, newest name first. A missing
// dir has no quizzes.
func listQuizzes(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			names = append(names, entry.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// requestLogger logs each request through zap.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Get().Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
