package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"treedata/internal/model"
	"treedata/internal/tree"
)

//go:embed static/*
var staticFS embed.FS

//go:embed help.md
var helpMD string

// Server serves read-only queries over one loaded tree.
type Server struct {
	router chi.Router
	view   *tree.View
	source string
	log    *slog.Logger
}

// NewServer creates the router for v.
func NewServer(v *tree.View, source string, log *slog.Logger) *Server {
	s := &Server{view: v, source: source, log: log}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/tree", s.handleTree)
		r.Get("/nodes", s.handleNodes)
		r.Get("/leaves", s.handleLeaves)
		r.Get("/deepest", s.handleDeepest)
		r.Get("/find", s.handleFind)
		r.Get("/parent", s.handleParent)
		r.Get("/help", s.handleHelp)
	})

	subFS, _ := fs.Sub(staticFS, "static")
	r.Handle("/*", http.FileServer(http.FS(subFS)))

	s.router = r
}

// StartServer serves on addr until ctx is cancelled.
func StartServer(ctx context.Context, addr string, v *tree.View, source string, log *slog.Logger) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      NewServer(v, source, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting treedata web server", "addr", addr, "source", source)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"source": s.source,
		"tree":   model.NewTreeRows(s.view),
	})
}

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"nodes": model.NewNodeEntries(s.view, s.view.Records())})
}

func (s *Server) handleLeaves(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"nodes": model.NewNodeEntries(s.view, s.view.Leaves())})
}

func (s *Server) handleDeepest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"max_depth": s.view.MaxDepth(),
		"nodes":     model.NewNodeEntries(s.view, s.view.DeepestNodes()),
	})
}

func (s *Server) handleFind(w http.ResponseWriter, r *http.Request) {
	name, ok := r.URL.Query()["name"]
	if !ok || len(name) == 0 {
		jsonError(w, "name query parameter is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{
		"name":  name[0],
		"nodes": model.NewNodeEntries(s.view, s.view.FindByName(name[0])),
	})
}

func (s *Server) handleParent(w http.ResponseWriter, r *http.Request) {
	name, ok := r.URL.Query()["name"]
	if !ok || len(name) == 0 {
		jsonError(w, "name query parameter is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{
		"parent": name[0],
		"nodes":  model.NewNodeEntries(s.view, s.view.FindByDeclaredParentName(name[0])),
	})
}

func (s *Server) handleHelp(w http.ResponseWriter, r *http.Request) {
	text := strings.ReplaceAll(helpMD, "{{VERSION}}", model.Version)

	w.Header().Set("Content-Type", "text/markdown")
	w.Write([]byte(text))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
