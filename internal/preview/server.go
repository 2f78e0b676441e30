// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

// Package preview serves a compiled page set over HTTP for local review.
package preview

import (
	"bytes"
	"html/template"
	"net/http"
	"path"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Server is the HTTP preview server for compiled pages.
type Server struct {
	router chi.Router
	logger zerolog.Logger

	mu      sync.RWMutex
	pages   map[string]string
	builtAt time.Time
}

// NewServer creates and configures the preview server.
func NewServer(pages map[string]string, logger zerolog.Logger) *Server {
	s := &Server{logger: logger}
	s.SetPages(pages)
	s.setupRoutes()
	return s
}

// SetPages swaps the served page set; it is safe to call while serving.
func (s *Server) SetPages(pages map[string]string) {
	copied := make(map[string]string, len(pages))
	for key, text := range pages {
		copied[key] = text
	}

	s.mu.Lock()
	s.pages = copied
	s.builtAt = time.Now()
	s.mu.Unlock()

	s.logger.Debug().Int("pages", len(copied)).Msg("preview pages updated")
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.logger))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Get("/raw/*", s.handleRaw)
	r.Get("/*", s.handlePage)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	paths := make([]string, 0, len(s.pages))
	for key := range s.pages {
		paths = append(paths, key)
	}
	builtAt := s.builtAt
	s.mu.RUnlock()

	slices.Sort(paths)

	s.writeHTML(w, indexTemplate, indexView{
		Title:   "Pages",
		Paths:   paths,
		BuiltAt: builtAt.Format(time.RFC3339),
	})
}

func (s *Server) handleRaw(w http.ResponseWriter, r *http.Request) {
	key, text, ok := s.lookup(chi.URLParam(r, "*"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	contentType := "text/markdown; charset=utf-8"
	if path.Ext(key) == ".json" {
		contentType = "application/json"
	}

	w.Header().Set("Content-Type", contentType)
	w.Write([]byte(text))
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	key, text, ok := s.lookup(chi.URLParam(r, "*"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	if ext := path.Ext(key); ext != ".md" && ext != ".mdx" {
		http.Redirect(w, r, "/raw/"+key, http.StatusFound)
		return
	}

	page, err := RenderPage(text)
	if err != nil {
		s.logger.Error().Err(err).Str("page", key).Msg("render preview page")
		http.Error(w, "render page: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if page.Title == "" {
		page.Title = key
	}

	s.writeHTML(w, pageTemplate, pageView{
		Title: page.Title,
		Path:  key,
		Body:  template.HTML(page.HTML),
	})
}

// lookup resolves request path to a page key, trying page file suffixes for bare paths.
func (s *Server) lookup(requestPath string) (string, string, bool) {
	key := strings.Trim(path.Clean("/"+requestPath), "/")

	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := []string{key, key + ".md", key + ".mdx", key + "/index.md", key + "/index.mdx", key + "/page.mdx"}
	for _, candidate := range candidates {
		if text, ok := s.pages[candidate]; ok {
			return candidate, text, true
		}
	}

	return "", "", false
}

// writeHTML executes template into a buffer so failures never emit partial pages.
func (s *Server) writeHTML(w http.ResponseWriter, tpl *template.Template, view any) {
	var out bytes.Buffer
	if err := tpl.Execute(&out, view); err != nil {
		s.logger.Error().Err(err).Str("template", tpl.Name()).Msg("execute preview template")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(out.Bytes())
}
