package main

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"eatlocal.org/eatlocal-web/internal/config"
	"eatlocal.org/eatlocal-web/internal/format"
	mw "eatlocal.org/eatlocal-web/internal/middleware"
	"eatlocal.org/eatlocal-web/internal/observability"
	"eatlocal.org/eatlocal-web/internal/restaurants"
)

// recordSource supplies the restaurant records for a render pass.
type recordSource interface {
	Records(ctx context.Context) ([]restaurants.Record, error)
}

type server struct {
	cfg       config.Config
	records   recordSource
	logger    *zap.Logger
	tmplCache *template.Template
}

func newServer(cfg config.Config, records recordSource, logger *zap.Logger) (*server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &server{cfg: cfg, records: records, logger: logger}
	if !cfg.Server.DevMode {
		// Parse templates once in production.
		tc, err := parseTemplates(cfg.Server.TemplatesDir)
		if err != nil {
			return nil, fmt.Errorf("parse templates: %w", err)
		}
		s.tmplCache = tc
	}
	return s, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(observability.RequestLogger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})

	assets := http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(s.cfg.Server.PublicDir, "assets")))
	r.Handle("/assets/*", assets)

	r.Get("/", s.handleHome)
	r.Get("/markers.json", s.handleMarkers)
	return r
}

func parseTemplates(dir string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"now":   time.Now,
		"phone": format.Phone,
		"tel": func(raw string) template.URL {
			// TelHref only emits digits and a leading plus.
			return template.URL(format.TelHref(raw))
		},
		"safeHTML": func(s string) template.HTML {
			// Record bodies are sanitized by the content loader.
			return template.HTML(s)
		},
	}
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", dir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

// render executes the named template. In dev mode, templates are reparsed on each request.
func (s *server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	t := s.tmplCache
	if s.cfg.Server.DevMode {
		tc, err := parseTemplates(s.cfg.Server.TemplatesDir)
		if err != nil {
			s.fail(w, r, "template parse error", err)
			return
		}
		t = tc
	}
	if t == nil {
		s.fail(w, r, "template not initialized", nil)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		s.fail(w, r, "template exec error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	observability.FromContext(r.Context()).Error(msg, zap.Error(err))
	mw.WriteError(w, r, http.StatusInternalServerError, msg)
}
