// Package web provides the HTTP server and handlers for the rentdesk dashboard.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evcraddock/rentdesk/internal/client"
	"github.com/evcraddock/rentdesk/internal/dashboard"
	"github.com/evcraddock/rentdesk/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// API is the tenancy API the dashboard renders and submits to.
type API interface {
	dashboard.AdminAPI
	dashboard.TenantAPI
}

// backend boxes the API so it can be swapped atomically.
type backend struct {
	api API
}

// Options configures a Server.
type Options struct {
	// Recorder observes loads and mutations.
	Recorder dashboard.Recorder
	// Gatherer, when set, is served at MetricsPath.
	Gatherer    prometheus.Gatherer
	MetricsPath string
}

// Server is the dashboard HTTP server.
type Server struct {
	backend   atomic.Pointer[backend]
	templates *template.Template
	router    *mux.Router
	handler   http.Handler
	opts      []dashboard.Option
}

// NewServer creates a dashboard server rendering from api.
func NewServer(api API, o Options) (*Server, error) {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		templates: tmpl,
		router:    mux.NewRouter(),
	}
	if o.Recorder != nil {
		s.opts = append(s.opts, dashboard.WithRecorder(o.Recorder))
	}
	s.SetAPI(api)

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}

	r := s.router
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	if o.Gatherer != nil {
		path := o.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, promhttp.HandlerFor(o.Gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}

	r.HandleFunc("/", s.handleIndex).Methods("GET")

	r.HandleFunc("/admin", s.handleAdmin).Methods("GET")
	r.HandleFunc("/admin/fragments/{container}", s.handleAdminFragment).Methods("GET")
	r.HandleFunc("/admin/tenants", s.handleAddTenant).Methods("POST")
	r.HandleFunc("/admin/maintenance/{id}/status", s.handleUpdateMaintenance).Methods("POST")
	r.HandleFunc("/admin/vacate/{id}/complete", s.handleCompleteVacate).Methods("POST")

	r.HandleFunc("/tenant", s.handleTenant).Methods("GET")
	r.HandleFunc("/tenant/fragments/{container}", s.handleTenantFragment).Methods("GET")
	r.HandleFunc("/tenant/payments", s.handleUploadPayment).Methods("POST")
	r.HandleFunc("/tenant/maintenance", s.handleFileMaintenance).Methods("POST")
	r.HandleFunc("/tenant/vacate", s.handleFileVacate).Methods("POST")

	s.handler = logging.RequestLogger(securityHeaders(r))

	return s, nil
}

// SetAPI swaps the API used by subsequent requests. In-flight requests keep
// the one they started with.
func (s *Server) SetAPI(api API) {
	s.backend.Store(&backend{api: api})
}

func (s *Server) api() API {
	return s.backend.Load().api
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("dashboard listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestContext carries the browser's credentials to the API.
func requestContext(r *http.Request) context.Context {
	return client.WithCredentials(r.Context(), client.Credentials{
		Cookie:        r.Header.Get("Cookie"),
		Authorization: r.Header.Get("Authorization"),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, dashboard.AdminPath, http.StatusFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("writing json response", "err", err)
	}
}

// render executes a full page template.
func (s *Server) render(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("rendering template", "template", name, "err", err)
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("writing response", "err", err)
	}
}
