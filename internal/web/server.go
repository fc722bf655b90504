package web

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/omarshaarawi/sleeperboard/internal/models"
	"github.com/omarshaarawi/sleeperboard/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.html
var templateFS embed.FS

// Dashboard is the part of the fantasy service the HTTP layer reads from.
type Dashboard interface {
	View() models.Dashboard
	TriggerRefresh(ctx context.Context) bool
}

// Relayer forwards a raw provider path.
type Relayer interface {
	Relay(ctx context.Context, endpoint string) (int, []byte, error)
}

type Config struct {
	Dashboard      Dashboard
	Relay          Relayer
	AllowedOrigins []string
	// BaseContext scopes background refreshes started from requests.
	BaseContext context.Context
}

type Handler struct {
	dashboard Dashboard
	relay     Relayer
	tmpl      *template.Template
	baseCtx   context.Context
	origins   []string
}

func New(cfg Config) (*Handler, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"formatValue": service.FormatValue,
		"points": func(v float64) string {
			return service.FormatValue(models.CategoryPoints, v)
		},
		"placeholder": func(s string) string {
			if s == "" {
				return "-"
			}
			return s
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	baseCtx := cfg.BaseContext
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &Handler{
		dashboard: cfg.Dashboard,
		relay:     cfg.Relay,
		tmpl:      tmpl,
		baseCtx:   baseCtx,
		origins:   origins,
	}, nil
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", h.Index)
	r.Post("/refresh", h.RefreshForm)
	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: h.origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/dashboard", h.GetDashboard)
		r.Post("/refresh", h.PostRefresh)
		r.Get("/sleeper", h.Relay)
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
