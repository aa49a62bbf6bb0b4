package transporthttp

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sieginglion/polymarket/internal/events"
	"github.com/sieginglion/polymarket/internal/price"
	"github.com/sieginglion/polymarket/internal/render"
)

// maxLimit bounds the number of records a request may ask the upstream for.
const maxLimit = 1000

// Defaults are used for query parameters a request leaves out.
type Defaults struct {
	Limit    int
	Days     int
	Top      int
	MinScore float64
	SiteURL  string
}

type Server struct {
	pipeline *events.Pipeline
	defaults Defaults
	logger   *slog.Logger
}

func NewServer(pipeline *events.Pipeline, defaults Defaults, logger *slog.Logger) *Server {
	return &Server{
		pipeline: pipeline,
		defaults: defaults,
		logger:   logger.With("component", "http"),
	}
}

// Handler wires routes and middleware. requestTimeout bounds each request.
func (s *Server) Handler(corsOrigins []string, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	if len(corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept"},
			MaxAge:         300,
		}))
	}

	r.Get("/health", s.handleHealth)
	r.Get("/events", s.handleEvents)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleEvents runs one report. Query: limit, days, top, scored, min_score, format (json|csv).
// scored=true filters by the default minimum score; min_score sets it explicitly.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := intParam(q.Get("limit"), s.defaults.Limit, 1, maxLimit)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("limit: %v", err))
		return
	}
	days, err := intParam(q.Get("days"), s.defaults.Days, 0, 3650)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("days: %v", err))
		return
	}
	top, err := intParam(q.Get("top"), s.defaults.Top, 1, maxLimit)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("top: %v", err))
		return
	}

	var minScore *price.Price
	if raw := q.Get("min_score"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 || f > 1 {
			respondError(w, http.StatusBadRequest, "min_score must be a number between 0 and 1")
			return
		}
		p := price.FromFloat(f)
		minScore = &p
	} else if scored, _ := strconv.ParseBool(q.Get("scored")); scored {
		p := price.FromFloat(s.defaults.MinScore)
		minScore = &p
	}

	format := render.FormatJSON
	if raw := q.Get("format"); raw != "" {
		format, err = render.ParseFormat(raw)
		if err != nil || format == render.FormatTable {
			respondError(w, http.StatusBadRequest, "format must be json or csv")
			return
		}
	}

	report := s.pipeline.Run(r.Context(), events.Params{
		Limit:       limit,
		HorizonDays: days,
		MinScore:    minScore,
		Top:         top,
	})
	if err := r.Context().Err(); err != nil {
		// The timeout middleware answers once the deadline has passed.
		s.logger.Warn("request ended before the report was ready", "run_id", report.RunID, "error", err)
		return
	}
	if report.FetchErr != nil {
		w.Header().Set("X-Upstream-Error", "1")
	}
	w.Header().Set("X-Run-ID", report.RunID)

	opts := render.Options{Format: format, SiteURL: s.defaults.SiteURL, Scored: minScore != nil}
	switch format {
	case render.FormatCSV:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	if err := render.Write(w, report.Events, opts); err != nil {
		s.logger.Error("writing response failed", "run_id", report.RunID, "error", err)
	}
}

func intParam(raw string, def, lo, hi int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", raw)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("must be between %d and %d", lo, hi)
	}
	return n, nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
