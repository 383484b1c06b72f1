// Package api exposes the aggregation pipeline over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sniftern/internguard/internal/analytics"
	"github.com/sniftern/internguard/internal/company"
	"github.com/sniftern/internguard/internal/extract"
	"github.com/sniftern/internguard/internal/model"
)

// Server holds the handlers for the observation and analytics API.
type Server struct {
	store     company.Store
	merger    *company.Merger
	analytics *analytics.Service
	extractor extract.Extractor
	limiter   *rate.Limiter
}

// New wires a Server over a store. ratePerSecond/burst bound the
// POST /api/observations endpoint; zero ratePerSecond disables the
// limit.
func New(store company.Store, extractor extract.Extractor, ratePerSecond float64, burst int) *Server {
	var limiter *rate.Limiter
	if ratePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(ratePerSecond), burst)
	}
	return &Server{
		store:     store,
		merger:    company.NewMerger(store),
		analytics: analytics.New(store),
		extractor: extractor,
		limiter:   limiter,
	}
}

// Routes returns the chi router for the API.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.With(s.rateLimit).Post("/observations", s.handleObservation)

		r.Get("/companies", s.handleListCompanies)
		r.Get("/companies/{name}", s.handleGetCompany)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/dashboard", s.handleDashboard)
			r.Get("/totals", s.handleTotals)
			r.Get("/top-fraud", s.handleTopFraud)
			r.Get("/locations", s.handleLocations)
		})
	})

	return r
}

// rateLimit rejects requests over the configured ingest rate.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// observationRequest is a classified posting, optionally with the raw
// posting text so missing company fields can be extracted server-side.
type observationRequest struct {
	model.Observation
	Text string `json:"text,omitempty"`
}

func (s *Server) handleObservation(w http.ResponseWriter, r *http.Request) {
	var req observationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Verdict) == "" {
		respondError(w, http.StatusBadRequest, "verdict is required")
		return
	}

	if strings.TrimSpace(req.CompanyName) == "" && strings.TrimSpace(req.Text) != "" {
		info, err := s.extractor.Extract(r.Context(), req.Text)
		if err != nil {
			zap.L().Error("api: extraction failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "extraction failed")
			return
		}
		req.CompanyName = info.CompanyName
		if strings.TrimSpace(req.Website) == "" {
			req.Website = info.Website
		}
		if strings.TrimSpace(req.Location) == "" {
			req.Location = info.Location
		}
	}

	rec, err := s.merger.Merge(r.Context(), req.Observation)
	if err != nil {
		zap.L().Error("api: merge failed",
			zap.String("company", req.CompanyName),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, "merge failed")
		return
	}
	if rec == nil {
		respondJSON(w, http.StatusOK, map[string]any{
			"status": "skipped",
			"reason": "company name unresolvable",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"company": rec,
	})
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	all, err := s.store.FindAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "list companies failed")
		return
	}
	if all == nil {
		all = []company.CompanyRecord{}
	}
	respondJSON(w, http.StatusOK, all)
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	rec, err := s.store.FindByNameExact(r.Context(), name)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	if rec == nil {
		respondError(w, http.StatusNotFound, "company not found")
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := s.analytics.Dashboard(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "dashboard failed")
		return
	}
	respondJSON(w, http.StatusOK, dash)
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := s.analytics.Totals(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "totals failed")
		return
	}
	respondJSON(w, http.StatusOK, totals)
}

func (s *Server) handleTopFraud(w http.ResponseWriter, r *http.Request) {
	n := analytics.DefaultTopN
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		n = parsed
	}

	top, err := s.analytics.TopFraudCompanies(r.Context(), n)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "top fraud failed")
		return
	}
	if top == nil {
		top = []analytics.FraudRanking{}
	}
	respondJSON(w, http.StatusOK, top)
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	stats, err := s.analytics.RemoteVsOnsite(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "locations failed")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, code int, msg string) {
	respondJSON(w, code, map[string]string{"error": msg})
}
