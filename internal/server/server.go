// Package server exposes the posture API: four read endpoints serving
// dashboard payload slices and two write endpoints persisting records.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ppiankov/awsposture/internal/dashboard"
	"github.com/ppiankov/awsposture/internal/store"
)

// Server serves the posture API over a store.
type Server struct {
	store *store.Store
	addr  string
}

// New creates a server bound to addr.
func New(st *store.Store, addr string) *Server {
	return &Server{store: st, addr: addr}
}

// Router builds the chi router with all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/api/dashboard", s.handleDashboard)
	r.Get("/api/assessments", s.handleAssessments)
	r.Get("/api/recommendations", s.handleRecommendations)
	r.Get("/api/security-scores", s.handleSecurityScores)
	r.Post("/api/assessments", s.handlePostAssessment)
	r.Post("/api/recommendations", s.handlePostRecommendation)
	return r
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	slog.Info("Posture API listening", "addr", s.addr)
	return http.ListenAndServe(s.addr, s.Router())
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	payload, err := s.store.Payload()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build dashboard payload")
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleAssessments(w http.ResponseWriter, _ *http.Request) {
	payload, err := s.store.Payload()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list assessments")
		return
	}
	writeJSON(w, http.StatusOK, dashboard.DashboardPayload{
		EC2: payload.EC2,
		S3:  payload.S3,
	})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, _ *http.Request) {
	recs, err := s.store.ListRecommendations()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list recommendations")
		return
	}
	writeJSON(w, http.StatusOK, dashboard.DashboardPayload{Recommendations: recs})
}

func (s *Server) handleSecurityScores(w http.ResponseWriter, _ *http.Request) {
	payload, err := s.store.Payload()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute scores")
		return
	}
	writeJSON(w, http.StatusOK, dashboard.DashboardPayload{Summary: payload.Summary})
}

func (s *Server) handlePostAssessment(w http.ResponseWriter, r *http.Request) {
	var upload dashboard.AssessmentUpload
	if err := json.NewDecoder(r.Body).Decode(&upload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if upload.Category != dashboard.CategoryEC2 && upload.Category != dashboard.CategoryS3 {
		writeError(w, http.StatusBadRequest, "Category must be ec2 or s3")
		return
	}
	if err := s.store.PutAssessment(upload.Category, upload.Assessment); err != nil {
		slog.Warn("Failed to persist assessment", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to persist assessment")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

func (s *Server) handlePostRecommendation(w http.ResponseWriter, r *http.Request) {
	var rec dashboard.RecommendationRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if rec.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if err := s.store.PutRecommendation(rec); err != nil {
		slog.Warn("Failed to persist recommendation", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to persist recommendation")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
