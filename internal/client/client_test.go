package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ppiankov/awsposture/internal/dashboard"
)

func TestFetch_HealthyServer(t *testing.T) {
	want := dashboard.DashboardPayload{
		Summary: dashboard.Summary{
			EC2: dashboard.CategorySummary{AverageScore: 77, Count: 4},
		},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dashboard" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	got, err := c.Fetch(context.Background(), "dashboard")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Summary.EC2.AverageScore != 77 || got.Summary.EC2.Count != 4 {
		t.Fatalf("unexpected payload: %+v", got.Summary)
	}
}

func TestFetch_FallbackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	got, err := c.Fetch(context.Background(), "dashboard")
	if err != nil {
		t.Fatalf("recognized endpoints must never error, got: %v", err)
	}
	if got == nil {
		t.Fatal("expected fallback payload, got nil")
	}
	if len(got.EC2.Assessments) == 0 || len(got.S3.Assessments) == 0 {
		t.Fatal("expected populated fallback payload")
	}
}

func TestFetch_FallbackOnUnreachableHost(t *testing.T) {
	// Port from a closed listener: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url, time.Second)
	got, err := c.Fetch(context.Background(), "recommendations")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Recommendations) == 0 {
		t.Fatal("expected fallback recommendations")
	}
}

func TestFetch_UnknownEndpoint(t *testing.T) {
	c := New("http://localhost:0", time.Second)
	if _, err := c.Fetch(context.Background(), "metrics"); err == nil {
		t.Fatal("expected error for unrecognized endpoint name")
	}
}

func TestPutAssessment(t *testing.T) {
	var received dashboard.AssessmentUpload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("expected JSON content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	a := dashboard.Assessment{ResourceID: "i-123", SecurityScore: 50, RiskLevel: dashboard.RiskHigh}
	if err := c.PutAssessment(context.Background(), dashboard.CategoryEC2, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received.Category != dashboard.CategoryEC2 || received.Assessment.ResourceID != "i-123" {
		t.Fatalf("unexpected upload: %+v", received)
	}
}

func TestPutRecommendation_ErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	err := c.PutRecommendation(context.Background(), dashboard.RecommendationRecord{Title: "x"})
	if err == nil {
		t.Fatal("expected error for rejected write")
	}
}
