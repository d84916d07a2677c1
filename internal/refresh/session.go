// Package refresh drives the dashboard cycle: fetch a payload, compute
// aggregates and cards, and hand the frame to a renderer. The session
// owns its snapshot and UI state explicitly instead of keeping them in
// package globals.
package refresh

import (
	"context"
	"log/slog"
	"time"

	"github.com/ppiankov/awsposture/internal/aggregate"
	"github.com/ppiankov/awsposture/internal/dashboard"
	"github.com/ppiankov/awsposture/internal/view"
)

// DefaultInterval between refresh cycles.
const DefaultInterval = 5 * time.Minute

// Tab identifies which assessment list the renderer focuses on.
type Tab string

const (
	TabEC2 Tab = "ec2"
	TabS3  Tab = "s3"
)

// Frame is one fully computed render input.
type Frame struct {
	Stats           aggregate.Stats
	EC2Cards        []view.Card
	S3Cards         []view.Card
	Recommendations []view.RecommendationView
	Tab             Tab
	FetchedAt       time.Time
}

// Renderer consumes frames. Implementations own the actual surface.
type Renderer interface {
	Render(Frame) error
}

// Source supplies payloads; satisfied by client.Client.
type Source interface {
	Fetch(ctx context.Context, endpoint string) (*dashboard.DashboardPayload, error)
}

// Session owns the latest payload snapshot, the active tab, and the
// renderer for one dashboard instance.
type Session struct {
	source   Source
	renderer Renderer
	interval time.Duration

	tab      Tab
	snapshot *dashboard.DashboardPayload
}

// NewSession creates a session. A non-positive interval falls back to
// DefaultInterval.
func NewSession(source Source, renderer Renderer, interval time.Duration) *Session {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Session{
		source:   source,
		renderer: renderer,
		interval: interval,
		tab:      TabEC2,
	}
}

// RefreshOnce runs one full cycle: fetch, replace the snapshot
// wholesale, recompute, render.
func (s *Session) RefreshOnce(ctx context.Context) error {
	payload, err := s.source.Fetch(ctx, "dashboard")
	if err != nil {
		return err
	}
	s.snapshot = dashboard.Normalize(payload)
	return s.renderer.Render(s.frame())
}

// Run renders once immediately, then on every tick until ctx is
// cancelled. Cycles run sequentially on the calling goroutine; a slow
// fetch delays the next tick rather than overlapping it.
func (s *Session) Run(ctx context.Context) error {
	if err := s.RefreshOnce(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.RefreshOnce(ctx); err != nil {
				slog.Warn("Refresh cycle failed", "error", err)
			}
		}
	}
}

// SwitchTab changes the active tab and re-renders from the held
// snapshot without refetching. A no-op before the first refresh.
func (s *Session) SwitchTab(tab Tab) error {
	s.tab = tab
	if s.snapshot == nil {
		return nil
	}
	return s.renderer.Render(s.frame())
}

// Tab returns the active tab.
func (s *Session) Tab() Tab {
	return s.tab
}

func (s *Session) frame() Frame {
	p := s.snapshot

	ec2Cards := make([]view.Card, 0, len(p.EC2.Assessments))
	for _, a := range p.EC2.Assessments {
		ec2Cards = append(ec2Cards, view.AssessmentCard(a, dashboard.CategoryEC2))
	}
	s3Cards := make([]view.Card, 0, len(p.S3.Assessments))
	for _, a := range p.S3.Assessments {
		s3Cards = append(s3Cards, view.AssessmentCard(a, dashboard.CategoryS3))
	}
	recs := make([]view.RecommendationView, 0, len(p.Recommendations))
	for _, r := range p.Recommendations {
		recs = append(recs, view.RecommendationCard(r))
	}

	return Frame{
		Stats:           aggregate.Summarize(p),
		EC2Cards:        ec2Cards,
		S3Cards:         s3Cards,
		Recommendations: recs,
		Tab:             s.tab,
		FetchedAt:       time.Now().UTC(),
	}
}
