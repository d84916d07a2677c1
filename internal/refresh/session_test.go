package refresh

import (
	"context"
	"testing"
	"time"

	"github.com/ppiankov/awsposture/internal/dashboard"
)

type stubSource struct {
	payload *dashboard.DashboardPayload
	calls   int
}

func (s *stubSource) Fetch(_ context.Context, endpoint string) (*dashboard.DashboardPayload, error) {
	if endpoint != "dashboard" {
		panic("unexpected endpoint " + endpoint)
	}
	s.calls++
	return s.payload, nil
}

type captureRenderer struct {
	frames []Frame
}

func (r *captureRenderer) Render(f Frame) error {
	r.frames = append(r.frames, f)
	return nil
}

func testPayload() *dashboard.DashboardPayload {
	return &dashboard.DashboardPayload{
		Summary: dashboard.Summary{
			EC2: dashboard.CategorySummary{AverageScore: 70, Count: 1},
		},
		EC2: dashboard.AssessmentGroup{Assessments: []dashboard.Assessment{
			{InstanceName: "web-1", SecurityScore: 70, RiskLevel: dashboard.RiskMedium,
				Issues: []string{"a", "b", "c", "d"}},
		}},
		S3: dashboard.AssessmentGroup{Assessments: []dashboard.Assessment{
			{BucketName: "logs", SecurityScore: 95, RiskLevel: dashboard.RiskLow},
		}},
		Recommendations: []dashboard.RecommendationRecord{
			{Title: "t", Priority: "high"},
		},
	}
}

func TestRefreshOnce_BuildsFrame(t *testing.T) {
	src := &stubSource{payload: testPayload()}
	sink := &captureRenderer{}
	s := NewSession(src, sink, time.Minute)

	if err := s.RefreshOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(sink.frames))
	}

	f := sink.frames[0]
	if f.Tab != TabEC2 {
		t.Fatalf("expected EC2 tab by default, got %s", f.Tab)
	}
	if f.Stats.TotalResources != 2 {
		t.Fatalf("expected 2 resources, got %d", f.Stats.TotalResources)
	}
	if len(f.EC2Cards) != 1 || len(f.S3Cards) != 1 {
		t.Fatalf("unexpected card counts: %d/%d", len(f.EC2Cards), len(f.S3Cards))
	}
	if f.EC2Cards[0].MoreIssues != "+1 more" {
		t.Fatalf("expected truncated card, got %+v", f.EC2Cards[0])
	}
	if len(f.Recommendations) != 1 || f.Recommendations[0].Badge != "HIGH" {
		t.Fatalf("unexpected recommendations: %+v", f.Recommendations)
	}
	if f.FetchedAt.IsZero() {
		t.Fatal("expected fetch timestamp")
	}
}

func TestSwitchTab_RerendersWithoutFetching(t *testing.T) {
	src := &stubSource{payload: testPayload()}
	sink := &captureRenderer{}
	s := NewSession(src, sink, time.Minute)

	if err := s.RefreshOnce(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if err := s.SwitchTab(TabS3); err != nil {
		t.Fatalf("switch tab: %v", err)
	}

	if src.calls != 1 {
		t.Fatalf("tab switch must not refetch, got %d fetches", src.calls)
	}
	if len(sink.frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(sink.frames))
	}
	if sink.frames[1].Tab != TabS3 {
		t.Fatalf("expected S3 tab, got %s", sink.frames[1].Tab)
	}
	if s.Tab() != TabS3 {
		t.Fatalf("expected session tab S3, got %s", s.Tab())
	}
}

func TestSwitchTab_NoSnapshotIsNoop(t *testing.T) {
	sink := &captureRenderer{}
	s := NewSession(&stubSource{payload: testPayload()}, sink, time.Minute)

	if err := s.SwitchTab(TabS3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.frames) != 0 {
		t.Fatal("no frame expected before the first refresh")
	}
}

func TestRun_RendersOnStartAndTick(t *testing.T) {
	src := &stubSource{payload: testPayload()}
	sink := &captureRenderer{}
	s := NewSession(src, sink, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()

	if err := s.Run(ctx); err != context.DeadlineExceeded {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if len(sink.frames) < 2 {
		t.Fatalf("expected initial render plus ticks, got %d frames", len(sink.frames))
	}
}
