package view

import (
	"testing"

	"github.com/ppiankov/awsposture/internal/aggregate"
	"github.com/ppiankov/awsposture/internal/dashboard"
)

func TestScoreColor_AgreesWithRiskTiers(t *testing.T) {
	// Tier boundaries are inclusive lower bounds at 40/60/80.
	for _, score := range []float64{0, 39.9, 40, 59.9, 60, 79.9, 80, 100} {
		tier := aggregate.OverallRisk(score)
		if got := ScoreColor(score); got != RiskColor(tier) {
			t.Fatalf("ScoreColor(%v) = %s, want tier color %s", score, got, RiskColor(tier))
		}
	}
}

func TestScoreGradient_Tiers(t *testing.T) {
	if g := ScoreGradient(85); g.From != ColorGreen {
		t.Fatalf("expected green gradient for 85, got %+v", g)
	}
	if g := ScoreGradient(10); g.From != ColorRed {
		t.Fatalf("expected red gradient for 10, got %+v", g)
	}
}

func TestRiskColor_Fallback(t *testing.T) {
	if got := RiskColor(dashboard.RiskUnknown); got != ColorNeutral {
		t.Fatalf("expected neutral for Unknown, got %s", got)
	}
	if got := RiskColor("bogus"); got != ColorNeutral {
		t.Fatalf("expected neutral for unrecognized level, got %s", got)
	}
	if got := RiskColor(dashboard.RiskCritical); got != ColorRed {
		t.Fatalf("expected red for Critical, got %s", got)
	}
}

func TestAssessmentCard_TruncatesIssues(t *testing.T) {
	a := dashboard.Assessment{
		InstanceName:  "web-1",
		SecurityScore: 45,
		RiskLevel:     dashboard.RiskHigh,
		Issues:        []string{"a", "b", "c", "d", "e"},
		State:         "running",
	}

	card := AssessmentCard(a, dashboard.CategoryEC2)
	if len(card.Issues) != 3 {
		t.Fatalf("expected 3 issues on card, got %d", len(card.Issues))
	}
	if card.MoreIssues != "+2 more" {
		t.Fatalf("expected +2 more marker, got %q", card.MoreIssues)
	}
	if card.StateBadge != "running" {
		t.Fatalf("expected state badge, got %q", card.StateBadge)
	}
}

func TestAssessmentCard_ShortIssueList(t *testing.T) {
	a := dashboard.Assessment{BucketName: "logs", Issues: []string{"x"}}
	card := AssessmentCard(a, dashboard.CategoryS3)
	if len(card.Issues) != 1 || card.MoreIssues != "" {
		t.Fatalf("expected untruncated card, got %+v", card)
	}
	if card.StateBadge != "" {
		t.Fatal("S3 cards must not carry a state badge")
	}
}

func TestAssessmentCard_NameFallbacks(t *testing.T) {
	card := AssessmentCard(dashboard.Assessment{}, dashboard.CategoryEC2)
	if card.Name != "Unknown" {
		t.Fatalf("expected Unknown, got %q", card.Name)
	}

	card = AssessmentCard(dashboard.Assessment{ResourceID: "i-0abc"}, dashboard.CategoryEC2)
	if card.Name != "i-0abc" {
		t.Fatalf("expected resource id fallback, got %q", card.Name)
	}

	card = AssessmentCard(dashboard.Assessment{BucketName: "data"}, dashboard.CategoryS3)
	if card.Name != "data" {
		t.Fatalf("expected bucket name, got %q", card.Name)
	}
}

func TestRecommendationCard_PriorityNormalization(t *testing.T) {
	rec := dashboard.RecommendationRecord{
		Title:       "Enable encryption",
		Description: "Turn on default encryption",
		Priority:    "high",
		Issue:       "Unencrypted bucket",
	}
	v := RecommendationCard(rec)
	if v.Badge != "HIGH" {
		t.Fatalf("expected HIGH badge, got %q", v.Badge)
	}
	if v.StyleClass != "priority-high" {
		t.Fatalf("expected priority-high class, got %q", v.StyleClass)
	}
}

func TestRecommendationCard_Placeholders(t *testing.T) {
	v := RecommendationCard(dashboard.RecommendationRecord{})
	if v.Title != "Security Recommendation" {
		t.Fatalf("expected placeholder title, got %q", v.Title)
	}
	if v.Description != "No description provided" {
		t.Fatalf("expected placeholder description, got %q", v.Description)
	}
	if v.Issue != "General" {
		t.Fatalf("expected placeholder issue, got %q", v.Issue)
	}
	if v.Badge != "MEDIUM" || v.StyleClass != "priority-medium" {
		t.Fatalf("expected medium default priority, got %+v", v)
	}
}
