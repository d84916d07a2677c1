package dashboard

import "testing"

func TestNormalize_NilPayload(t *testing.T) {
	p := Normalize(nil)
	if p.EC2.Assessments == nil || p.S3.Assessments == nil {
		t.Fatal("expected non-nil assessment lists")
	}
	if p.Recommendations == nil {
		t.Fatal("expected non-nil recommendations")
	}
}

func TestNormalize_ClampsScores(t *testing.T) {
	p := &DashboardPayload{
		EC2: AssessmentGroup{Assessments: []Assessment{
			{SecurityScore: -10, RiskLevel: RiskLow},
			{SecurityScore: 140, RiskLevel: RiskHigh},
		}},
	}
	Normalize(p)

	if got := p.EC2.Assessments[0].SecurityScore; got != 0 {
		t.Fatalf("expected clamped score 0, got %v", got)
	}
	if got := p.EC2.Assessments[1].SecurityScore; got != 100 {
		t.Fatalf("expected clamped score 100, got %v", got)
	}
}

func TestNormalize_UnknownRiskLevel(t *testing.T) {
	p := &DashboardPayload{
		S3: AssessmentGroup{Assessments: []Assessment{
			{RiskLevel: ""},
			{RiskLevel: "SEVERE"},
			{RiskLevel: RiskCritical},
		}},
	}
	Normalize(p)

	if p.S3.Assessments[0].RiskLevel != RiskUnknown {
		t.Fatalf("expected missing level to default to Unknown, got %s", p.S3.Assessments[0].RiskLevel)
	}
	if p.S3.Assessments[1].RiskLevel != RiskUnknown {
		t.Fatalf("expected unrecognized level to default to Unknown, got %s", p.S3.Assessments[1].RiskLevel)
	}
	if p.S3.Assessments[2].RiskLevel != RiskCritical {
		t.Fatalf("expected Critical to survive, got %s", p.S3.Assessments[2].RiskLevel)
	}
}

func TestNormalize_NilIssues(t *testing.T) {
	p := &DashboardPayload{
		EC2: AssessmentGroup{Assessments: []Assessment{{RiskLevel: RiskLow}}},
	}
	Normalize(p)
	if p.EC2.Assessments[0].Issues == nil {
		t.Fatal("expected issues slice to be filled in")
	}
}
