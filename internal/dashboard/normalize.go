package dashboard

// Normalize fills defaults in place so downstream aggregation and
// mapping can assume fully populated records: scores clamped to
// [0,100], unrecognized risk levels replaced with Unknown, nil slices
// replaced with empty ones. Returns the payload for chaining.
func Normalize(p *DashboardPayload) *DashboardPayload {
	if p == nil {
		return &DashboardPayload{
			EC2:             AssessmentGroup{Assessments: []Assessment{}},
			S3:              AssessmentGroup{Assessments: []Assessment{}},
			Recommendations: []RecommendationRecord{},
		}
	}

	normalizeGroup(&p.EC2)
	normalizeGroup(&p.S3)

	if p.Recommendations == nil {
		p.Recommendations = []RecommendationRecord{}
	}
	return p
}

func normalizeGroup(g *AssessmentGroup) {
	if g.Assessments == nil {
		g.Assessments = []Assessment{}
	}
	for i := range g.Assessments {
		a := &g.Assessments[i]
		a.SecurityScore = ClampScore(a.SecurityScore)
		if !knownRiskLevel(a.RiskLevel) {
			a.RiskLevel = RiskUnknown
		}
		if a.Issues == nil {
			a.Issues = []string{}
		}
	}
}

// ClampScore bounds a security score to the displayable [0,100] range.
func ClampScore(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}

func knownRiskLevel(level RiskLevel) bool {
	switch level {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}
