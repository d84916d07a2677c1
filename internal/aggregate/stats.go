package aggregate

import "github.com/ppiankov/awsposture/internal/dashboard"

// Stats bundles everything a renderer needs for one refresh cycle.
type Stats struct {
	EC2Score       float64      `json:"ec2_score"`
	EC2Count       int          `json:"ec2_count"`
	S3Score        float64      `json:"s3_score"`
	S3Count        int          `json:"s3_count"`
	TotalResources int          `json:"total_resources"`
	CriticalCount  int          `json:"critical_count"`
	EC2            EC2Breakdown `json:"ec2_breakdown"`
	S3             S3Breakdown  `json:"s3_breakdown"`
	Risk           Distribution `json:"risk_distribution"`
}

// Summarize computes the full KPI set for one payload. A missing
// summary block yields zero scores and counts rather than an error.
func Summarize(p *dashboard.DashboardPayload) Stats {
	if p == nil {
		return Stats{}
	}

	ec2 := p.EC2.Assessments
	s3 := p.S3.Assessments

	return Stats{
		EC2Score:       p.Summary.EC2.AverageScore,
		EC2Count:       p.Summary.EC2.Count,
		S3Score:        p.Summary.S3.AverageScore,
		S3Count:        p.Summary.S3.Count,
		TotalResources: len(ec2) + len(s3),
		CriticalCount:  CountCritical(ec2, s3),
		EC2:            BreakdownEC2(ec2),
		S3:             BreakdownS3(s3),
		Risk:           RiskDistribution(ec2, s3),
	}
}

// AverageScore computes the mean security score of a list, 0 when empty.
func AverageScore(assessments []dashboard.Assessment) float64 {
	if len(assessments) == 0 {
		return 0
	}
	var sum float64
	for _, a := range assessments {
		sum += a.SecurityScore
	}
	return sum / float64(len(assessments))
}
