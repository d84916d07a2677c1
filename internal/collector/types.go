// Package collector inspects live AWS EC2 instances and S3 buckets and
// produces scored security assessments plus remediation suggestions.
package collector

import (
	"github.com/ppiankov/awsposture/internal/aggregate"
	"github.com/ppiankov/awsposture/internal/dashboard"
)

// Issue strings attached to assessments. These are display text and
// also key the recommendation templates, so they must stay stable.
const (
	IssueUnencryptedEBS      = "EBS volumes are not encrypted"
	IssuePublicIP            = "Instance has a public IP address"
	IssueOpenSSH             = "Security group allows SSH from 0.0.0.0/0"
	IssueIMDSv1              = "IMDSv1 is allowed"
	IssueNoDefaultEncryption = "Default encryption is not enabled"
	IssuePublicPolicy        = "Bucket policy allows public access"
	IssuePABDisabled         = "Public access block is disabled"
)

// issuePenalties holds how many points each issue subtracts from the
// starting score of 100.
var issuePenalties = map[string]float64{
	IssueUnencryptedEBS:      25,
	IssuePublicIP:            20,
	IssueOpenSSH:             30,
	IssueIMDSv1:              15,
	IssueNoDefaultEncryption: 30,
	IssuePublicPolicy:        35,
	IssuePABDisabled:         25,
}

// Result holds everything one collection run produced.
type Result struct {
	EC2              []dashboard.Assessment           `json:"ec2"`
	S3               []dashboard.Assessment           `json:"s3"`
	Recommendations  []dashboard.RecommendationRecord `json:"recommendations"`
	Errors           []string                         `json:"errors,omitempty"`
	ResourcesScanned int                              `json:"resources_scanned"`
	RegionsScanned   int                              `json:"regions_scanned"`
}

// scoreIssues computes the security score for a set of issues and the
// matching risk level. Unknown issue strings cost nothing.
func scoreIssues(issues []string) (float64, dashboard.RiskLevel) {
	score := 100.0
	for _, issue := range issues {
		score -= issuePenalties[issue]
	}
	score = dashboard.ClampScore(score)
	return score, aggregate.OverallRisk(score)
}
