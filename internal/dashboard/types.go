// Package dashboard defines the payload types exchanged between the
// posture API, the collector, and the presentation layers, plus the
// normalization applied at the ingestion boundary.
package dashboard

// RiskLevel is the categorical severity derived from a security score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
	RiskUnknown  RiskLevel = "Unknown"
)

// Category identifies which resource family an assessment belongs to.
type Category string

const (
	CategoryEC2 Category = "ec2"
	CategoryS3  Category = "s3"
)

// Priority levels for recommendations. Stored uppercase; parsing is
// case-insensitive.
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// Assessment is a scored security evaluation of one resource. EC2 and
// S3 assessments share the struct; the flag set that applies depends on
// which category list the assessment appears in.
type Assessment struct {
	ResourceID    string    `json:"resource_id,omitempty"`
	InstanceName  string    `json:"instance_name,omitempty"`
	BucketName    string    `json:"bucket_name,omitempty"`
	Region        string    `json:"region,omitempty"`
	SecurityScore float64   `json:"security_score"`
	RiskLevel     RiskLevel `json:"risk_level"`
	Issues        []string  `json:"issues"`

	// EC2 flags
	EBSEncryptionEnabled bool   `json:"ebs_encryption_enabled"`
	HasPublicIP          bool   `json:"has_public_ip"`
	State                string `json:"state,omitempty"`

	// S3 flags
	EncryptionEnabled         bool `json:"encryption_enabled"`
	PublicAccessBlockDisabled bool `json:"public_access_block_disabled"`
}

// RecommendationRecord is a single remediation suggestion tied to an
// observed issue.
type RecommendationRecord struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Priority     string `json:"priority"`
	Issue        string `json:"issue"`
	ResourceType string `json:"resource_type,omitempty"`
}

// CategorySummary holds the per-category KPI values.
type CategorySummary struct {
	AverageScore float64 `json:"average_score"`
	Count        int     `json:"count"`
}

// Summary is the KPI block of the payload.
type Summary struct {
	EC2 CategorySummary `json:"ec2"`
	S3  CategorySummary `json:"s3"`
}

// AssessmentGroup wraps a category's assessment list.
type AssessmentGroup struct {
	Assessments []Assessment `json:"assessments"`
}

// DashboardPayload is the aggregate root fetched on every refresh
// cycle. A fresh payload fully replaces any prior snapshot.
type DashboardPayload struct {
	Summary         Summary                `json:"summary"`
	EC2             AssessmentGroup        `json:"ec2"`
	S3              AssessmentGroup        `json:"s3"`
	Recommendations []RecommendationRecord `json:"recommendations"`
}

// AssessmentUpload is the body of POST /api/assessments.
type AssessmentUpload struct {
	Category   Category   `json:"category"`
	Assessment Assessment `json:"assessment"`
}
