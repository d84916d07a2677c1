// Package aggregate computes KPI summaries, security-control breakdowns,
// and risk distributions from a dashboard payload. All functions are
// pure and total: malformed input degrades to zero counts, never errors.
package aggregate

import "github.com/ppiankov/awsposture/internal/dashboard"

// Risk tier cut points shared by OverallRisk and the view layer's score
// color mapping. Lower bounds are inclusive.
const (
	TierLow    = 80
	TierMedium = 60
	TierHigh   = 40
)

// OverallRisk maps a security score to its risk tier.
func OverallRisk(score float64) dashboard.RiskLevel {
	switch {
	case score >= TierLow:
		return dashboard.RiskLow
	case score >= TierMedium:
		return dashboard.RiskMedium
	case score >= TierHigh:
		return dashboard.RiskHigh
	default:
		return dashboard.RiskCritical
	}
}

// EC2Breakdown holds two independent binary splits over EC2 assessments.
// An instance can count toward both NotEncrypted and PublicAccess.
type EC2Breakdown struct {
	Encrypted    int `json:"encrypted"`
	NotEncrypted int `json:"not_encrypted"`
	PublicAccess int `json:"public_access"`
	Restricted   int `json:"restricted"`
}

// S3Breakdown is the S3 counterpart using the bucket flags.
type S3Breakdown struct {
	Encrypted           int `json:"encrypted"`
	NotEncrypted        int `json:"not_encrypted"`
	PublicAccessAllowed int `json:"public_access_allowed"`
	Secured             int `json:"secured"`
}

// Distribution counts assessments per known risk level. Unknown levels
// are excluded.
type Distribution struct {
	Low      int `json:"low"`
	Medium   int `json:"medium"`
	High     int `json:"high"`
	Critical int `json:"critical"`
}

// BreakdownEC2 partitions EC2 assessments by EBS encryption and by
// public-IP exposure.
func BreakdownEC2(assessments []dashboard.Assessment) EC2Breakdown {
	var b EC2Breakdown
	for _, a := range assessments {
		if a.EBSEncryptionEnabled {
			b.Encrypted++
		} else {
			b.NotEncrypted++
		}
		if a.HasPublicIP {
			b.PublicAccess++
		} else {
			b.Restricted++
		}
	}
	return b
}

// BreakdownS3 partitions S3 assessments by default encryption and by
// public-access-block status.
func BreakdownS3(assessments []dashboard.Assessment) S3Breakdown {
	var b S3Breakdown
	for _, a := range assessments {
		if a.EncryptionEnabled {
			b.Encrypted++
		} else {
			b.NotEncrypted++
		}
		if a.PublicAccessBlockDisabled {
			b.PublicAccessAllowed++
		} else {
			b.Secured++
		}
	}
	return b
}

// RiskDistribution buckets the concatenation of both categories, in
// original order, by risk level. Entries outside the four known levels
// are silently skipped.
func RiskDistribution(ec2, s3 []dashboard.Assessment) Distribution {
	var d Distribution
	for _, list := range [][]dashboard.Assessment{ec2, s3} {
		for _, a := range list {
			switch a.RiskLevel {
			case dashboard.RiskLow:
				d.Low++
			case dashboard.RiskMedium:
				d.Medium++
			case dashboard.RiskHigh:
				d.High++
			case dashboard.RiskCritical:
				d.Critical++
			}
		}
	}
	return d
}

// CountCritical counts Critical assessments across both categories.
func CountCritical(ec2, s3 []dashboard.Assessment) int {
	n := 0
	for _, list := range [][]dashboard.Assessment{ec2, s3} {
		for _, a := range list {
			if a.RiskLevel == dashboard.RiskCritical {
				n++
			}
		}
	}
	return n
}
