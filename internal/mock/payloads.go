// Package mock provides the deterministic fallback payloads the data
// source adapter substitutes when the posture API is unreachable. The
// fixtures double as offline/demo data.
package mock

import "github.com/ppiankov/awsposture/internal/dashboard"

// Payload returns the fallback payload for a recognized endpoint name,
// or nil for an unrecognized one. Each call returns a fresh copy so
// callers can mutate their snapshot freely.
func Payload(endpoint string) *dashboard.DashboardPayload {
	switch endpoint {
	case "dashboard":
		return full()
	case "assessments":
		p := full()
		p.Summary = dashboard.Summary{}
		p.Recommendations = nil
		return dashboard.Normalize(p)
	case "recommendations":
		return dashboard.Normalize(&dashboard.DashboardPayload{
			Recommendations: recommendations(),
		})
	case "security-scores":
		p := full()
		return dashboard.Normalize(&dashboard.DashboardPayload{Summary: p.Summary})
	default:
		return nil
	}
}

func full() *dashboard.DashboardPayload {
	ec2 := ec2Assessments()
	s3 := s3Assessments()
	return dashboard.Normalize(&dashboard.DashboardPayload{
		Summary: dashboard.Summary{
			EC2: dashboard.CategorySummary{AverageScore: 56.7, Count: len(ec2)},
			S3:  dashboard.CategorySummary{AverageScore: 70.0, Count: len(s3)},
		},
		EC2:             dashboard.AssessmentGroup{Assessments: ec2},
		S3:              dashboard.AssessmentGroup{Assessments: s3},
		Recommendations: recommendations(),
	})
}

func ec2Assessments() []dashboard.Assessment {
	return []dashboard.Assessment{
		{
			ResourceID:           "i-0f3a9c2d1e8b7a654",
			InstanceName:         "web-frontend-1",
			Region:               "us-east-1",
			SecurityScore:        85,
			RiskLevel:            dashboard.RiskLow,
			Issues:               []string{},
			EBSEncryptionEnabled: true,
			State:                "running",
		},
		{
			ResourceID:    "i-0b1c2d3e4f5a69780",
			InstanceName:  "batch-worker-3",
			Region:        "us-east-1",
			SecurityScore: 55,
			RiskLevel:     dashboard.RiskHigh,
			Issues: []string{
				"EBS volumes are not encrypted",
				"Instance has a public IP address",
			},
			HasPublicIP: true,
			State:       "running",
		},
		{
			ResourceID:    "i-0d9e8f7a6b5c43210",
			InstanceName:  "legacy-jenkins",
			Region:        "eu-west-1",
			SecurityScore: 30,
			RiskLevel:     dashboard.RiskCritical,
			Issues: []string{
				"EBS volumes are not encrypted",
				"Instance has a public IP address",
				"Security group allows SSH from 0.0.0.0/0",
				"IMDSv1 is allowed",
			},
			HasPublicIP: true,
			State:       "stopped",
		},
	}
}

func s3Assessments() []dashboard.Assessment {
	return []dashboard.Assessment{
		{
			ResourceID:        "app-access-logs",
			BucketName:        "app-access-logs",
			SecurityScore:     100,
			RiskLevel:         dashboard.RiskLow,
			Issues:            []string{},
			EncryptionEnabled: true,
		},
		{
			ResourceID:    "marketing-assets-public",
			BucketName:    "marketing-assets-public",
			SecurityScore: 40,
			RiskLevel:     dashboard.RiskHigh,
			Issues: []string{
				"Default encryption is not enabled",
				"Public access block is disabled",
			},
			PublicAccessBlockDisabled: true,
		},
	}
}

func recommendations() []dashboard.RecommendationRecord {
	return []dashboard.RecommendationRecord{
		{
			Title:        "Encrypt EBS volumes",
			Description:  "Enable EBS encryption by default and re-create unencrypted volumes from encrypted snapshots.",
			Priority:     dashboard.PriorityHigh,
			Issue:        "EBS volumes are not encrypted",
			ResourceType: "EC2",
		},
		{
			Title:        "Restrict SSH exposure",
			Description:  "Limit inbound SSH to known CIDR ranges or move access behind SSM Session Manager.",
			Priority:     dashboard.PriorityHigh,
			Issue:        "Security group allows SSH from 0.0.0.0/0",
			ResourceType: "EC2",
		},
		{
			Title:        "Enable S3 public access block",
			Description:  "Turn on the account-level public access block and audit bucket policies.",
			Priority:     dashboard.PriorityMedium,
			Issue:        "Public access block is disabled",
			ResourceType: "S3",
		},
	}
}
