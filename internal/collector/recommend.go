package collector

import "github.com/ppiankov/awsposture/internal/dashboard"

// recommendationTemplates maps each issue string to its remediation
// record.
var recommendationTemplates = map[string]dashboard.RecommendationRecord{
	IssueUnencryptedEBS: {
		Title:        "Encrypt EBS volumes",
		Description:  "Enable EBS encryption by default for the region and migrate unencrypted volumes via encrypted snapshots.",
		Priority:     dashboard.PriorityHigh,
		Issue:        IssueUnencryptedEBS,
		ResourceType: "EC2",
	},
	IssuePublicIP: {
		Title:        "Review public IP exposure",
		Description:  "Move instances behind a load balancer or NAT gateway unless direct internet exposure is required.",
		Priority:     dashboard.PriorityMedium,
		Issue:        IssuePublicIP,
		ResourceType: "EC2",
	},
	IssueOpenSSH: {
		Title:        "Restrict SSH exposure",
		Description:  "Limit inbound SSH to known CIDR ranges or replace direct access with SSM Session Manager.",
		Priority:     dashboard.PriorityHigh,
		Issue:        IssueOpenSSH,
		ResourceType: "EC2",
	},
	IssueIMDSv1: {
		Title:        "Require IMDSv2",
		Description:  "Set HttpTokens to required so instance metadata is only reachable with session tokens.",
		Priority:     dashboard.PriorityMedium,
		Issue:        IssueIMDSv1,
		ResourceType: "EC2",
	},
	IssueNoDefaultEncryption: {
		Title:        "Enable S3 default encryption",
		Description:  "Configure SSE-S3 or SSE-KMS default encryption on the bucket.",
		Priority:     dashboard.PriorityHigh,
		Issue:        IssueNoDefaultEncryption,
		ResourceType: "S3",
	},
	IssuePublicPolicy: {
		Title:        "Remove public bucket policy",
		Description:  "Audit the bucket policy and drop statements granting access to all principals.",
		Priority:     dashboard.PriorityHigh,
		Issue:        IssuePublicPolicy,
		ResourceType: "S3",
	},
	IssuePABDisabled: {
		Title:        "Enable S3 public access block",
		Description:  "Turn on all four public access block settings for the bucket.",
		Priority:     dashboard.PriorityMedium,
		Issue:        IssuePABDisabled,
		ResourceType: "S3",
	},
}

// Recommend derives one recommendation per distinct issue observed
// across both categories, in first-seen order.
func Recommend(ec2, s3 []dashboard.Assessment) []dashboard.RecommendationRecord {
	seen := make(map[string]bool)
	var recs []dashboard.RecommendationRecord

	for _, list := range [][]dashboard.Assessment{ec2, s3} {
		for _, a := range list {
			for _, issue := range a.Issues {
				if seen[issue] {
					continue
				}
				seen[issue] = true
				if rec, ok := recommendationTemplates[issue]; ok {
					recs = append(recs, rec)
				}
			}
		}
	}
	return recs
}
