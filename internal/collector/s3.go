package collector

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ppiankov/awsposture/internal/dashboard"
)

// S3API is the minimal interface for S3 posture collection.
type S3API interface {
	ListBuckets(ctx context.Context, input *s3.ListBucketsInput, opts ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	GetBucketEncryption(ctx context.Context, input *s3.GetBucketEncryptionInput, opts ...func(*s3.Options)) (*s3.GetBucketEncryptionOutput, error)
	GetBucketPolicyStatus(ctx context.Context, input *s3.GetBucketPolicyStatusInput, opts ...func(*s3.Options)) (*s3.GetBucketPolicyStatusOutput, error)
	GetPublicAccessBlock(ctx context.Context, input *s3.GetPublicAccessBlockInput, opts ...func(*s3.Options)) (*s3.GetPublicAccessBlockOutput, error)
}

// S3Collector assesses the security posture of S3 buckets. Bucket
// listing is account-wide, so one collector covers all regions.
type S3Collector struct {
	client S3API
}

// NewS3Collector creates a collector for S3 buckets.
func NewS3Collector(client S3API) *S3Collector {
	return &S3Collector{client: client}
}

// Collect examines every bucket in the account and scores it.
func (c *S3Collector) Collect(ctx context.Context) ([]dashboard.Assessment, error) {
	out, err := c.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("list S3 buckets: %w", err)
	}

	assessments := make([]dashboard.Assessment, 0, len(out.Buckets))
	for _, bucket := range out.Buckets {
		name := awssdk.ToString(bucket.Name)
		if name == "" {
			continue
		}
		assessments = append(assessments, c.assess(ctx, name))
	}
	return assessments, nil
}

func (c *S3Collector) assess(ctx context.Context, name string) dashboard.Assessment {
	var issues []string

	encrypted := c.encryptionEnabled(ctx, name)
	if !encrypted {
		issues = append(issues, IssueNoDefaultEncryption)
	}

	if c.policyPublic(ctx, name) {
		issues = append(issues, IssuePublicPolicy)
	}

	pabDisabled := c.publicAccessBlockDisabled(ctx, name)
	if pabDisabled {
		issues = append(issues, IssuePABDisabled)
	}

	score, risk := scoreIssues(issues)

	return dashboard.Assessment{
		ResourceID:                name,
		BucketName:                name,
		SecurityScore:             score,
		RiskLevel:                 risk,
		Issues:                    issues,
		EncryptionEnabled:         encrypted,
		PublicAccessBlockDisabled: pabDisabled,
	}
}

// encryptionEnabled reports whether default server-side encryption is
// configured. A missing configuration surfaces as an error from the
// API and counts as not encrypted.
func (c *S3Collector) encryptionEnabled(ctx context.Context, name string) bool {
	out, err := c.client.GetBucketEncryption(ctx, &s3.GetBucketEncryptionInput{
		Bucket: awssdk.String(name),
	})
	if err != nil || out.ServerSideEncryptionConfiguration == nil {
		return false
	}
	return len(out.ServerSideEncryptionConfiguration.Rules) > 0
}

// policyPublic reports whether the bucket policy is public. Buckets
// without a policy error out of GetBucketPolicyStatus and are treated
// as not public, matching the conservative no-false-positives stance.
func (c *S3Collector) policyPublic(ctx context.Context, name string) bool {
	out, err := c.client.GetBucketPolicyStatus(ctx, &s3.GetBucketPolicyStatusInput{
		Bucket: awssdk.String(name),
	})
	if err != nil || out.PolicyStatus == nil {
		return false
	}
	return awssdk.ToBool(out.PolicyStatus.IsPublic)
}

// publicAccessBlockDisabled reports whether any of the four public
// access block settings is off. A missing configuration means the
// block is not enforced at all.
func (c *S3Collector) publicAccessBlockDisabled(ctx context.Context, name string) bool {
	out, err := c.client.GetPublicAccessBlock(ctx, &s3.GetPublicAccessBlockInput{
		Bucket: awssdk.String(name),
	})
	if err != nil || out.PublicAccessBlockConfiguration == nil {
		return true
	}
	cfg := out.PublicAccessBlockConfiguration
	return !(awssdk.ToBool(cfg.BlockPublicAcls) &&
		awssdk.ToBool(cfg.BlockPublicPolicy) &&
		awssdk.ToBool(cfg.IgnorePublicAcls) &&
		awssdk.ToBool(cfg.RestrictPublicBuckets))
}
