package collector

import (
	"context"
	"errors"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/ppiankov/awsposture/internal/dashboard"
)

type mockS3Client struct {
	buckets   []string
	encrypted map[string]bool
	public    map[string]bool
	pab       map[string]*s3types.PublicAccessBlockConfiguration
}

func (m *mockS3Client) ListBuckets(_ context.Context, _ *s3.ListBucketsInput, _ ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	out := &s3.ListBucketsOutput{}
	for _, name := range m.buckets {
		out.Buckets = append(out.Buckets, s3types.Bucket{Name: awssdk.String(name)})
	}
	return out, nil
}

func (m *mockS3Client) GetBucketEncryption(_ context.Context, input *s3.GetBucketEncryptionInput, _ ...func(*s3.Options)) (*s3.GetBucketEncryptionOutput, error) {
	if !m.encrypted[awssdk.ToString(input.Bucket)] {
		return nil, errors.New("ServerSideEncryptionConfigurationNotFoundError")
	}
	return &s3.GetBucketEncryptionOutput{
		ServerSideEncryptionConfiguration: &s3types.ServerSideEncryptionConfiguration{
			Rules: []s3types.ServerSideEncryptionRule{{}},
		},
	}, nil
}

func (m *mockS3Client) GetBucketPolicyStatus(_ context.Context, input *s3.GetBucketPolicyStatusInput, _ ...func(*s3.Options)) (*s3.GetBucketPolicyStatusOutput, error) {
	public, ok := m.public[awssdk.ToString(input.Bucket)]
	if !ok {
		return nil, errors.New("NoSuchBucketPolicy")
	}
	return &s3.GetBucketPolicyStatusOutput{
		PolicyStatus: &s3types.PolicyStatus{IsPublic: awssdk.Bool(public)},
	}, nil
}

func (m *mockS3Client) GetPublicAccessBlock(_ context.Context, input *s3.GetPublicAccessBlockInput, _ ...func(*s3.Options)) (*s3.GetPublicAccessBlockOutput, error) {
	cfg, ok := m.pab[awssdk.ToString(input.Bucket)]
	if !ok {
		return nil, errors.New("NoSuchPublicAccessBlockConfiguration")
	}
	return &s3.GetPublicAccessBlockOutput{PublicAccessBlockConfiguration: cfg}, nil
}

func fullBlock() *s3types.PublicAccessBlockConfiguration {
	return &s3types.PublicAccessBlockConfiguration{
		BlockPublicAcls:       awssdk.Bool(true),
		BlockPublicPolicy:     awssdk.Bool(true),
		IgnorePublicAcls:      awssdk.Bool(true),
		RestrictPublicBuckets: awssdk.Bool(true),
	}
}

func TestS3Collector_SecureBucket(t *testing.T) {
	mock := &mockS3Client{
		buckets:   []string{"app-logs"},
		encrypted: map[string]bool{"app-logs": true},
		pab:       map[string]*s3types.PublicAccessBlockConfiguration{"app-logs": fullBlock()},
	}

	c := NewS3Collector(mock)
	assessments, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assessments) != 1 {
		t.Fatalf("expected 1 assessment, got %d", len(assessments))
	}

	a := assessments[0]
	if a.SecurityScore != 100 || a.RiskLevel != dashboard.RiskLow {
		t.Fatalf("unexpected score/risk: %v/%s", a.SecurityScore, a.RiskLevel)
	}
	if !a.EncryptionEnabled || a.PublicAccessBlockDisabled {
		t.Fatalf("unexpected flags: %+v", a)
	}
}

func TestS3Collector_ExposedBucket(t *testing.T) {
	mock := &mockS3Client{
		buckets: []string{"public-dump"},
		public:  map[string]bool{"public-dump": true},
	}

	c := NewS3Collector(mock)
	assessments, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := assessments[0]
	if len(a.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %v", a.Issues)
	}
	// 100 - 30 - 35 - 25 = 10
	if a.SecurityScore != 10 || a.RiskLevel != dashboard.RiskCritical {
		t.Fatalf("unexpected score/risk: %v/%s", a.SecurityScore, a.RiskLevel)
	}
	if a.EncryptionEnabled || !a.PublicAccessBlockDisabled {
		t.Fatalf("unexpected flags: %+v", a)
	}
}

func TestS3Collector_PartialPublicAccessBlock(t *testing.T) {
	partial := fullBlock()
	partial.BlockPublicPolicy = awssdk.Bool(false)
	mock := &mockS3Client{
		buckets:   []string{"partial"},
		encrypted: map[string]bool{"partial": true},
		pab:       map[string]*s3types.PublicAccessBlockConfiguration{"partial": partial},
	}

	c := NewS3Collector(mock)
	assessments, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !assessments[0].PublicAccessBlockDisabled {
		t.Fatal("partially enabled block must count as disabled")
	}
}

func TestS3Collector_NoBuckets(t *testing.T) {
	c := NewS3Collector(&mockS3Client{})
	assessments, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assessments) != 0 {
		t.Fatalf("expected no assessments, got %d", len(assessments))
	}
}
