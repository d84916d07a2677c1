package collector

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"
)

// Collector orchestrates posture collection across regions. EC2 runs
// per region; S3 bucket listing is account-wide and runs once.
type Collector struct {
	client      *Client
	regions     []string
	concurrency int
}

// New creates a collector for the given regions.
func New(client *Client, regions []string, concurrency int) *Collector {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Collector{client: client, regions: regions, concurrency: concurrency}
}

// Collect runs all collectors. Per-region failures are recorded and
// absorbed so one broken region does not sink the run.
func (c *Collector) Collect(ctx context.Context) (*Result, error) {
	var (
		mu     sync.Mutex
		result Result
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for _, region := range c.regions {
		g.Go(func() error {
			slog.Info("Collecting EC2 posture", "region", region)
			ec2c := NewEC2Collector(ec2.NewFromConfig(c.client.ConfigForRegion(region)), region)
			assessments, err := ec2c.Collect(ctx)
			if err != nil {
				mu.Lock()
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", region, err))
				mu.Unlock()
				slog.Warn("EC2 collection failed", "region", region, "error", err)
				return nil // don't abort other regions
			}

			mu.Lock()
			result.EC2 = append(result.EC2, assessments...)
			mu.Unlock()
			return nil
		})
	}

	g.Go(func() error {
		slog.Info("Collecting S3 posture")
		s3c := NewS3Collector(s3.NewFromConfig(c.client.Config()))
		assessments, err := s3c.Collect(ctx)
		if err != nil {
			mu.Lock()
			result.Errors = append(result.Errors, fmt.Sprintf("s3: %v", err))
			mu.Unlock()
			slog.Warn("S3 collection failed", "error", err)
			return nil
		}

		mu.Lock()
		result.S3 = append(result.S3, assessments...)
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Recommendations = Recommend(result.EC2, result.S3)
	result.ResourcesScanned = len(result.EC2) + len(result.S3)
	result.RegionsScanned = len(c.regions)
	return &result, nil
}
