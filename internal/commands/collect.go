package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ppiankov/awsposture/internal/client"
	"github.com/ppiankov/awsposture/internal/collector"
	"github.com/ppiankov/awsposture/internal/dashboard"
	"github.com/spf13/cobra"
)

var collectFlags struct {
	regions    []string
	allRegions bool
	post       bool
	baseURL    string
	timeout    time.Duration
}

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Assess live AWS resources",
	Long: `Collect security posture assessments for EC2 instances and S3 buckets.
Results are printed as JSON, or pushed to the posture API with --post.`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringSliceVar(&collectFlags.regions, "regions", nil, "Comma-separated region filter")
	collectCmd.Flags().BoolVar(&collectFlags.allRegions, "all-regions", true, "Collect from all enabled regions")
	collectCmd.Flags().BoolVar(&collectFlags.post, "post", false, "Push results to the posture API")
	collectCmd.Flags().StringVar(&collectFlags.baseURL, "api", "", "Posture API base URL for --post (default: http://localhost:8080)")
	collectCmd.Flags().DurationVar(&collectFlags.timeout, "timeout", 10*time.Minute, "Collection timeout")
}

func runCollect(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if collectFlags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, collectFlags.timeout)
		defer cancel()
	}

	prof := profile
	if prof == "" {
		prof = cfg.Profile
	}

	awsClient, err := collector.NewClient(ctx, prof, "")
	if err != nil {
		return enhanceError("initialize AWS client", err)
	}

	regions, err := resolveRegions(ctx, awsClient)
	if err != nil {
		return enhanceError("resolve regions", err)
	}
	slog.Info("Collecting posture", "regions", regions)

	result, err := collector.New(awsClient, regions, 4).Collect(ctx)
	if err != nil {
		return enhanceError("collect assessments", err)
	}

	if collectFlags.post {
		return pushResult(ctx, result)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func pushResult(ctx context.Context, result *collector.Result) error {
	baseURL := collectFlags.baseURL
	if baseURL == "" {
		baseURL = cfg.BaseURL
	}
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	api := client.New(baseURL, 30*time.Second)

	for _, a := range result.EC2 {
		if err := api.PutAssessment(ctx, dashboard.CategoryEC2, a); err != nil {
			return fmt.Errorf("push EC2 assessment %s: %w", a.ResourceID, err)
		}
	}
	for _, a := range result.S3 {
		if err := api.PutAssessment(ctx, dashboard.CategoryS3, a); err != nil {
			return fmt.Errorf("push S3 assessment %s: %w", a.ResourceID, err)
		}
	}
	for _, r := range result.Recommendations {
		if err := api.PutRecommendation(ctx, r); err != nil {
			return fmt.Errorf("push recommendation %q: %w", r.Title, err)
		}
	}

	slog.Info("Pushed collection results",
		"ec2", len(result.EC2), "s3", len(result.S3),
		"recommendations", len(result.Recommendations),
		"errors", len(result.Errors))
	return nil
}

func resolveRegions(ctx context.Context, awsClient *collector.Client) ([]string, error) {
	if len(collectFlags.regions) > 0 {
		return collectFlags.regions, nil
	}

	if len(cfg.Regions) > 0 {
		return cfg.Regions, nil
	}

	if collectFlags.allRegions {
		return awsClient.ListEnabledRegions(ctx)
	}

	region := awsClient.Config().Region
	if region == "" {
		return nil, fmt.Errorf("no region specified; use --regions, --all-regions, or set AWS_REGION")
	}
	return []string{region}, nil
}
