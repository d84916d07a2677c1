package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initFlags struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate sample config and IAM policy",
	Long:  `Creates a sample .awsposture.yaml config file and an IAM policy JSON file for read-only posture collection.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite existing files")
}

func runInit(_ *cobra.Command, _ []string) error {
	configPath := ".awsposture.yaml"
	policyPath := "awsposture-policy.json"

	if err := writeIfNotExists(configPath, sampleConfig, initFlags.force); err != nil {
		return err
	}
	if err := writeIfNotExists(policyPath, sampleIAMPolicy, initFlags.force); err != nil {
		return err
	}

	fmt.Printf("Created %s and %s\n", configPath, policyPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit .awsposture.yaml to customize settings")
	fmt.Println("  2. Apply awsposture-policy.json to your AWS IAM role/user")
	fmt.Println("  3. Run: awsposture serve")
	fmt.Println("  4. Run: awsposture collect --post")
	fmt.Println("  5. Run: awsposture show --watch")
	return nil
}

func writeIfNotExists(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Skipping %s (already exists, use --force to overwrite)\n", path)
			return nil
		}
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

const sampleConfig = `# awsposture configuration

# Posture API base URL used by 'show' and 'collect --post'
base_url: http://localhost:8080

# Listen address for 'serve'
listen_addr: ":8080"

# Sqlite database path for 'serve'
db_path: posture.db

# Dashboard refresh interval for 'show --watch'
refresh_interval: 5m

# AWS profile (or set AWS_PROFILE env var)
# profile: default

# Regions to collect from (default: all enabled regions)
# regions:
#   - us-east-1
#   - eu-west-1

# Per-request timeout
timeout: 30s
`

const sampleIAMPolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Sid": "AwsPostureReadOnly",
      "Effect": "Allow",
      "Action": [
        "ec2:DescribeInstances",
        "ec2:DescribeVolumes",
        "ec2:DescribeSecurityGroups",
        "ec2:DescribeRegions",
        "s3:ListAllMyBuckets",
        "s3:GetEncryptionConfiguration",
        "s3:GetBucketPolicyStatus",
        "s3:GetBucketPublicAccessBlock",
        "sts:GetCallerIdentity"
      ],
      "Resource": "*"
    }
  ]
}
`
