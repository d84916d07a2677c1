package commands

import (
	"log/slog"

	"github.com/ppiankov/awsposture/internal/config"
	"github.com/ppiankov/awsposture/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	profile string
	version string
	commit  string
	date    string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "awsposture",
	Short: "awsposture - AWS security posture dashboard",
	Long: `awsposture assesses the security posture of EC2 instances and S3 buckets
and presents the results as a dashboard: KPI summaries, risk distributions,
and per-resource cards.

It ships a collector that scores live AWS resources, an API server that
stores and serves assessments, and a terminal dashboard that keeps itself
fresh on a fixed interval, falling back to sample data when the API is
unreachable.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)
		loaded, err := config.Load(".")
		if err != nil {
			slog.Warn("Failed to load config file", "error", err)
		} else {
			cfg = loaded
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "AWS profile name")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
