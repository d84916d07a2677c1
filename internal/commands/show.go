package commands

import (
	"time"

	"github.com/ppiankov/awsposture/internal/client"
	"github.com/ppiankov/awsposture/internal/refresh"
	"github.com/ppiankov/awsposture/internal/ui"
	"github.com/spf13/cobra"
)

var showFlags struct {
	baseURL  string
	tab      string
	watch    bool
	interval time.Duration
	timeout  time.Duration
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Render the posture dashboard in the terminal",
	Long: `Fetch the dashboard payload and render KPI cards, risk distribution,
and assessment cards. With --watch the dashboard refreshes on a fixed
interval until interrupted. If the API is unreachable, sample data is
shown instead.`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&showFlags.baseURL, "api", "", "Posture API base URL (default: http://localhost:8080)")
	showCmd.Flags().StringVar(&showFlags.tab, "tab", "ec2", "Assessment tab to focus: ec2 or s3")
	showCmd.Flags().BoolVar(&showFlags.watch, "watch", false, "Keep refreshing on the configured interval")
	showCmd.Flags().DurationVar(&showFlags.interval, "interval", 0, "Refresh interval for --watch (default: 5m)")
	showCmd.Flags().DurationVar(&showFlags.timeout, "timeout", 30*time.Second, "Per-request timeout")
}

func runShow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	baseURL := showFlags.baseURL
	if baseURL == "" {
		baseURL = cfg.BaseURL
	}
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	interval := showFlags.interval
	if interval == 0 {
		interval = cfg.RefreshIntervalDuration()
	}

	src := client.New(baseURL, showFlags.timeout)
	session := refresh.NewSession(src, ui.NewTerminal(), interval)

	if showFlags.tab == "s3" {
		// Set before the first render; no snapshot exists yet.
		_ = session.SwitchTab(refresh.TabS3)
	}

	if showFlags.watch {
		return session.Run(ctx)
	}
	return session.RefreshOnce(ctx)
}
