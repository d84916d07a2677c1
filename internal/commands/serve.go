package commands

import (
	"log/slog"

	"github.com/ppiankov/awsposture/internal/server"
	"github.com/ppiankov/awsposture/internal/store"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	addr   string
	dbPath string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the posture API server",
	Long: `Serve the posture API: four read endpoints for dashboard payloads and
two write endpoints for persisting assessments and recommendations.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "", "Listen address (default: :8080)")
	serveCmd.Flags().StringVar(&serveFlags.dbPath, "db", "", "Database path (default: posture.db)")
}

func runServe(_ *cobra.Command, _ []string) error {
	addr := serveFlags.addr
	if addr == "" {
		addr = cfg.ListenAddr
	}
	if addr == "" {
		addr = ":8080"
	}

	dbPath := serveFlags.dbPath
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if dbPath == "" {
		dbPath = "posture.db"
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return enhanceError("open store", err)
	}
	defer st.Close()

	slog.Info("Opened posture store", "path", dbPath)
	return server.New(st, addr).ListenAndServe()
}
