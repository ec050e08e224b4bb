package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/rebuttal/internal/api"
	"github.com/sprite-ai/rebuttal/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the recommendation and letter engine.

Endpoints:
  GET  /healthz              Health check
  POST /v1/recommendations   Evidence checklist for a case
  POST /v1/cover-letters     Cover letter and attachment list for a case
  GET  /v1/sessions/ws       WebSocket for live dispute sessions`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "", "address to listen on (default from config)")
	serveCmd.Flags().IntP("port", "p", 0, "port to listen on (default from config)")
	serveCmd.Flags().String("dir", ".", "directory websocket sessions load case files from")
}

func runServe(cmd *cobra.Command, args []string) error {
	server := cfg.Server
	if cmd.Flags().Changed("addr") {
		server.Addr, _ = cmd.Flags().GetString("addr")
	}
	if cmd.Flags().Changed("port") {
		server.Port, _ = cmd.Flags().GetInt("port")
	}
	dir, _ := cmd.Flags().GetString("dir")

	srv := api.New(server.Address(), api.Options{
		MatrixEnabled: cfg.MatrixEnabled,
		Account:       cfg.Account,
		Store:         &store.Files{Dir: dir},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}
