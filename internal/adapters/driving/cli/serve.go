package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kotae-cli/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Serves retrieval and answering over HTTP:

  GET  /api/search?q=   retrieval only
  POST /api/ask         grounded answer
  GET  /api/history     recent searches
  GET  /healthz         liveness`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search is not configured. Run 'kotae auth set-token' to store your Notion token")
	}

	addr := serveAddr
	if addr == "" && settingsStore != nil {
		addr = settingsStore.Settings().Server.Addr
	}
	if addr == "" {
		addr = "127.0.0.1:8765"
	}

	live := newLiveServices(currentServiceSet())
	live.watchSettings(cmd.Context())

	server := httpapi.NewServer(addr, httpapi.Ports{
		Search:  live,
		Answer:  live,
		History: live,
	})

	return server.Run(cmd.Context())
}
