package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/corvid-labs/novelty/diagnostics"
)

var (
	serveAddr      string
	serveHistoryDB string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "address to listen on")
	serveCmd.Flags().StringVar(&serveHistoryDB, "history", "", "optional sqlite run-history path; opened and migrated at startup, not exposed over HTTP")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the live diagnostics dashboard and metrics endpoint",
	RunE:  serveRunE,
}

func serveRunE(cmd *cobra.Command, args []string) error {
	hub := diagnostics.NewHub()
	srv := diagnostics.NewServer(hub)

	if serveHistoryDB != "" {
		store, err := diagnostics.Open(serveHistoryDB)
		if err != nil {
			return fmt.Errorf("noveltyctl serve: %w", err)
		}
		defer store.Close()
	}

	fmt.Fprintf(os.Stdout, "noveltyctl serve: listening on %s (/ws, /metrics, /healthz)\n", serveAddr)

	httpServer := &http.Server{
		Addr:              serveAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return httpServer.ListenAndServe()
}
