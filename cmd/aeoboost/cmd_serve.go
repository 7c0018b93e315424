package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aeobooster/aeobooster/internal/projectconfig"
	"github.com/aeobooster/aeobooster/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var port int
	var resultsDir string
	var projectsDir string
	var allowedOrigins []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server over stored analysis results.

The server reads result JSON files from the results directory and exposes
them as a REST API, including rendered HTML reports and project
management endpoints. The server binds to loopback only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := projectconfig.Load(".")
			if err != nil {
				return err
			}

			if port == 0 {
				port = cfg.Server.Port
			}
			if resultsDir == "" {
				resultsDir = cfg.Server.ResultsDir
			}
			if resultsDir == "" {
				resultsDir = cfg.Paths.Results
			}
			if projectsDir == "" {
				projectsDir = cfg.Paths.Projects
			}
			if len(allowedOrigins) == 0 {
				allowedOrigins = cfg.Server.AllowedOrigins
			}

			srv, err := webserver.New(webserver.Config{
				Port:           port,
				ResultsDir:     resultsDir,
				ProjectsDir:    projectsDir,
				AllowedOrigins: allowedOrigins,
				Logger:         slog.Default(),
			})
			if err != nil {
				return err
			}

			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default: 3000)")
	cmd.Flags().StringVar(&resultsDir, "results-dir", "", "Directory containing result JSON files")
	cmd.Flags().StringVar(&projectsDir, "projects-dir", "", "Directory for stored projects")
	cmd.Flags().StringArrayVar(&allowedOrigins, "allow-origin", nil, "CORS origin to allow (can be repeated)")

	return cmd
}
