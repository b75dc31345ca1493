package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/battscan/battscan/pkg/daemon"
	"github.com/battscan/battscan/pkg/version"
)

// NewServeCommand runs the report API daemon in the foreground.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: gAdvanced,
		Short:   "Run the battscan daemon in the foreground",
		Long: `Serve the report API on a unix socket. POST a VehicleDiagnosticData JSON
snapshot to /analyze to receive a BatteryHealthReport. Thresholds come from
the config file and can be tuned at runtime via PUT /thresholds; SIGHUP
reloads the config file.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("battscan daemon starting")
			return daemon.Run(configPath, unixSocketPath)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", configPath, "Path to the config file.")
	f.StringVar(&unixSocketPath, "socket", unixSocketPath, "Unix socket to listen on.")

	return cmd
}
