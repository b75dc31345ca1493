package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/battscan/battscan/pkg/client"
)

var (
	logLevel       = "info"
	unixSocketPath = "/var/run/battscan.sock"
	configPath     = "/etc/battscan.json"
)

var (
	gBasic        = "Basic:"
	gAdvanced     = "Advanced:"
	commandGroups = []string{
		gBasic,
		gAdvanced,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	if errors.Is(err, client.ErrDaemonNotRunning) {
		fmt.Fprintln(os.Stderr, "\nError: battscan daemon is not running")
		fmt.Fprintln(os.Stderr, "Start it with 'battscan serve' or drop the --remote flag to analyze locally.")
	} else if errors.Is(err, client.ErrPermissionDenied) {
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Try running the command again with 'sudo'")
		fmt.Fprintln(os.Stderr, "  - Or point --socket at a socket your user can access")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "battscan",
		Short: "battscan analyzes EV battery health from diagnostic snapshots",
		Long: `battscan turns raw EV battery telemetry into a structured health report:
capacity-based health scoring, charge-cycle counting, anomaly detection,
degradation-rate estimation, and a data-quality confidence score.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	for _, g := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    g,
			Title: g,
		})
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&logLevel, "log-level", "l", logLevel, "log level (trace, debug, info, warn, error)")

	cmd.AddCommand(
		NewAnalyzeCommand(),
		NewDemoCommand(),
		NewServeCommand(),
		NewThresholdsCommand(),
		NewVersionCommand(),
	)

	return cmd
}
