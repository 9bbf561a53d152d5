package main

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	rootCmd = &cobra.Command{
		Use:   "skiff",
		Short: "Ad-hoc EC2 provisioner",
		Long: `Skiff - Ad-hoc EC2 provisioner

Skiff reads one declarative config file and provisions a security
group plus a batch of EC2 instances in your account's default VPC.

It keeps no state: once a run finishes, the provider's inventory is
the only record of what was created. The summary tells you exactly
how to tear everything down again.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the root command
func init() {
	rootCmd.SetVersionTemplate(`Skiff {{.Version}} - Ad-hoc EC2 provisioner
`)
}

// newLogger sets up console logging on stderr, keeping stdout clean
// for the summary block.
func newLogger(debug bool) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// spinnerProgress shows a terminal spinner while the SDK waiters poll.
type spinnerProgress struct {
	s *spinner.Spinner
}

func newSpinnerProgress() *spinnerProgress {
	return &spinnerProgress{
		s: spinner.New(spinner.CharSets[9], 200*time.Millisecond, spinner.WithWriter(os.Stderr)),
	}
}

func (p *spinnerProgress) Start(message string) {
	p.s.Suffix = fmt.Sprintf(" %s ...", message)
	p.s.Start()
}

func (p *spinnerProgress) Stop() {
	p.s.Stop()
}
