package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/skiffworks/skiff/config"
	"github.com/skiffworks/skiff/providers"
	awsprovider "github.com/skiffworks/skiff/providers/aws"
	"github.com/skiffworks/skiff/provision"
)

var (
	upConfigPath  string
	upWaitTimeout time.Duration
	upDebug       bool
)

// upCmd represents the up command
var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Provision the security group and instances from the config file",
	Long: `Run the provisioning sequence described by the config file:

1. Resolve the account's default VPC (fails if there is none)
2. Find or create the named security group, opening TCP 22 and 80
3. Launch the requested batch of instances in one call
4. Wait until every instance is running, then resolve public IPs
5. Print the summary and the manual teardown instructions

An existing security group is reused as-is; its rules are not
re-verified. Any failure aborts the run with a non-zero exit and
leaves already-created resources behind for the operator.`,
	Example: `  skiff up
  skiff up --config staging.yaml
  skiff up --wait-timeout 20m`,
	RunE: runUp,
}

func init() {
	rootCmd.AddCommand(upCmd)

	upCmd.Flags().StringVarP(&upConfigPath, "config", "c", config.DefaultPath, "Path to the provisioning config file")
	upCmd.Flags().DurationVar(&upWaitTimeout, "wait-timeout", 0, "Override wait_timeout from the config file")
	upCmd.Flags().BoolVar(&upDebug, "debug", false, "Enable debug logging")
}

func runUp(cmd *cobra.Command, args []string) error {
	logger := newLogger(upDebug)

	cfg, err := config.Load(upConfigPath)
	if err != nil {
		return err
	}
	if upWaitTimeout > 0 {
		cfg.WaitTimeout = upWaitTimeout
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	provider, err := awsprovider.NewProvider(ctx, cfg.AWSRegion)
	if err != nil {
		return err
	}

	logger.Info().
		Str("region", cfg.AWSRegion).
		Str("image_id", cfg.AMIID).
		Str("instance_type", cfg.InstanceType).
		Int("instance_count", cfg.InstanceCount).
		Msg("skiff starting")

	workflow := provision.NewWorkflow(provider, cfg, logger)
	workflow.Progress = newSpinnerProgress()

	report, err := workflow.Run(ctx)
	if err != nil {
		var launchErr *providers.LaunchError
		if errors.As(err, &launchErr) && launchErr.Hint != "" {
			logger.Error().Msg(launchErr.Hint)
		}
		return err
	}

	fmt.Println()
	report.Render(os.Stdout)
	fmt.Println()
	report.RenderCleanup(os.Stdout)

	return nil
}
