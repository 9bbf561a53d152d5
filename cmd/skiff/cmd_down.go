package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	awsprovider "github.com/skiffworks/skiff/providers/aws"
	"github.com/skiffworks/skiff/provision"
)

var (
	downRegion      string
	downInstanceIDs []string
	downGroupID     string
	downGrace       time.Duration
	downWaitTimeout time.Duration
	downDebug       bool
)

// downCmd represents the down command
var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Terminate instances and delete the security group (best effort)",
	Long: `Tear down resources a previous "skiff up" created: terminate the
named instances, wait until they report terminated, pause while the
provider detaches them, then delete the security group.

Teardown is best effort. Failures are reported and the remaining
actions still run; the command exits zero either way.`,
	Example: `  skiff down --region us-east-1 --instances i-0abc123,i-0def456 --security-group sg-0123456
  skiff down --region us-east-1 --security-group sg-0123456`,
	RunE: runDown,
}

func init() {
	rootCmd.AddCommand(downCmd)

	downCmd.Flags().StringVar(&downRegion, "region", "", "AWS region the resources live in")
	downCmd.Flags().StringSliceVar(&downInstanceIDs, "instances", nil, "Instance IDs to terminate")
	downCmd.Flags().StringVar(&downGroupID, "security-group", "", "Security group ID to delete")
	downCmd.Flags().DurationVar(&downGrace, "grace", provision.DefaultGracePeriod, "Pause between termination and the group delete")
	downCmd.Flags().DurationVar(&downWaitTimeout, "wait-timeout", 0, "Upper bound on the terminated-state wait")
	downCmd.Flags().BoolVar(&downDebug, "debug", false, "Enable debug logging")

	_ = downCmd.MarkFlagRequired("region")
}

func runDown(cmd *cobra.Command, args []string) error {
	if len(downInstanceIDs) == 0 && downGroupID == "" {
		return fmt.Errorf("nothing to reclaim: pass --instances and/or --security-group")
	}

	logger := newLogger(downDebug)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	provider, err := awsprovider.NewProvider(ctx, downRegion)
	if err != nil {
		return err
	}

	reclaimer := provision.NewReclaimer(provider, logger, downGrace, downWaitTimeout)
	reclaimer.Progress = newSpinnerProgress()

	if failures := reclaimer.Run(ctx, downInstanceIDs, downGroupID); failures > 0 {
		logger.Warn().Int("failures", failures).
			Msg("teardown finished with failures; check the remaining resources in the AWS console")
	} else {
		logger.Info().Msg("teardown complete")
	}

	return nil
}
