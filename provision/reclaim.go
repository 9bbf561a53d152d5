package provision

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/skiffworks/skiff/config"
	"github.com/skiffworks/skiff/providers"
)

// DefaultGracePeriod gives the provider time to detach terminated
// instances before the security group delete is attempted.
const DefaultGracePeriod = 10 * time.Second

// Reclaimer tears down what a previous run created. Every action is
// best-effort: a failure is logged and the remaining actions still run.
// This is the deliberate opposite of the provisioning path, where the
// first error is fatal.
type Reclaimer struct {
	// Progress mirrors Workflow.Progress. Optional.
	Progress Progress

	cloud       providers.Cloud
	logger      zerolog.Logger
	grace       time.Duration
	waitTimeout time.Duration
}

// NewReclaimer wires a reclaimer. Non-positive grace or waitTimeout
// fall back to the defaults.
func NewReclaimer(cloud providers.Cloud, logger zerolog.Logger, grace, waitTimeout time.Duration) *Reclaimer {
	if grace <= 0 {
		grace = DefaultGracePeriod
	}
	if waitTimeout <= 0 {
		waitTimeout = config.DefaultWaitTimeout
	}
	return &Reclaimer{cloud: cloud, logger: logger, grace: grace, waitTimeout: waitTimeout}
}

// Run terminates the instances, waits out the terminated state and the
// grace period, then deletes the security group. Returns the number of
// failed actions; the caller logs it and still exits zero.
func (r *Reclaimer) Run(ctx context.Context, instanceIDs []string, groupID string) int {
	failures := 0

	if len(instanceIDs) > 0 {
		r.logger.Info().Strs("instance_ids", instanceIDs).Msg("terminating instances")
		if err := r.cloud.TerminateInstances(ctx, instanceIDs); err != nil {
			r.logger.Error().Err(err).Msg("terminate failed")
			failures++
		} else {
			r.progress().Start("Waiting for instances to terminate")
			err := r.cloud.WaitTerminated(ctx, instanceIDs, r.waitTimeout)
			r.progress().Stop()
			if err != nil {
				r.logger.Error().Err(err).Msg("wait for terminated state failed")
				failures++
			} else {
				r.logger.Info().Msg("instances terminated")
			}
		}
	}

	if groupID != "" {
		r.sleep(ctx)
		r.logger.Info().Str("group_id", groupID).Msg("deleting security group")
		if err := r.cloud.DeleteSecurityGroup(ctx, groupID); err != nil {
			r.logger.Error().Err(err).Str("group_id", groupID).
				Msg("security group delete failed; instances may still be detaching, delete it manually")
			failures++
		} else {
			r.logger.Info().Str("group_id", groupID).Msg("security group deleted")
		}
	}

	return failures
}

// sleep waits out the detach grace period without ignoring cancellation.
func (r *Reclaimer) sleep(ctx context.Context) {
	timer := time.NewTimer(r.grace)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func (r *Reclaimer) progress() Progress {
	if r.Progress == nil {
		return nopProgress{}
	}
	return r.Progress
}
