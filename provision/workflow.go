// Package provision drives the linear provisioning sequence: resolve
// the default network, ensure the security boundary, launch instances,
// wait for them, and report. Each step is one remote call; the first
// error stops the run and is returned to the caller, which decides how
// to terminate. Nothing here exits the process.
package provision

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/skiffworks/skiff/config"
	"github.com/skiffworks/skiff/providers"
)

// ProjectTag marks every instance skiff launches so the operator can
// find them later in the provider's inventory. Skiff keeps no state.
const ProjectTag = "skiff"

const (
	sshPort  int32 = 22
	httpPort int32 = 80
)

// Workflow runs the provisioning sequence top to bottom.
type Workflow struct {
	// Progress is notified around the long blocking waits so the CLI
	// can show a spinner while the SDK polls. Optional.
	Progress Progress

	cloud  providers.Cloud
	cfg    *config.Config
	logger zerolog.Logger
	now    func() time.Time
}

// NewWorkflow wires a workflow over a validated config.
func NewWorkflow(cloud providers.Cloud, cfg *config.Config, logger zerolog.Logger) *Workflow {
	return &Workflow{cloud: cloud, cfg: cfg, logger: logger, now: time.Now}
}

// Run executes the full sequence and returns the summary for rendering.
func (w *Workflow) Run(ctx context.Context) (*Report, error) {
	vpcID, err := w.cloud.DefaultVPC(ctx)
	if err != nil {
		return nil, fmt.Errorf("default VPC resolution failed: %w", err)
	}
	w.logger.Info().Str("vpc_id", vpcID).Msg("using default VPC")

	groupID, err := w.ensureSecurityGroup(ctx, vpcID)
	if err != nil {
		return nil, err
	}

	instanceIDs, err := w.launchInstances(ctx, groupID)
	if err != nil {
		return nil, err
	}

	w.logger.Info().Strs("instance_ids", instanceIDs).
		Dur("max_wait", w.cfg.WaitTimeout).
		Msg("waiting for instances to enter running state")
	w.progress().Start("Waiting for instances to enter running state")
	err = w.cloud.WaitRunning(ctx, instanceIDs, w.cfg.WaitTimeout)
	w.progress().Stop()
	if err != nil {
		return nil, err
	}
	w.logger.Info().Msg("instances are running")

	addresses, err := w.cloud.PublicAddresses(ctx, instanceIDs)
	if err != nil {
		return nil, err
	}

	return &Report{
		Region:       w.cfg.AWSRegion,
		VPCID:        vpcID,
		GroupName:    w.cfg.SecurityGroupName,
		GroupID:      groupID,
		InstanceType: w.cfg.InstanceType,
		AMIID:        w.cfg.AMIID,
		KeyPairName:  w.cfg.KeyPairName,
		InstanceIDs:  instanceIDs,
		PublicIPs:    addresses,
	}, nil
}

// ensureSecurityGroup finds the named group or creates it with SSH and
// HTTP open to any source. An existing group is trusted as-is; its
// rules are not re-verified or repaired.
func (w *Workflow) ensureSecurityGroup(ctx context.Context, vpcID string) (string, error) {
	name := w.cfg.SecurityGroupName

	id, found, err := w.cloud.FindSecurityGroup(ctx, vpcID, name)
	if err != nil {
		return "", fmt.Errorf("security group lookup failed: %w", err)
	}
	if found {
		w.logger.Info().Str("group_id", id).Str("group_name", name).
			Msg("reusing existing security group")
		return id, nil
	}

	w.logger.Info().Str("group_name", name).Msg("creating security group")
	id, err = w.cloud.CreateSecurityGroup(ctx, vpcID, name, w.cfg.SecurityGroupDescription)
	if err != nil {
		return "", fmt.Errorf("security group creation failed: %w", err)
	}

	// No rollback on a failed authorize; the half-created group stays
	// behind for the operator to inspect.
	for _, port := range []int32{sshPort, httpPort} {
		if err := w.cloud.AuthorizeIngress(ctx, id, port); err != nil {
			return "", fmt.Errorf("ingress authorization failed on port %d: %w", port, err)
		}
		w.logger.Info().Str("group_id", id).Int32("port", port).Msg("ingress rule added")
	}

	return id, nil
}

// launchInstances issues the single batch launch call.
func (w *Workflow) launchInstances(ctx context.Context, groupID string) ([]string, error) {
	spec := providers.LaunchSpec{
		ImageID:         w.cfg.AMIID,
		InstanceType:    w.cfg.InstanceType,
		KeyPairName:     w.cfg.KeyPairName,
		SecurityGroupID: groupID,
		Count:           w.cfg.InstanceCount,
		Tags: map[string]string{
			"Name":    fmt.Sprintf("%s-%d", ProjectTag, w.now().Unix()),
			"Project": ProjectTag,
		},
	}

	w.logger.Info().Int("count", spec.Count).
		Str("image_id", spec.ImageID).
		Str("instance_type", spec.InstanceType).
		Msg("launching instances")

	ids, err := w.cloud.LaunchInstances(ctx, spec)
	if err != nil {
		return nil, err
	}

	w.logger.Info().Strs("instance_ids", ids).Msg("launch request accepted")
	return ids, nil
}

func (w *Workflow) progress() Progress {
	if w.Progress == nil {
		return nopProgress{}
	}
	return w.Progress
}
