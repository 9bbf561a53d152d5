// Package providers defines the narrow cloud surface the provisioning
// workflow depends on, so the workflow is testable without the network.
package providers

import (
	"context"
	"errors"
	"time"
)

// ErrNoDefaultVPC is returned when the account has no default network
// segment in the configured region. Nothing can be scoped without one.
var ErrNoDefaultVPC = errors.New("no default VPC found in this region")

// LaunchError wraps an instance launch failure with operator guidance
// for the well-known misconfigurations (bad key pair, bad AMI).
type LaunchError struct {
	Err  error
	Hint string
}

func (e *LaunchError) Error() string { return e.Err.Error() }

func (e *LaunchError) Unwrap() error { return e.Err }

// LaunchSpec describes one batch of instances to run.
type LaunchSpec struct {
	ImageID         string
	InstanceType    string
	KeyPairName     string
	SecurityGroupID string
	Count           int
	Tags            map[string]string
}

// Cloud is the provider surface skiff provisions against. One method per
// remote operation; implementations add no retry or backoff of their own
// beyond what the SDK waiters manage.
type Cloud interface {
	// DefaultVPC resolves the account's default network segment.
	DefaultVPC(ctx context.Context) (string, error)

	// FindSecurityGroup looks up a group by name within a VPC. Absence
	// is not an error; it is reported through the found flag.
	FindSecurityGroup(ctx context.Context, vpcID, name string) (id string, found bool, err error)

	// CreateSecurityGroup creates an empty group scoped to the VPC.
	CreateSecurityGroup(ctx context.Context, vpcID, name, description string) (string, error)

	// AuthorizeIngress opens one TCP port to any source address.
	AuthorizeIngress(ctx context.Context, groupID string, port int32) error

	// LaunchInstances runs the whole batch in a single request.
	LaunchInstances(ctx context.Context, spec LaunchSpec) ([]string, error)

	// WaitRunning blocks until every instance reports a running state.
	WaitRunning(ctx context.Context, instanceIDs []string, maxWait time.Duration) error

	// PublicAddresses returns assigned public IPs in instance order.
	// Instances without one are skipped, so the result may be shorter
	// than instanceIDs.
	PublicAddresses(ctx context.Context, instanceIDs []string) ([]string, error)

	// TerminateInstances requests termination of the whole batch.
	TerminateInstances(ctx context.Context, instanceIDs []string) error

	// WaitTerminated blocks until every instance reports terminated.
	WaitTerminated(ctx context.Context, instanceIDs []string, maxWait time.Duration) error

	// DeleteSecurityGroup removes the group by provider-assigned ID.
	DeleteSecurityGroup(ctx context.Context, groupID string) error
}
