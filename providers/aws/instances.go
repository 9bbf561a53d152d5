package aws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"

	"github.com/skiffworks/skiff/providers"
)

// LaunchInstances runs one batch request for spec.Count instances, all
// attached to the given security group and carrying the given tags.
func (p *Provider) LaunchInstances(ctx context.Context, spec providers.LaunchSpec) ([]string, error) {
	var tags []ec2types.Tag
	for key, value := range spec.Tags {
		tags = append(tags, ec2types.Tag{Key: aws.String(key), Value: aws.String(value)})
	}

	output, err := p.api.RunInstances(ctx, &ec2.RunInstancesInput{
		ImageId:          aws.String(spec.ImageID),
		InstanceType:     ec2types.InstanceType(spec.InstanceType),
		KeyName:          aws.String(spec.KeyPairName),
		MinCount:         aws.Int32(int32(spec.Count)),
		MaxCount:         aws.Int32(int32(spec.Count)),
		SecurityGroupIds: []string{spec.SecurityGroupID},
		TagSpecifications: []ec2types.TagSpecification{
			{ResourceType: ec2types.ResourceTypeInstance, Tags: tags},
		},
	})
	if err != nil {
		return nil, &providers.LaunchError{
			Err:  fmt.Errorf("failed to launch instances: %w", err),
			Hint: launchHint(err),
		}
	}

	ids := make([]string, 0, len(output.Instances))
	for _, instance := range output.Instances {
		ids = append(ids, aws.ToString(instance.InstanceId))
	}

	return ids, nil
}

// launchHint maps well-known API error codes to operator guidance.
func launchHint(err error) string {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return ""
	}

	switch apiErr.ErrorCode() {
	case "InvalidKeyPair.NotFound":
		return "check that key_pair_name exists in your EC2 key pairs"
	case "InvalidAMIID.NotFound", "InvalidAMIID.Malformed":
		return "check that ami_id is valid for the configured region"
	}

	return ""
}

// WaitRunning blocks until every instance reports a running state.
// Polling cadence and retries belong to the SDK waiter, not to us.
func (p *Provider) WaitRunning(ctx context.Context, instanceIDs []string, maxWait time.Duration) error {
	waiter := ec2.NewInstanceRunningWaiter(p.api)
	input := &ec2.DescribeInstancesInput{InstanceIds: instanceIDs}

	if err := waiter.Wait(ctx, input, maxWait); err != nil {
		return fmt.Errorf("waiting for instances to run: %w", err)
	}

	return nil
}

// WaitTerminated blocks until every instance reports terminated.
func (p *Provider) WaitTerminated(ctx context.Context, instanceIDs []string, maxWait time.Duration) error {
	waiter := ec2.NewInstanceTerminatedWaiter(p.api)
	input := &ec2.DescribeInstancesInput{InstanceIds: instanceIDs}

	if err := waiter.Wait(ctx, input, maxWait); err != nil {
		return fmt.Errorf("waiting for instances to terminate: %w", err)
	}

	return nil
}

// PublicAddresses reads provider-assigned public IPs for the given
// instances, in instance order. Instances with no public address are
// skipped, so the result may be shorter than instanceIDs.
func (p *Provider) PublicAddresses(ctx context.Context, instanceIDs []string) ([]string, error) {
	output, err := p.api.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: instanceIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe instances: %w", err)
	}

	var addresses []string
	for _, reservation := range output.Reservations {
		for _, instance := range reservation.Instances {
			if addr := aws.ToString(instance.PublicIpAddress); addr != "" {
				addresses = append(addresses, addr)
			}
		}
	}

	return addresses, nil
}

// TerminateInstances requests termination of the whole batch.
func (p *Provider) TerminateInstances(ctx context.Context, instanceIDs []string) error {
	_, err := p.api.TerminateInstances(ctx, &ec2.TerminateInstancesInput{
		InstanceIds: instanceIDs,
	})
	if err != nil {
		return fmt.Errorf("failed to terminate instances: %w", err)
	}

	return nil
}
