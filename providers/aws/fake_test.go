package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// fakeEC2 implements EC2API, recording inputs and serving canned
// outputs so provider behavior is testable without the network.
type fakeEC2 struct {
	describeVpcsIn  *ec2.DescribeVpcsInput
	describeVpcsOut *ec2.DescribeVpcsOutput
	describeVpcsErr error

	describeSGIn  *ec2.DescribeSecurityGroupsInput
	describeSGOut *ec2.DescribeSecurityGroupsOutput
	describeSGErr error

	createSGIn  *ec2.CreateSecurityGroupInput
	createSGOut *ec2.CreateSecurityGroupOutput
	createSGErr error

	authorizeIn  []*ec2.AuthorizeSecurityGroupIngressInput
	authorizeErr error

	runIn    *ec2.RunInstancesInput
	runOut   *ec2.RunInstancesOutput
	runErr   error
	runCalls int

	describeInstancesIn  *ec2.DescribeInstancesInput
	describeInstancesOut *ec2.DescribeInstancesOutput
	describeInstancesErr error

	terminateIn  *ec2.TerminateInstancesInput
	terminateErr error

	deleteSGIn  *ec2.DeleteSecurityGroupInput
	deleteSGErr error
}

func (f *fakeEC2) DescribeVpcs(ctx context.Context, params *ec2.DescribeVpcsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error) {
	f.describeVpcsIn = params
	if f.describeVpcsErr != nil {
		return nil, f.describeVpcsErr
	}
	if f.describeVpcsOut == nil {
		return &ec2.DescribeVpcsOutput{}, nil
	}
	return f.describeVpcsOut, nil
}

func (f *fakeEC2) DescribeSecurityGroups(ctx context.Context, params *ec2.DescribeSecurityGroupsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error) {
	f.describeSGIn = params
	if f.describeSGErr != nil {
		return nil, f.describeSGErr
	}
	if f.describeSGOut == nil {
		return &ec2.DescribeSecurityGroupsOutput{}, nil
	}
	return f.describeSGOut, nil
}

func (f *fakeEC2) CreateSecurityGroup(ctx context.Context, params *ec2.CreateSecurityGroupInput, optFns ...func(*ec2.Options)) (*ec2.CreateSecurityGroupOutput, error) {
	f.createSGIn = params
	if f.createSGErr != nil {
		return nil, f.createSGErr
	}
	if f.createSGOut == nil {
		return &ec2.CreateSecurityGroupOutput{}, nil
	}
	return f.createSGOut, nil
}

func (f *fakeEC2) AuthorizeSecurityGroupIngress(ctx context.Context, params *ec2.AuthorizeSecurityGroupIngressInput, optFns ...func(*ec2.Options)) (*ec2.AuthorizeSecurityGroupIngressOutput, error) {
	f.authorizeIn = append(f.authorizeIn, params)
	if f.authorizeErr != nil {
		return nil, f.authorizeErr
	}
	return &ec2.AuthorizeSecurityGroupIngressOutput{}, nil
}

func (f *fakeEC2) RunInstances(ctx context.Context, params *ec2.RunInstancesInput, optFns ...func(*ec2.Options)) (*ec2.RunInstancesOutput, error) {
	f.runIn = params
	f.runCalls++
	if f.runErr != nil {
		return nil, f.runErr
	}
	if f.runOut == nil {
		return &ec2.RunInstancesOutput{}, nil
	}
	return f.runOut, nil
}

func (f *fakeEC2) DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	f.describeInstancesIn = params
	if f.describeInstancesErr != nil {
		return nil, f.describeInstancesErr
	}
	if f.describeInstancesOut == nil {
		return &ec2.DescribeInstancesOutput{}, nil
	}
	return f.describeInstancesOut, nil
}

func (f *fakeEC2) TerminateInstances(ctx context.Context, params *ec2.TerminateInstancesInput, optFns ...func(*ec2.Options)) (*ec2.TerminateInstancesOutput, error) {
	f.terminateIn = params
	if f.terminateErr != nil {
		return nil, f.terminateErr
	}
	return &ec2.TerminateInstancesOutput{}, nil
}

func (f *fakeEC2) DeleteSecurityGroup(ctx context.Context, params *ec2.DeleteSecurityGroupInput, optFns ...func(*ec2.Options)) (*ec2.DeleteSecurityGroupOutput, error) {
	f.deleteSGIn = params
	if f.deleteSGErr != nil {
		return nil, f.deleteSGErr
	}
	return &ec2.DeleteSecurityGroupOutput{}, nil
}
