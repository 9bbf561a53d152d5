package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// anySource opens a rule to every source address.
const anySource = "0.0.0.0/0"

// FindSecurityGroup looks up a group by name within a VPC. An empty
// result is the not-found signal, not an error.
func (p *Provider) FindSecurityGroup(ctx context.Context, vpcID, name string) (string, bool, error) {
	output, err := p.api.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{
		Filters: []ec2types.Filter{
			{Name: aws.String("group-name"), Values: []string{name}},
			{Name: aws.String("vpc-id"), Values: []string{vpcID}},
		},
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to look up security group %q: %w", name, err)
	}

	if len(output.SecurityGroups) == 0 {
		return "", false, nil
	}

	return aws.ToString(output.SecurityGroups[0].GroupId), true, nil
}

// CreateSecurityGroup creates an empty group scoped to the VPC.
func (p *Provider) CreateSecurityGroup(ctx context.Context, vpcID, name, description string) (string, error) {
	output, err := p.api.CreateSecurityGroup(ctx, &ec2.CreateSecurityGroupInput{
		GroupName:   aws.String(name),
		Description: aws.String(description),
		VpcId:       aws.String(vpcID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create security group %q: %w", name, err)
	}

	return aws.ToString(output.GroupId), nil
}

// AuthorizeIngress opens one TCP port to any source address.
func (p *Provider) AuthorizeIngress(ctx context.Context, groupID string, port int32) error {
	_, err := p.api.AuthorizeSecurityGroupIngress(ctx, &ec2.AuthorizeSecurityGroupIngressInput{
		GroupId: aws.String(groupID),
		IpPermissions: []ec2types.IpPermission{
			{
				IpProtocol: aws.String("tcp"),
				FromPort:   aws.Int32(port),
				ToPort:     aws.Int32(port),
				IpRanges:   []ec2types.IpRange{{CidrIp: aws.String(anySource)}},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to authorize ingress on port %d: %w", port, err)
	}

	return nil
}

// DeleteSecurityGroup removes the group by ID. Fails while instances
// are still attached, which is why the reclaimer waits first.
func (p *Provider) DeleteSecurityGroup(ctx context.Context, groupID string) error {
	_, err := p.api.DeleteSecurityGroup(ctx, &ec2.DeleteSecurityGroupInput{
		GroupId: aws.String(groupID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete security group %s: %w", groupID, err)
	}

	return nil
}
