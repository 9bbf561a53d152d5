package aws

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/skiffworks/skiff/providers"
)

// DefaultVPC resolves the account's default VPC for the region. More
// than one default-flagged VPC means the account is misconfigured; the
// lowest VPC ID wins so repeated runs agree.
func (p *Provider) DefaultVPC(ctx context.Context) (string, error) {
	output, err := p.api.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
		Filters: []ec2types.Filter{
			{Name: aws.String("is-default"), Values: []string{"true"}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to describe VPCs: %w", err)
	}

	if len(output.Vpcs) == 0 {
		return "", providers.ErrNoDefaultVPC
	}

	ids := make([]string, 0, len(output.Vpcs))
	for _, vpc := range output.Vpcs {
		ids = append(ids, aws.ToString(vpc.VpcId))
	}
	sort.Strings(ids)

	return ids[0], nil
}
