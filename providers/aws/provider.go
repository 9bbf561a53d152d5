// Package aws implements providers.Cloud against the AWS EC2 API using
// SDK v2. All calls go through the narrow EC2API interface so the
// provider is testable with a fake client.
package aws

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/skiffworks/skiff/providers"
)

// Provider is the EC2-backed implementation of providers.Cloud.
type Provider struct {
	api    EC2API
	region string
}

// NewProvider builds a Provider for the region using the default
// credential chain (env vars, shared config, instance role).
func NewProvider(ctx context.Context, region string) (*Provider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Provider{api: ec2.NewFromConfig(cfg), region: region}, nil
}

// NewProviderWithClient wires an existing client. Used by tests.
func NewProviderWithClient(api EC2API, region string) *Provider {
	return &Provider{api: api, region: region}
}

// Region returns the region this provider operates in.
func (p *Provider) Region() string {
	return p.region
}

// Ensure Provider implements the Cloud interface
var _ providers.Cloud = (*Provider)(nil)
