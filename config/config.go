// Package config loads and validates the skiff provisioning file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no path is given on the CLI.
const DefaultPath = "config.yaml"

// DefaultWaitTimeout bounds the running/terminated waits when the file
// does not set wait_timeout. Generous on purpose: the point is that a
// stuck launch eventually surfaces as an error instead of hanging the
// process forever.
const DefaultWaitTimeout = 10 * time.Minute

// Config mirrors config.yaml. Every field except WaitTimeout is
// required; nothing is defaulted for the operator.
type Config struct {
	AWSRegion                string        `yaml:"aws_region"`
	AMIID                    string        `yaml:"ami_id"`
	InstanceType             string        `yaml:"instance_type"`
	InstanceCount            int           `yaml:"instance_count"`
	KeyPairName              string        `yaml:"key_pair_name"`
	SecurityGroupName        string        `yaml:"security_group_name"`
	SecurityGroupDescription string        `yaml:"security_group_description"`
	WaitTimeout              time.Duration `yaml:"wait_timeout,omitempty"`
}

// InvalidError reports every required field that is missing or invalid,
// so the operator fixes the file in one pass.
type InvalidError struct {
	Missing []string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid config: missing or invalid required fields: %s",
		strings.Join(e.Missing, ", "))
}

// Load reads the config file and validates required-field presence.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.WaitTimeout == 0 {
		cfg.WaitTimeout = DefaultWaitTimeout
	}

	return &cfg, nil
}

// Validate checks presence of required fields, not their semantics. A
// bad region or AMI still loads fine and fails at the provider.
func (c *Config) Validate() error {
	var missing []string

	if c.AWSRegion == "" {
		missing = append(missing, "aws_region")
	}
	if c.AMIID == "" {
		missing = append(missing, "ami_id")
	}
	if c.InstanceType == "" {
		missing = append(missing, "instance_type")
	}
	if c.InstanceCount <= 0 {
		missing = append(missing, "instance_count")
	}
	if c.KeyPairName == "" {
		missing = append(missing, "key_pair_name")
	}
	if c.SecurityGroupName == "" {
		missing = append(missing, "security_group_name")
	}
	if c.SecurityGroupDescription == "" {
		missing = append(missing, "security_group_description")
	}

	if len(missing) > 0 {
		return &InvalidError{Missing: missing}
	}

	return nil
}
