package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Client wraps the AWS SDK clients used by rdsctl
type Client struct {
	RDS *rds.Client
	STS *sts.Client

	profile  string
	region   string
	endpoint string
}

// ClientOption allows customizing the AWS Client
type ClientOption func(*Client)

// WithProfile sets the shared config profile for the client
func WithProfile(profile string) ClientOption {
	return func(c *Client) {
		c.profile = profile
	}
}

// WithRegion sets the AWS region for the client
func WithRegion(region string) ClientOption {
	return func(c *Client) {
		c.region = region
	}
}

// WithEndpoint overrides the RDS endpoint URL (for example a local emulator)
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// NewClient loads the shared AWS config and builds the service clients.
func NewClient(ctx context.Context, opts ...ClientOption) (*Client, error) {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}

	var configOpts []func(*config.LoadOptions) error
	if c.profile != "" {
		configOpts = append(configOpts, config.WithSharedConfigProfile(c.profile))
	}
	if c.region != "" {
		configOpts = append(configOpts, config.WithRegion(c.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("no AWS region configured; use --region, a context region or AWS_REGION")
	}

	c.RDS = rds.NewFromConfig(cfg, func(o *rds.Options) {
		if c.endpoint != "" {
			o.BaseEndpoint = awssdk.String(c.endpoint)
		}
	})
	c.STS = sts.NewFromConfig(cfg)

	return c, nil
}
