package neptunesign

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/config"
)

// LoadDefaultAWSOptions resolves the ambient AWS configuration (shared
// config files, environment, IMDS) and turns it into signer options.
// An explicit region overrides whatever the default chain resolves.
//
// Usage:
//
//	opts, err := neptunesign.LoadDefaultAWSOptions(ctx, "us-east-1")
//	if err != nil {
//	    return err
//	}
//	signer, err := neptunesign.NewHTTPSigner(opts...)
func LoadDefaultAWSOptions(ctx context.Context, region string) ([]Option, error) {
	loadOpts := []func(*config.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, config.WithRegion(region))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load AWS config: %w", ErrInvalidConfiguration, err)
	}

	return []Option{WithAWSConfig(awsConfig)}, nil
}

// NewHTTPSignerFromDefaultConfig builds a *http.Request signer from the
// default AWS configuration chain. Extra options apply on top, so a
// caller can still override the body limit or install a hook.
func NewHTTPSignerFromDefaultConfig(ctx context.Context, region string, extra ...Option) (*Signer[*http.Request], error) {
	opts, err := LoadDefaultAWSOptions(ctx, region)
	if err != nil {
		return nil, err
	}
	return NewHTTPSigner(append(opts, extra...)...)
}
