package neptunesign

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/hengadev/errsx"
)

// Config holds the complete configuration for a Signer instance.
type Config struct {
	// Region is the AWS region the signature is scoped to, e.g.
	// "us-east-1".
	Region string

	// Credentials supplies the signing credentials. Resolution happens
	// fresh on every SignRequest call so rotated credentials take
	// effect without rebuilding the signer.
	Credentials aws.CredentialsProvider

	// MaxBodyBytes caps how much request body the adapters buffer for
	// payload hashing. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// ObservabilityHook receives per-attempt callbacks. Nil means no-op.
	ObservabilityHook ObservabilityHook
}

// Option represents a configuration option for creating a Signer.
type Option func(*Config) error

// WithRegion sets the AWS region the signature is scoped to.
func WithRegion(region string) Option {
	return func(c *Config) error {
		if strings.TrimSpace(region) == "" {
			return fmt.Errorf("%w: region cannot be empty or whitespace only", ErrInvalidConfiguration)
		}
		c.Region = strings.TrimSpace(region)
		return nil
	}
}

// WithCredentialsProvider sets the credential source used for signing.
func WithCredentialsProvider(provider aws.CredentialsProvider) Option {
	return func(c *Config) error {
		if provider == nil {
			return fmt.Errorf("%w: credentials provider cannot be nil", ErrInvalidConfiguration)
		}
		c.Credentials = provider
		return nil
	}
}

// WithAWSConfig takes region and credentials from a resolved AWS SDK
// configuration, typically the result of config.LoadDefaultConfig.
func WithAWSConfig(cfg aws.Config) Option {
	return func(c *Config) error {
		if cfg.Region == "" {
			return fmt.Errorf("%w: AWS config carries no region", ErrInvalidConfiguration)
		}
		if cfg.Credentials == nil {
			return fmt.Errorf("%w: AWS config carries no credentials provider", ErrInvalidConfiguration)
		}
		c.Region = cfg.Region
		c.Credentials = cfg.Credentials
		return nil
	}
}

// WithMaxBodyBytes overrides the per-request body buffering limit.
func WithMaxBodyBytes(limit int64) Option {
	return func(c *Config) error {
		if limit <= 0 {
			return fmt.Errorf("%w: max body bytes must be positive, got %d", ErrInvalidConfiguration, limit)
		}
		c.MaxBodyBytes = limit
		return nil
	}
}

// WithObservabilityHook installs a hook called around every signing
// attempt.
func WithObservabilityHook(hook ObservabilityHook) Option {
	return func(c *Config) error {
		if hook == nil {
			return fmt.Errorf("%w: observability hook cannot be nil", ErrInvalidConfiguration)
		}
		c.ObservabilityHook = hook
		return nil
	}
}

func resolveOptions(opts ...Option) (Config, error) {
	cfg := Config{
		MaxBodyBytes:      DefaultMaxBodyBytes,
		ObservabilityHook: NoOpObservabilityHook{},
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	errs := make(errsx.Map)

	if strings.TrimSpace(c.Region) == "" {
		errs.Set("region", "a signing region is required")
	}
	if c.Credentials == nil {
		errs.Set("credentials", "a credentials provider is required")
	}
	if c.MaxBodyBytes <= 0 {
		errs.Set("max body bytes", fmt.Sprintf("must be positive, got %d", c.MaxBodyBytes))
	}

	if !errs.IsEmpty() {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, errs.AsError())
	}
	return nil
}

// LoadConfigFromEnvironment reads signer configuration from environment
// variables, following the 12-factor approach. Credentials are not read
// here; pair the result with WithCredentialsProvider or WithAWSConfig.
//
// Recognized variables:
//   - NEPTUNESIGN_REGION: signing region (falls back to AWS_REGION)
//   - NEPTUNESIGN_MAX_BODY_BYTES: optional body buffering limit
func LoadConfigFromEnvironment() (Config, error) {
	region := os.Getenv(EnvRegion)
	if region == "" {
		region = os.Getenv(EnvAWSRegion)
	}
	if region == "" {
		return Config{}, fmt.Errorf("%w: %s (or %s) environment variable is required",
			ErrInvalidConfiguration, EnvRegion, EnvAWSRegion)
	}

	maxBody := DefaultMaxBodyBytes
	if raw := os.Getenv(EnvMaxBodyBytes); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return Config{}, fmt.Errorf("%w: %s must be a positive integer, got %q",
				ErrInvalidConfiguration, EnvMaxBodyBytes, raw)
		}
		maxBody = parsed
	}

	return Config{
		Region:            region,
		MaxBodyBytes:      maxBody,
		ObservabilityHook: NoOpObservabilityHook{},
	}, nil
}
