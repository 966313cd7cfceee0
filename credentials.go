package neptunesign

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// LegacyCredentials is the flat credential shape older provider stacks
// hand out: both keys empty marks anonymous access, a non-empty session
// token marks temporary session credentials, anything else is a basic
// key pair.
type LegacyCredentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// Anonymous reports whether the credentials are the anonymous marker.
func (c LegacyCredentials) Anonymous() bool {
	return c.AccessKeyID == "" && c.SecretAccessKey == ""
}

// LegacyCredentialsProvider is the resolution interface of older
// credential stacks.
type LegacyCredentialsProvider interface {
	Get() (LegacyCredentials, error)
}

// legacyBridge adapts a LegacyCredentialsProvider to the SDK's current
// aws.CredentialsProvider without requiring callers to migrate their
// provider at once. Translation is stateless and happens fresh on every
// Retrieve; nothing is cached.
type legacyBridge struct {
	legacy LegacyCredentialsProvider
}

// BridgeLegacyCredentials wraps a legacy provider so it satisfies
// aws.CredentialsProvider and can be passed to WithCredentialsProvider.
func BridgeLegacyCredentials(provider LegacyCredentialsProvider) aws.CredentialsProvider {
	return &legacyBridge{legacy: provider}
}

// Retrieve implements aws.CredentialsProvider.
func (b *legacyBridge) Retrieve(ctx context.Context) (aws.Credentials, error) {
	if b.legacy == nil {
		return aws.Credentials{}, fmt.Errorf("%w: legacy credentials provider cannot be nil", ErrInvalidConfiguration)
	}

	legacy, err := b.legacy.Get()
	if err != nil {
		return aws.Credentials{}, fmt.Errorf("resolve legacy credentials: %w", err)
	}

	switch {
	case legacy.Anonymous():
		return aws.Credentials{Source: "AnonymousLegacyCredentials"}, nil
	case legacy.SessionToken != "":
		return aws.Credentials{
			AccessKeyID:     legacy.AccessKeyID,
			SecretAccessKey: legacy.SecretAccessKey,
			SessionToken:    legacy.SessionToken,
			Source:          "SessionLegacyCredentials",
		}, nil
	default:
		return aws.Credentials{
			AccessKeyID:     legacy.AccessKeyID,
			SecretAccessKey: legacy.SecretAccessKey,
			Source:          "BasicLegacyCredentials",
		}, nil
	}
}
