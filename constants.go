package neptunesign

// ServiceName is the signing name of the Amazon Neptune service. Every
// signature produced by this package is scoped to it.
const ServiceName = "neptune-db"

// Header names involved in SigV4 header-based signing.
const (
	HostHeaderName          = "Host"
	AmzDateHeaderName       = "X-Amz-Date"
	AuthorizationHeaderName = "Authorization"
	SecurityTokenHeaderName = "X-Amz-Security-Token"
)

// DefaultMaxBodyBytes bounds how much of a request body an adapter is
// willing to buffer for payload hashing. Bodies above the limit fail the
// signing call instead of exhausting memory.
const DefaultMaxBodyBytes int64 = 64 << 20

// Environment variable names recognized by LoadConfigFromEnvironment.
const (
	EnvRegion       = "NEPTUNESIGN_REGION"
	EnvMaxBodyBytes = "NEPTUNESIGN_MAX_BODY_BYTES"

	// Fallback region variable, honored when NEPTUNESIGN_REGION is unset
	// so deployments already configured for the AWS SDK keep working.
	EnvAWSRegion = "AWS_REGION"
)
