package neptunesign

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
)

// RequestAdapter converts one native HTTP request shape to and from the
// canonical form the signing pipeline works on. Implementations exist
// for net/http, retryablehttp, smithy transport requests, and the
// RequestMetadata record; a custom shape only needs these two methods.
type RequestAdapter[T any] interface {
	// ExtractCanonical derives the canonical description of the native
	// request: method, endpoint, exact resource path, headers minus any
	// host entry, decoded query parameters, and the fully drained body.
	ExtractCanonical(native T) (*CanonicalRequest, error)

	// AttachSignature writes the computed authentication headers back
	// onto the native request. Any existing host header (first
	// case-insensitive match) is replaced; all other headers are
	// preserved. X-Amz-Security-Token is set only for a non-empty
	// session token.
	AttachSignature(native T, signature *Signature) error
}

// Signer signs native HTTP requests of type T for an IAM-authenticated
// Neptune endpoint. It is safe for concurrent use: region, service name,
// and adapter are fixed at construction, and the underlying SigV4 signer
// is reused across calls without reconfiguration.
type Signer[T any] struct {
	adapter     RequestAdapter[T]
	region      string
	credentials aws.CredentialsProvider
	hook        ObservabilityHook

	// Reused across calls; safe as long as its options never change
	// after construction.
	sigv4 *v4.Signer
}

// NewSigner creates a Signer around a caller-supplied adapter. Most
// callers want one of the shape-specific constructors instead:
// NewHTTPSigner, NewRetryableHTTPSigner, NewSmithySigner, or
// NewMetadataSigner.
func NewSigner[T any](adapter RequestAdapter[T], opts ...Option) (*Signer[T], error) {
	cfg, err := resolveOptions(opts...)
	if err != nil {
		return nil, err
	}
	return newSigner(adapter, cfg)
}

func newSigner[T any](adapter RequestAdapter[T], cfg Config) (*Signer[T], error) {
	if adapter == nil {
		return nil, fmt.Errorf("%w: request adapter cannot be nil", ErrInvalidConfiguration)
	}
	return &Signer[T]{
		adapter:     adapter,
		region:      cfg.Region,
		credentials: cfg.Credentials,
		hook:        cfg.ObservabilityHook,
		sigv4:       v4.NewSigner(),
	}, nil
}

// NewHTTPSigner creates a Signer for *net/http.Request values.
func NewHTTPSigner(opts ...Option) (*Signer[*http.Request], error) {
	cfg, err := resolveOptions(opts...)
	if err != nil {
		return nil, err
	}
	return newSigner(NewHTTPAdapter(cfg.MaxBodyBytes), cfg)
}

// NewMetadataSigner creates a Signer for RequestMetadata records.
func NewMetadataSigner(opts ...Option) (*Signer[*RequestMetadata], error) {
	cfg, err := resolveOptions(opts...)
	if err != nil {
		return nil, err
	}
	return newSigner(NewMetadataAdapter(), cfg)
}

// Region returns the region the signer scopes its signatures to.
func (s *Signer[T]) Region() string {
	return s.region
}

// SignRequest authenticates the native request by deriving its canonical
// form, obtaining a SigV4 signature for it, and writing the resulting
// Host, X-Amz-Date, Authorization (and, for session credentials,
// X-Amz-Security-Token) headers back onto the request.
//
// Credentials are resolved fresh on every call. On failure the request's
// headers are left exactly as they were passed in and the returned error
// wraps ErrSigningFailed together with the root cause.
func (s *Signer[T]) SignRequest(ctx context.Context, request T) error {
	s.hook.OnSignStart(ctx)
	start := time.Now()

	err := s.signRequest(ctx, request)
	if err != nil {
		err = newSigningError(err)
	}

	s.hook.OnSignComplete(ctx, time.Since(start), err)
	return err
}

func (s *Signer[T]) signRequest(ctx context.Context, request T) error {
	canonical, err := s.adapter.ExtractCanonical(request)
	if err != nil {
		return err
	}

	credentials, err := s.credentials.Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("resolve credentials: %w", err)
	}

	signature, err := s.computeSignature(ctx, canonical, credentials)
	if err != nil {
		return err
	}

	return s.adapter.AttachSignature(request, signature)
}

// computeSignature hands the canonical request to the AWS SDK SigV4
// signer and reads the finalized header values back out.
func (s *Signer[T]) computeSignature(
	ctx context.Context,
	canonical *CanonicalRequest,
	credentials aws.Credentials,
) (*Signature, error) {
	scratch, err := buildScratchRequest(canonical)
	if err != nil {
		return nil, err
	}

	payloadHash := sha256.Sum256(canonical.Body)
	signingTime := time.Now().UTC()

	if err := s.sigv4.SignHTTP(ctx, credentials, scratch,
		hex.EncodeToString(payloadHash[:]), ServiceName, s.region, signingTime); err != nil {
		return nil, fmt.Errorf("sign canonical request: %w", err)
	}

	// Temporary security credentials additionally require the
	// X-Amz-Security-Token header; the token rides along in the
	// signature struct so adapters can attach it.
	sessionToken := ""
	if credentials.SessionToken != "" {
		sessionToken = credentials.SessionToken
	}

	return &Signature{
		HostHeader:          scratch.Host,
		DateHeader:          scratch.Header.Get(AmzDateHeaderName),
		AuthorizationHeader: scratch.Header.Get(AuthorizationHeaderName),
		SessionToken:        sessionToken,
	}, nil
}

// buildScratchRequest materializes the canonical request as a throwaway
// *http.Request in the form the SDK signer expects: URL from endpoint,
// path, and re-encoded query; host carried on the request rather than in
// the header map; body as an in-memory reader.
func buildScratchRequest(canonical *CanonicalRequest) (*http.Request, error) {
	if canonical.hasHostHeader() {
		return nil, fmt.Errorf("canonical request must not carry a host header, endpoint %q", canonical.Endpoint)
	}

	endpoint, err := url.Parse(canonical.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", canonical.Endpoint, err)
	}
	if endpoint.Host == "" {
		return nil, NewMissingHostError(canonical.Endpoint)
	}

	target := *endpoint
	target.Path = canonical.ResourcePath
	target.RawQuery = canonical.QueryParams.Encode()

	scratch := &http.Request{
		Method:        canonical.Method,
		URL:           &target,
		Host:          endpoint.Host,
		Header:        make(http.Header, len(canonical.Headers)),
		Body:          io.NopCloser(bytes.NewReader(canonical.Body)),
		ContentLength: int64(len(canonical.Body)),
	}
	for name, values := range canonical.Headers {
		for _, value := range values {
			scratch.Header.Add(name, value)
		}
	}

	return scratch, nil
}
