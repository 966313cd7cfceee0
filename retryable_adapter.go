package neptunesign

import (
	"fmt"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
)

// RetryableHTTPAdapter is the RequestAdapter for
// *retryablehttp.Request values from hashicorp/go-retryablehttp.
//
// retryablehttp keeps a rewindable copy of the body so the same request
// can be replayed; extraction reads that copy without consuming the
// underlying stream. The embedded Host field acts as the bound target
// host when neither a host header nor a URI authority is present.
type RetryableHTTPAdapter struct {
	maxBodyBytes int64
}

// NewRetryableHTTPAdapter creates an adapter for *retryablehttp.Request
// values. A non-positive limit means DefaultMaxBodyBytes.
func NewRetryableHTTPAdapter(maxBodyBytes int64) *RetryableHTTPAdapter {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &RetryableHTTPAdapter{maxBodyBytes: maxBodyBytes}
}

// NewRetryableHTTPSigner creates a Signer for *retryablehttp.Request
// values.
func NewRetryableHTTPSigner(opts ...Option) (*Signer[*retryablehttp.Request], error) {
	cfg, err := resolveOptions(opts...)
	if err != nil {
		return nil, err
	}
	return newSigner(NewRetryableHTTPAdapter(cfg.MaxBodyBytes), cfg)
}

// ExtractCanonical implements RequestAdapter.
func (a *RetryableHTTPAdapter) ExtractCanonical(req *retryablehttp.Request) (*CanonicalRequest, error) {
	if req == nil || req.Request == nil {
		return nil, NewMissingFieldError("request")
	}
	if req.URL == nil {
		return nil, NewMissingFieldError("request URI")
	}
	if req.Method == "" {
		return nil, NewMissingFieldError("request method")
	}

	headers, hostHeader := partitionHeaders(req.Header)

	queryParams, err := ParseQueryString(req.URL.RawQuery)
	if err != nil {
		return nil, err
	}

	body, err := req.BodyBytes()
	if err != nil {
		return nil, fmt.Errorf("read buffered request body: %w", err)
	}
	if body == nil {
		body = []byte{}
	}
	if int64(len(body)) > a.maxBodyBytes {
		return nil, fmt.Errorf("%w: body is %d bytes, limit %d", ErrBodyTooLarge, len(body), a.maxBodyBytes)
	}

	endpoint, err := resolveEndpoint(req.URL.Scheme, hostHeader, req.URL.Host, req.Host, req.URL.String())
	if err != nil {
		return nil, err
	}

	return &CanonicalRequest{
		Method:       req.Method,
		Endpoint:     endpoint,
		ResourcePath: resourcePathOf(req.URL.Path),
		Headers:      headers,
		QueryParams:  queryParams,
		Body:         body,
	}, nil
}

// AttachSignature implements RequestAdapter, mutating the embedded
// http.Request in place.
func (a *RetryableHTTPAdapter) AttachSignature(req *retryablehttp.Request, signature *Signature) error {
	if req == nil || req.Request == nil {
		return NewMissingFieldError("request")
	}
	if err := signature.validate(); err != nil {
		return err
	}

	if req.Header == nil {
		req.Header = make(http.Header)
	}
	attachSignatureHeaders(req.Header, signature)
	req.Host = signature.HostHeader
	return nil
}
