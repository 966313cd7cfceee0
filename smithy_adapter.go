package neptunesign

import (
	"fmt"
	"net/http"

	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// SmithyAdapter is the RequestAdapter for *smithyhttp.Request values
// from aws/smithy-go, the transport type AWS SDK operation middleware
// works on.
//
// The operation stream is drained synchronously for payload hashing and
// rewound afterwards. Non-seekable streams are rejected up front: a
// consumed stream could not be transmitted after signing, and the
// signature has already committed to the payload hash.
type SmithyAdapter struct {
	maxBodyBytes int64
}

// NewSmithyAdapter creates an adapter for *smithyhttp.Request values. A
// non-positive limit means DefaultMaxBodyBytes.
func NewSmithyAdapter(maxBodyBytes int64) *SmithyAdapter {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &SmithyAdapter{maxBodyBytes: maxBodyBytes}
}

// NewSmithySigner creates a Signer for *smithyhttp.Request values.
func NewSmithySigner(opts ...Option) (*Signer[*smithyhttp.Request], error) {
	cfg, err := resolveOptions(opts...)
	if err != nil {
		return nil, err
	}
	return newSigner(NewSmithyAdapter(cfg.MaxBodyBytes), cfg)
}

// ExtractCanonical implements RequestAdapter.
func (a *SmithyAdapter) ExtractCanonical(req *smithyhttp.Request) (*CanonicalRequest, error) {
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

	body := []byte{}
	if stream := req.GetStream(); stream != nil {
		if !req.IsStreamSeekable() {
			return nil, fmt.Errorf("%w: request stream must be seekable so it can be replayed after hashing",
				ErrMissingRequestField)
		}
		body, err = drainBody(stream, a.maxBodyBytes)
		if err != nil {
			return nil, err
		}
		if err := req.RewindStream(); err != nil {
			return nil, fmt.Errorf("rewind request stream: %w", err)
		}
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
func (a *SmithyAdapter) AttachSignature(req *smithyhttp.Request, signature *Signature) error {
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
