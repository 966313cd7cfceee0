package neptunesign

import (
	"bytes"
	"io"
	"net/http"
)

// HTTPAdapter is the RequestAdapter for mutable *net/http.Request
// values.
//
// Draining the body consumes req.Body and replaces it with an
// equivalent in-memory reader, so the request stays sendable after
// signing. The request must be exclusively owned by the caller for the
// duration of the SignRequest call.
type HTTPAdapter struct {
	maxBodyBytes int64
}

// NewHTTPAdapter creates an adapter for *http.Request values. A
// non-positive limit means DefaultMaxBodyBytes.
func NewHTTPAdapter(maxBodyBytes int64) *HTTPAdapter {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &HTTPAdapter{maxBodyBytes: maxBodyBytes}
}

// ExtractCanonical implements RequestAdapter.
func (a *HTTPAdapter) ExtractCanonical(req *http.Request) (*CanonicalRequest, error) {
	if req == nil {
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
	if req.Body != nil && req.Body != http.NoBody {
		body, err = drainBody(req.Body, a.maxBodyBytes)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(body))
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

// AttachSignature implements RequestAdapter. It mutates the request in
// place, also updating req.Host since net/http takes the transmitted
// host from the request field rather than the header map.
func (a *HTTPAdapter) AttachSignature(req *http.Request, signature *Signature) error {
	if req == nil {
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
