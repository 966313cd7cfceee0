package neptunesign

import (
	"fmt"
	"net/url"
	"strings"
)

// MetadataAdapter is the RequestAdapter for *RequestMetadata records.
// The payload already lives in memory, so no draining or body limit
// applies here.
type MetadataAdapter struct{}

// NewMetadataAdapter creates an adapter for *RequestMetadata records.
func NewMetadataAdapter() *MetadataAdapter {
	return &MetadataAdapter{}
}

// ExtractCanonical implements RequestAdapter.
func (a *MetadataAdapter) ExtractCanonical(req *RequestMetadata) (*CanonicalRequest, error) {
	if req == nil {
		return nil, NewMissingFieldError("request")
	}
	if req.FullURI == "" {
		return nil, NewMissingFieldError("request URI")
	}
	if req.Method == "" {
		return nil, NewMissingFieldError("request method")
	}

	uri, err := url.Parse(req.FullURI)
	if err != nil {
		return nil, fmt.Errorf("parse request URI %q: %w", req.FullURI, err)
	}

	headers := make(map[string][]string, len(req.Headers))
	hostHeader := ""
	for name, value := range req.Headers {
		if strings.EqualFold(name, HostHeaderName) {
			if hostHeader == "" {
				hostHeader = value
			}
			continue
		}
		headers[name] = []string{value}
	}

	queryParams, err := ParseQueryString(uri.RawQuery)
	if err != nil {
		return nil, err
	}

	body := req.Content
	if body == nil {
		body = []byte{}
	}

	endpoint, err := resolveEndpoint(uri.Scheme, hostHeader, uri.Host, "", req.FullURI)
	if err != nil {
		return nil, err
	}

	return &CanonicalRequest{
		Method:       req.Method,
		Endpoint:     endpoint,
		ResourcePath: resourcePathOf(uri.Path),
		Headers:      headers,
		QueryParams:  queryParams,
		Body:         body,
	}, nil
}

// AttachSignature implements RequestAdapter, updating the metadata's
// header map in place.
func (a *MetadataAdapter) AttachSignature(req *RequestMetadata, signature *Signature) error {
	if req == nil {
		return NewMissingFieldError("request")
	}
	if err := signature.validate(); err != nil {
		return err
	}

	if req.Headers == nil {
		req.Headers = make(map[string]string)
	}
	for name := range req.Headers {
		if strings.EqualFold(name, HostHeaderName) {
			delete(req.Headers, name)
			break
		}
	}

	req.Headers[HostHeaderName] = signature.HostHeader
	req.Headers[AmzDateHeaderName] = signature.DateHeader
	req.Headers[AuthorizationHeaderName] = signature.AuthorizationHeader
	if signature.SessionToken != "" {
		req.Headers[SecurityTokenHeaderName] = signature.SessionToken
	}
	return nil
}
