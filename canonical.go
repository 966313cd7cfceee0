package neptunesign

import "strings"

// CanonicalRequest is the client-agnostic description of an HTTP request
// that the signing pipeline operates on. Adapters produce one per
// SignRequest call; it is consumed by the signer and then discarded.
type CanonicalRequest struct {
	// Method is the HTTP verb, e.g. "GET".
	Method string

	// Endpoint is scheme plus authority only, e.g.
	// "http://example.com:8182". It never carries a path or query.
	Endpoint string

	// ResourcePath is the exact path component of the request,
	// trailing slash included. It is never normalized: "/db/query" and
	// "/db/query/" sign differently and must stay distinct.
	ResourcePath string

	// Headers maps header names to their ordered values. Names keep
	// the capitalization the source request used. No entry may be a
	// case-insensitive match for "host"; host information travels
	// through Endpoint instead.
	Headers map[string][]string

	// QueryParams holds the decoded query parameters, empty when the
	// request has no query string.
	QueryParams QueryParameters

	// Body is the fully drained request payload. It is never nil: a
	// bodyless request carries an empty slice, because SigV4 hashes
	// the payload even when there is none.
	Body []byte
}

// hasHostHeader reports whether any header name is a case-insensitive
// match for "host". Canonical requests must never carry one.
func (c *CanonicalRequest) hasHostHeader() bool {
	for name := range c.Headers {
		if strings.EqualFold(name, HostHeaderName) {
			return true
		}
	}
	return false
}
