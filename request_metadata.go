package neptunesign

// RequestMetadata captures the fields of an HTTP request that SigV4
// signing needs, for callers whose HTTP client is not covered by one of
// the concrete adapters. Build one from whatever request representation
// the client uses, sign it, and copy the resulting headers back.
type RequestMetadata struct {
	// FullURI is the complete request URI including any query string,
	// e.g. "https://example.com:8182/sparql?query=...".
	FullURI string

	// Method is the HTTP verb, e.g. "GET" or "POST".
	Method string

	// Content is the request payload. Nil means no body; signing
	// treats it as an empty payload.
	Content []byte

	// Headers maps header names to values. A host entry, under any
	// capitalization, takes precedence over the URI authority when the
	// signing host is resolved.
	Headers map[string]string

	// QueryParameters optionally carries the already-parsed query.
	// Signing always derives the parameters from FullURI's raw query;
	// this field exists so callers can round-trip their own parsed
	// form alongside the request.
	QueryParameters map[string]string
}
