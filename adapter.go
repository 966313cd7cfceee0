package neptunesign

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// drainBody reads the complete body synchronously, up to limit bytes.
// The signature commits to a payload hash up front, so a signable body
// can never be produced lazily.
func drainBody(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("drain request body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: read more than %d bytes", ErrBodyTooLarge, limit)
	}
	return body, nil
}

// partitionHeaders copies every header except host entries, which are
// routed to host resolution instead. The first case-insensitive host
// match wins; duplicates differing only by case are not an error.
func partitionHeaders(headers http.Header) (map[string][]string, string) {
	canonical := make(map[string][]string, len(headers))
	hostValue := ""
	for name, values := range headers {
		if strings.EqualFold(name, HostHeaderName) {
			if hostValue == "" && len(values) > 0 {
				hostValue = values[0]
			}
			continue
		}
		canonical[name] = append([]string(nil), values...)
	}
	return canonical, hostValue
}

// resolveEndpoint determines the endpoint (scheme://authority) for the
// canonical request. Resolution order for the host: an explicit host
// header value, then the URI authority, then a bound target host. A
// request resolving none of the three cannot be signed.
//
// Websocket-style targets carry no scheme; "http" is substituted since
// the scheme takes no part in the signature.
func resolveEndpoint(scheme, hostHeader, authority, boundHost, uri string) (string, error) {
	host := hostHeader
	if host == "" {
		host = authority
	}
	if host == "" {
		host = boundHost
	}
	if host == "" {
		return "", NewMissingHostError(uri)
	}
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + host, nil
}

// resourcePathOf keeps the path exactly as the request carries it,
// trailing slash included, defaulting only the empty path to "/".
func resourcePathOf(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

// removeFirstHostHeader deletes the first header whose name is a
// case-insensitive match for "host", leaving any further duplicates in
// place.
func removeFirstHostHeader(headers http.Header) {
	for name := range headers {
		if strings.EqualFold(name, HostHeaderName) {
			delete(headers, name)
			return
		}
	}
}

// attachSignatureHeaders writes the signature onto a header map:
// replaces any existing host header, sets the date and authorization
// values, and adds the security token header only when a session token
// is present. All other headers are left untouched.
func attachSignatureHeaders(headers http.Header, signature *Signature) {
	removeFirstHostHeader(headers)
	headers.Set(HostHeaderName, signature.HostHeader)
	headers.Set(AmzDateHeaderName, signature.DateHeader)
	headers.Set(AuthorizationHeaderName, signature.AuthorizationHeader)
	if signature.SessionToken != "" {
		headers.Set(SecurityTokenHeaderName, signature.SessionToken)
	}
}
