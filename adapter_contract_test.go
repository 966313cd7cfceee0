package neptunesign

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Shared contract every request adapter must satisfy. Each adapter test
// file provides a harness over its native request shape and runs
// runAdapterContract against it.

const (
	testHeaderOneName  = "header1"
	testHeaderOneValue = "value1"
	testHeaderTwoName  = "header2"
	testHeaderTwoValue = "value2"
	testHostName       = "example.com"
	testEndpoint       = testHostName + ":8182"
	testEndpointURI    = "http://" + testEndpoint
	testRequestPath    = "/path/test"
	testFullURI        = testEndpointURI + testRequestPath
	testSparqlQuery    = "select * where {}"
	testEncodedQuery   = "query=select%20%2A%20where%20%7B%7D"

	testDateHeaderValue = "2020/10/04"
	testAuthHeaderValue = "Authorization Header"
	testSessionToken    = "Session Token"
)

// contractHarness adapts one native request shape to the shared suite.
type contractHarness interface {
	// NewRequest builds a native request. payload "" means no body.
	// Header names are applied exactly as given, without
	// canonicalization.
	NewRequest(t *testing.T, method, fullURI string, headers map[string]string, payload string)

	// NewRequestWithoutAuthority builds a request whose URI carries
	// only path and query. boundHost, when non-empty, is installed as
	// the shape's bound target host.
	NewRequestWithoutAuthority(t *testing.T, method, pathAndQuery string, headers map[string]string, boundHost string)

	// SupportsBoundHost reports whether the shape has a bound target
	// host distinct from its URI.
	SupportsBoundHost() bool

	Extract() (*CanonicalRequest, error)
	Attach(signature *Signature) error

	// HeaderValues returns every native header value whose name is a
	// case-insensitive match.
	HeaderValues(name string) []string
}

func defaultTestHeaders() map[string]string {
	return map[string]string{
		testHeaderOneName: testHeaderOneValue,
		testHeaderTwoName: testHeaderTwoValue,
		"host":            testEndpoint,
	}
}

func testSignature(sessionToken string) *Signature {
	return &Signature{
		HostHeader:          testHostName,
		DateHeader:          testDateHeaderValue,
		AuthorizationHeader: testAuthHeaderValue,
		SessionToken:        sessionToken,
	}
}

func assertCanonicalHeaders(t *testing.T, canonical *CanonicalRequest) {
	t.Helper()
	assert.Equal(t, map[string][]string{
		testHeaderOneName: {testHeaderOneValue},
		testHeaderTwoName: {testHeaderTwoValue},
	}, canonical.Headers, "host must be excluded, other headers retained")
}

func countHostHeaders(h contractHarness) int {
	return len(h.HeaderValues(HostHeaderName))
}

func runAdapterContract(t *testing.T, newHarness func() contractHarness) {
	t.Run("extract happy GET", func(t *testing.T) {
		h := newHarness()
		h.NewRequest(t, "GET", testFullURI, defaultTestHeaders(), "")

		canonical, err := h.Extract()
		require.NoError(t, err)

		assert.Equal(t, "GET", canonical.Method)
		assert.Equal(t, testEndpointURI, canonical.Endpoint)
		assert.Equal(t, testRequestPath, canonical.ResourcePath)
		assertCanonicalHeaders(t, canonical)
		require.NotNil(t, canonical.Body, "bodyless request must canonicalize to an empty byte sequence")
		assert.Empty(t, canonical.Body)
		assert.Equal(t, 0, canonical.QueryParams.Len())
	})

	t.Run("extract GET with encoded query", func(t *testing.T) {
		h := newHarness()
		h.NewRequest(t, "GET", testFullURI+"?"+testEncodedQuery, defaultTestHeaders(), "")

		canonical, err := h.Extract()
		require.NoError(t, err)

		assert.Equal(t, testEndpointURI, canonical.Endpoint)
		assert.Equal(t, testRequestPath, canonical.ResourcePath)
		assert.Equal(t, []string{testSparqlQuery}, canonical.QueryParams.Get("query"))
	})

	t.Run("extract happy POST", func(t *testing.T) {
		h := newHarness()
		h.NewRequest(t, "POST", testFullURI, defaultTestHeaders(), testSparqlQuery)

		canonical, err := h.Extract()
		require.NoError(t, err)

		assert.Equal(t, "POST", canonical.Method)
		assert.Equal(t, []byte(testSparqlQuery), canonical.Body)
		assertCanonicalHeaders(t, canonical)
	})

	t.Run("extract preserves trailing slash", func(t *testing.T) {
		h := newHarness()
		h.NewRequest(t, "GET", testFullURI+"/", defaultTestHeaders(), "")

		canonical, err := h.Extract()
		require.NoError(t, err)

		assert.Equal(t, testRequestPath+"/", canonical.ResourcePath)
		assert.Equal(t, testEndpointURI, canonical.Endpoint)
	})

	t.Run("extract host from URI authority", func(t *testing.T) {
		h := newHarness()
		h.NewRequest(t, "GET", testFullURI, map[string]string{
			testHeaderOneName: testHeaderOneValue,
		}, "")

		canonical, err := h.Extract()
		require.NoError(t, err)

		assert.Equal(t, testEndpointURI, canonical.Endpoint)
	})

	t.Run("extract host header wins over authority", func(t *testing.T) {
		h := newHarness()
		h.NewRequest(t, "GET", "http://other.example.org:9999"+testRequestPath, map[string]string{
			"host": testEndpoint,
		}, "")

		canonical, err := h.Extract()
		require.NoError(t, err)

		assert.Equal(t, testEndpointURI, canonical.Endpoint)
	})

	t.Run("extract host from header without authority", func(t *testing.T) {
		h := newHarness()
		h.NewRequestWithoutAuthority(t, "GET", testRequestPath, map[string]string{
			"host": testEndpoint,
		}, "")

		canonical, err := h.Extract()
		require.NoError(t, err)

		assert.Equal(t, testEndpointURI, canonical.Endpoint)
		assert.Equal(t, testRequestPath, canonical.ResourcePath)
	})

	t.Run("extract fails without resolvable host", func(t *testing.T) {
		h := newHarness()
		h.NewRequestWithoutAuthority(t, "GET", testRequestPath, map[string]string{
			testHeaderOneName: testHeaderOneValue,
		}, "")

		_, err := h.Extract()
		require.ErrorIs(t, err, ErrMissingHost)
	})

	t.Run("extract host from bound target", func(t *testing.T) {
		h := newHarness()
		if !h.SupportsBoundHost() {
			t.Skip("shape has no bound target host")
		}
		h.NewRequestWithoutAuthority(t, "GET", testRequestPath, map[string]string{
			testHeaderOneName: testHeaderOneValue,
		}, testEndpoint)

		canonical, err := h.Extract()
		require.NoError(t, err)

		assert.Equal(t, testEndpointURI, canonical.Endpoint)
	})

	t.Run("attach with session token", func(t *testing.T) {
		h := newHarness()
		h.NewRequest(t, "GET", testFullURI, map[string]string{
			testHeaderOneName: testHeaderOneValue,
			testHeaderTwoName: testHeaderTwoValue,
		}, "")

		require.NoError(t, h.Attach(testSignature(testSessionToken)))

		assert.Equal(t, []string{testHostName}, h.HeaderValues(HostHeaderName))
		assert.Equal(t, []string{testDateHeaderValue}, h.HeaderValues(AmzDateHeaderName))
		assert.Equal(t, []string{testAuthHeaderValue}, h.HeaderValues(AuthorizationHeaderName))
		assert.Equal(t, []string{testSessionToken}, h.HeaderValues(SecurityTokenHeaderName))
		assert.Equal(t, []string{testHeaderOneValue}, h.HeaderValues(testHeaderOneName))
		assert.Equal(t, []string{testHeaderTwoValue}, h.HeaderValues(testHeaderTwoName))
	})

	t.Run("attach without session token", func(t *testing.T) {
		h := newHarness()
		h.NewRequest(t, "GET", testFullURI, map[string]string{
			testHeaderOneName: testHeaderOneValue,
			testHeaderTwoName: testHeaderTwoValue,
		}, "")

		require.NoError(t, h.Attach(testSignature("")))

		assert.Empty(t, h.HeaderValues(SecurityTokenHeaderName),
			"empty session token must not produce a security token header")
		assert.Equal(t, []string{testHostName}, h.HeaderValues(HostHeaderName))
	})

	t.Run("attach replaces differently cased host header", func(t *testing.T) {
		h := newHarness()
		h.NewRequest(t, "GET", testFullURI, map[string]string{
			testHeaderOneName: testHeaderOneValue,
			"host":            "stale.example.org",
		}, "")

		require.NoError(t, h.Attach(testSignature("")))

		require.Equal(t, 1, countHostHeaders(h), "exactly one host header after attach")
		assert.Equal(t, []string{testHostName}, h.HeaderValues(HostHeaderName))
	})

	t.Run("attach rejects incomplete signature", func(t *testing.T) {
		h := newHarness()
		h.NewRequest(t, "GET", testFullURI, nil, "")

		for name, sig := range map[string]*Signature{
			"nil signature": nil,
			"missing host":  {DateHeader: testDateHeaderValue, AuthorizationHeader: testAuthHeaderValue},
			"missing date":  {HostHeader: testHostName, AuthorizationHeader: testAuthHeaderValue},
			"missing auth":  {HostHeader: testHostName, DateHeader: testDateHeaderValue},
		} {
			err := h.Attach(sig)
			assert.ErrorIs(t, err, ErrMissingRequestField, name)
		}
	})
}

// headerValuesFold collects values from a live header map for every name
// matching case-insensitively, used by the map-backed harnesses.
func headerValuesFold(headers map[string][]string, name string) []string {
	var values []string
	for key, list := range headers {
		if strings.EqualFold(key, name) {
			values = append(values, list...)
		}
	}
	return values
}
