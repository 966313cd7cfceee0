// Package neptunesign signs outbound HTTP requests for IAM-authenticated
// Amazon Neptune endpoints using AWS Signature Version 4.
//
// The package accepts a request in one of several native client shapes,
// derives a canonical client-agnostic description of it, obtains a SigV4
// signature through the AWS SDK signer, and writes the resulting Host,
// X-Amz-Date, Authorization (and, for temporary credentials,
// X-Amz-Security-Token) headers back onto the original request so it can
// be sent unmodified by its native client.
//
// # Supported request shapes
//
//   - *net/http.Request (NewHTTPSigner)
//   - *retryablehttp.Request from hashicorp/go-retryablehttp
//     (NewRetryableHTTPSigner)
//   - *smithyhttp.Request from aws/smithy-go transports (NewSmithySigner)
//   - RequestMetadata, a generic record for any other client
//     (NewMetadataSigner)
//
// Any other shape can be signed by implementing the two-method
// RequestAdapter interface and passing it to NewSigner.
//
// # Quick start
//
//	signer, err := neptunesign.NewHTTPSignerFromDefaultConfig(ctx, "us-east-1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	req, _ := http.NewRequest(http.MethodPost, "https://my-cluster:8182/sparql",
//	    strings.NewReader("query=select%20%2A%20where%20%7B%7D"))
//	if err := signer.SignRequest(ctx, req); err != nil {
//	    log.Fatal(err)
//	}
//	resp, err := http.DefaultClient.Do(req)
//
// A Signer is safe for concurrent use; its configuration is immutable
// after construction and credentials are resolved fresh on every call so
// rotation takes effect between calls.
//
// # Host handling
//
// The signing host is resolved from, in order: a host header on the
// request (first case-insensitive match wins), the request URI's
// authority, and a bound target host where the client shape has one.
// Existing host headers are replaced during attachment; every other
// header is preserved. Requests resolving no host fail with
// ErrMissingHost, wrapped in ErrSigningFailed like every other failure
// of SignRequest. A failed call leaves the request's headers exactly as
// they were.
//
// # Limits
//
// Bodies are buffered in full before signing because the signature
// commits to a payload hash; the buffered amount is capped
// (DefaultMaxBodyBytes, override with WithMaxBodyBytes). The package
// never caches signatures, never retries, and performs no request
// transmission of its own outside the bundled neptune-curl tool.
package neptunesign
