package neptunesign

// Signature carries the header values computed by one signing attempt.
// It is handed to the adapter's AttachSignature immediately after being
// built and has no life beyond that call.
type Signature struct {
	// HostHeader is the Host header value the signature committed to.
	HostHeader string

	// DateHeader is the X-Amz-Date value of the signing instant.
	DateHeader string

	// AuthorizationHeader is the complete SigV4 Authorization value.
	AuthorizationHeader string

	// SessionToken is the temporary-credential session token. The
	// empty string means the credentials carried no token, and no
	// X-Amz-Security-Token header may be attached.
	SessionToken string
}

func (s *Signature) validate() error {
	if s == nil {
		return NewMissingFieldError("signature")
	}
	if s.HostHeader == "" {
		return NewMissingFieldError("signed Host header")
	}
	if s.DateHeader == "" {
		return NewMissingFieldError("signed X-Amz-Date header")
	}
	if s.AuthorizationHeader == "" {
		return NewMissingFieldError("signed Authorization header")
	}
	return nil
}
