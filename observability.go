package neptunesign

import (
	"context"
	"time"
)

// ObservabilityHook receives callbacks around each signing attempt.
// Implementations can forward to whatever metrics or tracing system the
// application uses. Hooks run on the calling goroutine and must be safe
// for concurrent use, since a Signer may be shared across goroutines.
type ObservabilityHook interface {
	// OnSignStart is called before the request is canonicalized.
	OnSignStart(ctx context.Context)

	// OnSignComplete is called after the attempt finishes, with the
	// total duration and the error (nil on success).
	OnSignComplete(ctx context.Context, duration time.Duration, err error)
}

// NoOpObservabilityHook is the default hook; it does nothing.
type NoOpObservabilityHook struct{}

func (NoOpObservabilityHook) OnSignStart(ctx context.Context)                                     {}
func (NoOpObservabilityHook) OnSignComplete(ctx context.Context, duration time.Duration, err error) {}
