package provider

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/stonevault/svtk/svtkerr"
)

// FetchTimeout bounds a single provider call per spec §5 ("each provider
// call is bounded to 30 seconds; a timeout is a provider failure
// equivalent to Network").
const FetchTimeout = 30 * time.Second

// WithRetry wraps fn with an exponential backoff retry policy and enforces
// FetchTimeout on the whole attempt sequence via ctx. Concrete providers use
// this to wrap their underlying HTTP round trip; transient transport errors
// are retried, context cancellation/timeout is not.
func WithRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
	defer cancel()

	policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	return backoff.Retry(func() error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			// Context already expired or was cancelled: stop retrying.
			return backoff.Permanent(err)
		}
		if !svtkerr.Is(err, svtkerr.Network) {
			// Only transport failures are worth retrying; Api and
			// PriceNotAvailable are the provider's final word.
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}
