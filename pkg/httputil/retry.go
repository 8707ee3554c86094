package httputil

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryableError marks a failure as transient.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as a [RetryableError]. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err is wrapped with [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Policy describes how transient registry failures are retried.
type Policy struct {
	Attempts int           // Total calls, including the first. Values below 1 mean 1.
	Delay    time.Duration // Wait before the first retry; doubled after each one.
	MaxDelay time.Duration // Upper bound for the wait. Zero means unbounded.
}

// DefaultPolicy is used by [RetryWithBackoff] for crates.io requests.
var DefaultPolicy = Policy{Attempts: 3, Delay: time.Second, MaxDelay: 4 * time.Second}

// Do calls fn until it succeeds, fails with an error that is not a
// [RetryableError], or the attempts are used up. The last error is
// returned, or ctx.Err() if ctx ends while waiting.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.Delay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	if p.MaxDelay > 0 {
		b.MaxInterval = p.MaxDelay
	} else {
		b.MaxInterval = time.Duration(math.MaxInt64)
	}
	b.Reset()

	retries := uint64(max(p.Attempts, 1) - 1)
	return backoff.Retry(func() error {
		err := fn()
		if err != nil && !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(b, retries), ctx))
}

// RetryWithBackoff runs fn under [DefaultPolicy].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultPolicy.Do(ctx, fn)
}
