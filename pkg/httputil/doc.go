// Package httputil provides retry helpers for registry HTTP clients.
//
// Transient failures (connection errors, 5xx responses) are wrapped in
// [RetryableError] by the caller. A [Policy] re-runs the operation with
// exponential backoff and gives up immediately on anything else:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetchCrate(ctx, name)
//	})
package httputil
