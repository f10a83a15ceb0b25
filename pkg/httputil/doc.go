// Package httputil provides retry support for outbound HTTP requests.
//
// [Retry] wraps image fetches with automatic retry for transient
// failures:
//
//   - Network errors
//   - 5xx server errors
//
// Wrap a transient failure in [RetryableError] to mark it for retry;
// all other errors return immediately. The delay doubles after each
// failed attempt and the surrounding context deadline caps the total
// time spent, so a fetch never outlives its per-fetch budget.
//
//	err := httputil.Retry(ctx, 3, 500*time.Millisecond, func() error {
//	    return doFetch()
//	})
package httputil
