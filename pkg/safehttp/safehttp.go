// Package safehttp validates and fetches remote image resources.
//
// Every image URL in a tier-list config is attacker-controlled input,
// so fetching is split into two steps with distinct failure modes:
//
//   - [Guard.Check] classifies the URL before any request is made. It
//     rejects non-http(s) schemes and any URL whose host resolves to a
//     private or local address. Classification runs on every call; DNS
//     results are never cached, so records cannot be swapped behind a
//     prior verdict.
//   - [Fetcher.Fetch] downloads the resource under a hard timeout and
//     byte ceiling, with redirect-following disabled. A 3xx response
//     is a failure, never followed.
//
// A positive unsafe classification aborts the whole render. A fetch
// failure is transient and scoped to one item.
//
// The private-address list is exact: IPv4 10.0.0.0/8, 172.16.0.0/12,
// 192.168.0.0/16, 127.0.0.0/8 and the literal 0.0.0.0; IPv6 loopback
// and literals starting with fc or fe80. Known gaps (169.254.0.0/16,
// fd00::/8, IPv4-mapped IPv6) stay open so the classification is the
// same across deployments; widening it is a breaking change.
package safehttp

import "time"

// Default resource bounds for remote fetches.
const (
	// DefaultFetchTimeout bounds one complete fetch, retries included.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultMaxBytes caps the response body size (8 MiB).
	DefaultMaxBytes = 8 << 20

	// DefaultRetryAttempts is the number of tries for transient failures.
	DefaultRetryAttempts = 3

	// DefaultRetryDelay is the initial backoff delay (doubles per retry).
	DefaultRetryDelay = 500 * time.Millisecond
)

// Limits holds the resource bounds applied to every fetch.
// Zero values are replaced with the package defaults.
type Limits struct {
	FetchTimeout  time.Duration `json:"fetch_timeout"`
	MaxBytes      int64         `json:"max_bytes"`
	RetryAttempts int           `json:"retry_attempts"`
	RetryDelay    time.Duration `json:"retry_delay"`
}

// DefaultLimits returns the standard fetch bounds.
func DefaultLimits() Limits {
	return Limits{
		FetchTimeout:  DefaultFetchTimeout,
		MaxBytes:      DefaultMaxBytes,
		RetryAttempts: DefaultRetryAttempts,
		RetryDelay:    DefaultRetryDelay,
	}
}

// withDefaults fills zero fields with package defaults.
func (l Limits) withDefaults() Limits {
	if l.FetchTimeout <= 0 {
		l.FetchTimeout = DefaultFetchTimeout
	}
	if l.MaxBytes <= 0 {
		l.MaxBytes = DefaultMaxBytes
	}
	if l.RetryAttempts <= 0 {
		l.RetryAttempts = DefaultRetryAttempts
	}
	if l.RetryDelay <= 0 {
		l.RetryDelay = DefaultRetryDelay
	}
	return l
}
