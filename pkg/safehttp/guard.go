package safehttp

import (
	"context"
	"net"
	"net/netip"
	"net/url"
	"strings"

	"github.com/carmex/tierMCP/pkg/errors"
)

// Resolver resolves hostnames to addresses. The signature matches
// net.Resolver so net.DefaultResolver satisfies it directly.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// privateV4 holds the blocked IPv4 ranges.
var privateV4 = []netip.Prefix{
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("127.0.0.0/8"),
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithResolver overrides the DNS resolver, mainly for tests.
func WithResolver(r Resolver) GuardOption {
	return func(g *Guard) { g.resolver = r }
}

// Guard classifies URLs before they are fetched.
type Guard struct {
	resolver Resolver
}

// NewGuard creates a Guard backed by the system resolver.
func NewGuard(opts ...GuardOption) *Guard {
	g := &Guard{resolver: net.DefaultResolver}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check validates rawURL for fetching. It returns nil only when the
// URL uses http or https and none of the host's addresses classify as
// private or local.
//
// Error codes:
//   - INVALID_SCHEME for unparseable URLs or non-http(s) schemes,
//     returned before any DNS lookup
//   - UNSAFE_RESOURCE when an address classifies as private or local
//   - FETCH_FAILED when the host does not resolve; the caller treats
//     this like any other per-item fetch failure
func (g *Guard) Check(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScheme, err, "invalid image URL")
	}

	// Scheme check precedes resolution so rejected schemes never
	// trigger a lookup.
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New(errors.ErrCodeInvalidScheme, "URL must use http or https scheme, got %q", u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return errors.New(errors.ErrCodeInvalidScheme, "URL has no host")
	}

	// Literal addresses classify without a lookup.
	if addr, err := netip.ParseAddr(host); err == nil {
		if isPrivateAddr(addr) {
			return errors.New(errors.ErrCodeUnsafeResource, "URL host %s is a private or local address", host)
		}
		return nil
	}

	// Resolution happens on every call and is never cached: a record
	// swapped after a prior verdict must be re-checked.
	addrs, err := g.resolver.LookupHost(ctx, host)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFetchFailed, err, "resolve host %s", host)
	}

	for _, a := range addrs {
		addr, err := netip.ParseAddr(a)
		if err != nil {
			continue
		}
		if isPrivateAddr(addr) {
			return errors.New(errors.ErrCodeUnsafeResource, "URL host %s resolves to a private or local address", host)
		}
	}

	return nil
}

// isPrivateAddr reports whether addr falls in the blocked set.
// The IPv6 branch matches the textual form, so IPv4-mapped addresses
// and fd00::/8 pass through; that asymmetry is part of the documented
// classification and must not be widened here.
func isPrivateAddr(addr netip.Addr) bool {
	if addr.Is4() {
		if addr.IsUnspecified() {
			return true
		}
		for _, p := range privateV4 {
			if p.Contains(addr) {
				return true
			}
		}
		return false
	}

	if addr == netip.IPv6Loopback() {
		return true
	}
	s := addr.String()
	return strings.HasPrefix(s, "fc") || strings.HasPrefix(s, "fe80")
}
