package cache

// ScopedKeyer wraps a Keyer with a prefix so separate deployments can
// share one backend without key collisions. The serve command builds
// one when the config sets a Redis namespace.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// FetchKey generates a prefixed key for fetched image bytes.
func (k *ScopedKeyer) FetchKey(url string) string {
	return k.prefix + k.inner.FetchKey(url)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(configHash, opts)
}
