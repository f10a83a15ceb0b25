package cache

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"time"
)

// FileCache implements a file-based cache for CLI usage.
// Entries are stored as raw payload bytes behind a fixed-size expiry
// header. Payloads are mostly PNG and image bytes, so no re-encoding
// is applied on the way in or out.
type FileCache struct {
	dir string
}

// entryHeaderLen is the size of the expiry header: a big-endian uint64
// holding the expiration time in unix nanoseconds, 0 for no expiry.
const entryHeaderLen = 8

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get retrieves a value from the cache.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if len(raw) < entryHeaderLen {
		// Truncated entry - treat as miss
		_ = os.Remove(path)
		return nil, false, nil
	}

	// Check expiration
	expires := binary.BigEndian.Uint64(raw[:entryHeaderLen])
	if expires != 0 && time.Now().After(time.Unix(0, int64(expires))) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return raw[entryHeaderLen:], true, nil
}

// Set stores a value in the cache.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var expires uint64
	if ttl > 0 {
		expires = uint64(time.Now().Add(ttl).UnixNano())
	}

	raw := make([]byte, entryHeaderLen+len(data))
	binary.BigEndian.PutUint64(raw[:entryHeaderLen], expires)
	copy(raw[entryHeaderLen:], data)

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, raw, 0644)
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	path := c.path(key)
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// path converts a cache key to a file path.
// Uses a simple hash-based directory structure to avoid too many files in one dir.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	// Use first 2 chars as subdirectory for distribution
	subdir := hash[:2]
	filename := hash[2:] + ".bin"
	return filepath.Join(c.dir, subdir, filename)
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
