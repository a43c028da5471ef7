// Package imagecache keeps downloaded images on disk so repeated samples of
// the same catalogue URL skip the network.
package imagecache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Cache stores image bytes under a directory, keyed by URL.
type Cache struct {
	dir string
}

// DefaultDir returns the default cache directory path.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		// Fallback to home directory if cache dir not available.
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "huepick", "images"), nil
	}
	return filepath.Join(cacheDir, "huepick", "images"), nil
}

// New returns a cache rooted at dir, or at DefaultDir when dir is empty.
// The directory is created on first write.
func New(dir string) (*Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Path returns the file an image for url is cached at.
func (c *Cache) Path(url string) string {
	return filepath.Join(c.dir, Key(url))
}

// Get returns the cached bytes for url.
func (c *Cache) Get(url string) ([]byte, bool, error) {
	data, err := os.ReadFile(c.Path(url))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached image: %w", err)
	}
	return data, true, nil
}

// Put stores data for url, replacing any previous entry. The write goes
// through a temporary file so readers never see a partial image.
func (c *Cache) Put(url string, data []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, ".partial-*")
	if err != nil {
		return fmt.Errorf("failed to write cached image: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.Path(url)); err != nil {
		return fmt.Errorf("failed to write cached image: %w", err)
	}
	return nil
}

// Key derives a deterministic filename from a URL: the first 16 bytes of its
// SHA-256 plus the original extension, defaulting to .img.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	name := hex.EncodeToString(sum[:16])

	path := url
	if idx := strings.IndexAny(path, "?#"); idx != -1 {
		path = path[:idx]
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" || len(ext) > 5 || strings.ContainsAny(ext, "/\\") {
		ext = ".img"
	}
	return name + ext
}
