// Package image provides utilities for loading and decoding product images.
package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/huepick/internal/colour"
	"github.com/jmylchreest/huepick/internal/security"
	httputil "github.com/jmylchreest/huepick/internal/util/http"
	"github.com/jmylchreest/huepick/internal/util/imagecache"
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads and decodes the image at path.
	Load(ctx context.Context, path string) (colour.Raster, error)
}

// DefaultMaxPixels caps width*height of a decoded image. Decoding allocates
// four bytes per pixel before any downscaling.
const DefaultMaxPixels int64 = 40_000_000

// ErrTooManyPixels is wrapped by the DecodeError returned for images whose
// declared dimensions exceed the pixel limit.
var ErrTooManyPixels = errors.New("image has too many pixels")

// DecodeBytes decodes an in-memory image with DefaultMaxPixels.
func DecodeBytes(data []byte) (colour.Raster, string, error) {
	return DecodeBytesLimit(data, DefaultMaxPixels)
}

// DecodeBytesLimit decodes an in-memory image into a Raster and reports the
// detected format. The header is checked against maxPixels (DefaultMaxPixels
// when <= 0) before the pixel data is decoded. Any failure, including empty
// input, is returned as a *colour.DecodeError.
func DecodeBytesLimit(data []byte, maxPixels int64) (colour.Raster, string, error) {
	if len(data) == 0 {
		return nil, "", &colour.DecodeError{Err: errors.New("no image data")}
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, format, newDecodeError(format, err)
	}
	if n := int64(cfg.Width) * int64(cfg.Height); n > maxPixels {
		return nil, format, &colour.DecodeError{
			Format: format,
			Err:    fmt.Errorf("%w: %dx%d exceeds %d", ErrTooManyPixels, cfg.Width, cfg.Height, maxPixels),
		}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, newDecodeError(format, err)
	}
	return colour.FromImage(img), format, nil
}

func newDecodeError(format string, err error) *colour.DecodeError {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = fmt.Errorf("truncated or empty image data: %w", err)
	}
	return &colour.DecodeError{Format: format, Err: err}
}

// FileLoader loads images from the local filesystem.
type FileLoader struct {
	// MaxPixels caps decoded image size; zero means DefaultMaxPixels.
	MaxPixels int64
}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP, BMP.
func (l *FileLoader) Load(_ context.Context, path string) (colour.Raster, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}

	raster, _, err := DecodeBytesLimit(data, l.MaxPixels)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return raster, nil
}

// SmartLoaderOptions configures remote downloads. Zero values use the fetch
// defaults.
type SmartLoaderOptions struct {
	Timeout  time.Duration
	MaxBytes int64

	// AllowPrivateHosts permits URLs on loopback and private networks, such
	// as a shop's own image server.
	AllowPrivateHosts bool

	// Cache, when set, serves repeat URL loads from disk.
	Cache *imagecache.Cache

	// MaxPixels caps decoded image size; zero means DefaultMaxPixels.
	MaxPixels int64
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader   *FileLoader
	fetch        httputil.FetchOptions
	allowPrivate bool
	cache        *imagecache.Cache
	maxPixels    int64
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader(opts SmartLoaderOptions) *SmartLoader {
	return &SmartLoader{
		fileLoader: &FileLoader{MaxPixels: opts.MaxPixels},
		fetch: httputil.FetchOptions{
			Timeout:           opts.Timeout,
			MaxBytes:          opts.MaxBytes,
			AllowPrivateHosts: opts.AllowPrivateHosts,
		},
		allowPrivate: opts.AllowPrivateHosts,
		cache:        opts.Cache,
		maxPixels:    opts.MaxPixels,
	}
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, path string) (colour.Raster, error) {
	if IsURL(path) {
		return l.loadFromURL(ctx, path)
	}
	return l.fileLoader.Load(ctx, path)
}

func (l *SmartLoader) loadFromURL(ctx context.Context, url string) (colour.Raster, error) {
	if err := security.ValidateImageURL(url, l.allowPrivate); err != nil {
		return nil, err
	}

	if l.cache != nil {
		data, ok, err := l.cache.Get(url)
		if err != nil {
			return nil, err
		}
		if ok {
			raster, _, err := DecodeBytesLimit(data, l.maxPixels)
			if err == nil {
				return raster, nil
			}
			if errors.Is(err, ErrTooManyPixels) {
				return nil, fmt.Errorf("%s: %w", url, err)
			}
			// A corrupt entry is refetched below.
		}
	}

	data, err := httputil.Fetch(ctx, url, l.fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}

	raster, _, err := DecodeBytesLimit(data, l.maxPixels)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}

	if l.cache != nil {
		if err := l.cache.Put(url, data); err != nil {
			return nil, err
		}
	}
	return raster, nil
}

// IsURL reports whether path is an HTTP(S) URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ValidateImagePath checks that path is an HTTP(S) URL, a directory, or a
// file whose header decodes as a supported image format.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}
	if IsURL(path) {
		// Fetched later; validating here would download twice.
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file or directory not found: %s", path)
		}
		return fmt.Errorf("failed to access image path: %w", err)
	}
	if info.IsDir() {
		return nil
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return &colour.DecodeError{Err: fmt.Errorf("unsupported or invalid image format: %w", err)}
	}
	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"}
}

func isImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// ScanDirectoryForImages returns the image files in dirPath, sorted by name.
// It does not recurse into subdirectories, but follows symlinks.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var imageFiles []string
	for _, entry := range entries {
		fullPath := filepath.Join(dirPath, entry.Name())

		// For symlinks, stat the target to determine if it's a file.
		info, err := os.Stat(fullPath)
		if err != nil {
			continue
		}
		if info.IsDir() {
			continue
		}
		if isImageFile(entry.Name()) {
			imageFiles = append(imageFiles, fullPath)
		}
	}

	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("no supported image files found in directory: %s", dirPath)
	}

	sort.Strings(imageFiles)
	return imageFiles, nil
}

// ResolveImagePaths expands path into the images to analyse. A directory
// yields every image inside it; files and URLs are returned as-is.
func ResolveImagePaths(path string) ([]string, error) {
	if IsURL(path) {
		return []string{path}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return ScanDirectoryForImages(path)
}
