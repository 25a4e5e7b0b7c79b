// Package imagecache provides utilities for downloading and caching remote images.
package imagecache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/jmylchreest/swatch/internal/security"
	httputil "github.com/jmylchreest/swatch/internal/util/http"
)

// CacheOptions configures image caching behavior.
type CacheOptions struct {
	// CacheDir is the directory where images will be cached.
	// If empty, defaults to ~/.cache/swatch/images
	CacheDir string

	// Filename is the filename to use for the cached image.
	// If empty, uses a hash of the URL + original extension.
	Filename string

	// AllowOverwrite determines if existing cached files can be overwritten.
	// Default: false (reuse existing cached files).
	AllowOverwrite bool

	// Fetch controls timeouts, headers and size limits for the download.
	Fetch httputil.FetchOptions
}

// DefaultCacheDir returns the default cache directory path.
func DefaultCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		// Fallback to home directory if cache dir not available.
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "swatch", "images"), nil
	}
	return filepath.Join(cacheDir, "swatch", "images"), nil
}

// generateFilename creates a deterministic filename from a URL.
// Uses the xxHash64 of the URL + original file extension.
func generateFilename(url string) string {
	hashStr := fmt.Sprintf("%016x", xxhash.Sum64String(url))

	// Extract extension from URL (if present), ignoring any query string.
	path := url
	if idx := strings.IndexAny(path, "?#"); idx != -1 {
		path = path[:idx]
	}
	ext := filepath.Ext(path)
	// Default to .jpg if no extension found.
	if ext == "" || len(ext) > 5 {
		ext = ".jpg"
	}

	return hashStr + ext
}

// DownloadAndCache downloads a remote image and saves it to the cache directory.
// Returns the local file path where the image was saved.
func DownloadAndCache(ctx context.Context, url string, opts CacheOptions) (string, error) {
	if err := security.ValidateImageURL(url); err != nil {
		return "", err
	}

	// Determine cache directory.
	cacheDir := opts.CacheDir
	if cacheDir == "" {
		defaultDir, err := DefaultCacheDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		cacheDir = defaultDir
	}

	// Create cache directory if it doesn't exist.
	if err := os.MkdirAll(cacheDir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	// Determine filename.
	filename := opts.Filename
	if filename == "" {
		filename = generateFilename(url)
	}

	// Full path to cached file.
	cachedPath := filepath.Join(cacheDir, filename)

	// Check if file already exists.
	if !opts.AllowOverwrite {
		if _, err := os.Stat(cachedPath); err == nil {
			// File exists - return cached path.
			return cachedPath, nil
		}
	}

	// Download the image.
	data, err := httputil.Fetch(ctx, url, opts.Fetch)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}

	if err := writeFileAtomic(cachedPath, data); err != nil {
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}

	return cachedPath, nil
}

// writeFileAtomic writes data next to path and renames it into place, so
// a reader never sees a partially written cache entry.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil { // #nosec G302 - Cache files need standard read permissions
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
