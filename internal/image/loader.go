// Package image provides utilities for loading and decoding images.
package image

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/security"
	httputil "github.com/jmylchreest/swatch/internal/util/http"
	"github.com/jmylchreest/swatch/internal/util/imagecache"
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads and decodes an image from the given path.
	Load(ctx context.Context, path string) (*colour.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP, BMP, TIFF, AVIF, optionally
// wrapped in gzip, xz or bzip2.
func (l *FileLoader) Load(_ context.Context, path string) (*colour.Image, error) {
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

	return Decode(data, path)
}

// ValidateImagePath checks if the given path is valid and points to a supported image file or directory.
// For local files, it verifies the file exists and its header can be decoded.
// For directories, it verifies the directory exists (actual scanning happens later).
// For HTTP(S) URLs, it only validates the URL (actual fetching happens later).
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}

	if security.IsURL(path) {
		return security.ValidateImageURL(path)
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

	data, err := os.ReadFile(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}

	if _, _, err := DecodeConfig(data); err != nil {
		return &colour.DecodeError{Source: path, Err: fmt.Errorf("unsupported or invalid image format: %w", err)}
	}

	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff", ".avif"}
}

// compressedExtensions are wrappers Decode unwraps transparently.
var compressedExtensions = []string{".gz", ".xz", ".bz2"}

// isImageFile checks if a file has a supported image extension, looking
// through one compression suffix (photo.png.xz).
func isImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if slices.Contains(compressedExtensions, ext) {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}
	return slices.Contains(SupportedImageExtensions(), ext)
}

// ScanDirectoryForImages scans a directory and returns all valid image files.
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
			// Skip entries we can't stat (broken symlinks, permission issues).
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

	return imageFiles, nil
}

// SelectRandomImage selects a random image from a list of image paths.
// Uses crypto/rand for cryptographically secure randomness.
func SelectRandomImage(imagePaths []string) (string, error) {
	if len(imagePaths) == 0 {
		return "", fmt.Errorf("image path list is empty")
	}

	maxIndex := big.NewInt(int64(len(imagePaths)))
	randomIndex, err := rand.Int(rand.Reader, maxIndex)
	if err != nil {
		// Fallback to using binary random bytes if crypto/rand.Int fails.
		var buf [8]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		index := int(binary.LittleEndian.Uint64(buf[:]) % uint64(len(imagePaths)))
		return imagePaths[index], nil
	}

	return imagePaths[randomIndex.Int64()], nil
}

// ResolveImagePath resolves a path that could be a file or directory.
// If the path is a directory, it scans for images and returns a random one.
// Files and HTTP(S) URLs are returned as-is.
func ResolveImagePath(path string) (string, error) {
	if security.IsURL(path) {
		return path, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return path, nil
	}

	imageFiles, err := ScanDirectoryForImages(path)
	if err != nil {
		return "", err
	}

	return SelectRandomImage(imageFiles)
}

// SmartLoaderOptions configures remote image handling.
type SmartLoaderOptions struct {
	// Cache stores fetched images on disk and reuses them on later runs.
	Cache bool

	// CacheDir overrides the default cache directory.
	CacheDir string

	// Fetch controls timeouts, headers and size limits for remote images.
	Fetch httputil.FetchOptions
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader *FileLoader
	opts       SmartLoaderOptions
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader(opts SmartLoaderOptions) *SmartLoader {
	return &SmartLoader{
		fileLoader: NewFileLoader(),
		opts:       opts,
	}
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, path string) (*colour.Image, error) {
	if !security.IsURL(path) {
		return l.fileLoader.Load(ctx, path)
	}

	if err := security.ValidateImageURL(path); err != nil {
		return nil, err
	}

	if l.opts.Cache {
		cached, err := imagecache.DownloadAndCache(ctx, path, imagecache.CacheOptions{CacheDir: l.opts.CacheDir, Fetch: l.opts.Fetch})
		if err != nil {
			return nil, fmt.Errorf("failed to cache image from URL: %w", err)
		}
		return l.fileLoader.Load(ctx, cached)
	}

	data, err := httputil.Fetch(ctx, path, l.opts.Fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}

	return Decode(data, path)
}
