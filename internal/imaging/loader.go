package imaging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/patrickmn/go-cache"
)

// DefaultCacheTTL is how long a decoded image stays cached after its last load.
const DefaultCacheTTL = 10 * time.Minute

// ImageCache caches decoded buffers keyed by file path to avoid redundant disk reads.
//
// Entries expire after the configured TTL, so a long-running server does not hold
// every image it has ever seen. Buffers are keyed by the exact path string, so
// relative and absolute paths to the same file are cached separately.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Example Usage
//
//	cache := imaging.NewImageCache(imaging.DefaultCacheTTL)
//	buf, err := cache.Load("/path/to/image.png")
//	if err != nil {
//	    return err
//	}
//	cache.Evict("/path/to/image.png") // Optional: free memory early
type ImageCache struct {
	items *cache.Cache
}

// NewImageCache creates an empty cache whose entries live for ttl.
// A non-positive ttl selects DefaultCacheTTL.
func NewImageCache(ttl time.Duration) *ImageCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ImageCache{
		items: cache.New(ttl, 2*ttl),
	}
}

// Load retrieves a buffer from the cache or decodes it from disk.
//
// Supported formats are PNG and JPEG. RGBA sources keep their alpha channel,
// so the returned buffer has 3 or 4 channels.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a valid PNG or JPEG image
func (c *ImageCache) Load(path string) (*Buffer, error) {
	if v, ok := c.items.Get(path); ok {
		return v.(*Buffer), nil
	}

	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}

	buf := FromImage(img, true)
	c.items.SetDefault(path, buf)
	return buf, nil
}

// LoadBatch loads every path in order. The first failure aborts the batch.
func (c *ImageCache) LoadBatch(paths []string) (Batch, error) {
	batch := make(Batch, 0, len(paths))
	for _, p := range paths {
		buf, err := c.Load(p)
		if err != nil {
			return nil, err
		}
		batch = append(batch, buf)
	}
	return batch, nil
}

// Len returns the number of cached, unexpired buffers.
func (c *ImageCache) Len() int {
	return c.items.ItemCount()
}

// Clear removes all buffers from the cache.
func (c *ImageCache) Clear() {
	c.items.Flush()
}

// Evict removes a specific buffer from the cache by its path.
// If the path is not cached, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.items.Delete(path)
}

// SavePNG writes the buffer to path as an opaque PNG, creating parent
// directories as needed. A missing ".png" extension is appended.
//
// Returns the path actually written.
func SavePNG(path string, b *Buffer) (string, error) {
	img, err := b.ToNRGBA()
	if err != nil {
		return "", err
	}

	if !strings.EqualFold(filepath.Ext(path), ".png") {
		path += ".png"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return path, nil
}
