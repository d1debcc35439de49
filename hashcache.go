package adrules

import (
	"encoding/json"
	"io"
	"os"
	"sync"
)

// HashCache remembers the content hash of every source from the last successful
// download. It's used to skip rewriting unchanged lists.
type HashCache interface {
	// Returns the stored hash for a source URL.
	Lookup(url string) (string, bool)

	// Records a new hash for a source URL.
	Store(url, hash string)

	// Persists pending changes.
	Flush() error
}

// FileHashCache keeps hashes in memory and persists them as a JSON object of
// URL to hash in a single file.
type FileHashCache struct {
	filename string
	mu       sync.Mutex
	hashes   map[string]string
	dirty    bool
}

var _ HashCache = &FileHashCache{}

// NewFileHashCache loads the cache from filename. A missing or unreadable file
// results in an empty cache, which only means every list is rewritten once.
func NewFileHashCache(filename string) *FileHashCache {
	c := &FileHashCache{
		filename: filename,
		hashes:   make(map[string]string),
	}
	b, err := os.ReadFile(filename)
	if err != nil {
		if !os.IsNotExist(err) {
			Log.WithError(err).WithField("file", filename).Warn("failed to read hash cache, starting empty")
		}
		return c
	}
	if err := json.Unmarshal(b, &c.hashes); err != nil {
		Log.WithError(err).WithField("file", filename).Warn("failed to decode hash cache, starting empty")
		c.hashes = make(map[string]string)
	}
	return c
}

func (c *FileHashCache) Lookup(url string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.hashes[url]
	return h, ok
}

func (c *FileHashCache) Store(url, hash string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hashes[url] == hash {
		return
	}
	c.hashes[url] = hash
	c.dirty = true
}

// Flush writes the cache to disk if it changed since it was loaded.
func (c *FileHashCache) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}
	err := writeFileAtomic(c.filename, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c.hashes)
	})
	if err != nil {
		return err
	}
	c.dirty = false
	return nil
}

// Len returns the number of cached hashes.
func (c *FileHashCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.hashes)
}
