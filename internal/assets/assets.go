// Package assets handles skeleton document loading and caching.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Faultbox/armature/pkg/formats"
	"github.com/Faultbox/armature/pkg/skeleton"
)

// extensions tried when a requested name has no extension.
var extensions = []string{".skel.yaml", ".skel.yml", ".yaml", ".yml"}

// Manager loads skeleton documents from a set of directories.
type Manager struct {
	dirs  []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddDir adds a skeleton directory to the manager.
// Directories are searched in reverse order (last added = highest priority).
func (m *Manager) AddDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("adding skeleton dir %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding skeleton dir %s: not a directory", path)
	}

	m.mu.Lock()
	m.dirs = append(m.dirs, path)
	m.mu.Unlock()

	return nil
}

// Dirs returns the registered directories in search priority order.
func (m *Manager) Dirs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.dirs))
	for i, dir := range m.dirs {
		out[len(m.dirs)-1-i] = dir
	}
	return out
}

// Load returns the skeleton data for the given name, parsing and caching
// it on first use. The name may omit the file extension.
func (m *Manager) Load(name string) (*skeleton.SkeletonData, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.dirs) - 1; i >= 0; i-- {
		path, ok := resolve(m.dirs[i], name)
		if !ok {
			continue
		}
		data, err := formats.ParseSkelFile(path)
		if err != nil {
			return nil, err
		}
		m.cache.Set(name, data)
		return data, nil
	}

	return nil, fmt.Errorf("skeleton not found: %s", name)
}

// Invalidate drops a cached document so the next Load reparses it.
func (m *Manager) Invalidate(name string) {
	m.cache.Remove(name)
}

// Clear drops all cached documents.
func (m *Manager) Clear() {
	m.cache.Clear()
}

// CacheStats returns cache hit and miss counts.
func (m *Manager) CacheStats() (hits, misses int) {
	return m.cache.Stats()
}

// resolve finds the file for name under dir, trying known extensions when
// the name has none.
func resolve(dir, name string) (string, bool) {
	if filepath.Ext(name) != "" {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
		return "", false
	}
	for _, ext := range extensions {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Cache is a simple in-memory cache for parsed skeleton documents.
type Cache struct {
	data map[string]*skeleton.SkeletonData
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*skeleton.SkeletonData),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (*skeleton.SkeletonData, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data *skeleton.SkeletonData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Remove drops a single item from cache.
func (c *Cache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*skeleton.SkeletonData)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
