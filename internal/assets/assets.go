// Package assets handles mesh loading and caching.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Faultbox/seraph/internal/logger"
)

// ErrPending is returned by Future.Result before the load has finished.
var ErrPending = errors.New("assets: result not ready")

// MeshDir is the directory under the asset root that holds OBJ meshes.
const MeshDir = "geo"

// Manager loads assets from a root directory. Loads run on their own
// goroutines; concurrent loads of the same mesh share one read.
type Manager struct {
	root  string
	cache *Cache
	group singleflight.Group
}

// NewManager creates a new asset manager rooted at dir.
func NewManager(dir string) *Manager {
	return &Manager{
		root:  dir,
		cache: NewCache(),
	}
}

// Root returns the asset root directory.
func (m *Manager) Root() string {
	return m.root
}

// Path resolves a path relative to the asset root.
func (m *Manager) Path(rel string) string {
	return filepath.Join(m.root, filepath.FromSlash(rel))
}

// LoadMesh starts loading geo/<name>.obj and returns immediately.
func (m *Manager) LoadMesh(name string) *Future[*Mesh] {
	if mesh, ok := m.cache.Get(name); ok {
		return Resolved(mesh, nil)
	}

	f := newFuture[*Mesh]()
	go func() {
		v, err, _ := m.group.Do(name, func() (any, error) {
			return m.readMesh(name)
		})
		if err != nil {
			// callers decide how loudly to report a missing asset
			logger.Debug("mesh load failed", zap.String("mesh", name), zap.Error(err))
			f.resolve(nil, err)
			return
		}
		f.resolve(v.(*Mesh), nil)
	}()
	return f
}

func (m *Manager) readMesh(name string) (*Mesh, error) {
	if mesh, ok := m.cache.Get(name); ok {
		return mesh, nil
	}

	path := m.Path(filepath.Join(MeshDir, name+".obj"))
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mesh %s: %w", name, err)
	}
	defer file.Close()

	mesh, err := ParseOBJ(file, name)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	logger.Debug("mesh loaded",
		zap.String("mesh", name),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", len(mesh.Indices)/3),
	)
	m.cache.Set(name, mesh)
	return mesh, nil
}

// Close drops every cached asset.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded meshes.
type Cache struct {
	data map[string]*Mesh
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*Mesh),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (*Mesh, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	mesh, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return mesh, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, mesh *Mesh) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = mesh
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*Mesh)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
