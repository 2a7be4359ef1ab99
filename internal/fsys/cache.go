package fsys

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tacogips/mdocs/internal/debug"
)

type ancestorKey struct {
	marker string
	dir    string
}

type ancestorResult struct {
	path string
	ok   bool
}

// CachedFileSystem memoizes ReadFile and FindNearestAncestor of an underlying
// FileSystem for the duration of one run. Snippets inlined by many templates
// and the per-template manifest lookups hit the cache after the first call.
// Writes drop the written path and every cached ancestor lookup.
type CachedFileSystem struct {
	FileSystem

	reads     *lru.Cache[string, string]
	ancestors *lru.Cache[ancestorKey, ancestorResult]
}

// NewCachedFileSystem wraps inner with LRU caches holding up to size entries each.
func NewCachedFileSystem(inner FileSystem, size int) (*CachedFileSystem, error) {
	reads, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	ancestors, err := lru.New[ancestorKey, ancestorResult](size)
	if err != nil {
		return nil, err
	}
	return &CachedFileSystem{
		FileSystem: inner,
		reads:      reads,
		ancestors:  ancestors,
	}, nil
}

// ReadFile returns the cached content of path, reading it on a miss.
func (c *CachedFileSystem) ReadFile(path string) (string, error) {
	if content, ok := c.reads.Get(path); ok {
		debug.Debug("[fsys] cache hit: %s", path)
		return content, nil
	}
	content, err := c.FileSystem.ReadFile(path)
	if err != nil {
		return "", err
	}
	c.reads.Add(path, content)
	return content, nil
}

// WriteFile writes through and invalidates cached state for path.
func (c *CachedFileSystem) WriteFile(path, content string) error {
	c.reads.Remove(path)
	c.ancestors.Purge()
	return c.FileSystem.WriteFile(path, content)
}

// FindNearestAncestor returns the cached lookup result, walking the tree on a miss.
func (c *CachedFileSystem) FindNearestAncestor(marker, startDir string) (string, bool, error) {
	key := ancestorKey{marker: marker, dir: startDir}
	if res, ok := c.ancestors.Get(key); ok {
		return res.path, res.ok, nil
	}
	path, ok, err := c.FileSystem.FindNearestAncestor(marker, startDir)
	if err != nil {
		return "", false, err
	}
	c.ancestors.Add(key, ancestorResult{path: path, ok: ok})
	return path, ok, nil
}

// Len returns the number of cached file reads.
func (c *CachedFileSystem) Len() int {
	return c.reads.Len()
}
