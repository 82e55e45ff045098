package solver

import (
	"fmt"
	"os"
	"sync"

	"gto-rangelab/server/strategy"
)

// ResultCache keeps decoded trees around so repeated trainer sessions on
// the same spot don't re-read multi-megabyte dumps.
type ResultCache struct {
	mu    sync.Mutex
	trees map[string]*strategy.Node
}

func NewResultCache() *ResultCache {
	return &ResultCache{trees: map[string]*strategy.Node{}}
}

// Load returns the tree dumped at path, decoding it on first use.
func (c *ResultCache) Load(path string) (*strategy.Node, error) {
	c.mu.Lock()
	if root, ok := c.trees[path]; ok {
		c.mu.Unlock()
		return root, nil
	}
	c.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read result: %w", err)
	}
	root, err := strategy.ParseTree(data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.trees[path] = root
	c.mu.Unlock()
	return root, nil
}

// Evict drops one cached tree, for when a spot gets re-solved.
func (c *ResultCache) Evict(path string) {
	c.mu.Lock()
	delete(c.trees, path)
	c.mu.Unlock()
}
