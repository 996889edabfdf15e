package dataset

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Cache is a read-through cache of the loaded Dataset. It reloads when the
// source fingerprint changes or after Clear. It is purely an optimization:
// every Get returns data equivalent to a fresh Load.
type Cache struct {
	loader *Loader
	source Source
	logger *zap.Logger

	mu          sync.Mutex
	data        *Dataset
	fingerprint string
}

// NewCache builds a cache in front of the loader.
func NewCache(loader *Loader, source Source, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{loader: loader, source: source, logger: logger}
}

// Get returns the cached dataset, loading it when absent or stale.
func (c *Cache) Get(ctx context.Context) (*Dataset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fingerprint, err := c.source.Fingerprint(ctx)
	if err != nil {
		// Let Load report the underlying problem with full context.
		c.logger.Debug("fingerprint unavailable", zap.Error(err))
		fingerprint = ""
		c.data = nil
	}

	if c.data != nil && fingerprint == c.fingerprint {
		return c.data, nil
	}

	data, err := c.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	c.data = data
	c.fingerprint = fingerprint
	return data, nil
}

// Clear drops the cached dataset so the next Get reloads it.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.data != nil {
		c.logger.Info("dataset cache cleared")
	}
	c.data = nil
	c.fingerprint = ""
}
