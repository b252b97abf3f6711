package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Cache persists a RawTable snapshot at a fixed path. It is written once on a
// cold start and never refreshed: a present file always wins over the network,
// regardless of age.
type Cache struct {
	Path   string
	Logger *zap.Logger
}

// Load reads the cached snapshot. A missing file is not an error and returns
// ok=false; an unreadable or undecodable file is fatal to the caller.
func (c *Cache) Load() (*RawTable, bool, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read cache %s: %w", c.Path, err)
	}

	var t RawTable
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, false, fmt.Errorf("corrupt cache %s: %w", c.Path, err)
	}

	c.Logger.Info("Loaded data from cache",
		zap.String("path", c.Path),
		zap.Int("rows", len(t.Rows)))
	return &t, true, nil
}

// Store writes the snapshot. Called only during startup, before the server
// accepts any interaction events.
func (c *Cache) Store(t *RawTable) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := os.WriteFile(c.Path, data, 0o644); err != nil {
		return fmt.Errorf("write cache %s: %w", c.Path, err)
	}
	c.Logger.Info("Wrote cache", zap.String("path", c.Path), zap.Int("rows", len(t.Rows)))
	return nil
}
