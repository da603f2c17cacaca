package prompts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"longsd/core"
	"longsd/document"
	"longsd/logging"
)

// GenerateFunc matches Generator.Generate.
type GenerateFunc func(ctx context.Context, text string) (SectionPrompts, error)

// Cache stores one SectionPrompts per document as JSON and keeps an
// append-only history of every generation next to it.
type Cache struct {
	generate GenerateFunc
	logger   *logging.Logger
}

// NewCache returns a Cache backed by generate. A nil logger discards output.
func NewCache(generate GenerateFunc, logger *logging.Logger) *Cache {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Cache{generate: generate, logger: logger.Named("cache")}
}

// LoadOrCreate returns the cached prompts for doc, or generates and stores
// them when the cache file is absent or overwrite is set.
//
// A cached file is returned as is, even if text has changed since it was
// written. An unreadable cache file is a CORRUPT_CACHE ConfigError and is
// left untouched.
func (c *Cache) LoadOrCreate(ctx context.Context, doc document.Document, text string, overwrite bool) (SectionPrompts, error) {
	if !overwrite {
		sp, err := Load(doc.CachePath)
		switch {
		case err == nil:
			c.logger.Debug("Reading prompts from cache", zap.String("path", doc.CachePath))
			return sp, nil
		case !errors.Is(err, os.ErrNotExist):
			return nil, err
		}
	}

	sp, err := c.generate(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := c.store(doc, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

// Load decodes a cache file. A missing file satisfies errors.Is(err,
// os.ErrNotExist); decode failures become CORRUPT_CACHE ConfigErrors.
func Load(path string) (SectionPrompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prompts: read cache: %w", err)
	}

	var sp SectionPrompts
	if err := json.Unmarshal(data, &sp); err != nil {
		return nil, core.ErrCorruptCache(path, err)
	}
	return sp, nil
}

func (c *Cache) store(doc document.Document, sp SectionPrompts) error {
	data, err := sp.Encode()
	if err != nil {
		return fmt.Errorf("prompts: encode: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(doc.CachePath), 0755); err != nil {
		return fmt.Errorf("prompts: create cache dir: %w", err)
	}

	c.logger.Debug("Appending prompts to history", zap.String("path", doc.LogPath))
	if err := appendFile(doc.LogPath, data); err != nil {
		return fmt.Errorf("prompts: append history: %w", err)
	}

	c.logger.Debug("Writing prompts cache", zap.String("path", doc.CachePath))
	if err := os.WriteFile(doc.CachePath, data, 0644); err != nil {
		return fmt.Errorf("prompts: write cache: %w", err)
	}
	return nil
}

func appendFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
