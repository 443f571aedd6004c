package mockdata

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/angas/loadshift-go/types"
	"github.com/fsnotify/fsnotify"
)

// fixtureCache reads fixture files of the form {zone}_{date}.prices.json and
// {zone}_{date}.loads.json, keeping parsed results until the file changes
// on disk.
type fixtureCache struct {
	logger *slog.Logger
	dir    string

	mu     sync.RWMutex
	prices map[string][]types.PricePoint
	loads  map[string][]types.LoadPoint

	watcher *fsnotify.Watcher
}

func newFixtureCache(logger *slog.Logger, dir string) *fixtureCache {
	fc := &fixtureCache{
		logger: logger,
		dir:    dir,
		prices: make(map[string][]types.PricePoint),
		loads:  make(map[string][]types.LoadPoint),
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("fixture watcher unavailable, fixtures are cached until restart", slog.Any("error", err))
		return fc
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					fc.invalidate(filepath.Base(event.Name))
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fc.logger.Debug("error watching fixtures", slog.Any("error", err))
			}
		}
	}()

	if err := watcher.Add(dir); err != nil {
		logger.Warn("failed to watch fixture directory", slog.String("dir", dir), slog.Any("error", err))
		watcher.Close()
		return fc
	}

	fc.watcher = watcher
	return fc
}

func (fc *fixtureCache) Close() {
	if fc.watcher != nil {
		fc.watcher.Close()
	}
}

func (fc *fixtureCache) invalidate(name string) {
	fc.mu.Lock()
	delete(fc.prices, name)
	delete(fc.loads, name)
	fc.mu.Unlock()
	fc.logger.Debug("fixture cache invalidated", slog.String("file", name))
}

func (fc *fixtureCache) Prices(zone, date string) ([]types.PricePoint, bool) {
	name := fixtureName(zone, date, "prices")

	fc.mu.RLock()
	cached, ok := fc.prices[name]
	fc.mu.RUnlock()
	if ok {
		return cached, true
	}

	var prices []types.PricePoint
	if !fc.load(name, &prices) || len(prices) == 0 {
		return nil, false
	}

	fc.mu.Lock()
	fc.prices[name] = prices
	fc.mu.Unlock()
	return prices, true
}

func (fc *fixtureCache) Loads(zone, date string) ([]types.LoadPoint, bool) {
	name := fixtureName(zone, date, "loads")

	fc.mu.RLock()
	cached, ok := fc.loads[name]
	fc.mu.RUnlock()
	if ok {
		return cached, true
	}

	var loads []types.LoadPoint
	if !fc.load(name, &loads) || len(loads) == 0 {
		return nil, false
	}

	fc.mu.Lock()
	fc.loads[name] = loads
	fc.mu.Unlock()
	return loads, true
}

func (fc *fixtureCache) load(name string, v any) bool {
	data, err := os.ReadFile(filepath.Join(fc.dir, name))
	if err != nil {
		if !os.IsNotExist(err) {
			fc.logger.Warn("failed to read fixture", slog.String("file", name), slog.Any("error", err))
		}
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		fc.logger.Warn("failed to parse fixture", slog.String("file", name), slog.Any("error", err))
		return false
	}

	return true
}

func fixtureName(zone, date, kind string) string {
	return fmt.Sprintf("%s_%s.%s.json", zone, date, kind)
}
