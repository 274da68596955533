package gielisaux

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/soypat/gielis"
)

// ConfigWatcher watches a TOML configuration file and regenerates the leaf mesh
// when the file changes.
type ConfigWatcher struct {
	Path string
	// Debounce is how long to wait after the last file event before reloading.
	// Defaults to 50ms.
	Debounce time.Duration
	// Override is applied to every loaded configuration, i.e: command line flags.
	Override func(*Config)
	// OnError receives errors loading the file and watcher errors. Watching continues
	// with the last valid configuration. If nil errors are ignored.
	OnError func(error)

	regen Regenerator
}

// Run watches the file until ctx is done or fn returns an error. fn is called with the
// first valid configuration and afterwards every time the leaf or output settings change.
func (w *ConfigWatcher) Run(ctx context.Context, fn func(Config, gielis.Mesh) error) error {
	if w.Path == "" {
		return errors.New("no configuration file to watch")
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = 50 * time.Millisecond
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// Watch the directory so editors that replace the file by renaming are seen.
	err = watcher.Add(filepath.Dir(w.Path))
	if err != nil {
		return err
	}
	base := filepath.Base(w.Path)

	var (
		lastOutput OutputConfig
		called     bool
	)
	update := func() error {
		cfg, err := w.load()
		if err != nil {
			w.onError(err)
			return nil
		}
		mesh, changed := w.regen.Update(cfg.Leaf)
		if !changed && called && cfg.Output == lastOutput {
			return nil
		}
		called = true
		lastOutput = cfg.Output
		return fn(cfg, mesh)
	}
	err = update()
	if err != nil {
		return err
	}
	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("file watcher closed")
			}
			if filepath.Base(event.Name) == base && event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				reload = time.After(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("file watcher closed")
			}
			w.onError(err)
		case <-reload:
			reload = nil
			err = update()
			if err != nil {
				return err
			}
		}
	}
}

// Generations returns how many times the leaf mesh was generated.
func (w *ConfigWatcher) Generations() int { return w.regen.Generations() }

func (w *ConfigWatcher) onError(err error) {
	if w.OnError != nil {
		w.OnError(err)
	}
}

func (w *ConfigWatcher) load() (Config, error) {
	fp, err := os.Open(w.Path)
	if err != nil {
		return Config{}, err
	}
	defer fp.Close()
	cfg, err := LoadConfig(fp)
	if err != nil {
		return Config{}, err
	}
	if w.Override != nil {
		w.Override(&cfg)
	}
	return cfg, nil
}
