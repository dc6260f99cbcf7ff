package prefs

import (
	"bufio"
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// File keeps preferences as flat key = "value" pairs in a TOML file.
// Every change rewrites the file atomically (temp file + rename).
type File struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// OpenFile loads the preference file at path. A missing file is treated as
// empty and created on the first write.
func OpenFile(path string) (*File, error) {
	f := &File{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("reading preferences: %w", err)
	}

	if err := toml.Unmarshal(data, &f.values); err != nil {
		return nil, fmt.Errorf("parsing preferences %s: %w", path, err)
	}
	return f, nil
}

func (f *File) Get(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	old, had := f.values[key]
	f.values[key] = value
	if err := f.save(); err != nil {
		if had {
			f.values[key] = old
		} else {
			delete(f.values, key)
		}
		return err
	}
	return nil
}

func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	old, had := f.values[key]
	if !had {
		return nil
	}
	delete(f.values, key)
	if err := f.save(); err != nil {
		f.values[key] = old
		return err
	}
	return nil
}

func (f *File) All(context.Context) (map[string]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return maps.Clone(f.values), nil
}

func (f *File) Close() error { return nil }

// save must be called with f.mu held.
func (f *File) save() error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating preferences dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "prefs-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	writer := bufio.NewWriter(tmpFile)
	if err := toml.NewEncoder(writer).Encode(f.values); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing preferences: %w", err)
	}

	if err := writer.Flush(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("flushing preferences: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming preferences file: %w", err)
	}
	return nil
}
