// Package prefs provides the preference lookups the player reads its
// defaults from, and stores that persist them.
package prefs

import (
	"context"
	"fmt"
	"strings"

	"ouiplayer/internal/provider"
)

// Plugin prefixes every preference key.
const Plugin = "oui_player"

// Global preference keys.
var (
	ProviderKey    = Key("provider")
	CustomFieldKey = Key("custom_field")
)

// Defaults for the global preferences.
const (
	DefaultProvider    = "youtube"
	DefaultCustomField = "video"
)

// Player size preferences, stored per provider.
var dimensionDefaults = []Pref{
	{Key: "width", Default: "640"},
	{Key: "height", Default: ""},
	{Key: "ratio", Default: "16:9"},
}

// Store looks preferences up by key.
type Store interface {
	Get(key string) (string, bool)
}

// Backend is a Store that can be edited and persisted.
type Backend interface {
	Store
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	All(ctx context.Context) (map[string]string, error)
	Close() error
}

// Map is an in-memory Store.
type Map map[string]string

func (m Map) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Pref is a preference key with its built-in default.
type Pref struct {
	Key     string
	Default string
}

// Key builds "oui_player_<provider>_<part>...". Only the first part is
// lower-cased; parameter names keep their case, as in "listType".
func Key(name string, parts ...string) string {
	k := Plugin + "_" + strings.ToLower(name)
	for _, p := range parts {
		k += "_" + p
	}
	return k
}

// Lookup returns the stored value for key, or def when it is absent.
// A nil store always yields def.
func Lookup(s Store, key, def string) string {
	if s == nil {
		return def
	}
	if v, ok := s.Get(key); ok {
		return v
	}
	return def
}

// Defaults lists every preference the registered providers read, with its
// built-in default, in a stable order.
func Defaults(reg *provider.Registry) []Pref {
	out := []Pref{
		{Key: ProviderKey, Default: DefaultProvider},
		{Key: CustomFieldKey, Default: DefaultCustomField},
	}
	for _, p := range reg.Providers() {
		for _, d := range dimensionDefaults {
			out = append(out, Pref{Key: Key(p.Name(), d.Key), Default: d.Default})
		}
		for _, d := range p.Params().Params {
			out = append(out, Pref{Key: Key(p.Name(), d.Name), Default: d.Default})
		}
	}
	return out
}

// DimensionDefault returns the built-in default of a size preference
// ("width", "height" or "ratio").
func DimensionDefault(name string) string {
	for _, d := range dimensionDefaults {
		if d.Key == name {
			return d.Default
		}
	}
	return ""
}

// Install writes the default of every preference missing from b.
func Install(ctx context.Context, b Backend, reg *provider.Registry) (int, error) {
	n := 0
	for _, p := range Defaults(reg) {
		if _, ok := b.Get(p.Key); ok {
			continue
		}
		if err := b.Set(ctx, p.Key, p.Default); err != nil {
			return n, fmt.Errorf("installing %s: %w", p.Key, err)
		}
		n++
	}
	return n, nil
}

// Open returns the backend named by kind ("file" or "sqlite") at path.
func Open(kind, path string) (Backend, error) {
	switch kind {
	case "file":
		return OpenFile(path)
	case "sqlite":
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unsupported preference backend %q (valid: file, sqlite)", kind)
	}
}
