package prefs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ouiplayer/internal/provider"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "oui_player_youtube_autoplay", Key("YouTube", "autoplay"))
	assert.Equal(t, "oui_player_youtube_listType", Key("YouTube", "listType"))
	assert.Equal(t, "oui_player_provider", ProviderKey)
	assert.Equal(t, "oui_player_custom_field", CustomFieldKey)
}

func TestLookup(t *testing.T) {
	m := Map{"a": "1", "empty": ""}

	assert.Equal(t, "1", Lookup(m, "a", "x"))
	assert.Equal(t, "", Lookup(m, "empty", "x"))
	assert.Equal(t, "x", Lookup(m, "missing", "x"))
	assert.Equal(t, "x", Lookup(nil, "a", "x"))
}

func TestDefaults(t *testing.T) {
	defs := Defaults(provider.NewRegistry())

	byKey := make(map[string]string, len(defs))
	for _, p := range defs {
		_, dup := byKey[p.Key]
		assert.False(t, dup, "duplicate key %s", p.Key)
		byKey[p.Key] = p.Default
	}

	assert.Equal(t, DefaultProvider, byKey[ProviderKey])
	assert.Equal(t, "640", byKey["oui_player_youtube_width"])
	assert.Equal(t, "16:9", byKey["oui_player_vimeo_ratio"])
	assert.Equal(t, "red", byKey["oui_player_youtube_color"])
	assert.Equal(t, "#00adef", byKey["oui_player_vimeo_color"])
	assert.Contains(t, byKey, "oui_player_generic_width")
	assert.Contains(t, byKey, "oui_player_youtube_listType")
}

func testBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	_, ok := b.Get("oui_player_provider")
	assert.False(t, ok)

	require.NoError(t, b.Set(ctx, "oui_player_provider", "vimeo"))
	require.NoError(t, b.Set(ctx, "oui_player_vimeo_color", "#ff0000"))
	require.NoError(t, b.Set(ctx, "oui_player_provider", "youtube"))

	v, ok := b.Get("oui_player_provider")
	assert.True(t, ok)
	assert.Equal(t, "youtube", v)

	all, err := b.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"oui_player_provider":    "youtube",
		"oui_player_vimeo_color": "#ff0000",
	}, all)

	require.NoError(t, b.Delete(ctx, "oui_player_vimeo_color"))
	require.NoError(t, b.Delete(ctx, "never_set"))
	_, ok = b.Get("oui_player_vimeo_color")
	assert.False(t, ok)
}

func TestFileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")

	f, err := OpenFile(path)
	require.NoError(t, err)
	testBackend(t, f)
	require.NoError(t, f.Close())

	// Reopen to check persistence.
	f2, err := OpenFile(path)
	require.NoError(t, err)
	v, ok := f2.Get("oui_player_provider")
	assert.True(t, ok)
	assert.Equal(t, "youtube", v)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestFileBackendMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("not toml ="), 0600))

	_, err := OpenFile(path)
	assert.Error(t, err)
}

func TestSQLiteBackend(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer s.Close()

	testBackend(t, s)
}

func TestSQLitePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "oui_player_youtube_autoplay", "1"))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	v, ok := s.Get("oui_player_youtube_autoplay")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestInstall(t *testing.T) {
	ctx := context.Background()
	reg := provider.NewRegistry()

	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(ctx, ProviderKey, "vimeo"))

	n, err := Install(ctx, s, reg)
	require.NoError(t, err)
	assert.Equal(t, len(Defaults(reg))-1, n)

	v, _ := s.Get(ProviderKey)
	assert.Equal(t, "vimeo", v, "existing values are kept")

	n, err = Install(ctx, s, reg)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpenUnsupported(t *testing.T) {
	_, err := Open("redis", "")
	assert.Error(t, err)
}

func TestSQLiteErrors(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	err = s.Set(context.Background(), "k", "v")
	assert.True(t, errors.Is(err, ErrDatabase))
}
