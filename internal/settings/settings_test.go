package settings

import (
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreDefaults(t *testing.T) {
	store := NewStore(afero.NewMemMapFs(), "/data")
	store.Load()

	assert.True(t, store.GetBool("preview_auto_refresh"))
	assert.False(t, store.GetBool("auto_resolve_conflicts"))
	assert.Equal(t, "", store.GetString("default_prefix"))
	assert.Equal(t, 1, store.GetInt("default_start_number"))
	assert.Equal(t, "Dark", store.GetString("theme"))
	assert.True(t, store.GetBool("confirm_before_rename"))
	assert.Equal(t, 10, store.GetInt("max_recent_items"))
	assert.Equal(t, "/data/history.json", store.HistoryFile())
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	fsys := afero.NewMemMapFs()

	store := NewStore(fsys, "/data")
	store.Set("default_prefix", "img_")
	store.Set("theme", "Light")
	require.NoError(t, store.Save())

	exists, _ := afero.Exists(fsys, "/data/settings.json")
	require.True(t, exists)

	reloaded := NewStore(fsys, "/data")
	reloaded.Load()
	assert.Equal(t, "img_", reloaded.GetString("default_prefix"))
	assert.Equal(t, "Light", reloaded.GetString("theme"))
	// Untouched keys keep their defaults.
	assert.True(t, reloaded.GetBool("preview_auto_refresh"))
}

func TestStoreSaveStampsMetadata(t *testing.T) {
	fsys := afero.NewMemMapFs()
	store := NewStore(fsys, "/data")
	require.NoError(t, store.Save())

	data, err := afero.ReadFile(fsys, "/data/settings.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), "_metadata")
	assert.Contains(t, string(data), "last_updated")
}

func TestStoreLoadCorruptFileFallsBackToDefaults(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/data/settings.json", []byte("{broken"), 0644))

	store := NewStore(fsys, "/data")
	store.Load()
	assert.Equal(t, "Dark", store.GetString("theme"))
}

func TestAddRecentFolderFrontInsertsAndDedupes(t *testing.T) {
	store := NewStore(afero.NewMemMapFs(), "/data")

	store.AddRecentFolder("/one")
	store.AddRecentFolder("/two")
	store.AddRecentFolder("/one")
	assert.Equal(t, []string{"/one", "/two"}, store.RecentFolders())
}

func TestAddRecentFolderTrimsToMax(t *testing.T) {
	store := NewStore(afero.NewMemMapFs(), "/data")
	store.Set("max_recent_items", 3)

	for i := 0; i < 5; i++ {
		store.AddRecentFolder(fmt.Sprintf("/folder%d", i))
	}

	recent := store.RecentFolders()
	assert.Equal(t, []string{"/folder4", "/folder3", "/folder2"}, recent)
}

func TestDefaultDirNotEmpty(t *testing.T) {
	assert.NotEmpty(t, DefaultDir())
}
