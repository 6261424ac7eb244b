package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyshelf/internal/config"
	"studyshelf/internal/domain"
	"studyshelf/internal/services"
	"studyshelf/internal/state"
	"studyshelf/internal/ui"
)

func TestPersistFolder_IgnoresRunFlags(t *testing.T) {
	store := config.Store{Path: filepath.Join(t.TempDir(), "config.json")}
	require.NoError(t, os.WriteFile(store.Path, []byte(`{"folderPath": "/old", "theme": "light", "workers": 2}`), 0o600))

	runConfig := config.Config{FolderPath: "/new", Theme: "dark", Workers: 16, SkipHidden: true}
	final := ui.NewModel(state.NewSession(runConfig), services.NewMockScanner(domain.Catalog{}), services.NewMockViewer())

	require.NoError(t, persistFolder(store, final))

	saved, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "/new", saved.FolderPath)
	assert.Equal(t, "light", saved.Theme)
	assert.Equal(t, 2, saved.Workers)
	assert.False(t, saved.SkipHidden)
}

func TestPersistFolder_NoFolderLeavesStoreUntouched(t *testing.T) {
	store := config.Store{Path: filepath.Join(t.TempDir(), "config.json")}
	final := ui.NewModel(state.NewSession(config.DefaultConfig()), services.NewMockScanner(domain.Catalog{}), services.NewMockViewer())

	require.NoError(t, persistFolder(store, final))

	_, err := os.Stat(store.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestNewViewer_DryRunRecords(t *testing.T) {
	_, ok := NewViewer(true, nil).(*services.MockViewer)
	assert.True(t, ok)
	_, ok = NewViewer(false, nil).(*services.BrowserViewer)
	assert.True(t, ok)
}
