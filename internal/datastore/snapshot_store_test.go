package datastore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/aptwatch/internal/config"
	"github.com/aleister1102/aptwatch/internal/models"
)

func newTestStore(t *testing.T) (*SnapshotStore, config.StorageConfig) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.StorageConfig{
		SnapshotFile: filepath.Join(dir, "available_apartments.json"),
		ListingFile:  filepath.Join(dir, "available_apartments.txt"),
	}
	return NewSnapshotStore(cfg, zerolog.Nop()), cfg
}

func TestLoadMissingFileIsFirstRun(t *testing.T) {
	store, _ := newTestStore(t)

	snapshot, err := store.Load()

	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	snapshot := models.NewSnapshot()
	snapshot.Add("A", "#758")
	snapshot.Add("A", "#760")
	snapshot.Add("N", "#322")
	snapshot.Add("U", "#499")

	require.NoError(t, store.Save(snapshot, time.Now()))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.True(t, loaded.Equal(snapshot))
}

func TestSaveEmptySnapshotRoundTrips(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Save(models.NewSnapshot(), time.Now()))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.IsEmpty())
}

func TestLoadEmptyFileIsCorrupt(t *testing.T) {
	store, cfg := newTestStore(t)
	require.NoError(t, os.WriteFile(cfg.SnapshotFile, nil, 0644))

	_, err := store.Load()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptSnapshotFile)
}

func TestLoadUnparseableFileIsCorrupt(t *testing.T) {
	store, cfg := newTestStore(t)
	require.NoError(t, os.WriteFile(cfg.SnapshotFile, []byte("{truncated"), 0644))

	_, err := store.Load()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptSnapshotFile)
}

func TestLoadNormalizesUnsortedFile(t *testing.T) {
	store, cfg := newTestStore(t)
	raw := `{"updated_at":"2025-10-07T14:00:00Z","floor_plans":{"A":["#760","#758","#758"]}}`
	require.NoError(t, os.WriteFile(cfg.SnapshotFile, []byte(raw), 0644))

	loaded, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, []models.UnitID{"#758", "#760"}, loaded["A"])
}

func TestSaveWritesListingMirror(t *testing.T) {
	store, cfg := newTestStore(t)

	snapshot := models.NewSnapshot()
	snapshot.Add("N", "#322")
	snapshot.Add("U", "#499")

	require.NoError(t, store.Save(snapshot, time.Date(2025, 10, 7, 14, 0, 0, 0, time.UTC)))

	data, err := os.ReadFile(cfg.ListingFile)
	require.NoError(t, err)
	listing := string(data)
	assert.Contains(t, listing, "AVAILABLE APARTMENTS")
	assert.Contains(t, listing, "Total Units: 2")
	assert.Contains(t, listing, "Floor Plan N (1 units):")
	assert.Contains(t, listing, "#322")
	assert.Contains(t, listing, "#499")
	assert.Contains(t, listing, "2025-10-07 14:00:00")
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	store, _ := newTestStore(t)

	first := models.NewSnapshot()
	first.Add("A", "#758")
	require.NoError(t, store.Save(first, time.Now()))

	second := models.NewSnapshot()
	second.Add("B", "#695")
	require.NoError(t, store.Save(second, time.Now()))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.True(t, loaded.Equal(second))
	assert.False(t, loaded.Has("A", "#758"))
}
