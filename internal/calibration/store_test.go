package calibration

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRecordAndLatestVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calibration.db")
	store, err := OpenStore(path)
	require.NoError(t, err)
	defer store.Close()

	_, found, err := store.LatestVersion()
	require.NoError(t, err)
	assert.False(t, found)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.RecordRun("v20260101-000000", 500, start, end))

	version, found, err := store.LatestVersion()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v20260101-000000", version)
}

func TestStoreRecordRunUpsertsSameVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calibration.db")
	store, err := OpenStore(path)
	require.NoError(t, err)
	defer store.Close()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.RecordRun("v1", 100, start, end))
	require.NoError(t, store.RecordRun("v1", 200, start, end))

	version, found, err := store.LatestVersion()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v1", version)
}
