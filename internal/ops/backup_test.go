package ops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupAndRestoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	savePath := filepath.Join(dir, "game-state.json")
	backupDir := filepath.Join(dir, "backups")
	body := `{"version":2,"players":{"logan":{"name":"Logan"}}}`
	require.NoError(t, os.WriteFile(savePath, []byte(body), 0o644))

	archivePath, err := BackupSaveFile(savePath, backupDir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(archivePath), "game-state-"))
	assert.True(t, strings.HasSuffix(archivePath, ".json.gz"))

	// Clobber the save, then restore from the archive.
	require.NoError(t, os.WriteFile(savePath, []byte(`{}`), 0o644))
	require.NoError(t, RestoreSaveFile(archivePath, savePath))

	restored, err := os.ReadFile(savePath)
	require.NoError(t, err)
	assert.Equal(t, body, string(restored))

	// Restore went through a rename; no temp file left behind.
	_, err = os.Stat(savePath + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestBackupMissingSaveFile(t *testing.T) {
	dir := t.TempDir()
	archivePath, err := BackupSaveFile(filepath.Join(dir, "absent.json"), filepath.Join(dir, "backups"))
	assert.NoError(t, err)
	assert.Empty(t, archivePath)
}

func TestPruneBackupsKeepsNewest(t *testing.T) {
	backupDir := t.TempDir()
	for i := 0; i < 5; i++ {
		name := fmt.Sprintf("game-state-2026010%d-120000.json.gz", i+1)
		require.NoError(t, os.WriteFile(filepath.Join(backupDir, name), []byte("x"), 0o644))
	}
	// Unrelated files survive pruning.
	require.NoError(t, os.WriteFile(filepath.Join(backupDir, "notes.txt"), []byte("keep"), 0o644))

	require.NoError(t, PruneBackups(backupDir, 2))

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{
		"game-state-20260104-120000.json.gz",
		"game-state-20260105-120000.json.gz",
		"notes.txt",
	}, names)
}

func TestPruneBackupsUnderLimit(t *testing.T) {
	backupDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(backupDir, "game-state-20260101-120000.json.gz"), []byte("x"), 0o644))
	require.NoError(t, PruneBackups(backupDir, 10))

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPruneBackupsMissingDir(t *testing.T) {
	assert.NoError(t, PruneBackups(filepath.Join(t.TempDir(), "absent"), 10))
}
