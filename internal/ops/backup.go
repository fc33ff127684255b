// Package ops holds operational helpers for the save file: compressed
// backups taken at boot, and restore for when a session goes sideways.
package ops

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const backupTimeFormat = "20060102-150405"

// BackupSaveFile copies the save into backupDir as a timestamped gzip
// archive. A missing save file is not an error; there is nothing to back up
// on first boot.
func BackupSaveFile(savePath, backupDir string) (string, error) {
	src, err := os.Open(savePath)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s-%s.json.gz",
		strings.TrimSuffix(filepath.Base(savePath), ".json"),
		time.Now().UTC().Format(backupTimeFormat))
	archivePath := filepath.Join(backupDir, name)

	f, err := os.Create(archivePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if _, err := io.Copy(gz, src); err != nil {
		gz.Close()
		return "", err
	}
	if err := gz.Close(); err != nil {
		return "", err
	}
	return archivePath, nil
}

// RestoreSaveFile decompresses an archive back over the save path.
func RestoreSaveFile(archivePath, savePath string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	tmp := savePath + ".tmp"
	dst, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, gz); err != nil {
		_ = dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, savePath)
}

// PruneBackups removes the oldest backups, keeping the newest keep files.
// Backup names embed a UTC timestamp so lexical order is age order.
func PruneBackups(backupDir string, keep int) error {
	entries, err := os.ReadDir(backupDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json.gz") {
			names = append(names, e.Name())
		}
	}
	if len(names) <= keep {
		return nil
	}
	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(backupDir, name)); err != nil {
			return err
		}
	}
	return nil
}
