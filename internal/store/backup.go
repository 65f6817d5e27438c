package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/klauspost/compress/zstd"
)

// BackupConfig controls snapshot backups taken before the legacy combined
// file is overwritten.
type BackupConfig struct {
	Enabled bool
	Keep    int // most recent backups retained; <=0 means DefaultBackupKeep
}

// DefaultBackupKeep is how many snapshot backups survive rotation
const DefaultBackupKeep = 5

const backupDirName = "backups"

// backupLegacy compresses the current legacy snapshot into
// backups/dataset-<timestamp>.json.zst and rotates old backups. A missing
// snapshot is not an error; there is nothing to preserve yet.
func (s *Store) backupLegacy() error {
	src, err := os.Open(s.legacyPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(s.dir, backupDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating backup directory: %w", err)
	}

	// Nanosecond suffix keeps names unique for rapid successive saves
	name := fmt.Sprintf("dataset-%s.json.zst", time.Now().UTC().Format("20060102-150405.000000000"))
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("creating backup file: %w", err)
	}
	defer dst.Close()

	enc, err := zstd.NewWriter(dst)
	if err != nil {
		return fmt.Errorf("initializing compressor: %w", err)
	}
	if _, err := io.Copy(enc, src); err != nil {
		_ = enc.Close()
		return fmt.Errorf("compressing snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flushing backup: %w", err)
	}

	return s.rotateBackups(dir)
}

// rotateBackups deletes all but the most recent Keep backups. Filenames
// embed a sortable UTC timestamp, so lexical order is age order.
func (s *Store) rotateBackups(dir string) error {
	keep := s.backups.Keep
	if keep <= 0 {
		keep = DefaultBackupKeep
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".zst" {
			names = append(names, e.Name())
		}
	}
	if len(names) <= keep {
		return nil
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// RestoreBackup decompresses a backup file into the legacy snapshot path.
// Region files are not touched; callers should rebuild them with a
// Load+Save round trip afterwards.
func (s *Store) RestoreBackup(name string) error {
	src, err := os.Open(filepath.Join(s.dir, backupDirName, name))
	if err != nil {
		return fmt.Errorf("opening backup: %w", err)
	}
	defer src.Close()

	dec, err := zstd.NewReader(src)
	if err != nil {
		return fmt.Errorf("initializing decompressor: %w", err)
	}
	defer dec.Close()

	dst, err := os.Create(s.legacyPath)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, dec.IOReadCloser()); err != nil {
		return fmt.Errorf("decompressing backup: %w", err)
	}
	return nil
}

// Backups lists available backup filenames, oldest first
func (s *Store) Backups() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, backupDirName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".zst" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
