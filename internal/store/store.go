// Package store reads and writes the region-partitioned dataset files and
// the combined legacy snapshot, keeping the two representations consistent.
// The in-memory record list is the source of truth; both on-disk layouts are
// derived from it on every save.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"taxatlas/internal/logging"
	"taxatlas/internal/schema"
	"taxatlas/internal/taxerr"
)

// Store is the file-backed dataset. It holds no in-memory state between
// calls; every Load reads the filesystem fresh.
type Store struct {
	dir        string
	legacyPath string
	backups    BackupConfig
	logger     *logging.Logger
}

// New creates a store over the given dataset directory and legacy combined
// file path.
func New(dir, legacyPath string, backups BackupConfig, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Silent()
	}
	return &Store{dir: dir, legacyPath: legacyPath, backups: backups, logger: logger}
}

// Dir returns the dataset directory
func (s *Store) Dir() string { return s.dir }

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives the filesystem-safe identifier for a region name: lowercase,
// non-alphanumeric runs collapsed to "-", trimmed, "region" if empty.
func Slug(region string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(region), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "region"
	}
	return s
}

// Load reads all region files in natural filename order and concatenates
// their records. If no region files exist it falls back to the legacy
// combined file. Malformed or unreadable files are skipped with a warning.
// The result is sorted by country name.
func (s *Store) Load() ([]schema.JurisdictionRecord, error) {
	var records []schema.JurisdictionRecord
	loadedAny := false

	names, err := s.regionFileNames()
	if err != nil && !os.IsNotExist(err) {
		return nil, taxerr.Storage("listing dataset directory", err)
	}

	for _, name := range names {
		path := filepath.Join(s.dir, name)
		chunk, rerr := readRecordFile(path)
		if rerr != nil {
			s.logger.Warn("skipping unreadable dataset file", map[string]interface{}{
				"file":  path,
				"error": rerr.Error(),
			})
			continue
		}
		records = append(records, chunk...)
		loadedAny = true
	}

	if !loadedAny {
		chunk, rerr := readRecordFile(s.legacyPath)
		if rerr != nil {
			if errors.Is(rerr, fs.ErrNotExist) {
				// Empty dataset is not an error
				return nil, nil
			}
			s.logger.Warn("legacy dataset file unreadable", map[string]interface{}{
				"file":  s.legacyPath,
				"error": rerr.Error(),
			})
			return nil, nil
		}
		records = chunk
	}

	schema.SortByCountry(records)
	return records, nil
}

// Save partitions records by region and writes one file per region plus the
// combined legacy snapshot, deleting region files no longer represented.
// The whole write phase happens under an exclusive directory lock. The first
// write failure aborts the save; files already flushed stay on disk, so a
// failed save can leave a mix of old and new files and callers should treat
// it as "retry full rebuild".
func (s *Store) Save(records []schema.JurisdictionRecord) error {
	lock, err := AcquireLock(s.dir)
	if err != nil {
		return taxerr.Storage("locking dataset directory", err)
	}
	defer lock.Release()

	byRegion := make(map[string][]schema.JurisdictionRecord)
	for _, r := range records {
		region := strings.TrimSpace(r.Region)
		if region == "" {
			region = schema.DefaultRegion
		}
		byRegion[region] = append(byRegion[region], r)
	}

	wanted := make(map[string]bool, len(byRegion))
	for region, chunk := range byRegion {
		schema.SortByCountry(chunk)
		name := Slug(region) + ".json"
		wanted[name] = true
		if err := writeRecordFile(filepath.Join(s.dir, name), chunk); err != nil {
			return err
		}
	}

	// Remove region files for regions no longer present
	names, err := s.regionFileNames()
	if err == nil {
		for _, name := range names {
			if !wanted[name] {
				if rmErr := os.Remove(filepath.Join(s.dir, name)); rmErr != nil {
					return taxerr.Storage("removing stale region file "+name, rmErr)
				}
				s.logger.Info("removed stale region file", map[string]interface{}{"file": name})
			}
		}
	}

	// Combined legacy snapshot, backed up before overwrite
	if s.backups.Enabled {
		if bErr := s.backupLegacy(); bErr != nil {
			s.logger.Warn("snapshot backup failed", map[string]interface{}{"error": bErr.Error()})
		}
	}

	all := make([]schema.JurisdictionRecord, len(records))
	copy(all, records)
	schema.SortByCountry(all)
	if err := writeRecordFile(s.legacyPath, all); err != nil {
		return err
	}

	s.logger.Info("dataset saved", map[string]interface{}{
		"records": len(records),
		"regions": len(byRegion),
	})
	return nil
}

// Upsert replaces the record matching originalCountry (or rec's own country
// when originalCountry is empty) case-insensitively, or appends if absent.
// Returns the updated, re-sorted list.
func Upsert(records []schema.JurisdictionRecord, rec schema.JurisdictionRecord, originalCountry string) []schema.JurisdictionRecord {
	match := originalCountry
	if strings.TrimSpace(match) == "" {
		match = rec.Country
	}

	if i := schema.FindCountry(records, match); i >= 0 {
		records[i] = rec
	} else {
		records = append(records, rec)
	}
	schema.SortByCountry(records)
	return records
}

// regionFileNames lists *.json files in the dataset directory in natural,
// case-insensitive order, excluding the legacy snapshot if it lives there.
func (s *Store) regionFileNames() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	legacyAbs, _ := filepath.Abs(s.legacyPath)

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".json") {
			continue
		}
		abs, _ := filepath.Abs(filepath.Join(s.dir, e.Name()))
		if abs == legacyAbs {
			continue
		}
		names = append(names, e.Name())
	}

	sort.Slice(names, func(i, j int) bool {
		return naturalLess(strings.ToLower(names[i]), strings.ToLower(names[j]))
	})
	return names, nil
}

// naturalLess compares strings with embedded numbers numerically, so
// "region-2.json" sorts before "region-10.json".
func naturalLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		if isDigit(a[0]) && isDigit(b[0]) {
			an, aRest := leadingInt(a)
			bn, bRest := leadingInt(b)
			if an != bn {
				return an < bn
			}
			a, b = aRest, bRest
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func leadingInt(s string) (int, string) {
	i, n := 0, 0
	for i < len(s) && isDigit(s[i]) {
		n = n*10 + int(s[i]-'0')
		i++
	}
	return n, s[i:]
}

func readRecordFile(path string) ([]schema.JurisdictionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, taxerr.Storage("reading "+path, err)
	}
	var records []schema.JurisdictionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, taxerr.Parse("parsing "+path, err)
	}
	return records, nil
}

func writeRecordFile(path string, records []schema.JurisdictionRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return taxerr.Storage("creating directory for "+path, err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return taxerr.Storage("encoding "+path, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return taxerr.Storage("writing "+path, err)
	}
	return nil
}
