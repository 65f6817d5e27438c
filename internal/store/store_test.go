package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taxatlas/internal/schema"
	"taxatlas/internal/taxerr"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return New(dir, filepath.Join(dir, "legacy", "jurisdictions.json"), BackupConfig{}, nil)
}

func rec(country, region string, rate float64) schema.JurisdictionRecord {
	r := schema.JurisdictionRecord{
		Country:          country,
		Region:           region,
		CorporateTaxRate: rate,
		ComplianceBurden: schema.ComplianceLow,
		ReputationRisk:   schema.ReputationLow,
		FoundationTerms:  schema.FoundationTerms{FriendlyScore: 3},
	}
	r.Normalize()
	return r
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Europe", "europe"},
		{"North America", "north-america"},
		{"  South   America ", "south-america"},
		{"Åland!!Islands", "land-islands"},
		{"", "region"},
		{"---", "region"},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testStore(t)
	records := []schema.JurisdictionRecord{
		rec("Malta", "Europe", 35),
		rec("Qatar", "Asia", 10),
		rec("Cayman Islands", "Caribbean", 0),
		rec("Austria", "Europe", 24),
	}

	if err := s.Save(records); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// One file per region plus the legacy snapshot
	for _, name := range []string{"europe.json", "asia.json", "caribbean.json"} {
		if _, err := os.Stat(filepath.Join(s.Dir(), name)); err != nil {
			t.Errorf("expected region file %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(s.Dir(), "legacy", "jurisdictions.json")); err != nil {
		t.Errorf("expected legacy snapshot: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != len(records) {
		t.Fatalf("round trip lost records: got %d, want %d", len(loaded), len(records))
	}

	// Sorted by country
	want := []string{"Austria", "Cayman Islands", "Malta", "Qatar"}
	for i, w := range want {
		if loaded[i].Country != w {
			t.Errorf("loaded[%d] = %q, want %q", i, loaded[i].Country, w)
		}
	}
}

func TestSavePrettyPrintsJSON(t *testing.T) {
	s := testStore(t)
	if err := s.Save([]schema.JurisdictionRecord{rec("Malta", "Europe", 35)}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(), "europe.json"))
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, "\n  {") {
		t.Error("region file should be two-space indented")
	}
	// Key order follows the schema: country before region before rates
	ci, ri := strings.Index(text, `"country"`), strings.Index(text, `"region"`)
	if ci < 0 || ri < 0 || ci > ri {
		t.Error("keys should appear in schema order")
	}
}

func TestSaveDeletesStaleRegionFiles(t *testing.T) {
	s := testStore(t)
	if err := s.Save([]schema.JurisdictionRecord{
		rec("Malta", "Europe", 35),
		rec("Kenya", "Africa", 30),
	}); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	// Second save drops Africa entirely
	if err := s.Save([]schema.JurisdictionRecord{rec("Malta", "Europe", 35)}); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(s.Dir(), "africa.json")); !os.IsNotExist(err) {
		t.Error("africa.json should have been deleted")
	}
	if _, err := os.Stat(filepath.Join(s.Dir(), "europe.json")); err != nil {
		t.Errorf("europe.json should remain: %v", err)
	}
}

func TestSaveDefaultsEmptyRegion(t *testing.T) {
	s := testStore(t)
	r := schema.JurisdictionRecord{Country: "Atlantis"}
	if err := s.Save([]schema.JurisdictionRecord{r}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Dir(), "global.json")); err != nil {
		t.Errorf("empty region should partition to global.json: %v", err)
	}
}

func TestLoadFallsBackToLegacy(t *testing.T) {
	dir := t.TempDir()
	legacy := filepath.Join(dir, "jurisdictions.json")
	records := []schema.JurisdictionRecord{rec("Malta", "Europe", 35)}
	data, _ := json.MarshalIndent(records, "", "  ")
	if err := os.WriteFile(legacy, data, 0644); err != nil {
		t.Fatal(err)
	}

	// Dataset dir has no region files; legacy lives inside it
	s := New(dir, legacy, BackupConfig{}, nil)
	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Country != "Malta" {
		t.Errorf("legacy fallback failed: %+v", loaded)
	}
}

func TestLoadSkipsMalformedFiles(t *testing.T) {
	s := testStore(t)
	if err := s.Save([]schema.JurisdictionRecord{rec("Malta", "Europe", 35)}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir(), "broken.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load should skip malformed files, got: %v", err)
	}
	if len(loaded) != 1 {
		t.Errorf("got %d records, want 1", len(loaded))
	}
}

func TestLoadEmptyDataset(t *testing.T) {
	s := testStore(t)
	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("empty dataset should not error: %v", err)
	}
	if loaded != nil {
		t.Errorf("want nil records, got %d", len(loaded))
	}
}

func TestNaturalOrder(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"region-2.json", "region-10.json", true},
		{"region-10.json", "region-2.json", false},
		{"asia.json", "europe.json", true},
		{"a1b.json", "a1c.json", true},
	}
	for _, tt := range tests {
		if got := naturalLess(tt.a, tt.b); got != tt.want {
			t.Errorf("naturalLess(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestUpsertReplaceInPlace(t *testing.T) {
	records := []schema.JurisdictionRecord{rec("Malta", "Europe", 35), rec("Qatar", "Asia", 10)}

	updated := rec("Malta", "Europe", 30)
	records = Upsert(records, updated, "Malta")

	if len(records) != 2 {
		t.Fatalf("upsert duplicated: %d records", len(records))
	}
	i := schema.FindCountry(records, "Malta")
	if records[i].CorporateTaxRate != 30 {
		t.Errorf("Malta rate = %v, want 30", records[i].CorporateTaxRate)
	}
}

func TestUpsertRename(t *testing.T) {
	records := []schema.JurisdictionRecord{rec("Qatar", "Asia", 10)}

	renamed := rec("State of Qatar", "Asia", 10)
	records = Upsert(records, renamed, "Qatar")

	if len(records) != 1 {
		t.Fatalf("rename should replace, got %d records", len(records))
	}
	if records[0].Country != "State of Qatar" {
		t.Errorf("Country = %q, want State of Qatar", records[0].Country)
	}
}

func TestUpsertAppend(t *testing.T) {
	records := []schema.JurisdictionRecord{rec("Malta", "Europe", 35)}
	records = Upsert(records, rec("Austria", "Europe", 24), "")

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	// Re-sorted after append
	if records[0].Country != "Austria" {
		t.Errorf("records[0] = %q, want Austria", records[0].Country)
	}
}

func TestSaveLockContention(t *testing.T) {
	s := testStore(t)

	lock, err := AcquireLock(s.Dir())
	if err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}
	defer lock.Release()

	err = s.Save([]schema.JurisdictionRecord{rec("Malta", "Europe", 35)})
	if err == nil {
		t.Fatal("Save should fail while the directory is locked")
	}
	if !taxerr.Is(err, taxerr.StorageFailed) {
		t.Errorf("want STORAGE_FAILED, got %v", err)
	}
}
