package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMappingsMissingFile(t *testing.T) {
	m, err := LoadMappings(filepath.Join(t.TempDir(), MappingsFile))
	if err != nil {
		t.Fatalf("missing file should yield defaults: %v", err)
	}
	if m.CanonicalCountry("Russian Federation") != "Russia" {
		t.Error("default canonicalization table missing")
	}
	if m.RegionFor("eu") != "Europe" {
		t.Error("region codes should match case-insensitively")
	}
	if m.RegionFor("ZZ") != "Global" {
		t.Error("unknown codes should map to Global")
	}
}

func TestLoadMappingsOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, MappingsFile)
	content := `
[countries]
"Republic of Elbonia" = "Elbonia"
"Russian Federation" = "Russian Fed."

[regions]
me = "Middle East"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadMappings(path)
	if err != nil {
		t.Fatalf("LoadMappings failed: %v", err)
	}

	if m.CanonicalCountry("Republic of Elbonia") != "Elbonia" {
		t.Error("override table entry not applied")
	}
	if m.CanonicalCountry("Russian Federation") != "Russian Fed." {
		t.Error("overrides should win over defaults")
	}
	if m.RegionFor("ME") != "Middle East" {
		t.Error("region override not applied")
	}
	// Defaults not named in the file survive
	if m.RegionFor("AF") != "Africa" {
		t.Error("default regions should survive a partial override")
	}
}

func TestLoadMappingsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), MappingsFile)
	if err := os.WriteFile(path, []byte("not toml [[["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMappings(path); err == nil {
		t.Error("malformed mappings file should fail loudly")
	}
}
