package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsMatchPolicy(t *testing.T) {
	d := Defaults()
	if d.SmallRangeSeeds != 10_000 || d.MediumRangeSeeds != 100_000 || d.LargeRangeSeeds != 1_000_000 {
		t.Fatalf("unexpected default thresholds: %+v", d)
	}
	if d.HugeRangeWorkers != 8 {
		t.Fatalf("default huge-range worker count = %d, want 8", d.HugeRangeWorkers)
	}
}

func TestLoadOverlaysOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "search.yaml")
	if err := os.WriteFile(path, []byte("huge_range_workers: 16\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HugeRangeWorkers != 16 {
		t.Fatalf("HugeRangeWorkers = %d, want 16 (overridden)", cfg.HugeRangeWorkers)
	}
	if cfg.SmallRangeSeeds != 10_000 {
		t.Fatalf("SmallRangeSeeds = %d, want default 10000 (not overridden)", cfg.SmallRangeSeeds)
	}
}

func TestLoadMissingFileReturnsDefaultsAndError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if cfg != Defaults() {
		t.Fatalf("expected defaults to be returned alongside the error")
	}
}
