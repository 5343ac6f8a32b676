package config

import (
	"os"
	"testing"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	if d.MaxLoaded != defaultMaxLoaded {
		t.Errorf("MaxLoaded = %d, want %d", d.MaxLoaded, defaultMaxLoaded)
	}
	if d.DatasetPath != "" {
		t.Errorf("DatasetPath = %q, want empty", d.DatasetPath)
	}
}

func TestLoadWithNoConfigFileUsesDefaults(t *testing.T) {
	limits, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if limits != Defaults() {
		t.Errorf("limits = %+v, want Defaults() %+v", limits, Defaults())
	}
}

func TestLoadHonorsEnvOverride(t *testing.T) {
	os.Setenv("DAFFODIL_MAX_LOADED", "4")
	defer os.Unsetenv("DAFFODIL_MAX_LOADED")

	limits, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if limits.MaxLoaded != 4 {
		t.Errorf("MaxLoaded = %d, want 4 (from DAFFODIL_MAX_LOADED)", limits.MaxLoaded)
	}
}

func TestLoadRejectsNonPositiveLimit(t *testing.T) {
	os.Setenv("DAFFODIL_MAX_TREE_DEPTH", "0")
	defer os.Unsetenv("DAFFODIL_MAX_TREE_DEPTH")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a non-positive limit")
	}
}

func TestLoadWithMissingConfigDirIsNotFatal(t *testing.T) {
	if _, err := Load(os.TempDir()); err != nil {
		t.Fatalf("Load with a config dir lacking daffodil.* should not error: %v", err)
	}
}
