package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLevelDescriptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levels.yml")
	if err := os.WriteFile(path, []byte("\"1\": file-one\n\"2\": file-two\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.LevelsFile = path
	cfg.Levels = map[string]string{"2": "inline-two", "r1": "inline-r1"}

	table, err := cfg.LevelDescriptions()
	if err != nil {
		t.Fatalf("LevelDescriptions() error = %v", err)
	}

	want := map[string]string{"1": "file-one", "2": "inline-two", "R1": "inline-r1"}
	for code, desc := range want {
		if got := table.Lookup(code); got != desc {
			t.Errorf("Lookup(%q) = %q, want %q", code, got, desc)
		}
	}
}

func TestLevelDescriptions_MissingFile(t *testing.T) {
	cfg := Default()
	cfg.LevelsFile = filepath.Join(t.TempDir(), "missing.yml")
	if _, err := cfg.LevelDescriptions(); err == nil {
		t.Error("LevelDescriptions() expected error for missing file")
	}
}
