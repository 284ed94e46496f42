package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("got %#v, want defaults", cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	body := "[ui]\nshow_help = false\n\n[log]\nlevel = \"debug\"\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UI.ShowHelp {
		t.Fatalf("show_help should be false")
	}
	if !cfg.UI.ShowGrid || cfg.UI.Glyphs != "unicode" {
		t.Fatalf("unset keys lost their defaults: %#v", cfg.UI)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("level: got %q", cfg.Log.Level)
	}
}

func TestLoad_RejectsUnknownKeysAndBadValues(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"unknown key": "[ui]\ncolour = true\n",
		"bad glyphs":  "[ui]\nglyphs = \"emoji\"\n",
		"bad syntax":  "[ui\n",
	}
	for name, body := range cases {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644); err != nil {
			t.Fatalf("%s: write: %v", name, err)
		}
		if _, err := Load(dir); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestSave_RoundTripsAndKeepsBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := Default()
	if err := Save(dir, first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second := Default()
	second.UI.Glyphs = "ascii"
	second.Log.Level = "warn"
	if err := Save(dir, second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != second {
		t.Fatalf("got %#v, want %#v", got, second)
	}
	bak, err := os.ReadFile(filepath.Join(dir, FileName+".bak"))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if !strings.Contains(string(bak), `glyphs = "unicode"`) {
		t.Fatalf("backup should hold the previous config: %s", bak)
	}
}

func TestDir_EnvOverride(t *testing.T) {
	override := t.TempDir()
	t.Setenv("DAYLOG_CONFIG_DIR", override)
	if got := Dir("/elsewhere"); got != override {
		t.Fatalf("got %q, want %q", got, override)
	}
}
