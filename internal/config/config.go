// Package config loads user preferences from config.toml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const FileName = "config.toml"

// Config is the on-disk preference file. Missing keys keep their defaults.
type Config struct {
	UI  UIConfig  `toml:"ui"`
	Log LogConfig `toml:"log"`
}

type UIConfig struct {
	// ShowHelp shows the key help footer.
	ShowHelp bool `toml:"show_help"`
	// ShowGrid shows the daily activity grid above the project list.
	ShowGrid bool `toml:"show_grid_activity"`
	// Glyphs selects the glyph set: "unicode" or "ascii".
	Glyphs string `toml:"glyphs"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

func Default() Config {
	return Config{
		UI:  UIConfig{ShowHelp: true, ShowGrid: true, Glyphs: "unicode"},
		Log: LogConfig{Level: "info"},
	}
}

// Dir is where config.toml lives. DAYLOG_CONFIG_DIR overrides dataDir.
func Dir(dataDir string) string {
	if v := strings.TrimSpace(os.Getenv("DAYLOG_CONFIG_DIR")); v != "" {
		return v
	}
	return dataDir
}

// Load reads dir/config.toml on top of the defaults. A missing file is not
// an error.
func Load(dir string) (Config, error) {
	cfg := Default()
	path := filepath.Join(dir, FileName)
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("load %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), fmt.Errorf("load %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.UI.Glyphs {
	case "unicode", "ascii":
	default:
		return fmt.Errorf("ui.glyphs: %q (expected unicode|ascii)", c.UI.Glyphs)
	}
	return nil
}

// Save writes cfg to dir/config.toml, keeping the previous file as
// config.toml.bak.
func Save(dir string, cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	path := filepath.Join(dir, FileName)
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = writeAtomic(dir, path+".bak", prev)
	}
	return writeAtomic(dir, path, buf.Bytes())
}

func writeAtomic(dir, path string, b []byte) error {
	f, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
