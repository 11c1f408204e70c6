package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/plconv/internal/rename"
)

const appName = "plconv"

type Config struct {
	Codepage        string   `koanf:"codepage"`          // input encoding, empty to infer from the extension
	MaxEditDistance int      `koanf:"max_edit_distance"` // 0 means unlimited
	UTF8            bool     `koanf:"utf8"`              // write .m3u8 in UTF-8 instead of .m3u in Windows-1252
	UseBOM          bool     `koanf:"use_bom"`
	Output          string   `koanf:"output"`      // output directory
	Rename          string   `koanf:"rename"`      // rename codes applied to playlist titles
	LineEnding      string   `koanf:"line_ending"` // "lf" or "crlf"
	Replace         []string `koanf:"replace"`     // PATTERN=>REPLACEMENT rules

	ITunes    ITunesConfig    `koanf:"itunes"`
	Rhythmbox RhythmboxConfig `koanf:"rhythmbox"`
	Log       LogConfig       `koanf:"log"`
}

// ITunesConfig locates the iTunes library export.
type ITunesConfig struct {
	Library string `koanf:"library"`
}

// RhythmboxConfig locates the Rhythmbox database files.
type RhythmboxConfig struct {
	DB        string `koanf:"db"`
	Playlists string `koanf:"playlists"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn or error
}

// Load reads the default config files, then any extra files given, later
// files overriding earlier ones. Missing default files are ignored;
// missing extra files are an error.
func Load(extra ...string) (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}
	for _, path := range extra {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	cfg := &Config{
		LineEnding: "lf",
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Output = expandPath(cfg.Output)
	cfg.ITunes.Library = expandPath(cfg.ITunes.Library)
	cfg.Rhythmbox.DB = expandPath(cfg.Rhythmbox.DB)
	cfg.Rhythmbox.Playlists = expandPath(cfg.Rhythmbox.Playlists)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/plconv/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Validate checks values that cannot be checked by their type.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.EOL(); err != nil {
		errs = append(errs, err)
	}
	if err := rename.Validate(c.Rename); err != nil {
		errs = append(errs, fmt.Errorf("rename: %w", err))
	}
	if c.MaxEditDistance < 0 {
		errs = append(errs, fmt.Errorf("max_edit_distance must not be negative, got %d", c.MaxEditDistance))
	}
	return errors.Join(errs...)
}

// EOL returns the configured line terminator.
func (c *Config) EOL() (string, error) {
	switch c.LineEnding {
	case "", "lf":
		return "\n", nil
	case "crlf":
		return "\r\n", nil
	default:
		return "", fmt.Errorf("line_ending must be \"lf\" or \"crlf\", got %q", c.LineEnding)
	}
}

// ITunesLibrary returns the iTunes library export to read, defaulting to
// ~/Music/iTunes/iTunes Music Library.xml.
func (c *Config) ITunesLibrary() string {
	if c.ITunes.Library != "" {
		return c.ITunes.Library
	}
	return expandPath(filepath.Join("~", "Music", "iTunes", "iTunes Music Library.xml"))
}

// RhythmboxDB returns the Rhythmbox song database, defaulting to the one
// in the XDG data directory.
func (c *Config) RhythmboxDB() string {
	if c.Rhythmbox.DB != "" {
		return c.Rhythmbox.DB
	}
	return filepath.Join(xdg.DataHome, "rhythmbox", "rhythmdb.xml")
}

// RhythmboxPlaylists returns the Rhythmbox playlists file, defaulting to
// the one in the XDG data directory.
func (c *Config) RhythmboxPlaylists() string {
	if c.Rhythmbox.Playlists != "" {
		return c.Rhythmbox.Playlists
	}
	return filepath.Join(xdg.DataHome, "rhythmbox", "playlists.xml")
}
