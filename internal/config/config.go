package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings craftbook reads from config.toml.
type Config struct {
	SheetURL     string
	DataDir      string
	ShareURL     string
	PageLength   int
	FetchTimeout time.Duration
	IconsFile    string
}

const (
	defaultConfigPath   = "~/.config/craftbook/config.toml"
	defaultDataDir      = "~/.local/share/craftbook"
	defaultShareURL     = "craftbook://browse"
	defaultPageLength   = 25
	defaultFetchTimeout = 15 * time.Second

	// DefaultSheetURL is the published crafting sheet in CSV form.
	DefaultSheetURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vQUgbmLaIQcadhPZSGf2nUBoSOhvcqMMoU0DPWlRUKmRrYHYtXsvWxGgqhWRjqpakry4VBTB2CHtMen/pub?gid=1592321778&single=true&output=csv"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		SheetURL:     DefaultSheetURL,
		DataDir:      mustExpand(defaultDataDir),
		ShareURL:     defaultShareURL,
		PageLength:   defaultPageLength,
		FetchTimeout: defaultFetchTimeout,
	}
}

// Load locates and parses the craftbook config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		SheetURL            string `toml:"sheet_url"`
		DataDir             string `toml:"data_dir"`
		ShareURL            string `toml:"share_url"`
		PageLength          int    `toml:"page_length"`
		FetchTimeoutSeconds int    `toml:"fetch_timeout_seconds"`
		IconsFile           string `toml:"icons_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.SheetURL); v != "" {
		cfg.SheetURL = v
	}
	if v := strings.TrimSpace(raw.DataDir); v != "" {
		cfg.DataDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.ShareURL); v != "" {
		cfg.ShareURL = v
	}
	if raw.PageLength > 0 {
		cfg.PageLength = raw.PageLength
	}
	if raw.FetchTimeoutSeconds > 0 {
		cfg.FetchTimeout = time.Duration(raw.FetchTimeoutSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.IconsFile); v != "" {
		cfg.IconsFile = mustExpand(v)
	}

	return cfg, nil
}

// StoragePath returns the path of the local storage database.
func (c Config) StoragePath() string {
	return filepath.Join(c.dataDir(), "storage.db")
}

// LogPath returns the path of the craftbook log file.
func (c Config) LogPath() string {
	return filepath.Join(c.dataDir(), "craftbook.log")
}

func (c Config) dataDir() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir)
	}
	return c.DataDir
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
