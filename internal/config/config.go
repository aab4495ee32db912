// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

// Package config loads Fontgrab settings with ordered resolution:
// environment variable > config file > built-in default. CLI flags are
// applied on top by the command layer.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/fontgrab/fontgrab/internal/catalog"
	"github.com/fontgrab/fontgrab/internal/fetcher"
	"github.com/fontgrab/fontgrab/internal/platform"
)

// ConfigFileName is the settings file under the Fontgrab config directory.
const ConfigFileName = "config.toml"

// DefaultOutputDir is where archives land when nothing else is configured.
const DefaultOutputDir = "fontshare-fonts"

// Settings holds every tunable the run pipeline accepts.
type Settings struct {
	OutputDir   string `toml:"output_dir"`
	Concurrency int    `toml:"concurrency"`
	Delay       string `toml:"delay"`
	BaseURL     string `toml:"base_url"`
	SiteURL     string `toml:"site_url"`
	WebFonts    bool   `toml:"web_fonts"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		OutputDir:   DefaultOutputDir,
		Concurrency: fetcher.DefaultConcurrency,
		Delay:       fetcher.DefaultDelay.String(),
		BaseURL:     catalog.DefaultBaseURL,
		SiteURL:     catalog.DefaultSiteURL,
		WebFonts:    false,
	}
}

// Load resolves settings from the default config path and process
// environment.
func Load() (Settings, error) {
	return LoadWithEnv(platform.GetConfigPath(ConfigFileName), os.Getenv)
}

// LoadWithEnv resolves settings from an explicit config path and
// environment lookup, for testing.
func LoadWithEnv(configPath string, getenv func(string) string) (Settings, error) {
	settings := Defaults()

	if data, err := os.ReadFile(configPath); err == nil { //nolint:gosec
		if err := toml.Unmarshal(data, &settings); err != nil {
			return settings, fmt.Errorf("failed to parse config %s: %w", configPath, err)
		}

		fillEmpty(&settings)
	}

	applyEnv(&settings, getenv)

	// Config files may point at "~/fonts" or "$XDG_DATA_HOME/fonts".
	settings.OutputDir = platform.ExpandPath(settings.OutputDir)

	if _, err := settings.DelayDuration(); err != nil {
		return settings, err
	}

	return settings, nil
}

// SaveTo writes settings to an explicit path, creating parent
// directories as needed.
func SaveTo(configPath string, settings Settings) error {
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := platform.SafeWriteFile(configPath, data); err != nil {
		return fmt.Errorf("failed to write config %s: %w", configPath, err)
	}

	return nil
}

// DelayDuration parses the configured delay.
func (s Settings) DelayDuration() (time.Duration, error) {
	if s.Delay == "" {
		return fetcher.DefaultDelay, nil
	}

	d, err := time.ParseDuration(s.Delay)
	if err != nil {
		return 0, fmt.Errorf("invalid delay %q: %w", s.Delay, err)
	}

	return d, nil
}

// fillEmpty restores defaults for fields the config file blanked out.
func fillEmpty(settings *Settings) {
	defaults := Defaults()

	if settings.OutputDir == "" {
		settings.OutputDir = defaults.OutputDir
	}

	if settings.Concurrency <= 0 {
		settings.Concurrency = defaults.Concurrency
	}

	if settings.Delay == "" {
		settings.Delay = defaults.Delay
	}

	if settings.BaseURL == "" {
		settings.BaseURL = defaults.BaseURL
	}

	if settings.SiteURL == "" {
		settings.SiteURL = defaults.SiteURL
	}
}

func applyEnv(settings *Settings, getenv func(string) string) {
	if v := getenv("FONTGRAB_OUTPUT_DIR"); v != "" {
		settings.OutputDir = v
	}

	if v := getenv("FONTGRAB_BASE_URL"); v != "" {
		settings.BaseURL = v
	}

	if v := getenv("FONTGRAB_SITE_URL"); v != "" {
		settings.SiteURL = v
	}

	if v := getenv("FONTGRAB_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			settings.Concurrency = n
		}
	}

	if v := getenv("FONTGRAB_DELAY"); v != "" {
		if _, err := time.ParseDuration(v); err == nil {
			settings.Delay = v
		}
	}
}
