package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigDir = ".leetcode"

//go:embed config/settings.yaml
var defaultSettings string

// ManifestStyle selects how a stub is referenced from its manifest
type ManifestStyle string

const (
	ManifestDeclare ManifestStyle = "declare"
	ManifestComment ManifestStyle = "comment"
)

// ConfigOverrides holds values given on the command line
type ConfigOverrides struct {
	SettingsPath *string
	Lang         *string
}

// CodeSettings controls how stubs are written
type CodeSettings struct {
	Lang               string        `yaml:"lang"`
	Pick               string        `yaml:"pick"`
	Layout             Layout        `yaml:"layout"`
	Test               bool          `yaml:"test"`
	CommentProblemDesc bool          `yaml:"comment_problem_desc"`
	CommentLeading     string        `yaml:"comment_leading"`
	InjectBefore       []string      `yaml:"inject_before"`
	InjectAfter        []string      `yaml:"inject_after"`
	EditCodeMarker     bool          `yaml:"edit_code_marker"`
	StartMarker        string        `yaml:"start_marker"`
	EndMarker          string        `yaml:"end_marker"`
	ManifestStyle      ManifestStyle `yaml:"manifest_style"`
}

// CatalogSettings controls catalog download and question fetching
type CatalogSettings struct {
	Categories []string      `yaml:"categories"`
	Jobs       int           `yaml:"jobs"`
	Retries    int           `yaml:"retries"`
	Timeout    time.Duration `yaml:"timeout"`
}

// Settings represents the YAML configuration structure
type Settings struct {
	Storage struct {
		Root  string `yaml:"root"`
		Code  string `yaml:"code"`
		Cache string `yaml:"cache"`
	} `yaml:"storage"`
	URLs struct {
		Base    string `yaml:"base"`
		GraphQL string `yaml:"graphql"`
	} `yaml:"urls"`
	Code    CodeSettings    `yaml:"code"`
	Catalog CatalogSettings `yaml:"catalog"`

	path string
}

// Credentials are the optional session cookies read from the environment
type Credentials struct {
	Session string
	CSRF    string
}

// ProblemURL returns the canonical problem page for a slug
func (s *Settings) ProblemURL(slug string) string {
	return fmt.Sprintf("%s/problems/%s/", strings.TrimRight(s.URLs.Base, "/"), slug)
}

// Save writes the settings back to the file they were loaded from
func (s *Settings) Save() error {
	if s.path == "" {
		return fmt.Errorf("settings were not loaded from a file")
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing settings %s: %w", s.path, err)
	}
	return nil
}

// LoadConfig ensures the default settings exist, loads them and applies overrides
func LoadConfig(overrides *ConfigOverrides) (*Settings, error) {
	settingsPath := filepath.Join(defaultConfigDir, "settings.yaml")
	if overrides != nil && overrides.SettingsPath != nil {
		settingsPath = *overrides.SettingsPath
	} else if err := ensureConfigExists(); err != nil {
		return nil, fmt.Errorf("ensuring config files exist: %w", err)
	}

	settings, err := loadSettings(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	if overrides != nil && overrides.Lang != nil && *overrides.Lang != settings.Code.Lang {
		settings.Code.Lang = *overrides.Lang
		if err := settings.Save(); err != nil {
			return nil, err
		}
	}
	return settings, nil
}

// LoadCredentials reads LEETCODE_SESSION and LEETCODE_CSRF, loading .env first when present
func LoadCredentials() Credentials {
	_ = godotenv.Load()
	return Credentials{
		Session: os.Getenv("LEETCODE_SESSION"),
		CSRF:    os.Getenv("LEETCODE_CSRF"),
	}
}

// loadSettings parses a settings file on top of the embedded defaults
func loadSettings(settingsPath string) (*Settings, error) {
	var settings Settings
	if err := yaml.Unmarshal([]byte(defaultSettings), &settings); err != nil {
		return nil, fmt.Errorf("parsing embedded settings: %w", err)
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", settingsPath, err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}

	if err := settings.validate(); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", settingsPath, err)
	}
	settings.path = settingsPath
	return &settings, nil
}

func (s *Settings) validate() error {
	if s.Code.Lang == "" {
		return fmt.Errorf("code.lang is required")
	}
	switch s.Code.Layout {
	case LayoutFlat, LayoutCategory, LayoutID:
	default:
		return fmt.Errorf("code.layout %q must be one of flat, category, id", s.Code.Layout)
	}
	switch s.Code.ManifestStyle {
	case ManifestDeclare, ManifestComment:
	default:
		return fmt.Errorf("code.manifest_style %q must be declare or comment", s.Code.ManifestStyle)
	}
	if s.Catalog.Jobs < 1 {
		s.Catalog.Jobs = 1
	}
	if s.Catalog.Retries < 1 {
		s.Catalog.Retries = 1
	}
	return nil
}

// ensureConfigExists creates the config directory and writes settings.yaml if needed
func ensureConfigExists() error {
	if err := os.MkdirAll(defaultConfigDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	settingsFile := filepath.Join(defaultConfigDir, "settings.yaml")
	if _, err := os.Stat(settingsFile); os.IsNotExist(err) {
		if err := os.WriteFile(settingsFile, []byte(defaultSettings), 0644); err != nil {
			return fmt.Errorf("writing settings.yaml: %w", err)
		}
	}
	return nil
}
