package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissing indicates required configuration was absent. It is reported
// before any network call is attempted.
var ErrMissing = errors.New("missing configuration")

// FileName is the optional per-project config file; environment variables
// override anything it sets.
const FileName = "zot.yaml"

// Config carries everything needed to reach the library API and write exports.
type Config struct {
	APIKey      string `yaml:"api_key"`
	LibraryID   string `yaml:"library_id"`
	LibraryType string `yaml:"library_type"`
	ExportsDir  string `yaml:"exports_dir"`
	BaseURL     string `yaml:"base_url"`
}

// Load reads zot.yaml when present, applies environment overrides and
// defaults, and validates the result.
func Load() (Config, error) {
	var c Config
	if b, err := os.ReadFile(FileName); err == nil {
		if err := yaml.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", FileName, err)
		}
	}
	overlay := func(dst *string, env string) {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = v
		}
	}
	overlay(&c.APIKey, "ZOTERO_API_KEY")
	overlay(&c.LibraryID, "ZOTERO_LIBRARY_ID")
	overlay(&c.LibraryType, "ZOTERO_LIBRARY_TYPE")
	overlay(&c.ExportsDir, "ZOT_EXPORTS_DIR")
	overlay(&c.BaseURL, "ZOTERO_API_URL")
	if c.LibraryType == "" {
		c.LibraryType = "user"
	}
	if c.ExportsDir == "" {
		c.ExportsDir = "exports"
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://api.zotero.org"
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate fails fast on anything that would make every API call fail.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: set ZOTERO_API_KEY (or api_key in %s)", ErrMissing, FileName)
	}
	if strings.TrimSpace(c.LibraryID) == "" {
		return fmt.Errorf("%w: set ZOTERO_LIBRARY_ID (or library_id in %s)", ErrMissing, FileName)
	}
	switch c.LibraryType {
	case "user", "group":
	default:
		return fmt.Errorf("invalid library_type %q: want user or group", c.LibraryType)
	}
	return nil
}
