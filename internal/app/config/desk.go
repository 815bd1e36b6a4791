package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"sisregip-service/internal/pkg/apiclient"
	"sisregip-service/internal/pkg/constvars"
	"sisregip-service/internal/pkg/utils"

	"gopkg.in/yaml.v3"
)

// DeskConfig configures the operator desk client.
type DeskConfig struct {
	// PageURL is the address the desk presents itself as. The backend origin
	// is derived from it unless APIOrigin is set.
	PageURL      string `yaml:"page_url"`
	APIOrigin    string `yaml:"api_origin"`
	MergeViewURL string `yaml:"merge_view_url"`
	Env          string `yaml:"env"`
	LogLevel     string `yaml:"log_level"`
	LogFile      string `yaml:"log_file"`
}

func defaultDeskConfig() *DeskConfig {
	return &DeskConfig{
		PageURL:  "http://localhost:8001/",
		Env:      constvars.EnvironmentDevelopment,
		LogLevel: "info",
	}
}

// DefaultDeskConfigPath is $XDG_CONFIG_HOME/sisregip/desk.yaml, or the
// platform equivalent.
func DefaultDeskConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "sisregip", "desk.yaml")
}

// LoadDeskConfig reads path when it exists and applies the SISREGIP_*
// environment overrides on top. A missing file is not an error.
func LoadDeskConfig(path string) (*DeskConfig, error) {
	cfg := defaultDeskConfig()

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	cfg.PageURL = utils.GetEnvString("SISREGIP_PAGE_URL", cfg.PageURL)
	cfg.APIOrigin = utils.GetEnvString("SISREGIP_API_ORIGIN", cfg.APIOrigin)
	cfg.LogLevel = utils.GetEnvString("SISREGIP_LOG_LEVEL", cfg.LogLevel)

	if cfg.MergeViewURL == "" {
		cfg.MergeViewURL = strings.TrimSuffix(cfg.PageURL, "/") + "/merge.html"
	}
	return cfg, nil
}

// Origin is the backend base URL the desk talks to.
func (c *DeskConfig) Origin() (string, error) {
	if c.APIOrigin != "" {
		return strings.TrimSuffix(c.APIOrigin, "/"), nil
	}
	return apiclient.DeriveOrigin(c.PageURL)
}
