package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Default output format: "table", "csv", or "json"
	Format string `yaml:"format,omitempty"`
	// Include volumes that are not ready (no media / inaccessible)
	ShowAll bool `yaml:"show_all,omitempty"`
	// Filesystem types to skip during enumeration, on top of the
	// built-in pseudo-filesystem list (Unix only)
	ExcludeFSTypes []string `yaml:"exclude_fstypes,omitempty"`
	// Mount point prefixes to skip during enumeration
	ExcludeMounts []string `yaml:"exclude_mounts,omitempty"`
}

var defaultConfig = Config{
	Format: "table",
}

func Load(path string) (*Config, error) {
	if path == "" {
		// Try default locations
		candidates := []string{
			"/etc/volscan/config.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/volscan/config.yaml"),
			"config.yaml",
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	cfg := defaultConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, err
			}
		}
	}

	if cfg.Format == "" {
		cfg.Format = defaultConfig.Format
	}

	return &cfg, nil
}

// SkipFS reports whether a filesystem type is excluded by configuration.
func (c *Config) SkipFS(fstype string) bool {
	for _, f := range c.ExcludeFSTypes {
		if f == fstype {
			return true
		}
	}
	return false
}

// SkipMount reports whether a mount point is excluded by configuration.
func (c *Config) SkipMount(mount string) bool {
	for _, prefix := range c.ExcludeMounts {
		if prefix != "" && strings.HasPrefix(mount, prefix) {
			return true
		}
	}
	return false
}
