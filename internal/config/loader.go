package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file name looked up in the current
// and home directories.
const DefaultConfigFile = ".eolallowlist"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// OutputFiles overrides the allowlist file names.
type OutputFiles struct {
	URLs  string `yaml:"urls,omitempty"`
	IPs   string `yaml:"ips,omitempty"`
	FQDNs string `yaml:"fqdns,omitempty"`
}

// File represents the structure of the configuration file.
// Every field is optional; unset fields keep their current value when the
// file is applied to a Config.
type File struct {
	// APIBaseURL overrides the endoflife.date API root.
	APIBaseURL string `yaml:"apiBaseURL,omitempty"`

	// Timeout is the per-request timeout, e.g. "30s".
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// RequestDelay is the spacing between requests, e.g. "250ms".
	// A pointer so that an explicit "0s" can disable the delay.
	RequestDelay *time.Duration `yaml:"requestDelay,omitempty"`

	// OutputDir is the directory allowlists are written to.
	OutputDir string `yaml:"outputDir,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// PrivateDomains enables the PRIVATE section of the public suffix list.
	PrivateDomains *bool `yaml:"privateDomains,omitempty"`

	// Files overrides the output file names.
	Files OutputFiles `yaml:"files,omitempty"`
}

// LoadConfigFile loads a configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Apply copies every field set in the file onto cfg.
func (cf *File) Apply(cfg *Config) {
	if cf == nil || cfg == nil {
		return
	}
	if cf.APIBaseURL != "" {
		cfg.APIBaseURL = cf.APIBaseURL
	}
	if cf.Timeout != 0 {
		cfg.Timeout = cf.Timeout
	}
	if cf.RequestDelay != nil {
		cfg.RequestDelay = *cf.RequestDelay
	}
	if cf.OutputDir != "" {
		cfg.OutputDir = cf.OutputDir
	}
	if cf.UserAgent != "" {
		cfg.UserAgent = cf.UserAgent
	}
	if cf.PrivateDomains != nil {
		cfg.PrivateDomains = *cf.PrivateDomains
	}
	if cf.Files.URLs != "" {
		cfg.URLsFile = cf.Files.URLs
	}
	if cf.Files.IPs != "" {
		cfg.IPsFile = cf.Files.IPs
	}
	if cf.Files.FQDNs != "" {
		cfg.FQDNsFile = cf.Files.FQDNs
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .eolallowlist in the current directory
// 3. Look for config.yaml in the XDG config directory
// 4. Look for .eolallowlist in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, XDGConfigFile())
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
