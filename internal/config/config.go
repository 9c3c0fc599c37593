package config

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "eolallowlist"

	// DefaultAPIBaseURL is the root of the endoflife.date API.
	// all.json and {product}.json are resolved relative to it.
	DefaultAPIBaseURL = "https://endoflife.date/api"

	// DefaultTimeout bounds each HTTP request, turning a hang into a failure.
	DefaultTimeout = 30 * time.Second

	// DefaultRequestDelay is the fixed spacing between two API requests.
	// endoflife.date is a free service; a quarter second keeps a full run
	// (a few hundred products) well under its rate limits.
	DefaultRequestDelay = 250 * time.Millisecond

	// DefaultOutputDir is where allowlist files are written.
	DefaultOutputDir = "."

	// DefaultURLsFile holds the sorted non-IP URLs.
	DefaultURLsFile = "urls.txt"

	// DefaultIPsFile holds the numerically sorted IPv4 addresses.
	DefaultIPsFile = "ips.txt"

	// DefaultFQDNsFile holds the sorted lowercase FQDNs, in the one-domain-per-line
	// format Pi-hole style DNS sinkholes import.
	DefaultFQDNsFile = "urls-pihole.txt"

	// DefaultUserAgent identifies eolallowlist in HTTP requests.
	DefaultUserAgent = "eolallowlist/1.0 (+https://github.com/nao1215/eolallowlist)"

	// DefaultMaxBodySize limits how much of a response body is read.
	// The largest product payloads are a few hundred kilobytes.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB
)

// Config holds all configuration options for eolallowlist.
// It is populated from defaults, the configuration file and CLI flags, and
// passed explicitly to the components that need it.
type Config struct {
	// APIBaseURL is the endoflife.date API root, e.g. "https://endoflife.date/api".
	APIBaseURL string

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// RequestDelay is the fixed spacing between API requests. Zero disables it.
	RequestDelay time.Duration

	// OutputDir is the directory the allowlist files are written to.
	OutputDir string

	// URLsFile is the file name of the non-IP URL list.
	URLsFile string

	// IPsFile is the file name of the IPv4 list.
	IPsFile string

	// FQDNsFile is the file name of the lowercase FQDN list.
	FQDNsFile string

	// SummaryFile is an optional path for a Markdown run summary.
	// When empty, no summary file is written.
	SummaryFile string

	// UserAgent is the User-Agent header sent with API requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// PrivateDomains makes the classifier honour the PRIVATE section of the
	// public suffix list (e.g. github.io). Off by default.
	PrivateDomains bool

	// Verbose enables debug logging.
	Verbose bool

	// JSONLog switches log output from text to JSON.
	JSONLog bool

	// ConfigFilePath is the configuration file given on the command line.
	// If empty, the default locations are searched.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		APIBaseURL:   DefaultAPIBaseURL,
		Timeout:      DefaultTimeout,
		RequestDelay: DefaultRequestDelay,
		OutputDir:    DefaultOutputDir,
		URLsFile:     DefaultURLsFile,
		IPsFile:      DefaultIPsFile,
		FQDNsFile:    DefaultFQDNsFile,
		UserAgent:    DefaultUserAgent,
		MaxBodySize:  DefaultMaxBodySize,
	}
}

// XDGConfigDir returns the XDG config directory for eolallowlist.
// On Linux: ~/.config/eolallowlist
// On macOS: ~/Library/Application Support/eolallowlist
// On Windows: %APPDATA%\eolallowlist
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGConfigFile returns the configuration file path inside XDGConfigDir.
func XDGConfigFile() string {
	return filepath.Join(XDGConfigDir(), "config.yaml")
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return ErrNoAPIBaseURL
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidAPIBaseURL
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.RequestDelay < 0 {
		return ErrInvalidRequestDelay
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	seen := make(map[string]bool, 3)
	for _, name := range []string{c.URLsFile, c.IPsFile, c.FQDNsFile} {
		if strings.TrimSpace(name) == "" {
			return ErrEmptyFileName
		}
		// Output files are plain names inside OutputDir.
		if filepath.Base(name) != name || name == "." || name == ".." {
			return ErrInvalidFileName
		}
		if seen[name] {
			return ErrDuplicateFileName
		}
		seen[name] = true
	}

	return nil
}
