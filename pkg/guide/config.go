// Package guide contains the catalog, search, clipboard, routing and Bubble Tea
// UI for git-guide.
package guide

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultConfigDirName  = "git-guide"
	defaultConfigFilename = "config.yaml"

	// DefaultCopiedTimeout is how long the "Copied!" signal stays visible.
	DefaultCopiedTimeout = 1500 * time.Millisecond

	// DefaultServeAddr is where `git-guide serve` listens.
	DefaultServeAddr = "127.0.0.1:23234"
)

// Config represents the optional YAML configuration.
//
// Example YAML:
//
//	copied_timeout_ms: 3000
//	start_route: /gitguide
//	start_section: Branching
//	theme: catppuccin
//	clipboard: auto
//	log_level: debug
//	serve:
//	  addr: 0.0.0.0:23234
//	  host_key: ~/.config/git-guide/host_ed25519
type Config struct {
	// CopiedTimeoutMS controls how long "Copied!" is shown after a successful copy.
	// 0 means the default (1500ms).
	CopiedTimeoutMS int `yaml:"copied_timeout_ms,omitempty"`

	// StartRoute is the page opened when no path is given on the command line.
	StartRoute string `yaml:"start_route,omitempty"`

	// StartSection is the command guide section selected initially.
	StartSection string `yaml:"start_section,omitempty"`

	// Theme: auto | dark | light | catppuccin | none
	Theme string `yaml:"theme,omitempty"`

	// Clipboard: auto | system | osc52 | none
	Clipboard string `yaml:"clipboard,omitempty"`

	// LogFile is where the TUI writes its log. Empty means DefaultLogPath().
	LogFile string `yaml:"log_file,omitempty"`

	// LogLevel: debug | info | warn | error
	LogLevel string `yaml:"log_level,omitempty"`

	Serve ServeConfig `yaml:"serve,omitempty"`
}

// ServeConfig configures `git-guide serve`.
type ServeConfig struct {
	Addr    string `yaml:"addr,omitempty"`
	HostKey string `yaml:"host_key,omitempty"`
}

// ErrConfigNotFound is returned when no configuration file can be located.
// The accompanying Config holds defaults and is safe to use.
var ErrConfigNotFound = errors.New("config not found")

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		CopiedTimeoutMS: int(DefaultCopiedTimeout / time.Millisecond),
		StartRoute:      PathHome,
		StartSection:    DefaultSection,
		Theme:           "auto",
		Clipboard:       ClipboardAuto,
		LogLevel:        "info",
		Serve:           ServeConfig{Addr: DefaultServeAddr},
	}
}

// LoadConfig discovers and loads the YAML configuration.
// If explicitPath is empty, it searches common locations in order:
// 1. $GIT_GUIDE_CONFIG
// 2. $XDG_CONFIG_HOME/git-guide/config.yaml
// 3. ~/.config/git-guide/config.yaml
//
// An explicit path that cannot be read is an error. When nothing is found the
// defaults are returned together with ErrConfigNotFound.
func LoadConfig(explicitPath string) (*Config, string, error) {
	if p := expandPath(strings.TrimSpace(explicitPath)); p != "" {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, p, fmt.Errorf("read config %s: %w", p, err)
		}
		cfg, err := ParseConfig(data)
		if err != nil {
			return nil, p, fmt.Errorf("config %s: %w", p, err)
		}
		return cfg, p, nil
	}

	for _, p := range ConfigPathCandidates("") {
		p = expandPath(p)
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, p, fmt.Errorf("read config %s: %w", p, err)
		}
		cfg, err := ParseConfig(data)
		if err != nil {
			return nil, p, fmt.Errorf("config %s: %w", p, err)
		}
		return cfg, p, nil
	}
	cfg := DefaultConfig()
	return &cfg, "", ErrConfigNotFound
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
// Unknown keys are rejected.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// ConfigPathCandidates returns possible configuration file paths, in priority order.
// If explicitPath is provided, it is returned first.
func ConfigPathCandidates(explicitPath string) []string {
	var out []string
	if explicitPath != "" {
		out = append(out, explicitPath)
	}
	if env := os.Getenv("GIT_GUIDE_CONFIG"); env != "" {
		out = append(out, env)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		out = append(out, filepath.Join(xdg, defaultConfigDirName, defaultConfigFilename))
	}
	home, _ := os.UserHomeDir()
	if home != "" {
		out = append(out, filepath.Join(home, ".config", defaultConfigDirName, defaultConfigFilename))
	}
	return out
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.CopiedTimeoutMS == 0 {
		c.CopiedTimeoutMS = d.CopiedTimeoutMS
	}
	if strings.TrimSpace(c.StartRoute) == "" {
		c.StartRoute = d.StartRoute
	}
	if strings.TrimSpace(c.StartSection) == "" {
		c.StartSection = d.StartSection
	}
	if strings.TrimSpace(c.Theme) == "" {
		c.Theme = d.Theme
	}
	if strings.TrimSpace(c.Clipboard) == "" {
		c.Clipboard = d.Clipboard
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = d.LogLevel
	}
	if strings.TrimSpace(c.Serve.Addr) == "" {
		c.Serve.Addr = d.Serve.Addr
	}
}

// Validate performs basic sanity checks on the configuration.
//
// - copied_timeout_ms must be >= 0
// - start_section must name a command guide section
// - theme, clipboard and log_level must be known values
func (c *Config) Validate() error {
	if c.CopiedTimeoutMS < 0 {
		return fmt.Errorf("copied_timeout_ms: must be >= 0")
	}
	if s := strings.TrimSpace(c.StartSection); s != "" {
		if _, ok := GitCatalog().Section(s); !ok {
			return fmt.Errorf("start_section: unknown section %q", s)
		}
	}
	switch strings.ToLower(strings.TrimSpace(c.Theme)) {
	case "", "auto", "dark", "light", "catppuccin", "catppuccin-mocha", "mocha", "none", "off", "disabled":
	default:
		return fmt.Errorf("theme: invalid value %q (expected: auto|dark|light|catppuccin|none)", c.Theme)
	}
	switch strings.ToLower(strings.TrimSpace(c.Clipboard)) {
	case "", ClipboardAuto, ClipboardSystem, ClipboardOSC52, ClipboardNone:
	default:
		return fmt.Errorf("clipboard: invalid value %q (expected: auto|system|osc52|none)", c.Clipboard)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// CopiedTimeout returns the configured "Copied!" duration.
func (c *Config) CopiedTimeout() time.Duration {
	if c == nil || c.CopiedTimeoutMS <= 0 {
		return DefaultCopiedTimeout
	}
	return time.Duration(c.CopiedTimeoutMS) * time.Millisecond
}

// DefaultConfigDir returns the directory path for this application's config.
// Precedence:
//  1. $XDG_CONFIG_HOME/git-guide
//  2. ~/.config/git-guide
func DefaultConfigDir() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, defaultConfigDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", defaultConfigDirName), nil
}

// expandPath expands leading "~" and environment variables in a path.
// If the input is empty, returns "".
func expandPath(p string) string {
	if p == "" {
		return ""
	}
	p = os.ExpandEnv(p)
	if strings.HasPrefix(p, "~") {
		home, _ := os.UserHomeDir()
		if home != "" {
			if p == "~" {
				p = home
			} else if strings.HasPrefix(p, "~/") {
				p = filepath.Join(home, p[2:])
			}
		}
	}
	return p
}

// ExpandPath is the exported form of expandPath for the command layer.
func ExpandPath(p string) string { return expandPath(p) }
