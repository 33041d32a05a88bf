// Package config loads ferry admin settings from YAML with FERRY_* overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-ferry-admin/components/sales"
	"github.com/goliatone/go-ferry-admin/pkg/activity"
	"github.com/goliatone/go-ferry-admin/pkg/ferryapi"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FERRY_"

// Config is the full ferryctl configuration.
type Config struct {
	API      APIConfig       `yaml:"api"`
	Session  SessionConfig   `yaml:"session"`
	Grid     GridConfig      `yaml:"grid"`
	Chart    ChartConfig     `yaml:"chart"`
	Server   ServerConfig    `yaml:"server"`
	Logging  LoggingConfig   `yaml:"logging"`
	Activity activity.Config `yaml:"activity"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type SessionConfig struct {
	Path string `yaml:"path"`
}

type GridConfig struct {
	PageSize int    `yaml:"page_size"`
	SortMode string `yaml:"sort_mode"`
	Locale   string `yaml:"locale"`
}

type ChartConfig struct {
	Type       string        `yaml:"type"`
	Theme      string        `yaml:"theme"`
	AssetsHost string        `yaml:"assets_host"`
	CacheTTL   time.Duration `yaml:"cache_ttl"`
}

type ServerConfig struct {
	Addr     string `yaml:"addr"`
	BasePath string `yaml:"base_path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: ferryapi.DefaultBaseURL,
			Timeout: 15 * time.Second,
		},
		Session: SessionConfig{Path: DefaultSessionPath()},
		Grid: GridConfig{
			PageSize: sales.DefaultPageSize,
			SortMode: "toggle",
			Locale:   sales.DefaultLocale,
		},
		Chart: ChartConfig{
			Type:     "BAR",
			CacheTTL: time.Minute,
		},
		Server: ServerConfig{
			Addr:     ":8080",
			BasePath: "/admin",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
		Activity: activity.Config{Channel: activity.DefaultChannel},
	}
}

// DefaultSessionPath is ~/.config/ferryctl/session.yaml, or a relative
// fallback when the user config dir is unknown.
func DefaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return filepath.Join(".ferryctl", "session.yaml")
	}
	return filepath.Join(dir, "ferryctl", "session.yaml")
}

// Load reads path (optional), applies environment overrides and validates.
func Load(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := Decode(bytes.NewReader(data), &cfg); err != nil {
				return Config{}, fmt.Errorf("config: %s: %w", path, err)
			}
		}
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode parses YAML onto cfg, rejecting unknown fields.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("BASE_URL", &c.API.BaseURL)
	str("SESSION_PATH", &c.Session.Path)
	str("SORT_MODE", &c.Grid.SortMode)
	str("LOCALE", &c.Grid.Locale)
	str("CHART_TYPE", &c.Chart.Type)
	str("ADDR", &c.Server.Addr)
	str("BASE_PATH", &c.Server.BasePath)
	str("LOG_LEVEL", &c.Logging.Level)
	str("LOG_FORMAT", &c.Logging.Format)

	if v, ok := lookup(EnvPrefix + "TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %sTIMEOUT: %w", EnvPrefix, err)
		}
		c.API.Timeout = d
	}
	if v, ok := lookup(EnvPrefix + "PAGE_SIZE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %sPAGE_SIZE: %w", EnvPrefix, err)
		}
		c.Grid.PageSize = n
	}
	if v, ok := lookup(EnvPrefix + "ACTIVITY"); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %sACTIVITY: %w", EnvPrefix, err)
		}
		c.Activity.Enabled = enabled
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("api.base_url: %w", err))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("api.timeout must be positive"))
	}
	if c.Grid.PageSize <= 0 {
		errs = append(errs, errors.New("grid.page_size must be positive"))
	}
	if _, err := sales.ParseSortMode(c.Grid.SortMode); err != nil {
		errs = append(errs, fmt.Errorf("grid.sort_mode: %w", err))
	}
	switch strings.ToUpper(c.Chart.Type) {
	case "BAR", "LINE":
	default:
		errs = append(errs, fmt.Errorf("chart.type %q must be BAR or LINE", c.Chart.Type))
	}
	if c.Chart.CacheTTL < 0 {
		errs = append(errs, errors.New("chart.cache_ttl must not be negative"))
	}
	if c.Session.Path == "" {
		errs = append(errs, errors.New("session.path is required"))
	}
	if !strings.HasPrefix(c.Server.BasePath, "/") {
		errs = append(errs, fmt.Errorf("server.base_path %q must start with /", c.Server.BasePath))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
