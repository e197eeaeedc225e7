package server

import (
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/weft-ui/weft/internal/errors"
)

// Config holds the live server configuration. Zero fields are filled from
// DefaultConfig when the server is constructed.
type Config struct {
	// Address is the listen address (default ":8080").
	Address string `yaml:"address"`

	// Title is the page title used by the built-in page shell.
	Title string `yaml:"title"`

	// DevMode loosens caching and enables verbose logging.
	DevMode bool `yaml:"dev_mode"`

	// AllowedOrigins restricts websocket upgrades. Empty means same-origin.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// Websocket buffer sizes.
	ReadBufferSize  int `yaml:"read_buffer_size"`
	WriteBufferSize int `yaml:"write_buffer_size"`

	// HTTP server timeouts.
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`

	// CheckOrigin overrides the origin check derived from AllowedOrigins.
	CheckOrigin func(r *http.Request) bool `yaml:"-"`
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Address:           ":8080",
		Title:             "weft",
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		ShutdownTimeout:   15 * time.Second,
	}
}

// LoadConfig reads a YAML config file (weft.yaml). Missing fields keep their
// zero value and are filled with defaults at server construction.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E080").WithDetail("read %s: %v", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.New("E080").WithDetail("parse %s: %v", path, err)
	}
	return &cfg, nil
}

// fillDefaults replaces zero fields with the defaults.
func (c *Config) fillDefaults() {
	d := DefaultConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = d.ReadBufferSize
	}
	if c.WriteBufferSize == 0 {
		c.WriteBufferSize = d.WriteBufferSize
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = d.IdleTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
}

// originAllowed reports whether the request origin may upgrade. An empty
// allowlist falls back to gorilla's same-origin default.
func (c *Config) originAllowed(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
