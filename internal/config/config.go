package config

import (
	"time"

	coretls "github.com/sadopc/msghist/internal/core/tls"
)

// Config holds the application configuration.
type Config struct {
	BaseURL        string            `yaml:"base_url"`
	PageSize       int               `yaml:"page_size"`
	Locale         string            `yaml:"locale"`
	Theme          string            `yaml:"theme"`
	DefaultTimeout time.Duration     `yaml:"default_timeout"`
	TimeLayout     string            `yaml:"time_layout"`
	Timezone       string            `yaml:"timezone"`
	ProxyURL       string            `yaml:"proxy_url"`
	NoProxy        string            `yaml:"no_proxy"`
	Headers        map[string]string `yaml:"headers"`
	TLS            coretls.Config    `yaml:"tls"`
	LogFile        string            `yaml:"log_file"`
	LogLevel       string            `yaml:"log_level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:        "http://127.0.0.1:8888",
		PageSize:       10,
		Locale:         "zh",
		Theme:          "catppuccin-mocha",
		DefaultTimeout: 30 * time.Second,
		TimeLayout:     "2006-01-02 15:04:05",
		LogLevel:       "info",
	}
}

// Location resolves Timezone, falling back to the local zone when it is
// empty or unknown.
func (c Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
