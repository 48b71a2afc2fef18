package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeConfig(t *testing.T, home, body string) string {
	t.Helper()
	configDir := filepath.Join(home, ".config", "msghist")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	path := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	got := DefaultConfig()

	if got.BaseURL != "http://127.0.0.1:8888" {
		t.Fatalf("BaseURL = %q", got.BaseURL)
	}
	if got.PageSize != 10 {
		t.Fatalf("PageSize = %d, want 10", got.PageSize)
	}
	if got.Locale != "zh" {
		t.Fatalf("Locale = %q, want zh", got.Locale)
	}
	if got.Theme != "catppuccin-mocha" {
		t.Fatalf("Theme = %q, want catppuccin-mocha", got.Theme)
	}
	if got.DefaultTimeout != 30*time.Second {
		t.Fatalf("DefaultTimeout = %s, want 30s", got.DefaultTimeout)
	}
}

func TestLoadReturnsDefaultsWhenConfigMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	got := Load()
	if want := DefaultConfig(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Load() = %#v, want defaults %#v", got, want)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	writeConfig(t, home, `base_url: http://history.local:9000
page_size: 25
locale: en
theme: nord
default_timeout: 42s
timezone: Asia/Shanghai
proxy_url: socks5://127.0.0.1:1080
no_proxy: localhost
headers:
  X-Tenant: acme
tls:
  insecure_skip_verify: true
log_level: debug
`)

	got := Load()

	if got.BaseURL != "http://history.local:9000" {
		t.Fatalf("BaseURL = %q", got.BaseURL)
	}
	if got.PageSize != 25 {
		t.Fatalf("PageSize = %d, want 25", got.PageSize)
	}
	if got.Locale != "en" || got.Theme != "nord" {
		t.Fatalf("Locale/Theme = %q/%q", got.Locale, got.Theme)
	}
	if got.DefaultTimeout != 42*time.Second {
		t.Fatalf("DefaultTimeout = %s, want 42s", got.DefaultTimeout)
	}
	if got.ProxyURL != "socks5://127.0.0.1:1080" || got.NoProxy != "localhost" {
		t.Fatalf("proxy = %q / %q", got.ProxyURL, got.NoProxy)
	}
	if got.Headers["X-Tenant"] != "acme" {
		t.Fatalf("Headers = %v", got.Headers)
	}
	if !got.TLS.InsecureSkipVerify {
		t.Fatal("TLS.InsecureSkipVerify = false, want true")
	}
	if got.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q", got.LogLevel)
	}
	if got.TimeLayout != DefaultConfig().TimeLayout {
		t.Fatalf("TimeLayout = %q, want default", got.TimeLayout)
	}
}

func TestLoadMergesPartialConfigWithDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, "theme: gruvbox\npage_size: 0\n")

	got := Load()
	want := DefaultConfig()
	want.Theme = "gruvbox"

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Load() = %#v, want %#v", got, want)
	}
}

func TestLoadInvalidYAMLKeepsDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := writeConfig(t, home, "theme: [\n")

	if got, want := Load(), DefaultConfig(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Load() = %#v, want defaults %#v", got, want)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("LoadFile() expected parse error")
	}
}

func TestLocation(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Location() != time.Local {
		t.Fatal("empty timezone should resolve to time.Local")
	}

	cfg.Timezone = "UTC"
	if cfg.Location().String() != "UTC" {
		t.Fatalf("Location() = %s, want UTC", cfg.Location())
	}

	cfg.Timezone = "Nowhere/Invalid"
	if cfg.Location() != time.Local {
		t.Fatal("unknown timezone should fall back to time.Local")
	}
}
