package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const validYAML = `
api:
  base_search_url: "https://api.example/search?locale={locale}&category=GPU"
  inventory_url: "https://api.example/inventory/{locale}/{sku}"
  locale: "en-us"
  timeout: 15s
headers:
  user-agent: "Mozilla/5.0"
  accept: "application/json"
  accept-language: "en-US,en;q=0.9"
general:
  manufacturer: "NVIDIA"
  gpus: "RTX 5090, RTX 5080,RTX 5070 "
  check_interval: 60s
  max_failures: 5
email:
  user: "sender@example.com"
  password: "hunter2"
  recipient: "me@example.com"
  baseline_subject: "Tracking started"
  listing_subject: "New listing"
  product_subject: "GPU in stock!"
  down_subject: "API down"
logging:
  level: debug
  file: gpuwatch.log
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.General.Manufacturer != "NVIDIA" {
		t.Fatalf("manufacturer: got %q", cfg.General.Manufacturer)
	}
	want := []string{"RTX 5090", "RTX 5080", "RTX 5070"}
	if len(cfg.MonitoredGPUs) != len(want) {
		t.Fatalf("gpus: expected %v, got %v", want, cfg.MonitoredGPUs)
	}
	for i := range want {
		if cfg.MonitoredGPUs[i] != want[i] {
			t.Fatalf("gpus[%d]: expected %q, got %q", i, want[i], cfg.MonitoredGPUs[i])
		}
	}
	if cfg.General.CheckInterval.Std() != 60*time.Second {
		t.Fatalf("check_interval: got %v", cfg.General.CheckInterval.Std())
	}
	if cfg.API.Timeout.Std() != 15*time.Second {
		t.Fatalf("timeout: got %v", cfg.API.Timeout.Std())
	}
}

func TestHeaderOrderPreserved(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"user-agent", "accept", "accept-language"}
	if len(cfg.Headers) != len(want) {
		t.Fatalf("expected %d headers, got %d", len(want), len(cfg.Headers))
	}
	for i, key := range want {
		if cfg.Headers[i].Key != key {
			t.Fatalf("header %d: expected %q, got %q", i, key, cfg.Headers[i].Key)
		}
	}
}

func TestURLTemplating(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.API.SearchURL(); got != "https://api.example/search?locale=en-us&category=GPU" {
		t.Fatalf("search url: got %q", got)
	}
	if got := cfg.API.InventoryURLFor("A123"); got != "https://api.example/inventory/en-us/A123" {
		t.Fatalf("inventory url: got %q", got)
	}
}

func TestDefaults(t *testing.T) {
	body := strings.ReplaceAll(validYAML, "  timeout: 15s\n", "")
	cfg, err := Load(writeConfig(t, body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.Timeout.Std() != 10*time.Second {
		t.Fatalf("expected default timeout 10s, got %v", cfg.API.Timeout.Std())
	}
	if cfg.Email.SMTPHost != "smtp.gmail.com" || cfg.Email.SMTPPort != 587 {
		t.Fatalf("expected gmail smtp defaults, got %s:%d", cfg.Email.SMTPHost, cfg.Email.SMTPPort)
	}
}

func TestValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		mangle  func(string) string
		wantErr string
	}{
		{
			"no gpus",
			func(s string) string { return strings.ReplaceAll(s, `gpus: "RTX 5090, RTX 5080,RTX 5070 "`, `gpus: " , "`) },
			"at least one GPU",
		},
		{
			"missing locale placeholder",
			func(s string) string {
				return strings.ReplaceAll(s, "https://api.example/search?locale={locale}&category=GPU", "https://api.example/search")
			},
			"{locale}",
		},
		{
			"missing sku placeholder",
			func(s string) string {
				return strings.ReplaceAll(s, "https://api.example/inventory/{locale}/{sku}", "https://api.example/inventory/{locale}")
			},
			"{sku}",
		},
		{
			"zero interval",
			func(s string) string { return strings.ReplaceAll(s, "check_interval: 60s", "check_interval: 0s") },
			"check_interval",
		},
		{
			"zero threshold",
			func(s string) string { return strings.ReplaceAll(s, "max_failures: 5", "max_failures: 0") },
			"max_failures",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.mangle(validYAML)))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestUnknownKeysRejected(t *testing.T) {
	_, err := Load(writeConfig(t, validYAML+"\nextra_section:\n  foo: bar\n"))
	if err == nil {
		t.Fatalf("expected strict decoding to reject unknown keys")
	}
}

func TestBadDurationRejected(t *testing.T) {
	body := strings.ReplaceAll(validYAML, "check_interval: 60s", "check_interval: sixty")
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatalf("expected error for unparseable duration")
	}
}
