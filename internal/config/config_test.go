package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/imgdl/internal/domain"
)

// isolate points the config search path at an empty directory and clears
// provider variables that may be set on the host.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, name := range []string{
		"API_KEY_PIXABAY", "API_URL_PIXABAY", "API_KEY_PEXELS", "API_URL_PEXELS",
		"IMGDL_PIXABAY_API_KEY", "IMGDL_PEXELS_API_KEY",
		"IMGDL_PROVIDER", "IMGDL_DOWNLOAD_COUNT", "IMGDL_DOWNLOAD_DIR", "IMGDL_DOWNLOAD_CONCURRENCY",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Provider != "pixabay" {
		t.Errorf("provider = %q, expected pixabay", cfg.Provider)
	}
	if cfg.Download.Count != 1 || cfg.Download.Concurrency != 10 {
		t.Errorf("download defaults = %+v", cfg.Download)
	}
	if cfg.Logging.Level != "INFO" || cfg.Logging.File == "" {
		t.Errorf("logging defaults = %+v", cfg.Logging)
	}
	if _, ok := cfg.Providers["pexels"]; !ok {
		t.Error("every provider should have an entry")
	}
}

func TestLoadConfigProviderEnv(t *testing.T) {
	isolate(t)
	t.Setenv("API_KEY_PEXELS", "pexels-secret")
	t.Setenv("API_URL_PEXELS", "http://localhost:9999/v1/search")
	t.Setenv("IMGDL_PIXABAY_API_KEY", "pixabay-secret")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := cfg.Providers["pexels"]; got.APIKey != "pexels-secret" || got.URL != "http://localhost:9999/v1/search" {
		t.Errorf("pexels config = %+v", got)
	}
	if key, err := cfg.APIKey("pixabay"); err != nil || key != "pixabay-secret" {
		t.Errorf("APIKey(pixabay) = %q, %v", key, err)
	}
	if cfg.Endpoint("PEXELS") != "http://localhost:9999/v1/search" {
		t.Errorf("Endpoint should be case-insensitive, got %q", cfg.Endpoint("PEXELS"))
	}
}

func TestLoadConfigPrefixedEnv(t *testing.T) {
	isolate(t)
	t.Setenv("IMGDL_DOWNLOAD_COUNT", "7")
	t.Setenv("IMGDL_PROVIDER", "pexels")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Download.Count != 7 {
		t.Errorf("count = %d, expected 7", cfg.Download.Count)
	}
	if cfg.Provider != "pexels" {
		t.Errorf("provider = %q, expected pexels", cfg.Provider)
	}
}

func TestLoadConfigFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "imgdl.yaml")
	content := `provider: pexels
download:
  dir: /tmp/photos
  concurrency: 4
pixabay:
  api_key: from-file
logging:
  level: DEBUG
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Provider != "pexels" || cfg.Download.Dir != "/tmp/photos" || cfg.Download.Concurrency != 4 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Download.Count != 1 {
		t.Errorf("unset keys should keep defaults, count = %d", cfg.Download.Count)
	}
	if cfg.Providers["pixabay"].APIKey != "from-file" {
		t.Errorf("pixabay key = %q", cfg.Providers["pixabay"].APIKey)
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	isolate(t)
	t.Setenv("API_KEY_PIXABAY", "from-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("pixabay:\n  api_key: from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Providers["pixabay"].APIKey != "from-env" {
		t.Errorf("env should win over file, got %q", cfg.Providers["pixabay"].APIKey)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestAPIKeyMissing(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = cfg.APIKey("pixabay")
	if !errors.Is(err, domain.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	os.Unsetenv("API_KEY_PIXABAY")
	os.Unsetenv("API_KEY_PEXELS")
	t.Setenv("API_URL_PEXELS", "http://already-set")

	path := filepath.Join(t.TempDir(), ".env")
	content := "API_KEY_PIXABAY=dotenv-key\nAPI_URL_PEXELS=http://from-dotenv\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("API_KEY_PIXABAY") })

	if got := os.Getenv("API_KEY_PIXABAY"); got != "dotenv-key" {
		t.Errorf("API_KEY_PIXABAY = %q, expected dotenv-key", got)
	}
	if got := os.Getenv("API_URL_PEXELS"); got != "http://already-set" {
		t.Errorf(".env should not override existing variables, got %q", got)
	}

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key, _ := cfg.APIKey("pixabay"); key != "dotenv-key" {
		t.Errorf("APIKey(pixabay) = %q", key)
	}
}

func TestEnvNames(t *testing.T) {
	got := envNames("pexels", "api_key")
	if got[0] != "API_KEY_PEXELS" || got[1] != "IMGDL_PEXELS_API_KEY" {
		t.Errorf("envNames(pexels, api_key) = %v", got)
	}
	got = envNames("pixabay", "url")
	if got[0] != "API_URL_PIXABAY" || got[1] != "IMGDL_PIXABAY_URL" {
		t.Errorf("envNames(pixabay, url) = %v", got)
	}
}
