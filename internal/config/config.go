// Package config loads imgdl settings from config files, .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mmcdole/imgdl/internal/domain"
	"github.com/mmcdole/imgdl/internal/provider"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides for ordinary keys (IMGDL_DOWNLOAD_COUNT, ...)
const EnvPrefix = "IMGDL"

// Config holds all application configuration
type Config struct {
	Provider string         `mapstructure:"provider"` // Default provider name
	Download DownloadConfig `mapstructure:"download"`
	Logging  LoggingConfig  `mapstructure:"logging"`

	// Providers is keyed by provider name and filled from "<name>.api_key" / "<name>.url"
	Providers map[string]ProviderConfig `mapstructure:"-"`
}

// DownloadConfig holds download defaults
type DownloadConfig struct {
	Dir         string `mapstructure:"dir"`
	Count       int    `mapstructure:"count"`
	Concurrency int    `mapstructure:"concurrency"`
}

// ProviderConfig holds credentials and endpoint overrides for one provider
type ProviderConfig struct {
	APIKey string `mapstructure:"api_key"`
	URL    string `mapstructure:"url"` // Empty uses the built-in endpoint
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: provider.NamePixabay,
		Download: DownloadConfig{
			Dir:         "",
			Count:       1,
			Concurrency: 10,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
		Providers: make(map[string]ProviderConfig),
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "imgdl", "imgdl.log")
	default:
		if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
			return filepath.Join(dir, "imgdl", "imgdl.log")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "imgdl", "imgdl.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "imgdl")
	default:
		if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
			return filepath.Join(dir, "imgdl")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "imgdl")
	}
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none) into the
// process environment. Missing files are skipped; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// envNames returns the environment variables bound to a provider setting,
// e.g. API_KEY_PEXELS then IMGDL_PEXELS_API_KEY for ("pexels", "api_key").
func envNames(name, setting string) []string {
	upper := strings.ToUpper(name)
	short := "API_URL_" + upper
	if setting == "api_key" {
		short = "API_KEY_" + upper
	}
	return []string{short, EnvPrefix + "_" + upper + "_" + strings.ToUpper(setting)}
}

// LoadConfig loads configuration from file and environment.
// An empty path searches the default config directory and the working directory;
// an explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults make every key visible to AutomaticEnv during Unmarshal
	v.SetDefault("provider", cfg.Provider)
	v.SetDefault("download.dir", cfg.Download.Dir)
	v.SetDefault("download.count", cfg.Download.Count)
	v.SetDefault("download.concurrency", cfg.Download.Concurrency)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	for _, name := range provider.Names() {
		for _, setting := range []string{"api_key", "url"} {
			key := name + "." + setting
			if err := v.BindEnv(append([]string{key}, envNames(name, setting)...)...); err != nil {
				return nil, fmt.Errorf("failed to bind %s: %w", key, err)
			}
		}
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	for _, name := range provider.Names() {
		cfg.Providers[name] = ProviderConfig{
			APIKey: strings.TrimSpace(v.GetString(name + ".api_key")),
			URL:    strings.TrimSpace(v.GetString(name + ".url")),
		}
	}

	return cfg, nil
}

// APIKey returns the configured key for the provider, or ErrMissingAPIKey.
func (c *Config) APIKey(name string) (string, error) {
	key := c.Providers[strings.ToLower(name)].APIKey
	if key == "" {
		return "", fmt.Errorf("%w for %s (set %s in the environment, .env or config file)",
			domain.ErrMissingAPIKey, name, envNames(strings.ToLower(name), "api_key")[0])
	}
	return key, nil
}

// Endpoint returns the configured endpoint override for the provider, if any
func (c *Config) Endpoint(name string) string {
	return c.Providers[strings.ToLower(name)].URL
}

// ConfigDir returns the directory searched for config.yaml
func ConfigDir() string {
	return defaultConfigPath()
}
