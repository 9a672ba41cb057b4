package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuración del cliente: archivo YAML opcional + overrides por env.
// Sin archivo y sin env, los defaults alcanzan para apuntar al API
// productivo.

const (
	DefaultBaseURL  = "https://pet-manager-api.geia.vip"
	DefaultPageSize = 10

	appDir   = "pet-manager-admin"
	fileName = "config.yaml"
)

type Config struct {
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"-"`
	PageSize int           `yaml:"page_size"`
	Log      Log           `yaml:"log"`

	// Timeout viaja como string en el YAML ("10s", "500ms").
	RawTimeout string `yaml:"timeout"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

func Default() Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		Timeout:  10 * time.Second,
		PageSize: DefaultPageSize,
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultDir: <config del usuario>/pet-manager-admin.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: user config dir: %w", err)
	}
	return filepath.Join(dir, appDir), nil
}

// Load lee el archivo en path (o el default si path está vacío) y
// aplica los overrides de entorno. Archivo ausente no es error.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) == "" {
		dir, err := DefaultDir()
		if err != nil {
			return cfg, err
		}
		path = filepath.Join(dir, fileName)
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults
	default:
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	applyEnv(&cfg)
	normalize(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("PET_MANAGER_BASE_URL")); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("PET_MANAGER_PAGE_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PageSize = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		cfg.Log.Format = v
	}
}

func normalize(cfg *Config) {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if raw := strings.TrimSpace(cfg.RawTimeout); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
}
