package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv            string `yaml:"app_env"`
	Port              string `yaml:"port" validate:"required,numeric"`
	LogLevel          string `yaml:"log_level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	LogPretty         bool   `yaml:"log_pretty"`
	Title             string `yaml:"title" validate:"required"`
	ExportDir         string `yaml:"export_dir" validate:"required"`
	AssetsHost        string `yaml:"echarts_assets_host" validate:"omitempty,url"`
	EnableInteractive bool   `yaml:"enable_interactive"`
	EnableStatic      bool   `yaml:"enable_static"`
}

func Default() Config {
	return Config{
		AppEnv:            "development",
		Port:              "8080",
		LogLevel:          "info",
		Title:             "Dashboard de Repitencia Estudiantil",
		ExportDir:         "./exports",
		EnableInteractive: true,
		EnableStatic:      true,
	}
}

// LoadEnv memuat file .env kalau ada. Tidak ada file bukan error.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Warn().Msg(".env file not found, using system environment")
		return
	}
	log.Info().Msg(".env file loaded")
}

// Load: default -> file YAML (DASHBOARD_CONFIG) -> environment.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("DASHBOARD_CONFIG"); path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.AppEnv, "APP_ENV")
	setString(&cfg.Port, "PORT")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setBool(&cfg.LogPretty, "LOG_PRETTY")
	setString(&cfg.Title, "TITLE")
	setString(&cfg.ExportDir, "EXPORT_DIR")
	setString(&cfg.AssetsHost, "ECHARTS_ASSETS_HOST")
	setBool(&cfg.EnableInteractive, "ENABLE_INTERACTIVE")
	setBool(&cfg.EnableStatic, "ENABLE_STATIC")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring non-boolean env value")
		return
	}
	*dst = b
}
