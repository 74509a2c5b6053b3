package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the environment variable pointing at an optional YAML config file.
const ConfigFileEnv = "PLANTASTIC_CONFIG"

type Database struct {
	Driver string `yaml:"driver"` // postgres | sqlite
	URL    string `yaml:"url"`
	Debug  bool   `yaml:"debug"`
}

type Auth struct {
	JWTSecret     string        `yaml:"jwt_secret"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
	SessionSecret string        `yaml:"session_secret"`
}

type SMTP struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// Config holds every runtime setting of the server.
type Config struct {
	Port        string   `yaml:"port"`
	GinMode     string   `yaml:"gin_mode"`
	SiteURL     string   `yaml:"site_url"`
	CORSOrigins []string `yaml:"cors_origins"`

	Database Database `yaml:"database"`
	Auth     Auth     `yaml:"auth"`
	SMTP     SMTP     `yaml:"smtp"`

	// Paths
	PlantDataPath string `yaml:"plant_data_path"`
	TemplatesDir  string `yaml:"templates_dir"`
	StaticDir     string `yaml:"static_dir"`
}

// Default returns the settings used for local development.
func Default() *Config {
	return &Config{
		Port:        "5000",
		GinMode:     "debug",
		SiteURL:     "http://localhost:5000",
		CORSOrigins: []string{"*"},
		Database: Database{
			Driver: "sqlite",
			URL:    "./data/plantastic.db",
		},
		Auth: Auth{
			JWTSecret:     "secret_key_change_me",
			TokenTTL:      time.Hour,
			SessionSecret: "session_key_change_me",
		},
		PlantDataPath: "./web/static/data/plants.json",
		TemplatesDir:  "./web/templates",
		StaticDir:     "./web/static",
	}
}

// Load builds the configuration: defaults, then the optional YAML file named by
// PLANTASTIC_CONFIG, then environment variables.
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: file %s not found", path)
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.SiteURL = getEnv("SITE_URL", c.SiteURL)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.CORSOrigins = splitList(origins)
	}

	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.URL = getEnv("DATABASE_URL", c.Database.URL)
	if v := os.Getenv("DB_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: DB_DEBUG: %w", err)
		}
		c.Database.Debug = debug
	}

	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.SessionSecret = getEnv("SESSION_SECRET", c.Auth.SessionSecret)
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: TOKEN_TTL: %w", err)
		}
		c.Auth.TokenTTL = ttl
	}

	c.SMTP.Host = getEnv("SMTP_HOST", c.SMTP.Host)
	c.SMTP.Port = getEnv("SMTP_PORT", c.SMTP.Port)
	c.SMTP.User = getEnv("SMTP_USER", c.SMTP.User)
	c.SMTP.Password = getEnv("SMTP_PASS", c.SMTP.Password)
	c.SMTP.From = getEnv("SMTP_FROM", c.SMTP.From)

	c.PlantDataPath = getEnv("PLANT_DATA_PATH", c.PlantDataPath)
	c.TemplatesDir = getEnv("TEMPLATES_DIR", c.TemplatesDir)
	c.StaticDir = getEnv("STATIC_DIR", c.StaticDir)

	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.Database.Driver)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
