package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel int `yaml:"log_level"`

	Server  ServerConfig  `yaml:"server"`
	Library LibraryConfig `yaml:"library"`
	Storage StorageConfig `yaml:"storage"`
}

type ServerConfig struct {
	Port string `yaml:"port"`

	// MaxUploadBytes caps import payloads before parsing. Zero means
	// no limit.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

type LibraryConfig struct {
	// TTLMinutes is how long an untouched library stays in memory.
	TTLMinutes int `yaml:"ttl_minutes"`

	// SweepIntervalMinutes is how often idle libraries are evicted.
	SweepIntervalMinutes int `yaml:"sweep_interval_minutes"`
}

type StorageConfig struct {
	// Type of bundle storage: "local" or "gcs"
	Type string `yaml:"type"`

	// Local storage options
	OutputDir string `yaml:"output_dir"`

	// GCS options
	Bucket          string `yaml:"bucket"`
	ObjectPrefix    string `yaml:"object_prefix"`
	CredentialsFile string `yaml:"credentials_file"`
}

// Load reads YAML configuration from path, then applies environment
// overrides and defaults. A .env file next to the process is honored
// when present.
func Load(path string) (*Config, error) {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	config := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyEnvOverrides(config)
	applyDefaults(config)
	return config, nil
}

func applyEnvOverrides(config *Config) {
	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		if n, err := strconv.Atoi(level); err == nil {
			config.LogLevel = n
		}
	}
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		config.Storage.Type = "gcs"
		config.Storage.Bucket = bucket
	}
}

func applyDefaults(config *Config) {
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}
	if config.Server.MaxUploadBytes == 0 {
		config.Server.MaxUploadBytes = 10 << 20
	}
	if config.Library.TTLMinutes == 0 {
		config.Library.TTLMinutes = 60
	}
	if config.Library.SweepIntervalMinutes == 0 {
		config.Library.SweepIntervalMinutes = 10
	}
	if config.Storage.Type == "" {
		config.Storage.Type = "local"
	}
	if config.Storage.OutputDir == "" {
		config.Storage.OutputDir = "output"
	}
}
