package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths - где искать yaml, если CONFIG_PATH не задан
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Storage: StorageMemory,
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			LoginRateLimit:  10,
		},
		DB: DBConfig{
			Host:       "localhost",
			Port:       "5432",
			SSLMode:    "disable",
			SQLitePath: "yatube.db",
		},
		JWT: JWTConfig{
			TTL: 24 * time.Hour,
		},
		Media: MediaConfig{
			Root:          "media",
			MaxUploadSize: 5 << 20,
		},
		Cache: CacheConfig{
			TTL:  20 * time.Second,
			Size: 256,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load собирает конфигурацию слоями: значения по умолчанию, затем yaml, затем окружение.
// Полную проверку (Validate) вызывает тот, кому нужен сервер.
func Load() (*Config, error) {
	LoadEnv()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// DB_HOST -> db.host, CACHE_TTL -> cache.ttl
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.ValidateStorage(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

var envMappings = map[string]string{
	"storage": "storage",

	"http_addr":             "http.addr",
	"http_read_timeout":     "http.read_timeout",
	"http_write_timeout":    "http.write_timeout",
	"http_shutdown_timeout": "http.shutdown_timeout",
	"login_rate_limit":      "http.login_rate_limit",

	"db_host":        "db.host",
	"db_port":        "db.port",
	"db_user":        "db.user",
	"db_password":    "db.password",
	"db_name":        "db.name",
	"db_sslmode":     "db.sslmode",
	"sqlite_path":    "db.sqlite_path",
	"db_log_queries": "db.log_queries",

	"jwt_secret":        "jwt.secret",
	"jwt_ttl":           "jwt.ttl",
	"jwt_secure_cookie": "jwt.secure_cookie",

	"media_root":            "media.root",
	"media_max_upload_size": "media.max_upload_size",

	"cache_ttl":  "cache.ttl",
	"cache_size": "cache.size",

	"log_level":  "log.level",
	"log_format": "log.format",

	"metrics_enabled": "metrics.enabled",
}

// envTransformFunc переводит имя переменной окружения в путь koanf.
// Незнакомые переменные пропускаются, чтобы не засорять конфиг.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
