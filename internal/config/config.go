package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Виды хранилища
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

type Config struct {
	Storage string        `koanf:"storage"`
	HTTP    HTTPConfig    `koanf:"http"`
	DB      DBConfig      `koanf:"db"`
	JWT     JWTConfig     `koanf:"jwt"`
	Media   MediaConfig   `koanf:"media"`
	Cache   CacheConfig   `koanf:"cache"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
}

type HTTPConfig struct {
	Addr            string        `koanf:"addr"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// LoginRateLimit - число попыток входа с одного IP в минуту
	LoginRateLimit int `koanf:"login_rate_limit"`
}

type DBConfig struct {
	Host       string `koanf:"host"`
	Port       string `koanf:"port"`
	User       string `koanf:"user"`
	Password   string `koanf:"password"`
	Name       string `koanf:"name"`
	SSLMode    string `koanf:"sslmode"`
	SQLitePath string `koanf:"sqlite_path"`
	LogQueries bool   `koanf:"log_queries"`
}

// PostgresDSN собирает строку подключения в формате lib/pq
func (c DBConfig) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Name, c.Password, c.SSLMode)
}

type JWTConfig struct {
	Secret string        `koanf:"secret"`
	TTL    time.Duration `koanf:"ttl"`
	// SecureCookie выставляет флаг Secure у cookie сессии
	SecureCookie bool `koanf:"secure_cookie"`
}

type MediaConfig struct {
	Root          string `koanf:"root"`
	MaxUploadSize int64  `koanf:"max_upload_size"`
}

type CacheConfig struct {
	TTL  time.Duration `koanf:"ttl"`
	Size int           `koanf:"size"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

// LoadEnv подгружает .env в окружение процесса; отсутствие файла не ошибка
func LoadEnv(filenames ...string) bool {
	err := godotenv.Load(filenames...)
	return err == nil
}

// ValidateStorage проверяет только выбор хранилища: этого хватает командам,
// которые не поднимают HTTP-сервер
func (c *Config) ValidateStorage() error {
	switch c.Storage {
	case StorageMemory:
		return nil
	case StoragePostgres:
		if c.DB.Host == "" || c.DB.Name == "" || c.DB.User == "" {
			return errors.New("db host, name and user are required for postgres storage")
		}
		return nil
	case StorageSQLite:
		if c.DB.SQLitePath == "" {
			return errors.New("sqlite_path is required for sqlite storage")
		}
		return nil
	default:
		return fmt.Errorf("unknown storage %q: want memory, postgres or sqlite", c.Storage)
	}
}

// Validate проверяет всю конфигурацию сервера
func (c *Config) Validate() error {
	errs := []error{c.ValidateStorage()}

	if strings.TrimSpace(c.JWT.Secret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, errors.New("jwt ttl must be positive"))
	}
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http addr is required"))
	}
	if c.Media.Root == "" {
		errs = append(errs, errors.New("media root is required"))
	}
	if c.Media.MaxUploadSize <= 0 {
		errs = append(errs, errors.New("media max_upload_size must be positive"))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, errors.New("cache ttl must be positive"))
	}
	if c.Cache.Size <= 0 {
		errs = append(errs, errors.New("cache size must be positive"))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
