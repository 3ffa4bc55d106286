// Package config loads service settings from defaults, an optional config
// file, a .env file and CATALOG_ environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "CATALOG"

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Log      LogConfig
	HTTP     HTTPConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name        string
	Env         string
	Port        string
	AutoMigrate bool // run gorm AutoMigrate on serve instead of SQL migrations
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
	LogLevel        string // silent, error, warn, info
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "catalog-api")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.auto_migrate", false)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "catalog")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.slow_threshold", 200*time.Millisecond)
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 15*time.Second)
	v.SetDefault("http.max_body_bytes", 1<<20)
}

// Load builds the configuration. Priority, highest first:
//  1. CATALOG_* environment variables (a .env file in the working directory is
//     loaded into the environment first)
//  2. configFile, or config.yaml found in . or ./config
//  3. built-in defaults
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:        v.GetString("app.name"),
			Env:         v.GetString("app.env"),
			Port:        v.GetString("app.port"),
			AutoMigrate: v.GetBool("app.auto_migrate"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
			SlowThreshold:   v.GetDuration("database.slow_threshold"),
			LogLevel:        v.GetString("database.log_level"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:     v.GetDuration("http.read_timeout"),
			WriteTimeout:    v.GetDuration("http.write_timeout"),
			IdleTimeout:     v.GetDuration("http.idle_timeout"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
			MaxBodyBytes:    v.GetInt64("http.max_body_bytes"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return errors.New("app.port is required")
	}
	if c.Database.Host == "" {
		return errors.New("database.host is required")
	}
	if c.Database.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("database.port %d out of range", c.Database.Port)
	}
	if c.Database.MaxOpenConns < 1 {
		return errors.New("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 || c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return errors.New("database.max_idle_conns must be between 0 and max_open_conns")
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return errors.New("http.max_body_bytes must be positive")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.App.Port
}

// DSN returns the postgres:// connection URL. Both the gorm pgx driver and
// lib/pq accept it.
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
