// Package config loads malladmin settings from a YAML file and MALLADMIN_* env vars.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override (MALLADMIN_HTTP_ADDR).
const EnvPrefix = "MALLADMIN"

// ErrConfigNotFound is returned when an explicitly named config file is missing.
var ErrConfigNotFound = errors.New("configuration file not found")

// Config represents the application configuration
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Form    FormConfig    `mapstructure:"form"`
	Logging LoggingConfig `mapstructure:"logging"`
	HTTP    HTTPConfig    `mapstructure:"http"`
}

// AppConfig holds UI settings.
type AppConfig struct {
	// Locale is the fallback locale and the CLI default
	Locale string `mapstructure:"locale"`
}

// FormConfig holds form submission settings.
type FormConfig struct {
	// CommitDelay is how long the simulated backend commit takes
	CommitDelay time.Duration `mapstructure:"commit_delay"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// HTTPConfig represents the HTTP host settings.
type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Debug           bool          `mapstructure:"debug"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Locale: "en",
		},
		Form: FormConfig{
			CommitDelay: 500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("app.locale", c.App.Locale)
	v.SetDefault("form.commit_delay", c.Form.CommitDelay)
	v.SetDefault("logging.level", c.Logging.Level)
	v.SetDefault("logging.development", c.Logging.Development)
	v.SetDefault("http.addr", c.HTTP.Addr)
	v.SetDefault("http.read_timeout", c.HTTP.ReadTimeout)
	v.SetDefault("http.write_timeout", c.HTTP.WriteTimeout)
	v.SetDefault("http.idle_timeout", c.HTTP.IdleTimeout)
	v.SetDefault("http.shutdown_timeout", c.HTTP.ShutdownTimeout)
	v.SetDefault("http.debug", c.HTTP.Debug)
}

// Load reads configFile, or malladmin.yaml from the working directory when
// configFile is empty. Without a file the defaults and env apply.
func Load(configFile string) (*Config, error) {
	config := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, config)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		if _, err := os.Stat(configFile); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configFile)
		}
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file content: %w", err)
		}
	} else {
		v.SetConfigName("malladmin")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file content: %w", err)
			}
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.App.Locale) == "" {
		return errors.New("app.locale must not be empty")
	}
	if c.Form.CommitDelay < 0 {
		return fmt.Errorf("form.commit_delay must not be negative, got %s", c.Form.CommitDelay)
	}
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return errors.New("http.addr must not be empty")
	}
	return nil
}
