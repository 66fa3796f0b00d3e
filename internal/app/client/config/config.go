package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	defaultAPIBaseURL     = "http://localhost:3000"
	defaultLogLevel       = ""
	defaultEnv            = EnvProd
	defaultConfigDir      = ".boothadmin"
	defaultPageSize       = 6
	defaultTimeoutSeconds = 30
	defaultPhotoMaxSide   = 1280
)

type Config struct {
	Env            string        `mapstructure:"app_env"`
	APIBaseURL     string        `mapstructure:"api_base_url"`
	LogLevel       string        `mapstructure:"log_level"`
	ConfigDir      string        `mapstructure:"config_dir"`
	SessionPath    string        `mapstructure:"session_path"`
	PageSize       int           `mapstructure:"page_size"`
	RequestTimeout time.Duration `mapstructure:"-"`
	PhotoMaxSide   int           `mapstructure:"photo_max_side"`
	MetricsPath    string        `mapstructure:"metrics_path"`
}

// Load читает конфигурацию клиента: .env (если есть), файл конфигурации
// (configFile, либо config.yaml в директории конфигурации или в текущей),
// переменные окружения и значения по умолчанию.
func Load(configFile string) (*Config, error) {
	// Загружаем .env файл если существует
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app_env", defaultEnv)
	v.SetDefault("api_base_url", defaultAPIBaseURL)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("config_dir", defaultConfigDir)
	v.SetDefault("page_size", defaultPageSize)
	v.SetDefault("request_timeout_seconds", defaultTimeoutSeconds)
	v.SetDefault("photo_max_side", defaultPhotoMaxSide)

	// Получаем домашнюю директорию пользователя
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := v.GetString("config_dir")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
		}
	}

	sessionPath := v.GetString("session_path")
	if sessionPath == "" {
		sessionPath = filepath.Join(configDir, "session.db")
	}

	cfg := &Config{
		Env:            v.GetString("app_env"),
		APIBaseURL:     strings.TrimRight(v.GetString("api_base_url"), "/"),
		LogLevel:       v.GetString("log_level"),
		ConfigDir:      configDir,
		SessionPath:    sessionPath,
		PageSize:       v.GetInt("page_size"),
		RequestTimeout: time.Duration(v.GetInt("request_timeout_seconds")) * time.Second,
		PhotoMaxSide:   v.GetInt("photo_max_side"),
		MetricsPath:    v.GetString("metrics_path"),
	}

	// Валидация конфигурации
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("ошибка конфигурации: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_base_url должен быть http(s) адресом, получено %q", c.APIBaseURL)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page_size должен быть положительным, получено %d", c.PageSize)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout_seconds должен быть положительным")
	}
	if c.PhotoMaxSide < 1 {
		return fmt.Errorf("photo_max_side должен быть положительным, получено %d", c.PhotoMaxSide)
	}
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("неизвестное окружение app_env %q", c.Env)
	}
	return nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsDev проверяет, dev ли окружение
func (c *Config) IsDev() bool {
	return c.Env == EnvDev
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal
}
