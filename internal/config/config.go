package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type AppConfig struct {
	Env       string `yaml:"env" env:"ENV" env-default:"prod"`
	RatesPath string `yaml:"rates_path" env:"RATES_PATH"`

	Telegram TelegramConfig `yaml:"telegram"`
	Estimate EstimateConfig `yaml:"estimate"`
	Store    StoreConfig    `yaml:"store"`
	Redis    RedisConfig    `yaml:"redis"`
	HTTP     HTTPConfig     `yaml:"http"`
}

type TelegramConfig struct {
	ApiID    int32       `yaml:"api_id" env:"TELEGRAM_API_ID"`
	ApiHash  string      `yaml:"api_hash" env:"TELEGRAM_API_HASH"`
	BotToken string      `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN"`
	BaseDir  string      `yaml:"base_dir" env:"TDLIB_BASE_DIR" env-default:"./tdlib-bot"`
	Proxy    ProxyConfig `yaml:"proxy"`
}

// ProxyConfig: SOCKS5 прокси для TDLib; пустой Server = без прокси.
type ProxyConfig struct {
	Server   string `yaml:"server" env:"TELEGRAM_PROXY_SERVER"`
	Port     int32  `yaml:"port" env:"TELEGRAM_PROXY_PORT"`
	Username string `yaml:"username" env:"TELEGRAM_PROXY_USERNAME"`
	Password string `yaml:"password" env:"TELEGRAM_PROXY_PASSWORD"`
}

func (p ProxyConfig) Enabled() bool {
	return p.Server != "" && p.Port != 0
}

// EstimateConfig: внешний сервис оценки. Без ключа считаем только локально.
type EstimateConfig struct {
	URL     string        `yaml:"url" env:"ESTIMATE_API_URL" env-default:"https://www.carboninterface.com/api/v1/estimates"`
	APIKey  string        `yaml:"api_key" env:"ESTIMATE_API_KEY"`
	Timeout time.Duration `yaml:"timeout" env:"ESTIMATE_API_TIMEOUT" env-default:"5s"`
	Retries int           `yaml:"retries" env:"ESTIMATE_API_RETRIES" env-default:"1"`
}

func (c EstimateConfig) Enabled() bool {
	return c.URL != "" && c.APIKey != ""
}

type StoreConfig struct {
	Driver string        `yaml:"driver" env:"SESSION_STORE" env-default:"memory"`
	TTL    time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"30m"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
	Prefix   string `yaml:"prefix" env:"REDIS_PREFIX" env-default:"carbonbot:session:"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr" env:"HTTP_ADDR"`
}

// Load читает YAML-конфиг (если путь задан) и переменные окружения.
// Путь: аргумент > CONFIG_PATH. Секреты кладём только в env.
func Load(path string) (*AppConfig, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	var cfg AppConfig
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфига: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) validate() error {
	switch c.Store.Driver {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("unknown session store %q", c.Store.Driver)
	}
	if c.Store.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.Store.TTL)
	}
	if c.Estimate.Timeout <= 0 {
		return fmt.Errorf("estimate timeout must be positive, got %s", c.Estimate.Timeout)
	}
	if c.Estimate.Retries < 0 {
		return fmt.Errorf("estimate retries must not be negative, got %d", c.Estimate.Retries)
	}
	return nil
}

// ValidateTelegram нужен только для запуска бота; CLI-оценка работает без токена.
func (c *AppConfig) ValidateTelegram() error {
	if c.Telegram.ApiID == 0 || c.Telegram.ApiHash == "" || c.Telegram.BotToken == "" {
		return errors.New("TELEGRAM_API_ID, TELEGRAM_API_HASH, TELEGRAM_BOT_TOKEN должны быть заданы")
	}
	if c.Telegram.BaseDir == "" {
		return errors.New("telegram base_dir должен быть задан")
	}
	return nil
}
