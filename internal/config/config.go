package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModeHTTP     = "http"
	ModeTerminal = "terminal"

	StorageRedis  = "redis"
	StorageMemory = "memory"
)

var (
	ErrUnknownMode    = errors.New("unknown mode")
	ErrUnknownStorage = errors.New("unknown storage")
)

type Config struct {
	LogLevel  string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Mode      string        `yaml:"mode" env:"MODE" env-default:"http"`
	HTTPPort  string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Storage   string        `yaml:"storage" env:"STORAGE" env-default:"redis"`
	Redis     Redis         `yaml:"redis"`
	GameTTL   time.Duration `yaml:"game-ttl" env:"GAME_TTL" env-default:"24h"`
	ProfileID string        `yaml:"profile-id" env:"PROFILE_ID" env-default:"local"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file, environment variables take precedence.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if err := config.Validate(); err != nil {
		panic(fmt.Errorf("invalid config: %w", err))
	}

	return config
}

func (that *Config) Validate() error {
	switch that.Mode {
	case ModeHTTP, ModeTerminal:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, that.Mode)
	}

	switch that.Storage {
	case StorageRedis, StorageMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, that.Storage)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
