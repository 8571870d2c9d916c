package bootstrap

import (
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort       string `mapstructure:"SERVER_PORT"`
	RedisUrl         string `mapstructure:"REDIS_URL"`
	IsLocalCors      bool   `mapstructure:"LOCAL_CORS"`
	RoomTTLSeconds   int    `mapstructure:"ROOM_TTL_SECONDS"`
	BotDelayMs       int    `mapstructure:"BOT_DELAY_MS"`
	JoinAttempts     int    `mapstructure:"JOIN_ATTEMPTS"`
	JoinRetryDelayMs int    `mapstructure:"JOIN_RETRY_DELAY_MS"`
	SessionTTLHours  int    `mapstructure:"SESSION_TTL_HOURS"`
}

func Setup(cfgPath string) (*Config, error) {
	viper.SetConfigFile(cfgPath)

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.RedisUrl == "" {
		cfg.RedisUrl = "localhost:6379"
	}
	if cfg.RoomTTLSeconds == 0 {
		cfg.RoomTTLSeconds = 3600
	}
	if cfg.BotDelayMs == 0 {
		cfg.BotDelayMs = 700
	}
	if cfg.JoinAttempts == 0 {
		cfg.JoinAttempts = 3
	}
	if cfg.JoinRetryDelayMs == 0 {
		cfg.JoinRetryDelayMs = 200
	}
	if cfg.SessionTTLHours == 0 {
		cfg.SessionTTLHours = 11
	}
}
