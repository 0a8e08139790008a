package config

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"ads-rule-builder/internal/rule"
)

// Config holds all configuration (file + env overrides)
type Config struct {
	Server struct {
		Addr     string `mapstructure:"addr"`
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"server"`

	Session struct {
		TTLSeconds   int `mapstructure:"ttl_seconds"`
		SweepSeconds int `mapstructure:"sweep_seconds"`
	} `mapstructure:"session"`

	Rules struct {
		MaxActionsPerRule  int `mapstructure:"max_actions_per_rule"`
		MinIntervalSeconds int `mapstructure:"min_interval_seconds"`
	} `mapstructure:"rules"`
}

func Load() Config {
	v := newViper()
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Errorf("unable to decode config: %w", err))
	}
	validate(&cfg)
	return cfg
}

// Watch re-reads the config file on change and hands the refreshed Config to
// onChange. Decode failures are logged and the previous config stays live.
func Watch(onChange func(Config)) {
	v := newViper()
	v.OnConfigChange(func(fsnotify.Event) {
		var cfg Config
		if err := v.Unmarshal(&cfg); err != nil {
			log.Error().Err(err).Msg("config reload failed; keeping previous")
			return
		}
		validate(&cfg)
		log.Info().Msg("config reloaded")
		onChange(cfg)
	})
	v.WatchConfig()
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("application")
	v.SetConfigType("yaml")
	v.AddConfigPath("configs")
	_ = v.ReadInConfig() // optional; env can fully configure

	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	return v
}

func validate(c *Config) {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Session.TTLSeconds <= 0 {
		c.Session.TTLSeconds = 1800
	}
	if c.Session.SweepSeconds <= 0 {
		c.Session.SweepSeconds = 60
	}
	if c.Rules.MaxActionsPerRule <= 0 {
		c.Rules.MaxActionsPerRule = 1
	}
	if c.Rules.MinIntervalSeconds <= 0 {
		c.Rules.MinIntervalSeconds = 300
	}
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLSeconds) * time.Second
}

func (c Config) SweepEvery() time.Duration {
	return time.Duration(c.Session.SweepSeconds) * time.Second
}

func (c Config) Constraints() rule.Constraints {
	return rule.Constraints{
		MaxActionsPerRule:  c.Rules.MaxActionsPerRule,
		MinIntervalSeconds: c.Rules.MinIntervalSeconds,
	}
}
