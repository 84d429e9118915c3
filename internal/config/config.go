// Package config reads all settings from the environment with the TODOAPP
// prefix, e.g. TODOAPP_HTTP_PORT, TODOAPP_STORE_FILE, TODOAPP_REDIS_ADDR.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

type Config struct {
	HTTPPort    string
	StoreDriver string
	StoreFile   string
	PostgresDSN string
	RedisAddr   string
	KafkaBroker string
	KafkaTopic  string
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TODOAPP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.port", "8080")
	v.SetDefault("store.driver", DriverFile)
	v.SetDefault("store.file", "tasks.json")

	cfg := &Config{
		HTTPPort:    v.GetString("http.port"),
		StoreDriver: v.GetString("store.driver"),
		StoreFile:   v.GetString("store.file"),
		PostgresDSN: v.GetString("postgres.dsn"),
		RedisAddr:   v.GetString("redis.addr"),
		KafkaBroker: v.GetString("kafka.broker"),
		KafkaTopic:  v.GetString("kafka.topic"),
	}

	switch cfg.StoreDriver {
	case DriverFile:
		if cfg.StoreFile == "" {
			return nil, fmt.Errorf("store.file is not configured")
		}
	case DriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres.dsn is not configured")
		}
	default:
		return nil, fmt.Errorf("unknown store.driver %q", cfg.StoreDriver)
	}

	if cfg.KafkaBroker != "" && cfg.KafkaTopic == "" {
		return nil, fmt.Errorf("kafka.topic is not configured")
	}

	return cfg, nil
}
