package util

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ReadConfig reads ./data/config.{yaml,json,toml,...} into viper. environment variables override file values.
// a missing config file is not an error, defaults set with viper.SetDefault apply.
func ReadConfig() error {
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

func SetDefaults() {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("MAPS_DIR", "./data/maps")
	viper.SetDefault("PLAN_CACHE_SIZE", 4096)
	viper.SetDefault("SNAP_RADIUS", 3)
	viper.SetDefault("PLANNER_SOLVER", "bellman-ford")
	viper.SetDefault("BATCH_WORKERS", 8)
	viper.SetDefault("USE_RATE_LIMIT", false)
	viper.SetDefault("RATE_LIMIT_RPS", 20.0)
	viper.SetDefault("RATE_LIMIT_BURST", 40)
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5s")
}
