package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"intentd/internal/structures"
	"path/filepath"
	"strings"
	"time"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("tracker.hoverDebounce", 500*time.Millisecond)
	viper.SetDefault("tracker.longHoverThreshold", 2*time.Second)
	viper.SetDefault("tracker.defaultTrialDuration", 5*time.Minute)
	viper.SetDefault("tracker.retention", 7*24*time.Hour)
	viper.SetDefault("tracker.sweepInterval", time.Second)
	viper.SetDefault("tracker.keyPrefix", "upgradeIntentTracking")
	viper.SetDefault("session.idleTTL", 30*time.Minute)
	viper.SetDefault("session.evictInterval", time.Minute)
	viper.SetDefault("storage.driver", "file")

	viper.BindEnv("logger.level", "INTENTD_LOG_LEVEL")
	viper.BindEnv("tracker.sweepInterval", "INTENTD_SWEEP_INTERVAL")
	viper.BindEnv("session.idleTTL", "INTENTD_SESSION_IDLE_TTL")
	viper.BindEnv("storage.driver", "INTENTD_STORAGE_DRIVER")
	viper.BindEnv("storage.dir", "INTENTD_STORAGE_DIR")
	viper.BindEnv("storage.redis.addr", "INTENTD_REDIS_ADDR")
	viper.BindEnv("storage.redis.password", "INTENTD_REDIS_PASSWORD")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "UpgradeIntentDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
