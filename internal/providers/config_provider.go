package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"homefeed/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "HOMEFEED_LOG_LEVEL")
	viper.BindEnv("feed.trendingWindow", "HOMEFEED_TRENDING_WINDOW")
	viper.BindEnv("feed.trendingTTL", "HOMEFEED_TRENDING_TTL")
	viper.BindEnv("persistence.saveInterval", "HOMEFEED_SAVE_INTERVAL")
	viper.BindEnv("catalog.seedPath", "HOMEFEED_CATALOG_SEED")
	viper.BindEnv("cache.enabled", "HOMEFEED_CACHE_ENABLED")
	viper.BindEnv("cache.size", "HOMEFEED_CACHE_SIZE")

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

	conf.AppName = "HomeFeedDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
