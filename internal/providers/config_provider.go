package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"mfd/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "MFD_LOG_LEVEL")
	viper.BindEnv("analysis.refreshInterval", "MFD_REFRESH_INTERVAL")
	viper.BindEnv("snapshot.saveInterval", "MFD_SAVE_INTERVAL")
	viper.BindEnv("detector.inactivityWindowDays", "MFD_INACTIVITY_WINDOW_DAYS")
	viper.BindEnv("detector.minGapDays", "MFD_MIN_GAP_DAYS")
	viper.BindEnv("detector.maxGapDays", "MFD_MAX_GAP_DAYS")
	viper.BindEnv("detector.minPostsThreshold", "MFD_MIN_POSTS_THRESHOLD")
	viper.BindEnv("input.path", "MFD_INPUT_PATH")
	viper.BindEnv("cache.enabled", "MFD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "MFD_CACHE_SIZE")

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

	conf.AppName = "MigrationFlowDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode
	conf.Batch = flags.BatchMode

	return &conf, nil
}
