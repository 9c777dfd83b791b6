package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg。
// 配置目录默认为 ./configs，可用 HUNTBOARD_CONFIG_DIR 覆盖。
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configDir := os.Getenv("HUNTBOARD_CONFIG_DIR")
	if configDir == "" {
		configDir = "./configs"
	}
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found in %s: %w", configDir, err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}
