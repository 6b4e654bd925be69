package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds the settings shared by every command.
// Values are populated from .schemata.yaml, SCHEMATA_* env vars, and flags.
type Config struct {
	Format  string `mapstructure:"format"`
	Lang    string `mapstructure:"lang"`
	Verbose bool   `mapstructure:"verbose"`
}

// initConfig points v at the config file and environment. A missing config
// file is not an error.
func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".schemata")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix("SCHEMATA")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// loadConfig applies defaults and validates the result.
func loadConfig(v *viper.Viper) (Config, error) {
	v.SetDefault("format", "auto")
	v.SetDefault("lang", "en")
	v.SetDefault("verbose", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if _, err := parseFormat(cfg.Format); err != nil {
		return Config{}, err
	}
	switch cfg.Lang {
	case "en", "ja":
	default:
		return Config{}, fmt.Errorf("unsupported language %q (want en or ja)", cfg.Lang)
	}
	return cfg, nil
}
