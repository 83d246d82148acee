// Package config loads edl's small global CLI configuration,
// mostly the data root every feed command resolves feeds under.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the global CLI configuration, layered defaults -> file ->
// environment (EDL_ prefix).
type Config struct {
	DataRoot string `mapstructure:"data_root"`
	Quiet    bool   `mapstructure:"quiet"`
	Debug    bool   `mapstructure:"debug"`
}

// Load reads ~/.config/edl/config.yaml, falling back to defaults when
// the file does not exist.
func Load() (*Config, error) {
	v := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("config: resolving home directory: %w", err)
	}
	configDir := filepath.Join(home, ".config", "edl")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("EDL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.BindEnv("data_root")
	v.BindEnv("quiet")
	v.BindEnv("debug")

	v.SetDefault("data_root", filepath.Join(home, "edl-data"))
	v.SetDefault("quiet", false)
	v.SetDefault("debug", false)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: reading %s: %w", configDir, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}
	return cfg, nil
}
