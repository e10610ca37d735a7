package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database  DatabaseConfig
	SimpleFIN SimpleFINConfig `mapstructure:"simplefin"`
	Taxonomy  TaxonomyConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path       string
	Migrations string
}

// SimpleFINConfig holds aggregation API credentials.
type SimpleFINConfig struct {
	AccessURL string `mapstructure:"access_url"`
	Username  string
	Password  string
	// Days is the lookback window for fetched transactions.
	Days int
}

// TaxonomyConfig points at an optional keyword taxonomy file. When Path is
// empty the built-in defaults apply.
type TaxonomyConfig struct {
	Path string
}

// Load reads configuration from file and env. Env var overrides use prefix
// FINSYNC_, e.g. FINSYNC_SIMPLEFIN_PASSWORD.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "finsync", "finsync.db"))
	v.SetDefault("database.migrations", "internal/database/migrations")
	v.SetDefault("simplefin.access_url", "")
	v.SetDefault("simplefin.username", "")
	v.SetDefault("simplefin.password", "")
	v.SetDefault("simplefin.days", 30)
	v.SetDefault("taxonomy.path", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("FINSYNC_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "finsync"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FINSYNC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// config file is optional
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
