package config

import (
	"fmt"
	"net/url"
	"strings"

	"stock-pulse/apperror"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	Site struct {
		Name    string `mapstructure:"name"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"site"`
	Build struct {
		OutputDir string `mapstructure:"output_dir"`
	} `mapstructure:"build"`
	Catalog struct {
		Path string `mapstructure:"path"` // empty: embedded dataset
	} `mapstructure:"catalog"`
	Chart struct {
		Seed int64 `mapstructure:"seed"` // 0: seeded from the clock
	} `mapstructure:"chart"`
	Search struct {
		Engine string `mapstructure:"engine"`
	} `mapstructure:"search"`
	Ticker struct {
		Schedule string `mapstructure:"schedule"`
	} `mapstructure:"ticker"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// EnvPrefix namespaces environment overrides, e.g. STOCKPULSE_SERVER_ADDR.
const EnvPrefix = "STOCKPULSE"

// Load reads an optional YAML file, then applies environment overrides on top
// of the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("site.name", "Indian Stock Insights")
	v.SetDefault("site.base_url", "https://indianstockpulse.vercel.app")
	v.SetDefault("build.output_dir", "out")
	v.SetDefault("catalog.path", "")
	v.SetDefault("chart.seed", 0)
	v.SetDefault("search.engine", "bleve")
	v.SetDefault("ticker.schedule", "@every 5s")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, apperror.NewCustomError(apperror.ErrConfigLoad, "read config "+path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperror.NewCustomError(apperror.ErrConfigLoad, "Failed to unmarshal config", err)
	}
	cfg.Site.BaseURL = strings.TrimRight(cfg.Site.BaseURL, "/")

	return &cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	u, err := url.Parse(c.Site.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("site.base_url must be an absolute URL, got %q", c.Site.BaseURL)
	}
	if c.Build.OutputDir == "" {
		return fmt.Errorf("build.output_dir is required")
	}
	switch c.Search.Engine {
	case "bleve", "memory":
	default:
		return fmt.Errorf("search.engine must be bleve or memory, got %q", c.Search.Engine)
	}
	if c.Ticker.Schedule == "" {
		return fmt.Errorf("ticker.schedule is required")
	}
	return nil
}
