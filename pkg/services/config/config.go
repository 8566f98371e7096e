package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/de-tools/site-report/pkg/services/assets"
	"github.com/spf13/viper"
)

type Server struct {
	Addr string `mapstructure:"addr"`
}

type Assets struct {
	Dir     string `mapstructure:"dir"`
	BaseURL string `mapstructure:"base_url"`
}

type Config struct {
	Server Server `mapstructure:"server"`
	Assets Assets `mapstructure:"assets"`
}

// Load reads the service configuration from the given file. A missing file
// is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("assets.dir", "assets")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Store builds the asset store the configuration points at: an HTTP store
// when a base URL is configured, the local directory otherwise.
func (c *Config) Store() assets.Store {
	if c.Assets.BaseURL != "" {
		return assets.NewHTTPStore(c.Assets.BaseURL)
	}
	return assets.NewFileStore(c.Assets.Dir)
}
