package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config carries the runtime settings shared by the CLI commands. Values are
// read from an optional app.env file in the config path, then overridden by
// environment variables of the same name.
type Config struct {
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	DefaultPort    uint16        `mapstructure:"DEFAULT_PORT"`
	DefaultPath    string        `mapstructure:"DEFAULT_PATH"`
	FetchTimeout   time.Duration `mapstructure:"FETCH_TIMEOUT"`
	ReadBufferSize int           `mapstructure:"READ_BUFFER_SIZE"`
	ServeAddress   string        `mapstructure:"SERVE_ADDRESS"`
	DocRoot        string        `mapstructure:"DOC_ROOT"`
}

// LoadConfig reads configuration from path. A missing config file is not an
// error; defaults and environment variables still apply.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DEFAULT_PORT", 8888)
	viper.SetDefault("DEFAULT_PATH", "/index.html")
	viper.SetDefault("FETCH_TIMEOUT", 5*time.Second)
	viper.SetDefault("READ_BUFFER_SIZE", 64*1024)
	viper.SetDefault("SERVE_ADDRESS", "127.0.0.1:8888")
	viper.SetDefault("DOC_ROOT", ".")

	viper.AutomaticEnv()

	if err = viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
