package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/minibrowse/minibrowse/config"
)

var rootCmd = &cobra.Command{
	Use:   "minibrowse",
	Short: "Minimal markup browser",
	Long:  "Minibrowse fetches documents over a one-datagram HTTP exchange and parses the markup into a document tree.",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("config", ".", "Directory holding app.env")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

// initConfig keeps env handling in one convention: the unprefixed variable
// names documented by the config package (LOG_LEVEL, DEFAULT_PORT, ...).
func initConfig() {
	viper.AutomaticEnv()
}

// loadConfig reads settings and wires the log level from them, with the
// verbose flag taking precedence.
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig(viper.GetString("config"))
	if err != nil {
		return config.Config{}, err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if viper.GetBool("verbose") {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
	return cfg, nil
}
