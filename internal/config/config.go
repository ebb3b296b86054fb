package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tcfw/powledger/internal/utils/logging"
)

const (
	Cfg_verbose    = "verbose"
	Cfg_configFile = "config"
)

var (
	defaults = map[string]interface{}{
		Cfg_verbose: false,
	}
)

func init() {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
}

func GetConfig() (*Config, error) {
	if f := viper.GetString(Cfg_configFile); f != "" {
		viper.SetConfigFile(f)
	} else {
		viper.SetConfigType("yaml")
		viper.SetConfigName("powledger")
		viper.AddConfigPath("/etc/powledger/")
		viper.AddConfigPath("$HOME/.powledger")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("POWLEDGER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error
			logging.Entry().Debug("no config found")
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	if viper.GetBool(Cfg_verbose) {
		logging.SetLevel(logrus.DebugLevel)
		logging.WithField("level", "debug").Debug("setting log level")
	}

	return build()
}

func build() (*Config, error) {
	var err error
	c := &Config{}

	c.chain, err = buildChainConfig()
	if err != nil {
		return nil, errors.Wrap(err, "chain config")
	}

	c.miner, err = buildMinerConfig()
	if err != nil {
		return nil, errors.Wrap(err, "miner config")
	}

	c.export, err = buildExportConfig()
	if err != nil {
		return nil, errors.Wrap(err, "export config")
	}

	return c, nil
}

type Config struct {
	chain  *Chain
	miner  *Miner
	export *Export
}

func (c *Config) Chain() *Chain {
	return c.chain
}

func (c *Config) Miner() *Miner {
	return c.miner
}

func (c *Config) Export() *Export {
	return c.export
}
