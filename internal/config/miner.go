package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Miner struct {
	Address  string
	Interval time.Duration
	Timeout  time.Duration
	Backoff  struct {
		Min time.Duration
		Max time.Duration
	}
}

const (
	Cfg_miner_address    = "miner.address"
	Cfg_miner_interval   = "miner.interval"
	Cfg_miner_timeout    = "miner.timeout"
	Cfg_miner_backoffMin = "miner.backoffMin"
	Cfg_miner_backoffMax = "miner.backoffMax"
)

var (
	minerDefaults = map[string]interface{}{
		Cfg_miner_address:    "",
		Cfg_miner_interval:   5 * time.Second,
		Cfg_miner_timeout:    time.Minute,
		Cfg_miner_backoffMin: 500 * time.Millisecond,
		Cfg_miner_backoffMax: 30 * time.Second,
	}
)

func init() {
	for k, v := range minerDefaults {
		viper.SetDefault(k, v)
	}
}

func buildMinerConfig() (*Miner, error) {
	c := &Miner{}

	c.Address = viper.GetString(Cfg_miner_address)
	c.Interval = viper.GetDuration(Cfg_miner_interval)
	c.Timeout = viper.GetDuration(Cfg_miner_timeout)
	c.Backoff.Min = viper.GetDuration(Cfg_miner_backoffMin)
	c.Backoff.Max = viper.GetDuration(Cfg_miner_backoffMax)

	if c.Interval <= 0 {
		return nil, errors.Errorf("interval must be positive, got %s", c.Interval)
	}

	if c.Backoff.Min <= 0 || c.Backoff.Max < c.Backoff.Min {
		return nil, errors.Errorf("invalid backoff range %s-%s", c.Backoff.Min, c.Backoff.Max)
	}

	return c, nil
}
