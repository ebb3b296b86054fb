package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/tcfw/powledger/pkg/ledger"
	"github.com/tcfw/powledger/pkg/storage"
)

type Chain struct {
	Difficulty   int
	Reward       float64
	SilentDrop   bool
	BalanceIndex bool
}

const (
	Cfg_chain_difficulty   = "chain.difficulty"
	Cfg_chain_reward       = "chain.reward"
	Cfg_chain_silentDrop   = "chain.silentDrop"
	Cfg_chain_balanceIndex = "chain.balanceIndex"
)

var (
	chainDefaults = map[string]interface{}{
		Cfg_chain_difficulty:   ledger.DefaultDifficulty,
		Cfg_chain_reward:       ledger.DefaultMiningReward,
		Cfg_chain_silentDrop:   false,
		Cfg_chain_balanceIndex: true,
	}
)

func init() {
	for k, v := range chainDefaults {
		viper.SetDefault(k, v)
	}
}

func buildChainConfig() (*Chain, error) {
	c := &Chain{
		Difficulty:   viper.GetInt(Cfg_chain_difficulty),
		Reward:       viper.GetFloat64(Cfg_chain_reward),
		SilentDrop:   viper.GetBool(Cfg_chain_silentDrop),
		BalanceIndex: viper.GetBool(Cfg_chain_balanceIndex),
	}

	if err := storage.ValidDifficulty(c.Difficulty); err != nil {
		return nil, err
	}

	if c.Reward <= 0 {
		return nil, errors.Errorf("reward must be positive, got %v", c.Reward)
	}

	return c, nil
}

// LedgerOptions turns the chain section into ledger construction options
func (c *Chain) LedgerOptions() []ledger.Option {
	opts := []ledger.Option{
		ledger.WithDifficulty(c.Difficulty),
		ledger.WithMiningReward(c.Reward),
	}

	if c.SilentDrop {
		opts = append(opts, ledger.WithSilentDrop())
	}
	if c.BalanceIndex {
		opts = append(opts, ledger.WithBalanceIndex())
	}

	return opts
}
