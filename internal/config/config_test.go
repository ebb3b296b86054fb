package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcfw/powledger/internal/export"
	"github.com/tcfw/powledger/pkg/ledger"
)

func resetViper(t *testing.T) {
	t.Cleanup(func() {
		viper.Reset()
		for _, m := range []map[string]interface{}{defaults, chainDefaults, minerDefaults, exportDefaults} {
			for k, v := range m {
				viper.SetDefault(k, v)
			}
		}
	})
}

func TestDefaults(t *testing.T) {
	resetViper(t)

	c, err := build()
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, ledger.DefaultDifficulty, c.Chain().Difficulty)
	assert.Equal(t, float64(ledger.DefaultMiningReward), c.Chain().Reward)
	assert.True(t, c.Chain().BalanceIndex)
	assert.False(t, c.Chain().SilentDrop)

	assert.Empty(t, c.Miner().Address)
	assert.Equal(t, 5*time.Second, c.Miner().Interval)
	assert.Equal(t, time.Minute, c.Miner().Timeout)
	assert.Equal(t, 500*time.Millisecond, c.Miner().Backoff.Min)

	assert.Equal(t, ".", c.Export().Dir)
	assert.Equal(t, export.FormatJSON, c.Export().Format)
}

func TestInvalidValues(t *testing.T) {
	tests := map[string]struct {
		key   string
		value interface{}
	}{
		"difficulty too low":  {Cfg_chain_difficulty, 0},
		"difficulty too high": {Cfg_chain_difficulty, 65},
		"reward":              {Cfg_chain_reward, -1},
		"interval":            {Cfg_miner_interval, "0s"},
		"backoff":             {Cfg_miner_backoffMax, "1ms"},
		"format":              {Cfg_export_format, "xml"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			resetViper(t)
			viper.Set(tc.key, tc.value)

			_, err := build()
			assert.Error(t, err)
		})
	}
}

func TestLedgerOptions(t *testing.T) {
	resetViper(t)
	viper.Set(Cfg_chain_difficulty, 1)
	viper.Set(Cfg_chain_reward, 7.5)
	viper.Set(Cfg_chain_silentDrop, true)

	c, err := build()
	if err != nil {
		t.Fatal(err)
	}

	l, err := ledger.New(c.Chain().LedgerOptions()...)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 1, l.Difficulty())
	assert.Equal(t, 7.5, l.MiningReward())

	_, err = l.SubmitTransaction("nobody", "bob", 1)
	assert.NoError(t, err)
}

func TestGetConfigFromFile(t *testing.T) {
	resetViper(t)

	f := filepath.Join(t.TempDir(), "powledger.yaml")
	err := os.WriteFile(f, []byte(`
chain:
  difficulty: 3
  reward: 25
miner:
  address: alice
  interval: 2s
export:
  dir: /tmp/chains
  format: yaml
`), 0600)
	require.NoError(t, err)

	viper.Set(Cfg_configFile, f)

	c, err := GetConfig()
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 3, c.Chain().Difficulty)
	assert.Equal(t, float64(25), c.Chain().Reward)
	assert.Equal(t, "alice", c.Miner().Address)
	assert.Equal(t, 2*time.Second, c.Miner().Interval)
	assert.Equal(t, "/tmp/chains", c.Export().Dir)
	assert.Equal(t, export.FormatYAML, c.Export().Format)
}

func TestGetConfigEnv(t *testing.T) {
	resetViper(t)
	viper.Set(Cfg_configFile, filepath.Join(t.TempDir(), "powledger.yaml"))
	require.NoError(t, os.WriteFile(viper.GetString(Cfg_configFile), []byte("chain: {}\n"), 0600))

	t.Setenv("POWLEDGER_CHAIN_DIFFICULTY", "4")

	c, err := GetConfig()
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 4, c.Chain().Difficulty)
}
