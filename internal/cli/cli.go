package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tcfw/powledger/internal/config"
	"github.com/tcfw/powledger/internal/export"
	"github.com/tcfw/powledger/internal/utils/logging"
	"github.com/tcfw/powledger/pkg/ledger"
)

var (
	rootCmd = &cobra.Command{
		Use:               "powledger",
		Short:             "proof-of-work transaction ledger",
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}

	cfg *config.Config
)

func init() {
	f := rootCmd.PersistentFlags()

	f.BoolP("verbose", "v", false, "increase verbosity")
	f.String("config", "", "config file (default searches /etc/powledger, $HOME/.powledger and .)")
	f.Int("difficulty", ledger.DefaultDifficulty, "leading zero hex characters required of a block hash")
	f.Float64("reward", ledger.DefaultMiningReward, "mining reward credited to the miner")
	f.String("out", ".", "directory snapshots are written to")
	f.String("format", string(export.FormatJSON), "snapshot format: json, yaml or msgpack")

	viper.BindPFlag(config.Cfg_verbose, f.Lookup("verbose"))
	viper.BindPFlag(config.Cfg_configFile, f.Lookup("config"))
	viper.BindPFlag(config.Cfg_chain_difficulty, f.Lookup("difficulty"))
	viper.BindPFlag(config.Cfg_chain_reward, f.Lookup("reward"))
	viper.BindPFlag(config.Cfg_export_dir, f.Lookup("out"))
	viper.BindPFlag(config.Cfg_export_format, f.Lookup("format"))
}

func Execute() error {
	regCommands()

	return rootCmd.Execute()
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.GetConfig()
	if err != nil {
		return err
	}

	cfg = c

	return nil
}

func newLedger() (*ledger.Ledger, error) {
	return ledger.New(append(cfg.Chain().LedgerOptions(), ledger.WithLogger(logging.Entry()))...)
}

func waitExit(ctx context.Context) <-chan os.Signal {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	return sigs
}
