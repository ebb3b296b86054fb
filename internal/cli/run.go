package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tcfw/powledger/internal/config"
	"github.com/tcfw/powledger/internal/miner"
	"github.com/tcfw/powledger/internal/utils/logging"
)

var (
	runCmd = &cobra.Command{
		Use:   "run",
		RunE:  runShell,
		Short: "run an interactive ledger reading commands from stdin",
	}
)

func init() {
	runCmd.Flags().String("auto-mine", "", "mine pending transactions in the background, rewarding this address")
	viper.BindPFlag(config.Cfg_miner_address, runCmd.Flags().Lookup("auto-mine"))
}

func runShell(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l, err := newLedger()
	if err != nil {
		return errors.Wrap(err, "initing ledger")
	}

	sh := newShell(l, cfg.Export(), cmd.OutOrStdout())

	errCh := make(chan error, 1)

	if addr := cfg.Miner().Address; addr != "" {
		w, err := miner.NewWorker(l, addr,
			miner.WithInterval(cfg.Miner().Interval),
			miner.WithTimeout(cfg.Miner().Timeout),
			miner.WithBackoff(cfg.Miner().Backoff.Min, cfg.Miner().Backoff.Max),
			miner.OnBlock(sh.blockMined),
		)
		if err != nil {
			return err
		}

		go func() {
			if err := w.Run(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	sigs := waitExit(ctx)
	go func() {
		select {
		case <-sigs:
			cancel()
		case <-ctx.Done():
		}
	}()

	sh.printf("%s\n", shellHelp)

	for {
		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}

			quit, err := sh.exec(ctx, line)
			if err != nil {
				logging.WithError(err).Error("command failed")
			}
			if quit {
				return nil
			}
		}
	}
}
