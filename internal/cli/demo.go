package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tcfw/powledger/internal/config"
	"github.com/tcfw/powledger/internal/export"
	"github.com/tcfw/powledger/pkg/ledger"
)

const (
	demoMiner     = "Alice"
	demoRecipient = "Bob"
	demoBlocks    = 11
	demoTransfer  = 50
)

var (
	demoCmd = &cobra.Command{
		Use:   "demo",
		RunE:  runDemo,
		Short: "mine a short chain, make a transfer and write a snapshot",
	}
)

func runDemo(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		select {
		case <-waitExit(ctx):
			cancel()
		case <-ctx.Done():
		}
	}()

	l, err := newLedger()
	if err != nil {
		return errors.Wrap(err, "initing ledger")
	}

	_, err = demo(ctx, l, cfg.Export(), cmd.OutOrStdout())
	return err
}

// demo mines rewards for one address, pays part of them to another, mines
// the transfer and persists the resulting chain
func demo(ctx context.Context, l *ledger.Ledger, exp *config.Export, out io.Writer) (string, error) {
	fmt.Fprint(out, pterm.Info.Sprintfln("mining %d blocks for %s at difficulty %d", demoBlocks, demoMiner, l.Difficulty()))

	for i := 0; i < demoBlocks; i++ {
		b, err := l.MinePendingTransactions(ctx, demoMiner)
		if err != nil {
			return "", errors.Wrapf(err, "mining block %d", i+1)
		}
		fmt.Fprintf(out, "block %d %s\n", b.Index, b.Hash)
	}

	fmt.Fprintf(out, "%s balance %s\n", demoMiner, formatAmount(l.GetBalance(demoMiner)))

	if _, err := l.SubmitTransaction(demoMiner, demoRecipient, demoTransfer); err != nil {
		return "", errors.Wrap(err, "submitting transfer")
	}

	if _, err := l.MinePendingTransactions(ctx, demoMiner); err != nil {
		return "", errors.Wrap(err, "mining transfer")
	}

	if err := printChain(out, l.Blocks()); err != nil {
		return "", err
	}
	if err := printBalances(out, l.Balances()); err != nil {
		return "", err
	}
	printValidity(out, l.Verify())

	path, err := export.Write(exp.Dir, exp.Format, l.Snapshot())
	if err != nil {
		return "", err
	}
	fmt.Fprintf(out, "wrote %s\n", path)

	return path, nil
}
